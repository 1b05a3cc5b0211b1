package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tsawler/vitae/model"
)

// Metrics holds the parse metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	parseTotal    *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	parseInFlight prometheus.Gauge
	fieldsFilled  *prometheus.CounterVec
	privacyFound  *prometheus.CounterVec
}

// NewMetrics creates and registers the parse metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	parseTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitae",
			Subsystem: "parse",
			Name:      "requests_total",
			Help:      "Total parse requests by input kind and status.",
		},
		[]string{"input", "status"},
	)
	parseDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vitae",
			Subsystem: "parse",
			Name:      "duration_seconds",
			Help:      "Parse duration in seconds by input kind.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"input"},
	)
	parseInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vitae",
			Subsystem: "parse",
			Name:      "in_flight",
			Help:      "Number of parse requests being processed.",
		},
	)
	fieldsFilled := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitae",
			Subsystem: "parse",
			Name:      "fields_filled_total",
			Help:      "Extracted resume fields that received a value.",
		},
		[]string{"field"},
	)
	privacyFound := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitae",
			Subsystem: "parse",
			Name:      "privacy_statements_total",
			Help:      "Documents carrying a data processing consent statement by jurisdiction.",
		},
		[]string{"jurisdiction"},
	)

	registry.MustRegister(parseTotal, parseDuration, parseInFlight, fieldsFilled, privacyFound)

	return &Metrics{
		registry:      registry,
		parseTotal:    parseTotal,
		parseDuration: parseDuration,
		parseInFlight: parseInFlight,
		fieldsFilled:  fieldsFilled,
		privacyFound:  privacyFound,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) StartParse() {
	m.parseInFlight.Inc()
}

func (m *Metrics) FinishParse(input string, duration time.Duration, err error) {
	m.parseInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.parseTotal.WithLabelValues(input, status).Inc()
	m.parseDuration.WithLabelValues(input).Observe(duration.Seconds())
}

// ObserveResult counts the fields and privacy statements found in result.
func (m *Metrics) ObserveResult(result *model.ParseResult) {
	if result == nil {
		return
	}

	r := result.Resume
	filled := map[string]bool{
		"name":      r.Profile.Name != "",
		"email":     r.Profile.Email != "",
		"phone":     r.Profile.Phone != "",
		"url":       r.Profile.URL != "",
		"location":  r.Profile.Location != "",
		"summary":   r.Profile.Summary != "",
		"education": len(r.Educations) > 0,
		"work":      len(r.WorkExperiences) > 0,
		"project":   len(r.Projects) > 0,
		"skills":    hasSkills(r.Skills),
		"custom":    len(r.Custom.Descriptions) > 0,
	}
	for field, ok := range filled {
		if ok {
			m.fieldsFilled.WithLabelValues(field).Inc()
		}
	}

	if result.Privacy.Italy {
		m.privacyFound.WithLabelValues("italy").Inc()
	}
	if result.Privacy.EU {
		m.privacyFound.WithLabelValues("eu").Inc()
	}
}

func hasSkills(skills model.Skills) bool {
	if len(skills.Descriptions) > 0 {
		return true
	}
	for _, s := range skills.FeaturedSkills {
		if s.Skill != "" {
			return true
		}
	}
	return false
}
