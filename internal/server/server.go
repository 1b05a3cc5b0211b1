// Package server exposes the resume parser over HTTP.
package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/vitae"
	"github.com/tsawler/vitae/internal/logging"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/pdfsource"
	"github.com/tsawler/vitae/text"
)

// RequestIDHeader carries the request ID on every response.
const RequestIDHeader = "X-Request-ID"

// Options configures the server.
type Options struct {
	// BodyLimit is the largest accepted request body in bytes
	BodyLimit int

	// Configure applies pipeline settings to every Extractor the server builds
	Configure func(*vitae.Extractor) *vitae.Extractor
}

// Server handles parse requests.
type Server struct {
	app     *fiber.App
	logger  *zap.Logger
	metrics *Metrics
	opts    Options
}

type parseRequest struct {
	Fragments []text.TextFragment `json:"fragments"`
}

type parseResponse struct {
	*model.ParseResult
	Warnings []vitae.Warning `json:"warnings"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// New builds the server and its routes.
func New(opts Options, logger *zap.Logger) *Server {
	s := &Server{
		logger:  logging.OrNop(logger),
		metrics: NewMetrics(),
		opts:    opts,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "vitae",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(requestid.New(requestid.Config{
		Header:    RequestIDHeader,
		Generator: uuid.NewString,
	}))

	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	s.app.Post("/v1/parse", s.parse)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting up to timeout for requests in flight.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// parse accepts either a PDF body or a JSON list of fragments.
func (s *Server) parse(c *fiber.Ctx) error {
	var ext *vitae.Extractor
	input := "pdf"

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		input = "fragments"
		var req parseRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if len(req.Fragments) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "no fragments")
		}
		ext = vitae.FromFragments(req.Fragments)
	} else {
		if len(c.Body()) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "empty body")
		}
		if f := pdfsource.Sniff(c.Body()); f != pdfsource.PDF {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported document format: "+f.String())
		}
		// The request body buffer is reused once the handler returns
		ext = vitae.FromBytes(append([]byte(nil), c.Body()...))
	}

	ext = ext.WithContext(c.UserContext()).WithLogger(s.logger.With(zap.String("request_id", requestID(c))))
	if s.opts.Configure != nil {
		ext = s.opts.Configure(ext)
	}
	if !c.QueryBool("privacy_filter", true) {
		ext = ext.SkipPrivacyFilter()
	}

	s.metrics.StartParse()
	start := time.Now()
	result, warnings, err := ext.Parse()
	if err == nil {
		err = model.Validate(result)
	}
	s.metrics.FinishParse(input, time.Since(start), err)

	if err != nil {
		return err
	}
	s.metrics.ObserveResult(result)

	if warnings == nil {
		warnings = []vitae.Warning{}
	}
	return c.JSON(parseResponse{ParseResult: result, Warnings: warnings})
}

// handleError maps pipeline errors to status codes.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, pdfsource.ErrEncrypted), errors.Is(err, pdfsource.ErrNoText):
		code, msg = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, pdfsource.ErrMalformed), errors.Is(err, vitae.ErrNoSource):
		code, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = fiber.StatusServiceUnavailable, "parse timed out"
	case errors.Is(err, context.Canceled):
		code, msg = fiber.StatusServiceUnavailable, "request canceled"
	case errors.Is(err, model.ErrInvalid):
		msg = "result failed schema validation"
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err), zap.String("request_id", requestID(c)))
	} else {
		s.logger.Debug("request rejected", zap.Error(err), zap.Int("status", code))
	}

	return c.Status(code).JSON(errorResponse{Error: msg, RequestID: requestID(c)})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
