// Package extract turns grouped resume sections into structured fields.
//
// Every field is chosen by scoring candidate fragments with the feature sets
// defined in this package:
//
//	sections := layout.NewSectionGrouper().Group(lines)
//	resume := extract.Resume(sections)
//
// An [Extractor] can report each selection through a [TraceFunc], which is
// how the command line explains its choices.
package extract

import (
	"go.uber.org/zap"

	"github.com/tsawler/vitae/internal/logging"
	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/scoring"
	"github.com/tsawler/vitae/text"
)

// TraceFunc receives every field selection as it is made. Field names are
// dotted paths such as "profile.name" or "educations[0].gpa".
type TraceFunc func(field string, result scoring.Result)

// Extractor runs the field extractors over a set of sections.
type Extractor struct {
	logger    *zap.Logger
	trace     TraceFunc
	subConfig layout.SubsectionConfig
	divider   *layout.SubsectionDivider
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) { e.logger = logging.OrNop(logger) }
}

// WithTrace installs fn to observe every field selection.
func WithTrace(fn TraceFunc) Option {
	return func(e *Extractor) { e.trace = fn }
}

// WithSubsectionConfig sets the thresholds used to split entries and to find
// where their descriptions start.
func WithSubsectionConfig(config layout.SubsectionConfig) Option {
	return func(e *Extractor) { e.subConfig = config }
}

// New returns an Extractor with the given options applied.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger:    zap.NewNop(),
		subConfig: layout.DefaultSubsectionConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.divider = layout.NewSubsectionDividerWithConfig(e.subConfig)
	return e
}

// Resume extracts a resume using the default Extractor.
func Resume(sections *layout.Sections) model.Resume {
	return New().Resume(sections)
}

// Resume runs every field extractor. The result always has non-nil lists and
// exactly model.FeaturedSkillCapacity featured skill slots.
func (e *Extractor) Resume(sections *layout.Sections) model.Resume {
	resume := model.NewResume()
	if sections == nil {
		return resume
	}

	resume.Profile = e.Profile(sections)
	resume.Educations = e.Educations(sections)
	resume.WorkExperiences = e.WorkExperiences(sections)
	resume.Projects = e.Projects(sections)
	resume.Skills = e.Skills(sections)
	resume.Custom = e.Custom(sections)

	e.logger.Debug("extracted resume",
		zap.Bool("has_name", resume.Profile.Name != ""),
		zap.Int("educations", len(resume.Educations)),
		zap.Int("work_experiences", len(resume.WorkExperiences)),
		zap.Int("projects", len(resume.Projects)),
		zap.Int("skill_descriptions", len(resume.Skills.Descriptions)),
		zap.Int("custom_descriptions", len(resume.Custom.Descriptions)),
	)

	return resume
}

// pick runs a selection and reports it.
func (e *Extractor) pick(field string, candidates []text.TextFragment, features []scoring.FeatureSet, opts ...scoring.Option) scoring.Result {
	result := scoring.Select(candidates, features, opts...)
	if e.trace != nil {
		e.trace(field, result)
	}
	if ce := e.logger.Check(zap.DebugLevel, "selected field"); ce != nil {
		ce.Write(
			zap.String("field", field),
			zap.String("value", logging.Truncate(result.Value, 60)),
			zap.Int("score", result.Score),
			zap.Int("candidates", len(candidates)),
		)
	}
	return result
}

// descriptionsStart returns where an entry's descriptions begin, or fallback
// when no start is detected. The result never exceeds len(lines).
func (e *Extractor) descriptionsStart(lines []layout.Line, fallback int) int {
	idx := layout.DescriptionsStartWithConfig(lines, e.subConfig)
	if idx < 0 {
		idx = fallback
	}
	if idx > len(lines) {
		idx = len(lines)
	}
	return idx
}
