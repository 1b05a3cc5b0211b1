package vitae

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/vitae/extract"
	"github.com/tsawler/vitae/internal/logging"
	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/pdfsource"
	"github.com/tsawler/vitae/privacy"
	"github.com/tsawler/vitae/text"
)

// ErrNoSource is returned when an Extractor has nothing to read from.
var ErrNoSource = errors.New("vitae: no source specified")

// source is where an Extractor reads its document from. Exactly one of
// filename, reader or fragments is set.
type source struct {
	filename string

	reader io.ReaderAt
	size   int64

	fragments    []text.TextFragment
	hasFragments bool
}

// Extractor provides a fluent interface for parsing a resume.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	src source

	ctx    context.Context
	logger *zap.Logger
	trace  extract.TraceFunc

	// Configuration
	options ParseOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

func newExtractor(src source) *Extractor {
	return &Extractor{
		src:     src,
		ctx:     context.Background(),
		logger:  zap.NewNop(),
		options: defaultOptions(),
	}
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		src:      e.src,
		ctx:      e.ctx,
		logger:   e.logger,
		trace:    e.trace,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithContext sets the context checked while reading pages.
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	if ctx == nil {
		ctx = context.Background()
	}
	newExt.ctx = ctx
	return newExt
}

// WithLogger sets the logger that receives per-stage debug output.
func (e *Extractor) WithLogger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.logger = logging.OrNop(logger)
	return newExt
}

// WithTrace installs fn to observe every field selection with its full
// candidate score table.
//
// Example:
//
//	vitae.Open("resume.pdf").WithTrace(func(field string, r scoring.Result) {
//	    fmt.Println(field, r.Value, r.Score)
//	}).Parse()
func (e *Extractor) WithTrace(fn extract.TraceFunc) *Extractor {
	newExt := e.clone()
	newExt.trace = fn
	return newExt
}

// SkipPrivacyFilter keeps consent statements in the text handed to the field
// extractors. Detection still runs and the privacy flags are still set.
func (e *Extractor) SkipPrivacyFilter() *Extractor {
	newExt := e.clone()
	newExt.options.skipPrivacyFilter = true
	return newExt
}

// IgnoreEmbeddedResume parses the page text even when the document carries
// an embedded resume payload.
func (e *Extractor) IgnoreEmbeddedResume() *Extractor {
	newExt := e.clone()
	newExt.options.ignoreEmbedded = true
	return newExt
}

// KeepPageFurniture disables removal of running headers, footers and page
// numbers on multi-page documents.
func (e *Extractor) KeepPageFurniture() *Extractor {
	newExt := e.clone()
	newExt.options.keepFurniture = true
	return newExt
}

// WithLineConfig sets the line grouping configuration.
func (e *Extractor) WithLineConfig(config layout.LineConfig) *Extractor {
	newExt := e.clone()
	newExt.options.lineConfig = config
	return newExt
}

// WithSectionConfig sets the section title configuration.
func (e *Extractor) WithSectionConfig(config layout.SectionConfig) *Extractor {
	newExt := e.clone()
	newExt.options.sectionConfig = config
	return newExt
}

// WithSubsectionConfig sets the entry splitting and description thresholds.
func (e *Extractor) WithSubsectionConfig(config layout.SubsectionConfig) *Extractor {
	newExt := e.clone()
	newExt.options.subsectionConfig = config
	return newExt
}

// WithFurnitureConfig sets the page furniture detection configuration.
func (e *Extractor) WithFurnitureConfig(config layout.FurnitureConfig) *Extractor {
	newExt := e.clone()
	newExt.options.furnitureConfig = config
	return newExt
}

// WithReaderConfig sets how PDF character runs are merged into fragments.
// It has no effect on Extractors created with FromFragments.
func (e *Extractor) WithReaderConfig(config pdfsource.Config) *Extractor {
	newExt := e.clone()
	newExt.options.readerConfig = config
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Fragments returns the text fragments of the document.
func (e *Extractor) Fragments() ([]text.TextFragment, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	e = e.clone()

	doc, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	return doc.Fragments, e.warnings, nil
}

// Lines returns the document's visual lines in reading order, with page
// furniture removed.
func (e *Extractor) Lines() ([]layout.Line, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	e = e.clone()

	doc, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	return e.lines(doc.Fragments), e.warnings, nil
}

// Sections returns the document's lines grouped into named sections.
func (e *Extractor) Sections() (*layout.Sections, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	e = e.clone()

	doc, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	return e.sections(e.lines(doc.Fragments)), e.warnings, nil
}

// IsMultiColumn reports whether any page of the document is laid out in
// side-by-side columns.
func (e *Extractor) IsMultiColumn() (bool, error) {
	if e.err != nil {
		return false, e.err
	}

	doc, err := e.load()
	if err != nil {
		return false, err
	}
	return layout.NewColumnDetector().IsMultiColumn(doc.Fragments), nil
}

// Parse runs the full pipeline and returns the structured resume with its
// privacy flags. The result always has non-nil lists and exactly
// model.FeaturedSkillCapacity featured skill slots.
//
// Example:
//
//	result, warnings, err := vitae.Open("resume.pdf").Parse()
func (e *Extractor) Parse() (*model.ParseResult, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	e = e.clone()

	// Step 1: read the document
	doc, err := e.load()
	if err != nil {
		return nil, nil, err
	}

	// Step 2: documents with an embedded resume skip the heuristics
	if !e.options.ignoreEmbedded && pdfsource.HasEmbeddedResume(doc) {
		result, ok, err := pdfsource.EmbeddedResume(doc)
		switch {
		case err != nil:
			e.warn(WarnEmbeddedResume, err.Error())
		case ok:
			e.logger.Debug("using embedded resume", zap.String("producer", doc.Producer))
			return result, e.warnings, nil
		}
	}

	if layout.NewColumnDetector().IsMultiColumn(doc.Fragments) {
		e.warn(WarnMultiColumn, "columns are read left to right across the page")
	}

	// Step 3: lines and sections
	sections := e.sections(e.lines(doc.Fragments))

	// Step 4: privacy statements are detected before they are removed
	flags := privacy.Detect(sections)
	if !e.options.skipPrivacyFilter {
		sections = privacy.Filter(sections)
	}
	e.logger.Debug("privacy statements",
		zap.Bool("italy", flags.Italy),
		zap.Bool("eu", flags.EU),
		zap.Bool("filtered", !e.options.skipPrivacyFilter),
	)

	// Step 5: field extraction
	extractor := extract.New(
		extract.WithLogger(e.logger),
		extract.WithTrace(e.trace),
		extract.WithSubsectionConfig(e.options.subsectionConfig),
	)
	resume := extractor.Resume(sections)

	return &model.ParseResult{Resume: resume, Privacy: flags}, e.warnings, nil
}

// ============================================================================
// Pipeline stages
// ============================================================================

// load reads the document from the configured source.
func (e *Extractor) load() (*pdfsource.Document, error) {
	switch {
	case e.src.hasFragments:
		return &pdfsource.Document{
			Fragments: append([]text.TextFragment(nil), e.src.fragments...),
			Pages:     pageCount(e.src.fragments),
		}, nil

	case e.src.filename != "":
		doc, err := e.reader().ReadFile(e.ctx, e.src.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.src.filename, err)
		}
		return doc, nil

	case e.src.reader != nil:
		doc, err := e.reader().Read(e.ctx, e.src.reader, e.src.size)
		if err != nil {
			return nil, fmt.Errorf("failed to read PDF: %w", err)
		}
		return doc, nil

	default:
		return nil, ErrNoSource
	}
}

func (e *Extractor) reader() *pdfsource.Reader {
	return pdfsource.NewReaderWithConfig(e.options.readerConfig).WithLogger(e.logger)
}

// lines groups fragments into lines and drops repeated page furniture.
func (e *Extractor) lines(fragments []text.TextFragment) []layout.Line {
	if isCharacterLevel(fragments) {
		e.warn(WarnCharacterLevel, "text is stored one character at a time")
	}

	grouped := layout.NewLineGrouperWithConfig(e.options.lineConfig).Group(fragments)
	if grouped.Dropped > 0 {
		e.warn(WarnDroppedFragments, fmt.Sprintf("%d fragments with invalid geometry were skipped", grouped.Dropped))
	}

	lines := grouped.Lines
	if !e.options.keepFurniture {
		filtered := layout.NewFurnitureDetectorWithConfig(e.options.furnitureConfig).Filter(lines)
		for _, f := range filtered.Removed {
			e.logger.Debug("removed page furniture",
				zap.Stringer("margin", f.Margin),
				zap.String("text", logging.Truncate(f.Text, 60)),
				zap.Ints("pages", f.Pages),
			)
		}
		lines = filtered.Lines
	}

	e.logger.Debug("grouped lines",
		zap.Int("fragments", len(fragments)),
		zap.Int("lines", len(lines)),
		zap.Int("dropped", grouped.Dropped),
	)
	return lines
}

// sections groups lines into named sections.
func (e *Extractor) sections(lines []layout.Line) *layout.Sections {
	sections := layout.NewSectionGrouperWithConfig(e.options.sectionConfig).Group(lines)
	if len(lines) > 0 && sections.Len() == 1 {
		e.warn(WarnNoSections, "no section titles were recognised")
	}

	e.logger.Debug("grouped sections",
		zap.Int("sections", sections.Len()),
		zap.Strings("names", sections.Names()),
	)
	return sections
}

func (e *Extractor) warn(code WarningCode, message string) {
	e.warnings = append(e.warnings, Warning{Code: code, Message: message})
}

// ============================================================================
// Helper functions
// ============================================================================

// isCharacterLevel detects if fragments appear to be character-level
// (one character per fragment). Returns true if more than 60% of fragments
// contain single characters.
func isCharacterLevel(fragments []text.TextFragment) bool {
	if len(fragments) < 10 {
		return false
	}

	singleCharCount := 0
	for _, frag := range fragments {
		if len([]rune(strings.TrimSpace(frag.Text))) <= 1 {
			singleCharCount++
		}
	}

	return float64(singleCharCount)/float64(len(fragments)) > 0.6
}

func pageCount(fragments []text.TextFragment) int {
	pages := 0
	for _, f := range fragments {
		if f.Page+1 > pages {
			pages = f.Page + 1
		}
	}
	return pages
}
