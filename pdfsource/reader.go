// Package pdfsource reads positioned text fragments out of PDF documents.
//
// Character runs reported by the PDF library are merged into fragments the
// way a viewer presents text items: runs on the same row, in the same font,
// separated by at most a fraction of the font size become one fragment.
// Coordinates are PDF user space with Y growing upwards.
package pdfsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/tsawler/vitae/internal/logging"
	"github.com/tsawler/vitae/text"
)

var (
	// ErrEncrypted is returned for password-protected documents
	ErrEncrypted = errors.New("pdfsource: document is encrypted")

	// ErrNoText is returned when a document yields no text and carries no
	// embedded resume
	ErrNoText = errors.New("pdfsource: document has no extractable text")

	// ErrMalformed is returned when the document cannot be parsed as a PDF
	ErrMalformed = errors.New("pdfsource: malformed document")
)

// Config holds configuration for run merging
type Config struct {
	// WordGapRatio is the largest horizontal gap between two runs, as a
	// fraction of font size, that still joins them (default: 0.3)
	WordGapRatio float64

	// SpaceGapRatio is the gap, as a fraction of font size, above which a
	// space is inserted between joined runs (default: 0.1)
	SpaceGapRatio float64

	// RowTolerance is the largest baseline difference, in points, between
	// runs on the same row (default: 1.0)
	RowTolerance float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		WordGapRatio:  0.3,
		SpaceGapRatio: 0.1,
		RowTolerance:  1.0,
	}
}

// Document is the text content and metadata read from a PDF
type Document struct {
	// Fragments are the merged text runs in content-stream order
	Fragments []text.TextFragment

	// Pages is the page count
	Pages int

	// Producer and Subject come from the document information dictionary
	Producer string
	Subject  string
}

// Reader extracts documents from PDF sources
type Reader struct {
	config Config
	logger *zap.Logger
}

// NewReader creates a reader with default configuration
func NewReader() *Reader {
	return NewReaderWithConfig(DefaultConfig())
}

// NewReaderWithConfig creates a reader with custom configuration
func NewReaderWithConfig(config Config) *Reader {
	return &Reader{config: config, logger: zap.NewNop()}
}

// WithLogger returns a copy of the reader that logs through logger
func (r *Reader) WithLogger(logger *zap.Logger) *Reader {
	out := *r
	out.logger = logging.OrNop(logger)
	return &out
}

// ReadFile opens and reads the PDF at path.
func (r *Reader) ReadFile(ctx context.Context, path string) (*Document, error) {
	f, pr, err := pdf.Open(path)
	if err != nil {
		return nil, openError(err)
	}
	defer f.Close()

	return r.read(ctx, pr)
}

// Read reads a PDF of the given size from ra.
func (r *Reader) Read(ctx context.Context, ra io.ReaderAt, size int64) (*Document, error) {
	pr, err := newPDFReader(ra, size)
	if err != nil {
		return nil, openError(err)
	}
	return r.read(ctx, pr)
}

// newPDFReader opens a document, converting parser panics into errors.
func newPDFReader(ra io.ReaderAt, size int64) (pr *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parser panic: %v", p)
		}
	}()
	return pdf.NewReader(ra, size)
}

func openError(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, pdf.ErrInvalidPassword):
		return ErrEncrypted
	case errors.As(err, &pathErr):
		return fmt.Errorf("pdfsource: open: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

func (r *Reader) read(ctx context.Context, pr *pdf.Reader) (doc *Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrMalformed, p)
		}
	}()

	doc = &Document{Pages: pr.NumPage()}

	info := pr.Trailer().Key("Info")
	doc.Producer = info.Key("Producer").Text()
	doc.Subject = info.Key("Subject").Text()

	for i := 1; i <= doc.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}

		runs := page.Content().Text
		fragments := r.mergeRuns(toRuns(runs), i-1)
		r.logger.Debug("read page",
			zap.Int("page", i),
			zap.Int("runs", len(runs)),
			zap.Int("fragments", len(fragments)),
		)
		doc.Fragments = append(doc.Fragments, fragments...)
	}

	if len(doc.Fragments) == 0 && !HasEmbeddedResume(doc) {
		return doc, ErrNoText
	}
	return doc, nil
}

// run is one positioned string reported by the PDF library
type run struct {
	Font     string
	FontSize float64
	X, Y, W  float64
	S        string
}

func toRuns(texts []pdf.Text) []run {
	out := make([]run, len(texts))
	for i, t := range texts {
		out[i] = run{Font: t.Font, FontSize: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S}
	}
	return out
}

// mergeRuns joins consecutive runs into fragments. Runs join when they share
// a font and a row and the gap between them is small. Whitespace-only
// fragments are dropped.
func (r *Reader) mergeRuns(runs []run, page int) []text.TextFragment {
	var out []text.TextFragment
	var cur *text.TextFragment
	var sb strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = sb.String()
		if strings.TrimSpace(cur.Text) != "" {
			cur.Direction = text.DetectDirection(cur.Text)
			out = append(out, *cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, t := range runs {
		if t.S == "" {
			continue
		}

		if cur != nil && r.joins(cur, t) {
			gap := t.X - cur.Right()
			if gap > r.config.SpaceGapRatio*t.FontSize && !endsWithSpace(sb.String()) && !strings.HasPrefix(t.S, " ") {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.S)
			if right := t.X + t.W; right > cur.Right() {
				cur.Width = right - cur.X
			}
			continue
		}

		flush()
		cur = &text.TextFragment{
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			Height:   t.FontSize,
			FontName: t.Font,
			FontSize: t.FontSize,
			Page:     page,
		}
		sb.WriteString(t.S)
	}
	flush()

	return out
}

// joins reports whether t continues the fragment cur.
func (r *Reader) joins(cur *text.TextFragment, t run) bool {
	if t.Font != cur.FontName || t.FontSize != cur.FontSize {
		return false
	}
	if math.Abs(t.Y-cur.Y) > r.config.RowTolerance {
		return false
	}
	gap := t.X - cur.Right()
	limit := r.config.WordGapRatio * t.FontSize
	return gap <= limit && gap >= -limit
}

func endsWithSpace(s string) bool {
	return strings.HasSuffix(s, " ")
}
