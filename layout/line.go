package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/text"
)

// defaultLineHeight is used when a fragment reports neither height nor font size.
const defaultLineHeight = 10.0

// Line represents a single visual line of text
type Line struct {
	// BBox is the bounding box of the line
	BBox model.BBox

	// Fragments are the text fragments that make up this line (sorted left to right)
	Fragments []text.TextFragment

	// Text is the assembled text content of the line
	Text string

	// Index is the line's position in the document (0-based, reading order)
	Index int

	// Page is the 0-based page the line was found on
	Page int

	// Y is the anchor baseline: the Y of the first fragment assigned to the line
	Y float64

	// Height is the line height (max fragment height)
	Height float64

	// GapAbove, when positive, stands in for the measured distance to the
	// previous line. Filters set it after removing the lines in between.
	GapAbove float64
}

// LineLayout represents the detected line structure of a document
type LineLayout struct {
	// Lines are the detected text lines in reading order
	Lines []Line

	// TypicalCharWidth is the average glyph width of the dominant font
	TypicalCharWidth float64

	// Dropped counts fragments excluded for malformed geometry
	Dropped int

	// Config is the configuration used for grouping
	Config LineConfig
}

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping fragments into lines
	// as a fraction of line height (default: 0.5)
	LineHeightTolerance float64

	// MergeAdjacent joins neighbouring fragments in a line whose gap is no wider
	// than the typical character width (default: true)
	MergeAdjacent bool

	// WordGapRatio is the gap, as a fraction of line height, above which a
	// space is inserted between joined fragments (default: 0.1)
	WordGapRatio float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance: 0.5,
		MergeAdjacent:       true,
		WordGapRatio:        0.1,
	}
}

// LineGrouper clusters fragments into visual lines
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a new line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{
		config: DefaultLineConfig(),
	}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{
		config: config,
	}
}

// band is a line under construction
type band struct {
	page      int
	y         float64
	height    float64
	fragments []text.TextFragment
}

// Group clusters fragments into lines. Fragments are never modified; merged
// fragments are new values.
func (g *LineGrouper) Group(fragments []text.TextFragment) *LineLayout {
	result := &LineLayout{Config: g.config}

	// Step 1: Drop malformed and blank fragments
	valid := make([]text.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if !f.IsValid() {
			result.Dropped++
			continue
		}
		if f.IsBlank() {
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return result
	}

	// Step 2: Assign fragments to vertical bands, page by page
	bands := g.groupIntoBands(valid)

	// Step 3: Order bands top to bottom, fragments left to right
	sort.SliceStable(bands, func(i, j int) bool {
		if bands[i].page != bands[j].page {
			return bands[i].page < bands[j].page
		}
		return bands[i].y > bands[j].y
	})
	for _, b := range bands {
		sort.SliceStable(b.fragments, func(i, j int) bool {
			return b.fragments[i].X < b.fragments[j].X
		})
	}

	// Step 4: Merge adjacent fragments
	if g.config.MergeAdjacent {
		result.TypicalCharWidth = TypicalCharWidth(valid)
		for _, b := range bands {
			b.fragments = g.mergeAdjacent(b.fragments, result.TypicalCharWidth)
		}
	}

	// Step 5: Build lines, never emitting empty ones
	result.Lines = make([]Line, 0, len(bands))
	for _, b := range bands {
		line := g.buildLine(b)
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		line.Index = len(result.Lines)
		result.Lines = append(result.Lines, line)
	}

	return result
}

// groupIntoBands assigns each fragment, in stream order, to the nearest open
// band on its page whose anchor is within tolerance, or opens a new band.
func (g *LineGrouper) groupIntoBands(fragments []text.TextFragment) []*band {
	var bands []*band

	for _, f := range fragments {
		var best *band
		bestDist := math.MaxFloat64

		for _, b := range bands {
			if b.page != f.Page {
				continue
			}
			h := math.Max(b.height, f.LineHeight())
			if h <= 0 {
				h = defaultLineHeight
			}
			dist := math.Abs(f.Y - b.y)
			if dist <= h*g.config.LineHeightTolerance && dist < bestDist {
				best = b
				bestDist = dist
			}
		}

		if best == nil {
			bands = append(bands, &band{
				page:      f.Page,
				y:         f.Y,
				height:    f.LineHeight(),
				fragments: []text.TextFragment{f},
			})
			continue
		}

		best.fragments = append(best.fragments, f)
		if f.LineHeight() > best.height {
			best.height = f.LineHeight()
		}
	}

	return bands
}

// TypicalCharWidth returns the average character width of the fragments that
// share the most common font name (weighted by text length) and the most
// common height. It returns 0 when there is nothing to measure.
func TypicalCharWidth(fragments []text.TextFragment) float64 {
	heightCount := make(map[float64]int)
	fontCount := make(map[string]int)
	var commonHeight float64
	var commonFont string
	maxHeight, maxFont := 0, 0

	for _, f := range fragments {
		if f.IsBlank() {
			continue
		}
		h := roundTenth(f.Height)
		heightCount[h]++
		if heightCount[h] > maxHeight {
			maxHeight = heightCount[h]
			commonHeight = h
		}
		fontCount[f.FontName] += utf8.RuneCountInString(f.Text)
		if fontCount[f.FontName] > maxFont {
			maxFont = fontCount[f.FontName]
			commonFont = f.FontName
		}
	}

	totalWidth, chars := 0.0, 0
	for _, f := range fragments {
		if f.IsBlank() || f.FontName != commonFont || roundTenth(f.Height) != commonHeight {
			continue
		}
		totalWidth += f.Width
		chars += utf8.RuneCountInString(f.Text)
	}
	if chars == 0 {
		return 0
	}
	return totalWidth / float64(chars)
}

// mergeAdjacent joins neighbouring fragments of the same weight whose gap is
// at most charWidth.
func (g *LineGrouper) mergeAdjacent(fragments []text.TextFragment, charWidth float64) []text.TextFragment {
	if len(fragments) < 2 {
		return fragments
	}

	merged := make([]text.TextFragment, 0, len(fragments))
	cur := fragments[0]
	for _, next := range fragments[1:] {
		gap := next.X - cur.Right()
		if gap <= charWidth && cur.IsBold() == next.IsBold() {
			cur = g.join(cur, next, gap)
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

// join returns a new fragment spanning left and right.
func (g *LineGrouper) join(left, right text.TextFragment, gap float64) text.TextFragment {
	sep := ""
	if g.needsSpace(left.Text, right.Text, gap, math.Max(left.LineHeight(), right.LineHeight())) {
		sep = " "
	}

	out := left
	out.Text = left.Text + sep + right.Text
	out.Width = math.Max(left.Right(), right.Right()) - left.X
	out.Height = math.Max(left.Height, right.Height)
	return out
}

// needsSpace decides whether joined fragments need a separating space.
func (g *LineGrouper) needsSpace(left, right string, gap, height float64) bool {
	if left == "" || right == "" {
		return false
	}
	if strings.HasSuffix(left, " ") || strings.HasPrefix(right, " ") {
		return false
	}
	if gap > height*g.config.WordGapRatio {
		return true
	}

	last, _ := utf8.DecodeLastRuneInString(left)
	first, _ := utf8.DecodeRuneInString(right)
	if strings.ContainsRune(":,|.", last) || IsBulletRune(last) {
		return true
	}
	return first == '|' || IsBulletRune(first)
}

// buildLine assembles a Line from a band
func (g *LineGrouper) buildLine(b *band) Line {
	line := Line{
		Fragments: b.fragments,
		Page:      b.page,
		Y:         b.y,
	}
	if len(b.fragments) == 0 {
		return line
	}

	line.BBox = fragmentBBox(b.fragments[0])
	line.Height = b.fragments[0].Height
	for _, f := range b.fragments[1:] {
		line.BBox = line.BBox.Union(fragmentBBox(f))
		if f.Height > line.Height {
			line.Height = f.Height
		}
	}

	line.Text = assembleLineText(b.fragments)
	return line
}

// assembleLineText joins fragment texts with single spaces
func assembleLineText(fragments []text.TextFragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func fragmentBBox(f text.TextFragment) model.BBox {
	return model.NewBBox(f.X, f.Y, f.Width, f.LineHeight())
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// LineLayout methods

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// GetLine returns a specific line by index
func (l *LineLayout) GetLine(index int) *Line {
	if l == nil || index < 0 || index >= len(l.Lines) {
		return nil
	}
	return &l.Lines[index]
}

// GetText returns all text in line order, one line per row
func (l *LineLayout) GetText() string {
	if l == nil || len(l.Lines) == 0 {
		return ""
	}
	texts := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// GetAllFragments returns all fragments in reading order
func (l *LineLayout) GetAllFragments() []text.TextFragment {
	if l == nil {
		return nil
	}

	var result []text.TextFragment
	for _, line := range l.Lines {
		result = append(result, line.Fragments...)
	}
	return result
}

// Line methods

// WordCount returns an approximate word count for the line
func (line *Line) WordCount() int {
	if line == nil || line.Text == "" {
		return 0
	}
	return len(strings.Fields(line.Text))
}

// IsEmpty returns true if the line has no text content
func (line *Line) IsEmpty() bool {
	if line == nil {
		return true
	}
	return strings.TrimSpace(line.Text) == ""
}

// StartsBold reports whether the line's first fragment is bold
func (line *Line) StartsBold() bool {
	if line == nil || len(line.Fragments) == 0 {
		return false
	}
	return line.Fragments[0].IsBold()
}

// WithFragments returns a copy of the line holding only the given fragments,
// with its text and bounds recomputed. Index, Page, Y and GapAbove are kept.
func (line Line) WithFragments(fragments []text.TextFragment) Line {
	out := Line{
		Fragments: fragments,
		Index:     line.Index,
		Page:      line.Page,
		Y:         line.Y,
		GapAbove:  line.GapAbove,
	}
	if len(fragments) == 0 {
		return out
	}

	out.BBox = fragmentBBox(fragments[0])
	out.Height = fragments[0].Height
	for _, f := range fragments[1:] {
		out.BBox = out.BBox.Union(fragmentBBox(f))
		if f.Height > out.Height {
			out.Height = f.Height
		}
	}
	out.Text = assembleLineText(fragments)
	return out
}
