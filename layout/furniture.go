package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/vitae/text"
)

// Margin identifies the page band a repeated line was found in
type Margin int

const (
	TopMargin Margin = iota
	BottomMargin
)

func (m Margin) String() string {
	if m == TopMargin {
		return "top"
	}
	return "bottom"
}

// FurnitureConfig holds configuration for page furniture detection
type FurnitureConfig struct {
	// MarginHeight is the distance from the top or bottom of a page's
	// content in which repeated lines are considered furniture.
	// Default: 72 points (1 inch)
	MarginHeight float64

	// MinOccurrenceRatio is the minimum fraction of pages a line must
	// appear on to be removed (0.0 to 1.0)
	// Default: 0.5
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum difference, in points, between the
	// margin offsets of matching lines
	// Default: 5 points
	PositionTolerance float64

	// MinPages is the minimum page count for detection to run
	// Default: 2
	MinPages int
}

// DefaultFurnitureConfig returns sensible default configuration
func DefaultFurnitureConfig() FurnitureConfig {
	return FurnitureConfig{
		MarginHeight:       72.0,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5.0,
		MinPages:           2,
	}
}

// Furniture is one repeated running header or footer
type Furniture struct {
	Margin Margin

	// Text is the line text from the first page it was seen on
	Text string

	// IsPageNumber is true when the repeated text differs only by a page number
	IsPageNumber bool

	// Pages lists the 0-based pages the line was removed from
	Pages []int
}

// FurnitureResult is the outcome of furniture removal
type FurnitureResult struct {
	// Lines are the input lines without furniture, reindexed
	Lines []Line

	// Removed lists the repeated headers and footers that were dropped
	Removed []Furniture
}

// FurnitureDetector removes running headers, footers and page numbers that
// repeat across the pages of a multi-page document
type FurnitureDetector struct {
	config FurnitureConfig
}

// NewFurnitureDetector creates a detector with default configuration
func NewFurnitureDetector() *FurnitureDetector {
	return &FurnitureDetector{config: DefaultFurnitureConfig()}
}

// NewFurnitureDetectorWithConfig creates a detector with custom configuration
func NewFurnitureDetectorWithConfig(config FurnitureConfig) *FurnitureDetector {
	return &FurnitureDetector{config: config}
}

var digitsPattern = regexp.MustCompile(`\d+`)

// marginLine is a line inside a page margin
type marginLine struct {
	index  int
	page   int
	offset float64
	text   string
}

type furnitureKey struct {
	margin Margin
	key    string
}

// Filter drops lines that repeat in the same margin position on enough
// pages. Input lines are not modified.
func (d *FurnitureDetector) Filter(lines []Line) *FurnitureResult {
	result := &FurnitureResult{Lines: lines}

	// Step 1: find content bounds per page
	type bounds struct{ top, bottom float64 }
	pageBounds := make(map[int]*bounds)
	for _, line := range lines {
		b, ok := pageBounds[line.Page]
		if !ok {
			pageBounds[line.Page] = &bounds{top: line.Y, bottom: line.Y}
			continue
		}
		b.top = math.Max(b.top, line.Y)
		b.bottom = math.Min(b.bottom, line.Y)
	}
	if len(pageBounds) < d.config.MinPages {
		return result
	}

	// Step 2: collect margin candidates grouped by normalized text
	groups := make(map[Margin]map[string][]marginLine)
	var keys []furnitureKey
	for i, line := range lines {
		b := pageBounds[line.Page]
		if b.top-b.bottom < 2*d.config.MarginHeight {
			continue
		}

		var margin Margin
		var offset float64
		switch {
		case b.top-line.Y < d.config.MarginHeight:
			margin, offset = TopMargin, b.top-line.Y
		case line.Y-b.bottom < d.config.MarginHeight:
			margin, offset = BottomMargin, line.Y-b.bottom
		default:
			continue
		}

		trimmed := strings.TrimSpace(line.Text)
		key := normalizeForComparison(trimmed)
		if len([]rune(key)) <= 2 && !isPageNumberPattern(key) {
			continue
		}

		if groups[margin] == nil {
			groups[margin] = make(map[string][]marginLine)
		}
		if _, seen := groups[margin][key]; !seen {
			keys = append(keys, furnitureKey{margin, key})
		}
		groups[margin][key] = append(groups[margin][key], marginLine{index: i, page: line.Page, offset: offset, text: trimmed})
	}

	// Step 3: keep groups that repeat on enough pages at a steady offset
	minPages := int(float64(len(pageBounds)) * d.config.MinOccurrenceRatio)
	if minPages < 2 {
		minPages = 2
	}

	drop := make(map[int]bool)
	for _, k := range keys {
		group := groups[k.margin][k.key]
		pages := distinctPages(group)
		isPageNumber := isPageNumberPattern(k.key)
		if len(pages) < minPages || !d.consistentOffset(group) {
			continue
		}
		// Only page numbers may differ between pages
		if !isPageNumber && !sameText(group) {
			continue
		}
		for _, c := range group {
			drop[c.index] = true
		}
		result.Removed = append(result.Removed, Furniture{
			Margin:       k.margin,
			Text:         group[0].text,
			IsPageNumber: isPageNumber,
			Pages:        pages,
		})
	}
	if len(drop) == 0 {
		return result
	}

	// Step 4: rebuild the line list
	kept := make([]Line, 0, len(lines)-len(drop))
	for i, line := range lines {
		if drop[i] {
			continue
		}
		line.Index = len(kept)
		kept = append(kept, line)
	}
	result.Lines = kept

	return result
}

func (d *FurnitureDetector) consistentOffset(group []marginLine) bool {
	ref := group[0].offset
	for _, c := range group[1:] {
		if math.Abs(c.offset-ref) > d.config.PositionTolerance {
			return false
		}
	}
	return true
}

func sameText(group []marginLine) bool {
	for _, c := range group[1:] {
		if c.text != group[0].text {
			return false
		}
	}
	return true
}

func distinctPages(group []marginLine) []int {
	seen := make(map[int]bool)
	var pages []int
	for _, c := range group {
		if !seen[c.page] {
			seen[c.page] = true
			pages = append(pages, c.page)
		}
	}
	sort.Ints(pages)
	return pages
}

// normalizeForComparison folds text and replaces digit runs with "#"
func normalizeForComparison(s string) string {
	return digitsPattern.ReplaceAllString(text.Fold(s), "#")
}

var pageNumberForms = []string{
	"#",
	"page #",
	"- # -",
	"# of #",
	"page # of #",
	"#/#",
	"# / #",
	"p. #",
	"p.#",
	"pg #",
	"pg. #",
	"pagina #",
	"pagina # di #",
	"pag. #",
	"# di #",
}

// isPageNumberPattern checks if normalized text looks like a page number
func isPageNumberPattern(normalized string) bool {
	trimmed := strings.TrimSpace(normalized)
	for _, form := range pageNumberForms {
		if trimmed == form {
			return true
		}
	}
	return false
}
