package layout

import (
	"sort"

	"github.com/tsawler/vitae/text"
)

// ColumnConfig holds configuration for column detection
type ColumnConfig struct {
	// MinGapWidth is the minimum whitespace gap to consider as column separator
	// Default: 20 points
	MinGapWidth float64

	// MinColumnWidth is the minimum width of the text on either side of a gap
	// Default: 50 points
	MinColumnWidth float64

	// MinSideRatio is the minimum share of a page's fragments that must lie
	// on each side of a gap (0.0 to 1.0)
	// Default: 0.2
	MinSideRatio float64

	// MinFragments is the minimum fragment count on a page for detection to run
	// Default: 20
	MinFragments int
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MinGapWidth:    20.0,
		MinColumnWidth: 50.0,
		MinSideRatio:   0.2,
		MinFragments:   20,
	}
}

// Gap is a vertical band of whitespace no fragment crosses
type Gap struct {
	Page  int
	Left  float64
	Right float64
}

// Width returns the width of the gap
func (g Gap) Width() float64 {
	return g.Right - g.Left
}

// ColumnDetector finds pages laid out in side-by-side columns. The line
// grouper reads such pages across the columns, so callers use it to warn
// rather than to reorder text.
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a new column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{config: DefaultColumnConfig()}
}

// NewColumnDetectorWithConfig creates a column detector with custom configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	return &ColumnDetector{config: config}
}

// slab is a horizontal range covered by text
type slab struct {
	left, right float64
}

// Detect returns the column gutters found on each page, ordered by page then
// left edge.
func (d *ColumnDetector) Detect(fragments []text.TextFragment) []Gap {
	byPage := make(map[int][]text.TextFragment)
	var pages []int
	for _, f := range fragments {
		if !f.IsValid() || f.IsBlank() {
			continue
		}
		if _, ok := byPage[f.Page]; !ok {
			pages = append(pages, f.Page)
		}
		byPage[f.Page] = append(byPage[f.Page], f)
	}
	sort.Ints(pages)

	var gaps []Gap
	for _, page := range pages {
		gaps = append(gaps, d.pageGaps(page, byPage[page])...)
	}
	return gaps
}

// IsMultiColumn reports whether any page has a column gutter.
func (d *ColumnDetector) IsMultiColumn(fragments []text.TextFragment) bool {
	return len(d.Detect(fragments)) > 0
}

func (d *ColumnDetector) pageGaps(page int, fragments []text.TextFragment) []Gap {
	if len(fragments) < d.config.MinFragments {
		return nil
	}

	slabs := make([]slab, len(fragments))
	for i, f := range fragments {
		slabs[i] = slab{left: f.X, right: f.Right()}
	}
	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].left < slabs[j].left
	})
	merged := mergeSlabs(slabs)

	minSide := int(float64(len(fragments)) * d.config.MinSideRatio)
	if minSide < 1 {
		minSide = 1
	}

	var gaps []Gap
	for i := 0; i < len(merged)-1; i++ {
		gap := Gap{Page: page, Left: merged[i].right, Right: merged[i+1].left}
		if gap.Width() < d.config.MinGapWidth {
			continue
		}

		// Both sides must look like real columns, not a stray date or label
		leftCount, rightCount := 0, 0
		for _, f := range fragments {
			if f.Right() <= gap.Left {
				leftCount++
			} else {
				rightCount++
			}
		}
		if leftCount < minSide || rightCount < minSide {
			continue
		}
		if gap.Left-merged[0].left < d.config.MinColumnWidth ||
			merged[len(merged)-1].right-gap.Right < d.config.MinColumnWidth {
			continue
		}

		gaps = append(gaps, gap)
	}

	return gaps
}

// mergeSlabs merges overlapping horizontal slabs; input is sorted by left edge
func mergeSlabs(slabs []slab) []slab {
	if len(slabs) == 0 {
		return nil
	}

	merged := []slab{slabs[0]}
	for _, current := range slabs[1:] {
		last := &merged[len(merged)-1]
		if current.left <= last.right+5.0 {
			if current.right > last.right {
				last.right = current.right
			}
			continue
		}
		merged = append(merged, current)
	}

	return merged
}
