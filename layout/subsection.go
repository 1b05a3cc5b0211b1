package layout

import (
	"math"
	"regexp"
)

// yearPattern marks a line as carrying a date for entry splitting.
var yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

// SubsectionDivider splits a section's lines into repeated entries
type SubsectionDivider struct {
	config SubsectionConfig
}

// NewSubsectionDivider creates a divider with default configuration
func NewSubsectionDivider() *SubsectionDivider {
	return &SubsectionDivider{config: DefaultSubsectionConfig()}
}

// NewSubsectionDividerWithConfig creates a divider with custom configuration
func NewSubsectionDividerWithConfig(config SubsectionConfig) *SubsectionDivider {
	return &SubsectionDivider{config: config}
}

// DivideSubsections splits lines into entries using the default configuration
func DivideSubsections(lines []Line) [][]Line {
	return NewSubsectionDivider().Divide(lines)
}

// Divide returns contiguous, non-empty line ranges, one per entry. The
// vertical gap between lines is tried first; when it finds a single entry the
// lines are split on renewed header structure instead.
func (d *SubsectionDivider) Divide(lines []Line) [][]Line {
	if len(lines) == 0 {
		return nil
	}

	byGap := d.splitByGap(lines)
	if len(byGap) > 1 {
		return byGap
	}
	return d.splitByHeader(lines)
}

// splitByGap starts a new entry whenever the gap to the previous line exceeds
// GapMultiplier times the most common gap.
func (d *SubsectionDivider) splitByGap(lines []Line) [][]Line {
	threshold := MostCommonLineGap(lines) * d.config.GapMultiplier

	var out [][]Line
	current := []Line{lines[0]}
	for i := 1; i < len(lines); i++ {
		if lines[i].Page == lines[i-1].Page && lineGap(lines[i-1], lines[i]) > threshold {
			out = append(out, current)
			current = nil
		}
		current = append(current, lines[i])
	}
	return append(out, current)
}

// splitByHeader starts a new entry at a bold line following a non-bold line,
// or at a dated line following a bullet block.
func (d *SubsectionDivider) splitByHeader(lines []Line) [][]Line {
	var out [][]Line
	current := []Line{lines[0]}
	seenBullet := FirstBulletLine(lines[:1]) == 0

	for i := 1; i < len(lines); i++ {
		prev, line := lines[i-1], lines[i]
		bullet := FirstBulletLine(lines[i:i+1]) == 0

		newBold := !prev.StartsBold() && line.StartsBold() && !bullet
		newDate := seenBullet && !bullet && yearPattern.MatchString(line.Text)

		if newBold || newDate {
			out = append(out, current)
			current = nil
			seenBullet = false
		}
		if bullet {
			seenBullet = true
		}
		current = append(current, line)
	}
	return append(out, current)
}

// MostCommonLineGap returns the most frequent rounded vertical gap between
// consecutive lines on the same page. Ties go to the gap seen first.
func MostCommonLineGap(lines []Line) float64 {
	counts := make(map[float64]int)
	best, bestCount := 0.0, 0
	for i := 1; i < len(lines); i++ {
		if lines[i].Page != lines[i-1].Page {
			continue
		}
		gap := lineGap(lines[i-1], lines[i])
		counts[gap]++
		if counts[gap] > bestCount {
			best = gap
			bestCount = counts[gap]
		}
	}
	return best
}

// lineGap is the rounded distance from prev down to cur. PDF Y grows upward.
func lineGap(prev, cur Line) float64 {
	if cur.GapAbove > 0 {
		return cur.GapAbove
	}
	return math.Round(prev.Y - cur.Y)
}

// BridgedGap returns the gap to record on next when the removed lines between
// prev and next are dropped: the widest single step along prev, removed...,
// next on one page. The hole the removed lines leave is not itself a gap.
// It returns 0 when no step stays on one page.
func BridgedGap(prev Line, removed []Line, next Line) float64 {
	chain := make([]Line, 0, len(removed)+2)
	chain = append(chain, prev)
	chain = append(chain, removed...)
	chain = append(chain, next)

	widest := 0.0
	for i := 1; i < len(chain); i++ {
		if chain[i].Page != chain[i-1].Page {
			continue
		}
		widest = math.Max(widest, lineGap(chain[i-1], chain[i]))
	}
	return widest
}
