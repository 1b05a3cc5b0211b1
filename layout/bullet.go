package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BulletRunes are the glyphs recognised as bullet points.
var BulletRunes = []rune{
	'⋅', // dot operator
	'∙', // bullet operator
	'🞄', // black slightly small circle
	'•', // bullet
	'⦁', // Z notation spot
	'⚫', // medium black circle
	'●', // black circle
	'⬤', // black large circle
	'⚬', // medium small white circle
	'○', // white circle
}

// IsBulletRune reports whether r is a bullet glyph
func IsBulletRune(r rune) bool {
	for _, b := range BulletRunes {
		if r == b {
			return true
		}
	}
	return false
}

// StartsWithBullet reports whether s, ignoring leading whitespace, begins
// with a bullet glyph
func StartsWithBullet(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(s)
	return IsBulletRune(r)
}

// ContainsBullet reports whether s contains any bullet glyph
func ContainsBullet(s string) bool {
	return strings.IndexFunc(s, IsBulletRune) >= 0
}

// SubsectionConfig holds configuration for entry and description detection
type SubsectionConfig struct {
	// GapMultiplier scales the most common line gap; a larger gap starts a
	// new entry (default: 1.4)
	GapMultiplier float64

	// MinDescriptionWords is the word count at which a single-fragment line
	// without digits reads as a description (default: 8)
	MinDescriptionWords int

	// IndentThreshold is how far, in points, a line must start right of the
	// entry's first line to read as an indented description (default: 10)
	IndentThreshold float64

	// MinIndentedWords is the word count an indented line needs to read as a
	// description (default: 3)
	MinIndentedWords int
}

// DefaultSubsectionConfig returns sensible default configuration
func DefaultSubsectionConfig() SubsectionConfig {
	return SubsectionConfig{
		GapMultiplier:       1.4,
		MinDescriptionWords: 8,
		IndentThreshold:     10,
		MinIndentedWords:    3,
	}
}

// FirstBulletLine returns the index of the first line that starts with a
// bullet glyph, or -1.
func FirstBulletLine(lines []Line) int {
	for i, line := range lines {
		if len(line.Fragments) > 0 && StartsWithBullet(line.Fragments[0].Text) {
			return i
		}
	}
	return -1
}

// DescriptionsStart returns the index of the line where an entry's
// descriptions begin, or -1 when none is recognised. Callers choose their
// own default in that case.
func DescriptionsStart(lines []Line) int {
	return DescriptionsStartWithConfig(lines, DefaultSubsectionConfig())
}

// DescriptionsStartWithConfig is DescriptionsStart with explicit thresholds.
func DescriptionsStartWithConfig(lines []Line, config SubsectionConfig) int {
	// Step 1: A bullet glyph is the strongest signal
	if i := FirstBulletLine(lines); i >= 0 {
		return i
	}

	// Step 2: A long single-fragment line of prose
	for i, line := range lines {
		if len(line.Fragments) == 1 && isProse(line.Text, config.MinDescriptionWords) {
			return i
		}
	}

	// Step 3: An indented line of several words
	if len(lines) < 2 {
		return -1
	}
	margin := lines[0].BBox.X
	for i := 1; i < len(lines); i++ {
		if lines[i].BBox.X > margin+config.IndentThreshold && lines[i].WordCount() >= config.MinIndentedWords {
			return i
		}
	}
	return -1
}

// isProse reports whether s has at least minWords words and no digits.
func isProse(s string, minWords int) bool {
	words := strings.Fields(s)
	if len(words) < minWords {
		return false
	}
	for _, w := range words {
		if strings.IndexFunc(w, unicode.IsDigit) >= 0 {
			return false
		}
	}
	return true
}

// BulletPoints turns description lines into bullet entries. Without any
// bullet glyph every line is its own entry. Otherwise the lines are joined
// and split on the dominant bullet glyph; text before the first bullet is
// discarded.
func BulletPoints(lines []Line) []string {
	hasBullet := false
	for _, line := range lines {
		if ContainsBullet(line.Text) {
			hasBullet = true
			break
		}
	}

	if !hasBullet {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if t := strings.TrimSpace(line.Text); t != "" {
				out = append(out, t)
			}
		}
		return out
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	all := strings.Join(texts, " ")

	bullet := dominantBullet(lines)
	first := strings.IndexRune(all, bullet)
	if first < 0 {
		return []string{}
	}

	out := []string{}
	for _, part := range strings.Split(all[first:], string(bullet)) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// dominantBullet returns the bullet glyph that most often starts a fragment,
// falling back to the most frequent bullet glyph anywhere. Ties go to the
// glyph seen first.
func dominantBullet(lines []Line) rune {
	if r, ok := mostCommonBullet(lines, true); ok {
		return r
	}
	r, _ := mostCommonBullet(lines, false)
	return r
}

func mostCommonBullet(lines []Line, leadingOnly bool) (rune, bool) {
	counts := make(map[rune]int)
	var best rune
	bestCount := 0

	count := func(r rune) {
		if !IsBulletRune(r) {
			return
		}
		counts[r]++
		if counts[r] > bestCount {
			best = r
			bestCount = counts[r]
		}
	}

	for _, line := range lines {
		for _, f := range line.Fragments {
			if leadingOnly {
				r, _ := utf8.DecodeRuneInString(strings.TrimLeftFunc(f.Text, unicode.IsSpace))
				count(r)
				continue
			}
			for _, r := range f.Text {
				count(r)
			}
		}
	}
	return best, bestCount > 0
}
