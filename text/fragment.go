package text

import (
	"math"
	"strings"
	"unicode"
)

// TextFragment is a positioned, styled run of text from a PDF page.
type TextFragment struct {
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	FontName  string    `json:"fontName"`
	FontSize  float64   `json:"fontSize"`
	Direction Direction `json:"direction,omitempty"` // Text direction (LTR, RTL, Neutral)
	Page      int       `json:"page,omitempty"`      // 0-based page index
}

// boldMarkers are the font-name substrings that indicate a bold face.
var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demibold"}

// IsBold reports whether the fragment's font name carries a bold marker.
func (f TextFragment) IsBold() bool {
	name := strings.ToLower(f.FontName)
	for _, m := range boldMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// IsValid reports whether the fragment geometry is usable. Fragments with
// NaN or infinite coordinates, or negative dimensions, are malformed.
func (f TextFragment) IsValid() bool {
	for _, v := range []float64{f.X, f.Y, f.Width, f.Height, f.FontSize} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return f.Width >= 0 && f.Height >= 0 && f.FontSize >= 0
}

// IsBlank reports whether the fragment carries no visible text.
func (f TextFragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// Right returns the X coordinate of the fragment's right edge.
func (f TextFragment) Right() float64 {
	return f.X + f.Width
}

// LineHeight returns the height used for line grouping, falling back to the
// font size when the source reported no glyph height.
func (f TextFragment) LineHeight() float64 {
	if f.Height > 0 {
		return f.Height
	}
	return f.FontSize
}

// Trimmed returns the fragment text without surrounding whitespace.
func (f TextFragment) Trimmed() string {
	return strings.TrimSpace(f.Text)
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// HasDigit reports whether s contains at least one decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// IsAllUpper reports whether s has at least one letter and no lower-case
// letters.
func IsAllUpper(s string) bool {
	upper, lower := 0, 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	return upper > 0 && lower == 0
}
