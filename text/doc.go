// Package text defines the positioned text fragment that every other stage of
// the resume parser consumes, plus a few text utilities shared by them.
//
// # Fragments
//
// A [TextFragment] is one run of text recovered from a PDF page together with
// its position (X, Y in PDF user space, Y growing upward), its dimensions and
// the font it was drawn with:
//
//	frag := text.TextFragment{
//	    Text:     "JOHN DOE",
//	    X:        72, Y: 720,
//	    Width:    80, Height: 14,
//	    FontName: "Helvetica-Bold",
//	    FontSize: 14,
//	}
//	frag.IsBold() // true
//
// Fragments are values. Nothing in this module mutates a fragment once the
// source has produced it; stages that need a different fragment build a new one.
//
// # Folding
//
// [Fold] lower-cases a string and strips diacritics, so "Università" and
// "UNIVERSITA" compare equal. [ContainsWord] uses it for keyword lookups that
// must respect word boundaries.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// The [DetectDirection] function analyzes text to determine its direction.
package text
