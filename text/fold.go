package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s case-folded with diacritics removed and runs of whitespace
// collapsed to a single space. "Università  degli Studi" folds to
// "universita degli studi".
//
// Transformers are built per call; they carry state and are not safe to share
// between goroutines.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// ContainsWord reports whether the folded form of keyword occurs in the
// folded form of s on word boundaries. A trailing "s" after the keyword is
// tolerated so plural forms still match.
//
//	ContainsWord("Università di Pavia", "universita") // true
//	ContainsWord("Junior Developer", "uni")           // false
func ContainsWord(s, keyword string) bool {
	return containsFoldedWord(Fold(s), Fold(keyword))
}

// ContainsAnyWord reports whether any keyword occurs in s on word boundaries.
func ContainsAnyWord(s string, keywords []string) bool {
	folded := Fold(s)
	for _, k := range keywords {
		if containsFoldedWord(folded, Fold(k)) {
			return true
		}
	}
	return false
}

func containsFoldedWord(s, keyword string) bool {
	if keyword == "" {
		return false
	}
	from := 0
	for from <= len(s)-len(keyword) {
		i := strings.Index(s[from:], keyword)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(keyword)
		if boundaryBefore(s, start) && (boundaryAfter(s, end) || (end < len(s) && s[end] == 's' && boundaryAfter(s, end+1))) {
			return true
		}
		from = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
