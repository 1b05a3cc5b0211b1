package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/scoring"
	"github.com/tsawler/vitae/text"
)

var (
	yearRe    = regexp.MustCompile(`(?:19|20)\d{2}`)
	monthRe   = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|Gennaio|Febbraio|Marzo|Aprile|Maggio|Giugno|Luglio|Agosto|Settembre|Ottobre|Novembre|Dicembre)\b`)
	seasonRe  = regexp.MustCompile(`\b(?:Spring|Summer|Fall|Autumn|Winter)\b`)
	presentRe = regexp.MustCompile(`(?i)\b(?:present|current|presente|oggi|attuale|in corso)\b`)

	atRe          = regexp.MustCompile(`@`)
	parenNumberRe = regexp.MustCompile(`\([0-9]+\)`)
	fourWordsRe   = regexp.MustCompile(`(?:\S+\s+){3}\S+`)
)

func isBold(f text.TextFragment) bool { return f.IsBold() }

func hasLetter(f text.TextFragment) bool { return text.HasLetter(f.Text) }

func hasNumber(f text.TextFragment) bool { return text.HasDigit(f.Text) }

func hasComma(f text.TextFragment) bool { return strings.Contains(f.Text, ",") }

func hasSlash(f text.TextFragment) bool { return strings.Contains(f.Text, "/") }

func hasAt(f text.TextFragment) bool { return atRe.MatchString(f.Text) }

func hasParenNumber(f text.TextFragment) bool { return parenNumberRe.MatchString(f.Text) }

func hasFourOrMoreWords(f text.TextFragment) bool { return fourWordsRe.MatchString(f.Text) }

func hasLetterAndIsAllUpper(f text.TextFragment) bool {
	return text.HasLetter(f.Text) && text.IsAllUpper(f.Text)
}

func matches(re *regexp.Regexp) func(text.TextFragment) bool {
	return func(f text.TextFragment) bool { return re.MatchString(f.Text) }
}

// hasText matches fragments containing value. An empty value matches nothing.
func hasText(value string) func(text.TextFragment) bool {
	return func(f text.TextFragment) bool {
		return value != "" && strings.Contains(f.Text, value)
	}
}

// dateFeatures score a fragment as a date. Matching any positive feature makes
// a fragment date-like.
var dateFeatures = []scoring.FeatureSet{
	scoring.Predicate("year", matches(yearRe), 1),
	scoring.Predicate("month", matches(monthRe), 1),
	scoring.Predicate("season", matches(seasonRe), 1),
	scoring.Predicate("present", matches(presentRe), 1),
	scoring.Predicate("comma", hasComma, -1),
}

// isDateLike reports whether f matches a positive date feature. A comma alone
// does not make a fragment date-like.
func isDateLike(f text.TextFragment) bool {
	for _, fs := range dateFeatures {
		if fs.Weight <= 0 {
			continue
		}
		if _, ok := fs.Match(f); ok {
			return true
		}
	}
	return false
}

// flatten returns the fragments of every line in order.
func flatten(lines []layout.Line) []text.TextFragment {
	var out []text.TextFragment
	for _, l := range lines {
		out = append(out, l.Fragments...)
	}
	return out
}

// without returns the candidates that do not satisfy drop.
func without(candidates []text.TextFragment, drop func(text.TextFragment) bool) []text.TextFragment {
	out := make([]text.TextFragment, 0, len(candidates))
	for _, c := range candidates {
		if !drop(c) {
			out = append(out, c)
		}
	}
	return out
}

// isValue matches the fragment whose trimmed text is exactly value.
func isValue(value string) func(text.TextFragment) bool {
	return func(f text.TextFragment) bool {
		return value != "" && strings.TrimSpace(f.Text) == value
	}
}
