// Package scoring picks the best candidate fragment for a resume field.
//
// Each field is described by a list of [FeatureSet] values. A feature set
// is a predicate with a signed weight; a candidate's score is the sum of the
// weights of every feature it matches. The highest score wins and ties go to
// the earliest candidate:
//
//	features := []scoring.FeatureSet{
//	    scoring.Regexp("email", emailPattern, 5),
//	    scoring.Predicate("bold", isBold, -2),
//	}
//	result := scoring.Select(candidates, features)
//	fmt.Println(result.Value, result.Score)
//
// Features built with [Regexp] or [Matcher] return the matched substring
// rather than the whole fragment text when their candidate wins.
package scoring

import (
	"regexp"
	"strings"

	"github.com/tsawler/vitae/text"
)

// MatchFunc tests a fragment. When ok is true and the feature returns its
// match, value is the text reported for a winning candidate.
type MatchFunc func(f text.TextFragment) (value string, ok bool)

// FeatureSet is a weighted predicate over a candidate fragment.
type FeatureSet struct {
	Name        string
	Match       MatchFunc
	Weight      int
	ReturnMatch bool
}

// Predicate builds a feature from a boolean test.
func Predicate(name string, fn func(text.TextFragment) bool, weight int) FeatureSet {
	return FeatureSet{
		Name: name,
		Match: func(f text.TextFragment) (string, bool) {
			return "", fn(f)
		},
		Weight: weight,
	}
}

// Regexp builds a value-returning feature from a pattern; the first match
// in the fragment text is the value.
func Regexp(name string, re *regexp.Regexp, weight int) FeatureSet {
	return FeatureSet{
		Name: name,
		Match: func(f text.TextFragment) (string, bool) {
			loc := re.FindStringIndex(f.Text)
			if loc == nil {
				return "", false
			}
			return f.Text[loc[0]:loc[1]], true
		},
		Weight:      weight,
		ReturnMatch: true,
	}
}

// Matcher builds a value-returning feature from a custom match function.
func Matcher(name string, fn MatchFunc, weight int) FeatureSet {
	return FeatureSet{Name: name, Match: fn, Weight: weight, ReturnMatch: true}
}

// CandidateScore is the outcome of scoring one candidate.
type CandidateScore struct {
	Text    string
	Score   int
	Matched []string

	// Value is the text reported if this candidate wins: the first positive
	// value-returning match, else the trimmed candidate text
	Value string
}

// Result is the outcome of a selection.
type Result struct {
	// Value is the selected text, or "" when nothing qualified
	Value string

	// Score is the winning score
	Score int

	// Index is the winner's position in the candidate list, or -1
	Index int

	// Scores holds every candidate's score in candidate order
	Scores []CandidateScore
}

// Found reports whether a candidate was selected.
func (r Result) Found() bool {
	return r.Index >= 0
}

type options struct {
	acceptNonPositive bool
	joinTies          bool
}

// Option adjusts a selection.
type Option func(*options)

// AcceptNonPositive lets a best score of zero or below still win.
func AcceptNonPositive() Option {
	return func(o *options) { o.acceptNonPositive = true }
}

// JoinTies joins the values of every candidate tied at the best score,
// separated by spaces, instead of taking the first.
func JoinTies() Option {
	return func(o *options) { o.joinTies = true }
}

// Select scores every candidate against every feature and returns the best.
// It is deterministic and does not modify its arguments.
func Select(candidates []text.TextFragment, features []FeatureSet, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{Index: -1, Scores: make([]CandidateScore, len(candidates))}
	if len(candidates) == 0 {
		return result
	}

	for i, c := range candidates {
		result.Scores[i] = score(c, features)
	}

	best := 0
	for i := 1; i < len(result.Scores); i++ {
		if result.Scores[i].Score > result.Scores[best].Score {
			best = i
		}
	}

	if result.Scores[best].Score <= 0 && !o.acceptNonPositive {
		return result
	}

	result.Index = best
	result.Score = result.Scores[best].Score
	result.Value = result.Scores[best].Value

	if o.joinTies {
		var parts []string
		for _, s := range result.Scores {
			if s.Score == result.Score {
				parts = append(parts, s.Value)
			}
		}
		result.Value = strings.Join(parts, " ")
	}

	return result
}

// Score returns the summed weight of the features fragment f matches.
func Score(f text.TextFragment, features []FeatureSet) int {
	return score(f, features).Score
}

func score(f text.TextFragment, features []FeatureSet) CandidateScore {
	cs := CandidateScore{Text: f.Text, Value: strings.TrimSpace(f.Text)}
	valueSet := false
	for _, fs := range features {
		if fs.Match == nil {
			continue
		}
		value, ok := fs.Match(f)
		if !ok {
			continue
		}
		cs.Score += fs.Weight
		cs.Matched = append(cs.Matched, fs.Name)
		if fs.ReturnMatch && fs.Weight > 0 && !valueSet {
			cs.Value = strings.TrimSpace(value)
			valueSet = true
		}
	}
	return cs
}
