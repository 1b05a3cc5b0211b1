// Package privacy recognises the data-processing consent statements that
// European resumes often carry, so they can be flagged and kept out of the
// extracted text.
//
// A statement is recognised by counting characteristic phrases, at least one
// of which must be a marker that only statements use ("acconsento", "i hereby",
// "recruiting purposes"). Short text needs a legal citation as well. A work
// bullet about GDPR compliance cites the law and talks about personal data,
// but it carries no marker.
package privacy

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/text"
)

// Jurisdiction identifies the legal framework a statement cites.
type Jurisdiction int

const (
	// None means the text is not a consent statement
	None Jurisdiction = iota
	// Italy is the Italian privacy code (D.Lgs. 196/2003) form
	Italy
	// EU is the GDPR form written in English
	EU
)

// String returns the jurisdiction name.
func (j Jurisdiction) String() string {
	switch j {
	case Italy:
		return "italy"
	case EU:
		return "eu"
	default:
		return "none"
	}
}

const (
	// MinStatementLength is the rune count text needs to be a statement
	// without a legal citation
	MinStatementLength = 60

	// MinPhraseHits is the number of distinct phrases a statement contains,
	// markers included
	MinPhraseHits = 2
)

// Markers are phrases found only in consent statements.
var (
	italianMarkers = []string{
		"acconsento", "autorizzo", "consenso al trattamento",
		"do il consenso", "presto il consenso",
	}
	englishMarkers = []string{
		"according to law", "european parliament", "i hereby",
		"recruiting purposes", "recruitment purposes",
		"process and use my data", "i agree to the processing",
	}
)

var italianPhrases = []string{
	"trattamento dei dati", "dati personali",
	"d.lgs", "dlgs", "decreto legislativo", "196/2003", "196/03",
	"regolamento ue", "ai sensi",
}

var englishPhrases = []string{
	"regulation (eu)", "general data protection regulation", "consent",
	"personal data", "data protection",
}

var sharedPhrases = []string{"gdpr", "679/16", "679/2016", "2016/679", "art.13", "art. 13"}

var citationRe = regexp.MustCompile(`d\.?\s*lgs\.?\s*(?:n\.?\s*)?196|196\s*/\s*(?:20)?03|679\s*/\s*(?:20)?16|2016\s*/\s*679|\bgdpr\b|\bart\.?\s*13\b`)

// Classify reports which kind of consent statement s is, or None.
func Classify(s string) Jurisdiction {
	folded := text.Fold(s)
	if folded == "" {
		return None
	}
	if utf8.RuneCountInString(folded) < MinStatementLength && !citationRe.MatchString(folded) {
		return None
	}

	compact := strings.ReplaceAll(folded, " ", "")
	itMarkers := countPhrases(folded, compact, italianMarkers)
	enMarkers := countPhrases(folded, compact, englishMarkers)
	it := itMarkers + countPhrases(folded, compact, italianPhrases)
	en := enMarkers + countPhrases(folded, compact, englishPhrases)
	shared := countPhrases(folded, compact, sharedPhrases)

	isItaly := itMarkers > 0 && it+shared >= MinPhraseHits
	isEU := enMarkers > 0 && en+shared >= MinPhraseHits
	switch {
	case isItaly && isEU:
		if it >= en {
			return Italy
		}
		return EU
	case isItaly:
		return Italy
	case isEU:
		return EU
	}
	return None
}

// Hits returns the number of distinct statement phrases in s.
func Hits(s string) int {
	folded := text.Fold(s)
	compact := strings.ReplaceAll(folded, " ", "")
	n := 0
	for _, phrases := range [][]string{italianMarkers, englishMarkers, italianPhrases, englishPhrases, sharedPhrases} {
		n += countPhrases(folded, compact, phrases)
	}
	return n
}

// countPhrases counts phrases found in folded text, also comparing with all
// spaces removed so "D. Lgs. 196/2003" and "D.Lgs.196/2003" match alike.
func countPhrases(folded, compact string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(folded, p) || strings.Contains(compact, strings.ReplaceAll(p, " ", "")) {
			n++
		}
	}
	return n
}

// Detect reports which statements occur anywhere in sections. Each line is
// checked alone and joined with the line after it, so a statement wrapped
// over two lines is still found.
func Detect(sections *layout.Sections) model.PrivacyFlags {
	var flags model.PrivacyFlags
	for _, sec := range sections.All() {
		for _, j := range classifyLines(sec.Lines) {
			switch j {
			case Italy:
				flags.Italy = true
			case EU:
				flags.EU = true
			}
		}
	}
	return flags
}

// classifyLines classifies each line. A line that is not a statement alone
// takes the classification of a statement it forms with a neighbour, when
// both lines carry statement phrases.
func classifyLines(lines []layout.Line) []Jurisdiction {
	out := make([]Jurisdiction, len(lines))
	for i, line := range lines {
		out[i] = Classify(line.Text)
	}
	for i := 0; i+1 < len(lines); i++ {
		if out[i] != None && out[i+1] != None {
			continue
		}
		if Hits(lines[i].Text) == 0 || Hits(lines[i+1].Text) == 0 {
			continue
		}
		if j := Classify(lines[i].Text + " " + lines[i+1].Text); j != None {
			if out[i] == None {
				out[i] = j
			}
			if out[i+1] == None {
				out[i+1] = j
			}
		}
	}
	return out
}

// Filter returns a copy of sections without consent statements. Section
// names and order are kept; lines left empty are dropped.
func Filter(sections *layout.Sections) *layout.Sections {
	out := layout.NewSections()
	for _, sec := range sections.All() {
		out.Set(sec.Name, FilterLines(sec.Lines))
	}
	return out
}

// FilterLines removes statement lines. When a statement shares its line with
// other text, the fragments from the first to the last one carrying statement
// phrases are removed. A line following removed lines records the gap it
// would have had without them, so the hole is not read as an entry break.
// The input is not modified.
func FilterLines(lines []layout.Line) []layout.Line {
	marks := classifyLines(lines)
	out := make([]layout.Line, 0, len(lines))
	var removed []layout.Line
	for i, line := range lines {
		if marks[i] != None {
			line = stripStatement(line)
		}
		if line.IsEmpty() {
			removed = append(removed, lines[i])
			continue
		}
		if len(removed) > 0 && len(out) > 0 {
			line.GapAbove = layout.BridgedGap(out[len(out)-1], removed, lines[i])
		}
		removed = nil
		out = append(out, line)
	}
	return out
}

// stripStatement drops the run of fragments a statement occupies. A statement
// whose phrases straddle fragment boundaries takes the whole line.
func stripStatement(line layout.Line) layout.Line {
	first, last := -1, -1
	for i, f := range line.Fragments {
		if Hits(f.Text) > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return line.WithFragments(nil)
	}

	kept := make([]text.TextFragment, 0, len(line.Fragments)-(last-first+1))
	kept = append(kept, line.Fragments[:first]...)
	kept = append(kept, line.Fragments[last+1:]...)
	return line.WithFragments(kept)
}
