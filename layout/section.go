package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/vitae/text"
)

// ProfileSection is the name of the leading, untitled section.
const ProfileSection = "profile"

// DefaultTitleKeywords are the words that let a stylistically plain line
// still count as a section title.
var DefaultTitleKeywords = []string{
	"experience", "education", "project", "skill", "job", "course",
	"extracurricular", "objective", "summary", "award", "honor",
	"certification", "certificate", "certified", "languages", "volunteer",
	"publications", "references", "portfolio", "activities", "interests",
	"hobbies", "achievements", "additional", "other", "miscellaneous",
	"extra", "personal",
}

// Section is a named run of lines
type Section struct {
	Name  string
	Lines []Line
}

// Sections is an insertion-ordered mapping of section name to lines. The
// zero value is not usable; build one with NewSections.
type Sections struct {
	order []string
	lines map[string][]Line
}

// NewSections returns a Sections holding an empty profile section.
func NewSections() *Sections {
	return &Sections{
		order: []string{ProfileSection},
		lines: map[string][]Line{ProfileSection: {}},
	}
}

// Set stores lines under name. A repeated name replaces the earlier lines but
// keeps its original position.
func (s *Sections) Set(name string, lines []Line) {
	if _, ok := s.lines[name]; !ok {
		s.order = append(s.order, name)
	}
	s.lines[name] = lines
}

// Lines returns the lines stored under name, or nil.
func (s *Sections) Lines(name string) []Line {
	if s == nil {
		return nil
	}
	return s.lines[name]
}

// Has reports whether a section with the given name exists.
func (s *Sections) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.lines[name]
	return ok
}

// Names returns the section names in document order.
func (s *Sections) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the number of sections.
func (s *Sections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// All returns the sections in document order.
func (s *Sections) All() []Section {
	if s == nil {
		return nil
	}
	out := make([]Section, len(s.order))
	for i, name := range s.order {
		out[i] = Section{Name: name, Lines: s.lines[name]}
	}
	return out
}

// Find returns the lines of the first section, in document order, whose
// name contains any keyword, ignoring case and accents.
func (s *Sections) Find(keywords ...string) []Line {
	for _, sec := range s.All() {
		if NameMatches(sec.Name, keywords) {
			return sec.Lines
		}
	}
	return nil
}

// FindAll returns every section whose name contains any keyword.
func (s *Sections) FindAll(keywords ...string) []Section {
	var out []Section
	for _, sec := range s.All() {
		if NameMatches(sec.Name, keywords) {
			out = append(out, sec)
		}
	}
	return out
}

// NameMatches reports whether a section name contains any keyword, ignoring
// case and accents.
func NameMatches(name string, keywords []string) bool {
	folded := text.Fold(name)
	for _, k := range keywords {
		if k != "" && strings.Contains(folded, text.Fold(k)) {
			return true
		}
	}
	return false
}

// SectionConfig holds configuration for section title detection
type SectionConfig struct {
	// SkipLeadingLines is the number of lines that can never be titles (default: 2)
	SkipLeadingLines int

	// MaxKeywordTitleWords is the word limit for keyword-only titles, not
	// counting ampersands (default: 3)
	MaxKeywordTitleWords int

	// Keywords are the words accepted by the keyword fallback
	Keywords []string
}

// DefaultSectionConfig returns sensible default configuration
func DefaultSectionConfig() SectionConfig {
	return SectionConfig{
		SkipLeadingLines:     2,
		MaxKeywordTitleWords: 3,
		Keywords:             DefaultTitleKeywords,
	}
}

// SectionGrouper partitions lines into named sections
type SectionGrouper struct {
	config SectionConfig
}

// NewSectionGrouper creates a section grouper with default configuration
func NewSectionGrouper() *SectionGrouper {
	return &SectionGrouper{config: DefaultSectionConfig()}
}

// NewSectionGrouperWithConfig creates a section grouper with custom configuration
func NewSectionGrouperWithConfig(config SectionConfig) *SectionGrouper {
	return &SectionGrouper{config: config}
}

// Group walks the lines once. Content before the first title belongs to the
// profile section; each title opens a section named after its text.
func (g *SectionGrouper) Group(lines []Line) *Sections {
	sections := NewSections()
	name := ProfileSection
	var acc []Line

	for i, line := range lines {
		if g.IsTitle(line, i) {
			sections.Set(name, acc)
			name = strings.TrimSpace(line.Fragments[0].Text)
			acc = nil
			continue
		}
		acc = append(acc, line)
	}
	sections.Set(name, acc)

	return sections
}

// IsTitle reports whether line, found at position index, is a section title.
func (g *SectionGrouper) IsTitle(line Line, index int) bool {
	if index < g.config.SkipLeadingLines || len(line.Fragments) != 1 {
		return false
	}

	frag := line.Fragments[0]
	txt := strings.TrimSpace(frag.Text)
	if txt == "" {
		return false
	}

	// Primary rule: bold and upper case
	if frag.IsBold() && isUpperWithLetter(txt) {
		return true
	}

	// Fallback: a short, capitalised line naming a known section
	return g.isKeywordTitle(txt)
}

func (g *SectionGrouper) isKeywordTitle(txt string) bool {
	words := 0
	for _, w := range strings.Fields(txt) {
		if w != "&" {
			words++
		}
	}
	if words > g.config.MaxKeywordTitleWords {
		return false
	}

	for _, r := range txt {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '&' {
			return false
		}
	}

	first, _ := utf8.DecodeRuneInString(txt)
	if !unicode.IsUpper(first) {
		return false
	}

	lower := strings.ToLower(txt)
	for _, k := range g.config.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// isUpperWithLetter reports whether s has a letter and equals its upper-case form.
func isUpperWithLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0 && strings.ToUpper(s) == s
}
