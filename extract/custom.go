package extract

import (
	"strings"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/privacy"
)

var customTitles = []string{
	// English
	"custom", "additional", "other", "miscellaneous", "extra", "personal",
	"interests", "hobbies", "achievements", "certification", "languages",
	"volunteer", "award", "honor", "publications", "references", "portfolio",
	"activities", "extracurricular",
	// Italian
	"ulteriori", "altre", "altro", "interessi", "hobby", "certificazion",
	"lingue", "volontariato", "premi", "pubblicazion", "referenze",
	"attivita", "informazioni",
	// Spanish, French, German
	"idiomas", "intereses", "otros", "langues", "centres d'interet",
	"sprachen", "interessen", "sonstiges",
}

// standardTitles name the sections other extractors own.
var standardTitles = []string{
	layout.ProfileSection, "work", "experience", "employment", "education",
	"skill", "project", "summary", "objective", "course",
	"esperienz", "lavor", "istruzione", "formazione", "competenz",
	"progett", "sommario", "obiettivo", "corsi",
}

// Custom collects descriptions from every section matching a custom title,
// in document order. Without one it falls back to every section no other
// extractor owns. Privacy statements never reach the output.
func (e *Extractor) Custom(sections *layout.Sections) model.Custom {
	custom := model.Custom{Descriptions: []string{}}

	matched := sections.FindAll(customTitles...)
	if len(matched) == 0 {
		for _, sec := range sections.All() {
			if !layout.NameMatches(sec.Name, standardTitles) {
				matched = append(matched, sec)
			}
		}
	}

	for _, sec := range matched {
		custom.Descriptions = append(custom.Descriptions, customDescriptions(privacy.FilterLines(sec.Lines))...)
	}
	return custom
}

// customDescriptions keeps plain lines as they are until the first line with
// a bullet glyph; from there on the text is split into bullet entries.
func customDescriptions(lines []layout.Line) []string {
	out := []string{}
	for i, line := range lines {
		if layout.ContainsBullet(line.Text) {
			return append(out, layout.BulletPoints(lines[i:])...)
		}
		if t := strings.TrimSpace(line.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
