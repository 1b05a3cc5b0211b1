package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
)

var skillTitles = []string{"skill", "competenz", "conoscenz", "abilit", "habilidad", "compétence", "kenntnisse"}

// ratingPattern recognises one way of writing a skill rating. Patterns are
// tried in order and the first that yields a rating wins.
type ratingPattern struct {
	re     *regexp.Regexp
	rating func(match []string) (int, bool)
}

func countRune(r rune) func([]string) (int, bool) {
	return func(m []string) (int, bool) {
		return strings.Count(m[0], string(r)), true
	}
}

func runeCount(m []string) (int, bool) {
	return utf8.RuneCountInString(strings.TrimSpace(m[0])), true
}

func digitInRange(m []string) (int, bool) {
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

var levelRatings = map[string]int{
	"expert": 5, "esperto": 5,
	"advanced": 4, "avanzato": 4,
	"intermediate": 3, "intermedio": 3,
	"beginner": 2, "principiante": 2,
	"novice": 1,
}

var ratingPatterns = []ratingPattern{
	{regexp.MustCompile(`[●○]{1,5}\s*$`), countRune('●')},
	{regexp.MustCompile(`[●○]{1,5}`), func(m []string) (int, bool) {
		n := strings.Count(m[0], "●")
		return n, n > 0
	}},
	{regexp.MustCompile(`[★☆]{1,5}\s*$`), countRune('★')},
	{regexp.MustCompile(`(\d+)\s*/\s*5\s*$`), func(m []string) (int, bool) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > 5 {
			return 0, false
		}
		return n, true
	}},
	{regexp.MustCompile(`(\d{1,3})\s*%\s*$`), func(m []string) (int, bool) {
		p, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return max(0, min(5, int(math.Round(float64(p)/20)))), true
	}},
	{regexp.MustCompile(`(?i)\(?\b(expert|esperto|advanced|avanzato|intermediate|intermedio|beginner|principiante|novice)\)?\s*$`), func(m []string) (int, bool) {
		return levelRatings[strings.ToLower(m[1])], true
	}},
	{regexp.MustCompile(`\|{1,5}\s*$`), runeCount},
	{regexp.MustCompile(`\.{2,5}\s*$`), runeCount},
	{regexp.MustCompile(`^\s*(\d)\s*$`), digitInRange},
	{regexp.MustCompile(`\((\d)\)\s*$`), digitInRange},
	{regexp.MustCompile(`:\s*(\d)\s*$`), digitInRange},
}

// ParseSkillRating splits s into a skill name and a 0-5 rating. Only the
// text of the recognised rating is removed from the name; a rating of 0
// means none was found. ok reports whether a rating notation was present.
//
//	ParseSkillRating("Python ●●●●○")  // "Python", 4
//	ParseSkillRating("JavaScript: 5") // "JavaScript", 5
//	ParseSkillRating("Go")            // "Go", 0
func ParseSkillRating(s string) (name string, rating int, ok bool) {
	for _, p := range ratingPatterns {
		loc := p.re.FindStringSubmatchIndex(s)
		if loc == nil {
			continue
		}
		match := make([]string, len(loc)/2)
		for i := range match {
			if loc[2*i] >= 0 {
				match[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		r, valid := p.rating(match)
		if !valid {
			continue
		}
		return cleanSkillName(s[:loc[0]] + " " + s[loc[1]:]), r, true
	}
	return cleanSkillName(s), 0, false
}

func cleanSkillName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(strings.TrimRight(s, " :-–|"))
}

// Skills extracts featured skills and descriptions from the skills section.
// Lines before the descriptions start are featured skills; without a start,
// the leading lines that carry ratings are.
func (e *Extractor) Skills(sections *layout.Sections) model.Skills {
	skills := model.NewSkills()
	lines := sections.Find(skillTitles...)
	if len(lines) == 0 {
		return skills
	}

	idx := layout.DescriptionsStartWithConfig(lines, e.subConfig)
	if idx < 0 {
		idx = 0
		for idx < len(lines) && lineHasRating(lines[idx]) {
			idx++
		}
	}

	copy(skills.FeaturedSkills, featuredSkills(lines[:idx]))
	skills.Descriptions = layout.BulletPoints(lines[idx:])
	return skills
}

func lineHasRating(line layout.Line) bool {
	for _, f := range line.Fragments {
		for _, part := range strings.Split(f.Text, ",") {
			if _, _, ok := ParseSkillRating(part); ok {
				return true
			}
		}
	}
	return false
}

// featuredSkills parses rated skills from lines, at most
// model.FeaturedSkillCapacity of them. A fragment holding only a rating
// rates the skill before it.
func featuredSkills(lines []layout.Line) []model.FeaturedSkill {
	var out []model.FeaturedSkill
	for _, line := range lines {
		for _, f := range line.Fragments {
			for _, part := range strings.Split(f.Text, ",") {
				name, rating, ok := ParseSkillRating(part)
				switch {
				case name != "":
					if len(out) < model.FeaturedSkillCapacity {
						out = append(out, model.FeaturedSkill{Skill: name, Rating: rating})
					}
				case ok && len(out) > 0 && out[len(out)-1].Rating == 0:
					out[len(out)-1].Rating = rating
				}
			}
		}
	}
	return out
}
