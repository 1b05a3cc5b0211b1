package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/scoring"
)

var (
	nameRe          = regexp.MustCompile(`^[\p{L}\s.'’-]+$`)
	emailRe         = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe         = regexp.MustCompile(`\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{4}`)
	intlPhoneRe     = regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{1,4}\)?(?:[\s.-]?\d{2,4}){2,4}`)
	locationRe      = regexp.MustCompile(`[A-Z][a-zA-Z\s]+, [A-Z]{2}`)
	urlPathRe       = regexp.MustCompile(`\S+\.[a-z]+/\S+`)
	urlSchemeRe     = regexp.MustCompile(`https?://\S+\.\S+`)
	urlWWWRe        = regexp.MustCompile(`www\.\S+\.\S+`)
	summaryTitles   = []string{"summary", "sommario", "profilo personale", "about me", "chi sono"}
	objectiveTitles = []string{"objective", "obiettivo"}
)

var nameFeatures = []scoring.FeatureSet{
	scoring.Regexp("onlyLettersSpacesPeriods", nameRe, 4),
	scoring.Predicate("bold", isBold, 3),
	scoring.Predicate("allUpper", hasLetterAndIsAllUpper, 3),
	scoring.Predicate("at", hasAt, -6),
	scoring.Predicate("number", hasNumber, -6),
	scoring.Predicate("parenNumber", hasParenNumber, -6),
	scoring.Predicate("comma", hasComma, -6),
	scoring.Predicate("slash", hasSlash, -6),
	scoring.Predicate("fourWords", hasFourOrMoreWords, -4),
}

var emailFeatures = []scoring.FeatureSet{
	scoring.Regexp("email", emailRe, 5),
	scoring.Predicate("bold", isBold, -2),
	scoring.Predicate("allUpper", hasLetterAndIsAllUpper, -2),
	scoring.Predicate("parenNumber", hasParenNumber, -6),
	scoring.Predicate("comma", hasComma, -6),
	scoring.Predicate("slash", hasSlash, -6),
	scoring.Predicate("fourWords", hasFourOrMoreWords, -6),
}

var phoneFeatures = []scoring.FeatureSet{
	scoring.Regexp("intlPhone", intlPhoneRe, 4),
	scoring.Regexp("phone", phoneRe, 5),
	scoring.Predicate("letter", hasLetter, -6),
}

var locationFeatures = []scoring.FeatureSet{
	scoring.Regexp("cityState", locationRe, 5),
	scoring.Predicate("bold", isBold, -2),
	scoring.Predicate("at", hasAt, -6),
	scoring.Predicate("parenNumber", hasParenNumber, -4),
	scoring.Predicate("slash", hasSlash, -6),
}

var urlFeatures = []scoring.FeatureSet{
	scoring.Regexp("urlPath", urlPathRe, 5),
	scoring.Regexp("urlScheme", urlSchemeRe, 4),
	scoring.Regexp("urlWWW", urlWWWRe, 4),
	scoring.Predicate("bold", isBold, -2),
	scoring.Predicate("at", hasAt, -6),
	scoring.Predicate("parenNumber", hasParenNumber, -4),
	scoring.Predicate("comma", hasComma, -6),
	scoring.Predicate("fourWords", hasFourOrMoreWords, -6),
}

var summaryFeatures = []scoring.FeatureSet{
	scoring.Predicate("fourWords", hasFourOrMoreWords, 3),
	scoring.Predicate("bold", isBold, -2),
	scoring.Predicate("at", hasAt, -6),
	scoring.Predicate("parenNumber", hasParenNumber, -4),
	scoring.Predicate("location", matches(locationRe), -6),
}

// Profile extracts the contact header from the profile section. An explicit
// summary section wins over an objective section, which wins over a summary
// inferred from the profile lines.
func (e *Extractor) Profile(sections *layout.Sections) model.Profile {
	candidates := flatten(sections.Lines(layout.ProfileSection))

	profile := model.Profile{
		Name:     e.pick("profile.name", candidates, nameFeatures).Value,
		Email:    e.pick("profile.email", candidates, emailFeatures).Value,
		Phone:    e.pick("profile.phone", candidates, phoneFeatures).Value,
		Location: e.pick("profile.location", candidates, locationFeatures).Value,
		URL:      e.pick("profile.url", candidates, urlFeatures).Value,
	}

	inferred := e.pick("profile.summary", candidates, summaryFeatures, scoring.JoinTies()).Value
	switch {
	case len(sections.Find(summaryTitles...)) > 0:
		profile.Summary = joinLines(sections.Find(summaryTitles...))
	case len(sections.Find(objectiveTitles...)) > 0:
		profile.Summary = joinLines(sections.Find(objectiveTitles...))
	default:
		profile.Summary = inferred
	}

	return profile
}

// joinLines joins the text of lines with single spaces.
func joinLines(lines []layout.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
