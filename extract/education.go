package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/vitae/layout"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/scoring"
	"github.com/tsawler/vitae/text"
)

var (
	educationTitles = []string{"education", "istruzione", "formazione", "educación", "ausbildung"}
	courseTitles    = []string{"course", "corsi"}
)

func hasSchool(f text.TextFragment) bool { return isSchool(f.Text) }

func hasDegree(f text.TextFragment) bool { return isDegree(f.Text) }

var schoolFeatures = []scoring.FeatureSet{
	scoring.Predicate("school", hasSchool, 4),
	scoring.Predicate("degree", hasDegree, -2),
	scoring.Predicate("number", hasNumber, -1),
	scoring.Predicate("comma", hasComma, -1),
}

var degreeFeatures = []scoring.FeatureSet{
	scoring.Predicate("degree", hasDegree, 4),
	scoring.Predicate("school", hasSchool, -2),
	scoring.Predicate("number", hasNumber, -1),
	scoring.Predicate("comma", hasComma, -1),
}

var gpaFeatures = []scoring.FeatureSet{
	scoring.Matcher("grade", matchGrade, 4),
	scoring.Predicate("comma", hasComma, -3),
	scoring.Predicate("letterOutsideGrade", hasLetterOutsideGrade, -4),
	scoring.Predicate("school", hasSchool, -4),
	scoring.Predicate("degree", hasDegree, -4),
	scoring.Predicate("numberOutsideGrade", hasNumberOutsideGrade, -2),
}

// Educations extracts one entry per education subsection. A courses section
// is summarised into the first entry's descriptions.
func (e *Extractor) Educations(sections *layout.Sections) []model.Education {
	educations := []model.Education{}

	for i, sub := range e.divider.Divide(sections.Find(educationTitles...)) {
		educations = append(educations, e.education(fmt.Sprintf("educations[%d]", i), sub))
	}

	if courses := sections.Find(courseTitles...); len(courses) > 0 && len(educations) > 0 {
		educations[0].Descriptions = append(educations[0].Descriptions, "Courses: "+joinLines(courses))
	}

	return educations
}

func (e *Extractor) education(field string, lines []layout.Line) model.Education {
	candidates := flatten(lines)

	// Step 1: The date, then drop every date-like fragment
	date := e.pick(field+".date", candidates, dateFeatures).Value
	candidates = without(candidates, isDateLike)

	// Step 2: School, degree and grade each narrow the pool for the next
	school := e.pick(field+".school", candidates, schoolFeatures).Value
	candidates = without(candidates, isValue(school))

	degree := e.pick(field+".degree", candidates, degreeFeatures).Value
	candidates = without(candidates, isValue(degree))

	gpa := e.pick(field+".gpa", candidates, gpaFeatures).Value
	if !isGrade(gpa) {
		gpa = ""
	}

	// Step 3: Descriptions only when a start is detected
	descriptions := []string{}
	if idx := layout.DescriptionsStartWithConfig(lines, e.subConfig); idx >= 0 {
		descriptions = layout.BulletPoints(lines[idx:])
	}

	return model.Education{
		School:       school,
		Degree:       degree,
		Date:         date,
		GPA:          strings.TrimSpace(gpa),
		Descriptions: descriptions,
	}
}
