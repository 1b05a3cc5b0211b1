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
	workTitles = []string{
		"work", "experience", "employment", "esperienz", "lavor",
		"occupazion", "experiencia", "berufserfahrung",
	}
	workFallbackTitles = []string{"history", "job"}
)

const (
	workInfoLines    = 2
	projectInfoLines = 1
)

func hasJobTitle(f text.TextFragment) bool { return isJobTitle(f.Text) }

func hasMoreThanFiveWords(f text.TextFragment) bool { return len(strings.Fields(f.Text)) > 5 }

var jobTitleFeatures = []scoring.FeatureSet{
	scoring.Predicate("jobTitle", hasJobTitle, 4),
	scoring.Predicate("number", hasNumber, -4),
	scoring.Predicate("moreThanFiveWords", hasMoreThanFiveWords, -3),
}

func companyFeatures(date, jobTitle string) []scoring.FeatureSet {
	return []scoring.FeatureSet{
		scoring.Predicate("bold", isBold, 3),
		scoring.Predicate("date", hasText(date), -4),
		scoring.Predicate("jobTitle", hasText(jobTitle), -4),
	}
}

// WorkExperiences extracts one entry per work subsection. The lines before
// the descriptions start, or the first two lines, hold the company, job
// title and date.
func (e *Extractor) WorkExperiences(sections *layout.Sections) []model.WorkExperience {
	experiences := []model.WorkExperience{}

	lines := sections.Find(workTitles...)
	if len(lines) == 0 {
		lines = sections.Find(workFallbackTitles...)
	}

	for i, sub := range e.divider.Divide(lines) {
		field := fmt.Sprintf("workExperiences[%d]", i)
		idx := e.descriptionsStart(sub, workInfoLines)
		info := flatten(sub[:idx])

		date := e.pick(field+".date", info, dateFeatures).Value
		jobTitle := e.pick(field+".jobTitle", without(info, isValue(date)), jobTitleFeatures).Value

		rest := without(without(info, isValue(date)), isValue(jobTitle))
		company := e.pick(field+".company", rest, companyFeatures(date, jobTitle), scoring.AcceptNonPositive()).Value

		experiences = append(experiences, model.WorkExperience{
			Company:      company,
			JobTitle:     jobTitle,
			Date:         date,
			Descriptions: layout.BulletPoints(sub[idx:]),
		})
	}

	return experiences
}

var projectTitles = []string{"project", "progett", "proyecto", "projet", "projekt"}

func projectFeatures(date string) []scoring.FeatureSet {
	return []scoring.FeatureSet{
		scoring.Predicate("bold", isBold, 2),
		scoring.Predicate("date", hasText(date), -4),
	}
}

// Projects extracts one entry per project subsection. The first line, unless
// a descriptions start is detected earlier or later, holds the name and date.
func (e *Extractor) Projects(sections *layout.Sections) []model.Project {
	projects := []model.Project{}

	for i, sub := range e.divider.Divide(sections.Find(projectTitles...)) {
		field := fmt.Sprintf("projects[%d]", i)
		idx := e.descriptionsStart(sub, projectInfoLines)
		info := flatten(sub[:idx])

		date := e.pick(field+".date", info, dateFeatures).Value
		name := e.pick(field+".project", without(info, isValue(date)), projectFeatures(date), scoring.AcceptNonPositive()).Value

		projects = append(projects, model.Project{
			Project:      name,
			Date:         date,
			Descriptions: layout.BulletPoints(sub[idx:]),
		})
	}

	return projects
}
