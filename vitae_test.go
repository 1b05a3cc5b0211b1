package vitae

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tsawler/vitae/internal/pdftest"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/pdfsource"
	"github.com/tsawler/vitae/scoring"
	"github.com/tsawler/vitae/text"
)

const consentStatement = "Acconsento al trattamento dei dati personali presenti nel mio curriculum vitae in base all'art.13 del D.Lgs.196/2003 e all'art.13 GDPR 679/16."

func frag(x, y float64, s string) text.TextFragment {
	return text.TextFragment{
		Text:     s,
		X:        x,
		Y:        y,
		Width:    float64(len(s)) * 5,
		Height:   10,
		FontName: "Helvetica",
		FontSize: 10,
	}
}

func bold(x, y float64, s string) text.TextFragment {
	f := frag(x, y, s)
	f.FontName = "Helvetica-Bold"
	return f
}

func resumeFragments() []text.TextFragment {
	return []text.TextFragment{
		bold(72, 760, "JANE DOE"),
		frag(72, 746, "jane@doe.io"), frag(200, 746, "(555) 123-4567"), frag(320, 746, "Boston, MA"),

		bold(72, 700, "EDUCATION"),
		bold(72, 686, "Yale University"), frag(250, 686, "B.S. Computer Science"), frag(480, 686, "2020"),
		frag(72, 672, "3.85"),

		bold(72, 640, "WORK EXPERIENCE"),
		bold(72, 626, "Acme Corp"), frag(450, 626, "Jan 2020 - Present"),
		frag(72, 612, "Software Engineer"),
		frag(72, 598, "• Built the billing service"),
		frag(72, 584, "• Cut deploy time in half"),

		bold(72, 550, "OTHER"),
		frag(72, 536, "Volunteer at the local food bank"),
		frag(72, 522, consentStatement),
	}
}

func TestParse_FromFragments(t *testing.T) {
	result, warnings, err := FromFragments(resumeFragments()).Parse()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	profile := result.Resume.Profile
	assert.Equal(t, "JANE DOE", profile.Name)
	assert.Equal(t, "jane@doe.io", profile.Email)
	assert.Equal(t, "(555) 123-4567", profile.Phone)
	assert.Equal(t, "Boston, MA", profile.Location)

	require.Len(t, result.Resume.Educations, 1)
	edu := result.Resume.Educations[0]
	assert.Equal(t, "Yale University", edu.School)
	assert.Equal(t, "B.S. Computer Science", edu.Degree)
	assert.Equal(t, "2020", edu.Date)
	assert.Equal(t, "3.85", edu.GPA)

	require.Len(t, result.Resume.WorkExperiences, 1)
	work := result.Resume.WorkExperiences[0]
	assert.Equal(t, "Acme Corp", work.Company)
	assert.Equal(t, "Software Engineer", work.JobTitle)
	assert.Equal(t, "Jan 2020 - Present", work.Date)
	assert.Equal(t, []string{"Built the billing service", "Cut deploy time in half"}, work.Descriptions)

	assert.Equal(t, []string{"Volunteer at the local food bank"}, result.Resume.Custom.Descriptions)
	assert.Equal(t, model.PrivacyFlags{Italy: true}, result.Privacy)

	assert.Len(t, result.Resume.Skills.FeaturedSkills, model.FeaturedSkillCapacity)
	assert.Equal(t, []model.Project{}, result.Resume.Projects)
	assert.NoError(t, model.Validate(result))
}

func resumePDF() []byte {
	return pdftest.Build(pdftest.Doc{Pages: [][]pdftest.Text{{
		{X: 72, Y: 760, Bold: true, S: "JANE DOE"},
		{X: 72, Y: 746, S: "jane@doe.io"},
		{X: 200, Y: 746, S: "(555) 123-4567"},
		{X: 72, Y: 700, Bold: true, S: "EDUCATION"},
		{X: 72, Y: 686, Bold: true, S: "Yale University"},
		{X: 250, Y: 686, S: "B.S. Computer Science"},
		{X: 480, Y: 686, S: "2020"},
		{X: 72, Y: 672, S: "3.85"},
		{X: 72, Y: 640, Bold: true, S: "OTHER"},
		{X: 72, Y: 626, S: consentStatement},
	}}})
}

func TestParse_PDF(t *testing.T) {
	data := resumePDF()

	result, _, err := FromBytes(data).Parse()
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE", result.Resume.Profile.Name)
	assert.Equal(t, "(555) 123-4567", result.Resume.Profile.Phone)
	require.Len(t, result.Resume.Educations, 1)
	assert.Equal(t, "Yale University", result.Resume.Educations[0].School)
	assert.Equal(t, "3.85", result.Resume.Educations[0].GPA)
	assert.True(t, result.Privacy.Italy)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	fromFile, _, err := Open(path).Parse()
	require.NoError(t, err)
	assert.Equal(t, result, fromFile)
}

func TestParse_EmbeddedResume(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{
		Producer: pdfsource.EmbeddedProducer,
		Subject:  `{"resume": {"profile": {"name": "Embedded Name"}}, "privacyStatements": {"italyPrivacy": true}}`,
		Pages:    [][]pdftest.Text{{{X: 72, Y: 760, Bold: true, S: "PRINTED NAME"}}},
	})

	result, _, err := FromBytes(data).Parse()
	require.NoError(t, err)
	assert.Equal(t, "Embedded Name", result.Resume.Profile.Name)
	assert.True(t, result.Privacy.Italy)
	assert.Len(t, result.Resume.Skills.FeaturedSkills, model.FeaturedSkillCapacity)

	parsed, _, err := FromBytes(data).IgnoreEmbeddedResume().Parse()
	require.NoError(t, err)
	assert.Equal(t, "PRINTED NAME", parsed.Resume.Profile.Name)
}

func TestParse_BrokenEmbeddedResume(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{
		Producer: pdfsource.EmbeddedProducer,
		Subject:  `{"resume": `,
		Pages:    [][]pdftest.Text{{{X: 72, Y: 760, Bold: true, S: "PRINTED NAME"}}},
	})

	result, warnings, err := FromBytes(data).Parse()
	require.NoError(t, err)
	assert.Equal(t, "PRINTED NAME", result.Resume.Profile.Name)
	require.NotEmpty(t, warnings)
	assert.Equal(t, WarnEmbeddedResume, warnings[0].Code)
}

func TestParse_ComplianceBulletIsNotAStatement(t *testing.T) {
	fragments := []text.TextFragment{
		bold(72, 760, "JANE DOE"),
		frag(72, 746, "jane@doe.io"),

		bold(72, 700, "WORK EXPERIENCE"),
		bold(72, 686, "Acme Corp"), frag(450, 686, "Jan 2020 - Present"),
		frag(72, 672, "Privacy Engineer"),
		frag(72, 658, "• Led GDPR compliance for personal data across 5 EU subsidiaries"),
		frag(72, 644, "• Cut deploy time in half"),
	}

	result, _, err := FromFragments(fragments).Parse()
	require.NoError(t, err)
	assert.Equal(t, model.PrivacyFlags{}, result.Privacy)

	require.Len(t, result.Resume.WorkExperiences, 1)
	work := result.Resume.WorkExperiences[0]
	assert.Equal(t, "Acme Corp", work.Company)
	assert.Equal(t, "Privacy Engineer", work.JobTitle)
	assert.Equal(t, []string{
		"Led GDPR compliance for personal data across 5 EU subsidiaries",
		"Cut deploy time in half",
	}, work.Descriptions)
}

func TestParse_StatementInsideEntryDoesNotSplitIt(t *testing.T) {
	fragments := []text.TextFragment{
		bold(72, 760, "JANE DOE"),
		frag(72, 746, "jane@doe.io"),

		bold(72, 700, "WORK EXPERIENCE"),
		bold(72, 686, "Acme Corp"), frag(450, 686, "Jan 2020 - Present"),
		frag(72, 672, "Software Engineer"),
		frag(72, 658, "• Built the billing service"),
		frag(72, 644, consentStatement),
		frag(72, 630, "• Cut deploy time in half"),
	}

	result, _, err := FromFragments(fragments).Parse()
	require.NoError(t, err)
	assert.True(t, result.Privacy.Italy)

	require.Len(t, result.Resume.WorkExperiences, 1)
	work := result.Resume.WorkExperiences[0]
	assert.Equal(t, "Acme Corp", work.Company)
	assert.Equal(t, "Jan 2020 - Present", work.Date)
	assert.Equal(t, []string{"Built the billing service", "Cut deploy time in half"}, work.Descriptions)
}

func TestParse_MultiFragmentStatementLeavesNoTrace(t *testing.T) {
	fragments := []text.TextFragment{
		bold(72, 760, "JANE DOE"),
		frag(72, 746, "jane@doe.io"),

		bold(72, 700, "OTHER"),
		frag(72, 686, "Volunteer at the local food bank"),
		frag(72, 672, "Acconsento al trattamento dei dati personali"),
		frag(300, 672, "presenti nel mio curriculum vitae in base all'"),
		frag(540, 672, "art.13 del D.Lgs.196/2003"),
	}

	result, _, err := FromFragments(fragments).Parse()
	require.NoError(t, err)
	assert.True(t, result.Privacy.Italy)
	assert.Equal(t, []string{"Volunteer at the local food bank"}, result.Resume.Custom.Descriptions)
}

func TestParse_Idempotent(t *testing.T) {
	ext := FromFragments(resumeFragments())

	first, _, err := ext.Parse()
	require.NoError(t, err)
	second, _, err := ext.Parse()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_InputNotModified(t *testing.T) {
	fragments := resumeFragments()
	before := append([]text.TextFragment(nil), fragments...)

	_, _, err := FromFragments(fragments).Parse()
	require.NoError(t, err)
	assert.Equal(t, before, fragments)
}

func containsText(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(v, needle) {
			return true
		}
	}
	return false
}

func TestParse_SkipPrivacyFilter(t *testing.T) {
	fragments := []text.TextFragment{
		bold(72, 760, "JANE DOE"),
		frag(72, 746, "jane@doe.io"),
		bold(72, 700, "SKILLS"),
		frag(72, 686, "Go, Rust, SQL"),
		frag(72, 672, consentStatement),
	}

	filtered, _, err := FromFragments(fragments).Parse()
	require.NoError(t, err)
	assert.True(t, filtered.Privacy.Italy)
	assert.False(t, containsText(filtered.Resume.Skills.Descriptions, "trattamento"))

	kept, _, err := FromFragments(fragments).SkipPrivacyFilter().Parse()
	require.NoError(t, err)
	assert.True(t, kept.Privacy.Italy)
	assert.True(t, containsText(kept.Resume.Skills.Descriptions, "trattamento"))
}

func TestParse_Warnings(t *testing.T) {
	t.Run("no sections", func(t *testing.T) {
		_, warnings, err := FromFragments([]text.TextFragment{
			bold(72, 760, "JANE DOE"),
			frag(72, 746, "jane@doe.io"),
		}).Parse()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnNoSections, warnings[0].Code)
	})

	t.Run("dropped fragments", func(t *testing.T) {
		fragments := resumeFragments()
		fragments = append(fragments, frag(math.NaN(), 500, "broken"))

		_, warnings, err := FromFragments(fragments).Parse()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnDroppedFragments, warnings[0].Code)
	})

	t.Run("character level", func(t *testing.T) {
		var fragments []text.TextFragment
		for i, r := range "JANE DOE ENGINEER" {
			fragments = append(fragments, frag(72+float64(i)*5, 760, string(r)))
		}

		_, warnings, err := FromFragments(fragments).Lines()
		require.NoError(t, err)
		require.NotEmpty(t, warnings)
		assert.Equal(t, WarnCharacterLevel, warnings[0].Code)
	})
}

func TestSections(t *testing.T) {
	sections, _, err := FromFragments(resumeFragments()).Sections()
	require.NoError(t, err)
	assert.Equal(t, []string{"profile", "EDUCATION", "WORK EXPERIENCE", "OTHER"}, sections.Names())
}

func TestLines_RemovesPageFurniture(t *testing.T) {
	var fragments []text.TextFragment
	for page := 0; page < 2; page++ {
		for _, f := range []text.TextFragment{
			frag(72, 780, "Jane Doe - Curriculum Vitae"),
			frag(72, 600, "Body text"),
			frag(72, 400, "More body text"),
			frag(72, 40, "Page "+string(rune('1'+page))),
		} {
			f.Page = page
			fragments = append(fragments, f)
		}
	}

	lines, _, err := FromFragments(fragments).Lines()
	require.NoError(t, err)
	assert.Len(t, lines, 4)

	all, _, err := FromFragments(fragments).KeepPageFurniture().Lines()
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestWithTrace(t *testing.T) {
	fields := map[string]string{}
	_, _, err := FromFragments(resumeFragments()).
		WithTrace(func(field string, r scoring.Result) { fields[field] = r.Value }).
		Parse()
	require.NoError(t, err)

	assert.Equal(t, "JANE DOE", fields["profile.name"])
	assert.Equal(t, "3.85", fields["educations[0].gpa"])
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, _, err := FromFragments(resumeFragments()).WithLogger(zap.New(core)).Parse()
	require.NoError(t, err)

	assert.NotZero(t, logs.FilterMessage("grouped lines").Len())
	assert.NotZero(t, logs.FilterMessage("grouped sections").Len())
	assert.NotZero(t, logs.FilterMessage("privacy statements").Len())
}

func TestErrors(t *testing.T) {
	_, _, err := Open("").Parse()
	assert.True(t, errors.Is(err, ErrNoSource))

	_, _, err = FromReader(nil, 0).Parse()
	assert.True(t, errors.Is(err, ErrNoSource))

	_, _, err = FromBytes([]byte("not a pdf")).Parse()
	assert.Error(t, err)

	_, _, err = Open("testdata/does-not-exist.pdf").Parse()
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	assert.False(t, Must(FromFragments(resumeFragments()).IsMultiColumn()))
	assert.Panics(t, func() { Must(Open("").IsMultiColumn()) })

	result := MustParse(FromFragments(resumeFragments()).Parse())
	assert.Equal(t, "JANE DOE", result.Resume.Profile.Name)
	assert.Panics(t, func() { MustParse(Open("").Parse()) })
}

func TestFormatWarnings(t *testing.T) {
	assert.Equal(t, "", FormatWarnings(nil))
	assert.Equal(t,
		"no_sections: none found; multi_column: two columns",
		FormatWarnings([]Warning{
			{Code: WarnNoSections, Message: "none found"},
			{Code: WarnMultiColumn, Message: "two columns"},
		}),
	)
}
