package pdfsource

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/vitae/internal/pdftest"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/text"
)

func glyphs(s string, x, y, size float64, font string) []run {
	out := make([]run, 0, len(s))
	for _, r := range s {
		out = append(out, run{Font: font, FontSize: size, X: x, Y: y, W: size * 0.5, S: string(r)})
		x += size * 0.5
	}
	return out
}

func TestMergeRuns_JoinsCharactersIntoWords(t *testing.T) {
	runs := glyphs("Jane Doe", 72, 700, 10, "Helvetica-Bold")

	got := NewReader().mergeRuns(runs, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Text)
	assert.Equal(t, 72.0, got[0].X)
	assert.Equal(t, 40.0, got[0].Width)
	assert.Equal(t, "Helvetica-Bold", got[0].FontName)
	assert.Equal(t, text.LTR, got[0].Direction)
}

func TestMergeRuns_SplitsOnGapFontAndRow(t *testing.T) {
	var runs []run
	runs = append(runs, glyphs("Acme", 72, 700, 10, "Helvetica-Bold")...)
	runs = append(runs, glyphs("2020", 450, 700, 10, "Helvetica")...)
	runs = append(runs, glyphs("Engineer", 72, 686, 10, "Helvetica")...)
	runs = append(runs, glyphs("Lead", 112, 686, 10, "Helvetica-Oblique")...)

	got := NewReader().mergeRuns(runs, 2)
	texts := make([]string, len(got))
	for i, f := range got {
		texts[i] = f.Text
		assert.Equal(t, 2, f.Page)
	}
	assert.Equal(t, []string{"Acme", "2020", "Engineer", "Lead"}, texts)
}

func TestMergeRuns_InsertsSpaceForWordGap(t *testing.T) {
	runs := []run{
		{Font: "F1", FontSize: 10, X: 72, Y: 700, W: 20, S: "Data"},
		{Font: "F1", FontSize: 10, X: 94, Y: 700, W: 20, S: "Eng"},
	}

	got := NewReader().mergeRuns(runs, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Data Eng", got[0].Text)
}

func TestMergeRuns_DropsWhitespace(t *testing.T) {
	runs := []run{
		{Font: "F1", FontSize: 10, X: 72, Y: 700, W: 5, S: " "},
		{Font: "F1", FontSize: 10, X: 300, Y: 700, W: 5, S: ""},
	}
	assert.Empty(t, NewReader().mergeRuns(runs, 0))
}

func TestMergeRuns_RightToLeft(t *testing.T) {
	got := NewReader().mergeRuns(glyphs("שלום", 72, 700, 10, "F1"), 0)
	require.Len(t, got, 1)
	assert.Equal(t, text.RTL, got[0].Direction)
}

func TestRead_NotAPDF(t *testing.T) {
	data := []byte("definitely not a pdf")
	_, err := NewReader().Read(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEncrypted))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewReader().ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestRead_GeneratedDocument(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{
		Producer: "LibreOffice",
		Pages: [][]pdftest.Text{
			{
				{X: 72, Y: 760, Bold: true, S: "JANE DOE"},
				{X: 72, Y: 746, S: "jane@doe.io"},
				{X: 200, Y: 746, S: "Boston, MA"},
			},
			{
				{X: 72, Y: 760, Bold: true, S: "SKILLS"},
			},
		},
	})

	doc, err := NewReader().Read(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Pages)
	assert.Equal(t, "LibreOffice", doc.Producer)
	require.Len(t, doc.Fragments, 4)

	name := doc.Fragments[0]
	assert.Equal(t, "JANE DOE", name.Text)
	assert.Equal(t, "Helvetica-Bold", name.FontName)
	assert.Equal(t, 10.0, name.FontSize)
	assert.Equal(t, 72.0, name.X)
	assert.Equal(t, 760.0, name.Y)
	assert.Equal(t, 40.0, name.Width)

	assert.Equal(t, "jane@doe.io", doc.Fragments[1].Text)
	assert.Equal(t, "Boston, MA", doc.Fragments[2].Text)
	assert.Equal(t, "SKILLS", doc.Fragments[3].Text)
	assert.Equal(t, 1, doc.Fragments[3].Page)
	assert.False(t, HasEmbeddedResume(doc))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	data := pdftest.Build(pdftest.Doc{Pages: [][]pdftest.Text{{{X: 72, Y: 700, S: "Hello"}}}})
	require.NoError(t, os.WriteFile(path, data, 0o600))

	doc, err := NewReader().ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Fragments, 1)
	assert.Equal(t, "Hello", doc.Fragments[0].Text)
}

func TestRead_NoText(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{Pages: [][]pdftest.Text{{}}})

	_, err := NewReader().Read(context.Background(), bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestRead_EmbeddedOnly(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{
		Producer: EmbeddedProducer,
		Subject:  `{"resume": {"profile": {"name": "Jane Doe"}}, "privacyStatements": {"euPrivacy": true}}`,
		Pages:    [][]pdftest.Text{{}},
	})

	doc, err := NewReader().Read(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	got, ok, err := EmbeddedResume(doc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got.Resume.Profile.Name)
	assert.True(t, got.Privacy.EU)
}

func TestRead_Canceled(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{Pages: [][]pdftest.Text{{{X: 72, Y: 700, S: "Hello"}}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader().Read(ctx, bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddedResume(t *testing.T) {
	doc := &Document{
		Producer: EmbeddedProducer,
		Subject: `{
			"resume": {
				"profile": {"name": "Jane Doe", "email": "jane@doe.io"},
				"educations": [{"school": "Yale University", "gpa": "3.85"}],
				"skills": {"featuredSkills": [{"skill": "Go", "rating": "4"}]}
			},
			"privacyStatements": {"italyPrivacy": true}
		}`,
	}

	got, ok, err := EmbeddedResume(doc)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Jane Doe", got.Resume.Profile.Name)
	require.Len(t, got.Resume.Educations, 1)
	assert.Equal(t, "Yale University", got.Resume.Educations[0].School)
	assert.Equal(t, []string{}, got.Resume.Educations[0].Descriptions)
	assert.Equal(t, model.FeaturedSkill{Skill: "Go", Rating: 4}, got.Resume.Skills.FeaturedSkills[0])
	assert.Len(t, got.Resume.Skills.FeaturedSkills, model.FeaturedSkillCapacity)
	assert.Equal(t, []model.WorkExperience{}, got.Resume.WorkExperiences)
	assert.True(t, got.Privacy.Italy)
	assert.False(t, got.Privacy.EU)
}

func TestEmbeddedResume_NotEmbedded(t *testing.T) {
	for _, doc := range []*Document{
		nil,
		{Producer: "LibreOffice", Subject: `{"resume": {}}`},
		{Producer: EmbeddedProducer},
		{Producer: EmbeddedProducer, Subject: `{"other": 1}`},
	} {
		got, ok, err := EmbeddedResume(doc)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	}
}

func TestEmbeddedResume_BadJSON(t *testing.T) {
	_, ok, err := EmbeddedResume(&Document{Producer: EmbeddedProducer, Subject: "{not json"})
	assert.Error(t, err)
	assert.False(t, ok)
}
