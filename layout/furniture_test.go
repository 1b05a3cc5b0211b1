package layout

import (
	"fmt"
	"testing"

	"github.com/tsawler/vitae/text"
)

// makePageLine creates a single-fragment line on a page
func makePageLine(page int, y float64, txt string) Line {
	frag := text.TextFragment{
		Text:     txt,
		X:        72,
		Y:        y,
		Width:    float64(len(txt)) * 5,
		Height:   10,
		FontName: "Helvetica",
		FontSize: 10,
		Page:     page,
	}
	return Line{Page: page, Y: y}.WithFragments([]text.TextFragment{frag})
}

func furniturePages(count int) []Line {
	var lines []Line
	for p := 0; p < count; p++ {
		lines = append(lines,
			makePageLine(p, 780, "Mario Rossi - Curriculum Vitae"),
			makePageLine(p, 700, fmt.Sprintf("Body A page %d", p)),
			makePageLine(p, 500, fmt.Sprintf("Body B page %d", p)),
			makePageLine(p, 300, fmt.Sprintf("Body C page %d", p)),
			makePageLine(p, 40, fmt.Sprintf("Pagina %d di %d", p+1, count)),
		)
	}
	for i := range lines {
		lines[i].Index = i
	}
	return lines
}

func TestFurnitureDetector_RemovesHeadersAndPageNumbers(t *testing.T) {
	result := NewFurnitureDetector().Filter(furniturePages(3))

	if len(result.Removed) != 2 {
		t.Fatalf("expected 2 furniture groups, got %d", len(result.Removed))
	}
	if result.Removed[0].Margin != TopMargin || result.Removed[0].Text != "Mario Rossi - Curriculum Vitae" {
		t.Errorf("unexpected header: %+v", result.Removed[0])
	}
	if result.Removed[1].Margin != BottomMargin || !result.Removed[1].IsPageNumber {
		t.Errorf("unexpected footer: %+v", result.Removed[1])
	}
	if len(result.Removed[1].Pages) != 3 {
		t.Errorf("expected footer on 3 pages, got %v", result.Removed[1].Pages)
	}

	if len(result.Lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(result.Lines))
	}
	for i, line := range result.Lines {
		if line.Index != i {
			t.Errorf("line %d has index %d", i, line.Index)
		}
	}
	if result.Lines[0].Text != "Body A page 0" {
		t.Errorf("expected first body line, got %q", result.Lines[0].Text)
	}
}

func TestFurnitureDetector_SinglePage(t *testing.T) {
	lines := furniturePages(1)
	result := NewFurnitureDetector().Filter(lines)

	if len(result.Removed) != 0 {
		t.Errorf("expected nothing removed, got %+v", result.Removed)
	}
	if len(result.Lines) != len(lines) {
		t.Errorf("expected %d lines, got %d", len(lines), len(result.Lines))
	}
}

func TestFurnitureDetector_KeepsDifferingContent(t *testing.T) {
	lines := []Line{
		makePageLine(0, 780, "Jane Doe"),
		makePageLine(0, 400, "Work Experience"),
		makePageLine(0, 40, "2018 - 2020"),
		makePageLine(1, 780, "Education"),
		makePageLine(1, 400, "Yale University"),
		makePageLine(1, 40, "2014 - 2018"),
	}

	result := NewFurnitureDetector().Filter(lines)
	if len(result.Removed) != 0 {
		t.Errorf("expected nothing removed, got %+v", result.Removed)
	}
	if len(result.Lines) != len(lines) {
		t.Errorf("expected %d lines, got %d", len(lines), len(result.Lines))
	}
}

func TestMargin_String(t *testing.T) {
	if TopMargin.String() != "top" || BottomMargin.String() != "bottom" {
		t.Errorf("unexpected margin names %q %q", TopMargin, BottomMargin)
	}
}

func TestIsPageNumberPattern(t *testing.T) {
	tests := map[string]bool{
		"Page 3":        true,
		"page 2 of 4":   true,
		"Pagina 1 di 2": true,
		"- 4 -":         true,
		"2018 - 2020":   false,
		"Curriculum":    false,
	}
	for in, want := range tests {
		if got := isPageNumberPattern(normalizeForComparison(in)); got != want {
			t.Errorf("isPageNumberPattern(%q) = %v, want %v", in, got, want)
		}
	}
}
