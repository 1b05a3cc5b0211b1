package layout

import (
	"reflect"
	"testing"
)

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestDivideSubsections_Empty(t *testing.T) {
	if got := DivideSubsections(nil); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestDivideSubsections_ByLineGap(t *testing.T) {
	lines := []Line{
		makeTestLine(700, true, "Acme Corp"),
		makeTestLine(686, false, "Engineer"),
		makeTestLine(672, false, "• Built things"),
		makeTestLine(640, true, "Globex"),
		makeTestLine(626, false, "Manager"),
		makeTestLine(612, false, "• Ran things"),
	}

	entries := DivideSubsections(lines)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1][0].Text != "Globex" {
		t.Errorf("Expected second entry to start at Globex, got %q", entries[1][0].Text)
	}
}

func TestDivideSubsections_SingleEntryKeptWhole(t *testing.T) {
	lines := []Line{
		makeTestLine(700, true, "Yale University", "B.S. Computer Science", "2020"),
		makeTestLine(686, false, "3.85"),
	}

	entries := DivideSubsections(lines)
	if len(entries) != 1 || len(entries[0]) != 2 {
		t.Fatalf("Expected one entry of 2 lines, got %v", entries)
	}
}

func TestDivideSubsections_HeaderFallback(t *testing.T) {
	lines := []Line{
		makeTestLine(700, true, "Acme Corp"),
		makeTestLine(686, false, "Engineer 2019 - 2020"),
		makeTestLine(672, false, "• Built things"),
		makeTestLine(658, true, "Globex"),
		makeTestLine(644, false, "Manager"),
		makeTestLine(630, false, "• Ran things"),
		makeTestLine(616, false, "Analyst 2016 - 2018"),
		makeTestLine(602, false, "• Counted things"),
	}

	entries := DivideSubsections(lines)
	got := make([][]string, len(entries))
	for i, e := range entries {
		got[i] = lineTexts(e)
	}
	want := [][]string{
		{"Acme Corp", "Engineer 2019 - 2020", "• Built things"},
		{"Globex", "Manager", "• Ran things"},
		{"Analyst 2016 - 2018", "• Counted things"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDivideSubsections_Contiguous(t *testing.T) {
	lines := []Line{
		makeTestLine(700, true, "A"),
		makeTestLine(690, false, "b"),
		makeTestLine(650, true, "C"),
		makeTestLine(640, false, "d"),
		makeTestLine(630, false, "e"),
	}

	var flat []string
	for _, e := range DivideSubsections(lines) {
		if len(e) == 0 {
			t.Fatal("Empty entry")
		}
		flat = append(flat, lineTexts(e)...)
	}
	if !reflect.DeepEqual(flat, lineTexts(lines)) {
		t.Errorf("Entries do not cover the input in order: %v", flat)
	}
}

func TestMostCommonLineGap(t *testing.T) {
	lines := []Line{
		makeTestLine(700, false, "a"),
		makeTestLine(686, false, "b"),
		makeTestLine(672, false, "c"),
		makeTestLine(640, false, "d"),
	}
	if got := MostCommonLineGap(lines); got != 14 {
		t.Errorf("Expected 14, got %f", got)
	}
}

func TestDivideSubsections_GapAboveReplacesHole(t *testing.T) {
	// A removed line used to sit at 658; the next line records the gap it
	// would have had without the removal.
	bridged := makeTestLine(644, false, "• Cut deploy time")
	bridged.GapAbove = 14

	lines := []Line{
		makeTestLine(700, true, "Acme Corp"),
		makeTestLine(686, false, "Engineer"),
		makeTestLine(672, false, "• Built things"),
		bridged,
	}

	entries := DivideSubsections(lines)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if len(entries[0]) != 4 {
		t.Errorf("Expected 4 lines in the entry, got %d", len(entries[0]))
	}
}

func TestBridgedGap(t *testing.T) {
	prev := makeTestLine(700, false, "a")
	next := makeTestLine(658, false, "d")

	tests := []struct {
		name    string
		removed []Line
		want    float64
	}{
		{"steady spacing", []Line{makeTestLine(686, false, "b"), makeTestLine(672, false, "c")}, 14},
		{"entry gap after removed line", []Line{makeTestLine(686, false, "b")}, 28},
		{"nothing removed", nil, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BridgedGap(prev, tt.removed, next); got != tt.want {
				t.Errorf("BridgedGap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBridgedGap_AcrossPages(t *testing.T) {
	prev := makeTestLine(100, false, "a")
	next := makeTestLine(700, false, "b")
	next.Page = 1

	if got := BridgedGap(prev, nil, next); got != 0 {
		t.Errorf("BridgedGap() = %v, want 0", got)
	}
}
