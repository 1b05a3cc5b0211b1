package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tsawler/vitae/text"
)

// makeLineFragment creates a test text fragment for line tests
func makeLineFragment(txt string, x, y, width, height, fontSize float64) text.TextFragment {
	return text.TextFragment{
		Text:      txt,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		FontName:  "Helvetica",
		FontSize:  fontSize,
		Direction: text.LTR,
	}
}

func TestLineGrouper_EmptyFragments(t *testing.T) {
	grouper := NewLineGrouper()
	layout := grouper.Group(nil)

	if layout == nil {
		t.Fatal("Expected non-nil layout")
	}
	if layout.LineCount() != 0 {
		t.Errorf("Expected 0 lines, got %d", layout.LineCount())
	}
}

func TestLineGrouper_BlankFragmentsProduceNoLines(t *testing.T) {
	grouper := NewLineGrouper()
	layout := grouper.Group([]text.TextFragment{
		makeLineFragment("   ", 100, 700, 10, 12, 12),
		makeLineFragment("", 100, 680, 0, 12, 12),
	})

	if layout.LineCount() != 0 {
		t.Errorf("Expected 0 lines, got %d", layout.LineCount())
	}
}

func TestLineGrouper_SingleFragment(t *testing.T) {
	grouper := NewLineGrouper()
	layout := grouper.Group([]text.TextFragment{
		makeLineFragment("Hello", 100, 700, 50, 12, 12),
	})

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}

	line := layout.GetLine(0)
	if line.Text != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", line.Text)
	}
	if line.Index != 0 {
		t.Errorf("Expected index 0, got %d", line.Index)
	}
}

func TestLineGrouper_SingleLine_SeparatedFragments(t *testing.T) {
	grouper := NewLineGrouper()
	layout := grouper.Group([]text.TextFragment{
		makeLineFragment("World", 300, 700, 45, 12, 12),
		makeLineFragment("Hello", 100, 700, 40, 12, 12),
	})

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}

	line := layout.GetLine(0)
	if len(line.Fragments) != 2 {
		t.Fatalf("Expected 2 fragments, got %d", len(line.Fragments))
	}
	if line.Fragments[0].Text != "Hello" {
		t.Errorf("Expected fragments sorted by X, first is '%s'", line.Fragments[0].Text)
	}
	if line.Text != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", line.Text)
	}
}

func TestLineGrouper_MergesAdjacentFragments(t *testing.T) {
	grouper := NewLineGrouper()
	layout := grouper.Group([]text.TextFragment{
		makeLineFragment("WORK", 100, 700, 40, 12, 12),
		makeLineFragment("EXPERIENCE", 143, 700, 100, 12, 12),
	})

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}

	line := layout.GetLine(0)
	if len(line.Fragments) != 1 {
		t.Fatalf("Expected merged fragment, got %d fragments", len(line.Fragments))
	}
	if line.Fragments[0].Text != "WORK EXPERIENCE" {
		t.Errorf("Expected 'WORK EXPERIENCE', got '%s'", line.Fragments[0].Text)
	}
	if line.Fragments[0].Width != 143 {
		t.Errorf("Expected merged width 143, got %f", line.Fragments[0].Width)
	}
}

func TestLineGrouper_DoesNotMergeAcrossWeights(t *testing.T) {
	bold := makeLineFragment("Acme", 100, 700, 40, 12, 12)
	bold.FontName = "Helvetica-Bold"
	plain := makeLineFragment("Engineer", 142, 700, 80, 12, 12)

	layout := NewLineGrouper().Group([]text.TextFragment{bold, plain})
	if got := len(layout.GetLine(0).Fragments); got != 2 {
		t.Errorf("Expected 2 fragments, got %d", got)
	}
}

func TestLineGrouper_MergeDisabled(t *testing.T) {
	config := DefaultLineConfig()
	config.MergeAdjacent = false
	layout := NewLineGrouperWithConfig(config).Group([]text.TextFragment{
		makeLineFragment("WORK", 100, 700, 40, 12, 12),
		makeLineFragment("EXPERIENCE", 143, 700, 100, 12, 12),
	})

	if got := len(layout.GetLine(0).Fragments); got != 2 {
		t.Errorf("Expected 2 fragments, got %d", got)
	}
}

func TestLineGrouper_PunctuationForcesSpace(t *testing.T) {
	layout := NewLineGrouper().Group([]text.TextFragment{
		makeLineFragment("Email:", 100, 700, 60, 12, 12),
		makeLineFragment("a@b.co", 160, 700, 60, 12, 12),
	})

	if got := layout.GetLine(0).Fragments[0].Text; got != "Email: a@b.co" {
		t.Errorf("Expected 'Email: a@b.co', got '%s'", got)
	}
}

func TestLineGrouper_MultipleLinesTopToBottom(t *testing.T) {
	layout := NewLineGrouper().Group([]text.TextFragment{
		makeLineFragment("Second", 100, 680, 60, 12, 12),
		makeLineFragment("First", 100, 700, 50, 12, 12),
		makeLineFragment("Third", 100, 660, 50, 12, 12),
	})

	if layout.LineCount() != 3 {
		t.Fatalf("Expected 3 lines, got %d", layout.LineCount())
	}
	want := []string{"First", "Second", "Third"}
	for i, w := range want {
		if layout.Lines[i].Text != w {
			t.Errorf("Line %d: expected '%s', got '%s'", i, w, layout.Lines[i].Text)
		}
		if layout.Lines[i].Index != i {
			t.Errorf("Line %d: expected index %d, got %d", i, i, layout.Lines[i].Index)
		}
	}
}

func TestLineGrouper_ReturningFragmentJoinsEarlierLine(t *testing.T) {
	layout := NewLineGrouper().Group([]text.TextFragment{
		makeLineFragment("Acme Corp", 72, 700, 90, 12, 12),
		makeLineFragment("Engineer", 72, 684, 80, 12, 12),
		makeLineFragment("2020", 500, 700, 40, 12, 12),
	})

	if layout.LineCount() != 2 {
		t.Fatalf("Expected 2 lines, got %d", layout.LineCount())
	}
	if layout.Lines[0].Text != "Acme Corp 2020" {
		t.Errorf("Expected 'Acme Corp 2020', got '%s'", layout.Lines[0].Text)
	}
}

func TestLineGrouper_SuperscriptStaysOnLine(t *testing.T) {
	layout := NewLineGrouper().Group([]text.TextFragment{
		makeLineFragment("E=mc", 100, 700, 40, 12, 12),
		makeLineFragment("2", 140, 704, 6, 8, 8),
	})

	if layout.LineCount() != 1 {
		t.Errorf("Expected 1 line, got %d", layout.LineCount())
	}
}

func TestLineGrouper_MalformedFragmentsExcluded(t *testing.T) {
	layout := NewLineGrouper().Group([]text.TextFragment{
		makeLineFragment("Good", 100, 700, 40, 12, 12),
		makeLineFragment("Bad", math.NaN(), 700, 30, 12, 12),
		makeLineFragment("Worse", 100, math.Inf(-1), 30, 12, 12),
		makeLineFragment("Negative", 100, 650, -5, 12, 12),
	})

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	if layout.Dropped != 3 {
		t.Errorf("Expected 3 dropped fragments, got %d", layout.Dropped)
	}
	if layout.Lines[0].Text != "Good" {
		t.Errorf("Expected 'Good', got '%s'", layout.Lines[0].Text)
	}
}

func TestLineGrouper_PagesInOrder(t *testing.T) {
	second := makeLineFragment("Page two", 100, 750, 80, 12, 12)
	second.Page = 1
	first := makeLineFragment("Page one", 100, 100, 80, 12, 12)

	layout := NewLineGrouper().Group([]text.TextFragment{second, first})
	if layout.LineCount() != 2 {
		t.Fatalf("Expected 2 lines, got %d", layout.LineCount())
	}
	if layout.Lines[0].Text != "Page one" || layout.Lines[1].Page != 1 {
		t.Errorf("Expected page order to win over Y, got %q then %q", layout.Lines[0].Text, layout.Lines[1].Text)
	}
}

func TestLineGrouper_DoesNotMutateInput(t *testing.T) {
	input := []text.TextFragment{
		makeLineFragment("WORK", 100, 700, 40, 12, 12),
		makeLineFragment("EXPERIENCE", 143, 700, 100, 12, 12),
	}
	NewLineGrouper().Group(input)

	if input[0].Text != "WORK" || input[0].Width != 40 {
		t.Errorf("Input fragment was modified: %+v", input[0])
	}
}

func TestLineGrouper_OrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grouper := NewLineGrouper()

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		fragments := make([]text.TextFragment, n)
		for i := range fragments {
			fragments[i] = makeLineFragment("w", rng.Float64()*500, float64(rng.Intn(30))*14+rng.Float64(), 6, 12, 12)
			fragments[i].Page = rng.Intn(2)
		}

		layout := grouper.Group(fragments)
		for i, line := range layout.Lines {
			for j := 1; j < len(line.Fragments); j++ {
				if line.Fragments[j].X < line.Fragments[j-1].X {
					t.Fatalf("round %d line %d: fragments not sorted by X", round, i)
				}
			}
			if i == 0 {
				continue
			}
			prev := layout.Lines[i-1]
			if prev.Page > line.Page || (prev.Page == line.Page && prev.Y < line.Y) {
				t.Fatalf("round %d: line %d out of reading order", round, i)
			}
		}
	}
}

func TestTypicalCharWidth(t *testing.T) {
	fragments := []text.TextFragment{
		makeLineFragment("abcd", 0, 0, 20, 12, 12),
		makeLineFragment("efgh", 0, 0, 20, 12, 12),
		makeLineFragment("XL", 0, 0, 40, 20, 20),
	}
	if got := TypicalCharWidth(fragments); got != 5 {
		t.Errorf("Expected 5, got %f", got)
	}
	if got := TypicalCharWidth(nil); got != 0 {
		t.Errorf("Expected 0 for no fragments, got %f", got)
	}
}

func TestLine_WithFragments(t *testing.T) {
	line := makeTestLine(700, false, "Skills", "Go", "Rust")
	line.Index = 4
	line.Page = 1

	got := line.WithFragments(line.Fragments[1:])
	if got.Text != "Go Rust" {
		t.Errorf("Expected %q, got %q", "Go Rust", got.Text)
	}
	if got.Index != 4 || got.Page != 1 || got.Y != 700 {
		t.Errorf("Expected position kept, got index %d page %d y %f", got.Index, got.Page, got.Y)
	}
	if got.BBox.X != line.Fragments[1].X {
		t.Errorf("Expected bbox to start at %f, got %f", line.Fragments[1].X, got.BBox.X)
	}
	if len(line.Fragments) != 3 {
		t.Error("Original line was modified")
	}

	empty := line.WithFragments(nil)
	if !empty.IsEmpty() {
		t.Errorf("Expected empty line, got %q", empty.Text)
	}
}
