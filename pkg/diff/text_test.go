package diff

import (
	"testing"

	"github.com/twinpane/twinpane/pkg/models"
)

// checkRoundTrip verifies that segment lengths sum to both inputs.
func checkRoundTrip(t *testing.T, d *TextDiff, leftLen, rightLen int) {
	t.Helper()

	var leftSum, rightSum int
	for _, seg := range d.Segments {
		leftSum += seg.LeftCount
		rightSum += seg.RightCount
	}
	if leftSum != leftLen {
		t.Errorf("left lengths sum to %d, want %d", leftSum, leftLen)
	}
	if rightSum != rightLen {
		t.Errorf("right lengths sum to %d, want %d", rightSum, rightLen)
	}
}

func TestTextDiffIdentical(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})
	lines := []string{"alpha", "beta", "gamma", "delta"}

	d := engine.Compare(lines, lines)

	if len(d.Segments) != 1 {
		t.Fatalf("got %d segments, want exactly 1", len(d.Segments))
	}
	seg := d.Segments[0]
	if seg.Kind != models.DiffEqual || seg.LeftCount != 4 || seg.RightCount != 4 {
		t.Errorf("segment = %+v, want Equal covering all 4 lines", seg)
	}
	if !d.Stats.Identical() {
		t.Errorf("stats = %+v, want all zero", d.Stats)
	}
	checkRoundTrip(t, d, 4, 4)
}

func TestTextDiffBothEmpty(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})

	d := engine.Compare(nil, nil)

	if len(d.Segments) != 0 {
		t.Errorf("got %d segments, want 0", len(d.Segments))
	}
}

func TestTextDiffAdded(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})
	left := []string{"one", "three"}
	right := []string{"one", "two", "three"}

	d := engine.Compare(left, right)

	// Equal(one), Added(two), Equal(three)
	if len(d.Segments) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(d.Segments), d.Segments)
	}
	if d.Segments[1].Kind != models.DiffAdded || d.Segments[1].RightCount != 1 {
		t.Errorf("middle segment = %+v, want Added(1)", d.Segments[1])
	}
	if d.Stats.AddedLines != 1 || d.Stats.DeletedLines != 0 {
		t.Errorf("stats = %+v, want 1 added", d.Stats)
	}
	checkRoundTrip(t, d, len(left), len(right))
}

func TestTextDiffDeleted(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})
	left := []string{"one", "two", "three"}
	right := []string{"one", "three"}

	d := engine.Compare(left, right)

	if len(d.Segments) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(d.Segments), d.Segments)
	}
	if d.Segments[1].Kind != models.DiffDeleted || d.Segments[1].LeftCount != 1 {
		t.Errorf("middle segment = %+v, want Deleted(1)", d.Segments[1])
	}
	checkRoundTrip(t, d, len(left), len(right))
}

func TestTextDiffModified(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})

	t.Run("OneForOne", func(t *testing.T) {
		left := []string{"keep", "old line", "tail"}
		right := []string{"keep", "new line", "tail"}

		d := engine.Compare(left, right)

		if len(d.Segments) != 3 {
			t.Fatalf("got %d segments, want 3: %+v", len(d.Segments), d.Segments)
		}
		seg := d.Segments[1]
		if seg.Kind != models.DiffModified || seg.LeftCount != 1 || seg.RightCount != 1 {
			t.Errorf("middle segment = %+v, want Modified(1,1)", seg)
		}
		checkRoundTrip(t, d, len(left), len(right))
	})

	t.Run("AsymmetricBlock", func(t *testing.T) {
		// 2 old lines replaced by 3 new ones
		left := []string{"head", "a1", "a2", "tail"}
		right := []string{"head", "b1", "b2", "b3", "tail"}

		d := engine.Compare(left, right)

		if len(d.Segments) != 3 {
			t.Fatalf("got %d segments, want 3: %+v", len(d.Segments), d.Segments)
		}
		seg := d.Segments[1]
		if seg.Kind != models.DiffModified || seg.LeftCount != 2 || seg.RightCount != 3 {
			t.Errorf("middle segment = %+v, want Modified(2,3)", seg)
		}
		if d.Stats.ModifiedLines != 3 {
			t.Errorf("ModifiedLines = %d, want 3 (the longer side)", d.Stats.ModifiedLines)
		}
		checkRoundTrip(t, d, len(left), len(right))
	})
}

func TestTextDiffNoMatchInWindow(t *testing.T) {
	// Tiny window forces the terminal-tail path
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true, Window: 2})
	left := []string{"x1", "x2", "x3", "x4", "x5"}
	right := []string{"y1", "y2", "y3"}

	d := engine.Compare(left, right)

	if len(d.Segments) != 1 {
		t.Fatalf("got %d segments, want 1 terminal block: %+v", len(d.Segments), d.Segments)
	}
	seg := d.Segments[0]
	if seg.Kind != models.DiffModified || seg.LeftCount != 5 || seg.RightCount != 3 {
		t.Errorf("segment = %+v, want Modified(5,3)", seg)
	}
	checkRoundTrip(t, d, len(left), len(right))
}

func TestTextDiffNearestMatchWins(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})
	// The realignment at distance 1 (delete "noise") beats any farther one
	left := []string{"noise", "anchor", "end"}
	right := []string{"anchor", "end"}

	d := engine.Compare(left, right)

	if len(d.Segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(d.Segments), d.Segments)
	}
	if d.Segments[0].Kind != models.DiffDeleted || d.Segments[0].LeftCount != 1 {
		t.Errorf("first segment = %+v, want Deleted(1)", d.Segments[0])
	}
	if d.Segments[1].Kind != models.DiffEqual || d.Segments[1].LeftCount != 2 {
		t.Errorf("second segment = %+v, want Equal(2)", d.Segments[1])
	}
}

func TestTextDiffEqualityPolicy(t *testing.T) {
	lines := func(s ...string) []string { return s }

	t.Run("CaseFolding", func(t *testing.T) {
		engine := NewTextDiffEngine(TextOptions{CaseSensitive: false})
		d := engine.Compare(lines("Hello World"), lines("hello world"))
		if !d.Stats.Identical() {
			t.Errorf("case-insensitive compare should match: %+v", d.Segments)
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})
		d := engine.Compare(lines("Hello"), lines("hello"))
		if d.Stats.Identical() {
			t.Error("case-sensitive compare should differ")
		}
	})

	t.Run("WhitespaceCollapsing", func(t *testing.T) {
		engine := NewTextDiffEngine(TextOptions{CaseSensitive: true, IgnoreWhitespace: true})
		d := engine.Compare(lines("  a   b\tc  "), lines("a b c"))
		if !d.Stats.Identical() {
			t.Errorf("whitespace-insensitive compare should match: %+v", d.Segments)
		}
	})

	t.Run("BlankLines", func(t *testing.T) {
		engine := NewTextDiffEngine(TextOptions{CaseSensitive: true, IgnoreWhitespace: true, IgnoreBlankLines: true})
		d := engine.Compare(lines("a", "   ", "b"), lines("a", "", "b"))
		if !d.Stats.Identical() {
			t.Errorf("blank lines should compare equal: %+v", d.Segments)
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"Empty", "", 0},
		{"SingleNoNewline", "one", 1},
		{"TrailingNewline", "one\ntwo\n", 2},
		{"WindowsEndings", "one\r\ntwo\r\n", 2},
		{"BlankMiddle", "one\n\ntwo", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.content)
			if len(got) != tt.want {
				t.Errorf("SplitLines(%q) = %d lines, want %d", tt.content, len(got), tt.want)
			}
		})
	}
}

func TestRenderAlignment(t *testing.T) {
	engine := NewTextDiffEngine(TextOptions{CaseSensitive: true})

	left := []string{"same", "gone", "changed A", "changed B", "tail"}
	right := []string{"same", "changed X", "tail", "extra"}

	d := engine.Compare(left, right)
	view := Render(left, right, d.Segments)

	if len(view.Left) != len(view.Right) {
		t.Fatalf("pane lengths differ: left=%d right=%d", len(view.Left), len(view.Right))
	}

	// Count real lines per pane: must reproduce the inputs
	var leftReal, rightReal int
	for _, row := range view.Left {
		if !row.Placeholder {
			leftReal++
		}
	}
	for _, row := range view.Right {
		if !row.Placeholder {
			rightReal++
		}
	}
	if leftReal != len(left) {
		t.Errorf("left pane has %d real rows, want %d", leftReal, len(left))
	}
	if rightReal != len(right) {
		t.Errorf("right pane has %d real rows, want %d", rightReal, len(right))
	}

	// Placeholder rows carry no line number
	for _, row := range append(append([]models.DiffLine{}, view.Left...), view.Right...) {
		if row.Placeholder && row.Number != 0 {
			t.Errorf("placeholder row has number %d, want 0", row.Number)
		}
		if !row.Placeholder && row.Number == 0 {
			t.Error("real row missing its line number")
		}
	}
}

func TestRenderDeletedPadsRight(t *testing.T) {
	left := []string{"a", "b"}
	right := []string{"a"}
	segments := []models.DiffSegment{
		{Kind: models.DiffEqual, LeftCount: 1, RightCount: 1},
		{Kind: models.DiffDeleted, LeftCount: 1},
	}

	view := Render(left, right, segments)

	if len(view.Left) != 2 || len(view.Right) != 2 {
		t.Fatalf("pane lengths = %d/%d, want 2/2", len(view.Left), len(view.Right))
	}
	if !view.Right[1].Placeholder {
		t.Error("right pane should pad the deleted row")
	}
	if view.Left[1].Text != "b" || view.Left[1].Kind != models.DiffDeleted {
		t.Errorf("left row = %+v, want deleted 'b'", view.Left[1])
	}
}
