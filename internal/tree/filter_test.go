package tree

import (
	"testing"
	"time"

	"github.com/teemow/tasknotes/internal/tasks"
)

func day(d int) time.Time {
	return time.Date(2026, 2, d, 12, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func ids(forest []*Node) []string {
	var out []string
	Walk(forest, func(n *Node, depth int) {
		out = append(out, n.Task.ID)
	})
	return out
}

func TestFilterByWindow_NoBoundsReturnsInput(t *testing.T) {
	forest := Build([]tasks.Task{{ID: "a"}, {ID: "b"}})

	got := FilterByWindow(forest, nil, nil)

	if len(got) != 2 {
		t.Fatalf("Expected unchanged forest, got %d roots", len(got))
	}
	if got[0] != forest[0] || got[1] != forest[1] {
		t.Error("Expected the same forest back without bounds")
	}
}

func TestFilterByWindow_MatchingParentKeepsFullSubtree(t *testing.T) {
	// A due on the 5th, children B (due 10th, outside the window) and C
	// (no due). A matches the [1st, 7th] window, so the whole subtree
	// stays, unfiltered.
	forest := Build([]tasks.Task{
		{ID: "a", Due: day(5)},
		{ID: "b", Parent: "a", Due: day(10)},
		{ID: "c", Parent: "a"},
	})

	got := FilterByWindow(forest, timePtr(day(1)), timePtr(day(7)))

	want := []string{"a", "b", "c"}
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("Expected nodes %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], gotIDs[i])
		}
	}
}

func TestFilterByWindow_AncestorPathKeptForMatchingDescendant(t *testing.T) {
	// A has no due and cannot match; B (due 10th) does. A survives only
	// as the path to B.
	forest := Build([]tasks.Task{
		{ID: "a"},
		{ID: "b", Parent: "a", Due: day(10)},
	})

	got := FilterByWindow(forest, timePtr(day(8)), timePtr(day(12)))

	if len(got) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(got))
	}
	if got[0].Task.ID != "a" {
		t.Errorf("Expected ancestor 'a' kept, got %s", got[0].Task.ID)
	}
	if len(got[0].Children) != 1 || got[0].Children[0].Task.ID != "b" {
		t.Error("Expected matching child 'b' under 'a'")
	}
}

func TestFilterByWindow_NonMatchingLeafDropped(t *testing.T) {
	forest := Build([]tasks.Task{{ID: "a", Due: day(1)}})

	got := FilterByWindow(forest, timePtr(day(8)), timePtr(day(12)))

	if len(got) != 0 {
		t.Errorf("Expected empty forest, got %d roots", len(got))
	}
}

func TestFilterByWindow_PathCopyDoesNotMutateOriginal(t *testing.T) {
	forest := Build([]tasks.Task{
		{ID: "a"},
		{ID: "b", Parent: "a", Due: day(10)},
		{ID: "c", Parent: "a", Due: day(20)},
	})

	got := FilterByWindow(forest, timePtr(day(8)), timePtr(day(12)))

	if len(got[0].Children) != 1 {
		t.Fatalf("Expected filtered copy with 1 child, got %d", len(got[0].Children))
	}
	// The original forest must keep both children.
	if len(forest[0].Children) != 2 {
		t.Errorf("Original forest mutated: expected 2 children, got %d", len(forest[0].Children))
	}
}

func TestFilterByWindow_Bounds(t *testing.T) {
	forest := Build([]tasks.Task{{ID: "a", Due: day(5)}})

	tests := []struct {
		name string
		from *time.Time
		to   *time.Time
		kept bool
	}{
		{name: "inside both bounds", from: timePtr(day(1)), to: timePtr(day(7)), kept: true},
		{name: "due equals from", from: timePtr(day(5)), to: nil, kept: true},
		{name: "due equals to", from: nil, to: timePtr(day(5)), kept: true},
		{name: "before from", from: timePtr(day(6)), to: nil, kept: false},
		{name: "after to", from: nil, to: timePtr(day(4)), kept: false},
		{name: "only from, open end", from: timePtr(day(1)), to: nil, kept: true},
		{name: "only to, open start", from: nil, to: timePtr(day(7)), kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByWindow(forest, tt.from, tt.to)
			if kept := len(got) == 1; kept != tt.kept {
				t.Errorf("Expected kept=%v, got %d roots", tt.kept, len(got))
			}
		})
	}
}

func TestFilterByWindow_NoDueNeverMatchesDirectly(t *testing.T) {
	forest := Build([]tasks.Task{{ID: "a"}})

	got := FilterByWindow(forest, timePtr(day(1)), timePtr(day(28)))

	if len(got) != 0 {
		t.Error("A task with no due date must not match a window on its own")
	}
}
