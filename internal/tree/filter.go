package tree

import (
	"time"

	"github.com/teemow/tasknotes/internal/tasks"
)

// FilterByWindow applies a from/to due-date window to a forest. With no
// bounds the input is returned unchanged.
//
// A node matches when it carries a due instant inside the window. A
// matching node is kept with its full original subtree: a matching
// parent's checklist is never truncated by the window. A non-matching
// node survives only as a path to matching descendants, carried as a
// shallow copy holding just the filtered children.
func FilterByWindow(forest []*Node, from, to *time.Time) []*Node {
	if from == nil && to == nil {
		return forest
	}

	var out []*Node
	for _, n := range forest {
		if matchesWindow(n.Task, from, to) {
			out = append(out, n)
			continue
		}
		if kids := FilterByWindow(n.Children, from, to); len(kids) > 0 {
			out = append(out, &Node{Task: n.Task, Children: kids})
		}
	}
	return out
}

// matchesWindow reports whether the task's due instant falls inside the
// bounds. A task with no due date never matches directly.
func matchesWindow(t tasks.Task, from, to *time.Time) bool {
	if !t.HasDue() {
		return false
	}
	if from != nil && t.Due.Before(*from) {
		return false
	}
	if to != nil && t.Due.After(*to) {
		return false
	}
	return true
}
