package tasks

import (
	"time"

	tasksapi "google.golang.org/api/tasks/v1"
)

// DefaultListID denotes the user's primary task list.
const DefaultListID = "@default"

// Task status values as reported by the remote API.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// TaskList is a named collection of tasks.
type TaskList struct {
	ID      string
	Title   string
	Updated time.Time
}

// Task is a transient, possibly-stale copy of a remote task.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Status    string // StatusNeedsAction or StatusCompleted
	Due       time.Time
	Completed time.Time
	Parent    string // Parent task ID for subtasks
	Position  string // Opaque ordering string assigned by the remote
	Updated   time.Time
}

// Done reports whether the task is completed.
func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

// HasDue reports whether the task carries a due instant.
func (t Task) HasDue() bool {
	return !t.Due.IsZero()
}

// DateOnly reports whether the due value looks date-only. The remote API
// represents date-only dues as midnight UTC, so a due time of exactly
// 00:00:00 UTC is treated as date-only. A legitimately midnight-UTC due
// time is indistinguishable from a date-only value; this is a known
// ambiguity of the remote convention.
func (t Task) DateOnly() bool {
	if !t.HasDue() {
		return false
	}
	h, m, s := t.Due.UTC().Clock()
	return h == 0 && m == 0 && s == 0 && t.Due.UTC().Nanosecond() == 0
}

// TaskInput is the input for creating a task. Title is mandatory; Due, if
// set, must be an absolute instant (date-only dues are midnight UTC by
// convention).
type TaskInput struct {
	Title  string
	Notes  string
	Due    time.Time
	Parent string
}

// Page is one page of tasks. Truncated is set when the remote reported
// more results than the fixed page size; the client does not paginate
// past the first page.
type Page struct {
	Tasks     []Task
	Truncated bool
}

// Visibility is the completion-status filter applied to fetched tasks.
type Visibility string

const (
	VisibilityAll        Visibility = "all"
	VisibilityCompleted  Visibility = "only-completed"
	VisibilityIncomplete Visibility = "only-incomplete"
)

// ShowCompleted reports whether a fetch for this visibility needs
// completed tasks from the remote.
func (v Visibility) ShowCompleted() bool {
	return v != VisibilityIncomplete
}

// Filter returns the tasks visible under this visibility, preserving
// input order.
func (v Visibility) Filter(items []Task) []Task {
	if v == VisibilityAll {
		return items
	}
	var out []Task
	for _, t := range items {
		if t.Done() == (v == VisibilityCompleted) {
			out = append(out, t)
		}
	}
	return out
}

// toTaskList converts a remote task list to the local type.
func toTaskList(tl *tasksapi.TaskList) TaskList {
	if tl == nil {
		return TaskList{}
	}
	result := TaskList{
		ID:    tl.Id,
		Title: tl.Title,
	}
	if tl.Updated != "" {
		if t, err := time.Parse(time.RFC3339, tl.Updated); err == nil {
			result.Updated = t
		}
	}
	return result
}

// toTask converts a remote task to the local type. Malformed timestamps
// are kept zero rather than failing the whole fetch.
func toTask(t *tasksapi.Task) Task {
	if t == nil {
		return Task{}
	}
	result := Task{
		ID:       t.Id,
		Title:    t.Title,
		Notes:    t.Notes,
		Status:   t.Status,
		Parent:   t.Parent,
		Position: t.Position,
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			result.Due = due
		}
	}
	if t.Completed != nil && *t.Completed != "" {
		if completed, err := time.Parse(time.RFC3339, *t.Completed); err == nil {
			result.Completed = completed
		}
	}
	if t.Updated != "" {
		if updated, err := time.Parse(time.RFC3339, t.Updated); err == nil {
			result.Updated = updated
		}
	}
	return result
}
