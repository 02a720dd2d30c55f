package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/tasknotes/internal/tasks"
	"github.com/teemow/tasknotes/internal/tree"
)

func TestMarkdown(t *testing.T) {
	forest := tree.Build([]tasks.Task{
		{ID: "a", Title: "Plan trip", Status: tasks.StatusNeedsAction},
		{ID: "b", Title: "Book flights", Parent: "a", Status: tasks.StatusCompleted},
		{ID: "c", Title: "Pack", Status: tasks.StatusNeedsAction},
	})

	got := Markdown(forest)

	want := "- [ ] Plan trip\n" +
		"    - [x] Book flights\n" +
		"- [ ] Pack\n"
	assert.Equal(t, want, got)
}

func TestMarkdown_DueDateOnly(t *testing.T) {
	// Midnight UTC is the remote convention for date-only dues.
	forest := tree.Build([]tasks.Task{
		{ID: "a", Title: "File taxes", Due: time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)},
	})

	got := Markdown(forest)

	assert.Equal(t, "- [ ] File taxes (due 2026-02-11)\n", got)
}

func TestMarkdown_DueWithTime(t *testing.T) {
	forest := tree.Build([]tasks.Task{
		{ID: "a", Title: "Standup", Due: time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)},
	})

	got := Markdown(forest)

	assert.Equal(t, "- [ ] Standup (due 2026-02-11 09:30)\n", got)
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", Markdown(nil))
}

func TestMarkdown_DeepNesting(t *testing.T) {
	forest := tree.Build([]tasks.Task{
		{ID: "a", Title: "a"},
		{ID: "b", Title: "b", Parent: "a"},
		{ID: "c", Title: "c", Parent: "b"},
	})

	got := Markdown(forest)

	want := "- [ ] a\n" +
		"    - [ ] b\n" +
		"        - [ ] c\n"
	assert.Equal(t, want, got)
}
