package render

import (
	"fmt"
	"strings"

	"github.com/teemow/tasknotes/internal/tree"
)

const indentStep = "    "

// Markdown renders a task forest as a nested checklist. Completed tasks
// get a checked box, subtasks indent one step per level, and a due date
// is appended when present.
func Markdown(forest []*tree.Node) string {
	var b strings.Builder
	tree.Walk(forest, func(n *tree.Node, depth int) {
		box := "[ ]"
		if n.Task.Done() {
			box = "[x]"
		}
		b.WriteString(strings.Repeat(indentStep, depth))
		b.WriteString("- ")
		b.WriteString(box)
		b.WriteString(" ")
		b.WriteString(n.Task.Title)
		if n.Task.HasDue() {
			layout := "2006-01-02 15:04"
			if n.Task.DateOnly() {
				layout = "2006-01-02"
			}
			fmt.Fprintf(&b, " (due %s)", n.Task.Due.Format(layout))
		}
		b.WriteString("\n")
	})
	return b.String()
}

// errorMarkdown degrades a failed pass into a visible note instead of
// blank output.
func errorMarkdown(err error) string {
	return fmt.Sprintf("> Failed to load tasks: %s\n", err)
}

// truncationNote flags that the list has more tasks than one page.
const truncationNote = "> Showing the first 100 tasks only; the list has more.\n"
