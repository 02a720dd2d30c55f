package render

import (
	"context"

	"github.com/teemow/tasknotes/internal/tasks"
)

// Source is the remote surface a render pass needs. *tasks.Client
// implements it; tests substitute a fake.
type Source interface {
	ResolveList(ctx context.Context, selector string) (tasks.TaskList, error)
	ListTasks(ctx context.Context, listID string, includeCompleted bool) (tasks.Page, error)
	UpdateStatus(ctx context.Context, listID, taskID string, completed bool) (tasks.Task, error)
}
