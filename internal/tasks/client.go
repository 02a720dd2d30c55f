package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"github.com/teemow/tasknotes/internal/instrumentation"
	"github.com/teemow/tasknotes/internal/logging"
)

// pageSize is the fixed fetch cap. Lists with more open tasks than this
// come back truncated; Page.Truncated carries the signal.
const pageSize = 100

// Config configures a Client.
type Config struct {
	// HTTPClient performs the authenticated requests. Required; in
	// production this is an auth.Transport client.
	HTTPClient *http.Client

	// BaseURL overrides the API endpoint. Tests point this at an
	// httptest server; empty keeps the Google default.
	BaseURL string

	// Logger for operation logging. slog.Default when nil.
	Logger *slog.Logger

	// Metrics records remote operation metrics. May be nil.
	Metrics *instrumentation.Metrics
}

// Client is the CRUD surface over the remote task collections.
type Client struct {
	svc     *tasksapi.Service
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// NewClient creates a Tasks client on top of the given authenticated
// HTTP client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.HTTPClient == nil {
		return nil, fmt.Errorf("an authenticated HTTP client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.ClientOption{option.WithHTTPClient(cfg.HTTPClient)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	svc, err := tasksapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}

	return &Client{
		svc:     svc,
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

// ListTaskLists lists all task lists for the authenticated user.
func (c *Client) ListTaskLists(ctx context.Context) (lists []TaskList, err error) {
	defer c.observe(ctx, "list_task_lists", time.Now(), &err)

	result, err := c.svc.Tasklists.List().MaxResults(pageSize).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	for _, tl := range result.Items {
		lists = append(lists, toTaskList(tl))
	}
	return lists, nil
}

// ResolveList resolves a list selector to a task list. An empty selector
// or "@default" resolves to the user's primary list; otherwise an exact
// ID match wins, then a case-insensitive title match. A selector matching
// nothing is a configuration error, reported as ListNotFoundError.
func (c *Client) ResolveList(ctx context.Context, selector string) (TaskList, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == DefaultListID {
		return c.getList(ctx, DefaultListID)
	}

	lists, err := c.ListTaskLists(ctx)
	if err != nil {
		return TaskList{}, err
	}

	for _, l := range lists {
		if l.ID == selector {
			return l, nil
		}
	}
	lowered := strings.ToLower(selector)
	for _, l := range lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == lowered {
			return l, nil
		}
	}
	return TaskList{}, &ListNotFoundError{Query: selector}
}

func (c *Client) getList(ctx context.Context, listID string) (list TaskList, err error) {
	defer c.observe(ctx, "get_task_list", time.Now(), &err)

	tl, err := c.svc.Tasklists.Get(listID).Context(ctx).Do()
	if err != nil {
		return TaskList{}, wrapError(err)
	}
	return toTaskList(tl), nil
}

// ListTasks fetches up to one page of tasks from a list. Hidden tasks
// are requested along with completed ones, since the remote hides
// completed subtasks by default.
func (c *Client) ListTasks(ctx context.Context, listID string, includeCompleted bool) (page Page, err error) {
	defer c.observe(ctx, "list_tasks", time.Now(), &err)

	call := c.svc.Tasks.List(listID).MaxResults(pageSize)
	if includeCompleted {
		call = call.ShowCompleted(true).ShowHidden(true)
	} else {
		call = call.ShowCompleted(false)
	}

	result, err := call.Context(ctx).Do()
	if err != nil {
		return Page{}, wrapError(err)
	}

	page.Truncated = result.NextPageToken != ""
	for _, t := range result.Items {
		page.Tasks = append(page.Tasks, toTask(t))
	}

	if page.Truncated {
		c.logger.Warn("task list truncated at page size",
			logging.Operation("list_tasks"),
			logging.List(listID),
			slog.Int("page_size", pageSize))
	}

	return page, nil
}

// CreateTask creates a new task in the given list.
func (c *Client) CreateTask(ctx context.Context, listID string, input TaskInput) (task Task, err error) {
	if strings.TrimSpace(input.Title) == "" {
		return Task{}, fmt.Errorf("task title must not be empty")
	}

	defer c.observe(ctx, "create_task", time.Now(), &err)

	t := &tasksapi.Task{
		Title: input.Title,
		Notes: input.Notes,
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	call := c.svc.Tasks.Insert(listID, t)
	if input.Parent != "" {
		call = call.Parent(input.Parent)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return toTask(created), nil
}

// UpdateStatus sets a task's completion status.
func (c *Client) UpdateStatus(ctx context.Context, listID, taskID string, completed bool) (task Task, err error) {
	defer c.observe(ctx, "update_status", time.Now(), &err)

	status := StatusNeedsAction
	if completed {
		status = StatusCompleted
	}

	updated, err := c.svc.Tasks.Patch(listID, taskID, &tasksapi.Task{Status: status}).Context(ctx).Do()
	if err != nil {
		return Task{}, wrapError(err)
	}
	return toTask(updated), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) (err error) {
	defer c.observe(ctx, "delete_task", time.Now(), &err)

	if err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// observe emits the per-operation duration metric, deriving the status
// from the method's returned error.
func (c *Client) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	status := instrumentation.StatusSuccess
	if *errp != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordRemoteOperation(ctx, operation, status, time.Since(start))
}
