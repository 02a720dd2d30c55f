package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/teemow/tasknotes/internal/block"
	"github.com/teemow/tasknotes/internal/instrumentation"
	"github.com/teemow/tasknotes/internal/logging"
	"github.com/teemow/tasknotes/internal/tree"
)

// Toggle outcomes.
const (
	ToggleConfirmed = "confirmed"
	ToggleReverted  = "reverted"
)

// BlockID identifies one mounted block instance.
type BlockID string

// Result is the output of one render pass.
type Result struct {
	Block    BlockID
	Sequence uint64
	Markdown string
	// Stale is set when a newer pass was applied before this one
	// finished; the markdown of a stale result must not be displayed.
	Stale bool
	// Err carries the pipeline failure. Markdown still holds a
	// degraded rendering in that case.
	Err error
}

// ToggleOutcome reports what happened to a status toggle.
type ToggleOutcome struct {
	Confirmed bool
	// Reason explains a revert, in user-facing terms.
	Reason string
}

type blockState struct {
	path   string
	source string

	// next is the sequence handed to the next pass, applied the highest
	// sequence whose result was accepted.
	next    uint64
	applied uint64
}

// Controller owns the mounted blocks and runs their render passes.
type Controller struct {
	mu      sync.Mutex
	blocks  map[BlockID]*blockState
	toggles map[string]*sync.Mutex
	nextID  uint64

	source  Source
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
}

// ControllerConfig configures a Controller.
type ControllerConfig struct {
	Source  Source
	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Tracer  trace.Tracer
}

// NewController creates a controller over the given task source.
func NewController(cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("render")
	}
	return &Controller{
		blocks:  make(map[BlockID]*blockState),
		toggles: make(map[string]*sync.Mutex),
		source:  cfg.Source,
		logger:  logger,
		metrics: cfg.Metrics,
		tracer:  tracer,
	}
}

// Mount registers a block found at path with the given parameter source
// and returns its handle.
func (c *Controller) Mount(ctx context.Context, path, source string) BlockID {
	c.mu.Lock()
	c.nextID++
	id := BlockID(fmt.Sprintf("block-%d", c.nextID))
	c.blocks[id] = &blockState{path: path, source: source}
	c.mu.Unlock()

	c.metrics.BlockMounted(ctx)
	c.logger.Debug("block mounted", logging.Block(string(id)), slog.String("path", path))
	return id
}

// Unmount removes a block. Passes already in flight for it will come
// back stale.
func (c *Controller) Unmount(ctx context.Context, id BlockID) {
	c.mu.Lock()
	_, ok := c.blocks[id]
	delete(c.blocks, id)
	c.mu.Unlock()

	if ok {
		c.metrics.BlockUnmounted(ctx)
		c.logger.Debug("block unmounted", logging.Block(string(id)))
	}
}

// Mounted returns the handles of all mounted blocks.
func (c *Controller) Mounted() []BlockID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]BlockID, 0, len(c.blocks))
	for id := range c.blocks {
		out = append(out, id)
	}
	return out
}

// Render runs one render pass for a mounted block. A failed pass
// returns a degraded error rendering alongside the error itself. When a
// newer pass finished first, the result comes back marked stale and its
// markdown is empty.
func (c *Controller) Render(ctx context.Context, id BlockID) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "render.pass")
	defer span.End()

	start := time.Now()

	c.mu.Lock()
	state, ok := c.blocks[id]
	if !ok {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("block %s is not mounted", id)
	}
	state.next++
	seq := state.next
	path, source := state.path, state.source
	c.mu.Unlock()

	logger := logging.WithBlock(c.logger, string(id))
	markdown, err := c.pass(ctx, source, path)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordRenderPass(ctx, status, time.Since(start))

	c.mu.Lock()
	state, mounted := c.blocks[id]
	stale := !mounted || seq <= state.applied
	if !stale {
		state.applied = seq
	}
	c.mu.Unlock()

	if stale {
		c.metrics.RecordStaleRenderDropped(ctx)
		logger.Debug("stale render dropped", logging.Sequence(seq))
		return Result{Block: id, Sequence: seq, Stale: true}, nil
	}

	if err != nil {
		logger.Warn("render pass failed",
			logging.Sequence(seq),
			logging.Status(status),
			logging.Duration(time.Since(start)),
			logging.Err(err))
		return Result{Block: id, Sequence: seq, Markdown: errorMarkdown(err), Err: err}, nil
	}

	logger.Debug("render pass applied",
		logging.Sequence(seq),
		logging.Status(status),
		logging.Duration(time.Since(start)))
	return Result{Block: id, Sequence: seq, Markdown: markdown}, nil
}

// pass runs the pipeline once: parse, resolve, fetch, filter, build,
// window, markdown.
func (c *Controller) pass(ctx context.Context, source, path string) (string, error) {
	filter := block.Parse(source, path)

	list, err := c.source.ResolveList(ctx, filter.List)
	if err != nil {
		return "", err
	}

	page, err := c.source.ListTasks(ctx, list.ID, filter.Visibility.ShowCompleted())
	if err != nil {
		return "", err
	}

	visible := filter.Visibility.Filter(page.Tasks)
	forest := tree.Build(visible)
	forest = tree.FilterByWindow(forest, filter.From, filter.To)

	markdown := Markdown(forest)
	if page.Truncated {
		markdown += truncationNote
	}
	return markdown, nil
}

// Toggle flips a task's completion status on the remote. Toggles for
// the same task are serialized so rapid clicking cannot interleave. On
// failure the caller reverts its optimistic checkbox using the returned
// reason.
func (c *Controller) Toggle(ctx context.Context, listID, taskID string, completed bool) (ToggleOutcome, error) {
	ctx, span := c.tracer.Start(ctx, "render.toggle")
	defer span.End()

	key := listID + "/" + taskID
	c.mu.Lock()
	lock, ok := c.toggles[key]
	if !ok {
		lock = &sync.Mutex{}
		c.toggles[key] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	_, err := c.source.UpdateStatus(ctx, listID, taskID, completed)
	if err != nil {
		c.metrics.RecordToggle(ctx, ToggleReverted)
		c.logger.Warn("toggle reverted",
			logging.List(listID),
			logging.Task(taskID),
			logging.Err(err))
		return ToggleOutcome{Reason: err.Error()}, err
	}

	c.metrics.RecordToggle(ctx, ToggleConfirmed)
	return ToggleOutcome{Confirmed: true}, nil
}

// Watch re-renders every mounted block on a fixed interval until the
// context is cancelled. A failing pass is logged and the loop keeps
// going; apply receives every non-stale result. A non-positive interval
// disables the loop.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, apply func(Result)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := logging.WithOperation(c.logger, "watch")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range c.Mounted() {
				result, err := c.Render(ctx, id)
				if err != nil {
					logger.Warn("watch pass skipped", logging.Block(string(id)), logging.Err(err))
					continue
				}
				if result.Stale {
					continue
				}
				if apply != nil {
					apply(result)
				}
			}
		}
	}
}
