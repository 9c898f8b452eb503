package syncer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/ratelimit"
	"github.com/twinpane/twinpane/pkg/storage"
)

// DefaultWorkers is the transfer pool size when none is configured.
const DefaultWorkers = 4

// ProgressFunc reports execution progress after each finished item.
type ProgressFunc func(completed, total int, item *models.SyncItem)

// ExecutorOptions configure one execution pass.
type ExecutorOptions struct {
	// Workers is the number of concurrent transfer workers
	Workers int

	// DryRun marks every item done without touching either tree
	DryRun bool

	// Limiter bounds the aggregate transfer rate, nil for unlimited
	Limiter *ratelimit.Limiter

	// Progress is invoked after each item settles, nil to disable
	Progress ProgressFunc
}

// Executor carries out a SyncPlan. It makes no decisions of its own:
// items whose action is ActionNone, and deselected items, are marked
// skipped and never touched.
type Executor struct {
	left    storage.Backend
	right   storage.Backend
	options ExecutorOptions
}

// NewExecutor creates an executor over the same two backends the plan
// was computed from.
func NewExecutor(left, right storage.Backend, options ExecutorOptions) *Executor {
	if options.Workers <= 0 {
		options.Workers = DefaultWorkers
	}
	return &Executor{left: left, right: right, options: options}
}

// Run executes every selected item of the plan through a worker pool.
// Item failures are recorded per item and never stop the pass; only
// cancellation does, leaving unprocessed items pending.
func (e *Executor) Run(ctx context.Context, plan *models.SyncPlan) models.RunStatus {
	runnable := make([]*models.SyncItem, 0, len(plan.Items))
	for _, item := range plan.Items {
		if !item.Selected || item.Action == models.ActionNone {
			item.Status = models.ItemSkipped
			continue
		}
		runnable = append(runnable, item)
	}

	var completed atomic.Int64
	items := make(chan *models.SyncItem)

	var wg sync.WaitGroup
	for w := 0; w < e.options.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := e.execute(ctx, item); err != nil {
					if ctx.Err() != nil {
						return
					}
					item.Status = models.ItemError
					item.Error = err.Error()
				} else {
					item.Status = models.ItemDone
				}

				done := int(completed.Add(1))
				if e.options.Progress != nil {
					e.options.Progress(done, len(runnable), item)
				}
			}
		}()
	}

feed:
	for _, item := range runnable {
		select {
		case <-ctx.Done():
			break feed
		case items <- item:
		}
	}
	close(items)
	wg.Wait()

	if ctx.Err() != nil {
		return models.RunCancelled
	}
	for _, item := range runnable {
		if item.Status == models.ItemError {
			return models.RunPartial
		}
	}
	return models.RunCompleted
}

// execute performs one planned action.
func (e *Executor) execute(ctx context.Context, item *models.SyncItem) error {
	if e.options.DryRun {
		return nil
	}

	switch item.Action {
	case models.ActionCopyRight, models.ActionUpdateRight:
		return e.transfer(ctx, e.left, e.right, item)
	case models.ActionCopyLeft, models.ActionUpdateLeft:
		return e.transfer(ctx, e.right, e.left, item)
	case models.ActionDeleteRight:
		return e.right.Delete(ctx, item.RelativePath)
	case models.ActionDeleteLeft:
		return e.left.Delete(ctx, item.RelativePath)
	default:
		return fmt.Errorf("unexpected action: %s", item.Action)
	}
}

// transfer copies one entry from src to dst, preserving the source
// modification time. Directories are created empty; their content is
// carried by the plan's own file items.
func (e *Executor) transfer(ctx context.Context, src, dst storage.Backend, item *models.SyncItem) error {
	if item.IsDir {
		return dst.MkdirAll(ctx, item.RelativePath)
	}

	meta, err := src.Stat(ctx, item.RelativePath)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	reader, err := src.Read(ctx, item.RelativePath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer reader.Close()

	var stream io.Reader = reader
	if e.options.Limiter != nil {
		stream = ratelimit.NewReader(ctx, reader, e.options.Limiter)
	}

	return dst.Write(ctx, item.RelativePath, stream, meta.Size, meta)
}
