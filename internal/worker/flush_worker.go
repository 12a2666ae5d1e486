// Package worker runs the background persistence flush.
package worker

import (
	"context"
	"log/slog"
	"time"

	"mealtrack/internal/ledger"
	"mealtrack/internal/persist"
)

// FlushWorker writes the ledger to durable storage off the mutation path.
// Mutations request a flush and return immediately; requests arriving while
// a save is in flight coalesce into a single follow-up write. Save failures
// are logged and swallowed: the in-memory ledger stays authoritative.
type FlushWorker struct {
	store    *ledger.Store
	saver    persist.Saver
	requests chan struct{}
	timeout  time.Duration
}

func NewFlushWorker(store *ledger.Store, saver persist.Saver, timeout time.Duration) *FlushWorker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FlushWorker{
		store:    store,
		saver:    saver,
		requests: make(chan struct{}, 1),
		timeout:  timeout,
	}
}

// Request asks for a flush without blocking the caller.
func (w *FlushWorker) Request() {
	select {
	case w.requests <- struct{}{}:
	default:
		// A flush is already pending; it will pick up this mutation too.
	}
}

// Run processes flush requests until the context is canceled, then performs
// one final flush so a clean shutdown never loses the last mutation.
func (w *FlushWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			return nil
		case <-w.requests:
			w.flush(ctx)
		}
	}
}

func (w *FlushWorker) flush(ctx context.Context) {
	meals, goal := w.store.Snapshot()
	cctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.saver.Save(cctx, persist.State{MealsByDate: meals, Goal: goal}); err != nil {
		slog.WarnContext(cctx, "Ledger flush failed, keeping in-memory state authoritative",
			"error", err, "days", len(meals))
		return
	}
	slog.DebugContext(cctx, "Ledger flushed", "days", len(meals), "goal", goal)
}
