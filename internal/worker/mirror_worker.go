// Package worker replicates the primary transaction store into a mirror
// backend, driven by AMQP change events with a periodic full reconcile as a
// safety net.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"finnexus/internal/amqp"
	"finnexus/internal/store"
)

// EventSource delivers change events until the context is cancelled. The
// AMQP reconnecting consumer satisfies it.
type EventSource func(ctx context.Context, handler func(*amqp.TransactionEventMessage) error) error

// MirrorWorker keeps a mirror store in step with the primary. Events carry
// only IDs; the worker always reads the current row from the primary, so
// replaying or reordering events cannot corrupt the mirror.
type MirrorWorker struct {
	primary store.TransactionStore
	mirror  store.TransactionStore
	source  EventSource

	reconcileInterval time.Duration
}

func NewMirrorWorker(primary, mirror store.TransactionStore, source EventSource, reconcileInterval time.Duration) *MirrorWorker {
	return &MirrorWorker{
		primary:           primary,
		mirror:            mirror,
		source:            source,
		reconcileInterval: reconcileInterval,
	}
}

// HandleEvent applies a single change event to the mirror.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	switch msg.Action {
	case amqp.ActionUpsert:
		return w.upsert(ctx, msg.TransactionID)
	case amqp.ActionDelete:
		return w.delete(ctx, msg.TransactionID)
	case amqp.ActionClear:
		if err := w.mirror.ClearTransactions(ctx); err != nil {
			return fmt.Errorf("clear mirror: %w", err)
		}
		slog.InfoContext(ctx, "Cleared mirror store")
		return nil
	default:
		return fmt.Errorf("unknown event action: %q", msg.Action)
	}
}

func (w *MirrorWorker) upsert(ctx context.Context, id string) error {
	t, err := w.primary.GetTransaction(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted on the primary after the event was published. The delete
		// event will follow; dropping the row now is equally correct.
		return w.delete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("read primary: %w", err)
	}

	if err := w.mirror.DeleteTransaction(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("replace mirror row: %w", err)
	}
	if err := w.mirror.CreateTransaction(ctx, t); err != nil {
		return fmt.Errorf("write mirror row: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction", "transaction_id", id)
	return nil
}

func (w *MirrorWorker) delete(ctx context.Context, id string) error {
	err := w.mirror.DeleteTransaction(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete mirror row: %w", err)
	}
	slog.InfoContext(ctx, "Removed mirrored transaction", "transaction_id", id)
	return nil
}

// Reconcile makes the mirror exactly match the primary: stale rows are
// updated, missing rows created, orphans removed. It recovers from any events
// lost while the worker or broker was down.
func (w *MirrorWorker) Reconcile(ctx context.Context) error {
	primaryRows, err := w.primary.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list primary: %w", err)
	}
	mirrorRows, err := w.mirror.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list mirror: %w", err)
	}

	wanted := make(map[string]bool, len(primaryRows))
	for _, t := range primaryRows {
		wanted[t.ID] = true
		if err := w.upsert(ctx, t.ID); err != nil {
			return err
		}
	}

	removed := 0
	for _, t := range mirrorRows {
		if wanted[t.ID] {
			continue
		}
		if err := w.delete(ctx, t.ID); err != nil {
			return err
		}
		removed++
	}

	slog.InfoContext(ctx, "Reconciled mirror",
		"rows", len(primaryRows),
		"orphans_removed", removed)
	return nil
}

// Run consumes change events and reconciles on a timer, until the context is
// cancelled. Either loop failing stops the other.
func (w *MirrorWorker) Run(ctx context.Context) error {
	if err := w.Reconcile(ctx); err != nil {
		return fmt.Errorf("initial reconcile: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.source != nil {
		g.Go(func() error {
			return w.source(ctx, func(msg *amqp.TransactionEventMessage) error {
				return w.HandleEvent(ctx, msg)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.reconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.Reconcile(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic reconcile failed", "error", err)
				}
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
