package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finnexus/internal/amqp"
	"finnexus/internal/core"
	"finnexus/internal/store"
	"finnexus/internal/store/memory"
)

func tx(id string, day int, amount string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        core.Date{Year: 2024, Month: 3, Day: day},
		Description: "Mirror row " + id,
		Amount:      decimal.RequireFromString(amount),
		Type:        core.TypeIncome,
		Category:    core.CategorySales,
		Status:      core.StatusCompleted,
	}
}

func TestHandleEventUpsert(t *testing.T) {
	primary, mirror := memory.NewStore(), memory.NewStore()
	w := NewMirrorWorker(primary, mirror, nil, time.Minute)
	ctx := context.Background()

	if err := primary.CreateTransaction(ctx, tx("a", 1, "100")); err != nil {
		t.Fatal(err)
	}

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent("a", amqp.ActionUpsert)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	got, err := mirror.GetTransaction(ctx, "a")
	if err != nil {
		t.Fatalf("mirror row missing: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("mirror amount = %s", got.Amount)
	}

	// A second upsert replaces the row instead of duplicating it.
	updated := tx("a", 1, "250")
	if err := primary.UpdateTransaction(ctx, updated); err != nil {
		t.Fatal(err)
	}
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent("a", amqp.ActionUpsert)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	got, _ = mirror.GetTransaction(ctx, "a")
	if !got.Amount.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("mirror not updated, amount = %s", got.Amount)
	}
	rows, _ := mirror.ListTransactions(ctx)
	if len(rows) != 1 {
		t.Fatalf("mirror rows = %d, want 1", len(rows))
	}
}

func TestHandleEventUpsertForMissingRowDeletes(t *testing.T) {
	primary, mirror := memory.NewStore(), memory.NewStore()
	w := NewMirrorWorker(primary, mirror, nil, time.Minute)
	ctx := context.Background()

	if err := mirror.CreateTransaction(ctx, tx("gone", 1, "10")); err != nil {
		t.Fatal(err)
	}

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent("gone", amqp.ActionUpsert)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if _, err := mirror.GetTransaction(ctx, "gone"); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("row deleted on primary should be dropped from the mirror")
	}
}

func TestHandleEventDeleteAndClear(t *testing.T) {
	primary, mirror := memory.NewStore(), memory.NewStore()
	w := NewMirrorWorker(primary, mirror, nil, time.Minute)
	ctx := context.Background()

	for _, row := range []core.Transaction{tx("a", 1, "1"), tx("b", 2, "2")} {
		if err := mirror.CreateTransaction(ctx, row); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent("a", amqp.ActionDelete)); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	// Deleting an already absent row is not an error.
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent("a", amqp.ActionDelete)); err != nil {
		t.Fatalf("repeated delete event: %v", err)
	}

	if err := w.HandleEvent(ctx, amqp.NewClearEvent()); err != nil {
		t.Fatalf("clear event: %v", err)
	}
	rows, _ := mirror.ListTransactions(ctx)
	if len(rows) != 0 {
		t.Fatalf("mirror should be empty, has %d rows", len(rows))
	}
}

func TestHandleEventUnknownAction(t *testing.T) {
	w := NewMirrorWorker(memory.NewStore(), memory.NewStore(), nil, time.Minute)
	err := w.HandleEvent(context.Background(), &amqp.TransactionEventMessage{Action: "rename", TransactionID: "x"})
	if err == nil {
		t.Fatal("unknown action should error")
	}
}

func TestReconcile(t *testing.T) {
	primary, mirror := memory.NewStore(), memory.NewStore()
	w := NewMirrorWorker(primary, mirror, nil, time.Minute)
	ctx := context.Background()

	// Primary has a and b; mirror has a stale copy of a plus orphan c.
	for _, row := range []core.Transaction{tx("a", 1, "100"), tx("b", 2, "200")} {
		if err := primary.CreateTransaction(ctx, row); err != nil {
			t.Fatal(err)
		}
	}
	if err := mirror.CreateTransaction(ctx, tx("a", 1, "999")); err != nil {
		t.Fatal(err)
	}
	if err := mirror.CreateTransaction(ctx, tx("c", 3, "300")); err != nil {
		t.Fatal(err)
	}

	if err := w.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	rows, _ := mirror.ListTransactions(ctx)
	if len(rows) != 2 {
		t.Fatalf("mirror rows = %d, want 2", len(rows))
	}
	a, err := mirror.GetTransaction(ctx, "a")
	if err != nil || !a.Amount.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("stale row not refreshed: %v %s", err, a.Amount)
	}
	if _, err := mirror.GetTransaction(ctx, "c"); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("orphan row should be removed")
	}
}

func TestRunConsumesEventsAndStopsOnCancel(t *testing.T) {
	primary, mirror := memory.NewStore(), memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	if err := primary.CreateTransaction(ctx, tx("a", 1, "100")); err != nil {
		t.Fatal(err)
	}

	source := EventSource(func(ctx context.Context, handler func(*amqp.TransactionEventMessage) error) error {
		if err := handler(amqp.NewTransactionEvent("a", amqp.ActionUpsert)); err != nil {
			return err
		}
		<-ctx.Done()
		return ctx.Err()
	})

	w := NewMirrorWorker(primary, mirror, source, time.Hour)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if _, err := mirror.GetTransaction(context.Background(), "a"); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("event was not applied in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v on cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
