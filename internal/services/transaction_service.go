package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finnexus/internal/amqp"
	"finnexus/internal/core"
	"finnexus/internal/store"
)

// EventPublisher pushes change notifications for the mirror worker. The AMQP
// client satisfies it; tests plug in fakes.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error
}

// TransactionService orchestrates transaction writes: validation, ID and
// commission derivation, persistence, and change events. Event publishing is
// best effort; a broker outage never fails the write.
type TransactionService struct {
	store     store.TransactionStore
	publisher EventPublisher
}

func NewTransactionService(s store.TransactionStore, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		store:     s,
		publisher: publisher,
	}
}

// TransactionPatch describes a partial update. Nil pointer fields are left
// unchanged; the Clear flags remove optional fields outright.
type TransactionPatch struct {
	Date        *core.Date
	Description *string
	Amount      *decimal.Decimal
	Type        *core.TransactionType
	Category    *core.Category
	Status      *core.TransactionStatus

	CommissionRate        *decimal.Decimal
	CommissionAmount      *decimal.Decimal
	CommissionPaymentDate *core.Date
	EmployeeName          *string
	PendingAmount         *decimal.Decimal

	ClearCommission    bool
	ClearPendingAmount bool
}

// List returns all transactions, newest first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// Get returns a single transaction by ID.
func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// Create validates the transaction, assigns an ID, materializes the derived
// commission amount and persists the row.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	t.CommissionAmount = t.ResolvedCommission()

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publishEvent(ctx, amqp.NewTransactionEvent(t.ID, amqp.ActionUpsert))
	return t, nil
}

// Update applies a partial patch to an existing transaction. The patched row
// is re-validated as a whole, so a patch can never leave a row violating the
// partial-payment invariant.
func (s *TransactionService) Update(ctx context.Context, id string, patch TransactionPatch) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	applyPatch(&t, patch)
	t.CommissionAmount = t.ResolvedCommission()

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publishEvent(ctx, amqp.NewTransactionEvent(t.ID, amqp.ActionUpsert))
	return t, nil
}

// SetStatus transitions a transaction to a new status. Leaving PARTIAL clears
// the pending amount; entering PARTIAL requires one on the row already, or in
// the same call via Update.
func (s *TransactionService) SetStatus(ctx context.Context, id string, status core.TransactionStatus) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Status = status
	if status != core.StatusPartial {
		t.PendingAmount = nil
	}

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("set transaction status: %w", err)
	}

	s.publishEvent(ctx, amqp.NewTransactionEvent(t.ID, amqp.ActionUpsert))
	return t, nil
}

// Delete removes a single transaction.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, amqp.NewTransactionEvent(id, amqp.ActionDelete))
	return nil
}

// Clear removes every transaction.
func (s *TransactionService) Clear(ctx context.Context) error {
	if err := s.store.ClearTransactions(ctx); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	s.publishEvent(ctx, amqp.NewClearEvent())
	return nil
}

func (s *TransactionService) publishEvent(ctx context.Context, msg *amqp.TransactionEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", msg.TransactionID,
			"action", msg.Action,
			"error", err)
	}
}

func applyPatch(t *core.Transaction, p TransactionPatch) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}

	if p.CommissionRate != nil {
		t.CommissionRate = p.CommissionRate
	}
	if p.CommissionAmount != nil {
		t.CommissionAmount = p.CommissionAmount
	}
	if p.CommissionPaymentDate != nil {
		t.CommissionPaymentDate = p.CommissionPaymentDate
	}
	if p.EmployeeName != nil {
		t.EmployeeName = *p.EmployeeName
	}
	if p.PendingAmount != nil {
		t.PendingAmount = p.PendingAmount
	}

	if p.ClearCommission {
		t.CommissionRate = nil
		t.CommissionAmount = nil
		t.CommissionPaymentDate = nil
		t.EmployeeName = ""
	}
	if p.ClearPendingAmount {
		t.PendingAmount = nil
	}
	if t.Status != core.StatusPartial {
		t.PendingAmount = nil
	}
}
