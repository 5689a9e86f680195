// Package store defines the outbound persistence ports the bookkeeping core
// depends on. Every backend (memory, local SQLite, remote MySQL) implements
// the same pair of interfaces and is selected once at startup.
package store

import (
	"context"
	"errors"

	"finnexus/internal/core"
)

// ErrNotFound is returned when an id does not exist in the store.
var ErrNotFound = errors.New("record not found")

type (
	// TransactionStore is the CRUD contract over transaction records.
	// Implementations persist rows as given: IDs are assigned by the caller
	// (the services layer) before Create.
	TransactionStore interface {
		// ListTransactions returns every transaction, newest date first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) error
		// UpdateTransaction replaces the stored row addressed by t.ID.
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id string) error
		// ClearTransactions destructively removes every transaction.
		ClearTransactions(ctx context.Context) error
	}

	// TaxSettingStore is the contract over configured tax rates.
	TaxSettingStore interface {
		// ListTaxSettings returns the settings in insertion order.
		ListTaxSettings(ctx context.Context) ([]core.TaxSetting, error)
		CreateTaxSetting(ctx context.Context, s core.TaxSetting) error
		DeleteTaxSetting(ctx context.Context, id string) error
	}
)
