package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"finnexus/internal/core"
	"finnexus/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "finnexus.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rate := decimal.NewFromInt(10)
	comm := decimal.NewFromInt(50)
	pending := decimal.NewFromInt(200)
	payDay := core.NewDate(2024, 4, 5)
	in := core.Transaction{
		ID:                    "tx-1",
		Date:                  core.NewDate(2024, 3, 15),
		Description:           "service with commission",
		Amount:                decimal.NewFromInt(500),
		Type:                  core.TypeIncome,
		Category:              core.CategoryServices,
		Status:                core.StatusPartial,
		EmployeeName:          "Ana",
		CommissionRate:        &rate,
		CommissionAmount:      &comm,
		CommissionPaymentDate: &payDay,
		PendingAmount:         &pending,
	}
	if err := repo.CreateTransaction(ctx, in); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetTransaction(ctx, "tx-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != in.Date || got.Status != in.Status || got.EmployeeName != "Ana" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CommissionAmount == nil || !got.CommissionAmount.Equal(comm) {
		t.Fatalf("commission lost: %+v", got.CommissionAmount)
	}
	if got.CommissionPaymentDate == nil || *got.CommissionPaymentDate != payDay {
		t.Fatalf("commission date lost: %+v", got.CommissionPaymentDate)
	}
	if got.PendingAmount == nil || !got.PendingAmount.Equal(pending) {
		t.Fatalf("pending amount lost: %+v", got.PendingAmount)
	}

	// Optional fields stay absent, not zero.
	bare := core.Transaction{
		ID: "tx-2", Date: core.NewDate(2024, 3, 16), Description: "bare",
		Amount: decimal.NewFromInt(10), Type: core.TypeExpense,
		Category: core.CategoryOffice, Status: core.StatusCompleted,
	}
	if err := repo.CreateTransaction(ctx, bare); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetTransaction(ctx, "tx-2")
	if got.CommissionAmount != nil || got.PendingAmount != nil || got.CommissionPaymentDate != nil {
		t.Fatalf("absent optionals came back present: %+v", got)
	}

	list, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "tx-2" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestSQLiteUpdateDeleteClear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	in := core.Transaction{
		ID: "tx-1", Date: core.NewDate(2024, 3, 1), Description: "d",
		Amount: decimal.NewFromInt(100), Type: core.TypeIncome,
		Category: core.CategorySales, Status: core.StatusPending,
	}
	if err := repo.CreateTransaction(ctx, in); err != nil {
		t.Fatal(err)
	}

	in.Status = core.StatusCompleted
	if err := repo.UpdateTransaction(ctx, in); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetTransaction(ctx, "tx-1")
	if got.Status != core.StatusCompleted {
		t.Fatalf("status not updated: %+v", got)
	}

	missing := in
	missing.ID = "ghost"
	if err := repo.UpdateTransaction(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing row: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete missing row: %v", err)
	}

	if err := repo.ClearTransactions(ctx); err != nil {
		t.Fatal(err)
	}
	list, _ := repo.ListTransactions(ctx)
	if len(list) != 0 {
		t.Fatalf("clear left %d rows", len(list))
	}
}

func TestSQLiteTaxSettings(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for i, name := range []string{"ISS", "PIS"} {
		s := core.TaxSetting{ID: name, Name: name, Percentage: decimal.NewFromInt(int64(i + 1))}
		if err := repo.CreateTaxSetting(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	settings, err := repo.ListTaxSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 || settings[0].Name != "ISS" {
		t.Fatalf("settings = %+v", settings)
	}
	if !settings[1].Percentage.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("percentage round trip: %+v", settings[1])
	}

	if err := repo.DeleteTaxSetting(ctx, "ISS"); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteTaxSetting(ctx, "ISS"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}
