// Package storage implements the store ports on an embedded SQLite database.
// This is the local backend: a single file, migrated on open.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"finnexus/internal/core"
	"finnexus/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ store.TransactionStore = (*SQLiteRepository)(nil)
	_ store.TaxSettingStore  = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, tx_date, description, amount, tx_type, category, status,
	employee_name, commission_rate, commission_amount, commission_payment_date, pending_amount`

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY tx_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transactionArgs(t)...)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET tx_date = ?, description = ?, amount = ?, tx_type = ?,
			category = ?, status = ?, employee_name = ?, commission_rate = ?,
			commission_amount = ?, commission_payment_date = ?, pending_amount = ?
		 WHERE id = ?`,
		t.Date.Key(), t.Description, t.Amount.String(), string(t.Type),
		string(t.Category), string(t.Status), nullString(t.EmployeeName),
		nullDecimal(t.CommissionRate), nullDecimal(t.CommissionAmount),
		nullDate(t.CommissionPaymentDate), nullDecimal(t.PendingAmount), t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, "update transaction")
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, "delete transaction")
}

func (r *SQLiteRepository) ClearTransactions(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListTaxSettings(ctx context.Context) ([]core.TaxSetting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, percentage FROM tax_settings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tax settings: %w", err)
	}
	defer rows.Close()

	var out []core.TaxSetting
	for rows.Next() {
		var s core.TaxSetting
		var pct string
		if err := rows.Scan(&s.ID, &s.Name, &pct); err != nil {
			return nil, fmt.Errorf("list tax settings: %w", err)
		}
		s.Percentage, err = decimal.NewFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("list tax settings: parse percentage: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tax settings: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateTaxSetting(ctx context.Context, s core.TaxSetting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tax_settings (id, name, percentage) VALUES (?, ?, ?)`,
		s.ID, s.Name, s.Percentage.String())
	if err != nil {
		return fmt.Errorf("create tax setting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTaxSetting(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tax_settings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tax setting: %w", err)
	}
	return requireRow(res, "delete tax setting")
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		t        core.Transaction
		dateKey  string
		amount   string
		txType   string
		category string
		status   string
		employee sql.NullString
		rate     sql.NullString
		comm     sql.NullString
		commDate sql.NullString
		pending  sql.NullString
	)
	err := s.Scan(&t.ID, &dateKey, &t.Description, &amount, &txType, &category,
		&status, &employee, &rate, &comm, &commDate, &pending)
	if err != nil {
		return core.Transaction{}, err
	}

	if t.Date, err = core.ParseDate(dateKey); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: bad date %q: %w", t.ID, dateKey, err)
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: bad amount %q: %w", t.ID, amount, err)
	}
	t.Type = core.TransactionType(txType)
	t.Category = core.Category(category)
	t.Status = core.TransactionStatus(status)
	t.EmployeeName = employee.String

	if t.CommissionRate, err = decimalPtr(rate); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: bad commission rate: %w", t.ID, err)
	}
	if t.CommissionAmount, err = decimalPtr(comm); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: bad commission amount: %w", t.ID, err)
	}
	if t.PendingAmount, err = decimalPtr(pending); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: bad pending amount: %w", t.ID, err)
	}
	if commDate.Valid {
		d, err := core.ParseDate(commDate.String)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("row %s: bad commission date: %w", t.ID, err)
		}
		t.CommissionPaymentDate = &d
	}
	return t, nil
}

func transactionArgs(t core.Transaction) []any {
	return []any{
		t.ID, t.Date.Key(), t.Description, t.Amount.String(), string(t.Type),
		string(t.Category), string(t.Status), nullString(t.EmployeeName),
		nullDecimal(t.CommissionRate), nullDecimal(t.CommissionAmount),
		nullDate(t.CommissionPaymentDate), nullDecimal(t.PendingAmount),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullDate(d *core.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Key(), Valid: true}
}

func decimalPtr(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
