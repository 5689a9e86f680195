// Package mysql implements the store ports on a remote MySQL table. It is the
// remote table-backed counterpart of the embedded SQLite backend and also
// serves as the mirror target for the replication worker.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"finnexus/internal/core"
	"finnexus/internal/store"
)

type Repository struct {
	db *sql.DB
}

var (
	_ store.TransactionStore = (*Repository)(nil)
	_ store.TaxSettingStore  = (*Repository)(nil)
)

// NewRepository opens a connection pool against the DSN and ensures the
// schema exists. The DSN must enable parseTime-free plain scanning; dates are
// stored as sortable CHAR(10) keys, never as timezone-bearing timestamps.
func NewRepository(dsn string) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(64) PRIMARY KEY,
			tx_date CHAR(10) NOT NULL,
			description VARCHAR(200) NOT NULL,
			amount DECIMAL(18,2) NOT NULL,
			tx_type VARCHAR(16) NOT NULL,
			category VARCHAR(32) NOT NULL,
			status VARCHAR(16) NOT NULL,
			employee_name VARCHAR(120) NULL,
			commission_rate DECIMAL(7,4) NULL,
			commission_amount DECIMAL(18,2) NULL,
			commission_payment_date CHAR(10) NULL,
			pending_amount DECIMAL(18,2) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_transactions_date (tx_date),
			INDEX idx_transactions_status (status)
		)`,
		`CREATE TABLE IF NOT EXISTS tax_settings (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			percentage DECIMAL(7,4) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const transactionColumns = `id, tx_date, description, amount, tx_type, category, status,
	employee_name, commission_rate, commission_amount, commission_payment_date, pending_amount`

func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY tx_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactions: rows iteration error: %w", err)
	}
	return out, nil
}

func (r *Repository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("GetTransaction: %w", err)
	}
	return t, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date.Key(), t.Description, t.Amount.String(), string(t.Type),
		string(t.Category), string(t.Status), nullString(t.EmployeeName),
		nullDecimal(t.CommissionRate), nullDecimal(t.CommissionAmount),
		nullDate(t.CommissionPaymentDate), nullDecimal(t.PendingAmount))
	if err != nil {
		return fmt.Errorf("CreateTransaction: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
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
		return fmt.Errorf("UpdateTransaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateTransaction: %w", err)
	}
	// MySQL reports 0 affected rows for no-op updates too; distinguish a
	// missing row explicitly.
	if n == 0 {
		if _, getErr := r.GetTransaction(ctx, t.ID); errors.Is(getErr, store.ErrNotFound) {
			return store.ErrNotFound
		}
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) ClearTransactions(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("ClearTransactions: %w", err)
	}
	return nil
}

func (r *Repository) ListTaxSettings(ctx context.Context) ([]core.TaxSetting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, percentage FROM tax_settings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("ListTaxSettings: %w", err)
	}
	defer rows.Close()

	var out []core.TaxSetting
	for rows.Next() {
		var s core.TaxSetting
		var pct string
		if err := rows.Scan(&s.ID, &s.Name, &pct); err != nil {
			return nil, fmt.Errorf("ListTaxSettings: %w", err)
		}
		if s.Percentage, err = decimal.NewFromString(pct); err != nil {
			return nil, fmt.Errorf("ListTaxSettings: parse percentage: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTaxSettings: rows iteration error: %w", err)
	}
	return out, nil
}

func (r *Repository) CreateTaxSetting(ctx context.Context, s core.TaxSetting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tax_settings (id, name, percentage) VALUES (?, ?, ?)`,
		s.ID, s.Name, s.Percentage.String())
	if err != nil {
		return fmt.Errorf("CreateTaxSetting: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTaxSetting(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tax_settings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteTaxSetting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTaxSetting: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

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
