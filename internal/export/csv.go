// Package export renders transaction reports as CSV and PDF documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"finnexus/internal/core"
)

var csvHeader = []string{
	"ID", "Data", "Descrição", "Categoria", "Tipo", "Valor", "Status",
	"Pendente", "Funcionário", "Comissão", "Pgto Comissão",
}

// WriteCSV renders the transactions as a semicolon-delimited CSV report.
// Spreadsheet locales using comma decimals require the semicolon delimiter.
func WriteCSV(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.ID,
			formatDate(t.Date),
			t.Description,
			string(t.Category),
			string(t.Type),
			core.FormatAmount(t.Amount),
			string(t.Status),
			pendingCell(t),
			employeeCell(t),
			commissionCell(t),
			commissionDateCell(t),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(d core.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

func pendingCell(t core.Transaction) string {
	if t.PendingAmount == nil {
		return core.FormatAmount(decimal.Zero)
	}
	return core.FormatAmount(*t.PendingAmount)
}

func employeeCell(t core.Transaction) string {
	if t.EmployeeName == "" {
		return "-"
	}
	return t.EmployeeName
}

func commissionCell(t core.Transaction) string {
	if c := t.ResolvedCommission(); c != nil {
		return core.FormatAmount(*c)
	}
	return "-"
}

func commissionDateCell(t core.Transaction) string {
	if t.CommissionPaymentDate == nil {
		return "-"
	}
	return formatDate(*t.CommissionPaymentDate)
}
