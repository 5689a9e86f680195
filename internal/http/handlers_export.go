package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finnexus/internal/core"
	"finnexus/internal/export"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filename := fmt.Sprintf("transacoes_%s.csv", time.Now().Format("02-01-2006"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, txs); err != nil {
		// Headers and a 200 are already out, so no error body.
		slog.ErrorContext(r.Context(), "CSV export failed mid-stream", "error", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	taxRate, err := s.taxes.EffectiveRate(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report := export.PDFReport{
		CompanyName:  s.companyName,
		GeneratedAt:  time.Now(),
		Summary:      core.Summarize(txs, taxRate, core.Today()),
		TaxRate:      taxRate,
		Transactions: txs,
	}

	filename := fmt.Sprintf("relatorio_%s.pdf", time.Now().Format("02-01-2006"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WritePDF(w, report); err != nil {
		slog.ErrorContext(r.Context(), "PDF export failed mid-stream", "error", err)
	}
}
