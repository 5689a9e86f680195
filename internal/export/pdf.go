package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"finnexus/internal/core"
)

// PDFReport carries everything the executive report renders: the company
// banner, the summary figures and the full transaction listing.
type PDFReport struct {
	CompanyName  string
	GeneratedAt  time.Time
	Summary      core.FinancialSummary
	TaxRate      decimal.Decimal
	Transactions []core.Transaction
}

type summaryCard struct {
	title string
	value string
	fill  [3]int
	tone  [3]int
}

type pdfRenderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders the executive report: a banner, the summary cards and a
// detail table, with a numbered footer on every page.
func WritePDF(w io.Writer, report PDFReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)

	// Core fonts are cp1252; the translator keeps the Portuguese accents.
	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	footer := fmt.Sprintf(" - %s System", report.CompanyName)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, r.tr(fmt.Sprintf("Página %d%s", pdf.PageNo(), footer)), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.drawBanner(report)
	r.drawSummaryCards(report)
	r.drawTransactionTable(report.Transactions)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (r *pdfRenderer) drawBanner(report PDFReport) {
	pdf := r.pdf
	pdf.SetFillColor(49, 46, 129)
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(14, 20, r.tr(report.CompanyName))

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(14, 28, r.tr("Controle & Auditoria"))

	pdf.SetFont("Helvetica", "", 10)
	generated := fmt.Sprintf("Gerado em: %s", report.GeneratedAt.Format("02/01/2006 15:04"))
	pdf.Text(195-pdf.GetStringWidth(generated), 20, generated)
	requested := "Solicitado por: Admin"
	pdf.Text(195-pdf.GetStringWidth(requested), 28, requested)
}

func (r *pdfRenderer) drawSummaryCards(report PDFReport) {
	pdf := r.pdf
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(14, 55, "Resumo Executivo")

	s := report.Summary
	topRow := []summaryCard{
		{"Receita Total", core.FormatCurrency(s.TotalIncome), [3]int{240, 253, 244}, [3]int{22, 163, 74}},
		{"Despesa Operac.", core.FormatCurrency(s.OperationalExpense), [3]int{255, 241, 242}, [3]int{225, 29, 72}},
		{"Comissões", core.FormatCurrency(s.Commissions), [3]int{254, 243, 232}, [3]int{234, 88, 12}},
		{"Resultado Bruto", core.FormatCurrency(s.GrossProfit), [3]int{238, 242, 255}, [3]int{79, 70, 229}},
	}

	const startY = 60.0
	x := 14.0
	for _, card := range topRow {
		r.drawCard(card, x, startY, 45)
		x += 47
	}

	ratePct := report.TaxRate.Mul(decimal.NewFromInt(100))
	secondRowY := startY + 32
	r.drawCard(summaryCard{
		title: fmt.Sprintf("Impostos Estimados (%s%%)", ratePct.StringFixed(1)),
		value: core.FormatCurrency(s.TaxLiabilityEstimate),
		fill:  [3]int{254, 249, 195},
		tone:  [3]int{161, 98, 7},
	}, 14, secondRowY, 92)
	r.drawCard(summaryCard{
		title: "Resultado Líquido (Real)",
		value: core.FormatCurrency(s.NetProfit),
		fill:  [3]int{236, 253, 245},
		tone:  [3]int{5, 150, 105},
	}, 111, secondRowY, 85)
}

func (r *pdfRenderer) drawCard(card summaryCard, x, y, width float64) {
	pdf := r.pdf
	pdf.SetFillColor(card.fill[0], card.fill[1], card.fill[2])
	pdf.SetDrawColor(card.tone[0], card.tone[1], card.tone[2])
	pdf.RoundedRect(x, y, width, 25, 3, "1234", "FD")

	pdf.SetTextColor(card.tone[0], card.tone[1], card.tone[2])
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(x+3, y+8, r.tr(card.title))
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(x+3, y+18, r.tr(card.value))
}

func (r *pdfRenderer) drawTransactionTable(transactions []core.Transaction) {
	pdf := r.pdf
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(14, 132, r.tr("Detalhamento de Transações"))
	pdf.SetY(137)

	headers := []string{"Data", "Descrição", "Categoria", "Valor", "Pendente", "Status", "Funcionário", "Comissão", "Pgto Comis."}
	widths := []float64{18, 38, 22, 20, 20, 20, 22, 20, 18}

	pdf.SetFont("Helvetica", "B", 6.5)
	pdf.SetFillColor(49, 46, 129)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(14)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, r.tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 6.5)
	pdf.SetTextColor(40, 40, 40)
	for i, t := range transactions {
		fill := i%2 == 1
		pdf.SetFillColor(249, 250, 251)

		row := []string{
			formatDate(t.Date),
			t.Description,
			string(t.Category),
			core.FormatCurrency(t.Amount),
			pendingPDFCell(t),
			string(t.Status),
			employeeCell(t),
			commissionPDFCell(t),
			commissionDateCell(t),
		}
		aligns := []string{"L", "L", "L", "R", "R", "L", "L", "R", "L"}

		pdf.SetX(14)
		for j, cell := range row {
			pdf.CellFormat(widths[j], 5, r.tr(cell), "1", 0, aligns[j], fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func pendingPDFCell(t core.Transaction) string {
	if t.PendingAmount == nil {
		return core.FormatCurrency(decimal.Zero)
	}
	return core.FormatCurrency(*t.PendingAmount)
}

func commissionPDFCell(t core.Transaction) string {
	if c := t.ResolvedCommission(); c != nil {
		return core.FormatCurrency(*c)
	}
	return "-"
}
