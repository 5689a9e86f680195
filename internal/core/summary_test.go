package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

var testToday = NewDate(2024, 3, 20)

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil, defaultTaxRate, testToday)
	for name, v := range map[string]decimal.Decimal{
		"TotalIncome":          s.TotalIncome,
		"OperationalExpense":   s.OperationalExpense,
		"TotalExpense":         s.TotalExpense,
		"Commissions":          s.Commissions,
		"PendingCommissions":   s.PendingCommissions,
		"GrossProfit":          s.GrossProfit,
		"TaxLiabilityEstimate": s.TaxLiabilityEstimate,
		"NetProfit":            s.NetProfit,
		"PendingInvoices":      s.PendingInvoices,
	} {
		if !v.IsZero() {
			t.Fatalf("%s = %v on empty input, want 0", name, v)
		}
	}
}

func TestSummarizeEndToEndScenario(t *testing.T) {
	d := NewDate(2024, 3, 10)
	txs := []Transaction{
		{Date: d, Description: "sale", Amount: dec("1000"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted},
		{Date: d, Description: "rent", Amount: dec("300"), Type: TypeExpense, Category: CategoryOperations, Status: StatusCompleted},
		{Date: d, Description: "invoice", Amount: dec("500"), Type: TypeIncome, Category: CategorySales, Status: StatusPending},
	}

	s := Summarize(txs, EffectiveTaxRate(nil), testToday)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"TotalIncome", s.TotalIncome, "1000"},
		{"TotalExpense", s.TotalExpense, "300"},
		{"GrossProfit", s.GrossProfit, "700"},
		{"TaxLiabilityEstimate", s.TaxLiabilityEstimate, "105"},
		{"NetProfit", s.NetProfit, "595"},
		{"PendingInvoices", s.PendingInvoices, "500"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Fatalf("%s = %v, want %s", c.name, c.got, c.want)
		}
	}
}

func TestSummarizeCommissionProration(t *testing.T) {
	tx := Transaction{
		Date:             NewDate(2024, 3, 5),
		Description:      "partial service",
		Amount:           dec("1000"),
		Type:             TypeIncome,
		Category:         CategoryServices,
		Status:           StatusPartial,
		EmployeeName:     "Ana",
		CommissionAmount: decp("100"),
		PendingAmount:    decp("400"),
	}

	s := Summarize([]Transaction{tx}, defaultTaxRate, testToday)
	if !s.Commissions.Equal(dec("60")) {
		t.Fatalf("prorated commission = %v, want 60", s.Commissions)
	}
	// PARTIAL income still counts in full.
	if !s.TotalIncome.Equal(dec("1000")) {
		t.Fatalf("TotalIncome = %v, want 1000", s.TotalIncome)
	}
	// Reported expense folds the commission in.
	if !s.TotalExpense.Equal(dec("60")) {
		t.Fatalf("TotalExpense = %v, want 60", s.TotalExpense)
	}
}

func TestSummarizeProrationGuards(t *testing.T) {
	base := Transaction{
		Date:             NewDate(2024, 3, 5),
		Description:      "edge",
		Type:             TypeIncome,
		Category:         CategoryServices,
		CommissionAmount: decp("100"),
	}

	// amount = 0: full commission, no division.
	zero := base
	zero.Amount = decimal.Zero
	zero.Status = StatusPartial
	zero.PendingAmount = decp("0")
	if s := Summarize([]Transaction{zero}, defaultTaxRate, testToday); !s.Commissions.Equal(dec("100")) {
		t.Fatalf("amount=0 commission = %v, want full 100", s.Commissions)
	}

	// pending = amount: nothing collected yet, still full commission.
	full := base
	full.Amount = dec("500")
	full.Status = StatusPartial
	full.PendingAmount = decp("500")
	if s := Summarize([]Transaction{full}, defaultTaxRate, testToday); !s.Commissions.Equal(dec("100")) {
		t.Fatalf("pending=amount commission = %v, want full 100", s.Commissions)
	}

	// COMPLETED row ignores pendingAmount entirely.
	done := base
	done.Amount = dec("500")
	done.Status = StatusCompleted
	if s := Summarize([]Transaction{done}, defaultTaxRate, testToday); !s.Commissions.Equal(dec("100")) {
		t.Fatalf("completed commission = %v, want 100", s.Commissions)
	}
}

func TestSummarizePendingCommissions(t *testing.T) {
	future := NewDate(2024, 4, 1)
	past := NewDate(2024, 3, 1)
	txs := []Transaction{
		{Date: NewDate(2024, 3, 2), Description: "a", Amount: dec("100"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted, CommissionAmount: decp("10"), CommissionPaymentDate: &future},
		{Date: NewDate(2024, 3, 3), Description: "b", Amount: dec("100"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted, CommissionAmount: decp("7"), CommissionPaymentDate: &past},
		{Date: NewDate(2024, 3, 4), Description: "c", Amount: dec("100"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted, CommissionAmount: decp("5"), CommissionPaymentDate: &testToday},
	}
	s := Summarize(txs, defaultTaxRate, testToday)
	// Strictly after today: only the April date qualifies.
	if !s.PendingCommissions.Equal(dec("10")) {
		t.Fatalf("PendingCommissions = %v, want 10", s.PendingCommissions)
	}
}

func TestSummarizeNoTaxOnLoss(t *testing.T) {
	txs := []Transaction{
		{Date: NewDate(2024, 3, 1), Description: "sale", Amount: dec("100"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted},
		{Date: NewDate(2024, 3, 2), Description: "rent", Amount: dec("400"), Type: TypeExpense, Category: CategoryOperations, Status: StatusCompleted},
	}
	s := Summarize(txs, defaultTaxRate, testToday)
	if !s.TaxLiabilityEstimate.IsZero() {
		t.Fatalf("tax on a loss = %v, want 0", s.TaxLiabilityEstimate)
	}
	if !s.NetProfit.Equal(dec("-300")) {
		t.Fatalf("NetProfit = %v, want -300", s.NetProfit)
	}
}

func TestSummarizeNonNegativeTotals(t *testing.T) {
	lists := [][]Transaction{
		nil,
		{{Date: NewDate(2024, 1, 1), Description: "x", Amount: dec("5"), Type: TypeExpense, Category: CategoryOther, Status: StatusFailed}},
		{{Date: NewDate(2024, 1, 1), Description: "y", Amount: dec("5"), Type: TypeIncome, Category: CategoryOther, Status: StatusCompleted}},
	}
	for i, txs := range lists {
		s := Summarize(txs, defaultTaxRate, testToday)
		if s.TotalIncome.IsNegative() || s.TotalExpense.IsNegative() {
			t.Fatalf("case %d: negative totals %v / %v", i, s.TotalIncome, s.TotalExpense)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	txs := []Transaction{
		{Date: NewDate(2024, 3, 10), Description: "sale", Amount: dec("1000"), Type: TypeIncome, Category: CategorySales, Status: StatusCompleted, CommissionAmount: decp("50")},
		{Date: NewDate(2024, 3, 11), Description: "ads", Amount: dec("200"), Type: TypeExpense, Category: CategoryMarketing, Status: StatusCompleted},
	}
	first := Summarize(txs, defaultTaxRate, testToday)
	second := Summarize(txs, defaultTaxRate, testToday)
	if !first.NetProfit.Equal(second.NetProfit) || !first.TotalExpense.Equal(second.TotalExpense) ||
		!first.Commissions.Equal(second.Commissions) || !first.TaxLiabilityEstimate.Equal(second.TaxLiabilityEstimate) {
		t.Fatalf("Summarize is not idempotent: %+v vs %+v", first, second)
	}
}

// FAILED rows never count anywhere; this pins the status filter difference
// against the chart series (see chart_test.go).
func TestSummarizeIgnoresFailed(t *testing.T) {
	txs := []Transaction{
		{Date: NewDate(2024, 3, 1), Description: "void", Amount: dec("999"), Type: TypeIncome, Category: CategorySales, Status: StatusFailed, CommissionAmount: decp("99")},
	}
	s := Summarize(txs, defaultTaxRate, testToday)
	if !s.TotalIncome.IsZero() || !s.Commissions.IsZero() {
		t.Fatalf("FAILED row leaked into summary: %+v", s)
	}
}
