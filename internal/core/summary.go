package core

import "github.com/shopspring/decimal"

// FinancialSummary is the derived KPI set for one period. It is recomputed on
// every read and never persisted.
type FinancialSummary struct {
	TotalIncome          decimal.Decimal
	OperationalExpense   decimal.Decimal
	TotalExpense         decimal.Decimal
	Commissions          decimal.Decimal
	PendingCommissions   decimal.Decimal
	GrossProfit          decimal.Decimal
	TaxLiabilityEstimate decimal.Decimal
	NetProfit            decimal.Decimal
	PendingInvoices      decimal.Decimal
}

// Summarize reduces a transaction subset to a FinancialSummary.
//
// Income counts COMPLETED and PARTIAL rows; operational expense counts
// COMPLETED only. Commissions on PARTIAL rows are prorated by the fraction of
// the amount actually collected. A commission whose payment date is strictly
// after today counts as pending.
//
// Tax base: the estimate is rate x gross profit when positive, never rate x
// gross income. The product owner confirmed the profit base; it is applied
// identically by the dashboard, both exports and the advisor context.
func Summarize(txs []Transaction, taxRate decimal.Decimal, today Date) FinancialSummary {
	var s FinancialSummary
	todayKey := today.Key()

	for _, t := range txs {
		settled := t.Status == StatusCompleted || t.Status == StatusPartial

		if t.Type == TypeIncome && settled {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		}
		if t.Type == TypeExpense && t.Status == StatusCompleted {
			s.OperationalExpense = s.OperationalExpense.Add(t.Amount)
		}
		if t.Type == TypeIncome && t.Status == StatusPending {
			s.PendingInvoices = s.PendingInvoices.Add(t.Amount)
		}

		if t.CommissionAmount != nil {
			if settled {
				s.Commissions = s.Commissions.Add(proratedCommission(t))
			}
			if t.CommissionPaymentDate != nil && t.CommissionPaymentDate.Key() > todayKey {
				s.PendingCommissions = s.PendingCommissions.Add(*t.CommissionAmount)
			}
		}
	}

	s.TotalExpense = s.OperationalExpense.Add(s.Commissions)
	s.GrossProfit = s.TotalIncome.Sub(s.OperationalExpense).Sub(s.Commissions)
	if s.GrossProfit.IsPositive() {
		s.TaxLiabilityEstimate = s.GrossProfit.Mul(taxRate)
	} else {
		s.TaxLiabilityEstimate = decimal.Zero
	}
	s.NetProfit = s.GrossProfit.Sub(s.TaxLiabilityEstimate)
	return s
}

// proratedCommission scales a PARTIAL row's commission by the collected
// fraction (amount - pending) / amount. Rows outside the proration window,
// and the amount = 0 edge, keep the full commission.
func proratedCommission(t Transaction) decimal.Decimal {
	c := *t.CommissionAmount
	if t.Status != StatusPartial || t.PendingAmount == nil {
		return c
	}
	pending := *t.PendingAmount
	if !pending.IsPositive() || !pending.LessThan(t.Amount) || t.Amount.IsZero() {
		return c
	}
	collected := t.Amount.Sub(pending)
	return c.Mul(collected).Div(t.Amount)
}
