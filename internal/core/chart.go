package core

import "github.com/shopspring/decimal"

// ChartPoint is one day of the monthly trend chart.
type ChartPoint struct {
	Day     int
	Date    Date
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// BuildMonthlySeries produces one point per calendar day of the reference
// month, zero-filled for days without movement so the chart is contiguous.
//
// Only COMPLETED transactions count here. That is narrower than Summarize,
// which also counts PARTIAL income: the per-day chart shows settled cash
// movement while the KPI cards track recognized figures. The discrepancy is
// intentional and pinned by tests.
func BuildMonthlySeries(txs []Transaction, ref Date) []ChartPoint {
	days := ref.DaysInMonth()
	series := make([]ChartPoint, days)
	for i := range series {
		series[i] = ChartPoint{
			Day:     i + 1,
			Date:    NewDate(ref.Year, ref.Month, i+1),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: decimal.Zero,
		}
	}

	for _, t := range txs {
		if t.Status != StatusCompleted || !t.Date.SameMonth(ref) {
			continue
		}
		if t.Date.Day < 1 || t.Date.Day > days {
			continue
		}
		p := &series[t.Date.Day-1]
		switch t.Type {
		case TypeIncome:
			p.Income = p.Income.Add(t.Amount)
		case TypeExpense:
			p.Expense = p.Expense.Add(t.Amount)
		}
	}

	for i := range series {
		series[i].Balance = series[i].Income.Sub(series[i].Expense)
	}
	return series
}
