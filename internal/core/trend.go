package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trend is a period-over-period delta for one KPI. IsUp is the raw direction
// (current >= previous); for expense-like metrics the caller decides that
// down is the good direction, the engine never bakes the inversion in.
type Trend struct {
	Percent string
	IsUp    bool
}

// ComputeTrend compares a current-period scalar against the previous period.
// A zero previous value yields "+100%" for any growth and "0%" otherwise;
// everything else is a one-decimal percentage with an explicit sign for
// nonnegative changes.
func ComputeTrend(current, previous decimal.Decimal) Trend {
	t := Trend{IsUp: current.GreaterThanOrEqual(previous)}
	if previous.IsZero() {
		if current.IsPositive() {
			t.Percent = "+100%"
		} else {
			t.Percent = "0%"
		}
		return t
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	t.Percent = fmt.Sprintf("%+.1f%%", pct)
	return t
}
