package core

const (
	ScopeMonth Scope = "month"
	ScopeDay   Scope = "day"
)

// Scope selects the aggregation window: a calendar month or a single day.
type Scope string

func (s Scope) IsValid() bool {
	return s == ScopeMonth || s == ScopeDay
}

// PeriodView is the three derived subsets every dashboard render works from.
type PeriodView struct {
	// Current holds the transactions inside the selected period.
	Current []Transaction
	// Previous holds the period immediately before it (one month or one day
	// back), used for trend deltas.
	Previous []Transaction
	// ChartContext always holds the full reference month, even in day scope,
	// so the monthly trend chart stays stable while drilling into a day.
	ChartContext []Transaction
}

// FilterPeriods splits the full transaction set around a reference date.
// Membership tests compare calendar components only.
func FilterPeriods(txs []Transaction, ref Date, scope Scope) PeriodView {
	var view PeriodView

	var prevRef Date
	if scope == ScopeDay {
		prevRef = ref.AddDays(-1)
	} else {
		prevRef = ref.AddMonths(-1)
	}

	for _, t := range txs {
		inCurrent := false
		inPrevious := false
		if scope == ScopeDay {
			inCurrent = t.Date.SameDay(ref)
			inPrevious = t.Date.SameDay(prevRef)
		} else {
			inCurrent = t.Date.SameMonth(ref)
			inPrevious = t.Date.SameMonth(prevRef)
		}
		if inCurrent {
			view.Current = append(view.Current, t)
		}
		if inPrevious {
			view.Previous = append(view.Previous, t)
		}
		if t.Date.SameMonth(ref) {
			view.ChartContext = append(view.ChartContext, t)
		}
	}
	return view
}
