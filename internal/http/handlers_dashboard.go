package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"finnexus/internal/core"
)

type trendDTO struct {
	Percent string `json:"percent"`
	IsUp    bool   `json:"isUp"`
}

type chartPointDTO struct {
	Day     int             `json:"day"`
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type summaryDTO struct {
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	OperationalExpense   decimal.Decimal `json:"operationalExpense"`
	TotalExpense         decimal.Decimal `json:"totalExpense"`
	Commissions          decimal.Decimal `json:"commissions"`
	PendingCommissions   decimal.Decimal `json:"pendingCommissions"`
	GrossProfit          decimal.Decimal `json:"grossProfit"`
	TaxLiabilityEstimate decimal.Decimal `json:"taxLiabilityEstimate"`
	NetProfit            decimal.Decimal `json:"netProfit"`
	PendingInvoices      decimal.Decimal `json:"pendingInvoices"`
}

type dashboardResponse struct {
	Scope    string          `json:"scope"`
	Date     string          `json:"date"`
	Summary  summaryDTO      `json:"summary"`
	Previous summaryDTO      `json:"previous"`
	Trends   map[string]trendDTO `json:"trends"`
	Chart    []chartPointDTO `json:"chart"`
	TaxRate  decimal.Decimal `json:"taxRate"`
}

func toSummaryDTO(s core.FinancialSummary) summaryDTO {
	return summaryDTO{
		TotalIncome:          s.TotalIncome,
		OperationalExpense:   s.OperationalExpense,
		TotalExpense:         s.TotalExpense,
		Commissions:          s.Commissions,
		PendingCommissions:   s.PendingCommissions,
		GrossProfit:          s.GrossProfit,
		TaxLiabilityEstimate: s.TaxLiabilityEstimate,
		NetProfit:            s.NetProfit,
		PendingInvoices:      s.PendingInvoices,
	}
}

// handleDashboard computes the aggregated view for a period. Store failures
// degrade to an empty dataset so the dashboard always renders.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	scope, ref, ok := s.parsePeriod(w, r)
	if !ok {
		return
	}

	txs, err := s.transactions.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing transactions failed, rendering empty dashboard", "error", err)
		txs = nil
	}

	taxRate, err := s.taxes.EffectiveRate(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Resolving tax rate failed, using default", "error", err)
		taxRate = core.EffectiveTaxRate(nil)
	}

	writeJSON(w, http.StatusOK, s.buildDashboard(txs, taxRate, scope, ref))
}

func (s *Server) buildDashboard(txs []core.Transaction, taxRate decimal.Decimal, scope core.Scope, ref core.Date) dashboardResponse {
	view := core.FilterPeriods(txs, ref, scope)
	today := core.Today()

	current := core.Summarize(view.Current, taxRate, today)
	previous := core.Summarize(view.Previous, taxRate, today)

	chart := core.BuildMonthlySeries(view.ChartContext, ref)
	chartDTO := make([]chartPointDTO, 0, len(chart))
	for _, p := range chart {
		chartDTO = append(chartDTO, chartPointDTO{
			Day:     p.Day,
			Date:    p.Date.Key(),
			Income:  p.Income,
			Expense: p.Expense,
			Balance: p.Balance,
		})
	}

	return dashboardResponse{
		Scope:    string(scope),
		Date:     ref.Key(),
		Summary:  toSummaryDTO(current),
		Previous: toSummaryDTO(previous),
		Trends: map[string]trendDTO{
			"income":  toTrendDTO(core.ComputeTrend(current.TotalIncome, previous.TotalIncome)),
			"expense": toTrendDTO(core.ComputeTrend(current.TotalExpense, previous.TotalExpense)),
			"profit":  toTrendDTO(core.ComputeTrend(current.NetProfit, previous.NetProfit)),
		},
		Chart:   chartDTO,
		TaxRate: taxRate,
	}
}

func toTrendDTO(t core.Trend) trendDTO {
	return trendDTO{Percent: t.Percent, IsUp: t.IsUp}
}

// parsePeriod reads the scope and date query parameters, defaulting to the
// current month.
func (s *Server) parsePeriod(w http.ResponseWriter, r *http.Request) (core.Scope, core.Date, bool) {
	scope := core.ScopeMonth
	if v := r.URL.Query().Get("scope"); v != "" {
		scope = core.Scope(v)
		if !scope.IsValid() {
			writeError(w, http.StatusBadRequest, "scope must be 'month' or 'day'")
			return "", core.Date{}, false
		}
	}

	ref := core.Today()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return "", core.Date{}, false
		}
		ref = parsed
	}
	return scope, ref, true
}
