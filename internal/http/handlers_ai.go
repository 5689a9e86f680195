package http

import (
	"net/http"
	"strings"

	"finnexus/internal/ai"
	"finnexus/internal/core"
)

// handleAIInsights returns the advisor's analysis of the requested period.
// Answers are cached per period so repeated dashboard loads do not burn model
// quota.
func (s *Server) handleAIInsights(w http.ResponseWriter, r *http.Request) {
	scope, ref, ok := s.parsePeriod(w, r)
	if !ok {
		return
	}

	cacheKey := string(scope) + ":" + ref.Key()
	if cached, found := s.insightsCache.Get(cacheKey); found {
		writeJSON(w, http.StatusOK, struct {
			Insights string `json:"insights"`
			Cached   bool   `json:"cached"`
		}{Insights: cached, Cached: true})
		return
	}

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

	view := core.FilterPeriods(txs, ref, scope)
	summary := core.Summarize(view.Current, taxRate, core.Today())

	recent := view.Current
	if len(recent) > 10 {
		recent = recent[:10]
	}

	insights := s.advisor.Insights(r.Context(), summary, recent)
	s.insightsCache.Set(cacheKey, insights)

	writeJSON(w, http.StatusOK, struct {
		Insights string `json:"insights"`
		Cached   bool   `json:"cached"`
	}{Insights: insights})
}

func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

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

	summary := core.Summarize(txs, taxRate, core.Today())
	answer := s.advisor.Chat(r.Context(), message, ai.BuildSummaryContext(summary))

	writeJSON(w, http.StatusOK, struct {
		Answer string `json:"answer"`
	}{Answer: answer})
}
