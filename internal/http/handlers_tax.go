package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"finnexus/internal/core"
)

func (s *Server) handleListTaxSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.taxes.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	dtos := make([]taxSettingDTO, 0, len(settings))
	for _, ts := range settings {
		dtos = append(dtos, toTaxSettingDTO(ts))
	}

	rate, err := s.taxes.EffectiveRate(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Settings      []taxSettingDTO `json:"settings"`
		EffectiveRate decimal.Decimal `json:"effectiveRate"`
	}{Settings: dtos, EffectiveRate: rate})
}

func (s *Server) handleCreateTaxSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string          `json:"name"`
		Percentage decimal.Decimal `json:"percentage"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.taxes.Create(r.Context(), core.TaxSetting{
		Name:       sanitizeInput(req.Name),
		Percentage: req.Percentage,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaxSettingDTO(created))
}

func (s *Server) handleDeleteTaxSetting(w http.ResponseWriter, r *http.Request) {
	if err := s.taxes.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
