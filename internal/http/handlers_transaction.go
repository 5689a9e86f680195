package http

import (
	"net/http"

	"finnexus/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := req.toTransaction()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.insightsCache.Purge()
	s.structured.LogTransactionCreated(r.Context(), created.ID, created.Description, string(created.Type), string(created.Status))
	writeJSON(w, http.StatusCreated, toTransactionDTO(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	updated, err := s.transactions.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.insightsCache.Purge()
	writeJSON(w, http.StatusOK, toTransactionDTO(updated))
}

func (s *Server) handleSetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.transactions.SetStatus(r.Context(), r.PathValue("id"), core.TransactionStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.insightsCache.Purge()
	writeJSON(w, http.StatusOK, toTransactionDTO(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.insightsCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Clear(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.insightsCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
