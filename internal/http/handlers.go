package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finease/internal/services"
)

// storeUnavailableMessage is the only detail a store failure leaks.
const storeUnavailableMessage = "transaction store unavailable"

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := s.svc.List(r.Context(), strings.TrimSpace(q.Get("owner")), q.Get("sortBy"), q.Get("order"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Field("transactions", txs).
		Field("count", len(txs)).
		Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	fields, err := parseJSONBody(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	id, err := s.svc.Create(r.Context(), rawTransactionFromFields(fields))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", id,
		"owner", stringValue(fields["owner"]),
		"component", "transaction_handler",
		"operation", "create")

	NewJSONResponse().
		Status(http.StatusCreated).
		Field("id", id).
		Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, found, err := s.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		// Absence is a distinct result state, not a failure envelope.
		NewJSONResponse().Field("found", false).Write(w)
		return
	}
	NewJSONResponse().
		Field("found", true).
		Field("transaction", t).
		Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	fields, err := parseJSONBody(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	n, err := s.svc.Update(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().Field("modifiedCount", n).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().Field("deletedCount", n).Write(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.svc.Overview(r.Context(), strings.TrimSpace(r.URL.Query().Get("owner")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Field("totalIncome", o.TotalIncome).
		Field("totalExpense", o.TotalExpense).
		Field("balance", o.Balance).
		Write(w)
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.CategoryReport(r.Context(), strings.TrimSpace(r.URL.Query().Get("owner")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Field("totalIncome", rep.TotalIncome).
		Field("totalExpense", rep.TotalExpense).
		Field("netBalance", rep.NetBalance).
		Field("categoryData", rep.CategoryData).
		Write(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Field("status", "ok").Write(w)
}

// writeError maps service errors to the failure envelope. Validation errors
// are the caller's fault; everything else is a store failure and leaks no
// internal detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrMissingOwner), errors.Is(err, services.ErrInvalidID):
		BadRequestError(err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Ledger operation failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		InternalServerError(storeUnavailableMessage).Write(w)
	}
}
