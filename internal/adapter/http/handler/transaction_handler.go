package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/usecase"
)

// TransactionHandler handles transaction queries.
type TransactionHandler struct {
	txnUC *usecase.TransactionUseCase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC}
}

// List lists transactions newest-first with optional filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filterReq := dto.TransactionFilterRequest{
		AccountID: r.URL.Query().Get("account_id"),
		Type:      r.URL.Query().Get("type"),
		Status:    r.URL.Query().Get("status"),
		Source:    r.URL.Query().Get("source"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	page, err := h.txnUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Filter: filterReq.ToDomainFilter(),
		Page:   parseIntQuery(r, "page", 1),
		Size:   parseIntQuery(r, "size", 10),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionPageFromUseCase(page))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.txnUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByAccount lists transactions where the account appears on either side.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	page, err := h.txnUC.ListByAccount(r.Context(), accountID,
		parseIntQuery(r, "page", 1),
		parseIntQuery(r, "size", 10),
	)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionPageFromUseCase(page))
}

// Delete soft-deletes a transaction record.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.txnUC.DeleteTransaction(r.Context(), id, actor); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

// Consistency runs the ledger-wide conservation check. Admin only.
func (h *TransactionHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	result, err := h.txnUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		TotalDebits:  result.TotalDebits,
		TotalCredits: result.TotalCredits,
		Consistent:   result.Consistent,
	})
}
