package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/usecase"
)

// TransferHandler handles internal wallet-to-wallet transfers.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.transferUC.TransferFunds(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferReceiptResponse{
		Message: receipt.Message,
		Amount:  receipt.Amount,
	})
}
