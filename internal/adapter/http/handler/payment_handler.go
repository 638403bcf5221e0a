package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/provider/paystack"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// PaymentHandler handles deposits, withdrawals and provider webhooks.
type PaymentHandler struct {
	paymentUC    *usecase.PaymentUseCase
	settlementUC *usecase.SettlementUseCase
	webhookKey   string
	logger       zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	paymentUC *usecase.PaymentUseCase,
	settlementUC *usecase.SettlementUseCase,
	webhookKey string,
	logger zerolog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentUC:    paymentUC,
		settlementUC: settlementUC,
		webhookKey:   webhookKey,
		logger:       logger,
	}
}

// InitiateDeposit opens a provider checkout and records the pending credit.
func (h *PaymentHandler) InitiateDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	init, err := h.paymentUC.InitiateDeposit(r.Context(), req.Email, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initiate deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentInitResponse{
		Reference:        init.Reference,
		AuthorizationURL: init.AuthorizationURL,
	})
}

// InitiateWithdrawal starts a provider payout and records the pending debit.
func (h *PaymentHandler) InitiateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	init, err := h.paymentUC.InitiateWithdrawal(r.Context(), req.Email, req.Amount, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initiate withdrawal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentInitResponse{Reference: init.Reference})
}

// VerifyDeposit polls the provider for a deposit outcome and settles it.
func (h *PaymentHandler) VerifyDeposit(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.paymentUC.VerifyDeposit)
}

// VerifyWithdrawal polls the provider for a withdrawal outcome and settles it.
func (h *PaymentHandler) VerifyWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.paymentUC.VerifyWithdrawal)
}

func (h *PaymentHandler) verify(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, reference string) (*usecase.ProviderVerification, error)) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference", "")
		return
	}

	verification, err := fn(r.Context(), reference)
	if err != nil {
		writeError(w, mapDomainError(err), "verification failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VerificationResponse{
		Reference: reference,
		Succeeded: verification.Succeeded,
		Amount:    verification.Amount,
	})
}

// Webhook receives provider push notifications. Every acknowledged request
// answers 200; a non-2xx makes the provider redeliver, so only errors worth
// a retry escape with 5xx.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body", err.Error())
		return
	}

	signature := r.Header.Get("x-paystack-signature")
	if err := paystack.VerifySignature(h.webhookKey, body, signature); err != nil {
		writeError(w, http.StatusUnauthorized, "bad signature", "")
		return
	}

	signal, err := paystack.ParseWebhook(body)
	if err != nil {
		// Unknown events are acknowledged so the provider stops retrying.
		if errors.Is(err, paystack.ErrUnknownEvent) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "event ignored"})
			return
		}

		writeError(w, http.StatusBadRequest, "invalid webhook payload", err.Error())
		return
	}

	if err := h.settlementUC.ApplySettlement(r.Context(), *signal); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingTransaction):
			// Duplicate delivery: the transaction already settled.
			writeJSON(w, http.StatusOK, map[string]string{"message": "already processed"})
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrAccountNotFound):
			h.logger.Warn().Str("event", string(signal.Event)).Str("email", signal.Email).Msg("settlement signal for unknown identity")
			writeJSON(w, http.StatusOK, map[string]string{"message": "no matching account"})
		default:
			writeError(w, http.StatusInternalServerError, "settlement failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "settled"})
}
