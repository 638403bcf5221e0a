package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transactions?page=5", nil)
	if got := parseIntQuery(req, "page", 1); got != 5 {
		t.Fatalf("expected page=5, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions?page=invalid", nil)
	if got := parseIntQuery(req, "page", 1); got != 1 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "size", 10); got != 10 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"sender not found", domain.ErrSenderAccountNotFound, http.StatusNotFound},
		{"receiver not found", domain.ErrReceiverAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"amount precision", domain.ErrAmountPrecision, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"status already final", domain.ErrStatusAlreadyFinal, http.StatusConflict},
		{"blacklisted", domain.ErrBlacklisted, http.StatusForbidden},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped error", errors.Join(errors.New("ctx"), domain.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("unexpected error payload: %+v", resp)
	}
}
