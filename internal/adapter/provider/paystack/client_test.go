package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/domain"
)

func TestInitializeDepositSendsKobo(t *testing.T) {
	var got initializeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"status":true,"data":{"authorization_url":"https://checkout.test/abc","reference":"ref-123"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test", server.URL)

	init, err := client.InitializeDeposit(context.Background(), "a@b.com", decimal.NewFromFloat(250.50))
	require.NoError(t, err)

	assert.Equal(t, int64(25050), got.Amount)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "ref-123", init.Reference)
	assert.Equal(t, "https://checkout.test/abc", init.AuthorizationURL)
}

func TestInitializeDepositRejectsSubMinorAmounts(t *testing.T) {
	client := NewClientWithBaseURL("sk_test", "http://unused.test")

	_, err := client.InitializeDeposit(context.Background(), "a@b.com", decimal.NewFromFloat(10.005))
	assert.ErrorIs(t, err, domain.ErrAmountPrecision)
}

func TestVerifyDepositMapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/ref-9", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{"status":"success","amount":100000,"customer":{"email":"a@b.com"}}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test", server.URL)

	v, err := client.VerifyDeposit(context.Background(), "ref-9")
	require.NoError(t, err)

	assert.True(t, v.Succeeded)
	assert.Equal(t, "a@b.com", v.Email)
	assert.True(t, v.Amount.Equal(decimal.NewFromInt(1000)), "expected 1000, got %s", v.Amount)
}

func TestVerifyDepositFailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"data":{"status":"failed","amount":5000,"customer":{"email":"a@b.com"}}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test", server.URL)

	v, err := client.VerifyDeposit(context.Background(), "ref-10")
	require.NoError(t, err)
	assert.False(t, v.Succeeded)
}

func TestRejectedEnvelopeReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_bad", server.URL)

	_, err := client.VerifyDeposit(context.Background(), "ref-11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte("sk_test"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, VerifySignature("sk_test", body, signature))
	assert.ErrorIs(t, VerifySignature("sk_other", body, signature), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature("sk_test", body, "deadbeef"), ErrBadSignature)
}

func TestParseWebhook(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantEvent domain.SettlementEvent
		wantEmail string
		wantErr   error
	}{
		{
			name:      "charge success",
			body:      `{"event":"charge.success","data":{"amount":50000,"customer":{"email":"a@b.com"}}}`,
			wantEvent: domain.EventDepositSucceeded,
			wantEmail: "a@b.com",
		},
		{
			name:      "transfer success uses recipient",
			body:      `{"event":"transfer.success","data":{"amount":20000,"recipient":{"email":"c@d.com"}}}`,
			wantEvent: domain.EventWithdrawalSucceeded,
			wantEmail: "c@d.com",
		},
		{
			name:      "transfer reversed maps to withdrawal failed",
			body:      `{"event":"transfer.reversed","data":{"amount":20000,"recipient":{"email":"c@d.com"}}}`,
			wantEvent: domain.EventWithdrawalFailed,
			wantEmail: "c@d.com",
		},
		{
			name:    "unknown event",
			body:    `{"event":"subscription.create","data":{"amount":100,"customer":{"email":"a@b.com"}}}`,
			wantErr: ErrUnknownEvent,
		},
		{
			name:    "missing email",
			body:    `{"event":"charge.success","data":{"amount":100}}`,
			wantErr: ErrMissingPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, err := ParseWebhook([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantEvent, signal.Event)
			assert.Equal(t, tt.wantEmail, signal.Email)
		})
	}
}
