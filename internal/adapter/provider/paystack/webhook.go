package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iho/gowallet/internal/domain"
)

// Webhook parsing errors.
var (
	ErrBadSignature   = errors.New("webhook signature mismatch")
	ErrUnknownEvent   = errors.New("unhandled webhook event")
	ErrMissingPayload = errors.New("webhook payload missing customer or amount")
)

type webhookEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		Amount   int64 `json:"amount"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
		Recipient struct {
			Email string `json:"email"`
		} `json:"recipient"`
	} `json:"data"`
}

// VerifySignature checks the x-paystack-signature header, an HMAC-SHA512 of
// the raw body keyed with the secret key.
func VerifySignature(secretKey string, body []byte, signature string) error {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}

	return nil
}

// ParseWebhook maps a raw Paystack event into a settlement signal. Amounts
// arrive in kobo.
func ParseWebhook(body []byte) (*domain.SettlementSignal, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}

	var event domain.SettlementEvent
	switch envelope.Event {
	case "charge.success":
		event = domain.EventDepositSucceeded
	case "charge.failed":
		event = domain.EventDepositFailed
	case "transfer.success":
		event = domain.EventWithdrawalSucceeded
	case "transfer.failed", "transfer.reversed":
		event = domain.EventWithdrawalFailed
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, envelope.Event)
	}

	email := envelope.Data.Customer.Email
	if email == "" {
		email = envelope.Data.Recipient.Email
	}

	if email == "" || envelope.Data.Amount <= 0 {
		return nil, ErrMissingPayload
	}

	return &domain.SettlementSignal{
		Event:  event,
		Email:  email,
		Amount: domain.FromMinorUnits(envelope.Data.Amount),
	}, nil
}
