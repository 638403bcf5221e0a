package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const defaultBaseURL = "https://api.paystack.co"

// Client implements usecase.PaymentProvider against the Paystack API.
// Amounts cross the wire in kobo, the currency's minor unit.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a new Paystack client.
func NewClient(secretKey string) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client pointed at a custom API base, used
// by tests.
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = baseURL
	return c
}

type initializeRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

type transferRequest struct {
	Source string `json:"source"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type transferData struct {
	Reference string `json:"reference"`
}

type verifyData struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// InitializeDeposit opens a checkout session for a card deposit.
func (c *Client) InitializeDeposit(ctx context.Context, email string, amount decimal.Decimal) (*usecase.ProviderInit, error) {
	kobo, err := domain.ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, "/transaction/initialize", initializeRequest{
		Email:  email,
		Amount: kobo,
	})
	if err != nil {
		return nil, err
	}

	var init initializeData
	if err := json.Unmarshal(data, &init); err != nil {
		return nil, fmt.Errorf("decode initialize response: %w", err)
	}

	return &usecase.ProviderInit{
		Reference:        init.Reference,
		AuthorizationURL: init.AuthorizationURL,
	}, nil
}

// InitiateWithdrawal asks the provider to pay out from the platform balance.
func (c *Client) InitiateWithdrawal(ctx context.Context, email string, amount decimal.Decimal, reason string) (*usecase.ProviderInit, error) {
	kobo, err := domain.ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, "/transfer", transferRequest{
		Source: "balance",
		Amount: kobo,
		Reason: reason,
	})
	if err != nil {
		return nil, err
	}

	var transfer transferData
	if err := json.Unmarshal(data, &transfer); err != nil {
		return nil, fmt.Errorf("decode transfer response: %w", err)
	}

	return &usecase.ProviderInit{Reference: transfer.Reference}, nil
}

// VerifyDeposit polls a deposit's final state by reference.
func (c *Client) VerifyDeposit(ctx context.Context, reference string) (*usecase.ProviderVerification, error) {
	return c.verify(ctx, "/transaction/verify/"+reference)
}

// VerifyWithdrawal polls a withdrawal's final state by reference.
func (c *Client) VerifyWithdrawal(ctx context.Context, reference string) (*usecase.ProviderVerification, error) {
	return c.verify(ctx, "/transfer/verify/"+reference)
}

func (c *Client) verify(ctx context.Context, path string) (*usecase.ProviderVerification, error) {
	data, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var v verifyData
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	return &usecase.ProviderVerification{
		Succeeded: v.Status == "success",
		Email:     v.Customer.Email,
		Amount:    domain.FromMinorUnits(v.Amount),
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack: %s returned %d: %s", req.URL.Path, resp.StatusCode, raw)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}

	if !envelope.Status {
		return nil, fmt.Errorf("paystack: %s rejected: %s", req.URL.Path, envelope.Message)
	}

	return envelope.Data, nil
}
