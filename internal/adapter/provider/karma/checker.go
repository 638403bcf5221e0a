package karma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Checker implements usecase.BlacklistChecker against the Adjutor karma
// lookup. A 404 means the identity is clear; any hit blocks onboarding.
type Checker struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewChecker creates a new Checker.
func NewChecker(baseURL, secretKey string) *Checker {
	return &Checker{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type karmaResponse struct {
	Data struct {
		KarmaIdentity string `json:"karma_identity"`
		Reason        string `json:"reason"`
		DefaultDate   string `json:"default_date"`
	} `json:"data"`
}

// Check returns the blacklist reason for the email, or "" when clear.
func (c *Checker) Check(ctx context.Context, email string) (string, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("karma lookup returned %d: %s", resp.StatusCode, raw)
	}

	var body karmaResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("decode karma response: %w", err)
	}

	if body.Data.KarmaIdentity == "" {
		return "", nil
	}

	reason := body.Data.Reason
	if reason == "" {
		reason = "identity found on karma blacklist"
	}

	return reason, nil
}
