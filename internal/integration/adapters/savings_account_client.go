// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goal-planner/backend/internal/application/adapter"
)

// savingsAccountClient implements adapter.SavingsAccountSource against the
// account aggregation service's REST API.
type savingsAccountClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// balanceResponse is the aggregation service's wire format. The balance
// comes as a string to avoid float rounding on the wire.
type balanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
}

// NewSavingsAccountClient creates a new savings account client instance.
func NewSavingsAccountClient(baseURL, apiKey string, timeout time.Duration) adapter.SavingsAccountSource {
	return &savingsAccountClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetBalance returns the current balance of the linked account.
func (c *savingsAccountClient) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v1/accounts/%s/balance", c.baseURL, url.PathEscape(accountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build balance request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch account balance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("account service returned status %d for account %s", resp.StatusCode, accountID)
	}

	var body balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode balance response: %w", err)
	}

	balance, err := decimal.NewFromString(body.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid balance %q for account %s: %w", body.Balance, accountID, err)
	}
	return balance, nil
}
