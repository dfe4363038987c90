package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/goal-planner/backend/test/integration/mock"
)

func TestSavingsAccountClient(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches and parses the balance", func(t *testing.T) {
		api := mock.NewApiServer()
		api.SetResponse(0, "GET", "/v1/accounts/acc-1/balance", 200, map[string]any{
			"account_id": "acc-1",
			"balance":    "3500.75",
			"currency":   "BRL",
		})
		api.Start()

		client := NewSavingsAccountClient(api.GetUrl(), "api-key", time.Second)
		balance, err := client.GetBalance(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if balance.String() != "3500.75" {
			t.Errorf("expected balance 3500.75, got %s", balance.String())
		}

		headers := api.GetRequestHeaders("GET", "/v1/accounts/acc-1/balance", 0)
		if headers["Authorization"] != "Bearer api-key" {
			t.Errorf("expected bearer auth header, got %q", headers["Authorization"])
		}
	})

	t.Run("non-200 responses are errors", func(t *testing.T) {
		api := mock.NewApiServer()
		api.SetResponse(0, "GET", "/v1/accounts/acc-down/balance", 502, map[string]any{
			"error": "upstream unavailable",
		})
		api.Start()

		client := NewSavingsAccountClient(api.GetUrl(), "api-key", time.Second)
		if _, err := client.GetBalance(ctx, "acc-down"); err == nil {
			t.Fatal("expected an error for a 502 response")
		}
	})

	t.Run("unparseable balance is an error", func(t *testing.T) {
		api := mock.NewApiServer()
		api.SetResponse(0, "GET", "/v1/accounts/acc-1/balance", 200, map[string]any{
			"account_id": "acc-1",
			"balance":    "not-a-number",
		})
		api.Start()

		client := NewSavingsAccountClient(api.GetUrl(), "api-key", time.Second)
		if _, err := client.GetBalance(ctx, "acc-1"); err == nil {
			t.Fatal("expected an error for a malformed balance")
		}
	})
}
