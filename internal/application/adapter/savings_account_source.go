package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// SavingsAccountSource reads real balances of linked savings accounts.
// Implemented against whatever aggregation provider the deployment uses.
type SavingsAccountSource interface {
	// GetBalance returns the current balance of the linked account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
