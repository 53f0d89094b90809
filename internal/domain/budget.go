package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type BudgetStatus string
type MovementKind string

const (
	BudgetActive    BudgetStatus = "active"
	BudgetSuspended BudgetStatus = "suspended"
)

const (
	MovementLoad   MovementKind = "load"
	MovementPayout MovementKind = "payout"
)

// MerchantBudget is a merchant's prepaid cashback balance. There is exactly
// one budget per merchant and CurrentBalance == TotalLoaded - TotalSpent at
// all times. All mutation goes through the ledger service.
type MerchantBudget struct {
	ID             string          `json:"id" db:"id"`
	MerchantID     string          `json:"merchant_id" db:"merchant_id"`
	CurrentBalance decimal.Decimal `json:"current_balance" db:"current_balance"`
	TotalLoaded    decimal.Decimal `json:"total_loaded" db:"total_loaded"`
	TotalSpent     decimal.Decimal `json:"total_spent" db:"total_spent"`
	Currency       string          `json:"currency" db:"currency"`
	Status         BudgetStatus    `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Utilization returns TotalSpent / TotalLoaded as a percentage, or zero when
// nothing has been loaded yet.
func (b *MerchantBudget) Utilization() decimal.Decimal {
	if b.TotalLoaded.IsZero() {
		return decimal.Zero
	}
	return b.TotalSpent.Div(b.TotalLoaded).Mul(decimal.NewFromInt(100))
}

// BudgetMovement is one immutable entry in a budget's movement log. Movements
// are append-only and are the source of truth for balance reconstruction.
type BudgetMovement struct {
	ID            string          `json:"id" db:"id"`
	BudgetID      string          `json:"budget_id" db:"budget_id"`
	MerchantID    string          `json:"merchant_id" db:"merchant_id"`
	Kind          MovementKind    `json:"kind" db:"kind"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before" db:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after" db:"balance_after"`
	Description   string          `json:"description" db:"description"`
	ActorID       string          `json:"actor_id" db:"actor_id"`
	Metadata      json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// BudgetStats summarizes a merchant's movement history.
type BudgetStats struct {
	MerchantID      string          `json:"merchant_id"`
	MovementCount   int64           `json:"movement_count"`
	TotalLoaded     decimal.Decimal `json:"total_loaded"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	AvgPayoutAmount decimal.Decimal `json:"avg_payout_amount"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	UtilizationPct  decimal.Decimal `json:"utilization_percentage"`
}
