package ledger

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
)

// MutationRequest describes a load or deduction against a merchant budget.
type MutationRequest struct {
	BudgetID    string
	Amount      decimal.Decimal
	ActorID     string
	Description string
	Metadata    json.RawMessage
	// BeforeCommit runs inside the same database transaction as the
	// mutation; an error rolls the mutation back. Callers use it to commit
	// their own state change atomically with the balance movement.
	BeforeCommit func(ctx context.Context, tx *sql.Tx) error
}

// ILedgerService owns all merchant budget balance mutation. Loads and
// deductions are atomic: balance update and movement append commit together
// or not at all.
type ILedgerService interface {
	GetOrCreateByMerchant(ctx context.Context, merchantID, currency string) (*domain.MerchantBudget, error)
	GetBudget(ctx context.Context, budgetID string) (*domain.MerchantBudget, error)
	GetBudgetByMerchant(ctx context.Context, merchantID string) (*domain.MerchantBudget, error)
	Load(ctx context.Context, req MutationRequest) (*domain.BudgetMovement, error)
	Deduct(ctx context.Context, req MutationRequest) (*domain.BudgetMovement, error)
	UpdateStatus(ctx context.Context, budgetID string, status domain.BudgetStatus) (*domain.MerchantBudget, error)
	GetUtilization(ctx context.Context, merchantID string) (decimal.Decimal, error)
	GetBudgetsAtOrAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error)
	ListActive(ctx context.Context) ([]*domain.MerchantBudget, error)
	Movements(ctx context.Context, budgetID string, limit, offset int) ([]*domain.BudgetMovement, error)
	MovementsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetMovement, error)
	Stats(ctx context.Context, merchantID string) (*domain.BudgetStats, error)
}
