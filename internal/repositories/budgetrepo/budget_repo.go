package budgetrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
)

// MutationParams describes one atomic balance mutation. The repository runs
// the whole read-validate-write sequence inside a single database
// transaction holding a row lock on the budget.
type MutationParams struct {
	BudgetID    string
	Amount      decimal.Decimal
	ActorID     string
	Description string
	Metadata    json.RawMessage
	// BeforeCommit, when set, runs inside the mutation's transaction after
	// the balance and movement writes. An error rolls the whole mutation
	// back. It is not called when the mutation fails earlier, e.g. on an
	// insufficient balance.
	BeforeCommit func(ctx context.Context, tx *sql.Tx) error
}

type IBudgetRepository interface {
	Create(ctx context.Context, merchantID, currency string) (*domain.MerchantBudget, error)
	GetByID(ctx context.Context, id string) (*domain.MerchantBudget, error)
	GetByMerchant(ctx context.Context, merchantID string) (*domain.MerchantBudget, error)
	Load(ctx context.Context, p MutationParams) (*domain.BudgetMovement, error)
	Deduct(ctx context.Context, p MutationParams) (*domain.BudgetMovement, error)
	UpdateStatus(ctx context.Context, id string, status domain.BudgetStatus) (*domain.MerchantBudget, error)
	GetAtOrAboveUtilization(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error)
	ListActive(ctx context.Context) ([]*domain.MerchantBudget, error)
	MovementsByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.BudgetMovement, error)
	MovementsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetMovement, error)
	MovementStats(ctx context.Context, merchantID string) (*domain.BudgetStats, error)
}
