package budgetrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sqlc-dev/pqtype"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/repositories/budgetrepo/gen"
	"github.com/rewardly/cbs/internal/repositories/repoerr"
	"github.com/rewardly/cbs/pkg/money"
)

type budgetRepository struct {
	db     *sql.DB
	store  *gen.Queries
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) IBudgetRepository {
	return &budgetRepository{
		db:     db.Db,
		store:  gen.New(db.Db),
		logger: logger,
	}
}

func (r *budgetRepository) Create(ctx context.Context, merchantID, currency string) (*domain.MerchantBudget, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	row, err := r.store.CreateBudget(ctx, gen.CreateBudgetParams{
		MerchantID: merchantUUID,
		Currency:   currency,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("merchant_id", merchantID).Msg("Failed to create budget")
		return nil, fmt.Errorf("failed to create budget: %w", repoerr.Map(err))
	}

	return budgetToDomain(row)
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.MerchantBudget, error) {
	budgetUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.GetBudget(ctx, budgetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", repoerr.Map(err))
	}

	return budgetToDomain(row)
}

func (r *budgetRepository) GetByMerchant(ctx context.Context, merchantID string) (*domain.MerchantBudget, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	row, err := r.store.GetBudgetByMerchant(ctx, merchantUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget by merchant: %w", repoerr.Map(err))
	}

	return budgetToDomain(row)
}

// Load credits the budget. The row lock taken by GetBudgetForUpdate
// serializes mutations per budget; mutations on different budgets do not
// block each other.
func (r *budgetRepository) Load(ctx context.Context, p MutationParams) (*domain.BudgetMovement, error) {
	return r.mutate(ctx, p, domain.MovementLoad)
}

// Deduct debits the budget. If the amount exceeds the current balance the
// transaction is rolled back untouched and no movement row is written.
func (r *budgetRepository) Deduct(ctx context.Context, p MutationParams) (*domain.BudgetMovement, error) {
	return r.mutate(ctx, p, domain.MovementPayout)
}

func (r *budgetRepository) mutate(ctx context.Context, p MutationParams, kind domain.MovementKind) (*domain.BudgetMovement, error) {
	budgetUUID, err := uuid.Parse(p.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_id %q: %w", p.BudgetID, domain.ErrInvalidID)
	}
	actorUUID, err := uuid.Parse(p.ActorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor_id %q: %w", p.ActorID, domain.ErrInvalidID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin budget mutation: %w", err)
	}
	defer tx.Rollback()

	q := r.store.WithTx(tx)

	row, err := q.GetBudgetForUpdate(ctx, budgetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock budget: %w", repoerr.Map(err))
	}

	balance, err := decimal.NewFromString(row.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("corrupt current_balance for budget %s: %w", p.BudgetID, err)
	}
	totalLoaded, err := decimal.NewFromString(row.TotalLoaded)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_loaded for budget %s: %w", p.BudgetID, err)
	}
	totalSpent, err := decimal.NewFromString(row.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_spent for budget %s: %w", p.BudgetID, err)
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.MovementLoad:
		newBalance = balance.Add(p.Amount)
		totalLoaded = totalLoaded.Add(p.Amount)
	case domain.MovementPayout:
		newBalance = balance.Sub(p.Amount)
		if newBalance.IsNegative() {
			return nil, domain.ErrInsufficientBalance
		}
		totalSpent = totalSpent.Add(p.Amount)
	default:
		return nil, fmt.Errorf("unknown movement kind %q", kind)
	}

	err = q.UpdateBudgetBalances(ctx, gen.UpdateBudgetBalancesParams{
		ID:             budgetUUID,
		CurrentBalance: newBalance.StringFixed(money.Scale),
		TotalLoaded:    totalLoaded.StringFixed(money.Scale),
		TotalSpent:     totalSpent.StringFixed(money.Scale),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update budget balances: %w", repoerr.Map(err))
	}

	mv, err := q.InsertMovement(ctx, gen.InsertMovementParams{
		BudgetID:      budgetUUID,
		MerchantID:    row.MerchantID,
		Kind:          string(kind),
		Amount:        p.Amount.StringFixed(money.Scale),
		BalanceBefore: balance.StringFixed(money.Scale),
		BalanceAfter:  newBalance.StringFixed(money.Scale),
		Description:   p.Description,
		ActorID:       actorUUID,
		Metadata:      pqtype.NullRawMessage{RawMessage: p.Metadata, Valid: p.Metadata != nil},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append movement: %w", repoerr.Map(err))
	}

	if p.BeforeCommit != nil {
		if err := p.BeforeCommit(ctx, tx); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit budget mutation: %w", repoerr.Map(err))
	}

	return movementToDomain(mv)
}

func (r *budgetRepository) UpdateStatus(ctx context.Context, id string, status domain.BudgetStatus) (*domain.MerchantBudget, error) {
	budgetUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.UpdateBudgetStatus(ctx, gen.UpdateBudgetStatusParams{
		ID:     budgetUUID,
		Status: string(status),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("budget_id", id).Str("status", string(status)).Msg("Failed to update budget status")
		return nil, fmt.Errorf("failed to update budget status: %w", repoerr.Map(err))
	}

	return budgetToDomain(row)
}

func (r *budgetRepository) GetAtOrAboveUtilization(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
	rows, err := r.store.GetBudgetsAtOrAbove(ctx, threshold.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets at or above threshold: %w", repoerr.Map(err))
	}

	return budgetsToDomain(rows)
}

func (r *budgetRepository) ListActive(ctx context.Context) ([]*domain.MerchantBudget, error) {
	rows, err := r.store.ListActiveBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active budgets: %w", repoerr.Map(err))
	}

	return budgetsToDomain(rows)
}

func (r *budgetRepository) MovementsByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	budgetUUID, err := uuid.Parse(budgetID)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_id %q: %w", budgetID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListMovementsByBudget(ctx, gen.ListMovementsByBudgetParams{
		BudgetID: budgetUUID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", repoerr.Map(err))
	}

	return movementsToDomain(rows)
}

func (r *budgetRepository) MovementsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListMovementsByMerchant(ctx, gen.ListMovementsByMerchantParams{
		MerchantID: merchantUUID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", repoerr.Map(err))
	}

	return movementsToDomain(rows)
}

func (r *budgetRepository) MovementStats(ctx context.Context, merchantID string) (*domain.BudgetStats, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	row, err := r.store.GetMovementStats(ctx, merchantUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movement stats: %w", repoerr.Map(err))
	}

	totalLoaded, err := decimal.NewFromString(row.TotalLoaded)
	if err != nil {
		return nil, fmt.Errorf("corrupt movement stats for merchant %s: %w", merchantID, err)
	}
	totalSpent, err := decimal.NewFromString(row.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("corrupt movement stats for merchant %s: %w", merchantID, err)
	}
	avgPayout, err := decimal.NewFromString(row.AvgPayoutAmount)
	if err != nil {
		return nil, fmt.Errorf("corrupt movement stats for merchant %s: %w", merchantID, err)
	}

	return &domain.BudgetStats{
		MerchantID:      merchantID,
		MovementCount:   row.MovementCount,
		TotalLoaded:     totalLoaded,
		TotalSpent:      totalSpent,
		AvgPayoutAmount: avgPayout,
	}, nil
}

func budgetToDomain(row gen.MerchantBudget) (*domain.MerchantBudget, error) {
	balance, err := decimal.NewFromString(row.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("corrupt current_balance for budget %s: %w", row.ID, err)
	}
	totalLoaded, err := decimal.NewFromString(row.TotalLoaded)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_loaded for budget %s: %w", row.ID, err)
	}
	totalSpent, err := decimal.NewFromString(row.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_spent for budget %s: %w", row.ID, err)
	}

	return &domain.MerchantBudget{
		ID:             row.ID.String(),
		MerchantID:     row.MerchantID.String(),
		CurrentBalance: balance,
		TotalLoaded:    totalLoaded,
		TotalSpent:     totalSpent,
		Currency:       row.Currency,
		Status:         domain.BudgetStatus(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func budgetsToDomain(rows []gen.MerchantBudget) ([]*domain.MerchantBudget, error) {
	budgets := make([]*domain.MerchantBudget, 0, len(rows))
	for _, row := range rows {
		b, err := budgetToDomain(row)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func movementToDomain(row gen.BudgetMovement) (*domain.BudgetMovement, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount for movement %s: %w", row.ID, err)
	}
	before, err := decimal.NewFromString(row.BalanceBefore)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance_before for movement %s: %w", row.ID, err)
	}
	after, err := decimal.NewFromString(row.BalanceAfter)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance_after for movement %s: %w", row.ID, err)
	}

	mv := &domain.BudgetMovement{
		ID:            row.ID.String(),
		BudgetID:      row.BudgetID.String(),
		MerchantID:    row.MerchantID.String(),
		Kind:          domain.MovementKind(row.Kind),
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   row.Description,
		ActorID:       row.ActorID.String(),
		CreatedAt:     row.CreatedAt,
	}
	if row.Metadata.Valid {
		mv.Metadata = row.Metadata.RawMessage
	}
	return mv, nil
}

func movementsToDomain(rows []gen.BudgetMovement) ([]*domain.BudgetMovement, error) {
	movements := make([]*domain.BudgetMovement, 0, len(rows))
	for _, row := range rows {
		mv, err := movementToDomain(row)
		if err != nil {
			return nil, err
		}
		movements = append(movements, mv)
	}
	return movements, nil
}
