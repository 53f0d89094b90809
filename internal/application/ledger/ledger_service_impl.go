package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/repositories/budgetrepo"
)

type ledgerService struct {
	budgetRepo budgetrepo.IBudgetRepository
	logger     zerolog.Logger
}

func NewLedgerService(budgetRepo budgetrepo.IBudgetRepository, logger zerolog.Logger) ILedgerService {
	return &ledgerService{
		budgetRepo: budgetRepo,
		logger:     logger,
	}
}

func (s *ledgerService) GetOrCreateByMerchant(ctx context.Context, merchantID, currency string) (*domain.MerchantBudget, error) {
	budget, err := s.budgetRepo.GetByMerchant(ctx, merchantID)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	budget, err = s.budgetRepo.Create(ctx, merchantID, currency)
	if err != nil {
		// A concurrent caller may have created the budget between the
		// lookup and the insert. The unique index on merchant_id makes
		// that surface as a duplicate; fall back to the existing row.
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			return s.budgetRepo.GetByMerchant(ctx, merchantID)
		}
		return nil, err
	}

	s.logger.Info().
		Str("merchant_id", merchantID).
		Str("budget_id", budget.ID).
		Str("currency", currency).
		Msg("Created merchant budget")

	return budget, nil
}

func (s *ledgerService) GetBudget(ctx context.Context, budgetID string) (*domain.MerchantBudget, error) {
	return s.budgetRepo.GetByID(ctx, budgetID)
}

func (s *ledgerService) GetBudgetByMerchant(ctx context.Context, merchantID string) (*domain.MerchantBudget, error) {
	return s.budgetRepo.GetByMerchant(ctx, merchantID)
}

func (s *ledgerService) Load(ctx context.Context, req MutationRequest) (*domain.BudgetMovement, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	mv, err := s.budgetRepo.Load(ctx, budgetrepo.MutationParams{
		BudgetID:     req.BudgetID,
		Amount:       req.Amount,
		ActorID:      req.ActorID,
		Description:  req.Description,
		Metadata:     req.Metadata,
		BeforeCommit: req.BeforeCommit,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("budget_id", req.BudgetID).
		Str("movement_id", mv.ID).
		Str("amount", req.Amount.String()).
		Str("balance_after", mv.BalanceAfter.String()).
		Msg("Budget loaded")

	return mv, nil
}

func (s *ledgerService) Deduct(ctx context.Context, req MutationRequest) (*domain.BudgetMovement, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	mv, err := s.budgetRepo.Deduct(ctx, budgetrepo.MutationParams{
		BudgetID:     req.BudgetID,
		Amount:       req.Amount,
		ActorID:      req.ActorID,
		Description:  req.Description,
		Metadata:     req.Metadata,
		BeforeCommit: req.BeforeCommit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			s.logger.Warn().
				Str("budget_id", req.BudgetID).
				Str("amount", req.Amount.String()).
				Msg("Deduction rejected: insufficient balance")
		}
		return nil, err
	}

	s.logger.Info().
		Str("budget_id", req.BudgetID).
		Str("movement_id", mv.ID).
		Str("amount", req.Amount.String()).
		Str("balance_after", mv.BalanceAfter.String()).
		Msg("Budget deducted")

	return mv, nil
}

func (s *ledgerService) UpdateStatus(ctx context.Context, budgetID string, status domain.BudgetStatus) (*domain.MerchantBudget, error) {
	if status != domain.BudgetActive && status != domain.BudgetSuspended {
		return nil, fmt.Errorf("unknown budget status %q: %w", status, domain.ErrInvalidStateTransition)
	}
	return s.budgetRepo.UpdateStatus(ctx, budgetID, status)
}

func (s *ledgerService) GetUtilization(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	budget, err := s.budgetRepo.GetByMerchant(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	return budget.Utilization(), nil
}

func (s *ledgerService) GetBudgetsAtOrAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
	return s.budgetRepo.GetAtOrAboveUtilization(ctx, threshold)
}

func (s *ledgerService) ListActive(ctx context.Context) ([]*domain.MerchantBudget, error) {
	return s.budgetRepo.ListActive(ctx)
}

func (s *ledgerService) Movements(ctx context.Context, budgetID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	return s.budgetRepo.MovementsByBudget(ctx, budgetID, normalizeLimit(limit), offset)
}

func (s *ledgerService) MovementsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	return s.budgetRepo.MovementsByMerchant(ctx, merchantID, normalizeLimit(limit), offset)
}

func (s *ledgerService) Stats(ctx context.Context, merchantID string) (*domain.BudgetStats, error) {
	budget, err := s.budgetRepo.GetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	stats, err := s.budgetRepo.MovementStats(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	stats.CurrentBalance = budget.CurrentBalance
	stats.UtilizationPct = budget.Utilization()
	return stats, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s: %w", amount, domain.ErrInvalidAmount)
	}
	return nil
}

const defaultPageSize = 50

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}
