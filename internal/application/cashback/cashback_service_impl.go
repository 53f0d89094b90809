package cashback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/repositories/cashbackrepo"
)

type cashbackService struct {
	cashbackRepo cashbackrepo.ICashbackRepository
	ledgerSvc    ledger.ILedgerService
	monitorSvc   monitor.IMonitorService
	logger       zerolog.Logger
	now          func() time.Time
}

func NewCashbackService(
	cashbackRepo cashbackrepo.ICashbackRepository,
	ledgerSvc ledger.ILedgerService,
	monitorSvc monitor.IMonitorService,
	logger zerolog.Logger,
) ICashbackService {
	return &cashbackService{
		cashbackRepo: cashbackRepo,
		ledgerSvc:    ledgerSvc,
		monitorSvc:   monitorSvc,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *cashbackService) Submit(ctx context.Context, req SubmitRequest) (*domain.CashbackTransaction, error) {
	if !req.CashbackAmount.IsPositive() {
		return nil, fmt.Errorf("cashback amount %s: %w", req.CashbackAmount, domain.ErrInvalidAmount)
	}
	if req.OriginalTransactionID == "" {
		return nil, fmt.Errorf("original_transaction_id is required: %w", domain.ErrInvalidID)
	}

	tx, err := s.cashbackRepo.Create(ctx, cashbackrepo.CreateParams{
		MerchantID:            req.MerchantID,
		CampaignID:            req.CampaignID,
		CustomerID:            req.CustomerID,
		OriginalTransactionID: req.OriginalTransactionID,
		CashbackAmount:        req.CashbackAmount,
		CashbackPercentage:    req.CashbackPercentage,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("merchant_id", req.MerchantID).
		Str("original_transaction_id", req.OriginalTransactionID).
		Str("amount", req.CashbackAmount.String()).
		Msg("Cashback transaction submitted")

	return tx, nil
}

// Process runs the pending→processed claim inside the deduction's database
// transaction, so the status flip and the budget movement commit together or
// not at all. Two concurrent calls for the same transaction cannot both
// claim the row, so the budget is deducted at most once.
func (s *cashbackService) Process(ctx context.Context, transactionID, actorID string) (*domain.CashbackTransaction, error) {
	pending, err := s.cashbackRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if pending.Status != domain.CashbackPending {
		return nil, fmt.Errorf("cashback transaction %s is %s, not pending: %w", transactionID, pending.Status, domain.ErrInvalidStateTransition)
	}

	budget, err := s.ledgerSvc.GetBudgetByMerchant(ctx, pending.MerchantID)
	if err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]string{
		"cashback_transaction_id": pending.ID,
		"original_transaction_id": pending.OriginalTransactionID,
		"campaign_id":             pending.CampaignID,
		"customer_id":             pending.CustomerID,
	})

	processedAt := s.now()
	var claimed *domain.CashbackTransaction
	_, err = s.ledgerSvc.Deduct(ctx, ledger.MutationRequest{
		BudgetID:    budget.ID,
		Amount:      pending.CashbackAmount,
		ActorID:     actorID,
		Description: fmt.Sprintf("Cashback payout for transaction %s", pending.OriginalTransactionID),
		Metadata:    metadata,
		BeforeCommit: func(ctx context.Context, tx *sql.Tx) error {
			var claimErr error
			claimed, claimErr = s.cashbackRepo.ClaimProcessed(ctx, tx, transactionID, processedAt)
			return claimErr
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			// The deduction bailed out before the claim ran, so the row is
			// still pending and may legally move to failed.
			if _, revertErr := s.cashbackRepo.TransitionStatus(ctx, transactionID, domain.CashbackPending, domain.CashbackFailed, nil); revertErr != nil {
				s.logger.Error().Err(revertErr).Str("transaction_id", transactionID).Msg("Failed to mark cashback transaction failed")
				return nil, revertErr
			}
			s.logger.Warn().
				Str("transaction_id", transactionID).
				Str("merchant_id", pending.MerchantID).
				Str("amount", pending.CashbackAmount.String()).
				Msg("Cashback processing failed: insufficient budget balance")
			return nil, err
		}

		// Any other failure rolled the claim back with the deduction; the
		// row stays pending for the next processing pass.
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", transactionID).
		Str("merchant_id", claimed.MerchantID).
		Str("amount", claimed.CashbackAmount.String()).
		Msg("Cashback transaction processed")

	// Threshold evaluation rides on every successful payout. It is
	// best-effort; the payout stands even if the check fails.
	if s.monitorSvc != nil {
		if _, checkErr := s.monitorSvc.Check(ctx, claimed.MerchantID); checkErr != nil {
			s.logger.Error().Err(checkErr).Str("merchant_id", claimed.MerchantID).Msg("Post-payout threshold check failed")
		}
	}

	return claimed, nil
}

func (s *cashbackService) Retry(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error) {
	tx, err := s.cashbackRepo.TransitionStatus(ctx, transactionID, domain.CashbackFailed, domain.CashbackPending, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("transaction_id", transactionID).Msg("Failed cashback transaction requeued")
	return tx, nil
}

func (s *cashbackService) MarkDisputed(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error) {
	tx, err := s.cashbackRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	disputed, err := s.cashbackRepo.TransitionStatus(ctx, transactionID, domain.CashbackProcessed, domain.CashbackDisputed, tx.ProcessedAt)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("transaction_id", transactionID).Msg("Cashback transaction marked disputed")
	return disputed, nil
}

func (s *cashbackService) GetByID(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error) {
	return s.cashbackRepo.GetByID(ctx, transactionID)
}

func (s *cashbackService) GetByOriginal(ctx context.Context, merchantID, originalTransactionID string) (*domain.CashbackTransaction, error) {
	if originalTransactionID == "" {
		return nil, fmt.Errorf("original_transaction_id is required: %w", domain.ErrInvalidID)
	}
	return s.cashbackRepo.GetByOriginal(ctx, merchantID, originalTransactionID)
}

func (s *cashbackService) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.CashbackTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.cashbackRepo.ListByMerchant(ctx, merchantID, limit, offset)
}

func (s *cashbackService) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.CashbackTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.cashbackRepo.ListByCustomer(ctx, customerID, limit, offset)
}

func (s *cashbackService) ProcessPendingBatch(ctx context.Context, limit int, actorID string) (*BatchResult, error) {
	if limit <= 0 {
		limit = 100
	}

	pending, err := s.cashbackRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Picked: len(pending)}
	for _, tx := range pending {
		if _, err := s.Process(ctx, tx.ID, actorID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", tx.ID, err))
			continue
		}
		result.Processed++
	}

	if result.Picked > 0 {
		s.logger.Info().
			Int("picked", result.Picked).
			Int("processed", result.Processed).
			Int("failed", result.Failed).
			Msg("Pending cashback batch completed")
	}
	return result, nil
}
