package cashbackrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/repositories/cashbackrepo/gen"
	"github.com/rewardly/cbs/internal/repositories/repoerr"
	"github.com/rewardly/cbs/pkg/money"
)

type cashbackRepository struct {
	store  *gen.Queries
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) ICashbackRepository {
	return &cashbackRepository{
		store:  gen.New(db.Db),
		logger: logger,
	}
}

func (r *cashbackRepository) Create(ctx context.Context, p CreateParams) (*domain.CashbackTransaction, error) {
	merchantUUID, err := uuid.Parse(p.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", p.MerchantID, domain.ErrInvalidID)
	}
	campaignUUID, err := uuid.Parse(p.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign_id %q: %w", p.CampaignID, domain.ErrInvalidID)
	}
	customerUUID, err := uuid.Parse(p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id %q: %w", p.CustomerID, domain.ErrInvalidID)
	}

	row, err := r.store.CreateCashbackTransaction(ctx, gen.CreateCashbackTransactionParams{
		MerchantID:            merchantUUID,
		CampaignID:            campaignUUID,
		CustomerID:            customerUUID,
		OriginalTransactionID: p.OriginalTransactionID,
		CashbackAmount:        p.CashbackAmount.StringFixed(money.Scale),
		CashbackPercentage:    p.CashbackPercentage.String(),
	})
	if err != nil {
		mapped := repoerr.Map(err)
		if !errors.Is(mapped, domain.ErrDuplicateTransaction) {
			r.logger.Error().Err(err).Str("merchant_id", p.MerchantID).Str("original_transaction_id", p.OriginalTransactionID).Msg("Failed to create cashback transaction")
		}
		return nil, fmt.Errorf("failed to create cashback transaction: %w", mapped)
	}

	return cashbackToDomain(row)
}

func (r *cashbackRepository) GetByID(ctx context.Context, id string) (*domain.CashbackTransaction, error) {
	txUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.GetCashbackTransaction(ctx, txUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cashback transaction: %w", repoerr.Map(err))
	}

	return cashbackToDomain(row)
}

func (r *cashbackRepository) GetByOriginal(ctx context.Context, merchantID, originalTransactionID string) (*domain.CashbackTransaction, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	row, err := r.store.GetCashbackByOriginal(ctx, gen.GetCashbackByOriginalParams{
		MerchantID:            merchantUUID,
		OriginalTransactionID: originalTransactionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cashback by original transaction: %w", repoerr.Map(err))
	}

	return cashbackToDomain(row)
}

func (r *cashbackRepository) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.CashbackTransaction, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListCashbackByMerchant(ctx, gen.ListCashbackByMerchantParams{
		MerchantID: merchantUUID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cashback transactions: %w", repoerr.Map(err))
	}

	return cashbacksToDomain(rows)
}

func (r *cashbackRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.CashbackTransaction, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id %q: %w", customerID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListCashbackByCustomer(ctx, gen.ListCashbackByCustomerParams{
		CustomerID: customerUUID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cashback transactions: %w", repoerr.Map(err))
	}

	return cashbacksToDomain(rows)
}

func (r *cashbackRepository) ListPending(ctx context.Context, limit int) ([]*domain.CashbackTransaction, error) {
	rows, err := r.store.ListPendingCashback(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending cashback transactions: %w", repoerr.Map(err))
	}

	return cashbacksToDomain(rows)
}

func (r *cashbackRepository) TransitionStatus(ctx context.Context, id string, from, to domain.CashbackStatus, processedAt *time.Time) (*domain.CashbackTransaction, error) {
	txUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction_id %q: %w", id, domain.ErrInvalidID)
	}

	var processed sql.NullTime
	if processedAt != nil {
		processed = sql.NullTime{Time: *processedAt, Valid: true}
	}

	row, err := r.store.TransitionCashbackStatus(ctx, gen.TransitionCashbackStatusParams{
		ID:          txUUID,
		Status:      string(from),
		Status_2:    string(to),
		ProcessedAt: processed,
	})
	if err != nil {
		// Zero rows means the transaction either does not exist or is no
		// longer in the expected status. Disambiguate with a plain lookup
		// so the caller gets the right taxonomy member.
		if errors.Is(err, sql.ErrNoRows) {
			if _, lookupErr := r.store.GetCashbackTransaction(ctx, txUUID); lookupErr != nil {
				return nil, fmt.Errorf("failed to get cashback transaction: %w", repoerr.Map(lookupErr))
			}
			return nil, fmt.Errorf("cashback transaction %s is not %s: %w", id, from, domain.ErrInvalidStateTransition)
		}
		return nil, fmt.Errorf("failed to transition cashback status: %w", repoerr.Map(err))
	}

	return cashbackToDomain(row)
}

func (r *cashbackRepository) ClaimProcessed(ctx context.Context, tx *sql.Tx, id string, processedAt time.Time) (*domain.CashbackTransaction, error) {
	txUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction_id %q: %w", id, domain.ErrInvalidID)
	}

	q := r.store.WithTx(tx)
	row, err := q.TransitionCashbackStatus(ctx, gen.TransitionCashbackStatusParams{
		ID:          txUUID,
		Status:      string(domain.CashbackPending),
		Status_2:    string(domain.CashbackProcessed),
		ProcessedAt: sql.NullTime{Time: processedAt, Valid: true},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, lookupErr := q.GetCashbackTransaction(ctx, txUUID); lookupErr != nil {
				return nil, fmt.Errorf("failed to get cashback transaction: %w", repoerr.Map(lookupErr))
			}
			return nil, fmt.Errorf("cashback transaction %s is not pending: %w", id, domain.ErrInvalidStateTransition)
		}
		return nil, fmt.Errorf("failed to claim cashback transaction: %w", repoerr.Map(err))
	}

	return cashbackToDomain(row)
}

func cashbackToDomain(row gen.CashbackTransaction) (*domain.CashbackTransaction, error) {
	amount, err := decimal.NewFromString(row.CashbackAmount)
	if err != nil {
		return nil, fmt.Errorf("corrupt cashback_amount for transaction %s: %w", row.ID, err)
	}
	percentage, err := decimal.NewFromString(row.CashbackPercentage)
	if err != nil {
		return nil, fmt.Errorf("corrupt cashback_percentage for transaction %s: %w", row.ID, err)
	}

	tx := &domain.CashbackTransaction{
		ID:                    row.ID.String(),
		MerchantID:            row.MerchantID.String(),
		CampaignID:            row.CampaignID.String(),
		CustomerID:            row.CustomerID.String(),
		OriginalTransactionID: row.OriginalTransactionID,
		CashbackAmount:        amount,
		CashbackPercentage:    percentage,
		Status:                domain.CashbackStatus(row.Status),
		CreatedAt:             row.CreatedAt,
	}
	if row.ProcessedAt.Valid {
		t := row.ProcessedAt.Time
		tx.ProcessedAt = &t
	}
	return tx, nil
}

func cashbacksToDomain(rows []gen.CashbackTransaction) ([]*domain.CashbackTransaction, error) {
	txs := make([]*domain.CashbackTransaction, 0, len(rows))
	for _, row := range rows {
		tx, err := cashbackToDomain(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
