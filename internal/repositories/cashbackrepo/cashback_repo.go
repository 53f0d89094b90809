package cashbackrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
)

// CreateParams carries the fields of a new cashback submission. Status is
// always pending on insert.
type CreateParams struct {
	MerchantID            string
	CampaignID            string
	CustomerID            string
	OriginalTransactionID string
	CashbackAmount        decimal.Decimal
	CashbackPercentage    decimal.Decimal
}

type ICashbackRepository interface {
	Create(ctx context.Context, p CreateParams) (*domain.CashbackTransaction, error)
	GetByID(ctx context.Context, id string) (*domain.CashbackTransaction, error)
	GetByOriginal(ctx context.Context, merchantID, originalTransactionID string) (*domain.CashbackTransaction, error)
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.CashbackTransaction, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.CashbackTransaction, error)
	ListPending(ctx context.Context, limit int) ([]*domain.CashbackTransaction, error)
	// TransitionStatus moves a transaction from one status to another in a
	// single conditional update. If the row is no longer in the expected
	// from status the call returns domain.ErrInvalidStateTransition.
	TransitionStatus(ctx context.Context, id string, from, to domain.CashbackStatus, processedAt *time.Time) (*domain.CashbackTransaction, error)
	// ClaimProcessed conditionally moves a pending transaction to processed
	// inside the caller's transaction, so the claim commits or rolls back
	// together with the budget deduction.
	ClaimProcessed(ctx context.Context, tx *sql.Tx, id string, processedAt time.Time) (*domain.CashbackTransaction, error)
}
