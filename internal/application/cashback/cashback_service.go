package cashback

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
)

// SubmitRequest is one incoming cashback posting. OriginalTransactionID is
// the purchase identifier from the transaction collaborator; resubmitting the
// same pair is rejected as a duplicate.
type SubmitRequest struct {
	MerchantID            string
	CampaignID            string
	CustomerID            string
	OriginalTransactionID string
	CashbackAmount        decimal.Decimal
	CashbackPercentage    decimal.Decimal
}

// BatchResult summarizes one pending-batch processing run.
type BatchResult struct {
	Picked    int      `json:"picked"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ICashbackService is the cashback transaction lifecycle: submit (pending),
// process (deduct and mark processed, or mark failed), retry and dispute.
type ICashbackService interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.CashbackTransaction, error)
	// Process deducts the cashback amount from the merchant budget and
	// marks the transaction processed. An insufficient balance marks it
	// failed instead and returns domain.ErrInsufficientBalance.
	Process(ctx context.Context, transactionID, actorID string) (*domain.CashbackTransaction, error)
	// Retry moves a failed transaction back to pending so the next
	// processing pass picks it up again.
	Retry(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error)
	// MarkDisputed flags a processed transaction as disputed. Disputes are
	// bookkeeping only; no money moves back.
	MarkDisputed(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error)
	GetByID(ctx context.Context, transactionID string) (*domain.CashbackTransaction, error)
	// GetByOriginal looks up the payout recorded for an originating
	// purchase, letting collaborators check whether a purchase already has
	// cashback attached before resubmitting.
	GetByOriginal(ctx context.Context, merchantID, originalTransactionID string) (*domain.CashbackTransaction, error)
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.CashbackTransaction, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.CashbackTransaction, error)
	// ProcessPendingBatch picks up to limit oldest pending transactions and
	// processes each one, isolating per-transaction failures.
	ProcessPendingBatch(ctx context.Context, limit int, actorID string) (*BatchResult, error)
}
