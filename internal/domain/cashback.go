package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashbackStatus string

const (
	CashbackPending   CashbackStatus = "pending"
	CashbackProcessed CashbackStatus = "processed"
	CashbackFailed    CashbackStatus = "failed"
	CashbackDisputed  CashbackStatus = "disputed"
)

// CashbackTransaction is a single payout attempt tied to an external
// originating purchase. (merchant_id, original_transaction_id) is unique, so
// external retries of the same purchase never produce a second payout.
type CashbackTransaction struct {
	ID                    string          `json:"id" db:"id"`
	MerchantID            string          `json:"merchant_id" db:"merchant_id"`
	CampaignID            string          `json:"campaign_id" db:"campaign_id"`
	CustomerID            string          `json:"customer_id" db:"customer_id"`
	OriginalTransactionID string          `json:"original_transaction_id" db:"original_transaction_id"`
	CashbackAmount        decimal.Decimal `json:"cashback_amount" db:"cashback_amount"`
	CashbackPercentage    decimal.Decimal `json:"cashback_percentage" db:"cashback_percentage"`
	Status                CashbackStatus  `json:"status" db:"status"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt           *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}

// CanTransition reports whether a cashback transaction may move from s to
// next. Legal moves: pending→processed, pending→failed, failed→pending,
// processed→disputed. Disputed is terminal.
func (s CashbackStatus) CanTransition(next CashbackStatus) bool {
	switch s {
	case CashbackPending:
		return next == CashbackProcessed || next == CashbackFailed
	case CashbackFailed:
		return next == CashbackPending
	case CashbackProcessed:
		return next == CashbackDisputed
	default:
		return false
	}
}
