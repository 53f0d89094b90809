package alertrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
)

// CreateParams carries the fields of a new alert. Threshold and current
// percentages are recorded as-is so the alert survives later config changes.
type CreateParams struct {
	MerchantID          string
	BudgetID            string
	AlertType           domain.AlertType
	ThresholdPercentage decimal.Decimal
	CurrentPercentage   decimal.Decimal
	Message             string
	Metadata            json.RawMessage
}

type IAlertRepository interface {
	Create(ctx context.Context, p CreateParams) (*domain.BudgetAlert, error)
	GetByID(ctx context.Context, id string) (*domain.BudgetAlert, error)
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetAlert, error)
	ListOpenByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetAlert, error)
	// CountOpen returns the number of unacknowledged alerts for one
	// merchant, alert type and threshold tier.
	CountOpen(ctx context.Context, merchantID string, alertType domain.AlertType, threshold decimal.Decimal) (int64, error)
	// Acknowledge marks the alert acknowledged. Acknowledging twice keeps
	// the original timestamp.
	Acknowledge(ctx context.Context, id string) (*domain.BudgetAlert, error)
	DeleteAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
