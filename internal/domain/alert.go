package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type AlertType string

const (
	AlertThresholdReached AlertType = "threshold_reached"
	AlertAutoStop         AlertType = "auto_stop_triggered"
)

// BudgetAlert records one utilization threshold crossing. An alert stays
// open until acknowledged; the monitor will not raise a second alert for the
// same tier while an open one exists.
type BudgetAlert struct {
	ID                  string          `json:"id" db:"id"`
	MerchantID          string          `json:"merchant_id" db:"merchant_id"`
	BudgetID            string          `json:"budget_id" db:"budget_id"`
	AlertType           AlertType       `json:"alert_type" db:"alert_type"`
	ThresholdPercentage decimal.Decimal `json:"threshold_percentage" db:"threshold_percentage"`
	CurrentPercentage   decimal.Decimal `json:"current_percentage" db:"current_percentage"`
	Message             string          `json:"message" db:"message"`
	Metadata            json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	AcknowledgedAt      *time.Time      `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
}

// Acknowledged reports whether the alert has been acknowledged.
func (a *BudgetAlert) Acknowledged() bool {
	return a.AcknowledgedAt != nil
}
