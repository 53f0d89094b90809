package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign is owned by the campaign collaborator. This service only reads
// campaigns and toggles active↔paused through the campaign controller;
// completed is terminal.
type Campaign struct {
	ID                 string          `json:"id" db:"id"`
	MerchantID         string          `json:"merchant_id" db:"merchant_id"`
	Name               string          `json:"name" db:"name"`
	CashbackPercentage decimal.Decimal `json:"cashback_percentage" db:"cashback_percentage"`
	Status             CampaignStatus  `json:"status" db:"status"`
	StartDate          time.Time       `json:"start_date" db:"start_date"`
	EndDate            time.Time       `json:"end_date" db:"end_date"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// CanTransition reports whether a campaign may move from s to next.
func (s CampaignStatus) CanTransition(next CampaignStatus) bool {
	switch s {
	case CampaignActive:
		return next == CampaignPaused || next == CampaignCompleted
	case CampaignPaused:
		return next == CampaignActive || next == CampaignCompleted
	default:
		return false
	}
}

// Expired reports whether the campaign's end date has passed at t.
func (c *Campaign) Expired(t time.Time) bool {
	return c.EndDate.Before(t)
}
