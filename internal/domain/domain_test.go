package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCashbackStatusTransitions(t *testing.T) {
	tests := []struct {
		from CashbackStatus
		to   CashbackStatus
		ok   bool
	}{
		{CashbackPending, CashbackProcessed, true},
		{CashbackPending, CashbackFailed, true},
		{CashbackPending, CashbackDisputed, false},
		{CashbackFailed, CashbackPending, true},
		{CashbackFailed, CashbackProcessed, false},
		{CashbackProcessed, CashbackDisputed, true},
		{CashbackProcessed, CashbackPending, false},
		{CashbackDisputed, CashbackPending, false},
		{CashbackDisputed, CashbackProcessed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.ok {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestCampaignStatusTransitions(t *testing.T) {
	tests := []struct {
		from CampaignStatus
		to   CampaignStatus
		ok   bool
	}{
		{CampaignActive, CampaignPaused, true},
		{CampaignActive, CampaignCompleted, true},
		{CampaignPaused, CampaignActive, true},
		{CampaignPaused, CampaignCompleted, true},
		{CampaignCompleted, CampaignActive, false},
		{CampaignCompleted, CampaignPaused, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.ok {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name   string
		loaded string
		spent  string
		want   string
	}{
		{"zero loaded", "0", "0", "0"},
		{"half spent", "1000.00", "500.00", "50"},
		{"fully spent", "200.00", "200.00", "100"},
		{"odd fraction", "300.00", "100.00", "33.33333333333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &MerchantBudget{
				TotalLoaded: decimal.RequireFromString(tt.loaded),
				TotalSpent:  decimal.RequireFromString(tt.spent),
			}
			want := decimal.RequireFromString(tt.want)
			if got := b.Utilization(); !got.Equal(want) {
				t.Errorf("Utilization() = %s, want %s", got, want)
			}
		})
	}
}

func TestCampaignExpired(t *testing.T) {
	now := time.Now()
	c := &Campaign{EndDate: now.Add(-time.Minute)}
	if !c.Expired(now) {
		t.Error("campaign past its end date should be expired")
	}
	c.EndDate = now.Add(time.Minute)
	if c.Expired(now) {
		t.Error("campaign before its end date should not be expired")
	}
}
