package monitor

import (
	"context"

	"github.com/rewardly/cbs/internal/domain"
)

// Notifier delivers alert and campaign lifecycle events to connected
// merchant dashboards. Delivery is best-effort; the monitor never fails an
// operation because a notification could not be sent.
type Notifier interface {
	NotifyAlert(merchantID string, alert *domain.BudgetAlert)
	NotifyCampaignsPaused(merchantID string, campaigns []*domain.Campaign)
	NotifyCampaignsResumed(merchantID string, campaigns []*domain.Campaign)
}

// CheckResult reports what a utilization check did for one merchant.
type CheckResult struct {
	MerchantID      string                `json:"merchant_id"`
	Utilization     string                `json:"utilization_percentage"`
	AlertsRaised    []*domain.BudgetAlert `json:"alerts_raised"`
	CampaignsPaused []*domain.Campaign    `json:"campaigns_paused,omitempty"`
	AutoStopped     bool                  `json:"auto_stopped"`
}

// SweepResult summarizes one full threshold sweep.
type SweepResult struct {
	BudgetsChecked int      `json:"budgets_checked"`
	AlertsRaised   int      `json:"alerts_raised"`
	AutoStopped    int      `json:"auto_stopped"`
	FailedBudgets  []string `json:"failed_budgets,omitempty"`
}

// IMonitorService watches budget utilization against the configured
// threshold ladder, raises alerts and triggers campaign auto-stop.
type IMonitorService interface {
	// Check evaluates one merchant's utilization against every tier and
	// raises at most one alert per tier that has no open alert yet. At the
	// auto-stop tier it also pauses the merchant's active campaigns.
	Check(ctx context.Context, merchantID string) (*CheckResult, error)
	// Recheck re-evaluates a merchant after a load. If utilization dropped
	// back below the auto-stop tier, paused campaigns are resumed.
	Recheck(ctx context.Context, merchantID string) (*CheckResult, error)
	// SweepAllActiveMerchants runs Check for every active budget. A failing
	// merchant is recorded and skipped; the sweep continues.
	SweepAllActiveMerchants(ctx context.Context) (*SweepResult, error)
	Acknowledge(ctx context.Context, alertID string) (*domain.BudgetAlert, error)
	Alerts(ctx context.Context, merchantID string, openOnly bool, limit, offset int) ([]*domain.BudgetAlert, error)
	// CleanupAcknowledged deletes acknowledged alerts older than the
	// retention window and returns how many were removed.
	CleanupAcknowledged(ctx context.Context) (int64, error)
}
