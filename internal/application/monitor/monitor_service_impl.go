package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/application/campaigns"
	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/repositories/alertrepo"
	"github.com/rewardly/cbs/pkg/config"
)

type monitorService struct {
	ledgerSvc   ledger.ILedgerService
	campaignSvc campaigns.ICampaignService
	alertRepo   alertrepo.IAlertRepository
	notifier    Notifier
	warnings    []decimal.Decimal
	autoStop    decimal.Decimal
	retention   time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

func NewMonitorService(
	ledgerSvc ledger.ILedgerService,
	campaignSvc campaigns.ICampaignService,
	alertRepo alertrepo.IAlertRepository,
	notifier Notifier,
	cfg config.AlertConfig,
	retention time.Duration,
	logger zerolog.Logger,
) IMonitorService {
	warnings := make([]decimal.Decimal, 0, len(cfg.WarningThresholds))
	for _, t := range cfg.WarningThresholds {
		warnings = append(warnings, decimal.NewFromFloat(t))
	}
	return &monitorService{
		ledgerSvc:   ledgerSvc,
		campaignSvc: campaignSvc,
		alertRepo:   alertRepo,
		notifier:    notifier,
		warnings:    warnings,
		autoStop:    decimal.NewFromFloat(cfg.AutoStopThreshold),
		retention:   retention,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *monitorService) Check(ctx context.Context, merchantID string) (*CheckResult, error) {
	budget, err := s.ledgerSvc.GetBudgetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, budget)
}

func (s *monitorService) Recheck(ctx context.Context, merchantID string) (*CheckResult, error) {
	budget, err := s.ledgerSvc.GetBudgetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	utilization := budget.Utilization()
	if budget.Status == domain.BudgetSuspended && utilization.LessThan(s.autoStop) {
		if _, err := s.ledgerSvc.UpdateStatus(ctx, budget.ID, domain.BudgetActive); err != nil {
			return nil, fmt.Errorf("failed to reactivate budget %s: %w", budget.ID, err)
		}
		resumed, err := s.campaignSvc.ResumeCampaigns(ctx, merchantID)
		if err != nil {
			return nil, err
		}
		if len(resumed) > 0 && s.notifier != nil {
			s.notifier.NotifyCampaignsResumed(merchantID, resumed)
		}
		s.logger.Info().
			Str("merchant_id", merchantID).
			Str("utilization", utilization.StringFixed(2)).
			Int("campaigns_resumed", len(resumed)).
			Msg("Budget reactivated after load")

		budget, err = s.ledgerSvc.GetBudgetByMerchant(ctx, merchantID)
		if err != nil {
			return nil, err
		}
	}

	return s.evaluate(ctx, budget)
}

// evaluate walks the ladder bottom-up so a single large deduction that jumps
// several tiers raises every crossed tier's alert at once.
func (s *monitorService) evaluate(ctx context.Context, budget *domain.MerchantBudget) (*CheckResult, error) {
	utilization := budget.Utilization()
	result := &CheckResult{
		MerchantID:   budget.MerchantID,
		Utilization:  utilization.StringFixed(2),
		AlertsRaised: []*domain.BudgetAlert{},
	}

	for _, tier := range s.warnings {
		if utilization.LessThan(tier) {
			break
		}
		alert, err := s.raiseOnce(ctx, budget, domain.AlertThresholdReached, tier, utilization)
		if err != nil {
			return nil, err
		}
		if alert != nil {
			result.AlertsRaised = append(result.AlertsRaised, alert)
		}
	}

	if utilization.GreaterThanOrEqual(s.autoStop) {
		alert, err := s.raiseOnce(ctx, budget, domain.AlertAutoStop, s.autoStop, utilization)
		if err != nil {
			return nil, err
		}
		if alert != nil {
			result.AlertsRaised = append(result.AlertsRaised, alert)
		}

		if budget.Status == domain.BudgetActive {
			if _, err := s.ledgerSvc.UpdateStatus(ctx, budget.ID, domain.BudgetSuspended); err != nil {
				return nil, fmt.Errorf("failed to suspend budget %s: %w", budget.ID, err)
			}
		}
		paused, err := s.campaignSvc.PauseActiveCampaigns(ctx, budget.MerchantID)
		if err != nil {
			return nil, err
		}
		result.CampaignsPaused = paused
		result.AutoStopped = true

		if len(paused) > 0 && s.notifier != nil {
			s.notifier.NotifyCampaignsPaused(budget.MerchantID, paused)
		}
		s.logger.Warn().
			Str("merchant_id", budget.MerchantID).
			Str("utilization", utilization.StringFixed(2)).
			Int("campaigns_paused", len(paused)).
			Msg("Budget auto-stop triggered")
	}

	return result, nil
}

// raiseOnce creates an alert for the tier unless an unacknowledged one for
// the same tier already exists.
func (s *monitorService) raiseOnce(ctx context.Context, budget *domain.MerchantBudget, alertType domain.AlertType, tier, utilization decimal.Decimal) (*domain.BudgetAlert, error) {
	open, err := s.alertRepo.CountOpen(ctx, budget.MerchantID, alertType, tier)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, nil
	}

	metadata, _ := json.Marshal(map[string]string{
		"total_loaded": budget.TotalLoaded.StringFixed(2),
		"total_spent":  budget.TotalSpent.StringFixed(2),
		"currency":     budget.Currency,
	})

	var message string
	if alertType == domain.AlertAutoStop {
		message = fmt.Sprintf("Budget utilization reached %s%%; campaigns auto-stopped at the %s%% tier", utilization.StringFixed(2), tier.StringFixed(2))
	} else {
		message = fmt.Sprintf("Budget utilization reached %s%% of the %s%% warning tier", utilization.StringFixed(2), tier.StringFixed(2))
	}

	alert, err := s.alertRepo.Create(ctx, alertrepo.CreateParams{
		MerchantID:          budget.MerchantID,
		BudgetID:            budget.ID,
		AlertType:           alertType,
		ThresholdPercentage: tier,
		CurrentPercentage:   utilization,
		Message:             message,
		Metadata:            metadata,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyAlert(budget.MerchantID, alert)
	}
	s.logger.Info().
		Str("merchant_id", budget.MerchantID).
		Str("alert_id", alert.ID).
		Str("alert_type", string(alertType)).
		Str("tier", tier.StringFixed(2)).
		Msg("Alert raised")

	return alert, nil
}

func (s *monitorService) SweepAllActiveMerchants(ctx context.Context) (*SweepResult, error) {
	budgets, err := s.ledgerSvc.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{BudgetsChecked: len(budgets)}
	for _, budget := range budgets {
		check, err := s.evaluate(ctx, budget)
		if err != nil {
			s.logger.Error().Err(err).Str("budget_id", budget.ID).Msg("Threshold sweep failed for budget")
			result.FailedBudgets = append(result.FailedBudgets, budget.ID)
			continue
		}
		result.AlertsRaised += len(check.AlertsRaised)
		if check.AutoStopped {
			result.AutoStopped++
		}
	}

	s.logger.Info().
		Int("budgets_checked", result.BudgetsChecked).
		Int("alerts_raised", result.AlertsRaised).
		Int("auto_stopped", result.AutoStopped).
		Int("failed", len(result.FailedBudgets)).
		Msg("Threshold sweep completed")

	return result, nil
}

func (s *monitorService) Acknowledge(ctx context.Context, alertID string) (*domain.BudgetAlert, error) {
	return s.alertRepo.Acknowledge(ctx, alertID)
}

func (s *monitorService) Alerts(ctx context.Context, merchantID string, openOnly bool, limit, offset int) ([]*domain.BudgetAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	if openOnly {
		return s.alertRepo.ListOpenByMerchant(ctx, merchantID, limit, offset)
	}
	return s.alertRepo.ListByMerchant(ctx, merchantID, limit, offset)
}

func (s *monitorService) CleanupAcknowledged(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.alertRepo.DeleteAcknowledgedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Purged acknowledged alerts")
	}
	return deleted, nil
}
