package alertrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sqlc-dev/pqtype"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/repositories/alertrepo/gen"
	"github.com/rewardly/cbs/internal/repositories/repoerr"
)

type alertRepository struct {
	store  *gen.Queries
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) IAlertRepository {
	return &alertRepository{
		store:  gen.New(db.Db),
		logger: logger,
	}
}

func (r *alertRepository) Create(ctx context.Context, p CreateParams) (*domain.BudgetAlert, error) {
	merchantUUID, err := uuid.Parse(p.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", p.MerchantID, domain.ErrInvalidID)
	}
	budgetUUID, err := uuid.Parse(p.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_id %q: %w", p.BudgetID, domain.ErrInvalidID)
	}

	row, err := r.store.CreateAlert(ctx, gen.CreateAlertParams{
		MerchantID:          merchantUUID,
		BudgetID:            budgetUUID,
		AlertType:           string(p.AlertType),
		ThresholdPercentage: p.ThresholdPercentage.StringFixed(2),
		CurrentPercentage:   p.CurrentPercentage.StringFixed(2),
		Message:             p.Message,
		Metadata:            pqtype.NullRawMessage{RawMessage: p.Metadata, Valid: p.Metadata != nil},
	})
	if err != nil {
		r.logger.Error().Err(err).Str("merchant_id", p.MerchantID).Str("alert_type", string(p.AlertType)).Msg("Failed to create alert")
		return nil, fmt.Errorf("failed to create alert: %w", repoerr.Map(err))
	}

	return alertToDomain(row)
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domain.BudgetAlert, error) {
	alertUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid alert_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.GetAlert(ctx, alertUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", repoerr.Map(err))
	}

	return alertToDomain(row)
}

func (r *alertRepository) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetAlert, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListAlertsByMerchant(ctx, gen.ListAlertsByMerchantParams{
		MerchantID: merchantUUID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", repoerr.Map(err))
	}

	return alertsToDomain(rows)
}

func (r *alertRepository) ListOpenByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetAlert, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListOpenAlertsByMerchant(ctx, gen.ListOpenAlertsByMerchantParams{
		MerchantID: merchantUUID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open alerts: %w", repoerr.Map(err))
	}

	return alertsToDomain(rows)
}

func (r *alertRepository) CountOpen(ctx context.Context, merchantID string, alertType domain.AlertType, threshold decimal.Decimal) (int64, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return 0, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	count, err := r.store.CountOpenAlerts(ctx, gen.CountOpenAlertsParams{
		MerchantID:          merchantUUID,
		AlertType:           string(alertType),
		ThresholdPercentage: threshold.StringFixed(2),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count open alerts: %w", repoerr.Map(err))
	}

	return count, nil
}

func (r *alertRepository) Acknowledge(ctx context.Context, id string) (*domain.BudgetAlert, error) {
	alertUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid alert_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.AcknowledgeAlert(ctx, alertUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", repoerr.Map(err))
	}

	return alertToDomain(row)
}

func (r *alertRepository) DeleteAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := r.store.DeleteAcknowledgedAlertsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete acknowledged alerts: %w", repoerr.Map(err))
	}
	return deleted, nil
}

func alertToDomain(row gen.BudgetAlert) (*domain.BudgetAlert, error) {
	threshold, err := decimal.NewFromString(row.ThresholdPercentage)
	if err != nil {
		return nil, fmt.Errorf("corrupt threshold_percentage for alert %s: %w", row.ID, err)
	}
	current, err := decimal.NewFromString(row.CurrentPercentage)
	if err != nil {
		return nil, fmt.Errorf("corrupt current_percentage for alert %s: %w", row.ID, err)
	}

	alert := &domain.BudgetAlert{
		ID:                  row.ID.String(),
		MerchantID:          row.MerchantID.String(),
		BudgetID:            row.BudgetID.String(),
		AlertType:           domain.AlertType(row.AlertType),
		ThresholdPercentage: threshold,
		CurrentPercentage:   current,
		Message:             row.Message,
		CreatedAt:           row.CreatedAt,
	}
	if row.Metadata.Valid {
		alert.Metadata = row.Metadata.RawMessage
	}
	if row.AcknowledgedAt.Valid {
		t := row.AcknowledgedAt.Time
		alert.AcknowledgedAt = &t
	}
	return alert, nil
}

func alertsToDomain(rows []gen.BudgetAlert) ([]*domain.BudgetAlert, error) {
	alerts := make([]*domain.BudgetAlert, 0, len(rows))
	for _, row := range rows {
		a, err := alertToDomain(row)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
