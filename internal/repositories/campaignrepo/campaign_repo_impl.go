package campaignrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/repositories/campaignrepo/gen"
	"github.com/rewardly/cbs/internal/repositories/repoerr"
)

type campaignRepository struct {
	store  *gen.Queries
	logger zerolog.Logger
}

func New(db *database.DBManager, logger zerolog.Logger) ICampaignRepository {
	return &campaignRepository{
		store:  gen.New(db.Db),
		logger: logger,
	}
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	campaignUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.GetCampaign(ctx, campaignUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", repoerr.Map(err))
	}

	return campaignToDomain(row)
}

func (r *campaignRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Campaign, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListCampaignsByMerchant(ctx, merchantUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", repoerr.Map(err))
	}

	return campaignsToDomain(rows)
}

func (r *campaignRepository) ListByMerchantAndStatus(ctx context.Context, merchantID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id %q: %w", merchantID, domain.ErrInvalidID)
	}

	rows, err := r.store.ListCampaignsByMerchantAndStatus(ctx, gen.ListCampaignsByMerchantAndStatusParams{
		MerchantID: merchantUUID,
		Status:     string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns by status: %w", repoerr.Map(err))
	}

	return campaignsToDomain(rows)
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error) {
	campaignUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign_id %q: %w", id, domain.ErrInvalidID)
	}

	row, err := r.store.UpdateCampaignStatus(ctx, gen.UpdateCampaignStatusParams{
		ID:     campaignUUID,
		Status: string(status),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("campaign_id", id).Str("status", string(status)).Msg("Failed to update campaign status")
		return nil, fmt.Errorf("failed to update campaign status: %w", repoerr.Map(err))
	}

	return campaignToDomain(row)
}

func (r *campaignRepository) ListExpiredRunning(ctx context.Context, asOf time.Time) ([]*domain.Campaign, error) {
	rows, err := r.store.ListExpiredRunningCampaigns(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired campaigns: %w", repoerr.Map(err))
	}

	return campaignsToDomain(rows)
}

func campaignToDomain(row gen.Campaign) (*domain.Campaign, error) {
	percentage, err := decimal.NewFromString(row.CashbackPercentage)
	if err != nil {
		return nil, fmt.Errorf("corrupt cashback_percentage for campaign %s: %w", row.ID, err)
	}

	return &domain.Campaign{
		ID:                 row.ID.String(),
		MerchantID:         row.MerchantID.String(),
		Name:               row.Name,
		CashbackPercentage: percentage,
		Status:             domain.CampaignStatus(row.Status),
		StartDate:          row.StartDate,
		EndDate:            row.EndDate,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

func campaignsToDomain(rows []gen.Campaign) ([]*domain.Campaign, error) {
	campaigns := make([]*domain.Campaign, 0, len(rows))
	for _, row := range rows {
		c, err := campaignToDomain(row)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}
