package campaigns

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/repositories/campaignrepo"
)

type campaignService struct {
	campaignRepo campaignrepo.ICampaignRepository
	logger       zerolog.Logger
	now          func() time.Time
}

func NewCampaignService(campaignRepo campaignrepo.ICampaignRepository, logger zerolog.Logger) ICampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *campaignService) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *campaignService) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Campaign, error) {
	return s.campaignRepo.ListByMerchant(ctx, merchantID)
}

func (s *campaignService) PauseActiveCampaigns(ctx context.Context, merchantID string) ([]*domain.Campaign, error) {
	active, err := s.campaignRepo.ListByMerchantAndStatus(ctx, merchantID, domain.CampaignActive)
	if err != nil {
		return nil, err
	}

	paused := make([]*domain.Campaign, 0, len(active))
	for _, c := range active {
		updated, err := s.campaignRepo.UpdateStatus(ctx, c.ID, domain.CampaignPaused)
		if err != nil {
			s.logger.Error().Err(err).Str("campaign_id", c.ID).Msg("Failed to pause campaign")
			return paused, err
		}
		paused = append(paused, updated)
	}

	if len(paused) > 0 {
		s.logger.Info().
			Str("merchant_id", merchantID).
			Int("count", len(paused)).
			Msg("Paused active campaigns")
	}
	return paused, nil
}

func (s *campaignService) ResumeCampaigns(ctx context.Context, merchantID string) ([]*domain.Campaign, error) {
	pausedList, err := s.campaignRepo.ListByMerchantAndStatus(ctx, merchantID, domain.CampaignPaused)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resumed := make([]*domain.Campaign, 0, len(pausedList))
	for _, c := range pausedList {
		if c.Expired(now) {
			continue
		}
		updated, err := s.campaignRepo.UpdateStatus(ctx, c.ID, domain.CampaignActive)
		if err != nil {
			s.logger.Error().Err(err).Str("campaign_id", c.ID).Msg("Failed to resume campaign")
			return resumed, err
		}
		resumed = append(resumed, updated)
	}

	if len(resumed) > 0 {
		s.logger.Info().
			Str("merchant_id", merchantID).
			Int("count", len(resumed)).
			Msg("Resumed paused campaigns")
	}
	return resumed, nil
}

func (s *campaignService) CompleteExpiredCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	expired, err := s.campaignRepo.ListExpiredRunning(ctx, s.now())
	if err != nil {
		return nil, err
	}

	completed := make([]*domain.Campaign, 0, len(expired))
	for _, c := range expired {
		updated, err := s.campaignRepo.UpdateStatus(ctx, c.ID, domain.CampaignCompleted)
		if err != nil {
			// Keep completing the rest; one bad row should not stall
			// the whole sweep.
			s.logger.Error().Err(err).Str("campaign_id", c.ID).Msg("Failed to complete expired campaign")
			continue
		}
		completed = append(completed, updated)
	}

	if len(completed) > 0 {
		s.logger.Info().Int("count", len(completed)).Msg("Completed expired campaigns")
	}
	return completed, nil
}
