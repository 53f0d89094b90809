package campaignrepo

import (
	"context"
	"time"

	"github.com/rewardly/cbs/internal/domain"
)

type ICampaignRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Campaign, error)
	ListByMerchantAndStatus(ctx context.Context, merchantID string, status domain.CampaignStatus) ([]*domain.Campaign, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error)
	ListExpiredRunning(ctx context.Context, asOf time.Time) ([]*domain.Campaign, error)
}
