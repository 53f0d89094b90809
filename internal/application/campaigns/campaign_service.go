package campaigns

import (
	"context"

	"github.com/rewardly/cbs/internal/domain"
)

// ICampaignService toggles campaign lifecycles in response to budget events.
// Campaign creation and editing live in the campaign collaborator; this
// service only pauses, resumes and completes.
type ICampaignService interface {
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Campaign, error)
	// PauseActiveCampaigns pauses every active campaign of the merchant and
	// returns the campaigns it paused.
	PauseActiveCampaigns(ctx context.Context, merchantID string) ([]*domain.Campaign, error)
	// ResumeCampaigns reactivates the merchant's paused campaigns whose end
	// date has not passed. Expired paused campaigns are left for the expiry
	// sweep to complete.
	ResumeCampaigns(ctx context.Context, merchantID string) ([]*domain.Campaign, error)
	// CompleteExpiredCampaigns finalizes every running campaign whose end
	// date has passed, across all merchants.
	CompleteExpiredCampaigns(ctx context.Context) ([]*domain.Campaign, error)
}
