package campaigns

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/domain"
)

type fakeCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	nextID    int
	failIDs   map[string]error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns: make(map[string]*domain.Campaign),
		failIDs:   make(map[string]error),
	}
}

func (f *fakeCampaignRepo) seed(merchantID string, status domain.CampaignStatus, endsIn time.Duration) *domain.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := &domain.Campaign{
		ID:         fmt.Sprintf("campaign-%d", f.nextID),
		MerchantID: merchantID,
		Status:     status,
		EndDate:    time.Now().Add(endsIn),
	}
	f.campaigns[c.ID] = c
	return c
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignRepo) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Campaign
	for _, c := range f.campaigns {
		if c.MerchantID == merchantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) ListByMerchantAndStatus(ctx context.Context, merchantID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Campaign
	for _, c := range f.campaigns {
		if c.MerchantID == merchantID && c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failIDs[id]; ok {
		return nil, err
	}
	c, ok := f.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Status = status
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignRepo) ListExpiredRunning(ctx context.Context, asOf time.Time) ([]*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Campaign
	for _, c := range f.campaigns {
		if (c.Status == domain.CampaignActive || c.Status == domain.CampaignPaused) && c.EndDate.Before(asOf) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestPauseActiveCampaigns(t *testing.T) {
	repo := newFakeCampaignRepo()
	repo.seed("merchant-1", domain.CampaignActive, time.Hour)
	repo.seed("merchant-1", domain.CampaignActive, time.Hour)
	repo.seed("merchant-1", domain.CampaignCompleted, -time.Hour)
	repo.seed("merchant-2", domain.CampaignActive, time.Hour)
	svc := NewCampaignService(repo, zerolog.Nop())

	paused, err := svc.PauseActiveCampaigns(context.Background(), "merchant-1")
	if err != nil {
		t.Fatalf("PauseActiveCampaigns: %v", err)
	}
	if len(paused) != 2 {
		t.Fatalf("paused %d campaigns, want 2", len(paused))
	}
	for _, c := range paused {
		if c.Status != domain.CampaignPaused {
			t.Errorf("campaign %s status = %s, want paused", c.ID, c.Status)
		}
	}

	// The other merchant's campaign is untouched.
	other, _ := repo.ListByMerchantAndStatus(context.Background(), "merchant-2", domain.CampaignActive)
	if len(other) != 1 {
		t.Errorf("merchant-2 active campaigns = %d, want 1", len(other))
	}
}

func TestResumeSkipsExpiredCampaigns(t *testing.T) {
	repo := newFakeCampaignRepo()
	fresh := repo.seed("merchant-1", domain.CampaignPaused, time.Hour)
	expired := repo.seed("merchant-1", domain.CampaignPaused, -time.Hour)
	svc := NewCampaignService(repo, zerolog.Nop())

	resumed, err := svc.ResumeCampaigns(context.Background(), "merchant-1")
	if err != nil {
		t.Fatalf("ResumeCampaigns: %v", err)
	}
	if len(resumed) != 1 || resumed[0].ID != fresh.ID {
		t.Fatalf("resumed = %v, want only %s", resumed, fresh.ID)
	}

	got, _ := repo.GetByID(context.Background(), expired.ID)
	if got.Status != domain.CampaignPaused {
		t.Errorf("expired campaign status = %s, want still paused", got.Status)
	}
}

func TestCompleteExpiredCampaignsKeepsGoingOnError(t *testing.T) {
	repo := newFakeCampaignRepo()
	a := repo.seed("merchant-1", domain.CampaignActive, -time.Hour)
	b := repo.seed("merchant-2", domain.CampaignPaused, -2*time.Hour)
	running := repo.seed("merchant-1", domain.CampaignActive, time.Hour)
	repo.failIDs[a.ID] = errors.New("boom")
	svc := NewCampaignService(repo, zerolog.Nop())

	completed, err := svc.CompleteExpiredCampaigns(context.Background())
	if err != nil {
		t.Fatalf("CompleteExpiredCampaigns: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != b.ID {
		t.Fatalf("completed = %v, want only %s", completed, b.ID)
	}

	got, _ := repo.GetByID(context.Background(), running.ID)
	if got.Status != domain.CampaignActive {
		t.Errorf("running campaign status = %s, want active", got.Status)
	}
}
