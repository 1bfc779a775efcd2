package ports

import (
	"context"
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// CreateCampaignInput carries all data needed to create a campaign.
type CreateCampaignInput struct {
	Title       string
	Description string
	Category    string
	GoalAmount  float64
	Deadline    time.Time
}

// CampaignService defines use-case operations on the campaign ledger.
// Ownership checks ride on the repository's owner-filtered updates.
type CampaignService interface {
	Create(ctx context.Context, ownerID string, in CreateCampaignInput) (*domain.Campaign, error)
	Update(ctx context.Context, id, callerID string, patch CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, id, callerID string) error
	List(ctx context.Context) ([]*domain.Campaign, error)
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error)
}
