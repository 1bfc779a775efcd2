package ports

import (
	"context"
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// CampaignPatch carries the optional fields of a campaign update. Nil
// pointers mean "leave unchanged".
type CampaignPatch struct {
	Title       *string
	Description *string
	Category    *string
	GoalAmount  *float64
	Deadline    *time.Time
}

// CampaignRepository persists campaigns. RaisedAmount mutation is confined
// to IncrementRaised, which must be an atomic single-document delta apply.
type CampaignRepository interface {
	Insert(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	// FindByIDs returns the campaigns that exist among ids, keyed by ID.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error)
	// UpdateOwned applies patch to the campaign only when it is owned by
	// ownerID. Returns domain.ErrCampaignNotOwned when no such document
	// matches (missing and not-owned are indistinguishable).
	UpdateOwned(ctx context.Context, id, ownerID string, patch CampaignPatch) (*domain.Campaign, error)
	// DeleteOwned removes the campaign under the same ownership filter.
	DeleteOwned(ctx context.Context, id, ownerID string) error
	// IncrementRaised atomically adds amount to the campaign's raised total
	// and returns the post-increment document.
	IncrementRaised(ctx context.Context, id string, amount float64) (*domain.Campaign, error)
}
