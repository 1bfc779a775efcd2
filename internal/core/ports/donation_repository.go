package ports

import (
	"context"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// DonationRepository persists immutable donation records. There is no
// update or delete: donations are append-only.
type DonationRepository interface {
	Insert(ctx context.Context, d *domain.Donation) (*domain.Donation, error)
	// ListByDonor returns the donor's donations, newest first.
	ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error)
	// ListByCampaign returns donations against one campaign, newest first.
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Donation, error)
	// ListByCampaigns returns donations against any of the given campaigns,
	// newest first.
	ListByCampaigns(ctx context.Context, campaignIDs []string) ([]*domain.Donation, error)
}
