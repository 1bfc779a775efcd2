package ports

import (
	"context"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// DonateInput carries the fields of a donation request.
type DonateInput struct {
	DonorID    string
	CampaignID string
	Amount     float64
	Message    string
}

// DonationReceipt is returned after a successful donation: the created
// record plus the campaign snapshot after the increment.
type DonationReceipt struct {
	Donation *domain.Donation
	Campaign *domain.Campaign
}

// CampaignSummary is the lightweight campaign view attached to a donor's
// donation history. A zero-value summary (empty title) marks a donation
// whose campaign has since been deleted.
type CampaignSummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	GoalAmount   float64 `json:"goal_amount"`
	RaisedAmount float64 `json:"raised_amount"`
}

// DonorSummary is the lightweight donor view attached to a campaign's
// donation list.
type DonorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DonorDonation is one entry of a donor's history.
type DonorDonation struct {
	Donation *domain.Donation
	Campaign CampaignSummary
}

// CampaignDonation is one entry of a campaign's donation list.
type CampaignDonation struct {
	Donation *domain.Donation
	Donor    DonorSummary
}

// DonationService records donations and resolves donation listings.
// ListForCampaign performs no ownership check; the transport layer gates it.
type DonationService interface {
	Donate(ctx context.Context, in DonateInput) (*DonationReceipt, error)
	ListMine(ctx context.Context, donorID string) ([]DonorDonation, error)
	ListForCampaign(ctx context.Context, campaignID string) ([]CampaignDonation, error)
	ListForCampaigns(ctx context.Context, campaignIDs []string) ([]CampaignDonation, error)
}
