package handler

import (
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

type donateRequest struct {
	Amount  float64 `json:"amount"  validate:"required,gte=1"`
	Message string  `json:"message"`
}

type donateResponse struct {
	Message         string           `json:"message"`
	Donation        *domain.Donation `json:"donation"`
	UpdatedCampaign *domain.Campaign `json:"updated_campaign"`
}

// donorDonationResponse is one entry of a donor's history, with the
// campaign resolved to a summary.
type donorDonationResponse struct {
	ID        string                `json:"id"`
	Amount    float64               `json:"amount"`
	Message   string                `json:"message,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Campaign  ports.CampaignSummary `json:"campaign"`
}

// campaignDonationResponse is one entry of a campaign's donation list, with
// the donor resolved to a summary.
type campaignDonationResponse struct {
	ID        string             `json:"id"`
	Amount    float64            `json:"amount"`
	Message   string             `json:"message,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Donor     ports.DonorSummary `json:"donor"`
}

type donorDonationsResponse struct {
	Donations []donorDonationResponse `json:"donations"`
}

type campaignDonationsResponse struct {
	Donations []campaignDonationResponse `json:"donations"`
}

func toDonorDonations(items []ports.DonorDonation) []donorDonationResponse {
	out := make([]donorDonationResponse, len(items))
	for i, item := range items {
		out[i] = donorDonationResponse{
			ID:        item.Donation.ID,
			Amount:    item.Donation.Amount,
			Message:   item.Donation.Message,
			CreatedAt: item.Donation.CreatedAt,
			Campaign:  item.Campaign,
		}
	}
	return out
}

func toCampaignDonations(items []ports.CampaignDonation) []campaignDonationResponse {
	out := make([]campaignDonationResponse, len(items))
	for i, item := range items {
		out[i] = campaignDonationResponse{
			ID:        item.Donation.ID,
			Amount:    item.Donation.Amount,
			Message:   item.Donation.Message,
			CreatedAt: item.Donation.CreatedAt,
			Donor:     item.Donor,
		}
	}
	return out
}
