package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// DonationService records immutable donations and keeps campaign raised
// totals in step with them.
type DonationService struct {
	donations ports.DonationRepository
	campaigns ports.CampaignRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewDonationService(donations ports.DonationRepository, campaigns ports.CampaignRepository, users ports.UserRepository, log zerolog.Logger) *DonationService {
	return &DonationService{
		donations: donations,
		campaigns: campaigns,
		users:     users,
		log:       log,
	}
}

// Donate inserts the donation record and then atomically increments the
// campaign's raised amount. The increment is a single-document delta apply,
// so concurrent donations to one campaign cannot lose updates. A reader may
// briefly observe the donation before the incremented total; there is no
// cross-document transaction.
func (s *DonationService) Donate(ctx context.Context, in ports.DonateInput) (*ports.DonationReceipt, error) {
	if in.Amount < domain.MinDonationAmount {
		return nil, &domain.ValidationError{Fields: []string{"amount"}}
	}

	// Reject donations to missing campaigns before any write.
	if _, err := s.campaigns.FindByID(ctx, in.CampaignID); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		Donor:     in.DonorID,
		Campaign:  in.CampaignID,
		Amount:    in.Amount,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.donations.Insert(ctx, donation)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	campaign, err := s.campaigns.IncrementRaised(ctx, in.CampaignID, in.Amount)
	if err != nil {
		// The donation record exists but the total was not bumped. Surface
		// loudly; reconciliation is manual.
		s.log.Error().Err(err).
			Str("donation_id", created.ID).
			Str("campaign_id", in.CampaignID).
			Float64("amount", in.Amount).
			Msg("raised amount increment failed after donation insert")
		return nil, fmt.Errorf("increment raised amount: %w", err)
	}

	s.log.Info().
		Str("donation_id", created.ID).
		Str("campaign_id", in.CampaignID).
		Float64("amount", in.Amount).
		Msg("donation recorded")

	return &ports.DonationReceipt{Donation: created, Campaign: campaign}, nil
}

// ListMine returns the donor's donations, newest first, each with a summary
// of its campaign. Donations whose campaign was deleted keep a zero-value
// summary.
func (s *DonationService) ListMine(ctx context.Context, donorID string) ([]ports.DonorDonation, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(donations))
	seen := make(map[string]struct{}, len(donations))
	for _, d := range donations {
		if _, ok := seen[d.Campaign]; !ok {
			seen[d.Campaign] = struct{}{}
			ids = append(ids, d.Campaign)
		}
	}
	campaigns, err := s.campaigns.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.DonorDonation, 0, len(donations))
	for _, d := range donations {
		entry := ports.DonorDonation{Donation: d}
		if c, ok := campaigns[d.Campaign]; ok {
			entry.Campaign = ports.CampaignSummary{
				ID:           c.ID,
				Title:        c.Title,
				GoalAmount:   c.GoalAmount,
				RaisedAmount: c.RaisedAmount,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListForCampaign returns donations against one campaign, newest first,
// each with a donor summary. Ownership is the transport layer's problem.
func (s *DonationService) ListForCampaign(ctx context.Context, campaignID string) ([]ports.CampaignDonation, error) {
	donations, err := s.donations.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return s.withDonors(ctx, donations)
}

// ListForCampaigns resolves donations across several campaigns at once; it
// backs the NGO dashboard.
func (s *DonationService) ListForCampaigns(ctx context.Context, campaignIDs []string) ([]ports.CampaignDonation, error) {
	if len(campaignIDs) == 0 {
		return []ports.CampaignDonation{}, nil
	}
	donations, err := s.donations.ListByCampaigns(ctx, campaignIDs)
	if err != nil {
		return nil, err
	}
	return s.withDonors(ctx, donations)
}

func (s *DonationService) withDonors(ctx context.Context, donations []*domain.Donation) ([]ports.CampaignDonation, error) {
	out := make([]ports.CampaignDonation, 0, len(donations))
	donors := make(map[string]*domain.User)
	for _, d := range donations {
		entry := ports.CampaignDonation{Donation: d}
		donor, ok := donors[d.Donor]
		if !ok {
			u, err := s.users.FindByID(ctx, d.Donor)
			if err == nil {
				donor = u
			}
			donors[d.Donor] = donor
		}
		if donor != nil {
			entry.Donor = ports.DonorSummary{ID: donor.ID, Name: donor.Name, Email: donor.Email}
		}
		out = append(out, entry)
	}
	return out, nil
}
