package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

type stubDonationService struct {
	donateFn          func(ctx context.Context, in ports.DonateInput) (*ports.DonationReceipt, error)
	listMineFn        func(ctx context.Context, donorID string) ([]ports.DonorDonation, error)
	listForCampaignFn func(ctx context.Context, campaignID string) ([]ports.CampaignDonation, error)
}

func (s *stubDonationService) Donate(ctx context.Context, in ports.DonateInput) (*ports.DonationReceipt, error) {
	return s.donateFn(ctx, in)
}

func (s *stubDonationService) ListMine(ctx context.Context, donorID string) ([]ports.DonorDonation, error) {
	return s.listMineFn(ctx, donorID)
}

func (s *stubDonationService) ListForCampaign(ctx context.Context, campaignID string) ([]ports.CampaignDonation, error) {
	return s.listForCampaignFn(ctx, campaignID)
}

func (s *stubDonationService) ListForCampaigns(ctx context.Context, campaignIDs []string) ([]ports.CampaignDonation, error) {
	var out []ports.CampaignDonation
	for _, id := range campaignIDs {
		entries, err := s.listForCampaignFn(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

type stubCampaignService struct {
	byID map[string]*domain.Campaign
}

func (s *stubCampaignService) Create(context.Context, string, ports.CreateCampaignInput) (*domain.Campaign, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCampaignService) Update(context.Context, string, string, ports.CampaignPatch) (*domain.Campaign, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCampaignService) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (s *stubCampaignService) List(context.Context) ([]*domain.Campaign, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCampaignService) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

func (s *stubCampaignService) ListByOwner(_ context.Context, ownerID string) ([]*domain.Campaign, error) {
	var out []*domain.Campaign
	for _, c := range s.byID {
		if c.CreatedBy == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func sampleReceipt(campaignID string, amount float64) *ports.DonationReceipt {
	return &ports.DonationReceipt{
		Donation: &domain.Donation{
			ID: "don_1", Donor: "user_1", Campaign: campaignID,
			Amount: amount, CreatedAt: time.Now().UTC(),
		},
		Campaign: &domain.Campaign{
			ID: campaignID, Title: "Relief", GoalAmount: 1000, RaisedAmount: amount,
		},
	}
}

func TestDonationHandler_Donate_Success(t *testing.T) {
	donations := &stubDonationService{
		donateFn: func(_ context.Context, in ports.DonateInput) (*ports.DonationReceipt, error) {
			if in.DonorID != "user_1" || in.CampaignID != "camp_1" || in.Amount != 25 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleReceipt(in.CampaignID, in.Amount), nil
		},
	}
	h := NewDonationHandler(donations, &stubCampaignService{})

	c, rec := newTestContext(t, http.MethodPost, "/donations/camp_1/donate", `{"amount":25,"message":"go"}`)
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleDonor})

	if err := h.Donate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	campaign, ok := resp["updated_campaign"].(map[string]any)
	if !ok || campaign["raised_amount"] != float64(25) {
		t.Errorf("expected post-increment campaign snapshot, got %v", resp["updated_campaign"])
	}
}

func TestDonationHandler_Donate_LegacyRouteParam(t *testing.T) {
	var gotCampaign string
	donations := &stubDonationService{
		donateFn: func(_ context.Context, in ports.DonateInput) (*ports.DonationReceipt, error) {
			gotCampaign = in.CampaignID
			return sampleReceipt(in.CampaignID, in.Amount), nil
		},
	}
	h := NewDonationHandler(donations, &stubCampaignService{})

	c, _ := newTestContext(t, http.MethodPost, "/campaigns/camp_9/donate", `{"amount":5}`)
	c.SetParamNames("id")
	c.SetParamValues("camp_9")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleDonor})

	if err := h.Donate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotCampaign != "camp_9" {
		t.Fatalf("legacy :id param not picked up, got %q", gotCampaign)
	}
}

func TestDonationHandler_Donate_AmountBelowMinimum(t *testing.T) {
	donations := &stubDonationService{
		donateFn: func(context.Context, ports.DonateInput) (*ports.DonationReceipt, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewDonationHandler(donations, &stubCampaignService{})

	c, _ := newTestContext(t, http.MethodPost, "/donations/camp_1/donate", `{"amount":0.5}`)
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleDonor})

	err := h.Donate(c)
	if err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestDonationHandler_Donate_Unauthenticated(t *testing.T) {
	h := NewDonationHandler(&stubDonationService{}, &stubCampaignService{})

	c, _ := newTestContext(t, http.MethodPost, "/donations/camp_1/donate", `{"amount":10}`)
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")

	if err := h.Donate(c); err == nil {
		t.Fatal("expected error without auth context")
	}
}

func TestDonationHandler_ListForCampaign_Owner(t *testing.T) {
	campaigns := &stubCampaignService{byID: map[string]*domain.Campaign{
		"camp_1": {ID: "camp_1", CreatedBy: "ngo_1"},
	}}
	donations := &stubDonationService{
		listForCampaignFn: func(_ context.Context, campaignID string) ([]ports.CampaignDonation, error) {
			return []ports.CampaignDonation{{
				Donation: &domain.Donation{ID: "don_1", Campaign: campaignID, Amount: 10},
				Donor:    ports.DonorSummary{ID: "user_1", Name: "Alice"},
			}}, nil
		},
	}
	h := NewDonationHandler(donations, campaigns)

	c, rec := newTestContext(t, http.MethodGet, "/donations/campaign/camp_1", "")
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")
	c.Set("user", &domain.User{ID: "ngo_1", Role: domain.RoleNGO})

	if err := h.ListForCampaign(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDonationHandler_ListForCampaign_ForeignOwner(t *testing.T) {
	campaigns := &stubCampaignService{byID: map[string]*domain.Campaign{
		"camp_1": {ID: "camp_1", CreatedBy: "ngo_1"},
	}}
	donations := &stubDonationService{
		listForCampaignFn: func(context.Context, string) ([]ports.CampaignDonation, error) {
			t.Fatalf("listing must not run for a foreign campaign")
			return nil, nil
		},
	}
	h := NewDonationHandler(donations, campaigns)

	c, _ := newTestContext(t, http.MethodGet, "/donations/campaign/camp_1", "")
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")
	c.Set("user", &domain.User{ID: "ngo_2", Role: domain.RoleNGO})

	if err := h.ListForCampaign(c); !errors.Is(err, domain.ErrCampaignNotOwned) {
		t.Fatalf("expected ErrCampaignNotOwned, got %v", err)
	}
}

func TestDonationHandler_ListForCampaign_MissingLooksTheSame(t *testing.T) {
	campaigns := &stubCampaignService{byID: map[string]*domain.Campaign{}}
	h := NewDonationHandler(&stubDonationService{}, campaigns)

	c, _ := newTestContext(t, http.MethodGet, "/donations/campaign/camp_none", "")
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_none")
	c.Set("user", &domain.User{ID: "ngo_1", Role: domain.RoleNGO})

	// Missing campaigns and foreign ones must yield the same error so the
	// endpoint cannot be used to probe which campaigns exist.
	if err := h.ListForCampaign(c); !errors.Is(err, domain.ErrCampaignNotOwned) {
		t.Fatalf("expected ErrCampaignNotOwned, got %v", err)
	}
}

func TestDonationHandler_ListForCampaign_AdminBypassesOwnership(t *testing.T) {
	campaigns := &stubCampaignService{byID: map[string]*domain.Campaign{
		"camp_1": {ID: "camp_1", CreatedBy: "ngo_1"},
	}}
	donations := &stubDonationService{
		listForCampaignFn: func(context.Context, string) ([]ports.CampaignDonation, error) {
			return []ports.CampaignDonation{}, nil
		},
	}
	h := NewDonationHandler(donations, campaigns)

	c, rec := newTestContext(t, http.MethodGet, "/donations/campaign/camp_1", "")
	c.SetParamNames("campaignId")
	c.SetParamValues("camp_1")
	c.Set("user", &domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	if err := h.ListForCampaign(c); err != nil {
		t.Fatalf("admin must see any campaign's donations: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDonationHandler_ListMine(t *testing.T) {
	donations := &stubDonationService{
		listMineFn: func(_ context.Context, donorID string) ([]ports.DonorDonation, error) {
			if donorID != "user_1" {
				t.Fatalf("unexpected donor: %s", donorID)
			}
			return []ports.DonorDonation{{
				Donation: &domain.Donation{ID: "don_1", Amount: 10, CreatedAt: time.Now().UTC()},
				Campaign: ports.CampaignSummary{ID: "camp_1", Title: "Relief"},
			}}, nil
		},
	}
	h := NewDonationHandler(donations, &stubCampaignService{})

	c, rec := newTestContext(t, http.MethodGet, "/donations/my", "")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleDonor})

	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	items, ok := resp["donations"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 donation, got %v", resp)
	}
}
