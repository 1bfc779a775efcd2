package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// DashboardHandler composes the per-role dashboard views from the campaign
// and donation services.
type DashboardHandler struct {
	campaigns ports.CampaignService
	donations ports.DonationService
}

func NewDashboardHandler(campaigns ports.CampaignService, donations ports.DonationService) *DashboardHandler {
	return &DashboardHandler{campaigns: campaigns, donations: donations}
}

type ngoDashboardResponse struct {
	Campaigns []*domain.Campaign         `json:"campaigns"`
	Donations []campaignDonationResponse `json:"donations"`
}

// NGO returns the caller's campaigns plus every donation made against them.
//
// @Summary      NGO dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ngoDashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/ngo [get]
func (h *DashboardHandler) NGO(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	campaigns, err := h.campaigns.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	ids := make([]string, len(campaigns))
	for i, campaign := range campaigns {
		ids[i] = campaign.ID
	}
	donations, err := h.donations.ListForCampaigns(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ngoDashboardResponse{
		Campaigns: campaigns,
		Donations: toCampaignDonations(donations),
	})
}

// Donor returns the caller's donation history.
//
// @Summary      Donor dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  donorDonationsResponse
// @Router       /dashboard/donor [get]
func (h *DashboardHandler) Donor(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.donations.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donorDonationsResponse{Donations: toDonorDonations(items)})
}
