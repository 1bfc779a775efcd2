package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/api/metrics"
	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// DonationHandler handles donation recording and listings. The
// campaign-scoped listing is ownership-gated here, not in the service.
type DonationHandler struct {
	donations ports.DonationService
	campaigns ports.CampaignService
}

func NewDonationHandler(donations ports.DonationService, campaigns ports.CampaignService) *DonationHandler {
	return &DonationHandler{donations: donations, campaigns: campaigns}
}

// Donate records a donation and returns the post-increment campaign
// snapshot. Registered under both /donations/:campaignId/donate and the
// legacy /campaigns/:id/donate alias.
//
// @Summary      Donate to a campaign
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        campaignId  path      string         true  "Campaign ID"
// @Param        body        body      donateRequest  true  "Amount and optional message"
// @Success      201         {object}  donateResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /donations/{campaignId}/donate [post]
func (h *DonationHandler) Donate(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	campaignID := c.Param("campaignId")
	if campaignID == "" {
		campaignID = c.Param("id") // legacy alias
	}

	var req donateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	receipt, err := h.donations.Donate(c.Request().Context(), ports.DonateInput{
		DonorID:    user.ID,
		CampaignID: campaignID,
		Amount:     req.Amount,
		Message:    req.Message,
	})
	if err != nil {
		return err
	}

	metrics.DonationsTotal.Inc()
	metrics.DonationAmount.Observe(req.Amount)

	return c.JSON(http.StatusCreated, donateResponse{
		Message:         "donation successful",
		Donation:        receipt.Donation,
		UpdatedCampaign: receipt.Campaign,
	})
}

// ListMine returns the caller's donation history, newest first.
//
// @Summary      List my donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  donorDonationsResponse
// @Router       /donations/my [get]
func (h *DonationHandler) ListMine(c echo.Context) error {
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

// ListForCampaign returns all donations against one of the caller's
// campaigns. Non-owners get the same 404 as a missing campaign.
//
// @Summary      List donations for an owned campaign
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        campaignId  path      string  true  "Campaign ID"
// @Success      200         {object}  campaignDonationsResponse
// @Failure      404         {object}  errorResponse
// @Router       /donations/campaign/{campaignId} [get]
func (h *DonationHandler) ListForCampaign(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	campaignID := c.Param("campaignId")

	campaign, err := h.campaigns.GetByID(c.Request().Context(), campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			return domain.ErrCampaignNotOwned
		}
		return err
	}
	if campaign.CreatedBy != user.ID && user.Role != domain.RoleAdmin {
		return domain.ErrCampaignNotOwned
	}

	items, err := h.donations.ListForCampaign(c.Request().Context(), campaignID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaignDonationsResponse{Donations: toCampaignDonations(items)})
}
