package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/api/metrics"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// CampaignHandler handles HTTP requests for campaign operations. Reads are
// public; all mutations go through the Auth middleware first.
type CampaignHandler struct {
	service ports.CampaignService
}

func NewCampaignHandler(service ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// List returns every campaign; clients filter on their side.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  campaignListResponse
// @Router       /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaignListResponse{Campaigns: campaigns})
}

// Get fetches one campaign.
//
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign ID"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  errorResponse
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Create registers a new campaign for the calling NGO.
//
// @Summary      Create a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCampaignRequest  true  "Campaign details"
// @Success      201   {object}  domain.Campaign
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	campaign, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}

	metrics.CampaignsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, campaign)
}

// Update patches an owned campaign. A missing campaign and someone else's
// campaign produce the same 404.
//
// @Summary      Update a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Campaign ID"
// @Param        body  body      updateCampaignRequest  true  "Fields to change"
// @Success      200   {object}  domain.Campaign
// @Failure      404   {object}  errorResponse
// @Router       /campaigns/{id} [put]
func (h *CampaignHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	campaign, err := h.service.Update(c.Request().Context(), c.Param("id"), user.ID, ports.CampaignPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete removes an owned campaign. Donation records against it survive.
//
// @Summary      Delete a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "campaign deleted"})
}
