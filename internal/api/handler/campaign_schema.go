package handler

import (
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createCampaignRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category"`
	GoalAmount  float64   `json:"goal_amount" validate:"required,gt=0"`
	Deadline    time.Time `json:"deadline"    validate:"required"`
}

// updateCampaignRequest is a partial patch; absent fields stay unchanged.
type updateCampaignRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	GoalAmount  *float64   `json:"goal_amount"`
	Deadline    *time.Time `json:"deadline"`
}

type campaignListResponse struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
}

type messageResponse struct {
	Message string `json:"message"`
}
