package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// CampaignService owns campaign records. It never touches RaisedAmount
// directly; that field belongs to the donation recorder.
type CampaignService struct {
	repo ports.CampaignRepository
	log  zerolog.Logger
}

func NewCampaignService(repo ports.CampaignRepository, log zerolog.Logger) *CampaignService {
	return &CampaignService{repo: repo, log: log}
}

// Create validates and persists a new campaign with a zero raised amount.
func (s *CampaignService) Create(ctx context.Context, ownerID string, in ports.CreateCampaignInput) (*domain.Campaign, error) {
	var bad []string
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		bad = append(bad, "title")
	}
	if description == "" {
		bad = append(bad, "description")
	}
	if in.GoalAmount <= 0 {
		bad = append(bad, "goal_amount")
	}
	now := time.Now().UTC()
	if in.Deadline.IsZero() || in.Deadline.Before(now.Truncate(24*time.Hour)) {
		bad = append(bad, "deadline")
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}

	campaign := &domain.Campaign{
		Title:        title,
		Description:  description,
		Category:     strings.TrimSpace(in.Category),
		GoalAmount:   in.GoalAmount,
		RaisedAmount: 0,
		CreatedBy:    ownerID,
		Deadline:     in.Deadline.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, campaign)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create campaign")
		return nil, err
	}

	s.log.Info().Str("campaign_id", created.ID).Str("owner_id", ownerID).Msg("campaign created")
	return created, nil
}

// Update applies a partial patch. The repository's owner filter makes a
// missing campaign and a foreign one indistinguishable.
func (s *CampaignService) Update(ctx context.Context, id, callerID string, patch ports.CampaignPatch) (*domain.Campaign, error) {
	var bad []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		bad = append(bad, "title")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		bad = append(bad, "description")
	}
	if patch.GoalAmount != nil && *patch.GoalAmount <= 0 {
		bad = append(bad, "goal_amount")
	}
	if patch.Deadline != nil {
		now := time.Now().UTC()
		if patch.Deadline.IsZero() || patch.Deadline.Before(now.Truncate(24*time.Hour)) {
			bad = append(bad, "deadline")
		}
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}

	updated, err := s.repo.UpdateOwned(ctx, id, callerID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("campaign_id", id).Msg("campaign updated")
	return updated, nil
}

// Delete removes an owned campaign. Donations against it are kept as
// orphans; history must survive the campaign.
func (s *CampaignService) Delete(ctx context.Context, id, callerID string) error {
	if err := s.repo.DeleteOwned(ctx, id, callerID); err != nil {
		return err
	}
	s.log.Info().Str("campaign_id", id).Msg("campaign deleted")
	return nil
}

func (s *CampaignService) List(ctx context.Context) ([]*domain.Campaign, error) {
	return s.repo.List(ctx)
}

func (s *CampaignService) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CampaignService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
