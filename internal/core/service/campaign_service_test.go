package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubCampaignRepo struct {
	byID      map[string]*domain.Campaign
	nextID    int
	insertErr error
	incErr    error // if set, IncrementRaised returns this error
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{byID: make(map[string]*domain.Campaign)}
}

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCampaignRepo) Insert(_ context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := cloneCampaign(c)
	clone.ID = fmt.Sprintf("camp_%d", r.nextID)
	r.byID[clone.ID] = cloneCampaign(clone)
	return clone, nil
}

func (r *stubCampaignRepo) FindByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return cloneCampaign(c), nil
}

func (r *stubCampaignRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Campaign, error) {
	out := make(map[string]*domain.Campaign, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out[id] = cloneCampaign(c)
		}
	}
	return out, nil
}

func (r *stubCampaignRepo) List(_ context.Context) ([]*domain.Campaign, error) {
	out := make([]*domain.Campaign, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, cloneCampaign(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCampaignRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Campaign, error) {
	var out []*domain.Campaign
	for _, c := range r.byID {
		if c.CreatedBy == ownerID {
			out = append(out, cloneCampaign(c))
		}
	}
	return out, nil
}

// UpdateOwned mirrors the real Mongo filter: the document must match both
// the id and the owner, otherwise the caller cannot tell which was wrong.
func (r *stubCampaignRepo) UpdateOwned(_ context.Context, id, ownerID string, patch ports.CampaignPatch) (*domain.Campaign, error) {
	c, ok := r.byID[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, domain.ErrCampaignNotOwned
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.GoalAmount != nil {
		c.GoalAmount = *patch.GoalAmount
	}
	if patch.Deadline != nil {
		c.Deadline = *patch.Deadline
	}
	c.UpdatedAt = time.Now().UTC()
	return cloneCampaign(c), nil
}

func (r *stubCampaignRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	c, ok := r.byID[id]
	if !ok || c.CreatedBy != ownerID {
		return domain.ErrCampaignNotOwned
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCampaignRepo) IncrementRaised(_ context.Context, id string, amount float64) (*domain.Campaign, error) {
	if r.incErr != nil {
		return nil, r.incErr
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	c.RaisedAmount += amount
	c.UpdatedAt = time.Now().UTC()
	return cloneCampaign(c), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validCampaignInput() ports.CreateCampaignInput {
	return ports.CreateCampaignInput{
		Title:       "Clean Water",
		Description: "Wells for rural communities",
		Category:    "infrastructure",
		GoalAmount:  5000,
		Deadline:    time.Now().UTC().AddDate(0, 1, 0),
	}
}

func seedCampaign(t *testing.T, svc *CampaignService, ownerID string) *domain.Campaign {
	t.Helper()
	c, err := svc.Create(context.Background(), ownerID, validCampaignInput())
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCampaignService_Create_Success(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)

	c, err := svc.Create(context.Background(), "ngo_1", validCampaignInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if c.CreatedBy != "ngo_1" {
		t.Errorf("expected owner ngo_1, got %q", c.CreatedBy)
	}
	if c.RaisedAmount != 0 {
		t.Errorf("new campaign must start at zero raised, got %f", c.RaisedAmount)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestCampaignService_Create_Validation(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)

	cases := []struct {
		name   string
		mutate func(*ports.CreateCampaignInput)
	}{
		{"empty title", func(in *ports.CreateCampaignInput) { in.Title = "  " }},
		{"empty description", func(in *ports.CreateCampaignInput) { in.Description = "" }},
		{"zero goal", func(in *ports.CreateCampaignInput) { in.GoalAmount = 0 }},
		{"negative goal", func(in *ports.CreateCampaignInput) { in.GoalAmount = -10 }},
		{"zero deadline", func(in *ports.CreateCampaignInput) { in.Deadline = time.Time{} }},
		{"past deadline", func(in *ports.CreateCampaignInput) { in.Deadline = time.Now().UTC().AddDate(0, 0, -2) }},
	}
	for _, tc := range cases {
		in := validCampaignInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), "ngo_1", in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Errorf("invalid input must not persist anything, stored %d", len(repo.byID))
	}
}

func TestCampaignService_Create_RepoError(t *testing.T) {
	repo := newStubCampaignRepo()
	repo.insertErr = errors.New("db unavailable")
	svc := NewCampaignService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), "ngo_1", validCampaignInput()); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestCampaignService_Update_Success(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	updated, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{
		Title:      strPtr("Clean Water 2.0"),
		GoalAmount: floatPtr(8000),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Clean Water 2.0" {
		t.Errorf("title not applied: %q", updated.Title)
	}
	if updated.GoalAmount != 8000 {
		t.Errorf("goal not applied: %f", updated.GoalAmount)
	}
	if updated.Description != seeded.Description {
		t.Error("untouched fields must survive a partial patch")
	}
}

func TestCampaignService_Update_ForeignOwnerLooksLikeMissing(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	_, foreignErr := svc.Update(context.Background(), seeded.ID, "ngo_2", ports.CampaignPatch{Title: strPtr("hijack")})
	_, missingErr := svc.Update(context.Background(), "camp_none", "ngo_2", ports.CampaignPatch{Title: strPtr("x")})

	if !errors.Is(foreignErr, domain.ErrCampaignNotOwned) {
		t.Fatalf("foreign campaign: expected ErrCampaignNotOwned, got %v", foreignErr)
	}
	// A missing campaign and a foreign one must be indistinguishable.
	if !errors.Is(missingErr, domain.ErrCampaignNotOwned) {
		t.Fatalf("missing campaign: expected ErrCampaignNotOwned, got %v", missingErr)
	}
	if repo.byID[seeded.ID].Title != seeded.Title {
		t.Error("foreign update must not modify the campaign")
	}
}

func TestCampaignService_Update_PatchValidation(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	if _, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{Title: strPtr("  ")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank title: expected validation error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{GoalAmount: floatPtr(-5)}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative goal: expected validation error, got %v", err)
	}
}

func TestCampaignService_Update_PastDeadlineRejected(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	past := time.Now().UTC().AddDate(0, 0, -2)
	if _, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{Deadline: timePtr(past)}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("past deadline: expected validation error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{Deadline: timePtr(time.Time{})}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero deadline: expected validation error, got %v", err)
	}
	if !repo.byID[seeded.ID].Deadline.Equal(seeded.Deadline) {
		t.Error("rejected patch must not modify the stored deadline")
	}

	future := time.Now().UTC().AddDate(0, 2, 0)
	updated, err := svc.Update(context.Background(), seeded.ID, "ngo_1", ports.CampaignPatch{Deadline: timePtr(future)})
	if err != nil {
		t.Fatalf("future deadline: %v", err)
	}
	if !updated.Deadline.Equal(future) {
		t.Errorf("expected deadline %v, got %v", future, updated.Deadline)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCampaignService_Delete_Success(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	if err := svc.Delete(context.Background(), seeded.ID, "ngo_1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := repo.byID[seeded.ID]; ok {
		t.Error("campaign must be removed")
	}
}

func TestCampaignService_Delete_ForeignOwner(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seeded := seedCampaign(t, svc, "ngo_1")

	if err := svc.Delete(context.Background(), seeded.ID, "ngo_2"); !errors.Is(err, domain.ErrCampaignNotOwned) {
		t.Fatalf("expected ErrCampaignNotOwned, got %v", err)
	}
	if _, ok := repo.byID[seeded.ID]; !ok {
		t.Error("foreign delete must not remove the campaign")
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func TestCampaignService_GetByID_NotFound(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)

	if _, err := svc.GetByID(context.Background(), "camp_none"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestCampaignService_ListByOwner(t *testing.T) {
	repo := newStubCampaignRepo()
	svc := NewCampaignService(repo, discardLogger)
	seedCampaign(t, svc, "ngo_1")
	seedCampaign(t, svc, "ngo_1")
	seedCampaign(t, svc, "ngo_2")

	mine, err := svc.ListByOwner(context.Background(), "ngo_1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 owned campaigns, got %d", len(mine))
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 campaigns in total, got %d", len(all))
	}
}
