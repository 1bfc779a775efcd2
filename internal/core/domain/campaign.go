package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrCampaignNotOwned covers both a missing campaign and one owned by
	// someone else. The ambiguity is deliberate: owners-only endpoints must
	// not reveal which campaigns exist.
	ErrCampaignNotOwned = errors.New("campaign not found or unauthorized")
	ErrForbidden        = errors.New("access forbidden")
)

// ErrValidation is the sentinel all field-level validation failures unwrap to.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the missing or invalid fields of a request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Campaign is a fundraising effort owned by an NGO user. RaisedAmount is
// only ever mutated through the donation recorder's atomic increment and
// never decreases; it may exceed GoalAmount.
type Campaign struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category,omitempty"`
	GoalAmount   float64   `json:"goal_amount"`
	RaisedAmount float64   `json:"raised_amount"`
	CreatedBy    string    `json:"created_by"`
	Deadline     time.Time `json:"deadline"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
