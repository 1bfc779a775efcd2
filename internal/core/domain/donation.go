package domain

import "time"

// MinDonationAmount is the smallest accepted contribution.
const MinDonationAmount = 1

// Donation is an immutable contribution record. Every donation is paired
// with exactly one increment of the referenced campaign's raised amount.
type Donation struct {
	ID        string    `json:"id"`
	Donor     string    `json:"donor"`
	Campaign  string    `json:"campaign"`
	Amount    float64   `json:"amount"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
