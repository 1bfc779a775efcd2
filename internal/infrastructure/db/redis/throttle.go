package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const issueWindow = time.Minute

// IssueThrottle rate-limits one-time-code issuance per email address,
// backed by Redis. Key format: otp:<purpose>:<email>
type IssueThrottle struct {
	client *redis.Client
}

// NewIssueThrottle creates an IssueThrottle wrapping the given client.
func NewIssueThrottle(client *redis.Client) *IssueThrottle {
	return &IssueThrottle{client: client}
}

// Allow reports whether a code may be issued and, when permitted, opens a
// one-minute window during which further issuances for the same address and
// purpose are rejected. SetNX makes check-and-mark a single round trip.
func (t *IssueThrottle) Allow(ctx context.Context, email, purpose string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email, purpose), "1", issueWindow).Result()
	if err != nil {
		return false, fmt.Errorf("otp throttle: %w", err)
	}
	return ok, nil
}

func (t *IssueThrottle) key(email, purpose string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}
