package ports

import "context"

// Mailer is the notification sink used by the auth flow to deliver
// verification and login codes. Delivery failures are surfaced to the
// caller; the auth service decides whether to compensate.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
