package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them. Used in
// development when no SMTP host is configured; the code being "delivered"
// ends up in the server log.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail (log sink)")
	return nil
}
