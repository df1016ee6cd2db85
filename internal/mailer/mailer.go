// Package mailer defines the outbound mail collaborator consumed by the auth
// service. Wire-level delivery is deployment infrastructure; the in-tree
// implementation records sends on the application log.
package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer sends an HTML email to one or more recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// LogMailer is a Mailer that logs instead of delivering. Used in development
// and wherever no mail relay is configured.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a log-backed mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{
		logger: logger.With().Str("mailer", "log").Logger(),
	}
}

// Send records the outbound message on the log and reports success.
func (m *LogMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	m.logger.Info().
		Strs("to", to).
		Str("subject", subject).
		Int("body_bytes", len(htmlBody)).
		Msg("outbound email")
	return nil
}
