package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bitraf/p2k12/internal/logger"
)

// Message is one plaintext notice addressed to a single member.
type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	Body    string
}

// Sender delivers notices. Delivery is synchronous and blocking; callers
// that must not continue past a failed send simply stop on the first
// returned error.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Discard logs notices instead of delivering them. It backs --dry-run
// and tests.
type Discard struct {
	log zerolog.Logger
}

func NewDiscard() *Discard {
	return &Discard{log: logger.WithComponent("mail-dry-run")}
}

func (d *Discard) Send(_ context.Context, msg Message) error {
	d.log.Info().
		Str("to", msg.ToAddr).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("Dry run, not sending")
	return nil
}
