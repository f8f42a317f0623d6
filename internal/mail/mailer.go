package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Config holds the shared SMTP submission settings, injected at process
// start rather than read per job.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	FromAddr string
}

// Mailer sends notices over authenticated SMTP as UTF-8 plaintext with
// 8bit content transfer encoding.
type Mailer struct {
	client   *gomail.Client
	fromName string
	fromAddr string
}

func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer not configured: missing SMTP host")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{
		client:   client,
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddr,
	}, nil
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm := gomail.NewMsg()
	mm.SetCharset(gomail.CharsetUTF8)
	mm.SetEncoding(gomail.NoEncoding) // 8bit

	if err := mm.FromFormat(m.fromName, m.fromAddr); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := mm.AddToFormat(msg.ToName, msg.ToAddr); err != nil {
		return fmt.Errorf("set recipient %q: %w", msg.ToAddr, err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send to %s: %w", msg.ToAddr, err)
	}
	return nil
}
