package cmd

import (
	"fmt"

	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/mail"
)

// newSender builds the mail sender shared by the notice-sending jobs.
// SMTP credentials are injected from config at process start; --dry-run
// substitutes a sender that only logs.
func newSender(cfg *config.Config, dryRun bool) (mail.Sender, error) {
	if dryRun {
		return mail.NewDiscard(), nil
	}
	if !cfg.SMTPConfigured() {
		return nil, fmt.Errorf("SMTP is not configured; set P2K12_SMTP_HOST or run with --dry-run")
	}
	return mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.FromName,
		FromAddr: cfg.FromAddress,
	})
}
