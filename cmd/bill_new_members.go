package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/database"
	"github.com/bitraf/p2k12/internal/logger"
	"github.com/bitraf/p2k12/internal/mail"
	"github.com/bitraf/p2k12/internal/selfservice"
	"github.com/bitraf/p2k12/internal/store"
)

var billNewMembersCmd = &cobra.Command{
	Use:   "bill-new-members",
	Short: "Send first invoices to members who joined since the last run",
	Long: `Select accounts whose first member row is dated after the most
recent billing run and that had no rows at or before it, i.e. strictly
new members. Each gets a welcome notice with their first invoice and a
signed self-service link. A new billing-run marker is recorded on
completion so the next run picks up from now.`,
	RunE: runBillNewMembers,
}

func init() {
	rootCmd.AddCommand(billNewMembersCmd)

	billNewMembersCmd.Flags().Bool("dry-run", false, "Render notices but do not send mail or record the billing run")
}

func runBillNewMembers(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("bill-new-members")

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	secret, err := os.ReadFile(cfg.SecretPath)
	if err != nil {
		return fmt.Errorf("read secret file: %w", err)
	}

	sender, err := newSender(cfg, dryRun)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	members := store.NewMemberStore(db)
	runs := store.NewBillingRunStore(db)

	now := time.Now()

	lastRun, err := runs.Latest(ctx)
	if err != nil {
		return err
	}
	if lastRun == nil {
		log.Warn().Msg("No billing run recorded yet; no accounts will match until a marker exists")
	}

	newMembers, err := members.NewSinceLastRun(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("members", len(newMembers)).
		Bool("dry_run", dryRun).
		Msg("Starting new-member billing")

	month := mail.MonthName(now.Month())

	for _, m := range newMembers {
		body, err := mail.RenderWelcome(mail.WelcomeData{
			Today:     mail.FormatDate(now),
			Month:     month,
			FullName:  m.FullName,
			Amount:    m.Price.String(),
			MemberURL: selfservice.MemberURL(cfg.BaseURL, m.Account, secret),
		})
		if err != nil {
			return err
		}

		err = sender.Send(ctx, mail.Message{
			ToName:  m.FullName,
			ToAddr:  m.Email,
			Subject: mail.DuesSubject(month),
			Body:    body,
		})
		if err != nil {
			log.Error().Err(err).Str("member", m.FullName).Msg("Failed to send welcome notice")
			continue
		}

		log.Info().
			Str("member", m.FullName).
			Int64("account", m.Account).
			Str("status", "welcomed").
			Msg("Member evaluated")
	}

	if dryRun {
		log.Info().Msg("Dry run, not recording billing run")
		return nil
	}

	if err := runs.Insert(ctx, now); err != nil {
		return err
	}

	log.Info().Msg("New-member billing completed")
	return nil
}
