package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/billing"
	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/database"
	"github.com/bitraf/p2k12/internal/logger"
	"github.com/bitraf/p2k12/internal/mail"
	"github.com/bitraf/p2k12/internal/model"
	"github.com/bitraf/p2k12/internal/selfservice"
	"github.com/bitraf/p2k12/internal/store"
)

var billMembersCmd = &cobra.Command{
	Use:   "bill-members",
	Short: "Send monthly dues invoices and overdue reminders",
	Long: `Evaluate every active monthly member against their current billing
period. Members with no invoice for the period get a new invoice and a
dues notice; members whose invoice is more than three days past its
pay-by date get a reminder instead. Members billed twice for the same
period are flagged for manual review and skipped.

The billing period is a one-month window anchored to the join date's
day-of-month (capped at 28), advanced by the number of payments already
recorded for the account.`,
	Example: `  # Normal monthly run
  p2k12-billing bill-members

  # Inspect what would be billed without sending or inserting anything
  p2k12-billing bill-members --dry-run`,
	RunE: runBillMembers,
}

func init() {
	rootCmd.AddCommand(billMembersCmd)

	billMembersCmd.Flags().Bool("dry-run", false, "Render notices but do not send mail or insert invoices")
}

func runBillMembers(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("bill-members")

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
	invoices := store.NewInvoiceStore(db)
	payments := store.NewPaymentStore(db)

	today := time.Now()

	active, err := members.ActiveMonthly(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("members", len(active)).
		Bool("dry_run", dryRun).
		Msg("Starting monthly billing")

	for _, m := range active {
		joinDate, err := members.JoinDate(ctx, m.Account)
		if err != nil {
			return err
		}

		paid, err := payments.Count(ctx, m.Account)
		if err != nil {
			return err
		}

		period := billing.PeriodFor(joinDate, paid)

		existing, err := invoices.Covering(ctx, m.Account, period.From, period.To)
		if err != nil {
			return err
		}

		decision := billing.Classify(m.Type, period, existing, today)

		// Per-member audit line.
		event := log.Info()
		if decision.Action == billing.SkipBilledTwice {
			event = log.Warn()
		}
		event.
			Str("member", m.FullName).
			Int64("account", m.Account).
			Str("period_from", period.From.Format("2006-01-02")).
			Str("status", decision.Action.Status()).
			Msg("Member evaluated")

		switch decision.Action {
		case billing.ActionBill:
			if err := billMember(ctx, sender, cfg, secret, m, decision, today); err != nil {
				log.Error().Err(err).Str("member", m.FullName).Msg("Failed to send dues notice, invoice not recorded")
				continue
			}
			if dryRun {
				continue
			}
			_, err := invoices.Create(ctx, model.Invoice{
				Account:    m.Account,
				IssueDate:  today,
				PeriodFrom: decision.Period.From,
				PeriodTo:   decision.Period.To,
				PayBy:      decision.PayBy,
				Amount:     decision.Amount,
			})
			if err != nil {
				return err
			}

		case billing.ActionRemind:
			if err := remindMember(ctx, sender, m, decision, today); err != nil {
				log.Error().Err(err).Str("member", m.FullName).Msg("Failed to send reminder")
				continue
			}
		}
	}

	log.Info().Msg("Monthly billing completed")
	return nil
}

func billMember(ctx context.Context, sender mail.Sender, cfg *config.Config, secret []byte, m model.Member, d billing.Decision, today time.Time) error {
	body, err := mail.RenderInvoice(mail.InvoiceData{
		Today:     mail.FormatDate(today),
		Month:     mail.MonthName(d.Period.From.Month()),
		FullName:  m.FullName,
		PayBy:     mail.FormatDate(d.PayBy),
		Amount:    d.Amount.String(),
		MemberURL: selfservice.MemberURL(cfg.BaseURL, m.Account, secret),
	})
	if err != nil {
		return err
	}

	return sender.Send(ctx, mail.Message{
		ToName:  m.FullName,
		ToAddr:  m.Email,
		Subject: mail.DuesSubject(mail.MonthName(d.Period.From.Month())),
		Body:    body,
	})
}

func remindMember(ctx context.Context, sender mail.Sender, m model.Member, d billing.Decision, today time.Time) error {
	body, err := mail.RenderReminder(mail.ReminderData{
		Today:         mail.FormatDate(today),
		FullName:      m.FullName,
		UserName:      m.UserName,
		OriginalPayBy: mail.FormatDate(d.Prior.PayBy),
		Amount:        d.Prior.Amount.String(),
	})
	if err != nil {
		return err
	}

	return sender.Send(ctx, mail.Message{
		ToName:  m.FullName,
		ToAddr:  m.Email,
		Subject: mail.ReminderSubject(),
		Body:    body,
	})
}
