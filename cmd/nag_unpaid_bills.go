package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/billing"
	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/database"
	"github.com/bitraf/p2k12/internal/logger"
	"github.com/bitraf/p2k12/internal/mail"
	"github.com/bitraf/p2k12/internal/store"
)

var nagUnpaidBillsCmd = &cobra.Command{
	Use:   "nag-unpaid-bills",
	Short: "Remind members about unpaid invoices past their pay-by date",
	Long: `Select every unpaid invoice whose pay-by date has passed, for
recognized membership types, and send one reminder per invoice
referencing the original amount and due date. Like nag-negative-balance,
the batch aborts on the first failed send.`,
	RunE: runNagUnpaidBills,
}

func init() {
	rootCmd.AddCommand(nagUnpaidBillsCmd)

	nagUnpaidBillsCmd.Flags().Bool("dry-run", false, "Render notices but do not send mail")
}

func runNagUnpaidBills(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("nag-unpaid-bills")

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load()
	if err != nil {
		return err
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
	invoices := store.NewInvoiceStore(db)

	now := time.Now()

	overdue, err := invoices.UnpaidOverdue(ctx, billing.MonthlyTypes(), now)
	if err != nil {
		return err
	}

	log.Info().
		Int("invoices", len(overdue)).
		Bool("dry_run", dryRun).
		Msg("Starting unpaid-bill reminders")

	for _, o := range overdue {
		body, err := mail.RenderReminder(mail.ReminderData{
			Today:         mail.FormatDate(now),
			FullName:      o.FullName,
			UserName:      o.UserName,
			OriginalPayBy: mail.FormatDate(o.PayBy),
			Amount:        o.Amount.String(),
		})
		if err != nil {
			return err
		}

		err = sender.Send(ctx, mail.Message{
			ToName:  o.FullName,
			ToAddr:  o.Email,
			Subject: mail.ReminderSubject(),
			Body:    body,
		})
		if err != nil {
			// Abort the remaining batch on the first failed send.
			log.Error().Err(err).Str("recipient", o.Email).Msg("Mislyktes i å sende e-post")
			return err
		}

		log.Info().
			Str("member", o.FullName).
			Int64("invoice", o.InvoiceID).
			Str("pay_by", o.PayBy.Format("2006-01-02")).
			Msg("Reminded")
	}

	log.Info().Msg("Unpaid-bill reminders completed")
	return nil
}
