package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/billing"
	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/database"
	"github.com/bitraf/p2k12/internal/logger"
	"github.com/bitraf/p2k12/internal/mail"
	"github.com/bitraf/p2k12/internal/store"
)

var nagNegativeBalanceCmd = &cobra.Command{
	Use:   "nag-negative-balance",
	Short: "Nag members who owe money",
	Long: `Send a notice to every active member with a positive balance
(charges exceed payments). Wording is soft for small debts relative to
the member's rate and urgent beyond the credit thresholds.

If a single send fails the remaining batch is aborted. That is a
deliberate operational choice: a partial run that continues silently is
worse than one that stops where the operator can see it.`,
	RunE: runNagNegativeBalance,
}

func init() {
	rootCmd.AddCommand(nagNegativeBalanceCmd)

	nagNegativeBalanceCmd.Flags().Bool("dry-run", false, "Render notices but do not send mail")
}

func runNagNegativeBalance(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("nag-negative-balance")

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
	members := store.NewMemberStore(db)

	debtors, err := members.Debtors(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("debtors", len(debtors)).
		Bool("dry_run", dryRun).
		Msg("Starting negative-balance nags")

	for _, d := range debtors {
		price, err := members.Price(ctx, d.Account)
		if err != nil {
			return fmt.Errorf("failed to get membership price: %w", err)
		}

		urgent := billing.UrgentNag(d.Balance, price)

		body, err := mail.RenderBalanceNag(mail.BalanceData{
			Balance:  d.Balance.String(),
			UserName: d.UserName,
			Urgent:   urgent,
		})
		if err != nil {
			return err
		}

		err = sender.Send(ctx, mail.Message{
			ToName:  d.FullName,
			ToAddr:  d.Email,
			Subject: mail.BalanceSubject(),
			Body:    body,
		})
		if err != nil {
			// Abort the remaining batch on the first failed send.
			log.Error().Err(err).Str("recipient", d.Email).Msg("Mislyktes i å sende e-post")
			return err
		}

		log.Info().
			Str("member", d.FullName).
			Str("balance", d.Balance.String()).
			Bool("urgent", urgent).
			Msg("Nagged")
	}

	log.Info().Msg("Negative-balance nags completed")
	return nil
}
