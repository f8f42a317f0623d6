package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/bank"
	"github.com/bitraf/p2k12/internal/config"
	"github.com/bitraf/p2k12/internal/database"
	"github.com/bitraf/p2k12/internal/logger"
	"github.com/bitraf/p2k12/internal/store"
)

var processPaymentsCmd = &cobra.Command{
	Use:   "process-payments",
	Short: "Propose payment SQL from a bank statement export",
	Long: `Read the bank's semicolon-delimited transaction export, match each
unprocessed record's payer name against member names and aliases, and
print INSERT statements for the matched payments to stdout, wrapped in a
transaction.

The SQL is never executed by this job. A human reviews the output and
applies it; unmatched and ambiguous payers appear as comments in the
stream so they are seen during review.`,
	Example: `  # Reconcile the default export in the working directory
  p2k12-billing process-payments > payments.sql

  # Reconcile another export
  p2k12-billing process-payments --file statements/2026-08.txt`,
	RunE: runProcessPayments,
}

func init() {
	rootCmd.AddCommand(processPaymentsCmd)

	processPaymentsCmd.Flags().String("file", "", "Statement file to read (default from P2K12_STATEMENT_FILE)")
}

func runProcessPayments(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process-payments")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = cfg.StatementFile
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open statement file: %w", err)
	}
	defer f.Close()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	records, err := bank.ParseStatement(f)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("Statement parsed")

	reconciler := bank.NewReconciler(store.NewPaymentStore(db))
	if err := reconciler.Emit(ctx, records, os.Stdout); err != nil {
		return err
	}

	log.Info().Msg("Reconciliation SQL emitted")
	return nil
}
