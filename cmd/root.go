package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitraf/p2k12/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "p2k12-billing",
	Short: "p2k12 billing - membership billing batch jobs for Bitraf",
	Long: `p2k12 billing is a collection of batch jobs for Bitraf's membership
billing: monthly dues invoices, first invoices for new members, payment
reminders, debt nags and bank statement reconciliation.

Each subcommand is an independent run-to-completion job meant to be
invoked from cron or by an operator. Database and SMTP settings come
from the environment (see .env.example).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("p2k12 billing jobs")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
