package bank

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/bitraf/p2k12/internal/logger"
)

// AccountMatcher resolves a payer name to account ids, case-insensitively
// against both member names and aliases.
type AccountMatcher interface {
	MatchAccounts(ctx context.Context, payer string) ([]int64, error)
}

// Reconciler turns eligible statement records into payment INSERT
// statements. The SQL is emitted, never executed: a human reviews and
// applies it, so a bad name match can't move money by itself.
type Reconciler struct {
	matcher AccountMatcher
	log     zerolog.Logger
}

func NewReconciler(matcher AccountMatcher) *Reconciler {
	return &Reconciler{
		matcher: matcher,
		log:     logger.WithComponent("bank-reconcile"),
	}
}

// Emit writes the proposed reconciliation SQL for the records to w,
// wrapped in a transaction. Records that are not marked unprocessed are
// skipped silently; unmatched and ambiguous payer names are skipped with
// a diagnostic comment so the reviewer sees them in context.
func (r *Reconciler) Emit(ctx context.Context, records []Record, w io.Writer) error {
	// The paid dates are forwarded verbatim from the export.
	fmt.Fprintln(w, "SET DATESTYLE TO German;")
	fmt.Fprintln(w, "SET TIMEZONE TO CET;")
	fmt.Fprintln(w, "BEGIN;")

	for _, rec := range records {
		if !rec.Eligible() {
			continue
		}

		accounts, err := r.matcher.MatchAccounts(ctx, rec.Payer)
		if err != nil {
			return fmt.Errorf("line %d: %w", rec.Line, err)
		}

		switch len(accounts) {
		case 0:
			r.log.Warn().Int("line", rec.Line).Str("payer", rec.Payer).Msg("No match for payer")
			fmt.Fprintf(w, "-- No match for %s\n", rec.Payer)
			continue
		case 1:
			// fall through to emit
		default:
			r.log.Warn().Int("line", rec.Line).Str("payer", rec.Payer).Int("matches", len(accounts)).Msg("Several matches for payer")
			fmt.Fprintf(w, "-- Several matches for %s\n", rec.Payer)
			continue
		}

		amount, err := NormalizeAmount(rec.RawAmount)
		if err != nil {
			return fmt.Errorf("line %d: %w", rec.Line, err)
		}

		fmt.Fprintf(w, "INSERT INTO payments (paid_date, account, amount) VALUES ('%s', %d, %s); -- %s\n",
			rec.PaidDate, accounts[0], amount, rec.Payer)
	}

	fmt.Fprintln(w, "COMMIT;")
	return nil
}
