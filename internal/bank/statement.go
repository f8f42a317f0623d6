// Package bank ingests the semicolon-delimited transaction export from
// the bank and proposes payment reconciliation SQL for human review.
package bank

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bitraf/p2k12/internal/logger"
)

// UnprocessedMarker is the literal status the bank puts on transactions
// that have not been handled yet. Only records carrying it are eligible
// for reconciliation.
const UnprocessedMarker = "Ikke behandlet"

// Field positions in the export. The format is fixed; there is no header
// row and no quoting.
const (
	fieldPayer  = 0
	fieldDate   = 4
	fieldAmount = 5
	fieldStatus = 8
	minFields   = 9
)

// Record is one statement line. PaidDate and RawAmount are kept verbatim;
// the amount is normalized only when the record is actually reconciled.
type Record struct {
	Line      int
	Payer     string
	PaidDate  string
	RawAmount string
	Status    string
}

// Eligible reports whether the record is still marked unprocessed by the
// bank.
func (r *Record) Eligible() bool {
	return r.Status == UnprocessedMarker
}

// ParseStatement reads the semicolon-delimited export. Blank lines are
// ignored; lines with too few fields are diagnosed by line number and
// skipped.
func ParseStatement(r io.Reader) ([]Record, error) {
	const op = "ParseStatement"
	log := logger.WithComponent("bank-statement")

	var records []Record
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < minFields {
			log.Warn().
				Int("line", lineNum).
				Int("fields", len(fields)).
				Msg("Skipping statement line with insufficient fields")
			continue
		}

		records = append(records, Record{
			Line:      lineNum,
			Payer:     fields[fieldPayer],
			PaidDate:  fields[fieldDate],
			RawAmount: fields[fieldAmount],
			Status:    fields[fieldStatus],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: read statement: %w", op, err)
	}

	return records, nil
}

// NormalizeAmount converts a European-formatted amount to a decimal:
// thousands-separator dots are removed and the decimal comma becomes a
// point, so "1.234,56" parses as 1234.56.
func NormalizeAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("normalize amount %q: %w", raw, err)
	}
	return amount, nil
}
