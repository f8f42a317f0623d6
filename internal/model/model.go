package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is an active member row joined with the dues rate table.
type Member struct {
	Account  int64
	UserName string
	FullName string
	Email    string
	Type     string
	Price    decimal.Decimal
}

// Invoice is a monthly dues invoice covering a one-month billing window
// [PeriodFrom, PeriodTo). PaidDate is nil while the invoice is outstanding.
type Invoice struct {
	ID         int64
	Account    int64
	IssueDate  time.Time
	PeriodFrom time.Time
	PeriodTo   time.Time
	PayBy      time.Time
	Amount     decimal.Decimal
	PaidDate   *time.Time
}

// Paid reports whether a payment has been registered for the invoice.
func (i *Invoice) Paid() bool {
	return i.PaidDate != nil
}

// Debtor is an active member with a positive balance (owes money).
type Debtor struct {
	Account  int64
	Balance  decimal.Decimal
	FullName string
	Email    string
	UserName string
}

// OverdueInvoice is an unpaid invoice past its pay-by date, joined with
// the member it belongs to for reminder rendering.
type OverdueInvoice struct {
	InvoiceID int64
	Account   int64
	FullName  string
	UserName  string
	Email     string
	Type      string
	PayBy     time.Time
	Amount    decimal.Decimal
}
