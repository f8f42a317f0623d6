package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitraf/p2k12/internal/model"
)

// Action is the outcome of the per-member billing decision.
type Action int

const (
	// ActionBill creates a new invoice and sends a dues notice.
	ActionBill Action = iota
	// ActionRemind sends a reminder for an existing overdue invoice.
	ActionRemind
	// SkipPaidAhead means the current period has not started yet.
	SkipPaidAhead
	// SkipWaiting means an invoice for the period exists and is not yet
	// considered overdue.
	SkipWaiting
	// SkipBilledTwice flags more than one invoice for the same period, an
	// anomaly left for manual review.
	SkipBilledTwice
	// SkipUnknownType means the membership type has no dues rate.
	SkipUnknownType
)

// Status is the audit string logged per member.
func (a Action) Status() string {
	switch a {
	case ActionBill:
		return "billed"
	case ActionRemind:
		return "billed, unpaid"
	case SkipPaidAhead:
		return "paid ahead"
	case SkipWaiting:
		return "already billed, waiting"
	case SkipBilledTwice:
		return "billed twice"
	case SkipUnknownType:
		return "unrecognized membership type"
	}
	return "unknown"
}

// Decision describes what the billing job should do for one member.
type Decision struct {
	Action Action
	Period Period

	// Amount and PayBy are set for ActionBill.
	Amount decimal.Decimal
	PayBy  time.Time

	// Prior is the overdue invoice for ActionRemind. The reminder
	// references its original pay-by date; payment is due immediately.
	Prior *model.Invoice
}

// overdueGrace is how far past its pay-by date an invoice must be before
// the member gets a reminder rather than a "waiting" skip.
const overdueGrace = 3 * 24 * time.Hour

// Classify applies the billing decision policy for one member: skip if
// paid ahead, classify existing invoices covering the period, otherwise
// bill. existing must be the invoices for exactly p's window. An unpaid
// invoice for an earlier period does not suppress evaluation; the period
// index already pins the member there.
func Classify(membershipType string, p Period, existing []model.Invoice, today time.Time) Decision {
	if p.From.After(today) {
		return Decision{Action: SkipPaidAhead, Period: p}
	}

	if len(existing) > 1 {
		return Decision{Action: SkipBilledTwice, Period: p}
	}

	if len(existing) == 1 {
		prior := existing[0]
		if today.Sub(prior.PayBy) > overdueGrace {
			return Decision{Action: ActionRemind, Period: p, Amount: prior.Amount, Prior: &prior}
		}
		return Decision{Action: SkipWaiting, Period: p}
	}

	amount, ok := MonthlyDues(membershipType)
	if !ok {
		return Decision{Action: SkipUnknownType, Period: p}
	}

	payBy := today.AddDate(0, 0, 7)
	if payBy.After(p.To) {
		payBy = p.To
	}

	return Decision{Action: ActionBill, Period: p, Amount: amount, PayBy: payBy}
}
