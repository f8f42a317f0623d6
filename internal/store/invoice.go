package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bitraf/p2k12/internal/model"
)

type InvoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

const invoiceCols = `id, account, issue_date, period_from, period_to, pay_by, amount`

func scanInvoice(scanner interface{ Scan(...any) error }) (*model.Invoice, error) {
	var inv model.Invoice
	var issueDate, periodFrom, periodTo, payBy string
	var paidDate sql.NullString
	err := scanner.Scan(&inv.ID, &inv.Account, &issueDate, &periodFrom, &periodTo, &payBy, &inv.Amount, &paidDate)
	if err != nil {
		return nil, err
	}
	if inv.IssueDate, err = parseDate(issueDate); err != nil {
		return nil, err
	}
	if inv.PeriodFrom, err = parseDate(periodFrom); err != nil {
		return nil, err
	}
	if inv.PeriodTo, err = parseDate(periodTo); err != nil {
		return nil, err
	}
	if inv.PayBy, err = parseDate(payBy); err != nil {
		return nil, err
	}
	if paidDate.Valid {
		t, err := parseDate(paidDate.String)
		if err != nil {
			return nil, err
		}
		inv.PaidDate = &t
	}
	return &inv, nil
}

// Covering returns every invoice issued to the account for exactly the
// given billing period. More than one row is the "billed twice" anomaly.
func (s *InvoiceStore) Covering(ctx context.Context, account int64, periodFrom, periodTo time.Time) ([]model.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+invoiceCols+`, paid_date FROM member_invoices
		 WHERE account = ? AND period_from = ? AND period_to = ?
		 ORDER BY id`,
		account, formatDate(periodFrom), formatDate(periodTo))
	if err != nil {
		return nil, fmt.Errorf("query invoices for period: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// Create inserts a new outstanding invoice and returns its id.
func (s *InvoiceStore) Create(ctx context.Context, inv model.Invoice) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO member_invoices (account, issue_date, period_from, period_to, pay_by, amount)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Account, formatDate(inv.IssueDate), formatDate(inv.PeriodFrom),
		formatDate(inv.PeriodTo), formatDate(inv.PayBy), inv.Amount)
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UnpaidOverdue returns unpaid invoices whose pay-by date is before now,
// belonging to active members of one of the given membership types.
func (s *InvoiceStore) UnpaidOverdue(ctx context.Context, types []string, now time.Time) ([]model.OverdueInvoice, error) {
	if len(types) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(types)-1) + "?"
	args := make([]any, 0, len(types)+1)
	for _, t := range types {
		args = append(args, t)
	}
	args = append(args, formatDate(now))

	rows, err := s.db.QueryContext(ctx,
		`SELECT mi.id, mi.account, am.full_name, am.name, am.email, am.type, mi.pay_by, mi.amount
		 FROM member_invoices mi
		 INNER JOIN active_members am ON am.account = mi.account
		 WHERE am.type IN (`+placeholders+`) AND mi.paid_date IS NULL AND mi.pay_by < ?
		 ORDER BY am.full_name`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query unpaid invoices: %w", err)
	}
	defer rows.Close()

	var overdue []model.OverdueInvoice
	for rows.Next() {
		var (
			o     model.OverdueInvoice
			payBy string
		)
		if err := rows.Scan(&o.InvoiceID, &o.Account, &o.FullName, &o.UserName, &o.Email, &o.Type, &payBy, &o.Amount); err != nil {
			return nil, fmt.Errorf("scan overdue invoice: %w", err)
		}
		if o.PayBy, err = parseDate(payBy); err != nil {
			return nil, err
		}
		overdue = append(overdue, o)
	}
	return overdue, rows.Err()
}
