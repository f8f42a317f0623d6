package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitraf/p2k12/internal/model"
)

func testInvoice(account int64) model.Invoice {
	return model.Invoice{
		Account:    account,
		IssueDate:  time.Date(2026, time.August, 29, 0, 0, 0, 0, time.Local),
		PeriodFrom: time.Date(2026, time.August, 15, 0, 0, 0, 0, time.Local),
		PeriodTo:   time.Date(2026, time.September, 15, 0, 0, 0, 0, time.Local),
		PayBy:      time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local),
		Amount:     decimal.NewFromInt(500),
	}
}

func TestInvoiceCreateAndCovering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ola := seedAccount(t, db, "ola")
	s := NewInvoiceStore(db)

	inv := testInvoice(ola)
	id, err := s.Create(ctx, inv)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero invoice id")
	}

	got, err := s.Covering(ctx, ola, inv.PeriodFrom, inv.PeriodTo)
	if err != nil {
		t.Fatalf("covering: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d invoices, want 1", len(got))
	}
	if !got[0].PeriodFrom.Equal(inv.PeriodFrom) || !got[0].PeriodTo.Equal(inv.PeriodTo) {
		t.Errorf("period = [%v, %v), want [%v, %v)", got[0].PeriodFrom, got[0].PeriodTo, inv.PeriodFrom, inv.PeriodTo)
	}
	if !got[0].PayBy.Equal(inv.PayBy) {
		t.Errorf("pay_by = %v, want %v", got[0].PayBy, inv.PayBy)
	}
	if !got[0].Amount.Equal(inv.Amount) {
		t.Errorf("amount = %s, want %s", got[0].Amount, inv.Amount)
	}
	if got[0].Paid() {
		t.Error("new invoice should be outstanding")
	}
}

func TestInvoiceCoveringExactPeriodOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ola := seedAccount(t, db, "ola")
	s := NewInvoiceStore(db)

	inv := testInvoice(ola)
	if _, err := s.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	// The adjacent period has no invoice.
	got, err := s.Covering(ctx, ola, inv.PeriodTo, inv.PeriodTo.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("covering: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d invoices for adjacent period, want 0", len(got))
	}
}

func TestInvoiceCoveringDetectsDoubleBilling(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ola := seedAccount(t, db, "ola")
	s := NewInvoiceStore(db)

	inv := testInvoice(ola)
	for i := 0; i < 2; i++ {
		if _, err := s.Create(ctx, inv); err != nil {
			t.Fatalf("create invoice: %v", err)
		}
	}

	got, err := s.Covering(ctx, ola, inv.PeriodFrom, inv.PeriodTo)
	if err != nil {
		t.Fatalf("covering: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d invoices, want 2 (the billed-twice anomaly)", len(got))
	}
}

func TestUnpaidOverdue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.Local)

	ola := seedAccount(t, db, "ola")
	seedMember(t, db, ola, "2013-01-15 12:00:00", "Ola Nordmann", "ola@example.com", "aktiv")
	mustExec(t, db, `INSERT INTO member_invoices (account, issue_date, period_from, period_to, pay_by, amount)
	                 VALUES (?, '2026-07-15', '2026-07-15', '2026-08-15', '2026-07-22', 500)`, ola)

	// Paid invoices are not reminded about.
	kari := seedAccount(t, db, "kari")
	seedMember(t, db, kari, "2013-01-20 12:00:00", "Kari Nordmann", "kari@example.com", "støtte")
	mustExec(t, db, `INSERT INTO member_invoices (account, issue_date, period_from, period_to, pay_by, amount, paid_date)
	                 VALUES (?, '2026-07-20', '2026-07-20', '2026-08-20', '2026-07-27', 300, '2026-07-25')`, kari)

	// Invoices not yet due are not reminded about.
	per := seedAccount(t, db, "per")
	seedMember(t, db, per, "2013-02-01 12:00:00", "Per Hansen", "per@example.com", "aktiv")
	mustExec(t, db, `INSERT INTO member_invoices (account, issue_date, period_from, period_to, pay_by, amount)
	                 VALUES (?, '2026-08-25', '2026-08-15', '2026-09-15', '2026-09-01', 500)`, per)

	overdue, err := NewInvoiceStore(db).UnpaidOverdue(ctx, []string{"aktiv", "filantrop", "støtte"}, now)
	if err != nil {
		t.Fatalf("unpaid overdue: %v", err)
	}
	if len(overdue) != 1 {
		t.Fatalf("got %d overdue invoices, want 1", len(overdue))
	}
	if overdue[0].FullName != "Ola Nordmann" {
		t.Errorf("member = %q, want Ola Nordmann", overdue[0].FullName)
	}
	if !overdue[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("amount = %s, want 500", overdue[0].Amount)
	}
	if overdue[0].PayBy.Format("2006-01-02") != "2026-07-22" {
		t.Errorf("pay_by = %v, want 2026-07-22", overdue[0].PayBy)
	}
}

func TestUnpaidOverdueFiltersMembershipTypes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.Local)

	per := seedAccount(t, db, "per")
	seedMember(t, db, per, "2013-02-01 12:00:00", "Per Hansen", "per@example.com", "p2k12")
	mustExec(t, db, `INSERT INTO member_invoices (account, issue_date, period_from, period_to, pay_by, amount)
	                 VALUES (?, '2026-07-15', '2026-07-15', '2026-08-15', '2026-07-22', 35)`, per)

	overdue, err := NewInvoiceStore(db).UnpaidOverdue(ctx, []string{"aktiv", "filantrop", "støtte"}, now)
	if err != nil {
		t.Fatalf("unpaid overdue: %v", err)
	}
	if len(overdue) != 0 {
		t.Errorf("got %d overdue invoices, want 0 for unrecognized type", len(overdue))
	}
}
