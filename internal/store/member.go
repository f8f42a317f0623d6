package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitraf/p2k12/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	err := scanner.Scan(&m.Account, &m.UserName, &m.FullName, &m.Email, &m.Type, &m.Price)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `am.account, am.name, am.full_name, am.email, am.type, mi.price`

// ActiveMonthly returns every active member whose membership type imposes
// recurring monthly dues, ordered by full name.
func (s *MemberStore) ActiveMonthly(ctx context.Context) ([]model.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberCols+`
		 FROM active_members am
		 INNER JOIN membership_infos mi ON mi.name = am.type
		 WHERE mi.recurrence = '1 month'
		 ORDER BY am.full_name`)
	if err != nil {
		return nil, fmt.Errorf("query active monthly members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// NewSinceLastRun returns active monthly members whose first member row is
// dated after the most recent billing run and who had none at or before it.
// With no billing run recorded yet, no accounts match.
func (s *MemberStore) NewSinceLastRun(ctx context.Context) ([]model.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberCols+`
		 FROM active_members am
		 INNER JOIN membership_infos mi ON mi.name = am.type
		 WHERE am.account IN (
		     SELECT account FROM members
		     WHERE date > (SELECT MAX(time) FROM billing_runs)
		       AND account NOT IN (
		           SELECT account FROM members
		           WHERE date <= (SELECT MAX(time) FROM billing_runs)))
		   AND mi.recurrence = '1 month'
		 ORDER BY am.full_name`)
	if err != nil {
		return nil, fmt.Errorf("query new members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// JoinDate returns the earliest member row date for the account.
func (s *MemberStore) JoinDate(ctx context.Context, account int64) (time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(date) FROM members WHERE account = ?`, account).Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("query join date: %w", err)
	}
	if !raw.Valid {
		return time.Time{}, fmt.Errorf("account %d has no member rows", account)
	}
	return parseTime(raw.String)
}

// Price returns the monthly dues for the account's current membership type.
func (s *MemberStore) Price(ctx context.Context, account int64) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		`SELECT price FROM active_members WHERE account = ?`, account).Scan(&price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("query membership price: %w", err)
	}
	return price, nil
}

// Debtors returns every active member whose balance is positive (owes money).
func (s *MemberStore) Debtors(ctx context.Context) ([]model.Debtor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ub.id, ub.balance, am.full_name, am.email, am.name
		 FROM user_balances ub
		 INNER JOIN active_members am ON am.account = ub.id
		 WHERE ub.balance > 0`)
	if err != nil {
		return nil, fmt.Errorf("query debtors: %w", err)
	}
	defer rows.Close()

	var debtors []model.Debtor
	for rows.Next() {
		var d model.Debtor
		if err := rows.Scan(&d.Account, &d.Balance, &d.FullName, &d.Email, &d.UserName); err != nil {
			return nil, fmt.Errorf("scan debtor: %w", err)
		}
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}
