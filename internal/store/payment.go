package store

import (
	"context"
	"database/sql"
	"fmt"
)

type PaymentStore struct {
	db *sql.DB
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// Count returns the number of payments recorded for the account. The
// billing job uses it as the index of the current billing period.
func (s *PaymentStore) Count(ctx context.Context, account int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE account = ?`, account).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

// MatchAccounts resolves a payer name, case-insensitively, against both
// member full names and registered account aliases. The caller decides
// what zero or multiple matches mean.
func (s *PaymentStore) MatchAccounts(ctx context.Context, payer string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account FROM active_members WHERE LOWER(full_name) = LOWER(?)
		 UNION
		 SELECT account FROM account_aliases WHERE LOWER(alias) = LOWER(?)`,
		payer, payer)
	if err != nil {
		return nil, fmt.Errorf("match payer name: %w", err)
	}
	defer rows.Close()

	var accounts []int64
	for rows.Next() {
		var account int64
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}
