package store

import (
	"database/sql"
	"testing"

	"github.com/bitraf/p2k12/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %s: %v", query, err)
	}
}

func seedAccount(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	result, err := db.Exec(`INSERT INTO accounts (name, type) VALUES (?, 'user')`, name)
	if err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("account id: %v", err)
	}
	return id
}

func seedMember(t *testing.T, db *sql.DB, account int64, date, fullName, email, membershipType string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO members (date, full_name, email, type, account) VALUES (?, ?, ?, ?, ?)`,
		date, fullName, email, membershipType, account)
	if err != nil {
		t.Fatalf("seed member %s: %v", fullName, err)
	}
}

func seedPayment(t *testing.T, db *sql.DB, account int64, paidDate string, amount int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO payments (account, paid_date, amount) VALUES (?, ?, ?)`,
		account, paidDate, amount)
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func seedAlias(t *testing.T, db *sql.DB, account int64, alias string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO account_aliases (account, alias) VALUES (?, ?)`,
		account, alias)
	if err != nil {
		t.Fatalf("seed alias %s: %v", alias, err)
	}
}
