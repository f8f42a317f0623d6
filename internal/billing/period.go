package billing

import "time"

// Period is a one-month billing window [From, To), anchored to the
// member's join-date day-of-month.
type Period struct {
	From time.Time
	To   time.Time
}

// PeriodFor computes billing period n for a member who joined on
// joinDate. Period 0 starts on the join date's day-of-month, capped at 28
// so every month has the day; period n starts n months later on the same
// capped day. n is the count of payments already recorded, so the member
// stays pinned to an unpaid period until its payment is reconciled.
func PeriodFor(joinDate time.Time, n int) Period {
	day := joinDate.Day()
	if day > 28 {
		day = 28
	}

	from := time.Date(joinDate.Year(), joinDate.Month()+time.Month(n), day, 0, 0, 0, 0, joinDate.Location())
	to := time.Date(joinDate.Year(), joinDate.Month()+time.Month(n+1), day, 0, 0, 0, 0, joinDate.Location())

	return Period{From: from, To: to}
}

// Contains reports whether t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// LastDay is the final day covered by the period, one day before To.
func (p Period) LastDay() time.Time {
	return p.To.AddDate(0, 0, -1)
}
