package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name     string
		joinDate time.Time
		n        int
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "first period starts on join day",
			joinDate: date(2013, time.January, 15),
			n:        0,
			wantFrom: date(2013, time.January, 15),
			wantTo:   date(2013, time.February, 15),
		},
		{
			name:     "advanced by payment count",
			joinDate: date(2013, time.January, 15),
			n:        2,
			wantFrom: date(2013, time.March, 15),
			wantTo:   date(2013, time.April, 15),
		},
		{
			name:     "day of month capped at 28",
			joinDate: date(2013, time.January, 31),
			n:        0,
			wantFrom: date(2013, time.January, 28),
			wantTo:   date(2013, time.February, 28),
		},
		{
			name:     "capped day across short february",
			joinDate: date(2013, time.August, 30),
			n:        6,
			wantFrom: date(2014, time.February, 28),
			wantTo:   date(2014, time.March, 28),
		},
		{
			name:     "year rollover",
			joinDate: date(2013, time.December, 10),
			n:        1,
			wantFrom: date(2014, time.January, 10),
			wantTo:   date(2014, time.February, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeriodFor(tt.joinDate, tt.n)
			if !p.From.Equal(tt.wantFrom) {
				t.Errorf("From = %v, want %v", p.From, tt.wantFrom)
			}
			if !p.To.Equal(tt.wantTo) {
				t.Errorf("To = %v, want %v", p.To, tt.wantTo)
			}
		})
	}
}

func TestPeriodLastDay(t *testing.T) {
	p := PeriodFor(date(2013, time.January, 15), 0)

	want := date(2013, time.February, 14)
	if !p.LastDay().Equal(want) {
		t.Errorf("LastDay = %v, want %v", p.LastDay(), want)
	}
}

func TestPeriodContains(t *testing.T) {
	p := PeriodFor(date(2013, time.January, 15), 0)

	if !p.Contains(date(2013, time.January, 15)) {
		t.Error("period should contain its start")
	}
	if !p.Contains(date(2013, time.February, 14)) {
		t.Error("period should contain its last day")
	}
	if p.Contains(date(2013, time.February, 15)) {
		t.Error("period end is exclusive")
	}
	if p.Contains(date(2013, time.January, 14)) {
		t.Error("period should not contain days before its start")
	}
}
