package billing

import "github.com/shopspring/decimal"

// Monthly dues per membership type. Invoice amounts are fixed by the
// member's type at creation time and never retroactively adjusted.
// Types not listed here (including 'p2k12' day passes) are never billed
// monthly.
var rates = map[string]decimal.Decimal{
	"aktiv":     decimal.NewFromInt(500),
	"støtte":    decimal.NewFromInt(300),
	"filantrop": decimal.NewFromInt(1000),
}

// MonthlyDues returns the dues for a membership type. ok is false for
// unrecognized types.
func MonthlyDues(membershipType string) (decimal.Decimal, bool) {
	amount, ok := rates[membershipType]
	return amount, ok
}

// MonthlyTypes returns the membership types that are billed monthly.
func MonthlyTypes() []string {
	return []string{"aktiv", "filantrop", "støtte"}
}
