package billing

import "github.com/shopspring/decimal"

var (
	softBalanceHigh = decimal.NewFromInt(1000)
	softBalanceLow  = decimal.NewFromInt(100)
	priceThreshold  = decimal.NewFromInt(300)
)

// UrgentNag classifies a debtor's severity. Members on the higher rates
// get softly worded nags up to 1000 kr of debt, members on lower rates
// only up to 100 kr; beyond that the wording turns urgent.
func UrgentNag(balance, price decimal.Decimal) bool {
	if balance.LessThan(softBalanceHigh) && price.GreaterThanOrEqual(priceThreshold) {
		return false
	}
	if balance.LessThan(softBalanceLow) && price.LessThan(priceThreshold) {
		return false
	}
	return true
}
