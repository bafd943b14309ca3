package bank

import "github.com/shopspring/decimal"

// rateScale is the number of fractional digits kept for every rate and
// intermediate amount division. Money leaves the package rounded to moneyScale.
const (
	rateScale  = 10
	moneyScale = 2
)

var (
	hundred    = decimal.NewFromInt(100)
	monthsInYr = decimal.NewFromInt(12)
	daysInYr   = decimal.NewFromInt(365)
	one        = decimal.NewFromInt(1)
)

// roundMoney rounds half-up to cents.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

// divRate divides with the intermediate scale, rounding half-up.
func divRate(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, rateScale)
}

// annualToMonthly converts a percentage annual rate into a monthly fraction.
func annualToMonthly(annualRate decimal.Decimal) decimal.Decimal {
	return divRate(annualRate.Div(hundred), monthsInYr)
}

// annualToDaily converts a percentage annual rate into a daily fraction.
func annualToDaily(annualRate decimal.Decimal) decimal.Decimal {
	return divRate(annualRate.Div(hundred), daysInYr)
}
