package bank

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// daysPerQuotedMonth is the month length used when quoting daily capitalization.
const daysPerQuotedMonth = 30

// CreditPayment is one row of an amortization schedule.
type CreditPayment struct {
	Number      int             `json:"number"`
	DueDate     civil.Date      `json:"due_date"`
	Installment decimal.Decimal `json:"installment"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// EstimateDepositIncome quotes the interest a deposit would earn over its
// term. Daily capitalization compounds over 30-day months; monthly mode is
// simple interest.
func (b *Bank) EstimateDepositIncome(amount decimal.Decimal, termMonths int, rate decimal.Decimal, daily bool) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("deposit amount %s: %w", amount, ErrInvalidAmount)
	}
	if termMonths < 1 || termMonths > maxCreditMonths {
		return decimal.Zero, fmt.Errorf("deposit term %d months: %w", termMonths, ErrTermTooShort)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("deposit rate %s: %w", rate, ErrRateOutOfRange)
	}
	annual := rate.Div(hundred)
	if daily {
		dailyRate := divRate(annual, daysInYr)
		days := int64(termMonths * daysPerQuotedMonth)
		grown := amount.Mul(one.Add(dailyRate).Pow(decimal.NewFromInt(days)))
		return roundMoney(grown.Sub(amount)), nil
	}
	monthlyRate := divRate(annual, monthsInYr)
	return roundMoney(amount.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(termMonths)))), nil
}

// quotedMonthlyPayment is the annuity used for quotes, kept apart from the
// live credit's annuityPayment.
func quotedMonthlyPayment(amount decimal.Decimal, termMonths int, monthlyRate decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return divRate(amount, n)
	}
	discount := one.Sub(one.DivRound(one.Add(monthlyRate).Pow(n), 2*rateScale))
	if discount.Sign() <= 0 {
		return divRate(amount, n)
	}
	return amount.Mul(monthlyRate).DivRound(discount, rateScale)
}

// QuoteMonthlyPayment is the installment a credit with these terms would carry.
func (b *Bank) QuoteMonthlyPayment(amount decimal.Decimal, termMonths int, rate decimal.Decimal) (decimal.Decimal, error) {
	p := CreditParams{Amount: amount, TermMonths: termMonths, InterestRate: rate}
	if err := p.validate(); err != nil {
		return decimal.Zero, err
	}
	return roundMoney(quotedMonthlyPayment(amount, termMonths, annualToMonthly(rate))), nil
}

// EstimateCreditOverpayment quotes the total interest paid over the full term.
func (b *Bank) EstimateCreditOverpayment(amount decimal.Decimal, termMonths int, rate decimal.Decimal) (decimal.Decimal, error) {
	p := CreditParams{Amount: amount, TermMonths: termMonths, InterestRate: rate}
	if err := p.validate(); err != nil {
		return decimal.Zero, err
	}
	payment := quotedMonthlyPayment(amount, termMonths, annualToMonthly(rate))
	return roundMoney(payment.Mul(decimal.NewFromInt(int64(termMonths))).Sub(amount)), nil
}

// GenerateCreditSchedule builds the amortization schedule for the given terms.
// It depends on nothing but its arguments.
func (b *Bank) GenerateCreditSchedule(amount decimal.Decimal, termMonths int, rate decimal.Decimal, start civil.Date) ([]CreditPayment, error) {
	p := CreditParams{Amount: amount, TermMonths: termMonths, InterestRate: rate}
	if err := p.validate(); err != nil {
		return nil, err
	}
	monthlyRate := annualToMonthly(rate)
	payment := quotedMonthlyPayment(amount, termMonths, monthlyRate)

	schedule := make([]CreditPayment, 0, termMonths)
	remaining := amount
	for i := 1; i <= termMonths; i++ {
		interest := roundMoney(remaining.Mul(monthlyRate))
		principal := payment.Sub(interest)
		remaining = remaining.Sub(principal)
		schedule = append(schedule, CreditPayment{
			Number:      i,
			DueDate:     addMonths(start, i),
			Installment: roundMoney(payment),
			Principal:   roundMoney(principal),
			Interest:    interest,
			Remaining:   roundMoney(remaining),
		})
	}
	return schedule, nil
}
