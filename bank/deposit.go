package bank

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DepositTerms holds the contract and accrual state of a term deposit.
type DepositTerms struct {
	Principal           decimal.Decimal `json:"principal"`
	TermMonths          int             `json:"term_months"`
	MinBalance          decimal.Decimal `json:"min_balance"`
	Replenishable       bool            `json:"replenishable"`
	Withdrawable        bool            `json:"withdrawable"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	DailyCapitalization bool            `json:"daily_capitalization"`
	Renewable           bool            `json:"renewable"`
	MaturityDate        civil.Date      `json:"maturity_date"`
	AccumulatedInterest decimal.Decimal `json:"accumulated_interest"`
	LastInterestDate    civil.Date      `json:"last_interest_date"`
	PaidOut             bool            `json:"paid_out"`
}

// DepositParams describes a term deposit to open or quote.
type DepositParams struct {
	Amount              decimal.Decimal
	TermMonths          int
	MinBalance          decimal.Decimal
	Replenishable       bool
	Withdrawable        bool
	InterestRate        decimal.Decimal
	DailyCapitalization bool
	Renewable           bool
}

var (
	minDepositRate   = decimal.NewFromInt(18)
	maxDepositRate   = decimal.NewFromInt(25)
	minDepositMonths = 3
)

func newTermDeposit(id, bankID, clientID int64, p DepositParams, opened civil.Date) *Account {
	return &Account{
		ID:        id,
		BankID:    bankID,
		ClientID:  clientID,
		Kind:      KindTermDeposit,
		Balance:   p.Amount,
		CreatedAt: opened,
		DepositTerms: &DepositTerms{
			Principal:           p.Amount,
			TermMonths:          p.TermMonths,
			MinBalance:          p.MinBalance,
			Replenishable:       p.Replenishable,
			Withdrawable:        p.Withdrawable,
			InterestRate:        p.InterestRate,
			DailyCapitalization: p.DailyCapitalization,
			Renewable:           p.Renewable,
			MaturityDate:        addMonths(opened, p.TermMonths),
			AccumulatedInterest: decimal.Zero,
			LastInterestDate:    opened,
		},
	}
}

// CanWithdraw reports whether the deposit allows taking amount out: the product
// must be withdrawable and the remaining balance must stay at or above the
// minimum balance.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	if a.Kind != KindTermDeposit {
		return a.Balance.GreaterThanOrEqual(amount)
	}
	d := a.DepositTerms
	if !d.Withdrawable {
		return false
	}
	return a.Balance.Sub(amount).GreaterThanOrEqual(d.MinBalance)
}

// AddInterest accrues deposit interest up to asOf. With daily capitalization
// the interest for every whole elapsed day is added to the balance; otherwise
// the interest for every whole elapsed calendar month goes into
// AccumulatedInterest. It is a no-op for other kinds of account.
func (a *Account) AddInterest(asOf civil.Date) {
	if a.Kind != KindTermDeposit {
		return
	}
	d := a.DepositTerms
	if d.DailyCapitalization {
		days := daysBetween(d.LastInterestDate, asOf)
		if days <= 0 {
			return
		}
		daily := a.Balance.Mul(annualToDaily(d.InterestRate)).Round(rateScale)
		a.Balance = a.Balance.Add(daily.Mul(decimal.NewFromInt(days)))
		d.LastInterestDate = asOf
		return
	}
	months := monthsBetween(firstOfMonth(d.LastInterestDate), firstOfMonth(asOf))
	if months <= 0 {
		return
	}
	monthly := a.Balance.Mul(annualToMonthly(d.InterestRate)).Round(rateScale)
	d.AccumulatedInterest = d.AccumulatedInterest.Add(monthly.Mul(decimal.NewFromInt(int64(months))))
	d.LastInterestDate = firstOfMonth(asOf)
}

// IsExpired reports whether asOf is past the maturity date.
func (a *Account) IsExpired(asOf civil.Date) bool {
	if a.Kind != KindTermDeposit {
		return false
	}
	return asOf.After(a.DepositTerms.MaturityDate)
}

// closeOut empties a matured deposit, returning the balance together with the
// interest collected in AccumulatedInterest. It bypasses the withdrawal
// policy, which only governs customer withdrawals during the term.
func (a *Account) closeOut() decimal.Decimal {
	d := a.DepositTerms
	payout := a.Balance.Add(d.AccumulatedInterest)
	a.Balance = decimal.Zero
	d.AccumulatedInterest = decimal.Zero
	d.PaidOut = true
	return payout
}
