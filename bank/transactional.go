package bank

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionalTerms holds the state of a transactional account. Interest is
// paid on the lowest balance seen since the last accrual.
type TransactionalTerms struct {
	InterestRate       decimal.Decimal `json:"interest_rate"`
	LastInterestDate   civil.Date      `json:"last_interest_date"`
	MinBalanceInPeriod decimal.Decimal `json:"min_balance_in_period"`
}

// accrualPeriodDays is the simplified month used for transactional interest.
const accrualPeriodDays = 30

func newTransactional(id, bankID, clientID int64, rate decimal.Decimal, opened civil.Date) *Account {
	return &Account{
		ID:        id,
		BankID:    bankID,
		ClientID:  clientID,
		Kind:      KindTransactional,
		Balance:   decimal.Zero,
		CreatedAt: opened,
		TransactionalTerms: &TransactionalTerms{
			InterestRate:       rate,
			LastInterestDate:   opened,
			MinBalanceInPeriod: decimal.Zero,
		},
	}
}

func (t *TransactionalTerms) afterDeposit(balance decimal.Decimal) {
	if t.MinBalanceInPeriod.IsZero() || balance.LessThan(t.MinBalanceInPeriod) {
		t.MinBalanceInPeriod = balance
	}
}

func (t *TransactionalTerms) afterWithdraw(balance decimal.Decimal) {
	if balance.LessThan(t.MinBalanceInPeriod) {
		t.MinBalanceInPeriod = balance
	}
}

// CalculateInterest returns the interest earned on the period minimum once at
// least 30 days have passed since the last accrual, and starts a new period.
// Before that, or for other kinds of account, it returns zero and changes
// nothing. The caller credits the result.
func (a *Account) CalculateInterest(asOf civil.Date) decimal.Decimal {
	if a.Kind != KindTransactional {
		return decimal.Zero
	}
	t := a.TransactionalTerms
	if daysBetween(t.LastInterestDate, asOf) < accrualPeriodDays {
		return decimal.Zero
	}
	interest := roundMoney(divRate(t.MinBalanceInPeriod.Mul(t.InterestRate).Div(hundred), monthsInYr))
	t.LastInterestDate = asOf
	t.MinBalanceInPeriod = a.Balance
	return interest
}
