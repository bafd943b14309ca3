package bank

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// CreditTerms holds the contract and repayment state of an installment credit.
type CreditTerms struct {
	Principal       decimal.Decimal `json:"principal"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TermMonths      int             `json:"term_months"`
	StartDate       civil.Date      `json:"start_date"`
	Remaining       decimal.Decimal `json:"remaining"`
	LastPaymentDate civil.Date      `json:"last_payment_date"`
	MonthlyRate     decimal.Decimal `json:"monthly_rate"`
}

// CreditParams describes an installment credit to open or quote.
type CreditParams struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
	StartDate    civil.Date
}

// maxCreditMonths bounds the annuity exponent.
const maxCreditMonths = 600

func (p CreditParams) validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("credit amount %s: %w", p.Amount, ErrInvalidAmount)
	}
	if p.TermMonths < 1 || p.TermMonths > maxCreditMonths {
		return fmt.Errorf("credit term %d months: %w", p.TermMonths, ErrInvalidCredit)
	}
	if p.InterestRate.IsNegative() {
		return fmt.Errorf("credit rate %s: %w", p.InterestRate, ErrInvalidCredit)
	}
	return nil
}

// Payment outcome codes.
const (
	PaymentAccepted         = "payment_accepted"
	PaymentFullyPaid        = "fully_paid"
	PaymentBelowInterest    = "insufficient_for_interest"
	PaymentInvalidAmount    = "invalid_amount"
	PaymentNotCreditAccount = "not_a_credit_account"
)

// CreditPaymentResult is the outcome of one live payment.
type CreditPaymentResult struct {
	Success   bool            `json:"success"`
	Code      string          `json:"code"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Remaining decimal.Decimal `json:"remaining"`
}

func newInstallmentCredit(id, bankID, clientID int64, p CreditParams, asOf civil.Date) *Account {
	start := p.StartDate
	return &Account{
		ID:        id,
		BankID:    bankID,
		ClientID:  clientID,
		Kind:      KindInstallmentCredit,
		Balance:   p.Amount,
		CreatedAt: asOf,
		CreditTerms: &CreditTerms{
			Principal:       p.Amount,
			InterestRate:    p.InterestRate,
			TermMonths:      p.TermMonths,
			StartDate:       start,
			Remaining:       p.Amount,
			LastPaymentDate: start,
			MonthlyRate:     annualToMonthly(p.InterestRate),
		},
	}
}

// annuityPayment is the fixed installment that amortizes principal over term
// months at monthlyRate. It falls back to straight division for a zero rate or
// a degenerate discount factor.
func annuityPayment(principal, monthlyRate decimal.Decimal, term int) decimal.Decimal {
	straight := divRate(principal, decimal.NewFromInt(int64(term)))
	if monthlyRate.IsZero() || term <= 0 {
		return straight
	}
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(term)))
	if !growth.IsPositive() {
		return straight
	}
	discount := one.Sub(one.DivRound(growth, 2*rateScale))
	if !discount.IsPositive() {
		return straight
	}
	return principal.Mul(monthlyRate).DivRound(discount, rateScale)
}

// MonthlyPayment is the scheduled installment of the credit at full scale.
func (a *Account) MonthlyPayment() decimal.Decimal {
	if a.Kind != KindInstallmentCredit {
		return decimal.Zero
	}
	c := a.CreditTerms
	return annuityPayment(c.Principal, c.MonthlyRate, c.TermMonths)
}

// InterestForPeriod is the interest accrued on the remaining principal since
// the last payment, prorated by day over a 365-day year.
func (a *Account) InterestForPeriod(asOf civil.Date) decimal.Decimal {
	if a.Kind != KindInstallmentCredit {
		return decimal.Zero
	}
	c := a.CreditTerms
	days := daysBetween(c.LastPaymentDate, asOf)
	if days < 0 {
		days = 0
	}
	return divRate(c.Remaining.Mul(c.InterestRate).Div(hundred).Mul(decimal.NewFromInt(days)), daysInYr)
}

// MakePayment applies amount to the credit: accrued interest first, the rest
// to principal. A payment that does not cover the interest is refused and
// leaves the credit unchanged. A payment dated before the last one, or before
// a future start date, does not move the interest clock back.
func (a *Account) MakePayment(amount decimal.Decimal, asOf civil.Date) CreditPaymentResult {
	if a.Kind != KindInstallmentCredit {
		return CreditPaymentResult{Code: PaymentNotCreditAccount, Remaining: decimal.Zero}
	}
	c := a.CreditTerms
	if !amount.IsPositive() {
		return CreditPaymentResult{Code: PaymentInvalidAmount, Remaining: roundMoney(c.Remaining)}
	}
	interest := a.InterestForPeriod(asOf)
	principal := amount.Sub(interest)
	if principal.IsNegative() {
		return CreditPaymentResult{
			Code:      PaymentBelowInterest,
			Interest:  roundMoney(interest),
			Remaining: roundMoney(c.Remaining),
		}
	}

	c.Remaining = c.Remaining.Sub(principal)
	c.LastPaymentDate = laterOf(c.LastPaymentDate, asOf)
	if !c.Remaining.IsPositive() {
		c.Remaining = decimal.Zero
		return CreditPaymentResult{
			Success:   true,
			Code:      PaymentFullyPaid,
			Interest:  roundMoney(interest),
			Principal: roundMoney(principal),
			Remaining: decimal.Zero,
		}
	}
	return CreditPaymentResult{
		Success:   true,
		Code:      PaymentAccepted,
		Interest:  roundMoney(interest),
		Principal: roundMoney(principal),
		Remaining: roundMoney(c.Remaining),
	}
}

// IsFullyPaid reports whether no principal remains.
func (a *Account) IsFullyPaid() bool {
	return a.Kind == KindInstallmentCredit && !a.CreditTerms.Remaining.IsPositive()
}

// RepaymentQuote previews an early repayment without applying it.
type RepaymentQuote struct {
	Amount            decimal.Decimal     `json:"amount"`
	Interest          decimal.Decimal     `json:"interest"`
	Principal         decimal.Decimal     `json:"principal"`
	RemainingAfter    decimal.Decimal     `json:"remaining_after"`
	NewMonthlyPayment decimal.NullDecimal `json:"new_monthly_payment"`
}

// PreviewPartialRepayment shows how amount would split between interest and
// principal today, and the installment that would amortize what is left over
// the remaining months of the original term.
func (a *Account) PreviewPartialRepayment(amount decimal.Decimal, asOf civil.Date) RepaymentQuote {
	if a.Kind != KindInstallmentCredit {
		return RepaymentQuote{}
	}
	c := a.CreditTerms
	interest := a.InterestForPeriod(asOf)
	principal := amount.Sub(interest)
	remaining := c.Remaining.Sub(principal)
	q := RepaymentQuote{
		Amount:         roundMoney(amount),
		Interest:       roundMoney(interest),
		Principal:      roundMoney(principal),
		RemainingAfter: roundMoney(remaining),
	}
	if remaining.IsPositive() {
		elapsed := monthsBetween(c.StartDate, asOf)
		if elapsed < 0 {
			elapsed = 0
		}
		monthsLeft := c.TermMonths - elapsed
		if monthsLeft > 0 {
			q.NewMonthlyPayment = decimal.NewNullDecimal(roundMoney(annuityPayment(remaining, c.MonthlyRate, monthsLeft)))
		}
	}
	return q
}

// FullRepaymentQuote is what it takes to close the credit today.
type FullRepaymentQuote struct {
	Remaining decimal.Decimal `json:"remaining"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
}

// PreviewFullRepayment returns the remaining principal plus interest accrued
// since the last payment.
func (a *Account) PreviewFullRepayment(asOf civil.Date) FullRepaymentQuote {
	if a.Kind != KindInstallmentCredit {
		return FullRepaymentQuote{}
	}
	c := a.CreditTerms
	interest := a.InterestForPeriod(asOf)
	return FullRepaymentQuote{
		Remaining: roundMoney(c.Remaining),
		Interest:  roundMoney(interest),
		Total:     roundMoney(c.Remaining.Add(interest)),
	}
}
