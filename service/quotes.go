package service

import (
	"retail-banking/bank"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// QuoteDepositIncome estimates deposit income with the bank's calculator.
func (s *Service) QuoteDepositIncome(bankID int64, amount decimal.Decimal, termMonths int, rate decimal.Decimal, daily bool) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banks[bankID]
	if !ok {
		return decimal.Zero, false, nil
	}
	income, err := b.EstimateDepositIncome(amount, termMonths, rate, daily)
	return income, true, err
}

// CreditQuote is the cost of a hypothetical credit.
type CreditQuote struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Overpayment    decimal.Decimal `json:"overpayment"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
}

// QuoteCreditOverpayment estimates installment and total interest of a credit.
func (s *Service) QuoteCreditOverpayment(bankID int64, amount decimal.Decimal, termMonths int, rate decimal.Decimal) (CreditQuote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banks[bankID]
	if !ok {
		return CreditQuote{}, false, nil
	}
	over, err := b.EstimateCreditOverpayment(amount, termMonths, rate)
	if err != nil {
		return CreditQuote{}, true, err
	}
	payment, err := b.QuoteMonthlyPayment(amount, termMonths, rate)
	if err != nil {
		return CreditQuote{}, true, err
	}
	return CreditQuote{
		MonthlyPayment: payment,
		Overpayment:    over,
		TotalRepayment: amount.Add(over).Round(2),
	}, true, nil
}

// QuoteCreditSchedule builds an amortization schedule. A zero start date
// means today.
func (s *Service) QuoteCreditSchedule(bankID int64, amount decimal.Decimal, termMonths int, rate decimal.Decimal, start civil.Date) ([]bank.CreditPayment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banks[bankID]
	if !ok {
		return nil, false, nil
	}
	if start == (civil.Date{}) {
		start = s.today()
	}
	schedule, err := b.GenerateCreditSchedule(amount, termMonths, rate, start)
	return schedule, true, err
}

// QuotePartialRepayment previews an early partial repayment of a credit.
func (s *Service) QuotePartialRepayment(accountID int64, amount decimal.Decimal) (bank.RepaymentQuote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(accountID)
	if !ok || a.Kind != bank.KindInstallmentCredit {
		return bank.RepaymentQuote{}, false
	}
	return a.PreviewPartialRepayment(amount, s.today()), true
}

// QuoteFullRepayment previews closing a credit today.
func (s *Service) QuoteFullRepayment(accountID int64) (bank.FullRepaymentQuote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(accountID)
	if !ok || a.Kind != bank.KindInstallmentCredit {
		return bank.FullRepaymentQuote{}, false
	}
	return a.PreviewFullRepayment(s.today()), true
}
