package bank

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Kind tags the product variant an Account carries.
type Kind string

const (
	KindTransactional     Kind = "transactional"
	KindTermDeposit       Kind = "term_deposit"
	KindInstallmentCredit Kind = "installment_credit"
)

// ParseKind maps a product name onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindTransactional, KindTermDeposit, KindInstallmentCredit:
		return k, nil
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

// Account is a bank-held account. Exactly one of the *Terms payloads is set,
// matching Kind; every operation dispatches on Kind.
type Account struct {
	ID        int64           `json:"id"`
	BankID    int64           `json:"bank_id"`
	ClientID  int64           `json:"client_id"`
	Kind      Kind            `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt civil.Date      `json:"created_at"`

	TransactionalTerms *TransactionalTerms `json:"transactional,omitempty"`
	DepositTerms       *DepositTerms       `json:"term_deposit,omitempty"`
	CreditTerms        *CreditTerms        `json:"installment_credit,omitempty"`
}

// Deposit credits amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.acceptsDeposit(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("deposit %s: %w", amount, ErrInvalidAmount)
	}
	a.Balance = a.Balance.Add(amount)
	if a.Kind == KindTransactional {
		a.TransactionalTerms.afterDeposit(a.Balance)
	}
	return nil
}

// Withdraw debits amount if the balance covers it and the product allows it.
// A refusal is reported as false with a nil error.
func (a *Account) Withdraw(amount decimal.Decimal) (bool, error) {
	if a.Kind == KindTermDeposit && !a.CanWithdraw(amount) {
		return false, nil
	}
	if !amount.IsPositive() {
		return false, fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}
	if a.Balance.LessThan(amount) {
		return false, nil
	}
	a.Balance = a.Balance.Sub(amount)
	if a.Kind == KindTransactional {
		a.TransactionalTerms.afterWithdraw(a.Balance)
	}
	return true, nil
}

// Transfer withdraws amount from a and deposits it into target. Nothing moves
// when the withdrawal is refused or target does not take deposits.
func (a *Account) Transfer(target *Account, amount decimal.Decimal) (bool, error) {
	if err := target.acceptsDeposit(); err != nil {
		return false, fmt.Errorf("transfer to account %d: %w", target.ID, err)
	}
	ok, err := a.Withdraw(amount)
	if err != nil || !ok {
		return false, err
	}
	if err := target.Deposit(amount); err != nil {
		return false, fmt.Errorf("transfer to account %d: %w", target.ID, err)
	}
	return true, nil
}

func (a *Account) acceptsDeposit() error {
	if a.Kind == KindTermDeposit && !a.DepositTerms.Replenishable {
		return ErrNotReplenishable
	}
	return nil
}

// Snapshot returns a deep copy that shares no state with a.
func (a *Account) Snapshot() Account {
	cp := *a
	if a.TransactionalTerms != nil {
		t := *a.TransactionalTerms
		cp.TransactionalTerms = &t
	}
	if a.DepositTerms != nil {
		t := *a.DepositTerms
		cp.DepositTerms = &t
	}
	if a.CreditTerms != nil {
		t := *a.CreditTerms
		cp.CreditTerms = &t
	}
	return cp
}
