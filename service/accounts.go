package service

import (
	"fmt"

	"retail-banking/bank"

	"github.com/shopspring/decimal"
)

// lookup resolves a bank and a client; ok is false when either is unknown.
func (s *Service) lookup(bankID, clientID int64) (*bank.Bank, *bank.Client, bool) {
	b, ok := s.banks[bankID]
	if !ok {
		return nil, nil, false
	}
	c, ok := s.clients[clientID]
	if !ok {
		return nil, nil, false
	}
	return b, c, true
}

// OpenTransactionalAccount opens a transactional account for the client.
// found is false when the bank or client is unknown.
func (s *Service) OpenTransactionalAccount(bankID, clientID int64) (acc bank.Account, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, c, ok := s.lookup(bankID, clientID)
	if !ok {
		return bank.Account{}, false, nil
	}
	a, err := b.OpenTransactional(s.accountSeq.last+1, c.ID, s.today())
	if err != nil {
		return bank.Account{}, true, err
	}
	s.accountSeq.next()
	s.register(a)
	return a.Snapshot(), true, nil
}

// OpenTermDeposit opens a term deposit. The client must already hold a
// transactional account at the bank whose balance covers the deposit amount.
func (s *Service) OpenTermDeposit(bankID, clientID int64, p bank.DepositParams) (acc bank.Account, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, c, ok := s.lookup(bankID, clientID)
	if !ok {
		return bank.Account{}, false, nil
	}
	if !hasFunding(b, c.ID, p.Amount) {
		return bank.Account{}, true, fmt.Errorf("client %d at bank %d: %w", c.ID, b.ID, ErrNoFundingAccount)
	}
	a, err := b.OpenTermDeposit(s.accountSeq.last+1, c.ID, p, s.today())
	if err != nil {
		return bank.Account{}, true, err
	}
	s.accountSeq.next()
	s.register(a)
	return a.Snapshot(), true, nil
}

func hasFunding(b *bank.Bank, clientID int64, amount decimal.Decimal) bool {
	for _, a := range b.ClientAccounts(clientID, bank.KindTransactional) {
		if a.Balance.GreaterThanOrEqual(amount) {
			return true
		}
	}
	return false
}

// OpenInstallmentCredit disburses a credit to the client. A zero start date
// means today.
func (s *Service) OpenInstallmentCredit(bankID, clientID int64, p bank.CreditParams) (acc bank.Account, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, c, ok := s.lookup(bankID, clientID)
	if !ok {
		return bank.Account{}, false, nil
	}
	a, err := b.OpenInstallmentCredit(s.accountSeq.last+1, c.ID, p, s.today())
	if err != nil {
		return bank.Account{}, true, err
	}
	s.accountSeq.next()
	s.register(a)
	return a.Snapshot(), true, nil
}

// Deposit credits an account. It returns false for an unknown account.
func (s *Service) Deposit(accountID int64, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(accountID)
	if !ok {
		return false, nil
	}
	if err := a.Deposit(amount); err != nil {
		return false, err
	}
	return true, nil
}

// Withdraw debits an account. It returns false for an unknown account or when
// the account refuses the withdrawal.
func (s *Service) Withdraw(accountID int64, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(accountID)
	if !ok {
		return false, nil
	}
	return a.Withdraw(amount)
}

// Transfer moves amount between two accounts, possibly at different banks.
func (s *Service) Transfer(fromID, toID int64, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.findAccount(fromID)
	if !ok {
		return false, nil
	}
	to, ok := s.findAccount(toID)
	if !ok {
		return false, nil
	}
	return from.Transfer(to, amount)
}

// MakeCreditPayment applies a payment to an installment credit. found is
// false when the account is unknown or is not a credit.
func (s *Service) MakeCreditPayment(accountID int64, amount decimal.Decimal) (res bank.CreditPaymentResult, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(accountID)
	if !ok || a.Kind != bank.KindInstallmentCredit {
		return bank.CreditPaymentResult{}, false
	}
	return a.MakePayment(amount, s.today()), true
}

// ClientAccounts lists the client's accounts of one kind across all banks.
func (s *Service) ClientAccounts(clientID int64, kind bank.Kind) ([]bank.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return nil, false
	}
	return s.clientAccounts(clientID, kind), true
}

func (s *Service) clientAccounts(clientID int64, kind bank.Kind) []bank.Account {
	out := []bank.Account{}
	for _, b := range s.sortedBanks() {
		for _, a := range b.ClientAccounts(clientID, kind) {
			out = append(out, a.Snapshot())
		}
	}
	return out
}

// Holding groups one product line of a client's portfolio.
type Holding struct {
	Accounts []bank.Account  `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// Portfolio is every account a client holds, grouped by product, with totals.
// Credit totals are remaining principal; the others are balances.
type Portfolio struct {
	ClientID      int64   `json:"client_id"`
	Transactional Holding `json:"transactional"`
	TermDeposits  Holding `json:"term_deposits"`
	Credits       Holding `json:"installment_credits"`
}

// ClientPortfolio collects all of the client's accounts.
func (s *Service) ClientPortfolio(clientID int64) (Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return Portfolio{}, false
	}
	return Portfolio{
		ClientID:      clientID,
		Transactional: s.holding(clientID, bank.KindTransactional),
		TermDeposits:  s.holding(clientID, bank.KindTermDeposit),
		Credits:       s.holding(clientID, bank.KindInstallmentCredit),
	}, true
}

func (s *Service) holding(clientID int64, kind bank.Kind) Holding {
	h := Holding{Accounts: s.clientAccounts(clientID, kind), Total: decimal.Zero}
	for _, a := range h.Accounts {
		if kind == bank.KindInstallmentCredit {
			h.Total = h.Total.Add(a.CreditTerms.Remaining)
			continue
		}
		h.Total = h.Total.Add(a.Balance)
	}
	h.Total = h.Total.Round(2)
	return h
}
