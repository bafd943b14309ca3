package service

import (
	"log"

	"retail-banking/bank"

	"github.com/shopspring/decimal"
)

// AccrualReport summarizes one interest accrual sweep.
type AccrualReport struct {
	TransactionalCredited int             `json:"transactional_credited"`
	InterestCredited      decimal.Decimal `json:"interest_credited"`
	DepositsAccrued       int             `json:"deposits_accrued"`
}

// RunInterestAccrual credits due interest on every transactional account and
// accrues interest on every term deposit, across all banks. Each account only
// acts on its own elapsed period, so running it twice on the same day is
// harmless.
func (s *Service) RunInterestAccrual() AccrualReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	asOf := s.today()
	r := AccrualReport{InterestCredited: decimal.Zero}
	for _, b := range s.sortedBanks() {
		for _, a := range b.Accounts() {
			switch a.Kind {
			case bank.KindTransactional:
				interest := a.CalculateInterest(asOf)
				if !interest.IsPositive() {
					continue
				}
				if err := a.Deposit(interest); err != nil {
					log.Printf("Error crediting interest to account %d: %v", a.ID, err)
					continue
				}
				r.TransactionalCredited++
				r.InterestCredited = r.InterestCredited.Add(interest)
			case bank.KindTermDeposit:
				if a.DepositTerms.PaidOut {
					continue
				}
				a.AddInterest(asOf)
				r.DepositsAccrued++
			}
		}
	}
	return r
}

// ExpirationReport summarizes one deposit expiration sweep.
type ExpirationReport struct {
	Settlements []bank.Settlement `json:"settlements"`
	Failed      int               `json:"failed"`
}

// RunDepositExpiration applies the maturity policy to every term deposit past
// its maturity date. Deposits already paid out are skipped.
func (s *Service) RunDepositExpiration() ExpirationReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	asOf := s.today()
	r := ExpirationReport{Settlements: []bank.Settlement{}}
	for _, b := range s.sortedBanks() {
		for _, a := range b.Accounts() {
			if a.Kind != bank.KindTermDeposit || a.DepositTerms.PaidOut || !a.IsExpired(asOf) {
				continue
			}
			if _, ok := s.clients[a.ClientID]; !ok {
				continue
			}
			st, err := b.SettleExpired(a, asOf, s.accountSeq.next)
			if err != nil {
				log.Printf("Error settling deposit %d: %v", a.ID, err)
				r.Failed++
				continue
			}
			if st.OpenedPayoutAccount {
				if payout, ok := b.Account(st.PayoutAccountID); ok {
					s.register(payout)
				}
			}
			r.Settlements = append(r.Settlements, st)
		}
	}
	return r
}
