package bank

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Per-client product limits within one bank.
const (
	MaxTransactionalPerClient = 3
	MaxDepositsPerClient      = 1
	MaxCreditsPerClient       = 1
)

var (
	minTransactionalRate = decimal.RequireFromString("0.1")
	maxTransactionalRate = decimal.RequireFromString("2.0")
)

// Bank owns its accounts and the set of clients enrolled with it. Clients are
// referenced by id only.
type Bank struct {
	ID                int64           `json:"id"`
	FullName          string          `json:"full_name"`
	ShortName         string          `json:"short_name"`
	TransactionalRate decimal.Decimal `json:"transactional_rate"`

	accounts map[int64]*Account
	clients  map[int64]struct{}
}

// NewBank creates a bank whose transactional accounts earn rate percent a
// year; rate must be within [0.1, 2.0].
func NewBank(id int64, fullName, shortName string, rate decimal.Decimal) (*Bank, error) {
	if err := checkTransactionalRate(rate); err != nil {
		return nil, err
	}
	return &Bank{
		ID:                id,
		FullName:          fullName,
		ShortName:         shortName,
		TransactionalRate: rate,
		accounts:          make(map[int64]*Account),
		clients:           make(map[int64]struct{}),
	}, nil
}

func checkTransactionalRate(rate decimal.Decimal) error {
	if rate.LessThan(minTransactionalRate) || rate.GreaterThan(maxTransactionalRate) {
		return fmt.Errorf("transactional rate %s%% outside [%s, %s]: %w",
			rate, minTransactionalRate, maxTransactionalRate, ErrRateOutOfRange)
	}
	return nil
}

// SetTransactionalRate changes the rate given to transactional accounts opened
// from now on. Existing accounts keep their rate.
func (b *Bank) SetTransactionalRate(rate decimal.Decimal) error {
	if err := checkTransactionalRate(rate); err != nil {
		return err
	}
	b.TransactionalRate = rate
	return nil
}

// Enroll registers a client with the bank.
func (b *Bank) Enroll(clientID int64) {
	b.clients[clientID] = struct{}{}
}

// HasClient reports whether the client is enrolled.
func (b *Bank) HasClient(clientID int64) bool {
	_, ok := b.clients[clientID]
	return ok
}

// ClientIDs lists enrolled clients in ascending id order.
func (b *Bank) ClientIDs() []int64 {
	ids := make([]int64, 0, len(b.clients))
	for id := range b.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Account returns the live account with the given id.
func (b *Bank) Account(id int64) (*Account, bool) {
	a, ok := b.accounts[id]
	return a, ok
}

// Accounts returns the live accounts in ascending id order.
func (b *Bank) Accounts() []*Account {
	out := make([]*Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClientAccounts returns the client's accounts of one kind in ascending id order.
func (b *Bank) ClientAccounts(clientID int64, kind Kind) []*Account {
	var out []*Account
	for _, a := range b.Accounts() {
		if a.ClientID == clientID && a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (b *Bank) checkLimit(clientID int64, kind Kind, limit int) error {
	if n := len(b.ClientAccounts(clientID, kind)); n >= limit {
		return fmt.Errorf("client %d already holds %d %s account(s) at bank %d: %w",
			clientID, n, kind, b.ID, ErrProductLimit)
	}
	return nil
}

// OpenTransactional opens a transactional account at the bank's current rate.
func (b *Bank) OpenTransactional(id, clientID int64, asOf civil.Date) (*Account, error) {
	if err := b.checkLimit(clientID, KindTransactional, MaxTransactionalPerClient); err != nil {
		return nil, err
	}
	a := newTransactional(id, b.ID, clientID, b.TransactionalRate, asOf)
	b.Enroll(clientID)
	b.accounts[id] = a
	return a, nil
}

// OpenTermDeposit opens a term deposit after checking the term, the rate range,
// the product limit and the minimum balance. Funding is the caller's concern.
func (b *Bank) OpenTermDeposit(id, clientID int64, p DepositParams, asOf civil.Date) (*Account, error) {
	if p.TermMonths < minDepositMonths {
		return nil, fmt.Errorf("deposit term %d months, need at least %d: %w", p.TermMonths, minDepositMonths, ErrTermTooShort)
	}
	if p.InterestRate.LessThan(minDepositRate) || p.InterestRate.GreaterThan(maxDepositRate) {
		return nil, fmt.Errorf("deposit rate %s%% outside [%s, %s]: %w", p.InterestRate, minDepositRate, maxDepositRate, ErrRateOutOfRange)
	}
	if err := b.checkLimit(clientID, KindTermDeposit, MaxDepositsPerClient); err != nil {
		return nil, err
	}
	if !p.Amount.IsPositive() || p.MinBalance.IsNegative() {
		return nil, fmt.Errorf("deposit amount %s, minimum balance %s: %w", p.Amount, p.MinBalance, ErrInvalidAmount)
	}
	if p.Amount.LessThan(p.MinBalance) {
		return nil, fmt.Errorf("deposit amount %s below minimum balance %s: %w", p.Amount, p.MinBalance, ErrBelowMinBalance)
	}
	a := newTermDeposit(id, b.ID, clientID, p, asOf)
	b.Enroll(clientID)
	b.accounts[id] = a
	return a, nil
}

// OpenInstallmentCredit disburses a credit into a new account.
func (b *Bank) OpenInstallmentCredit(id, clientID int64, p CreditParams, asOf civil.Date) (*Account, error) {
	if err := b.checkLimit(clientID, KindInstallmentCredit, MaxCreditsPerClient); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.StartDate == (civil.Date{}) {
		p.StartDate = asOf
	}
	a := newInstallmentCredit(id, b.ID, clientID, p, asOf)
	b.Enroll(clientID)
	b.accounts[id] = a
	return a, nil
}

// Settlement records how one matured deposit was handled.
type Settlement struct {
	DepositID           int64           `json:"deposit_id"`
	ClientID            int64           `json:"client_id"`
	Renewed             bool            `json:"renewed"`
	PayoutAccountID     int64           `json:"payout_account_id,omitempty"`
	OpenedPayoutAccount bool            `json:"opened_payout_account"`
	Amount              decimal.Decimal `json:"amount"`
}

// SettleExpired applies the maturity policy to a deposit past its term. A
// renewable deposit keeps accruing interest, and Amount is what this call
// accrued. Otherwise everything it holds moves to the client's lowest-id
// transactional account here, which is opened with nextID when the client has
// none.
func (b *Bank) SettleExpired(dep *Account, asOf civil.Date, nextID func() int64) (Settlement, error) {
	s := Settlement{DepositID: dep.ID, ClientID: dep.ClientID, Amount: decimal.Zero}
	if dep.DepositTerms.Renewable {
		before := dep.Balance.Add(dep.DepositTerms.AccumulatedInterest)
		dep.AddInterest(asOf)
		s.Renewed = true
		s.Amount = dep.Balance.Add(dep.DepositTerms.AccumulatedInterest).Sub(before)
		return s, nil
	}

	var target *Account
	if existing := b.ClientAccounts(dep.ClientID, KindTransactional); len(existing) > 0 {
		target = existing[0]
	} else {
		opened, err := b.OpenTransactional(nextID(), dep.ClientID, asOf)
		if err != nil {
			return s, fmt.Errorf("open payout account for deposit %d: %w", dep.ID, err)
		}
		target = opened
		s.OpenedPayoutAccount = true
	}
	s.PayoutAccountID = target.ID

	payout := dep.closeOut()
	if payout.IsPositive() {
		if err := target.Deposit(payout); err != nil {
			return s, fmt.Errorf("pay out deposit %d: %w", dep.ID, err)
		}
	}
	s.Amount = payout
	return s, nil
}

// Summary is a read-only view of a bank.
type Summary struct {
	ID                int64           `json:"id"`
	FullName          string          `json:"full_name"`
	ShortName         string          `json:"short_name"`
	TransactionalRate decimal.Decimal `json:"transactional_rate"`
	ClientIDs         []int64         `json:"client_ids"`
	AccountCount      int             `json:"account_count"`
}

// Summary returns a copy of the bank's public state.
func (b *Bank) Summary() Summary {
	return Summary{
		ID:                b.ID,
		FullName:          b.FullName,
		ShortName:         b.ShortName,
		TransactionalRate: b.TransactionalRate,
		ClientIDs:         b.ClientIDs(),
		AccountCount:      len(b.accounts),
	}
}
