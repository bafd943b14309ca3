// Package service is the account directory: it owns every bank and client by
// id, routes account operations to the owning bank, and runs the batch jobs.
//
// All methods are safe for concurrent use. A single lock serializes them, so a
// balance check and the write that follows it are never interleaved with
// another operation or a batch sweep.
package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"retail-banking/bank"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateClient  = errors.New("client with the same tax id or passport already exists")
	ErrNoFundingAccount = errors.New("no transactional account with sufficient balance to fund the deposit")
)

// sequence hands out increasing identifiers starting at 1.
type sequence struct{ last int64 }

func (s *sequence) next() int64 {
	s.last++
	return s.last
}

// Service is the account directory.
type Service struct {
	mu  sync.Mutex
	now func() time.Time

	banks       map[int64]*bank.Bank
	clients     map[int64]*bank.Client
	accountBank map[int64]int64

	bankSeq    sequence
	clientSeq  sequence
	accountSeq sequence
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of the current date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates an empty directory.
func New(opts ...Option) *Service {
	s := &Service{
		now:         time.Now,
		banks:       make(map[int64]*bank.Bank),
		clients:     make(map[int64]*bank.Client),
		accountBank: make(map[int64]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() civil.Date {
	return civil.DateOf(s.now())
}

// CreateBank registers a bank; rate is the annual percentage paid on its
// transactional accounts.
func (s *Service) CreateBank(fullName, shortName string, rate decimal.Decimal) (bank.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := bank.NewBank(s.bankSeq.last+1, fullName, shortName, rate)
	if err != nil {
		return bank.Summary{}, err
	}
	s.bankSeq.next()
	s.banks[b.ID] = b
	return b.Summary(), nil
}

// UpdateBankRate changes the rate for transactional accounts opened later.
func (s *Service) UpdateBankRate(bankID int64, rate decimal.Decimal) (bank.Summary, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banks[bankID]
	if !ok {
		return bank.Summary{}, false, nil
	}
	if err := b.SetTransactionalRate(rate); err != nil {
		return bank.Summary{}, true, err
	}
	return b.Summary(), true, nil
}

// CreateClient registers a client. Tax id and passport must be unused.
func (s *Service) CreateClient(fullName, taxID, passportSeries, passportNumber string) (bank.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := bank.NewClient(s.clientSeq.last+1, fullName, taxID, passportSeries, passportNumber)
	if err != nil {
		return bank.Client{}, err
	}
	for _, existing := range s.clients {
		if existing.SameIdentity(c) {
			return bank.Client{}, fmt.Errorf("client %d: %w", existing.ID, ErrDuplicateClient)
		}
	}
	s.clientSeq.next()
	s.clients[c.ID] = c
	return c.Snapshot(), nil
}

// Bank looks up a bank by id.
func (s *Service) Bank(id int64) (bank.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banks[id]
	if !ok {
		return bank.Summary{}, false
	}
	return b.Summary(), true
}

// Banks lists all banks in id order.
func (s *Service) Banks() []bank.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bank.Summary, 0, len(s.banks))
	for _, b := range s.sortedBanks() {
		out = append(out, b.Summary())
	}
	return out
}

// Client looks up a client by id.
func (s *Service) Client(id int64) (bank.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return bank.Client{}, false
	}
	return c.Snapshot(), true
}

// Clients lists all clients in id order.
func (s *Service) Clients() []bank.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bank.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Account looks up an account in whichever bank holds it.
func (s *Service) Account(id int64) (bank.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.findAccount(id)
	if !ok {
		return bank.Account{}, false
	}
	return a.Snapshot(), true
}

func (s *Service) findAccount(id int64) (*bank.Account, bool) {
	bankID, ok := s.accountBank[id]
	if !ok {
		return nil, false
	}
	return s.banks[bankID].Account(id)
}

func (s *Service) sortedBanks() []*bank.Bank {
	out := make([]*bank.Bank, 0, len(s.banks))
	for _, b := range s.banks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// register indexes a freshly opened account and records it on its owner.
func (s *Service) register(a *bank.Account) {
	s.accountBank[a.ID] = a.BankID
	if c, ok := s.clients[a.ClientID]; ok {
		c.AddAccount(a.Kind, a.ID)
	}
}
