package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation kinds recorded in the journal.
const (
	OpOpenAccount     = "open_account"
	OpDeposit         = "deposit"
	OpWithdraw        = "withdraw"
	OpTransfer        = "transfer"
	OpCreditPayment   = "credit_payment"
	OpInterestAccrual = "interest_accrual"
	OpDepositExpiry   = "deposit_expiration"
)

// Operation outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRefused  = "refused"
	OutcomeRejected = "rejected"
)

// Operation is one journal entry: a mutating call and how it ended. The
// journal is an audit trail; account state is never rebuilt from it.
type Operation struct {
	ID               uuid.UUID           `json:"id"`
	OccurredAt       time.Time           `json:"occurred_at"`
	Kind             string              `json:"kind"`
	AccountID        int64               `json:"account_id,omitempty"`
	CounterAccountID int64               `json:"counter_account_id,omitempty"`
	Amount           decimal.NullDecimal `json:"amount"`
	Outcome          string              `json:"outcome"`
	Detail           string              `json:"detail,omitempty"`
}

func (op Operation) normalize() Operation {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	if op.OccurredAt.IsZero() {
		op.OccurredAt = time.Now().UTC()
	}
	return op
}

// Store defines the interface for journal operations.
type Store interface {
	Record(ctx context.Context, op Operation) error
	ListByAccount(ctx context.Context, accountID int64) ([]Operation, error)
}

// MemoryStore keeps the journal in process memory. It is used when no
// database is configured.
type MemoryStore struct {
	mu  sync.Mutex
	ops []Operation
}

// NewMemoryStore creates an empty in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends an operation.
func (s *MemoryStore) Record(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op.normalize())
	return nil
}

// ListByAccount returns the entries touching an account, oldest first.
func (s *MemoryStore) ListByAccount(ctx context.Context, accountID int64) ([]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Operation{}
	for _, op := range s.ops {
		if op.AccountID == accountID || op.CounterAccountID == accountID {
			out = append(out, op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
