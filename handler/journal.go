package handler

import (
	"context"
	"log"

	"retail-banking/storage"

	"github.com/shopspring/decimal"
)

// journal writes every mutating call to the operations store and counts it.
// A failed write is logged; it never fails the request that was already applied.
type journal struct {
	store   storage.Store
	metrics *Metrics
}

func (j journal) record(ctx context.Context, op storage.Operation) {
	j.metrics.operations.WithLabelValues(op.Kind, op.Outcome).Inc()
	if err := j.store.Record(ctx, op); err != nil {
		log.Printf("Error recording %s operation: %v", op.Kind, err)
	}
}

func amountOf(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

func outcome(applied bool) string {
	if applied {
		return storage.OutcomeApplied
	}
	return storage.OutcomeRefused
}
