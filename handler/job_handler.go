package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"retail-banking/service"
	"retail-banking/storage"
)

// JobHandler runs the batch sweeps on demand.
type JobHandler struct {
	svc *service.Service
	journal
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.Service, store storage.Store, metrics *Metrics) *JobHandler {
	return &JobHandler{svc: svc, journal: journal{store: store, metrics: metrics}}
}

// RunAccrual runs the interest accrual sweep, journals the credited accounts
// and observes the duration. The scheduler in main calls it too.
func (h *JobHandler) RunAccrual(ctx context.Context) service.AccrualReport {
	start := time.Now()
	report := h.svc.RunInterestAccrual()
	h.metrics.jobs.WithLabelValues(storage.OpInterestAccrual).Observe(time.Since(start).Seconds())
	interest, _ := report.InterestCredited.Float64()
	h.metrics.interest.Add(interest)
	h.record(ctx, storage.Operation{
		Kind:    storage.OpInterestAccrual,
		Amount:  amountOf(report.InterestCredited),
		Outcome: storage.OutcomeApplied,
	})
	log.Printf("Interest accrual: %d transactional accounts credited %s, %d deposits accrued",
		report.TransactionalCredited, report.InterestCredited, report.DepositsAccrued)
	return report
}

// RunExpiration runs the deposit expiration sweep and journals every payout.
// A renewal is journaled only when the sweep accrued interest on it.
func (h *JobHandler) RunExpiration(ctx context.Context) service.ExpirationReport {
	start := time.Now()
	report := h.svc.RunDepositExpiration()
	h.metrics.jobs.WithLabelValues(storage.OpDepositExpiry).Observe(time.Since(start).Seconds())
	for _, st := range report.Settlements {
		detail := "paid out"
		if st.Renewed {
			if !st.Amount.IsPositive() {
				continue
			}
			detail = "renewed"
		}
		h.record(ctx, storage.Operation{
			Kind:             storage.OpDepositExpiry,
			AccountID:        st.DepositID,
			CounterAccountID: st.PayoutAccountID,
			Amount:           amountOf(st.Amount),
			Outcome:          storage.OutcomeApplied,
			Detail:           detail,
		})
	}
	log.Printf("Deposit expiration: %d settled, %d failed", len(report.Settlements), report.Failed)
	return report
}

// InterestAccrualHandler triggers the accrual sweep.
//
// Method: POST
// Path: /jobs/interest-accrual
func (h *JobHandler) InterestAccrualHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.RunAccrual(r.Context()))
}

// DepositExpirationHandler triggers the expiration sweep.
//
// Method: POST
// Path: /jobs/deposit-expiration
func (h *JobHandler) DepositExpirationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.RunExpiration(r.Context()))
}
