package handler

import (
	"net/http"

	"retail-banking/model"
	"retail-banking/service"
	"retail-banking/storage"

	"github.com/shopspring/decimal"
)

// CreditHandler serves payments against open credits.
type CreditHandler struct {
	svc *service.Service
	journal
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(svc *service.Service, store storage.Store, metrics *Metrics) *CreditHandler {
	return &CreditHandler{svc: svc, journal: journal{store: store, metrics: metrics}}
}

// PaymentHandler applies a payment to an installment credit. A payment that
// does not cover accrued interest is answered with 422 and the result body.
//
// Method: POST
// Path: /credits/{account_id}/payments
// Error: 404 Not Found (unknown account or not a credit)
func (h *CreditHandler) PaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	var req model.AmountRequest
	if !decode(w, r, &req) {
		return
	}

	res, found := h.svc.MakeCreditPayment(id, req.Amount)
	if !found {
		http.Error(w, "Credit account not found", http.StatusNotFound)
		return
	}
	h.record(r.Context(), storage.Operation{
		Kind:      storage.OpCreditPayment,
		AccountID: id,
		Amount:    amountOf(req.Amount),
		Outcome:   outcome(res.Success),
		Detail:    res.Code,
	})
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// RepaymentQuoteHandler previews an early repayment. With ?amount= it quotes
// a partial repayment, without it the full payoff.
//
// Method: GET
// Path: /credits/{account_id}/repayment-quote
func (h *CreditHandler) RepaymentQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		q, found := h.svc.QuoteFullRepayment(id)
		if !found {
			http.Error(w, "Credit account not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, q)
		return
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		http.Error(w, "Invalid amount", http.StatusBadRequest)
		return
	}
	q, found := h.svc.QuotePartialRepayment(id, amount)
	if !found {
		http.Error(w, "Credit account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
