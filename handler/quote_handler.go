package handler

import (
	"net/http"

	"retail-banking/model"
	"retail-banking/service"
)

// QuoteHandler serves what-if estimates that do not touch any account.
type QuoteHandler struct {
	svc *service.Service
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(svc *service.Service) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// DepositIncomeHandler quotes the income of a hypothetical deposit.
//
// Method: POST
// Path: /quotes/deposit-income
func (h *QuoteHandler) DepositIncomeHandler(w http.ResponseWriter, r *http.Request) {
	var req model.DepositIncomeQuoteRequest
	if !decode(w, r, &req) {
		return
	}
	income, found, err := h.svc.QuoteDepositIncome(req.BankID, req.Amount, req.TermMonths, req.InterestRate, req.DailyCapitalization)
	if !found {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DepositIncomeQuote{
		Income: income,
		Total:  req.Amount.Add(income).Round(2),
	})
}

// CreditOverpaymentHandler quotes installment and total interest of a credit.
//
// Method: POST
// Path: /quotes/credit-overpayment
func (h *QuoteHandler) CreditOverpaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreditQuoteRequest
	if !decode(w, r, &req) {
		return
	}
	q, found, err := h.svc.QuoteCreditOverpayment(req.BankID, req.Amount, req.TermMonths, req.InterestRate)
	if !found {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// CreditScheduleHandler returns the amortization schedule of a credit.
//
// Method: POST
// Path: /quotes/credit-schedule
func (h *QuoteHandler) CreditScheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreditQuoteRequest
	if !decode(w, r, &req) {
		return
	}
	schedule, found, err := h.svc.QuoteCreditSchedule(req.BankID, req.Amount, req.TermMonths, req.InterestRate, req.StartDate)
	if !found {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
