package handler

import (
	"log"
	"net/http"

	"retail-banking/bank"
	"retail-banking/model"
	"retail-banking/service"
	"retail-banking/storage"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	svc *service.Service
	journal
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.Service, store storage.Store, metrics *Metrics) *AccountHandler {
	return &AccountHandler{svc: svc, journal: journal{store: store, metrics: metrics}}
}

// writeOpened answers an open-account call and journals it.
func (h *AccountHandler) writeOpened(w http.ResponseWriter, r *http.Request, acc bank.Account, found bool, err error) {
	if !found {
		http.Error(w, "Bank or client not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.record(r.Context(), storage.Operation{Kind: storage.OpOpenAccount, Outcome: storage.OutcomeRejected, Detail: err.Error()})
		writeServiceError(w, err)
		return
	}
	h.record(r.Context(), storage.Operation{
		Kind:      storage.OpOpenAccount,
		AccountID: acc.ID,
		Amount:    amountOf(acc.Balance),
		Outcome:   storage.OutcomeApplied,
		Detail:    string(acc.Kind),
	})
	writeJSON(w, http.StatusCreated, acc)
}

// OpenTransactionalHandler opens a transactional account.
//
// Method: POST
// Path: /accounts/transactional
// Success: 201 Created
// Error: 404 Not Found (unknown bank or client)
// Error: 422 Unprocessable Entity (client already holds 3 at this bank)
func (h *AccountHandler) OpenTransactionalHandler(w http.ResponseWriter, r *http.Request) {
	var req model.OpenAccountRequest
	if !decode(w, r, &req) {
		return
	}
	acc, found, err := h.svc.OpenTransactionalAccount(req.BankID, req.ClientID)
	h.writeOpened(w, r, acc, found, err)
}

// OpenDepositHandler opens a term deposit.
//
// Method: POST
// Path: /accounts/deposits
// Success: 201 Created
// Error: 400 Bad Request (term, rate or minimum balance rules)
// Error: 404 Not Found (unknown bank or client)
// Error: 422 Unprocessable Entity (no funding account, or product limit)
func (h *AccountHandler) OpenDepositHandler(w http.ResponseWriter, r *http.Request) {
	var req model.OpenDepositRequest
	if !decode(w, r, &req) {
		return
	}
	acc, found, err := h.svc.OpenTermDeposit(req.BankID, req.ClientID, bank.DepositParams{
		Amount:              req.Amount,
		TermMonths:          req.TermMonths,
		MinBalance:          req.MinBalance,
		Replenishable:       req.Replenishable,
		Withdrawable:        req.Withdrawable,
		InterestRate:        req.InterestRate,
		DailyCapitalization: req.DailyCapitalization,
		Renewable:           req.Renewable,
	})
	h.writeOpened(w, r, acc, found, err)
}

// OpenCreditHandler opens an installment credit.
//
// Method: POST
// Path: /accounts/credits
// Success: 201 Created
func (h *AccountHandler) OpenCreditHandler(w http.ResponseWriter, r *http.Request) {
	var req model.OpenCreditRequest
	if !decode(w, r, &req) {
		return
	}
	acc, found, err := h.svc.OpenInstallmentCredit(req.BankID, req.ClientID, bank.CreditParams{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		StartDate:    req.StartDate,
	})
	h.writeOpened(w, r, acc, found, err)
}

// GetAccountHandler handles retrieving a specific account.
//
// Method: GET
// Path: /accounts/{account_id}
// Success: 200 OK
// Error: 400 Bad Request (for invalid account ID format)
// Error: 404 Not Found (if account does not exist)
func (h *AccountHandler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	acc, found := h.svc.Account(id)
	if !found {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// DepositHandler credits an account.
//
// Method: POST
// Path: /accounts/{account_id}/deposit
// Success: 200 OK
// Error: 400 Bad Request (non-positive amount, deposit not replenishable)
// Error: 404 Not Found
func (h *AccountHandler) DepositHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	var req model.AmountRequest
	if !decode(w, r, &req) {
		return
	}

	applied, err := h.svc.Deposit(id, req.Amount)
	op := storage.Operation{Kind: storage.OpDeposit, AccountID: id, Amount: amountOf(req.Amount)}
	if err != nil {
		op.Outcome, op.Detail = storage.OutcomeRejected, err.Error()
		h.record(r.Context(), op)
		writeServiceError(w, err)
		return
	}
	if !applied {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	op.Outcome = storage.OutcomeApplied
	h.record(r.Context(), op)
	writeJSON(w, http.StatusOK, model.OperationResult{Success: true})
}

// WithdrawHandler debits an account.
//
// Method: POST
// Path: /accounts/{account_id}/withdraw
// Success: 200 OK
// Error: 400 Bad Request (non-positive amount)
// Error: 404 Not Found
// Error: 422 Unprocessable Entity (insufficient funds or withdrawal not allowed)
func (h *AccountHandler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	var req model.AmountRequest
	if !decode(w, r, &req) {
		return
	}
	if _, found := h.svc.Account(id); !found {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	applied, err := h.svc.Withdraw(id, req.Amount)
	op := storage.Operation{Kind: storage.OpWithdraw, AccountID: id, Amount: amountOf(req.Amount)}
	if err != nil {
		op.Outcome, op.Detail = storage.OutcomeRejected, err.Error()
		h.record(r.Context(), op)
		writeServiceError(w, err)
		return
	}
	op.Outcome = outcome(applied)
	h.record(r.Context(), op)
	if !applied {
		writeJSON(w, http.StatusUnprocessableEntity, model.OperationResult{Reason: "insufficient funds or withdrawal not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, model.OperationResult{Success: true})
}

// OperationsHandler lists the journal entries of an account.
//
// Method: GET
// Path: /accounts/{account_id}/operations
func (h *AccountHandler) OperationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	if _, found := h.svc.Account(id); !found {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	ops, err := h.store.ListByAccount(r.Context(), id)
	if err != nil {
		log.Printf("Error listing operations: %v", err)
		http.Error(w, "Failed to retrieve operations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ops)
}
