package handler

import (
	"net/http"

	"retail-banking/model"
	"retail-banking/service"
	"retail-banking/storage"
)

// TransactionHandler serves transfers between accounts.
type TransactionHandler struct {
	svc *service.Service
	journal
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc *service.Service, store storage.Store, metrics *Metrics) *TransactionHandler {
	return &TransactionHandler{svc: svc, journal: journal{store: store, metrics: metrics}}
}

// CreateTransactionHandler moves money between two accounts.
//
// Method: POST
// Path: /transfers
// Success: 200 OK
// Error: 400 Bad Request (non-positive amount, target not replenishable)
// Error: 404 Not Found (either account unknown)
// Error: 422 Unprocessable Entity (insufficient funds or withdrawal not allowed)
func (h *TransactionHandler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req model.TransactionRequest
	if !decode(w, r, &req) {
		return
	}

	// Validation
	if req.SourceAccountID == req.DestinationAccountID {
		http.Error(w, "Source and destination accounts cannot be the same", http.StatusBadRequest)
		return
	}
	if !req.Amount.IsPositive() {
		http.Error(w, "Transaction amount must be positive", http.StatusBadRequest)
		return
	}
	_, srcFound := h.svc.Account(req.SourceAccountID)
	_, dstFound := h.svc.Account(req.DestinationAccountID)
	if !srcFound || !dstFound {
		http.Error(w, "One or both accounts not found", http.StatusNotFound)
		return
	}

	applied, err := h.svc.Transfer(req.SourceAccountID, req.DestinationAccountID, req.Amount)
	op := storage.Operation{
		Kind:             storage.OpTransfer,
		AccountID:        req.SourceAccountID,
		CounterAccountID: req.DestinationAccountID,
		Amount:           amountOf(req.Amount),
	}
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
