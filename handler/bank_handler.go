package handler

import (
	"net/http"

	"retail-banking/model"
	"retail-banking/service"
)

// BankHandler serves bank registration and lookup.
type BankHandler struct {
	svc *service.Service
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(svc *service.Service) *BankHandler {
	return &BankHandler{svc: svc}
}

// CreateBankHandler registers a bank.
//
// Method: POST
// Path: /banks
// Success: 201 Created
// Error: 400 Bad Request (invalid JSON or rate outside [0.1, 2.0])
func (h *BankHandler) CreateBankHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBankRequest
	if !decode(w, r, &req) {
		return
	}
	if req.FullName == "" || req.ShortName == "" {
		http.Error(w, "Bank names are required", http.StatusBadRequest)
		return
	}

	b, err := h.svc.CreateBank(req.FullName, req.ShortName, req.TransactionalRate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// ListBanksHandler lists all banks.
//
// Method: GET
// Path: /banks
func (h *BankHandler) ListBanksHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Banks())
}

// GetBankHandler returns one bank.
//
// Method: GET
// Path: /banks/{bank_id}
// Error: 404 Not Found
func (h *BankHandler) GetBankHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "bank_id")
	if !ok {
		return
	}
	b, found := h.svc.Bank(id)
	if !found {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateRateHandler changes the transactional rate for accounts opened later.
//
// Method: PUT
// Path: /banks/{bank_id}/rate
// Error: 400 Bad Request (rate outside [0.1, 2.0]), 404 Not Found
func (h *BankHandler) UpdateRateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "bank_id")
	if !ok {
		return
	}
	var req model.UpdateRateRequest
	if !decode(w, r, &req) {
		return
	}

	b, found, err := h.svc.UpdateBankRate(id, req.TransactionalRate)
	if !found {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
