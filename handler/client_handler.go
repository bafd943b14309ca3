package handler

import (
	"net/http"

	"retail-banking/bank"
	"retail-banking/model"
	"retail-banking/service"
)

// ClientHandler serves client registration and the client's account views.
type ClientHandler struct {
	svc *service.Service
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *service.Service) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// CreateClientHandler registers a client.
//
// Method: POST
// Path: /clients
// Success: 201 Created
// Error: 400 Bad Request (malformed identity fields)
// Error: 409 Conflict (tax id or passport already registered)
func (h *ClientHandler) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClientRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateClient(req.FullName, req.TaxID, req.PassportSeries, req.PassportNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ListClientsHandler lists all clients.
func (h *ClientHandler) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Clients())
}

// GetClientHandler returns one client.
func (h *ClientHandler) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client_id")
	if !ok {
		return
	}
	c, found := h.svc.Client(id)
	if !found {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ClientAccountsHandler lists the client's accounts. With ?kind= it returns
// one product line; without it, the whole portfolio with totals.
//
// Method: GET
// Path: /clients/{client_id}/accounts
func (h *ClientHandler) ClientAccountsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client_id")
	if !ok {
		return
	}

	kindStr := r.URL.Query().Get("kind")
	if kindStr == "" {
		p, found := h.svc.ClientPortfolio(id)
		if !found {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	kind, err := bank.ParseKind(kindStr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	accounts, found := h.svc.ClientAccounts(id, kind)
	if !found {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
