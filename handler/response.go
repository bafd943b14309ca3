package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"retail-banking/bank"
	"retail-banking/service"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses a numeric path variable, answering 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr, ok := mux.Vars(r)[name]
	if !ok {
		http.Error(w, fmt.Sprintf("%s is required", name), http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid %s format", name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeServiceError maps a precondition failure from the core onto a status.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrDuplicateClient):
		status = http.StatusConflict
	case errors.Is(err, bank.ErrProductLimit), errors.Is(err, service.ErrNoFundingAccount):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}
