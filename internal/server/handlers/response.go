package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/focuskeeper/pkg/api"
)

// WriteJSON sends v with the given status
func WriteJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends the error envelope the client understands.
// code is the provider code ("" when the status alone classifies the error).
func WriteError(w http.ResponseWriter, message, code string, statusCode int) {
	WriteJSON(w, api.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	}, statusCode)
}
