package common

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of every error response: a stable code only,
// never internal detail.
type errorBody struct {
	Error string `json:"error"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondErrorCode sends an error response carrying a stable error code
func RespondErrorCode(w http.ResponseWriter, status int, code string) {
	RespondJSON(w, status, errorBody{Error: code})
}
