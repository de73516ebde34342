package httpapi

import (
	"encoding/json"
	"net/http"
)

// transportError is the body for request-level rejections (malformed JSON,
// missing email). Issuance outcomes never use it; they always answer 200 with
// the legacy numeric contract.
type transportError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, transportError{Error: message})
}
