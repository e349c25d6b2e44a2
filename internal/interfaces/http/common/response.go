package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// MaxRequestBody caps request payloads read by the JSON handlers.
const MaxRequestBody = 1 << 20

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON serialises the payload with the given status. Encoding
// failures are logged; the status line has already gone out by then.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("write response: %v", err)
	}
}

// WriteError writes the error envelope.
func WriteError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, ErrorResponse{Error: message})
}

// DecodeJSON reads a size-capped JSON body into dst, rejecting unknown
// fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
