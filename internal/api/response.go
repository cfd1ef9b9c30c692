package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// Response is the standard envelope returned by all endpoints. Exactly one of
// Data or Error is set depending on Success.
type Response struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

var exposeErrors = true

// SetExposeErrors controls whether RespondError includes the underlying error
// detail in the envelope. Disabled in production so internals never leak.
func SetExposeErrors(expose bool) {
	exposeErrors = expose
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON response: %v", err)
		}
	}
}

// RespondData writes a success envelope carrying data.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying data and a message.
func RespondMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	RespondJSON(w, status, Response{Success: true, Data: data, Message: message})
}

// RespondError writes a failure envelope. The err detail is only included
// when error exposure is enabled.
func RespondError(w http.ResponseWriter, status int, message string, err error) {
	resp := Response{Success: false, Error: message}
	if err != nil && exposeErrors {
		resp.Error = message + ": " + err.Error()
	}
	RespondJSON(w, status, resp)
}

// RespondValidationError writes field-level validation errors as a 422
// response.
func RespondValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	RespondJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error:   "Validation failed",
		Details: fieldErrors,
	})
}

// RespondNoContent writes a 204 No Content response with no body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
