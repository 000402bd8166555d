// Package response writes Bistro's JSON bodies. Success bodies are written
// as-is; every failure uses the same Envelope.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

// Envelope is the body of every error response.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status. v is encoded before anything is
// sent, so a value that cannot be encoded turns into a clean 500.
func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("response encode failed", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"status":500,"message":"Internal Server Error"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck
}

// Error sends an envelope carrying only a message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with the field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized is the identity gate's 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "unauthorized access")
}

// Forbidden is the identity gate's 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "forbidden access")
}

// InternalError sends a 500. The cause is logged by the caller, never echoed.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
