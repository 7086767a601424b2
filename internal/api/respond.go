package api

import (
	"encoding/json"
	"net/http"

	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Response helpers. Internal errors (database details, provider responses)
// are never leaked to clients: 5xx responses carry a generic message and
// the full error goes to the structured log.

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondSafeError logs the internal error and sends a sanitized message.
// Use this whenever a 5xx would otherwise include err.Error().
func respondSafeError(w http.ResponseWriter, status int, internalErr error, publicMsg string) {
	if internalErr != nil {
		logger.Error("request failed",
			"status", status,
			"public_message", publicMsg,
			"error", internalErr.Error(),
		)
	}
	respondError(w, status, publicMsg)
}
