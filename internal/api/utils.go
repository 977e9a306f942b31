// filepath: internal/api/utils.go
package api

import (
	"encoding/json"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"net/http"
)

// respondWithError writes an error envelope for responses produced outside
// the handlers package.
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(models.Envelope{Success: false, Message: message}); err != nil {
		logging.Log.Errorf("Failed to encode error response: %v", err)
	}
}
