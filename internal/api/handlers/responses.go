// filepath: internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"errors"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"
	"net/http"
)

// respondWithError sends a failed envelope.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, models.Envelope{Success: false, Message: message})
}

// respondWithData sends a successful envelope around data.
func respondWithData(w http.ResponseWriter, code int, message string, data interface{}) {
	respondWithJSON(w, code, models.Envelope{Success: true, Message: message, Data: data})
}

// respondWithPage sends a successful envelope carrying the filtered total.
func respondWithPage(w http.ResponseWriter, page *models.MediaPage) {
	total := page.TotalItems
	data := page.Data
	if data == nil {
		data = []models.MediaItem{}
	}
	respondWithJSON(w, http.StatusOK, models.Envelope{Success: true, TotalItems: &total, Data: data})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logging.Log.Errorf("Failed to marshal JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Failed to marshal JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithServiceError maps a service error to its HTTP status. Unknown
// errors are logged and answered with fallback.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var code int
	switch {
	case errors.Is(err, services.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, services.ErrTooLarge):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnsupported):
		code = http.StatusUnsupportedMediaType
	default:
		logging.FromContext(r.Context()).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		respondWithError(w, http.StatusInternalServerError, fallback)
		return
	}
	respondWithError(w, code, services.ErrorMessage(err))
}
