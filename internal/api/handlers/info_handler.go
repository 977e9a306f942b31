// filepath: internal/api/handlers/info_handler.go
package handlers

import (
	"net/http"
)

// @Summary Get service information
// @Description Retrieves general information about the service: name, version, uptime and the active store driver.
// @Tags Info
// @Produce  json
// @Success 200 {object} models.Envelope{data=models.Info}
// @Router /info [get]
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, "", h.Info.GetInfo())
}
