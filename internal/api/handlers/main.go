// filepath: internal/api/handlers/main.go
package handlers

import (
	"mediacatalog/internal/config"
	"mediacatalog/internal/services"
)

// Handlers holds the shared dependencies of the API handlers.
type Handlers struct {
	Info    services.InfoService
	Media   services.MediaService
	User    services.UserService
	Auditor services.Auditor

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	media services.MediaService,
	user services.UserService,
	auditor services.Auditor,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:    info,
		Media:   media,
		User:    user,
		Auditor: auditor,
		Cfg:     cfg,
	}
}
