// filepath: internal/api/router.go
package api

import (
	"mediacatalog/internal/api/handlers"
	"mediacatalog/internal/config"
	"mediacatalog/internal/web"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the router and wraps it in the middleware chain.
func SetupRouter(h *handlers.Handlers, cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found")
	})

	// Public Endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/info", h.GetInfo).Methods("GET")
	addMediaRoutes(apiRouter, h)
	addUserRoutes(apiRouter, h)

	// Uploaded images
	web.AddRoutes(r, cfg.Storage.UploadDir)

	return corsMiddleware(cfg)(requestIDMiddleware(accessLogMiddleware(r)))
}

// addMediaRoutes configures the catalog routes. The search route is registered
// before {id} so it is not taken for an id.
func addMediaRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/media", h.ListMedia).Methods("GET")
	r.HandleFunc("/media/search", h.SearchMedia).Methods("GET")
	r.HandleFunc("/media/type/{type}", h.ListMediaByType).Methods("GET")
	r.HandleFunc("/media/genre/{genre}", h.ListMediaByGenre).Methods("GET")
	r.HandleFunc("/media/{id}", h.GetMedia).Methods("GET")
	r.HandleFunc("/media/{id}", h.UpdateMedia).Methods("PUT")
	r.HandleFunc("/media/{id}", h.DeleteMedia).Methods("DELETE")
	r.HandleFunc("/media-author", h.ListMediaByAuthor).Methods("GET")
	r.HandleFunc("/media-add", h.CreateMedia).Methods("POST")
}

// addUserRoutes configures registration and login.
func addUserRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/register", h.Register).Methods("POST")
}
