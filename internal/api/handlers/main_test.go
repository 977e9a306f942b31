// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"encoding/json"
	"mediacatalog/internal/config"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services/mocks"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testAPI bundles a router over the handlers with their mocked services.
type testAPI struct {
	Router  *mux.Router
	Media   *mocks.MockMediaService
	User    *mocks.MockUserService
	Info    *mocks.MockInfoService
	Auditor *mocks.MockAuditor
}

func setupHandlerTest(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		Media:   new(mocks.MockMediaService),
		User:    new(mocks.MockUserService),
		Info:    new(mocks.MockInfoService),
		Auditor: new(mocks.MockAuditor),
	}
	api.Auditor.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()

	cfg := &config.Config{}
	require.NoError(t, cfg.ParseAndValidate())
	h := NewHandlers(api.Info, api.Media, api.User, api.Auditor, cfg)

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/api/media", h.ListMedia).Methods("GET")
	r.HandleFunc("/api/media/search", h.SearchMedia).Methods("GET")
	r.HandleFunc("/api/media/type/{type}", h.ListMediaByType).Methods("GET")
	r.HandleFunc("/api/media/genre/{genre}", h.ListMediaByGenre).Methods("GET")
	r.HandleFunc("/api/media/{id}", h.GetMedia).Methods("GET")
	r.HandleFunc("/api/media/{id}", h.UpdateMedia).Methods("PUT")
	r.HandleFunc("/api/media/{id}", h.DeleteMedia).Methods("DELETE")
	r.HandleFunc("/api/media-author", h.ListMediaByAuthor).Methods("GET")
	r.HandleFunc("/api/media-add", h.CreateMedia).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	api.Router = r
	return api
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

// envelope is the decoded response with the data left raw.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	TotalItems *int            `json:"totalItems"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func sampleItem(id int64) *models.MediaItem {
	return &models.MediaItem{
		ID:     id,
		Name:   "Dune",
		Rating: 8.1,
		Type:   models.TypeMovie,
		Status: "Released",
		Genres: models.Genres{"Sci-Fi"},
		Author: "alice",
	}
}
