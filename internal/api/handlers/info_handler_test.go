// filepath: internal/api/handlers/info_handler_test.go
package handlers

import (
	"encoding/json"
	"mediacatalog/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	api := setupHandlerTest(t)
	api.Info.On("GetInfo").Return(models.Info{
		ServiceName:   "Media Catalog API",
		Version:       "v1.2.3-test",
		UptimeSince:   time.Now(),
		StorageDriver: "jsonfile",
	})

	rr := api.do(httptest.NewRequest("GET", "/api/info", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	var info models.Info
	assert.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "Media Catalog API", info.ServiceName)
	assert.Equal(t, "jsonfile", info.StorageDriver)
}

func TestHealthCheck(t *testing.T) {
	api := setupHandlerTest(t)
	rr := api.do(httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK\n", rr.Body.String())
}
