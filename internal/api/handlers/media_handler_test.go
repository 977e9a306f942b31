// filepath: internal/api/handlers/media_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListMedia(t *testing.T) {
	t.Run("Pagination Parameters", func(t *testing.T) {
		api := setupHandlerTest(t)
		api.Media.On("ListMedia", mock.Anything, 2, 3).
			Return(&models.MediaPage{TotalItems: 7, Data: []models.MediaItem{*sampleItem(4)}}, nil)

		rr := api.do(httptest.NewRequest("GET", "/api/media?page=2&limit=3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)
		require.NotNil(t, env.TotalItems)
		assert.Equal(t, 7, *env.TotalItems)
		var items []models.MediaItem
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 1)
		api.Media.AssertExpectations(t)
	})

	t.Run("Defaults And Empty Page", func(t *testing.T) {
		api := setupHandlerTest(t)
		api.Media.On("ListMedia", mock.Anything, 1, 8).Return(&models.MediaPage{TotalItems: 0}, nil)

		rr := api.do(httptest.NewRequest("GET", "/api/media?page=abc&limit=-4", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, 0, *env.TotalItems)
		assert.Equal(t, "[]", string(env.Data))
	})

	t.Run("Store Failure", func(t *testing.T) {
		api := setupHandlerTest(t)
		api.Media.On("ListMedia", mock.Anything, 1, 8).Return(nil, errors.New("corrupt store"))

		rr := api.do(httptest.NewRequest("GET", "/api/media", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.False(t, env.Success)
		assert.Equal(t, "Failed to fetch media items", env.Message)
	})
}

func TestSearchMedia(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("SearchMedia", mock.Anything, "dune").
		Return(&models.MediaPage{TotalItems: 1, Data: []models.MediaItem{*sampleItem(1)}}, nil)

	rr := api.do(httptest.NewRequest("GET", "/api/media/search?query=dune", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, 1, *env.TotalItems)
	api.Media.AssertExpectations(t)
}

func TestGetMedia(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("GetMedia", mock.Anything, int64(3)).Return(sampleItem(3), nil)
	api.Media.On("GetMedia", mock.Anything, int64(2)).
		Return(nil, fmt.Errorf("%w: Media item not found", services.ErrNotFound))

	rr := api.do(httptest.NewRequest("GET", "/api/media/3", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var item models.MediaItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &item))
	assert.Equal(t, int64(3), item.ID)

	rr = api.do(httptest.NewRequest("GET", "/api/media/2", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Media item not found", decodeEnvelope(t, rr).Message)

	rr = api.do(httptest.NewRequest("GET", "/api/media/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	api.Media.AssertNotCalled(t, "GetMedia", mock.Anything, int64(0))
}

func TestListMediaByType(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("ListByType", mock.Anything, "movies", 1, 8).
		Return(&models.MediaPage{TotalItems: 1, Data: []models.MediaItem{*sampleItem(1)}}, nil)
	api.Media.On("ListByType", mock.Anything, "cartoons", 1, 8).
		Return(nil, fmt.Errorf("%w: Invalid media type", services.ErrValidation))

	rr := api.do(httptest.NewRequest("GET", "/api/media/type/movies", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(httptest.NewRequest("GET", "/api/media/type/cartoons", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid media type", decodeEnvelope(t, rr).Message)
}

func TestListMediaByGenre(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("ListByGenre", mock.Anything, "Sci-Fi", 1, 2).
		Return(&models.MediaPage{TotalItems: 5, Data: []models.MediaItem{*sampleItem(1), *sampleItem(2)}}, nil)

	rr := api.do(httptest.NewRequest("GET", "/api/media/genre/Sci-Fi?limit=2", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, *decodeEnvelope(t, rr).TotalItems)
	api.Media.AssertExpectations(t)
}

func TestListMediaByAuthor(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("ListByAuthor", mock.Anything, "", 1, 8).
		Return(nil, fmt.Errorf("%w: Username is required", services.ErrValidation))
	api.Media.On("ListByAuthor", mock.Anything, "nobody", 1, 8).
		Return(nil, fmt.Errorf("%w: No media found for this user", services.ErrNotFound))
	api.Media.On("ListByAuthor", mock.Anything, "alice", 1, 8).
		Return(&models.MediaPage{TotalItems: 1, Data: []models.MediaItem{*sampleItem(1)}}, nil)

	rr := api.do(httptest.NewRequest("GET", "/api/media-author", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(httptest.NewRequest("GET", "/api/media-author?username=nobody", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "No media found for this user", decodeEnvelope(t, rr).Message)

	rr = api.do(httptest.NewRequest("GET", "/api/media-author?username=alice", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

// multipartBody builds a media form with an optional avatar file.
func multipartBody(t *testing.T, fields url.Values, avatar []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if avatar != nil {
		fw, err := w.CreateFormFile("avatar", "poster.png")
		require.NoError(t, err)
		_, err = fw.Write(avatar)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestCreateMedia(t *testing.T) {
	fields := url.Values{
		"name":        {"Dune"},
		"description": {"Spice."},
		"rating":      {"8.1"},
		"type":        {"Movie"},
		"status":      {"Released"},
		"author":      {"alice"},
		"genres":      {"Sci-Fi", "Drama"},
	}

	t.Run("Multipart With Image", func(t *testing.T) {
		api := setupHandlerTest(t)
		api.Media.On("CreateMedia", mock.Anything,
			mock.MatchedBy(func(in models.MediaInput) bool {
				return in.Name == "Dune" && in.Rating == "8.1" && len(in.Genres) == 2
			}),
			mock.MatchedBy(func(img models.ImageUploads) bool {
				return img.Avatar != nil && img.Avatar.Filename == "poster.png" && img.Background == nil
			}),
		).Return(sampleItem(1), nil)

		body, contentType := multipartBody(t, fields, []byte("\x89PNG\r\n\x1a\n"))
		req := httptest.NewRequest("POST", "/api/media-add", body)
		req.Header.Set("Content-Type", contentType)
		rr := api.do(req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)
		api.Media.AssertExpectations(t)
		api.Auditor.AssertCalled(t, "Log", mock.Anything, "media.create", "alice", "Media:1", mock.Anything)
	})

	t.Run("Urlencoded", func(t *testing.T) {
		api := setupHandlerTest(t)
		api.Media.On("CreateMedia", mock.Anything,
			mock.MatchedBy(func(in models.MediaInput) bool { return in.Author == "alice" }),
			models.ImageUploads{},
		).Return(sampleItem(1), nil)

		req := httptest.NewRequest("POST", "/api/media-add", strings.NewReader(fields.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := api.do(req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		api.Media.AssertExpectations(t)
	})

	t.Run("Service Errors", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{fmt.Errorf("%w: Missing required fields: name", services.ErrValidation), http.StatusBadRequest},
			{fmt.Errorf("%w: Only images are allowed (jpeg, jpg, png)", services.ErrUnsupported), http.StatusUnsupportedMediaType},
			{fmt.Errorf("%w: File too large", services.ErrTooLarge), http.StatusRequestEntityTooLarge},
			{errors.New("disk full"), http.StatusInternalServerError},
		}
		for _, c := range cases {
			api := setupHandlerTest(t)
			api.Media.On("CreateMedia", mock.Anything, mock.Anything, mock.Anything).Return(nil, c.err)

			req := httptest.NewRequest("POST", "/api/media-add", strings.NewReader(fields.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := api.do(req)

			assert.Equal(t, c.code, rr.Code, c.err.Error())
			assert.False(t, decodeEnvelope(t, rr).Success)
		}
	})
}

func TestUpdateMedia(t *testing.T) {
	api := setupHandlerTest(t)
	updated := sampleItem(5)
	updated.Rating = 9
	api.Media.On("UpdateMedia", mock.Anything, int64(5),
		mock.MatchedBy(func(in models.MediaInput) bool { return in.Rating == "9" && in.Name == "" }),
		models.ImageUploads{},
	).Return(updated, nil)
	api.Media.On("UpdateMedia", mock.Anything, int64(6), mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Media item not found", services.ErrNotFound))

	req := httptest.NewRequest("PUT", "/api/media/5", strings.NewReader("rating=9"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := api.do(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	var item models.MediaItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &item))
	assert.Equal(t, 9.0, item.Rating)

	req = httptest.NewRequest("PUT", "/api/media/6", strings.NewReader("rating=9"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = api.do(req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest("PUT", "/api/media/x", strings.NewReader("rating=9"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = api.do(req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteMedia(t *testing.T) {
	api := setupHandlerTest(t)
	api.Media.On("DeleteMedia", mock.Anything, int64(1)).Return(sampleItem(1), nil)
	api.Media.On("DeleteMedia", mock.Anything, int64(9)).
		Return(nil, fmt.Errorf("%w: Media item not found", services.ErrNotFound))

	rr := api.do(httptest.NewRequest("DELETE", "/api/media/1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Media item deleted successfully", env.Message)
	api.Auditor.AssertCalled(t, "Log", mock.Anything, "media.delete", "alice", "Media:1", mock.Anything)

	rr = api.do(httptest.NewRequest("DELETE", "/api/media/9", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
