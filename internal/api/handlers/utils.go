// filepath: internal/api/handlers/utils.go
package handlers

import (
	"errors"
	"fmt"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// formMemory is the part of a multipart body kept in memory; the rest spills to temp files.
const formMemory = 8 << 20

// pagination reads the page and limit query parameters, falling back to the defaults.
func pagination(r *http.Request) (int, int) {
	q := r.URL.Query()
	return catalog.ParsePagination(q.Get("page"), q.Get("limit"))
}

// mediaID parses the {id} path variable.
func mediaID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: Invalid media id", services.ErrValidation)
	}
	return id, nil
}

// parseMediaForm reads a multipart or urlencoded media form. The body is capped
// so that two maximum-size images and the text fields still fit.
func (h *Handlers) parseMediaForm(w http.ResponseWriter, r *http.Request) (models.MediaInput, models.ImageUploads, error) {
	var images models.ImageUploads

	limit := int64(10 << 20)
	if h.Cfg != nil && h.Cfg.MaxUploadSizeBytes > 0 {
		limit = h.Cfg.MaxUploadSizeBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, 2*limit+(1<<20))

	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.MediaInput{}, images, fmt.Errorf("%w: Request body too large", services.ErrTooLarge)
		}
		return models.MediaInput{}, images, fmt.Errorf("%w: Failed to parse form: %v", services.ErrValidation, err)
	}

	input := models.MediaInput{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Title:            r.FormValue("title"),
		Rating:           r.FormValue("rating"),
		Type:             r.FormValue("type"),
		Status:           r.FormValue("status"),
		ReleaseDate:      r.FormValue("release_date"),
		FirstAirDate:     r.FormValue("first_air_date"),
		LastAirDate:      r.FormValue("last_air_date"),
		NumberOfSeasons:  r.FormValue("number_of_seasons"),
		NumberOfEpisodes: r.FormValue("number_of_episodes"),
		EpisodeRunTime:   r.FormValue("episode_run_time"),
		Author:           r.FormValue("author"),
		Genres:           append(append([]string{}, r.Form["genres"]...), r.Form["genres[]"]...),
	}

	if r.MultipartForm != nil {
		images.Avatar = firstFile(r.MultipartForm, services.FieldAvatar)
		images.Background = firstFile(r.MultipartForm, services.FieldBackground)
	}
	return input, images, nil
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// cleanupForm removes the temp files of a parsed multipart form.
func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}
