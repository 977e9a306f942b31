// filepath: internal/api/handlers/media_handler.go
package handlers

import (
	"fmt"
	"mediacatalog/internal/logging"
	"net/http"

	"github.com/gorilla/mux"
)

// @Summary List media
// @Description Returns one page of the whole catalog. `totalItems` counts every item.
// @Tags Media
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 8)"
// @Success 200 {object} models.Envelope{data=[]models.MediaItem}
// @Failure 500 {object} models.Envelope
// @Router /media [get]
func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	result, err := h.Media.ListMedia(r.Context(), page, limit)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch media items")
		return
	}
	respondWithPage(w, result)
}

// @Summary Search media by name
// @Description Case-insensitive substring search on the name. Not paginated; an empty query returns everything.
// @Tags Media
// @Produce json
// @Param query query string false "Search text"
// @Success 200 {object} models.Envelope{data=[]models.MediaItem}
// @Failure 500 {object} models.Envelope
// @Router /media/search [get]
func (h *Handlers) SearchMedia(w http.ResponseWriter, r *http.Request) {
	result, err := h.Media.SearchMedia(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to search media items")
		return
	}
	respondWithPage(w, result)
}

// @Summary Get a media item
// @Tags Media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} models.Envelope{data=models.MediaItem}
// @Failure 400 {object} models.Envelope "Invalid id"
// @Failure 404 {object} models.Envelope "Media item not found"
// @Router /media/{id} [get]
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		respondWithServiceError(w, r, err, "")
		return
	}
	item, err := h.Media.GetMedia(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch media item")
		return
	}
	respondWithData(w, http.StatusOK, "", item)
}

// @Summary List media by type
// @Tags Media
// @Produce json
// @Param type path string true "movies or tv-shows"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 8)"
// @Success 200 {object} models.Envelope{data=[]models.MediaItem}
// @Failure 400 {object} models.Envelope "Invalid media type"
// @Router /media/type/{type} [get]
func (h *Handlers) ListMediaByType(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	result, err := h.Media.ListByType(r.Context(), mux.Vars(r)["type"], page, limit)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch media items")
		return
	}
	respondWithPage(w, result)
}

// @Summary List media by genre
// @Description Case-insensitive exact genre match.
// @Tags Media
// @Produce json
// @Param genre path string true "Genre"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 8)"
// @Success 200 {object} models.Envelope{data=[]models.MediaItem}
// @Router /media/genre/{genre} [get]
func (h *Handlers) ListMediaByGenre(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	result, err := h.Media.ListByGenre(r.Context(), mux.Vars(r)["genre"], page, limit)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch media items by genre")
		return
	}
	respondWithPage(w, result)
}

// @Summary List media of an author
// @Tags Media
// @Produce json
// @Param username query string true "Author username"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 8)"
// @Success 200 {object} models.Envelope{data=[]models.MediaItem}
// @Failure 400 {object} models.Envelope "Username is required"
// @Failure 404 {object} models.Envelope "No media found for this user"
// @Router /media-author [get]
func (h *Handlers) ListMediaByAuthor(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	result, err := h.Media.ListByAuthor(r.Context(), r.URL.Query().Get("username"), page, limit)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch media items")
		return
	}
	respondWithPage(w, result)
}

// @Summary Add a media item
// @Description Accepts multipart/form-data or a urlencoded form. `avatar` and `background` are optional jpeg/png images.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param rating formData number true "Rating"
// @Param type formData string true "Movie or TV Show"
// @Param status formData string true "Status"
// @Param author formData string true "Author username"
// @Param genres formData string false "Comma separated genres"
// @Param avatar formData file false "Avatar image"
// @Param background formData file false "Background image"
// @Success 201 {object} models.Envelope{data=models.MediaItem}
// @Failure 400 {object} models.Envelope "Missing or malformed fields"
// @Failure 413 {object} models.Envelope "Image too large"
// @Failure 415 {object} models.Envelope "Only jpeg and png images are allowed"
// @Router /media-add [post]
func (h *Handlers) CreateMedia(w http.ResponseWriter, r *http.Request) {
	input, images, err := h.parseMediaForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		respondWithServiceError(w, r, err, "")
		return
	}

	item, err := h.Media.CreateMedia(r.Context(), input, images)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to add media item")
		return
	}

	h.Auditor.Log(r.Context(), "media.create", item.Author, fmt.Sprintf("Media:%d", item.ID), map[string]interface{}{
		"name": item.Name,
		"type": string(item.Type),
	})
	respondWithData(w, http.StatusCreated, "Media item added successfully", item)
}

// @Summary Update a media item
// @Description Partial update: only non-empty fields and uploaded images replace stored values.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} models.Envelope{data=models.MediaItem}
// @Failure 400 {object} models.Envelope "Malformed fields"
// @Failure 404 {object} models.Envelope "Media item not found"
// @Router /media/{id} [put]
func (h *Handlers) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		respondWithServiceError(w, r, err, "")
		return
	}

	input, images, err := h.parseMediaForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		respondWithServiceError(w, r, err, "")
		return
	}

	item, err := h.Media.UpdateMedia(r.Context(), id, input, images)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to update media item")
		return
	}

	logging.FromContext(r.Context()).Debugf("UpdateMedia: updated media %d", id)
	h.Auditor.Log(r.Context(), "media.update", item.Author, fmt.Sprintf("Media:%d", item.ID), nil)
	respondWithData(w, http.StatusOK, "Media item updated successfully", item)
}

// @Summary Delete a media item
// @Tags Media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} models.Envelope
// @Failure 404 {object} models.Envelope "Media item not found"
// @Router /media/{id} [delete]
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		respondWithServiceError(w, r, err, "")
		return
	}

	removed, err := h.Media.DeleteMedia(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to delete media item")
		return
	}

	h.Auditor.Log(r.Context(), "media.delete", removed.Author, fmt.Sprintf("Media:%d", id), map[string]interface{}{
		"name": removed.Name,
	})
	respondWithData(w, http.StatusOK, "Media item deleted successfully", nil)
}
