// filepath: internal/services/media_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"mime/multipart"
	"strconv"
	"strings"
)

// Multipart field names of the optional images.
const (
	FieldAvatar     = "avatar"
	FieldBackground = "background"
)

var _ MediaService = (*mediaService)(nil)

// mediaService handles business logic for the media catalog.
type mediaService struct {
	Repo    repository.Repository
	Storage ImageStorage
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo repository.Repository, storage ImageStorage) *mediaService {
	return &mediaService{Repo: repo, Storage: storage}
}

// === Queries ===

func (s *mediaService) list(ctx context.Context, q catalog.Query) (*models.MediaPage, error) {
	items, total, err := s.Repo.ListMedia(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return &models.MediaPage{TotalItems: total, Data: items}, nil
}

// ListMedia returns one page of the whole catalog.
func (s *mediaService) ListMedia(ctx context.Context, page, limit int) (*models.MediaPage, error) {
	return s.list(ctx, catalog.Query{Page: page, Limit: limit})
}

// GetMedia returns a single item.
func (s *mediaService) GetMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	item, err := s.Repo.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: Media item not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return item, nil
}

// SearchMedia returns every item whose name contains query. It is not paginated.
func (s *mediaService) SearchMedia(ctx context.Context, query string) (*models.MediaPage, error) {
	return s.list(ctx, catalog.Query{Search: strings.TrimSpace(query)})
}

// ListByType filters by the "movies" or "tv-shows" segment.
func (s *mediaService) ListByType(ctx context.Context, segment string, page, limit int) (*models.MediaPage, error) {
	mediaType, ok := catalog.ResolveType(segment)
	if !ok {
		return nil, fmt.Errorf("%w: Invalid media type", ErrValidation)
	}
	return s.list(ctx, catalog.Query{Type: mediaType, Page: page, Limit: limit})
}

// ListByGenre filters by genre, ignoring case.
func (s *mediaService) ListByGenre(ctx context.Context, genre string, page, limit int) (*models.MediaPage, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, fmt.Errorf("%w: Genre is required", ErrValidation)
	}
	return s.list(ctx, catalog.Query{Genre: genre, Page: page, Limit: limit})
}

// ListByAuthor returns the items owned by author. An author without items is
// reported as not found.
func (s *mediaService) ListByAuthor(ctx context.Context, author string, page, limit int) (*models.MediaPage, error) {
	if author == "" {
		return nil, fmt.Errorf("%w: Username is required", ErrValidation)
	}
	result, err := s.list(ctx, catalog.Query{Author: author, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	if result.TotalItems == 0 {
		return nil, fmt.Errorf("%w: No media found for this user", ErrNotFound)
	}
	return result, nil
}

// === Mutations ===

// CreateMedia validates the form input, stores the images and appends the item.
func (s *mediaService) CreateMedia(ctx context.Context, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error) {
	item, err := buildMediaItem(input)
	if err != nil {
		return nil, err
	}

	saved, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}
	if ref, ok := saved[FieldAvatar]; ok {
		item.Avatar = ref
	}
	if ref, ok := saved[FieldBackground]; ok {
		item.Background = ref
	}

	created, err := s.Repo.CreateMedia(ctx, item)
	if err != nil {
		s.discardImages(saved)
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	logging.Log.Infof("MediaService: created media %d '%s'", created.ID, created.Name)
	return created, nil
}

// UpdateMedia merges the truthy fields of input into the stored item.
func (s *mediaService) UpdateMedia(ctx context.Context, id int64, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error) {
	patch, err := parseMediaPatch(input)
	if err != nil {
		return nil, err
	}

	saved, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}

	var replaced []string
	updated, err := s.Repo.UpdateMedia(ctx, id, func(item *models.MediaItem) error {
		replaced = replaced[:0]
		patch.applyTo(item)
		if ref, ok := saved[FieldAvatar]; ok {
			if item.Avatar != "" && item.Avatar != ref {
				replaced = append(replaced, item.Avatar)
			}
			item.Avatar = ref
		}
		if ref, ok := saved[FieldBackground]; ok {
			if item.Background != "" && item.Background != ref {
				replaced = append(replaced, item.Background)
			}
			item.Background = ref
		}
		return nil
	})
	if err != nil {
		s.discardImages(saved)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: Media item not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update media %d: %w", id, err)
	}

	for _, ref := range replaced {
		if err := s.Storage.DeleteImage(ref); err != nil {
			logging.Log.Warnf("MediaService: failed to remove replaced image '%s': %v", ref, err)
		}
	}
	return updated, nil
}

// DeleteMedia removes the item and its image files.
func (s *mediaService) DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	removed, err := s.Repo.DeleteMedia(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: Media item not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete media %d: %w", id, err)
	}

	for _, ref := range []string{removed.Avatar, removed.Background} {
		if err := s.Storage.DeleteImage(ref); err != nil {
			logging.Log.Warnf("MediaService: failed to remove image '%s' of media %d: %v", ref, id, err)
		}
	}
	return removed, nil
}

// === Images ===

// saveImages stores every provided upload. If one fails, the ones already
// written are removed again.
func (s *mediaService) saveImages(images models.ImageUploads) (map[string]string, error) {
	saved := map[string]string{}
	uploads := []struct {
		field  string
		header *multipart.FileHeader
	}{
		{FieldAvatar, images.Avatar},
		{FieldBackground, images.Background},
	}
	for _, u := range uploads {
		if u.header == nil {
			continue
		}
		ref, err := s.Storage.SaveImage(u.field, u.header)
		if err != nil {
			s.discardImages(saved)
			return nil, err
		}
		saved[u.field] = ref
	}
	return saved, nil
}

func (s *mediaService) discardImages(saved map[string]string) {
	for _, ref := range saved {
		if err := s.Storage.DeleteImage(ref); err != nil {
			logging.Log.Warnf("MediaService: failed to discard image '%s': %v", ref, err)
		}
	}
}

// === Input parsing ===

// buildMediaItem checks the required fields and converts the form values.
func buildMediaItem(input models.MediaInput) (*models.MediaItem, error) {
	required := []struct {
		name, value string
	}{
		{"name", input.Name},
		{"description", input.Description},
		{"rating", input.Rating},
		{"type", input.Type},
		{"status", input.Status},
		{"author", input.Author},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: Missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	patch, err := parseMediaPatch(input)
	if err != nil {
		return nil, err
	}
	item := &models.MediaItem{Genres: models.Genres{}}
	patch.applyTo(item)
	return item, nil
}

// mediaPatch holds the parsed, truthy values of a form submission.
type mediaPatch struct {
	strings  map[string]string
	rating   *float64
	ints     map[string]int
	genres   models.Genres
	hasGenre bool
}

func parseMediaPatch(input models.MediaInput) (*mediaPatch, error) {
	p := &mediaPatch{strings: map[string]string{}, ints: map[string]int{}}

	for field, value := range map[string]string{
		"name":           input.Name,
		"description":    input.Description,
		"title":          input.Title,
		"status":         input.Status,
		"author":         input.Author,
		"release_date":   input.ReleaseDate,
		"first_air_date": input.FirstAirDate,
		"last_air_date":  input.LastAirDate,
	} {
		if v := strings.TrimSpace(value); v != "" {
			p.strings[field] = v
		}
	}

	if v := strings.TrimSpace(input.Type); v != "" {
		if !models.MediaType(v).Valid() {
			return nil, fmt.Errorf("%w: type must be %q or %q", ErrValidation, models.TypeMovie, models.TypeTVShow)
		}
		p.strings["type"] = v
	}

	if v := strings.TrimSpace(input.Rating); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(rating, 0) || math.IsNaN(rating) {
			return nil, fmt.Errorf("%w: rating must be a number", ErrValidation)
		}
		if rating != 0 {
			p.rating = &rating
		}
	}

	for field, value := range map[string]string{
		"number_of_seasons":  input.NumberOfSeasons,
		"number_of_episodes": input.NumberOfEpisodes,
		"episode_run_time":   input.EpisodeRunTime,
	} {
		v := strings.TrimSpace(value)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrValidation, field)
		}
		if n != 0 {
			p.ints[field] = n
		}
	}

	if genres := catalog.NormalizeGenres(input.Genres); len(genres) > 0 {
		p.genres = genres
		p.hasGenre = true
	}
	return p, nil
}

// applyTo overwrites only the fields present in the patch.
func (p *mediaPatch) applyTo(item *models.MediaItem) {
	for field, v := range p.strings {
		v := v
		switch field {
		case "name":
			item.Name = v
		case "description":
			item.Description = v
		case "title":
			item.Title = v
		case "status":
			item.Status = v
		case "author":
			item.Author = v
		case "type":
			item.Type = models.MediaType(v)
		case "release_date":
			item.ReleaseDate = &v
		case "first_air_date":
			item.FirstAirDate = &v
		case "last_air_date":
			item.LastAirDate = &v
		}
	}
	if p.rating != nil {
		item.Rating = *p.rating
	}
	for field, n := range p.ints {
		n := n
		switch field {
		case "number_of_seasons":
			item.NumberOfSeasons = &n
		case "number_of_episodes":
			item.NumberOfEpisodes = &n
		case "episode_run_time":
			item.EpisodeRunTime = &n
		}
	}
	if p.hasGenre {
		item.Genres = append(models.Genres{}, p.genres...)
	}
}
