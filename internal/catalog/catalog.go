// filepath: internal/catalog/catalog.go
// Package catalog holds the in-memory query operations over media items:
// pagination, free-text search and the type, genre and author filters.
package catalog

import (
	"math"
	"mediacatalog/internal/models"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 8
)

// Query describes a filtered, optionally paginated listing.
// Zero values disable the corresponding filter; Limit <= 0 disables pagination.
type Query struct {
	Search string
	Type   models.MediaType
	Genre  string
	Author string
	Page   int
	Limit  int
}

var typeSegments = map[string]models.MediaType{
	"movies":   models.TypeMovie,
	"tv-shows": models.TypeTVShow,
}

// ResolveType maps a URL segment ("movies", "tv-shows") to a media type.
func ResolveType(segment string) (models.MediaType, bool) {
	t, ok := typeSegments[segment]
	return t, ok
}

// ParsePagination reads page and limit query values. Missing or malformed
// values fall back to the defaults and both are floored to 1.
func ParsePagination(pageStr, limitStr string) (int, int) {
	page := parsePositive(pageStr, DefaultPage)
	limit := parsePositive(limitStr, DefaultLimit)
	return page, limit
}

func parsePositive(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}

// Offset returns the index of the first item on the given page, saturating at
// math.MaxInt.
func Offset(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Paginate returns items[(page-1)*limit : (page-1)*limit+limit] clipped to the
// slice bounds. A page past the end yields an empty, non-nil slice.
func Paginate(items []models.MediaItem, page, limit int) []models.MediaItem {
	if limit <= 0 {
		return items
	}
	start := Offset(page, limit)
	if start >= len(items) {
		return []models.MediaItem{}
	}
	end := len(items)
	if limit < end-start {
		end = start + limit
	}
	return items[start:end]
}

// MatchesSearch reports whether the item name contains query, ignoring case.
func MatchesSearch(item models.MediaItem, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), strings.ToLower(query))
}

// HasGenre reports whether any of the item's genres equals genre, ignoring case.
func HasGenre(item models.MediaItem, genre string) bool {
	for _, g := range item.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Matches applies every non-empty filter of q to item.
func Matches(item models.MediaItem, q Query) bool {
	if !MatchesSearch(item, q.Search) {
		return false
	}
	if q.Type != "" && item.Type != q.Type {
		return false
	}
	if q.Genre != "" && !HasGenre(item, q.Genre) {
		return false
	}
	if q.Author != "" && item.Author != q.Author {
		return false
	}
	return true
}

// Filter returns the items matching q, preserving order.
func Filter(items []models.MediaItem, q Query) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if Matches(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Apply filters items, then paginates them. The returned total is the size
// of the filtered set, not of the page.
func Apply(items []models.MediaItem, q Query) ([]models.MediaItem, int) {
	filtered := Filter(items, q)
	return Paginate(filtered, q.Page, q.Limit), len(filtered)
}

// NormalizeGenres splits comma-joined values and trims every genre.
func NormalizeGenres(values []string) models.Genres {
	return models.SplitGenres(values)
}
