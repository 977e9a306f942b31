// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"encoding/json"
	"mime/multipart"
	"strings"
	"time"
)

// MediaType is the catalog label of a media item.
type MediaType string

const (
	TypeMovie  MediaType = "Movie"
	TypeTVShow MediaType = "TV Show"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	return t == TypeMovie || t == TypeTVShow
}

// Info represents general information about the service.
type Info struct {
	ServiceName   string    `json:"service_name"`
	Version       string    `json:"version"`
	UptimeSince   time.Time `json:"uptime_since"`
	StorageDriver string    `json:"storage_driver"`
}

// MediaItem is one catalog entry, either a movie or a TV show.
type MediaItem struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Title            string    `json:"title,omitempty"`
	Rating           float64   `json:"rating"`
	Type             MediaType `json:"type"`
	Status           string    `json:"status"`
	ReleaseDate      *string   `json:"release_date"`
	FirstAirDate     *string   `json:"first_air_date"`
	LastAirDate      *string   `json:"last_air_date"`
	NumberOfSeasons  *int      `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes *int      `json:"number_of_episodes,omitempty"`
	EpisodeRunTime   *int      `json:"episode_run_time,omitempty"`
	Genres           Genres    `json:"genres"`
	Author           string    `json:"author"`
	Avatar           string    `json:"avatar"`
	Background       string    `json:"background"`
}

// Genres is an ordered list of genre names. When decoding JSON it also accepts
// a single comma-joined string.
type Genres []string

// UnmarshalJSON accepts either ["Drama","Crime"] or "Drama, Crime".
func (g *Genres) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = Genres{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*g = SplitGenres(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*g = SplitGenres([]string{joined})
	return nil
}

// MarshalJSON always writes an array, never null.
func (g Genres) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(g))
}

// SplitGenres splits every value on commas, trims the parts and drops empty ones.
func SplitGenres(values []string) Genres {
	out := Genres{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID           int64  `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// DocumentUser is how a user is persisted in the flat-file document.
type DocumentUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Document is the flat-file database: every media item and every user.
type Document struct {
	Media []MediaItem    `json:"media"`
	User  []DocumentUser `json:"user"`
}

// MediaPage is a filtered, optionally paginated slice of the catalog.
// TotalItems counts the filtered set, not the page.
type MediaPage struct {
	TotalItems int         `json:"totalItems"`
	Data       []MediaItem `json:"data"`
}

// MediaInput carries the raw form values of a create or update request.
// Numeric fields stay strings so the service can report malformed values.
type MediaInput struct {
	Name             string
	Description      string
	Title            string
	Rating           string
	Type             string
	Status           string
	ReleaseDate      string
	FirstAirDate     string
	LastAirDate      string
	NumberOfSeasons  string
	NumberOfEpisodes string
	EpisodeRunTime   string
	Genres           []string
	Author           string
}

// ImageUploads holds the optional image files of a create or update request.
type ImageUploads struct {
	Avatar     *multipart.FileHeader
	Background *multipart.FileHeader
}

// Envelope is the uniform JSON response shape of the API.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	TotalItems *int        `json:"totalItems,omitempty"`
}

// UserPayload wraps a user inside an envelope's data field.
type UserPayload struct {
	User User `json:"user"`
}
