// filepath: internal/repository/jsonfile/jsonfile.go
// Package jsonfile stores the whole catalog as one JSON document on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// JSONFileRepository keeps the document in a single file. Every operation
// reads the file; every mutation rewrites it while holding the lock.
type JSONFileRepository struct {
	path string
	mu   sync.RWMutex
}

var _ repository.Repository = (*JSONFileRepository)(nil)

// NewRepository prepares a store backed by the document at path.
// The file itself is created on the first write.
func NewRepository(path string) (*JSONFileRepository, error) {
	if path == "" {
		return nil, errors.New("jsonfile: empty document path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("jsonfile: failed to create directory %s: %w", dir, err)
		}
	}
	return &JSONFileRepository{path: path}, nil
}

func (s *JSONFileRepository) Close() error { return nil }

// load reads the document. A missing file is an empty catalog.
func (s *JSONFileRepository) load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &models.Document{Media: []models.MediaItem{}, User: []models.DocumentUser{}}, nil
		}
		return nil, fmt.Errorf("jsonfile: failed to read %s: %w", s.path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonfile: failed to parse %s: %w", s.path, err)
	}
	if doc.Media == nil {
		doc.Media = []models.MediaItem{}
	}
	if doc.User == nil {
		doc.User = []models.DocumentUser{}
	}
	return &doc, nil
}

// save replaces the document through a temp file and rename, so readers
// never observe a partially written file.
func (s *JSONFileRepository) save(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: failed to encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("jsonfile: failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFileRepository) view(ctx context.Context) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// mutate runs fn on the current document and saves it if fn succeeds.
func (s *JSONFileRepository) mutate(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func indexOfMedia(items []models.MediaItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONFileRepository) ListMedia(ctx context.Context, q catalog.Query) ([]models.MediaItem, int, error) {
	doc, err := s.view(ctx)
	if err != nil {
		return nil, 0, err
	}
	// Hand-edited documents may be out of order; listings are by id.
	sort.SliceStable(doc.Media, func(i, j int) bool { return doc.Media[i].ID < doc.Media[j].ID })
	page, total := catalog.Apply(doc.Media, q)
	return page, total, nil
}

func (s *JSONFileRepository) GetMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	doc, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfMedia(doc.Media, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	item := doc.Media[i]
	return &item, nil
}

func (s *JSONFileRepository) CreateMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	created := *item
	err := s.mutate(ctx, func(doc *models.Document) error {
		var maxID int64
		for _, m := range doc.Media {
			if m.ID > maxID {
				maxID = m.ID
			}
		}
		created.ID = maxID + 1
		doc.Media = append(doc.Media, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Log.Debugf("jsonfile: created media %d", created.ID)
	return &created, nil
}

func (s *JSONFileRepository) UpdateMedia(ctx context.Context, id int64, apply func(*models.MediaItem) error) (*models.MediaItem, error) {
	var updated models.MediaItem
	err := s.mutate(ctx, func(doc *models.Document) error {
		i := indexOfMedia(doc.Media, id)
		if i < 0 {
			return repository.ErrNotFound
		}
		item := doc.Media[i]
		if err := apply(&item); err != nil {
			return err
		}
		item.ID = id
		doc.Media[i] = item
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *JSONFileRepository) DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	var removed models.MediaItem
	err := s.mutate(ctx, func(doc *models.Document) error {
		i := indexOfMedia(doc.Media, id)
		if i < 0 {
			return repository.ErrNotFound
		}
		removed = doc.Media[i]
		doc.Media = append(doc.Media[:i], doc.Media[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *JSONFileRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	for i, u := range doc.User {
		if u.Email == email {
			return &models.User{ID: int64(i + 1), Name: u.Name, Email: u.Email, PasswordHash: u.Password}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *JSONFileRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	err := s.mutate(ctx, func(doc *models.Document) error {
		for _, u := range doc.User {
			if u.Email == user.Email {
				return repository.ErrUserExists
			}
		}
		doc.User = append(doc.User, models.DocumentUser{
			Name:     user.Name,
			Email:    user.Email,
			Password: user.PasswordHash,
		})
		created.ID = int64(len(doc.User))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *JSONFileRepository) Export(ctx context.Context) (*models.Document, error) {
	return s.view(ctx)
}

func (s *JSONFileRepository) Import(ctx context.Context, doc *models.Document) error {
	return s.mutate(ctx, func(current *models.Document) error {
		current.Media = append([]models.MediaItem{}, doc.Media...)
		current.User = append([]models.DocumentUser{}, doc.User...)
		return nil
	})
}
