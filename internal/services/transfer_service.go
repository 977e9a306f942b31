// filepath: internal/services/transfer_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var _ TransferService = (*transferService)(nil)

// transferService imports and exports whole flat-file documents.
type transferService struct {
	Repo repository.Repository
	Cost int
}

// NewTransferService creates a new TransferService.
func NewTransferService(repo repository.Repository) *transferService {
	return &transferService{Repo: repo, Cost: bcrypt.DefaultCost}
}

// Export returns the complete store content.
func (s *transferService) Export(ctx context.Context) (*models.Document, error) {
	return s.Repo.Export(ctx)
}

// Import validates doc and replaces the store with it. Plaintext passwords are
// hashed on the way in.
func (s *transferService) Import(ctx context.Context, doc *models.Document) error {
	prepared, err := s.prepare(doc)
	if err != nil {
		return err
	}
	if err := s.Repo.Import(ctx, prepared); err != nil {
		return fmt.Errorf("failed to import document: %w", err)
	}
	return nil
}

func (s *transferService) prepare(doc *models.Document) (*models.Document, error) {
	out := &models.Document{
		Media: make([]models.MediaItem, 0, len(doc.Media)),
		User:  make([]models.DocumentUser, 0, len(doc.User)),
	}

	ids := map[int64]bool{}
	for _, item := range doc.Media {
		if item.ID < 1 {
			return nil, fmt.Errorf("%w: media %q has no valid id", ErrValidation, item.Name)
		}
		if ids[item.ID] {
			return nil, fmt.Errorf("%w: duplicate media id %d", ErrValidation, item.ID)
		}
		if !item.Type.Valid() {
			return nil, fmt.Errorf("%w: media %d has unknown type %q", ErrValidation, item.ID, item.Type)
		}
		ids[item.ID] = true
		item.Genres = catalog.NormalizeGenres(item.Genres)
		out.Media = append(out.Media, item)
	}

	sort.Slice(out.Media, func(i, j int) bool { return out.Media[i].ID < out.Media[j].ID })

	emails := map[string]bool{}
	for _, u := range doc.User {
		if u.Email == "" {
			return nil, fmt.Errorf("%w: user %q has no email", ErrValidation, u.Name)
		}
		if emails[u.Email] {
			return nil, fmt.Errorf("%w: duplicate user email %s", ErrValidation, u.Email)
		}
		emails[u.Email] = true

		if !isBcryptHash(u.Password) {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.Cost)
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return nil, fmt.Errorf("%w: password of %s is longer than %d bytes", ErrValidation, u.Email, MaxPasswordBytes)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
			}
			logging.Log.Debugf("Import: hashed plaintext password of '%s'", u.Email)
			u.Password = string(hash)
		}
		out.User = append(out.User, u)
	}
	return out, nil
}

func isBcryptHash(s string) bool {
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return false
	}
	return strings.HasPrefix(s, "$2")
}
