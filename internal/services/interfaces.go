// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"mediacatalog/internal/models"
	"mime/multipart"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "media.create", "user.login")
	// actor: who did it (author name or email)
	// resource: what was affected (e.g., "Media:12")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// MediaService defines the interface for the media catalog.
type MediaService interface {
	ListMedia(ctx context.Context, page, limit int) (*models.MediaPage, error)
	GetMedia(ctx context.Context, id int64) (*models.MediaItem, error)
	SearchMedia(ctx context.Context, query string) (*models.MediaPage, error)
	ListByType(ctx context.Context, segment string, page, limit int) (*models.MediaPage, error)
	ListByGenre(ctx context.Context, genre string, page, limit int) (*models.MediaPage, error)
	ListByAuthor(ctx context.Context, author string, page, limit int) (*models.MediaPage, error)
	CreateMedia(ctx context.Context, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error)
	UpdateMedia(ctx context.Context, id int64, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error)
	DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error)
}

// UserService defines the interface for the user service.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// TransferService moves whole catalogs in and out of the configured store.
type TransferService interface {
	Export(ctx context.Context) (*models.Document, error)
	Import(ctx context.Context, doc *models.Document) error
}

// ImageStorage persists uploaded images and hands back their public path.
type ImageStorage interface {
	SaveImage(field string, header *multipart.FileHeader) (string, error)
	DeleteImage(ref string) error
}
