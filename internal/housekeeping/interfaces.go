// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"context"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/models"
	"mediacatalog/internal/storage"
)

// ImageStore defines the storage methods required by the sweeper.
type ImageStore interface {
	ListImages() ([]storage.StoredImage, error)
	DeleteImage(ref string) error
}

// MediaLister is the slice of the repository the sweeper reads image
// references from. A zero Limit returns every record.
type MediaLister interface {
	ListMedia(ctx context.Context, q catalog.Query) ([]models.MediaItem, int, error)
}
