// filepath: internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/storage"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

var _ ImageStorage = (*StorageService)(nil)

// Image extensions accepted for upload and the content type each must sniff as.
var allowedImageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
}

// StorageService writes uploaded images below the configured upload directory.
// It wraps the 'internal/storage' package to be injectable.
type StorageService struct {
	UploadDir string
	MaxSize   int64
}

// NewStorageService creates a new StorageService.
func NewStorageService(cfg *config.Config) *StorageService {
	return &StorageService{
		UploadDir: cfg.Storage.UploadDir,
		MaxSize:   cfg.MaxUploadSizeBytes,
	}
}

// SaveImage validates and stores one uploaded image. The file is named
// "<field>-<ulid><ext>" and the returned value is its public reference.
func (s *StorageService) SaveImage(field string, header *multipart.FileHeader) (string, error) {
	if s.MaxSize > 0 && header.Size > s.MaxSize {
		return "", fmt.Errorf("%w: %s exceeds the maximum upload size", ErrTooLarge, field)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expected, ok := allowedImageTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: Only images are allowed (jpeg, jpg, png)", ErrUnsupported)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if sniffed := http.DetectContentType(head); sniffed != expected {
		logging.Log.Debugf("SaveImage: rejected %s upload '%s' sniffed as %s", field, header.Filename, sniffed)
		return "", fmt.Errorf("%w: Only images are allowed (jpeg, jpg, png)", ErrUnsupported)
	}

	fileName := fmt.Sprintf("%s-%s%s", field, strings.ToLower(ulid.Make().String()), ext)
	path, err := storage.ImagePath(s.UploadDir, fileName)
	if err != nil {
		return "", err
	}

	size, err := storage.SaveFile(io.MultiReader(bytes.NewReader(head), file), path)
	if err != nil {
		return "", err
	}

	logging.Log.Debugf("SaveImage: stored %s (%d bytes) at %s", field, size, path)
	return storage.PublicRef(fileName), nil
}

// DeleteImage removes a previously stored image. Empty references are ignored.
func (s *StorageService) DeleteImage(ref string) error {
	if ref == "" {
		return nil
	}
	path, err := storage.ResolveRef(s.UploadDir, ref)
	if err != nil {
		logging.Log.Warnf("Refusing to delete image '%s': %v", ref, err)
		return err
	}
	return storage.RemoveFile(path)
}

// ListImages reports every image currently stored below the upload directory.
func (s *StorageService) ListImages() ([]storage.StoredImage, error) {
	return storage.ListImages(s.UploadDir)
}
