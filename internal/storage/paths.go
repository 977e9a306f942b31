// filepath: internal/storage/paths.go
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ImagesDir is the sub-directory of the upload root holding images.
	ImagesDir = "images"
	// PublicPrefix is the URL prefix under which the upload root is served.
	PublicPrefix = "resources"
)

// ImagePath returns the absolute location of fileName inside the image
// directory, creating the directory if needed.
func ImagePath(uploadRoot, fileName string) (string, error) {
	dir := filepath.Join(uploadRoot, ImagesDir)
	full, err := within(dir, fileName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create directory structure: %w", err)
	}
	return full, nil
}

// PublicRef is the path stored on a media record for an uploaded image,
// e.g. "resources/images/avatar-01h....png".
func PublicRef(fileName string) string {
	return path.Join(PublicPrefix, ImagesDir, fileName)
}

// ResolveRef maps a stored public reference back to its location on disk.
// References that do not point into the image directory are rejected.
func ResolveRef(uploadRoot, ref string) (string, error) {
	prefix := path.Join(PublicPrefix, ImagesDir) + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", fmt.Errorf("invalid path: %q is not a stored image", ref)
	}
	return within(filepath.Join(uploadRoot, ImagesDir), strings.TrimPrefix(ref, prefix))
}

// within joins name onto dir and ensures the result stays strictly inside dir.
func within(dir, name string) (string, error) {
	cleanedDir := filepath.Clean(dir)
	full := filepath.Clean(filepath.Join(cleanedDir, name))
	if !strings.HasPrefix(full, cleanedDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path: potential path traversal")
	}
	return full, nil
}

// StoredImage describes one file found in the image directory.
type StoredImage struct {
	Ref     string
	Size    int64
	ModTime time.Time
}

// ListImages returns every regular file in the image directory of uploadRoot.
// A missing directory yields an empty list.
func ListImages(uploadRoot string) ([]StoredImage, error) {
	entries, err := os.ReadDir(filepath.Join(uploadRoot, ImagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read image directory: %w", err)
	}

	images := make([]StoredImage, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed while listing
		}
		images = append(images, StoredImage{
			Ref:     PublicRef(e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return images, nil
}
