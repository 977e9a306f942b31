// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"fmt"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/logging"
	"time"
)

// Dependencies defines the required services for the housekeeping tasks.
type Dependencies struct {
	Media   MediaLister
	Storage ImageStore
}

// Report summarizes one sweep.
type Report struct {
	ImagesScanned   int
	ImagesDeleted   int
	SpaceFreedBytes int64
	Message         string
}

// SweepOrphanedImages deletes stored images that no media record references.
// Files younger than grace are left alone: an upload is written before its
// record is stored, so a fresh file may still be claimed.
func SweepOrphanedImages(ctx context.Context, deps Dependencies, grace time.Duration) (*Report, error) {
	items, _, err := deps.Media.ListMedia(ctx, catalog.Query{})
	if err != nil {
		return nil, fmt.Errorf("could not list media: %w", err)
	}

	referenced := make(map[string]struct{}, len(items)*2)
	for _, item := range items {
		if item.Avatar != "" {
			referenced[item.Avatar] = struct{}{}
		}
		if item.Background != "" {
			referenced[item.Background] = struct{}{}
		}
	}

	images, err := deps.Storage.ListImages()
	if err != nil {
		return nil, fmt.Errorf("could not list images: %w", err)
	}

	report := &Report{ImagesScanned: len(images)}
	cutoff := time.Now().Add(-grace)

	for _, img := range images {
		if _, ok := referenced[img.Ref]; ok {
			continue
		}
		if img.ModTime.After(cutoff) {
			continue
		}
		if err := deps.Storage.DeleteImage(img.Ref); err != nil {
			logging.Log.Warnf("Housekeeping: Failed to delete orphaned image '%s': %v", img.Ref, err)
			continue
		}
		report.ImagesDeleted++
		report.SpaceFreedBytes += img.Size
	}

	report.Message = fmt.Sprintf("Housekeeping complete. %d of %d images deleted, freeing %s.",
		report.ImagesDeleted, report.ImagesScanned, formatBytes(report.SpaceFreedBytes))

	return report, nil
}

// formatBytes renders a byte count with a binary unit suffix, e.g. "1.5 MB".
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
