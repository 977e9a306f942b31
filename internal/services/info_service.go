// filepath: internal/services/info_service.go
package services

import (
	"mediacatalog/internal/models"
	"time"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version       string
	StartTime     time.Time
	StorageDriver string
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, storageDriver string) *infoService {
	return &infoService{
		Version:       version,
		StartTime:     startTime,
		StorageDriver: storageDriver,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:   "Media Catalog API",
		Version:       s.Version,
		UptimeSince:   s.StartTime,
		StorageDriver: s.StorageDriver,
	}
}
