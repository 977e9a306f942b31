// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"context"
	"mediacatalog/internal/logging"
	"time"
)

const (
	// DefaultGracePeriod protects images whose media record is still being written.
	DefaultGracePeriod = 10 * time.Minute
	// MinCheckInterval is the minimum time between sweeps to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
)

// Service provides the background worker that removes orphaned images.
type Service struct {
	Deps     Dependencies
	Interval time.Duration
	Grace    time.Duration

	timer  *time.Timer
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewService creates a new housekeeping service instance. Intervals below
// MinCheckInterval are raised to it.
func NewService(deps Dependencies, interval time.Duration) *Service {
	if interval < MinCheckInterval {
		interval = MinCheckInterval
	}
	return &Service{
		Deps:     deps,
		Interval: interval,
		Grace:    DefaultGracePeriod,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	logging.Log.Infof("Starting background housekeeping service (every %v).", s.Interval)
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		defer close(s.doneCh)
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				s.timer.Reset(s.Interval)
				logging.Log.Debugf("Next housekeeping sweep scheduled in %v.", s.Interval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service and waits for a
// running sweep to finish.
func (s *Service) Stop() {
	logging.Log.Info("Stopping background housekeeping service.")
	close(s.stopCh)
	<-s.doneCh
}

// runChecks performs one sweep and logs its outcome.
func (s *Service) runChecks() {
	logging.Log.Debug("Housekeeping service: Sweeping orphaned images...")
	report, err := SweepOrphanedImages(context.Background(), s.Deps, s.Grace)
	if err != nil {
		logging.Log.Errorf("Housekeeping sweep failed: %v", err)
		return
	}
	if report.ImagesDeleted > 0 {
		logging.Log.Info(report.Message)
	} else {
		logging.Log.Debug(report.Message)
	}
}
