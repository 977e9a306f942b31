// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"mediacatalog/internal/api"
	"mediacatalog/internal/api/handlers"
	"mediacatalog/internal/audit"
	"mediacatalog/internal/housekeeping"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// runServer starts the HTTP server and shuts it down gracefully on SIGINT or SIGTERM.
func runServer() error {
	repo, err := openRepository(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// Service Initialization
	storageService := services.NewStorageService(cfg)
	infoService := services.NewInfoService(Version, StartTime, cfg.Database.Driver)
	mediaService := services.NewMediaService(repo, storageService)
	userService := services.NewUserService(repo)

	// Background sweeper for images no record references any more
	if cfg.CleanupInterval > 0 {
		hkService := housekeeping.NewService(housekeeping.Dependencies{
			Media:   repo,
			Storage: storageService,
		}, cfg.CleanupInterval)
		hkService.Start()
		defer hkService.Stop()
	}

	// Auditor Initialization
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	h := handlers.NewHandlers(
		infoService,
		mediaService,
		userService,
		loggerAuditor,
		cfg,
	)

	r := api.SetupRouter(h, cfg)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (store: %s, max upload: %s)", serverAddr, cfg.Database.Driver, cfg.Server.MaxUploadSize)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-stop:
	}
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
