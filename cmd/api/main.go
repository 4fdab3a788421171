package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"filestorage/internal/http/handlers"
	httpapi "filestorage/internal/http/httpapi"
	"filestorage/internal/infra"
	"filestorage/internal/storage"
)

const janitorInterval = 10 * time.Minute

func main() {
	// both files are optional; godotenv never overrides, so .env.local wins
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := os.MkdirAll(cfg.StorageRoot, cfg.StorageDirMode); err != nil {
		logger.Fatal().Err(err).Str("root", cfg.StorageRoot).Msg("failed to create storage root")
	}
	if err := os.MkdirAll(cfg.UploadTmpDir, 0o700); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadTmpDir).Msg("failed to create upload temp dir")
	}

	store := storage.NewLocalFileStorage(cfg.StorageRoot, cfg.StorageBaseURL, logger)
	store.SetDefaultDirMode(cfg.StorageDirMode)
	store.SetUploadDir(cfg.UploadTmpDir)

	app := handlers.NewApp(store, logger, cfg.UploadTmpDir, cfg.UploadMaxBytes)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMin:    cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runJanitor(ctx, logger, cfg.UploadTmpDir, cfg.UploadJanitorMaxAge)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("root", cfg.StorageRoot).
			Str("base_url", cfg.StorageBaseURL).
			Msg("file storage listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// runJanitor removes upload temp files abandoned by interrupted requests.
func runJanitor(ctx context.Context, logger infra.Logger, dir string, maxAge time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		removed, err := storage.CleanOrphanedUploads(dir, storage.UploadTempPrefix, maxAge)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("upload janitor failed")
		} else if removed > 0 {
			logger.Info().Int("removed", removed).Msg("removed orphaned uploads")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
