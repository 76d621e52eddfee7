package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drugmatch-service/internal/config"
	"drugmatch-service/internal/drugmatch/service"
	"drugmatch-service/internal/ocr"
	"drugmatch-service/internal/ocr/tesseract"
	serverhttp "drugmatch-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	// The catalog is loaded before the listener opens; no request ever sees a
	// partially built index.
	start := time.Now()
	cat, err := service.LoadCatalog(cfg.CatalogPath, cfg.CatalogHeaderRow)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("load catalog")
	}
	logger.Info().
		Str("path", cfg.CatalogPath).
		Int("rows", cat.Len()).
		Str("name_col", cat.NameColumn).
		Str("company_col", cat.CompanyColumn).
		Dur("elapsed", time.Since(start)).
		Msg("catalog loaded")

	matcher := service.NewMatcher(cat, cfg.MatchWorkers, logger)

	var reader *ocr.Reader
	if cfg.OCREnabled {
		reader = ocr.NewReader(tesseract.New(cfg.OCRLangs...), cfg.OCRMinConfidence, logger)
		logger.Info().Strs("langs", cfg.OCRLangs).Float64("min_conf", cfg.OCRMinConfidence).Msg("ocr enabled")
	}

	r := serverhttp.NewRouter(cfg, logger, matcher, reader)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
