package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/bootstrap"
	"github.com/kailas-cloud/campusdir/internal/config"
	domsearch "github.com/kailas-cloud/campusdir/internal/domain/search"
	logpkg "github.com/kailas-cloud/campusdir/internal/logger"
	"github.com/kailas-cloud/campusdir/internal/metrics"
	arearepo "github.com/kailas-cloud/campusdir/internal/repository/area"
	buildingrepo "github.com/kailas-cloud/campusdir/internal/repository/building"
	roomrepo "github.com/kailas-cloud/campusdir/internal/repository/room"
	chiTransport "github.com/kailas-cloud/campusdir/internal/transport/chi"
	areauc "github.com/kailas-cloud/campusdir/internal/usecase/area"
	buildinguc "github.com/kailas-cloud/campusdir/internal/usecase/building"
	healthuc "github.com/kailas-cloud/campusdir/internal/usecase/health"
	roomuc "github.com/kailas-cloud/campusdir/internal/usecase/room"
	searchuc "github.com/kailas-cloud/campusdir/internal/usecase/search"
	"github.com/kailas-cloud/campusdir/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting campusdir API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("strict_not_found", cfg.API.StrictNotFound),
	)

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	metrics.RegisterSearchMetrics()

	buildingRepo := buildingrepo.New(store)
	roomRepo := roomrepo.New(store)
	areaRepo := arearepo.New(store)

	prefixes := make([]domsearch.CodePrefix, 0, len(cfg.Search.Prefixes))
	for _, p := range cfg.Search.Prefixes {
		prefixes = append(prefixes, domsearch.CodePrefix{Prefix: p.Prefix, Meaning: p.Meaning})
	}
	prefixTable := domsearch.NewPrefixTable(prefixes)

	server := chiTransport.NewServer(
		buildinguc.New(buildingRepo),
		roomuc.New(roomRepo),
		areauc.New(areaRepo),
		searchuc.New(buildingRepo, roomRepo, areaRepo, prefixTable),
		healthuc.New(store, healthuc.DefaultTimeout),
		logger,
		chiTransport.Options{StrictNotFound: cfg.API.StrictNotFound},
	)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", addr),
			zap.Int("code_prefixes", len(prefixTable.Prefixes())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
