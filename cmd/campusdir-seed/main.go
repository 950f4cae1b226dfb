// Command campusdir-seed loads a YAML fixture of buildings, rooms, common areas and areas
// into the configured store in one atomic commit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/bootstrap"
	"github.com/kailas-cloud/campusdir/internal/config"
	logpkg "github.com/kailas-cloud/campusdir/internal/logger"
	"github.com/kailas-cloud/campusdir/internal/seed"
	"github.com/kailas-cloud/campusdir/internal/version"
)

func main() {
	fixturePath := flag.String("f", "fixtures/campus.yaml", "path to the YAML fixture")
	dryRun := flag.Bool("dry-run", false, "validate the fixture without writing")
	flag.Parse()

	if err := run(*fixturePath, *dryRun); err != nil {
		fmt.Fprintln(os.Stderr, "campusdir-seed:", err)
		os.Exit(1)
	}
}

func run(fixturePath string, dryRun bool) error {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fixture, err := seed.LoadFile(fixturePath)
	if err != nil {
		return err
	}

	logger.Info("Fixture loaded",
		zap.String("version", version.Version),
		zap.String("path", fixturePath),
		zap.Int("buildings", len(fixture.Buildings)),
		zap.Int("areas", len(fixture.Areas)),
	)
	if dryRun {
		_, stats, err := fixture.Writes()
		if err != nil {
			return err
		}
		logger.Info("Dry run, nothing written", zap.Int("documents", stats.Total()))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := seed.Apply(ctx, store, fixture)
	if err != nil {
		return err
	}
	logger.Info("Seed complete",
		zap.String("db_driver", cfg.Database.Driver),
		zap.Int("documents", stats.Total()),
	)
	return nil
}
