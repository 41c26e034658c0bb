package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/logger"
	"github.com/aleister1102/webdiff/internal/merge"
	"github.com/aleister1102/webdiff/internal/reporter"
	"github.com/aleister1102/webdiff/internal/server"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/aleister1102/webdiff/internal/testrunner"
)

func main() {
	flags := parseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config from '%s': %v", flags.ConfigFile, err)
	}
	if flags.ListenAddr != "" {
		gCfg.ServerConfig.ListenAddr = flags.ListenAddr
	}
	if flags.StoragePath != "" {
		gCfg.StorageConfig.StoragePath = flags.StoragePath
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("storage", gCfg.StorageConfig.StoragePath).Msg("Configuration loaded")

	gateway := storage.NewGateway(gCfg.StorageConfig, zLogger)
	engine := compare.NewEngine(gateway, zLogger, gCfg.DifferConfig, gCfg.CompareConfig)
	merger := merge.NewEngine(gateway, zLogger)

	resultStore := testrunner.NewResultStore(gateway, zLogger)
	runner := testrunner.NewRunner(gateway, engine, resultStore, gCfg.TestRunnerConfig, zLogger)

	reportStore := reporter.NewReportStore(gateway, gCfg.ReporterConfig.RetentionDays, zLogger)
	generator, err := reporter.NewGenerator(gateway, engine, reportStore, gCfg.ReporterConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize report generator")
	}

	srv := server.NewServer(gCfg.ServerConfig, gateway, engine, merger, runner, generator, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zLogger.Fatal().Err(err).Msg("HTTP server failed")
	}
	zLogger.Info().Msg("Shutdown complete")
}
