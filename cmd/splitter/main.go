// Command splitter splits a combined multi-storm best-track file into one
// file per storm under the output directory.
//
// Usage:
//
//	splitter [flags] <input-file>
//
// Configuration comes from the environment (OUTPUT_DIR, LOG_LEVEL,
// LOG_FORMAT, HTTP_ADDR, KAFKA_*); flags override per invocation. Setting
// HTTP_ADDR exposes /healthz, /readyz, and /metrics for the duration of the
// run. With KAFKA_ANNOUNCE_ENABLED=true each completed storm file is
// announced on the configured topic for downstream extraction services.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/storm-track-splitter/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-track-splitter/internal/adapter/kafka"
	"github.com/couchcryptid/storm-track-splitter/internal/config"
	"github.com/couchcryptid/storm-track-splitter/internal/observability"
	"github.com/couchcryptid/storm-track-splitter/internal/splitter"
)

func main() {
	outDir := flag.String("out", "", "output directory (default $OUTPUT_DIR or \"single_TC\")")
	appendMode := flag.Bool("append", false, "append to existing per-storm files instead of truncating")
	strict := flag.Bool("strict", false, "fail on records before the first storm header")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: splitter [flags] <input-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Announcements are feature-flagged via KAFKA_ANNOUNCE_ENABLED.
	var announcer splitter.Announcer
	var kafkaCloser *kafkaadapter.Announcer
	if cfg.AnnounceEnabled {
		kafkaCloser = kafkaadapter.NewAnnouncer(cfg, logger)
		announcer = kafkaCloser
		logger.Info("kafka announcements enabled", "topic", cfg.KafkaAnnounceTopic, "brokers", cfg.KafkaBrokers)
	}

	s := splitter.New(splitter.Options{
		OutDir: cfg.OutputDir,
		Append: *appendMode,
		Strict: *strict,
	}, announcer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional metrics endpoint for watching long archive runs.
	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, s, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	exitCode := 0
	if _, err := s.Split(ctx, flag.Arg(0)); err != nil {
		logger.Error("split failed", "input", flag.Arg(0), "error", err)
		exitCode = 1
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if kafkaCloser != nil {
		if err := kafkaCloser.Close(); err != nil {
			logger.Error("kafka announcer close error", "error", err)
		}
	}

	os.Exit(exitCode)
}
