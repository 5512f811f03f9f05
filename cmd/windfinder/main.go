package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchcryptid/wind-window-finder/internal/adapter/console"
	"github.com/couchcryptid/wind-window-finder/internal/adapter/file"
	"github.com/couchcryptid/wind-window-finder/internal/adapter/ftp"
	httpadapter "github.com/couchcryptid/wind-window-finder/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wind-window-finder/internal/adapter/kafka"
	"github.com/couchcryptid/wind-window-finder/internal/config"
	"github.com/couchcryptid/wind-window-finder/internal/observability"
	"github.com/couchcryptid/wind-window-finder/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		observability.NewLogger("info", "text", os.Stderr).Error("failed to load config", "error", err)
		return 1
	}

	// Months go to stdout; logs go to stderr.
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	metrics := observability.NewMetrics()

	var source pipeline.RecordSource
	if strings.HasPrefix(cfg.Input, "ftp://") {
		src, err := ftp.NewSource(cfg.Input, cfg.Delimiter, cfg.FTPTimeout)
		if err != nil {
			logger.Error("invalid input", "error", err)
			return 1
		}
		source = src
	} else {
		source = file.NewReader(cfg.Input, cfg.Delimiter)
	}

	sinks := pipeline.MultiSink{console.NewWriter(os.Stdout)}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		sinks = append(sinks, writer)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(source, sinks, logger, metrics)

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, p, metrics.Registry, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	_, runErr := p.Run(ctx, pipeline.Criteria{
		Predicate: cfg.Predicate(),
		Hours:     cfg.Hours,
		MinWind:   cfg.MinWind,
		MaxPrecip: cfg.MaxPrecip,
	})
	if runErr != nil {
		logger.Error("pipeline error", "input", cfg.Input, "error", runErr)
	}

	if cfg.PushgatewayURL != "" {
		// The run context may already be cancelled; pushing gets its own budget.
		pushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		pusher := observability.NewPusher(cfg.PushgatewayURL, "windfinder", metrics.Registry, cfg.ShutdownTimeout)
		if err := pusher.Push(pushCtx); err != nil {
			logger.Error("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
