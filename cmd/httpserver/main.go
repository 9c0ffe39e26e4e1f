package main

import (
	"agenda/agenda"
	"agenda/httpserver"
	"agenda/pkg/config"
	"agenda/pkg/logger"
	"agenda/pkg/metrics"
	"agenda/pkg/sentry"
	"agenda/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := sentry.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open storage", "backend", cfg.Agenda.Backend, "error", err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Errorw("cannot close storage", "error", err)
		}
	}()

	m := metrics.New()
	opts := []agenda.Option{agenda.WithLogger(log), agenda.WithMetrics(m)}
	if !cfg.Agenda.Validate {
		opts = append(opts, agenda.WithoutValidation())
	}
	svc := agenda.New(backend, opts...)

	server := httpserver.Default(cfg,
		httpserver.WithService(svc),
		httpserver.WithLogger(log),
		httpserver.WithMetrics(m),
	)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "backend", cfg.Agenda.Backend,
			"validate", cfg.Agenda.Validate, "caller_slots", cfg.Agenda.CallerSlots)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("cannot shutdown server", "error", err)
		}
	}
}
