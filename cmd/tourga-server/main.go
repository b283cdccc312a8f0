// SPDX-License-Identifier: MIT

// Command tourga-server exposes the optimizer over HTTP with live progress on
// /ws. Configuration comes from TOURGA_* environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/tourga/config"
	"github.com/katalvlaran/tourga/report/natspub"
	"github.com/katalvlaran/tourga/report/wshub"
	"github.com/katalvlaran/tourga/server"
	"github.com/katalvlaran/tourga/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tourga-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := wshub.New(logger)
	defer hub.Close()

	opts := []server.Option{
		server.WithDefaults(cfg.GAConfig()),
		server.WithMaxRuns(cfg.Server.MaxRuns),
		server.WithMaxCities(cfg.Server.MaxCities),
		server.WithProgressRate(cfg.Server.ProgressRate),
		server.WithHub(hub),
		server.WithLogger(logger),
	}

	if cfg.NATS.URL != "" {
		nc, err := natspub.Connect(cfg.NATS.URL, cfg.NATS.ConnectAttempts, cfg.NATS.ConnectWait)
		if err != nil {
			return err
		}
		defer nc.Close()
		logger.Info("connected to NATS", slog.String("url", cfg.NATS.URL))
		opts = append(opts, server.WithPublisher(natspub.New(nc,
			natspub.WithPrefix(cfg.NATS.Prefix), natspub.WithLogger(logger))))
	}

	var st *store.Store
	if cfg.Store.Path != "" {
		if st, err = store.Open(ctx, cfg.Store.Path); err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, server.WithStore(st))
	}

	manager := server.NewManager(opts...)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.API{Manager: manager, Hub: hub, Store: st}.NewRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("error", err))
	}
	return manager.Shutdown(shutdownCtx)
}
