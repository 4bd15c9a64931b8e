package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/itchan-dev/forum/backend/internal/router"
	"github.com/itchan-dev/forum/backend/internal/setup"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	if err := run(cfg); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	handler, stopLimiters := router.New(deps)
	defer stopLimiters()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Public.Http.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Public.Http.ReadTimeout,
		WriteTimeout: cfg.Public.Http.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.Http.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
