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

	"moodflow/internal/app"
	"moodflow/internal/config"
	httpx "moodflow/internal/http"
	"moodflow/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type env struct {
	cfg config.Config
	log *zap.Logger
	app *app.App

	close func()
}

func main() {
	e := &env{}
	err := newRootCmd(e).Execute()
	e.shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:          "moodflow",
		Short:        "Mood journal with AI insights",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init()
		},
	}

	root.AddCommand(
		newServeCmd(e),
		newRecordCmd(e),
		newHistoryCmd(e),
		newStatsCmd(e),
		newInsightCmd(e),
		newKeyCmd(e),
	)
	return root
}

func (e *env) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	a, store, err := buildApp(cfg, log)
	if err != nil {
		_ = log.Sync()
		return err
	}

	e.cfg, e.log, e.app = cfg, log, a
	e.close = func() {
		if err := store.Close(); err != nil {
			log.Warn("store close failed", zap.Error(err))
		}
		_ = log.Sync()
	}
	return nil
}

func (e *env) shutdown() {
	if e.close != nil {
		e.close()
		e.close = nil
	}
}

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(e)
		},
	}
}

func serve(e *env) error {
	srv := &http.Server{
		Addr:              e.cfg.HTTPAddr,
		Handler:           httpx.NewRouter(e.cfg, e.app, e.log.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("listening", zap.String("addr", e.cfg.HTTPAddr), zap.String("store", e.cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-ch:
		e.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
