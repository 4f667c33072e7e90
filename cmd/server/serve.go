package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dining-reviews/internal/api"
	"dining-reviews/internal/logging"
	"dining-reviews/internal/service"
	"dining-reviews/internal/storage"
	"dining-reviews/internal/websocket"

	"github.com/spf13/cobra"

	_ "dining-reviews/docs"
)

const readHeaderTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.GetPool().Close()
	logging.Info().Msg("connected to database")

	blobs, err := storage.New(cfg.Storage, store.GetPool())
	if err != nil {
		return err
	}
	logging.Info().Str("driver", cfg.Storage.Driver).Str("bucket", cfg.Storage.Bucket).Msg("image storage ready")

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	services, err := service.New(store, blobs, wsHub, cfg)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg, services, wsHub, store)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logging.Info().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
