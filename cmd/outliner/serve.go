package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"outliner/internal/http"
	"outliner/internal/vault"
)

//go:embed web/index.html
var indexHTML string

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Index the vault, watch it for changes and serve the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start indexing in background so the API is available right away
	go func() {
		slog.Info("starting background indexing of vault")
		stats, err := a.pipeline.IndexAll(ctx)
		if err != nil {
			slog.Error("indexing completed with errors", "error", err, "stats", stats.String())
			return
		}
		slog.Info("indexing completed successfully", "stats", stats.String())
	}()

	watcher, err := vault.NewWatcher(a.vault)
	if err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	go watcher.Run(ctx, func(ev vault.Event) {
		a.workspace.HandleEvent(ctx, ev)
	})

	router := http.NewRouter(&http.Deps{
		Workspace: a.workspace,
		Indexer:   a.pipeline,
		DB:        a.db,
		Notes:     a.vault,
		Titles:    a.pipeline,
		VaultRoot: a.vault.Root(),
		IndexHTML: indexHTML,
	})

	srv := &nethttp.Server{
		Addr:              ":" + a.cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", srv.Addr, "linked_copies", a.cfg.LinkedCopies)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
