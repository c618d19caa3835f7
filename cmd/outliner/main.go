package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"outliner/internal/config"
	"outliner/internal/header"
	"outliner/internal/indexer"
	"outliner/internal/linkedcopy"
	"outliner/internal/service"
	"outliner/internal/storage"
	"outliner/internal/vault"
)

// app holds the wired components shared by all commands.
type app struct {
	cfg       *config.Config
	db        *sql.DB
	vault     *vault.Manager
	pipeline  *indexer.Pipeline
	engine    *linkedcopy.Engine
	workspace service.WorkspaceService
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "outliner",
		Short: "Zoomable outliner with linked copies over a markdown vault",
		Long: `outliner serves a markdown vault as an outliner: any list item can be
zoomed into, and list items can be pasted elsewhere as linked copies that
follow their original.

Configuration is read from the environment or a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(a), newReindexCmd(a), newCheckCmd(a))
	return root
}

// setup loads configuration, configures logging and wires the components.
func (a *app) setup(ctx context.Context) error {

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database initialized", "path", cfg.DBPath)

	vaultRepo := storage.NewVaultRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	blockRepo := storage.NewBlockRepo(db)

	a.vault, err = vault.NewManager(ctx, vaultRepo, cfg.VaultName, cfg.VaultPath)
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	slog.Info("vault initialized", "name", cfg.VaultName, "root", a.vault.Root())

	a.pipeline = indexer.NewPipeline(a.vault, noteRepo, blockRepo)

	store := linkedcopy.NewStore(a.vault, a.pipeline)
	a.engine = linkedcopy.NewEngine(store, a.vault, a.pipeline, linkedcopy.Options{
		Enabled:     cfg.LinkedCopies,
		Debounce:    cfg.SyncDebounce,
		CacheMaxAge: cfg.MirrorCacheMaxAge,
		CopyMaxAge:  cfg.CopyMaxAge,
		IndentUnit:  cfg.IndentUnit,
		Debug:       cfg.Debug,
	})

	a.workspace = service.NewWorkspaceService(
		a.vault,
		a.pipeline,
		a.engine,
		header.NewBuilder(store, a.vault),
		service.WorkspaceOptions{SettleDelay: cfg.NavigationSettleDelay, IndentUnit: cfg.IndentUnit},
	)
	return nil
}

func (a *app) close() {
	if a.engine != nil {
		a.engine.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
