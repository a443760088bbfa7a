// Package main runs the review screen against an in-process demo backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keessnoek/ing-transactie-verwerker/internal/api"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/config"
	"github.com/keessnoek/ing-transactie-verwerker/internal/demo"
	"github.com/keessnoek/ing-transactie-verwerker/internal/storage"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
	"github.com/spf13/cobra"
)

type options struct {
	addr       string
	theme      string
	logFile    string
	dbPath     string
	latency    time.Duration
	failAssign bool
	serveOnly  bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "autocat-demo",
		Short:        "Run the review screen against a built-in demo backend",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", "127.0.0.1:0", "listen address of the demo backend")
	flags.DurationVar(&opts.latency, "latency", 300*time.Millisecond, "delay added to every backend response")
	flags.BoolVar(&opts.failAssign, "fail-assign", false, "make every assignment fail")
	flags.BoolVar(&opts.serveOnly, "serve-only", false, "only run the backend, e.g. for autocat --base-url")
	flags.StringVar(&opts.theme, "theme", config.DefaultTheme, "color theme")
	flags.StringVar(&opts.logFile, "log-file", config.DefaultLogFile, "log destination")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database keeping assignments across runs (in-memory when empty)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, dbPath string) (*demo.Store, func(), error) {
	if dbPath == "" {
		return demo.NewSampleStore(), func() {}, nil
	}

	db, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = db.Close() }
	if err := db.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	store, err := demo.OpenStore(ctx, db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	if !opts.serveOnly {
		logFile := config.ExpandPath(opts.logFile)
		if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- flag value
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := common.SetupLogger(f, slog.LevelInfo, "console"); err != nil {
			return err
		}
	}

	store, closeStore, err := openStore(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := demo.Start(store, opts.addr, demo.Options{Latency: opts.latency, FailAssign: opts.failAssign})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if opts.serveOnly {
		fmt.Printf("Demo backend listening on %s\n", srv.URL())
		<-ctx.Done()
		return nil
	}

	client, err := api.NewClient(srv.URL())
	if err != nil {
		return err
	}

	app, err := tui.New(client,
		tui.WithTheme(themes.GetTheme(opts.theme)),
		tui.WithSize(120, 40),
	)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
