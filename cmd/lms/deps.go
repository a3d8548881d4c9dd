package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javatronic/lms/internal/application/handlers"
	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/domain/services"
	"github.com/javatronic/lms/internal/infrastructure/config"
	"github.com/javatronic/lms/internal/infrastructure/logger"
	"github.com/javatronic/lms/internal/infrastructure/storage"
	"github.com/javatronic/lms/internal/presentation/cli"
	"github.com/javatronic/lms/internal/presentation/tui"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - storage and presenters are internal.
type Deps struct {
	Config        *config.Config
	Books         *config.BooksConfig
	Logger        *zap.Logger
	PersonHandler *handlers.PersonHandler
	ImportHandler *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	storage ports.Storage
}

type depsOptions struct {
	table  bool
	window *tui.Window
}

type depsOption func(*depsOptions)

// withTable makes the console render person lists as a table.
func withTable(enabled bool) depsOption {
	return func(o *depsOptions) {
		o.table = enabled
	}
}

// withWindow presents results and logs in window instead of the console.
func withWindow(window *tui.Window) depsOption {
	return func(o *depsOptions) {
		o.window = window
	}
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(cmd *cobra.Command, fn func(*Deps) error, opts ...depsOption) error {
	return withInternalDeps(cmd, func(d *internalDeps) error {
		return fn(&d.Deps)
	}, opts...)
}

// withInternalDeps provides access to all dependencies including the storage of the book.
func withInternalDeps(cmd *cobra.Command, fn func(*internalDeps) error, opts ...depsOption) error {
	var o depsOptions
	for _, opt := range opts {
		opt(&o)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if err := config.LoadEnvFile(cwd); err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	books, err := config.LoadBooks(cwd)
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}

	if err := books.Check(globalBook); err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg, o.window)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	registry := entities.DefaultRegistry()

	store, err := storage.Open(cmd.Context(), cfg, globalBook, registry, log)
	if err != nil {
		return fmt.Errorf("opening book %q: %w", globalBook, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", zap.Error(err))
		}
	}()

	var (
		ios    ports.IOs
		events ports.EventListener
	)
	if o.window != nil {
		ios, events = o.window, o.window
	} else {
		console := cli.New(cmd.InOrStdin(), cmd.OutOrStdout(), log, cli.WithTable(o.table))
		ios, events = console, console
	}

	parser := services.NewParser(registry, log)

	deps := &internalDeps{
		Deps: Deps{
			Config:        cfg,
			Books:         books,
			Logger:        log,
			PersonHandler: handlers.NewPersonHandler(store, ios, events, parser, log),
			ImportHandler: handlers.NewImportHandler(services.NewImportService(store, log)),
		},
		storage: store,
	}

	return fn(deps)
}

// newLogger logs to stderr, or into window when the terminal window is shown.
func newLogger(cmd *cobra.Command, cfg *config.Config, window *tui.Window) (*zap.Logger, error) {
	if window != nil {
		return zap.New(window.Core(zapcore.InfoLevel)), nil
	}

	log, err := logger.New(cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}
