package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javatronic/lms/internal/application/handlers"
	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/infrastructure/config"
	"github.com/javatronic/lms/internal/infrastructure/logger"
	"github.com/javatronic/lms/internal/infrastructure/storage"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize lms in the current directory",
		Long:  "Creates a .lms directory with default configuration and prepares the storage of the default book.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	log, err := logger.New(config.Default().Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	handler := handlers.NewInitHandler(storage.Opener(entities.DefaultRegistry(), log))

	result, err := handler.Handle(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	log.Debug("initialized", zap.String("config", result.ConfigPath))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Book %q stored with %s in %s\n", config.DefaultBook, result.Backend, result.DataDir)
	fmt.Fprintln(out, "lms initialized successfully!")

	return nil
}
