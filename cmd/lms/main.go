// Package main provides the entry point for the lms CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javatronic/lms/internal/infrastructure/config"
)

var (
	version    = "0.1.0-dev"
	globalBook string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lms [words...]",
		Short: "A relationship book: persons, their links and natural language searches",
		Long: `Without argument, lists the persons of the book.
With arguments, searches the book, e.g. "lms enfant de John".`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(cmd, listFlags{})
			}
			return runSearch(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalBook, "book", "b", config.DefaultBook, "Book to operate on")

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newCreateCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newLinkCmd(),
		newSearchCmd(),
		newImportCmd(),
		newWindowCmd(),
		newBooksCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}
