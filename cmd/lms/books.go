package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/config"
	"github.com/javatronic/lms/internal/infrastructure/storage"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage books",
		RunE:  runBooksList,
	}

	cmd.AddCommand(
		newBooksListCmd(),
		newBooksCreateCmd(),
		newBooksDeleteCmd(),
	)

	return cmd
}

func newBooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		RunE:  runBooksList,
	}
}

func runBooksList(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	books, err := config.LoadBooks(cwd)
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %s\n", "NAME", "DESCRIPTION")
	fmt.Fprintf(out, "%-20s %s\n", "----", "-----------")

	fmt.Fprintf(out, "%-20s %s\n", config.DefaultBook, "")
	for _, name := range books.Names() {
		entry, _ := books.Lookup(name)
		fmt.Fprintf(out, "%-20s %s\n", name, entry.Description)
	}

	return nil
}

func newBooksCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBooksCreate(cmd, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Book description")

	return cmd
}

func runBooksCreate(cmd *cobra.Command, name, description string) error {
	if config.IsDefault(name) {
		return fmt.Errorf("book %q is the default book", name)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	books, err := config.LoadBooks(cwd)
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}

	if entry, ok := books.Lookup(name); ok {
		if entry.Name != name {
			return fmt.Errorf("book %q already exists as %q", name, entry.Name)
		}
		return fmt.Errorf("book %q already exists", name)
	}

	store, err := openBook(cmd.Context(), cwd, name)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("closing book: %w", err)
	}

	books.Add(name, config.BookEntry{Description: description})
	if err := books.Save(cwd); err != nil {
		return fmt.Errorf("adding book: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created book %q\n", name)

	return nil
}

func newBooksDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a book and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBooksDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the book contains persons")

	return cmd
}

func runBooksDelete(cmd *cobra.Command, name string, force bool) error {
	if config.IsDefault(name) {
		return fmt.Errorf("book %q can't be deleted", config.DefaultBook)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	books, err := config.LoadBooks(cwd)
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}

	if _, ok := books.Lookup(name); !ok {
		return fmt.Errorf("book %q not found", name)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !force {
		count, err := countPersons(cmd.Context(), cwd, name)
		if err == nil && count > 0 {
			return fmt.Errorf("book %q contains %d persons, use --force to delete", name, count)
		}
	}

	if err := os.RemoveAll(config.BookDir(cfg.Storage.Dir, name)); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: could not delete the data of book %q: %v\n", name, err)
	}

	books.Remove(name)
	if err := books.Save(cwd); err != nil {
		return fmt.Errorf("removing book: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %q\n", name)

	return nil
}

// openBook opens the storage of a book outside of withDeps, for book management.
func openBook(ctx context.Context, cwd, name string) (ports.Storage, error) {
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(ctx, cfg, name, entities.DefaultRegistry(), zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("opening book %q: %w", name, err)
	}
	return store, nil
}

func countPersons(ctx context.Context, cwd, name string) (int, error) {
	store, err := openBook(ctx, cwd, name)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	persons, err := store.ReadPersons(ctx)
	if err != nil {
		return 0, err
	}
	return len(persons), nil
}
