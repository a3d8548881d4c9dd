package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javatronic/lms/internal/application/handlers"
	"github.com/javatronic/lms/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import persons from JSON or CSV",
		Long:  "Imports persons from a structured file. Imported persons get fresh ids.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", string(services.ConflictSkip), "Handling of already registered names (skip, keep)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	onConflict := services.ConflictStrategy(flags.onConflict)
	if onConflict != services.ConflictSkip && onConflict != services.ConflictKeep {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, keep)", flags.onConflict)
	}

	out := cmd.OutOrStdout()

	return withDeps(cmd, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: onConflict,
		}

		fmt.Fprintf(out, "Importing %s...\n", filePath)

		result, err := d.ImportHandler.ImportPersons(cmd.Context(), filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Fprintf(out, "\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s\n", e.Error())
			}
		}

		fmt.Fprintln(out)
		if flags.dryRun {
			fmt.Fprintf(out, "Dry run: %d persons would be imported", len(result.Imported))
		} else {
			fmt.Fprintf(out, "Imported: %d persons", len(result.Imported))
		}

		if result.Skipped > 0 {
			fmt.Fprintf(out, ", %d skipped (already registered)", result.Skipped)
		}

		if len(result.Errors) > 0 {
			fmt.Fprintf(out, ", %d errors", len(result.Errors))
		}

		fmt.Fprintln(out)

		return nil
	})
}
