package main

import (
	"github.com/spf13/cobra"

	"github.com/javatronic/lms/internal/presentation/tui"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the terminal window",
		Long: `Opens a window with one text entry and one output area.
ENTER on an empty entry lists persons, "create <firstname> [lastname]" registers
a person and any other text is searched.`,
		Args: cobra.NoArgs,
		RunE: runWindow,
	}
}

func runWindow(cmd *cobra.Command, _ []string) error {
	window := tui.NewWindow()

	return withDeps(cmd, func(d *Deps) error {
		return tui.Run(cmd.Context(), window, d.PersonHandler)
	}, withWindow(window))
}
