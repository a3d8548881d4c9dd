package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type listFlags struct {
	table bool
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persons with their relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.table, "table", "t", false, "Render persons as a table")

	return cmd
}

func runList(cmd *cobra.Command, flags listFlags) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.ListPersons(cmd.Context())
		return err
	}, withTable(flags.table))
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <firstname> [lastname]",
		Short: "Register a new person",
		Args:  nameArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lastname := ""
			if len(args) == 2 {
				lastname = args[1]
			}
			return runCreate(cmd, args[0], lastname)
		},
	}
}

// nameArgs accepts a first name and an optional last name.
func nameArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) < 1:
		return tooFewArguments(len(args))
	case len(args) > 2:
		return fmt.Errorf("Too many arguments (%d)", len(args)) //nolint:staticcheck // user facing message
	}
	return nil
}

func tooFewArguments(n int) error {
	return fmt.Errorf("Too few arguments (%d)", n) //nolint:staticcheck // user facing message
}

func runCreate(cmd *cobra.Command, firstname, lastname string) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.StorePerson(cmd.Context(), firstname, lastname)
		return err
	})
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <pattern>",
		Short: "Update the names or the tags of a person",
		Long:  "Looks persons up by name, asks which one to update when several match, then reads the new values.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, strings.Join(args, " "))
		},
	}
}

func runUpdate(cmd *cobra.Command, pattern string) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.UpdatePerson(cmd.Context(), pattern)
		return err
	})
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pattern>",
		Short: "Delete a person and its relationships",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, strings.Join(args, " "))
		},
	}
}

func runDelete(cmd *cobra.Command, pattern string) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.DeletePerson(cmd.Context(), pattern)
		return err
	})
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link <words...>",
		Short:   "Link two persons with a relationship",
		Example: "  lms link John père de Peter",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return tooFewArguments(len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, strings.Join(args, " "))
		},
	}
}

func runLink(cmd *cobra.Command, text string) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.LinkPersons(cmd.Context(), text)
		return err
	})
}

var errMissingSearchPattern = errors.New("Missing search pattern") //nolint:staticcheck // user facing message

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <words...>",
		Short:   "Search persons by name or by relationship",
		Example: "  lms search Doe\n  lms search enfant de John",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingSearchPattern
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args)
		},
	}
}

func runSearch(cmd *cobra.Command, words []string) error {
	return withDeps(cmd, func(d *Deps) error {
		_, err := d.PersonHandler.SearchPersons(cmd.Context(), strings.Join(words, " "))
		return err
	})
}
