package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/infrastructure/storage"
)

type historyFlags struct {
	limit    int
	personID int
	action   string
}

func newHistoryCmd() *cobra.Command {
	var flags historyFlags

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded changes of the book",
		Long: `Shows the audit log of the book, most recent first. Only the sqlite backend records one.

A person's history lists its creation (add_person), its updates and its
removal (remove_person). Actions can be filtered with --action, e.g.
store_persons, store_relationships, add_person, remove_person,
update_person, clear_persons, clear_relationships.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().IntVarP(&flags.personID, "person", "p", -1, "Only show the changes of this person id")
	cmd.Flags().StringVarP(&flags.action, "action", "a", "", "Only show entries of this action")

	return cmd
}

func runHistory(cmd *cobra.Command, flags historyFlags) error {
	return withInternalDeps(cmd, func(d *internalDeps) error {
		audit, ok := d.storage.(storage.AuditLog)
		if !ok {
			return fmt.Errorf("storage backend %q keeps no history", d.Config.Storage.Backend)
		}

		var (
			entries []entities.AuditEntry
			err     error
		)
		switch {
		case flags.personID >= 0:
			entries, err = audit.FindAuditLog(cmd.Context(), flags.personID)
			if flags.action != "" {
				entries = slices.DeleteFunc(entries, func(e entities.AuditEntry) bool {
					return e.Action != flags.action
				})
			}
		case flags.action != "":
			entries, err = audit.FindAuditLogByAction(cmd.Context(), flags.action, flags.limit)
		default:
			entries, err = audit.RecentAuditLog(cmd.Context(), flags.limit)
		}
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if flags.limit > 0 && len(entries) > flags.limit {
			entries = entries[:flags.limit]
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No history recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-20s %-20s %-8s %s\n", "DATE", "ACTION", "PERSON", "DETAILS")
		for _, e := range entries {
			person := ""
			if e.PersonID != nil {
				person = strconv.Itoa(*e.PersonID)
			}
			details := ""
			if len(e.Details) > 0 {
				data, err := json.Marshal(e.Details)
				if err != nil {
					return fmt.Errorf("formatting details: %w", err)
				}
				details = string(data)
			}
			fmt.Fprintf(out, "%-20s %-20s %-8s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, person, details)
		}

		return nil
	})
}
