package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/journal/internal/domain"
	"github.com/spf13/cobra"
)

const displayLayout = "2006-01-02 15:04"

var addCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Add a journal entry",
	Long: `Add a journal entry. The date defaults to today; the current time of day is recorded with it.

Examples:
  journal add "Learned how WAL mode works"
  journal add --date 2026-10-01 "Backfilled note"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = appInstance.Clock.Now().Format(domain.DateLayout)
		}

		entry, err := appInstance.Journal.Add(ctx, strings.Join(args, " "), date)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Entry added (ID: %d)\n", entry.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  Date: %s\n", entry.FormatDate(displayLayout))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		var (
			entries []*domain.Entry
			err     error
		)
		switch {
		case cmd.Flags().Changed("date"):
			date, _ := cmd.Flags().GetString("date")
			entries, err = appInstance.Journal.OnDay(ctx, date)
		case mustBool(cmd, "today"):
			entries, err = appInstance.Journal.Today(ctx)
		default:
			entries, err = appInstance.Journal.All(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No entries found")
			return nil
		}

		if mustBool(cmd, "full") {
			for _, e := range entries {
				fmt.Fprintf(out, "%s\n%s\n\n", e.FormatDate(displayLayout), e.Content)
			}
			return nil
		}

		fmt.Fprintf(out, "%-5s %-16s %s\n", "ID", "Date", "Content")
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for _, e := range entries {
			fmt.Fprintf(out, "%-5d %-16s %s\n", e.ID, e.FormatDate(displayLayout), truncate(firstLine(e.Content), 57))
		}
		fmt.Fprintln(out, strings.Repeat("-", 80))
		fmt.Fprintf(out, "Total: %d entries\n", len(entries))
		return nil
	},
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	addCmd.Flags().String("date", "", "Entry date (YYYY-MM-DD, default today)")

	listCmd.Flags().String("date", "", "Only entries on this day (YYYY-MM-DD)")
	listCmd.Flags().Bool("today", false, "Only today's entries")
	listCmd.Flags().Bool("full", false, "Print full entry text")
}
