package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andy/journal/internal/domain"
	"github.com/andy/journal/internal/service"
	"github.com/spf13/cobra"
)

const menuPrompt = `Please select one of the following options:
1) Add new entry.
2) View entries.
3) Exit.

Your Selection: `

// maxLineBytes caps one line of menu input, an entry being a single line.
const maxLineBytes = 8 << 20

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the numbered text menu",
	Long:  `Run a plain numbered menu on stdin/stdout for adding and viewing entries.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(context.Background(), cmd.InOrStdin(), cmd.OutOrStdout(), appInstance.Journal)
	},
}

// runMenu loops on the numbered menu until the user picks exit or input ends
func runMenu(ctx context.Context, in io.Reader, out io.Writer, journal service.JournalService) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintln(out, "Welcome to the journal!")

	for {
		fmt.Fprint(out, menuPrompt)
		choice, ok := readLine()
		if !ok {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		switch choice {
		case "1":
			fmt.Fprint(out, "What have you learned today? ")
			content, ok := readLine()
			if !ok {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			if content == "" {
				fmt.Fprintln(out, "Error: content cannot be empty")
				continue
			}

			fmt.Fprint(out, "Enter the date (YYYY-MM-DD): ")
			date, ok := readLine()
			if !ok {
				fmt.Fprintln(out)
				return scanner.Err()
			}

			if _, err := journal.Add(ctx, content, date); err != nil {
				if errors.Is(err, domain.ErrInvalidEntry) || errors.Is(err, domain.ErrInvalidDate) {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				return err
			}
			fmt.Fprintln(out, "Entry added successfully!")

		case "2":
			entries, err := journal.All(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found.")
				continue
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s\n%s\n\n", e.FormatDate(displayLayout), e.Content)
			}

		case "3":
			fmt.Fprintln(out, "Goodbye!")
			return nil

		default:
			fmt.Fprintln(out, "Invalid option, please try again.")
		}
	}
}
