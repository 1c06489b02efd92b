package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/annotate/pkg/storage"
)

// JournalListFlags holds the flags for the journal list command
type JournalListFlags struct {
	Scenario string
	Since    string
	Limit    int
	JSON     bool
}

// NewJournalCommand creates the journal command group
func NewJournalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect journaled replays",
		Long:  `Inspect the intents recorded by 'annotate replay --journal'.`,
	}

	cmd.AddCommand(newJournalListCommand())

	return cmd
}

func newJournalListCommand() *cobra.Command {
	flags := &JournalListFlags{}

	cmd := &cobra.Command{
		Use:   "list [session]",
		Short: "List journaled sessions, or the intents of one session",
		Long: `Without arguments, list journaled sessions, most recent first.
With a session ID, list that session's intents in dispatch order.

Examples:
  annotate journal list
  annotate journal list --scenario select-drag --since 24h
  annotate journal list 0b6f4a1e-... --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := storage.NewSQLiteJournal(GetJournalPath())
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer func() { _ = journal.Close() }()

			if len(args) == 1 {
				return runJournalEntries(cmd, journal, args[0], flags)
			}
			return runJournalSessions(cmd, journal, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Scenario, "scenario", "", "Filter sessions by scenario name")
	cmd.Flags().StringVar(&flags.Since, "since", "", "Filter sessions by date (e.g., 7d, 24h, 2025-01-05)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "Maximum number of sessions to display")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output as JSON")

	return cmd
}

// runJournalSessions lists sessions
func runJournalSessions(cmd *cobra.Command, journal *storage.SQLiteJournal, flags *JournalListFlags) error {
	var since time.Time
	if flags.Since != "" {
		t, err := parseSinceFlag(flags.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		since = t
	}

	sessions, err := journal.Sessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	filtered := make([]storage.Session, 0, len(sessions))
	for _, s := range sessions {
		if flags.Scenario != "" && s.Scenario != flags.Scenario {
			continue
		}
		if !since.IsZero() && s.CreatedAt.Before(since) {
			continue
		}
		filtered = append(filtered, s)
	}

	total := len(filtered)
	if flags.Limit > 0 && len(filtered) > flags.Limit {
		filtered = filtered[:flags.Limit]
	}

	if flags.JSON {
		return writeJSON(cmd.OutOrStdout(), filtered)
	}

	if len(filtered) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
		return nil
	}

	printSessionsTable(cmd.OutOrStdout(), filtered)

	if total > len(filtered) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d sessions\n", len(filtered), total)
	}
	return nil
}

// runJournalEntries lists the intents of one session
func runJournalEntries(cmd *cobra.Command, journal *storage.SQLiteJournal, session string, flags *JournalListFlags) error {
	entries, err := journal.List(cmd.Context(), session)
	if err != nil {
		return err
	}

	if flags.JSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%-4s %-26s %-14s %s\n", "Seq", "Intent", "Annotation", "Payload")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%-4d %-26s %-14s %s\n",
			e.Seq, e.Type, truncateString(e.AnnotationID.String(), 14), formatValue(e.Payload))
	}
	return nil
}

// printSessionsTable displays sessions in a formatted table
func printSessionsTable(w io.Writer, sessions []storage.Session) {
	_, _ = fmt.Fprintf(w, "%-38s %-25s %-8s %s\n", "Session", "Scenario", "Intents", "Recorded")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, s := range sessions {
		_, _ = fmt.Fprintf(w, "%-38s %-25s %-8d %s\n",
			s.ID,
			truncateString(s.Scenario, 23),
			s.IntentCount,
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseSinceFlag parses the --since flag into a time.Time
// Supports formats: "7d" (7 days), "24h" (24 hours), "2025-01-05" (date)
func parseSinceFlag(since string) (time.Time, error) {
	now := time.Now()

	if strings.HasSuffix(since, "d") {
		days := since[:len(since)-1]
		var d int
		if _, err := fmt.Sscanf(days, "%d", &d); err == nil {
			return now.AddDate(0, 0, -d), nil
		}
	}
	if strings.HasSuffix(since, "h") {
		hours := since[:len(since)-1]
		var h int
		if _, err := fmt.Sscanf(hours, "%d", &h); err == nil {
			return now.Add(-time.Duration(h) * time.Hour), nil
		}
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, since); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format (use: 7d, 24h, or 2025-01-05)")
}
