package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/annotate/pkg/intent"
	"github.com/dshills/annotate/pkg/scenario"
	"github.com/dshills/annotate/pkg/storage"
)

// ReplayFlags holds the flags for the replay command
type ReplayFlags struct {
	Filter  string
	Journal bool
	JSON    bool
	Follow  bool
	NoColor bool
}

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	flags := &ReplayFlags{}

	cmd := &cobra.Command{
		Use:   "replay <scenario>...",
		Short: "Replay scenarios through the interaction controller",
		Long: `Replay one or more scenarios through the pointer interaction controller
and print the intents it dispatches.

Each argument is a scenario file path or the name of a stored scenario.
Scenarios run concurrently, each against its own controller.

The --filter flag takes a boolean expression over the variables
action, annotation_id and payload.

Examples:
  annotate replay ./resize-text.yaml
  annotate replay select-drag --journal
  annotate replay select-drag --filter 'action == "SET_ANNOTATION"'
  annotate replay select-drag --json
  annotate replay a.yaml b.yaml --follow`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Filter, "filter", "", "Only show intents matching this expression")
	cmd.Flags().BoolVar(&flags.Journal, "journal", false, "Record the dispatched intents in the journal")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&flags.Follow, "follow", false, "Stream every intent to stderr as it is dispatched")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	return cmd
}

// runReplay handles the replay command
func runReplay(cmd *cobra.Command, args []string, flags *ReplayFlags) error {
	logger := newLogger(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scenarios, err := resolveScenarios(args)
	if err != nil {
		return err
	}

	opts := []scenario.RunnerOption{scenario.WithLogger(logger)}

	if flags.Filter != "" {
		q, err := intent.CompileQuery(flags.Filter)
		if err != nil {
			return err
		}
		opts = append(opts, scenario.WithQuery(q))
	}

	if flags.Journal {
		journal, err := storage.NewSQLiteJournal(GetJournalPath())
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() { _ = journal.Close() }()
		opts = append(opts, scenario.WithSink(journal))
	}

	var followDone chan struct{}
	if flags.Follow {
		bus := intent.NewBus()
		ch := bus.Subscribe()
		followDone = make(chan struct{})
		go func() {
			defer close(followDone)
			for in := range ch {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", colorizeIntent(in.Type, flags.NoColor), formatValue(in.Payload))
			}
		}()
		defer func() {
			bus.Unsubscribe(ch)
			bus.Close()
			<-followDone
		}()
		opts = append(opts, scenario.WithBus(bus))
	}

	runner := scenario.NewRunner(cfg, opts...)
	results, err := runner.RunAll(cmd.Context(), scenarios)
	if err != nil {
		return err
	}

	if flags.JSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	for i, res := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
		}
		printResult(cmd.OutOrStdout(), res, flags.NoColor)
	}
	return nil
}

// resolveScenarios loads each argument as a file path, falling back to the
// scenario store for arguments that are not existing files. The result keeps
// the order of args.
func resolveScenarios(args []string) ([]*scenario.Scenario, error) {
	var repo *storage.FilesystemScenarioRepository

	scenarios := make([]*scenario.Scenario, len(args))
	var paths []string
	var slots []int
	for i, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			paths = append(paths, arg)
			slots = append(slots, i)
			continue
		}

		if repo == nil {
			r, err := storage.NewFilesystemScenarioRepository(GetConfigDir())
			if err != nil {
				return nil, err
			}
			repo = r
		}

		sc, err := repo.Load(arg)
		if err != nil {
			return nil, fmt.Errorf("scenario %q is neither a file nor a stored scenario: %w", arg, err)
		}
		scenarios[i] = sc
	}

	loaded, err := scenario.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	for j, sc := range loaded {
		scenarios[slots[j]] = sc
	}

	return scenarios, nil
}

// printResult displays one replay result
func printResult(w io.Writer, res *scenario.Result, noColor bool) {
	cyan, gray, reset := colorCyan, colorGray, colorReset
	if noColor {
		cyan, gray, reset = "", "", ""
	}

	_, _ = fmt.Fprintf(w, "Scenario: %s%s%s\n", cyan, res.Scenario, reset)
	_, _ = fmt.Fprintf(w, "Session: %s\n", res.Session)

	if len(res.Intents) == 0 {
		_, _ = fmt.Fprintln(w, "No intents dispatched.")
	} else {
		_, _ = fmt.Fprintf(w, "%-4s %-26s %-14s %s\n", "#", "Intent", "Annotation", "Payload")
		_, _ = fmt.Fprintln(w, strings.Repeat("-", 80))
		for i, in := range res.Intents {
			_, _ = fmt.Fprintf(w, "%-4d %s %-14s %s\n",
				i+1,
				colorizeIntent(in.Type, noColor),
				truncateString(in.AnnotationID().String(), 14),
				formatValue(in.Payload))
		}
	}

	for _, update := range res.LiveUpdates {
		_, _ = fmt.Fprintf(w, "%slive update at step %d: %s%s\n", gray, update.Step, update.AnnotationID, reset)
	}
	if res.Unhandled > 0 {
		_, _ = fmt.Fprintf(w, "%s%d event(s) ignored while inactive%s\n", gray, res.Unhandled, reset)
	}
}

// colorizeIntent returns the padded intent type, colored by kind
func colorizeIntent(t intent.Type, noColor bool) string {
	padded := fmt.Sprintf("%-26s", t)
	if noColor {
		return padded
	}

	switch t {
	case intent.SetAnnotation:
		return colorGreen + padded + colorReset
	case intent.SelectAnnotation, intent.SelectTool:
		return colorBlue + padded + colorReset
	case intent.ChangePointerIcon:
		return colorGray + padded + colorReset
	case intent.EnableTextContentEdit:
		return colorYellow + padded + colorReset
	default:
		return padded
	}
}

// truncateString truncates a string to at most maxLen runes
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-2]) + ".."
}

// formatValue formats a value for display
func formatValue(v any) string {
	if v == nil {
		return "null"
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	str := string(data)
	if len(str) > 100 {
		return str[:97] + "..."
	}
	return str
}
