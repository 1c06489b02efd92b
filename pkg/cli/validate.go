package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/annotate/pkg/scenario"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Validate scenarios",
		Long: `Validate scenario files or stored scenarios without replaying them.

This checks:
- Scenario YAML syntax
- Scenario schema (step kinds, wait durations, event shape)
- Event types and targets

Examples:
  annotate validate ./resize-text.yaml
  annotate validate select-drag --verbose`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				scenarios, err := resolveScenarios([]string{arg})
				if err != nil {
					failed++
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ %s\n", arg)
					if verbose {
						_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
					}
					continue
				}

				sc := scenarios[0]
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%d steps)\n", sc.Name, len(sc.Steps))
				if verbose {
					printSteps(cmd, sc)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenario(s) invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed validation output")

	return cmd
}

// printSteps lists the steps of a scenario
func printSteps(cmd *cobra.Command, sc *scenario.Scenario) {
	for i, step := range sc.Steps {
		var detail string
		switch step.Kind {
		case scenario.StepTab:
			detail = string(step.Tab)
		case scenario.StepEvent:
			detail = string(step.Event)
		case scenario.StepWait:
			detail = step.Wait.String()
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %-9s %s\n", i+1, step.Kind, detail)
	}
}
