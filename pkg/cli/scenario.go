package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/annotate/pkg/storage"
)

// NewScenarioCommand creates the scenario command group
func NewScenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage stored scenarios",
		Long: `Manage the scenario store in the configuration directory.

Stored scenarios can be replayed and validated by name.`,
	}

	cmd.AddCommand(newScenarioAddCommand())
	cmd.AddCommand(newScenarioListCommand())
	cmd.AddCommand(newScenarioRemoveCommand())

	return cmd
}

func newScenarioAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Validate a scenario file and store it under its name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read scenario: %w", err)
			}

			repo, err := storage.NewFilesystemScenarioRepository(GetConfigDir())
			if err != nil {
				return err
			}

			sc, err := repo.Save(data)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored scenario %s at %s\n", sc.Name, sc.Path)
			return nil
		},
	}
}

func newScenarioListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewFilesystemScenarioRepository(GetConfigDir())
			if err != nil {
				return err
			}

			names, err := repo.List()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
				return nil
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newScenarioRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewFilesystemScenarioRepository(GetConfigDir())
			if err != nil {
				return err
			}

			if err := repo.Delete(args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed scenario %s\n", args[0])
			return nil
		},
	}
}
