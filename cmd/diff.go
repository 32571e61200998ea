package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var errDescriptorOutdated = errors.New("descriptor is out of date")

var diffExitCodeFlag bool

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show how the descriptor on disk differs from a fresh one",
		Long:  "Render the descriptor in memory and print a unified diff against the file on disk. Nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			changed, err := workflow.Diff(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if changed && diffExitCodeFlag {
				return errDescriptorOutdated
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&diffExitCodeFlag, exitCodeFlagName, false, "exit with status 1 when the descriptor differs")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
