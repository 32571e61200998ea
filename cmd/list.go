package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List headers and the classes they link",
		Long:  "Show the headers that would be written to the descriptor and the link line each produces. Nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), cfg)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
