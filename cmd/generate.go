package cmd

import (
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the descriptor (default action)",
		Long: `Scan the header directory and write LinkDef.h. In integrated mode also write
BuildFile.xml and, for host releases before 10, compile the dictionary and
install its metadata file.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return workflow.Generate(cmd.Context(), cfg)
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
