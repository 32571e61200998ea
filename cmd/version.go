package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the mklinkdef build version, the Go version used to build it and the dictionary tools it drives.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
			} else {
				cmd.Println("mklinkdef version\t", info.Main.Version)
				cmd.Println("go version\t", info.GoVersion)
			}

			cfg, err := loadConfig()
			if err != nil {
				return
			}

			cmd.Println("dictionary compiler\t", cfg.CompilerBin)
			cmd.Println("include helper\t", cfg.IncludeHelper)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
