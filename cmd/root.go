// Package cmd provides the root command and CLI setup for mklinkdef.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	"mklinkdef.dev/pkg/mklinkdef/internal/controller"
	"mklinkdef.dev/pkg/mklinkdef/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var processRunner adapter.ProcessRunnerAdapter
var resolver domain.Resolver
var scanner domain.Scanner
var orchestrator domain.Orchestrator
var workflow domain.Workflow
var ui controller.UI

// integratedFlag selects the host-integrated build layout.
var integratedFlag bool

var projectDirFlag string

var verboseFlag bool

var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	processRunner = adapter.NewLocalProcessRunnerAdapter(dictionaryTimeout())
	resolver = domain.NewResolver(fsAdapter)
	scanner = domain.NewScanner(fsAdapter)
	orchestrator = domain.NewOrchestrator(fsAdapter, processRunner)
	workflow = domain.NewWorkflow(
		fsAdapter,
		ui,
		resolver,
		scanner,
		orchestrator,
	)
}

const rootLongDescription = `mklinkdef writes the LinkDef.h descriptor the ROOT dictionary compiler
reads to generate reflection data for the multidraw library.

In standalone mode the descriptor goes to obj/LinkDef.h and includes headers
from inc/ by absolute path. With --integrated the layout follows the host
build system (CMSSW_VERSION selects the convention), a BuildFile.xml is
written, and on hosts older than release 10 the dictionary is compiled and
its metadata installed under $CMSSW_BASE/lib/$SCRAM_ARCH.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "mklinkdef",
		Short:        "Generate the multidraw dictionary descriptor",
		Long:         rootLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: runGenerate,
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(
		&integratedFlag, integratedFlagName, "c",
		viper.GetBool(integratedConfigKey),
		"adapt paths to the host build system and write BuildFile.xml",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(integratedFlagName), integratedConfigKey)

	cmd.PersistentFlags().StringVarP(&projectDirFlag, projectDirFlagName, "C", viper.GetString(projectDirConfigKey), "project directory containing inc/, interface/ and src/")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(projectDirFlagName), projectDirConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default from config)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
