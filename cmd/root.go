// Package cmd provides the root command and CLI setup for expect.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"expect.dev/pkg/expect/internal/adapter"
	"expect.dev/pkg/expect/internal/controller"
	"expect.dev/pkg/expect/internal/domain"
	m "expect.dev/pkg/expect/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var promoter domain.Promoter
var workflow domain.Workflow
var ui controller.UI

// verboseFlag switches logging to debug level.
var verboseFlag bool

// logFileFlag overrides the log file path.
var logFileFlag string

var colorFlag string

func init() {
	configureRootFlags(rootCmd)
	rootCmd.PersistentPreRunE = setUp

	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	promoter = domain.NewPromoter(goFileAdapter, fsAdapter)
	wire(controller.NewUI(rootCmd, false))
}

// wire rebuilds the workflow around newUI.
func wire(newUI controller.UI) {
	ui = newUI
	workflow = domain.NewWorkflow(fsAdapter, goFileAdapter, ui, promoter)
}

// setUp runs before every subcommand, once flags and config are resolved.
func setUp(cmd *cobra.Command, _ []string) error {
	configureLogger(logFileFlag, viper.GetBool(logVerboseKey))

	color, err := useColor(viper.GetString(uiColorKey), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	wire(controller.NewUI(cmd, color))

	return nil
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Expect keeps golden values next to the Go functions that produce them.

A golden function carries its expected result in a directive comment:

  //expect:golden("Some result")
  func goldenSomeResult() string {
      return someFunctionThatReturnsSomeResult()
  }

Tests call expect.Golden(t, goldenSomeResult). When the result changes, the
expected value can be promoted: rewritten in place from the actual value.`

const promoteLongDescription = `Rewrite the golden value of the function declared at --line in FILE.

The actual value is read from --actual, --actual-file, or standard input.
The previous content of FILE is saved to FILE` + domain.BackupSuffix + ` before it is
atomically replaced.`

const listLongDescription = `List golden functions, their expected values and whether they are valid.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expect",
		Short: "Golden values for Go functions",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default from config)")

	cmd.PersistentFlags().StringVar(&colorFlag, colorFlagName, viper.GetString(uiColorKey), "colorize output: auto, always or never")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(colorFlagName), uiColorKey)
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
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
