package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"expect.dev/pkg/expect/internal/domain"
)

var listParallelFlag int
var listFormatFlag string
var excludePatterns []string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List golden functions",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(listParallelConfigKey),
				Format:  viper.GetString(listFormatConfigKey),
			})
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&listParallelFlag, listParallelFlagName, "p", viper.GetInt(listParallelConfigKey), "number of files parsed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(listParallelFlagName), listParallelConfigKey)

	cmd.Flags().StringVarP(&listFormatFlag, listFormatFlagName, "f", viper.GetString(listFormatConfigKey), "output format: table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(listFormatFlagName), listFormatConfigKey)

	cmd.Flags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(excludeFlagName), excludeConfigKey)
}
