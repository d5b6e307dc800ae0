package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"expect.dev/pkg/expect/internal/controller"
	"expect.dev/pkg/expect/internal/domain"
	m "expect.dev/pkg/expect/internal/model"
)

const (
	lineFlagName       = "line"
	actualFlagName     = "actual"
	actualFileFlagName = "actual-file"
	dryRunFlagName     = "dry-run"
)

// promoteCmd represents the promote command.
var promoteCmd = newPromoteCmd()

func newPromoteCmd() *cobra.Command {
	var (
		line       int
		actual     string
		actualFile string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "promote FILE",
		Short: "Write an actual value into a golden function",
		Long:  promoteLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line <= 0 {
				return fmt.Errorf("--%s must be a positive line number", lineFlagName)
			}

			value, err := readActual(cmd, actual, actualFile)
			if err != nil {
				return err
			}

			return workflow.Promote(cmd.Context(), domain.PromoteArgs{
				Path:   m.Path(args[0]),
				Line:   line,
				Actual: value,
				DryRun: dryRun,
			})
		},
	}

	cmd.Flags().IntVarP(&line, lineFlagName, "l", 0, "declaration line of the golden function (its first directive)")
	cmd.Flags().StringVarP(&actual, actualFlagName, "a", "", "actual value to promote")
	cmd.Flags().StringVar(&actualFile, actualFileFlagName, "", "read the actual value from a file")
	cmd.Flags().BoolVarP(&dryRun, dryRunFlagName, "n", false, "print the resulting diff without writing")
	cmd.MarkFlagsMutuallyExclusive(actualFlagName, actualFileFlagName)
	cobra.CheckErr(cmd.MarkFlagRequired(lineFlagName))

	return cmd
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

// readActual resolves the promoted value: the --actual flag when set, then
// --actual-file, then standard input.
func readActual(cmd *cobra.Command, actual, actualFile string) (string, error) {
	if cmd.Flags().Changed(actualFlagName) {
		return actual, nil
	}

	if actualFile != "" {
		content, err := os.ReadFile(actualFile)
		if err != nil {
			return "", fmt.Errorf("read actual value: %w", err)
		}

		return string(content), nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && controller.IsTTY(os.Stdin) {
		return "", errors.New("no actual value: use --actual, --actual-file or pipe it on stdin")
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read actual value: %w", err)
	}

	return string(content), nil
}
