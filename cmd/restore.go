package cmd

import (
	"github.com/spf13/cobra"

	"expect.dev/pkg/expect/internal/domain"
	m "expect.dev/pkg/expect/internal/model"
)

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore a file from its last promotion backup",
		Long: `Atomically replace FILE with FILE` + domain.BackupSuffix + `, the content saved
by the last promotion. The backup is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Restore(cmd.Context(), domain.RestoreArgs{Path: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
