package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/splint/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Re-lint files whenever they change",
		Long:  "Lint the given files once, then re-lint each file when it is written until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Watch(cmd.Context(), domain.WatchArgs{LintArgs: lintArgs(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
