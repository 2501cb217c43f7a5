package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/splint/internal/domain"
	m "github.com/mouse-blink/splint/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved lint report",
		Long:  "View the lint report saved with --save from the reports directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return currentWorkflow(cmd).View(domain.ViewArgs{Reports: m.Path(reportsFlag)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
