package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/splint/internal/domain"
	m "github.com/mouse-blink/splint/internal/model"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [names...]",
		Short: "List the compiled rules",
		Long: `Compile the rules file and list every rule with its severity, pattern and highlight range.
Pass rule names to list only those rules.`,
		RunE: func(cmd *cobra.Command, names []string) error {
			return currentWorkflow(cmd).Rules(domain.RulesArgs{Rules: m.Path(rulesFlag), Names: names})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
