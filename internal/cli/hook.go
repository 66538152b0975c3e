package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/engine"
)

var hookDryRun bool

var hookCmd = &cobra.Command{
	Use:   "hook <Name>",
	Short: "Generate a reusable hook named use<Name>",
	Long: `Generate src/hooks/use<Name> from the hook template.

An existing hook file is kept as is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.GenerateHook(context.Background(), &engine.HookRequest{
			Name:   args[0],
			DryRun: hookDryRun,
		})
		return reportGenerate(cmd, result, err)
	},
}

func init() {
	hookCmd.Flags().BoolVar(&hookDryRun, "dry-run", false, "Show the plan without writing anything")
}
