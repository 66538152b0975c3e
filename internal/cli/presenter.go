package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/engine"
)

var presenterDryRun bool

var presenterCmd = &cobra.Command{
	Use:   "presenter <Name>",
	Short: "Generate a presenter named <Name>Presenter",
	Long: `Generate src/presenters/<Name>Presenter from the presenter template.

An existing presenter file is kept as is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.GeneratePresenter(context.Background(), &engine.PresenterRequest{
			Name:   args[0],
			DryRun: presenterDryRun,
		})
		return reportGenerate(cmd, result, err)
	},
}

func init() {
	presenterCmd.Flags().BoolVar(&presenterDryRun, "dry-run", false, "Show the plan without writing anything")
}
