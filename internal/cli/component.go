package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/answers"
	"github.com/ConstCodeX/structurex/internal/engine"
	"github.com/ConstCodeX/structurex/internal/tier"
)

var (
	componentTier      string
	componentContainer bool
	componentTest      bool
	componentDryRun    bool
)

var componentCmd = &cobra.Command{
	Use:   "component <Name>",
	Short: "Generate a component in an atomic design tier",
	Long: `Generate a component and register it in the tier and root barrels.

The component file is always rewritten from its template. The component's
local index is created once and never touched again. The tier barrel and the
root barrel receive one export line each, inserted above the marker line; an
export that is already present is not added twice.

The name must already be PascalCase and is used exactly as typed: UIButton
produces UIButton.atom.tsx, not UiButton.atom.tsx.

Tiers: atom, molecule (mol), organism (org), template (tpl), page (pg).`,
	Example: `  structurex component Avatar --tier atom
  structurex component UserCard --tier mol --container
  structurex component Home --tier page --test=false --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		raw := answers.Raw{Name: args[0], Tier: componentTier}
		// Unset flags fall back to the generator defaults
		if cmd.Flags().Changed("container") {
			raw.WithContainer = componentContainer
		}
		if cmd.Flags().Changed("test") {
			raw.WithTest = componentTest
		}

		result, err := eng.GenerateComponent(context.Background(), &engine.ComponentRequest{
			Answers: raw,
			DryRun:  componentDryRun,
		})
		return reportGenerate(cmd, result, err)
	},
}

func init() {
	componentCmd.Flags().StringVarP(&componentTier, "tier", "t", "", "Tier ("+tierChoices()+")")
	componentCmd.Flags().BoolVar(&componentContainer, "container", answers.DefaultWithContainer, "Also generate a stateful container")
	componentCmd.Flags().BoolVar(&componentTest, "test", answers.DefaultWithTest, "Also generate a test file")
	componentCmd.Flags().BoolVar(&componentDryRun, "dry-run", false, "Show the plan without writing anything")
	_ = componentCmd.MarkFlagRequired("tier")
	_ = componentCmd.RegisterFlagCompletionFunc("tier", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		keys := make([]string, 0, len(tier.Keys()))
		for _, k := range tier.Keys() {
			keys = append(keys, string(k))
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	})
}

func tierChoices() string {
	keys := make([]string, 0, len(tier.Keys()))
	for _, k := range tier.Keys() {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}

// reportGenerate prints a generation result and passes err through.
// A result with skipped merges is still printed in full.
func reportGenerate(cmd *cobra.Command, result *engine.GenerateResult, err error) error {
	if result == nil {
		return err
	}

	if jsonOutput {
		if encErr := outputJSON(cmd.OutOrStdout(), result); encErr != nil {
			return encErr
		}
		return err
	}

	if result.DryRun {
		PrintSection("Dry Run")
		PrintLabelValue("Generator", result.Plan.Generator)
		PrintLabelValue("Name", result.Plan.Name)
		if result.Plan.Tier != "" {
			PrintLabelValue("Tier", result.Plan.Tier)
		}
		PrintInfo(fmt.Sprintf("Would run %s for %s %s",
			PrintCount(len(result.Plan.Actions), "action", "actions"), result.Plan.Generator, result.Plan.Name))
		items := make([]string, 0, len(result.Plan.Actions))
		for _, a := range result.Plan.Actions {
			items = append(items, fmt.Sprintf("%s: %s", a.Kind, a.Path))
		}
		PrintList(items, 1)
		return err
	}

	for _, a := range result.Applied {
		PrintStatus(a)
	}

	if errors.Is(err, engine.ErrMergeSkipped) {
		fmt.Println()
		skipped := result.Skipped()
		for _, s := range skipped {
			PrintWarning(fmt.Sprintf("Skipped %s: %s", s.Action.Path, s.Reason))
		}
		PrintWarning(fmt.Sprintf("Restore the %q line in the barrels above and re-run.", skipped[0].Action.Marker))
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Generated %s %s (%s)", result.Plan.Generator, result.Plan.Name,
		PrintCount(len(result.Applied), "action", "actions")))
	return nil
}
