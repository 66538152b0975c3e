package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/layers"
	"github.com/ConstCodeX/structurex/internal/tier"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the atomic design tiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := tier.All()
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), defs)
		}

		rows := make([][]string, 0, len(defs))
		for _, def := range defs {
			imports := "-"
			if allowed, err := layers.AllowedSources(layers.Role(def.Folder)); err == nil {
				imports = fmt.Sprint(allowed)
			}
			rows = append(rows, []string{string(def.Key), def.Folder, def.Suffix, def.Base, imports})
		}
		PrintTable([]string{"TIER", "FOLDER", "SUFFIX", "BASE", "MAY IMPORT"}, rows)
		return nil
	},
}
