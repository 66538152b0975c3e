package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated units and whether their files changed",
	Long: `Display every unit recorded in the generation manifest.

Each owned file is reported as clean, modified (edited since it was
generated) or missing. Shared barrels are not tracked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.List(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		if len(result.Entries) == 0 {
			PrintEmptyState("Nothing generated yet")
			return nil
		}

		rows := make([][]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			rows = append(rows, []string{e.Generator, e.Name, e.Tier, summarize(e.States), e.GeneratedAt.Format("2006-01-02 15:04:05")})
		}
		PrintTable([]string{"GENERATOR", "NAME", "TIER", "FILES", "GENERATED"}, rows)
		return nil
	},
}

// summarize describes file states, e.g. "3 files" or "3 files, 1 modified".
func summarize(states []engine.ListedFile) string {
	var modified, missing int
	for _, s := range states {
		switch s.State {
		case engine.FileModified:
			modified++
		case engine.FileMissing:
			missing++
		}
	}

	out := PrintCount(len(states), "file", "files")
	if modified > 0 {
		out += fmt.Sprintf(", %d modified", modified)
	}
	if missing > 0 {
		out += fmt.Sprintf(", %d missing", missing)
	}
	return out
}
