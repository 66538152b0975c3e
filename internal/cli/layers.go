package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/layers"
)

// errImportDisallowed makes `layers allows` exit non-zero.
var errImportDisallowed = errors.New("import disallowed")

var layersFormat string

// layersCmd prints the layer contract and hosts the policy queries.
var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Print the allowed-import contract between tiers",
	Long: `Print the layer contract consumed by an external import boundary checker.

Each layer pairs a path pattern with the layers its code may import from.
Imports that no layer allows are disallowed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := layersFormat
		if jsonOutput {
			format = "json"
		}
		data, err := layers.Marshal(format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var layersAllowsCmd = &cobra.Command{
	Use:   "allows <from> <to>",
	Short: "Check whether one layer may import another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := layers.ParseRole(args[0])
		if err != nil {
			return err
		}
		to, err := layers.ParseRole(args[1])
		if err != nil {
			return err
		}

		allowed := layers.Allows(from, to)
		if jsonOutput {
			if err := outputJSON(cmd.OutOrStdout(), map[string]any{"from": from, "to": to, "allowed": allowed}); err != nil {
				return err
			}
		} else if allowed {
			PrintSuccess(fmt.Sprintf("%s may import %s", from, to))
		}

		if !allowed {
			return fmt.Errorf("%w: %s may not import %s", errImportDisallowed, from, to)
		}
		return nil
	},
}

var layersClassifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Print the layer each path belongs to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		type classified struct {
			Path string      `json:"path"`
			Role layers.Role `json:"type,omitempty"`
		}

		out := make([]classified, 0, len(args))
		for _, p := range args {
			role, _ := layers.Classify(strings.ReplaceAll(p, "\\", "/"))
			out = append(out, classified{Path: p, Role: role})
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), out)
		}

		rows := make([][]string, 0, len(out))
		for _, c := range out {
			role := string(c.Role)
			if role == "" {
				role = "-"
			}
			rows = append(rows, []string{c.Path, role})
		}
		PrintTable([]string{"PATH", "LAYER"}, rows)
		return nil
	},
}

func init() {
	layersCmd.Flags().StringVarP(&layersFormat, "format", "f", "yaml", "Output format (yaml or json)")
	layersCmd.AddCommand(layersAllowsCmd)
	layersCmd.AddCommand(layersClassifyCmd)
}
