package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ConstCodeX/structurex/internal/config"
	"github.com/ConstCodeX/structurex/internal/fsops"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .structurex.yaml with the default layout",
	Long: `Write the project configuration file with every default spelled out.

Edit it to change the source and test roots, file extensions, the barrel
marker line, the modules the root barrel re-exports, or to point at a
directory of template overrides.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	paths, _, err := loadProject()
	if err != nil {
		return err
	}

	dir, name := filepath.Split(paths.Config)
	fs := fsops.NewRealFS(dir)

	exists, err := fs.Exists(name)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists && !initForce {
		return fmt.Errorf("%s already exists\nUse --force to overwrite it", paths.Config)
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := fs.AtomicWrite(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), map[string]string{"config": paths.Config})
	}

	PrintSuccess(fmt.Sprintf("Wrote %s", paths.Config))
	fmt.Println()
	PrintInfo("Next steps:")
	fmt.Println("  1. Review the layout:   $EDITOR " + config.ConfigFileName)
	fmt.Println("  2. Generate an atom:    structurex component Avatar --tier atom")
	fmt.Println("  3. Publish the layers:  structurex layers > layers.yaml")
	return nil
}
