package commands

import (
	"os"
	"path/filepath"

	"github.com/dyluth/dexteam/internal/config"
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/dyluth/dexteam/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a starter dexteam.yml",
	Long: `Create a dexteam.yml with every setting at its default value.

DIR defaults to the current directory.

Use --force to overwrite an existing dexteam.yml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	// Note: Cannot use -f shorthand because it conflicts with global --config flag
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing dexteam.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if !forceInit {
		if err := scaffold.CheckExisting(dir); err != nil {
			return printer.Error("dexteam.yml already exists", err.Error(), nil)
		}
	} else if existing := filepath.Join(dir, config.DefaultFileName); fileExists(existing) {
		printer.Warning("Overwriting existing %s\n", existing)
	}

	path, err := scaffold.Initialize(dir, forceInit)
	if err != nil {
		return printer.Error("initialization failed", err.Error(), nil)
	}

	scaffold.PrintSuccess(printer.Writer(), path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
