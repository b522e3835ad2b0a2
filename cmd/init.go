package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .kalam/ directory",
	Long: `Initialize the .kalam/ directory in the current project.

Creates:
  .kalam/
    config.yaml    # API endpoint, output directory and form defaults

Values in config.yaml can be overridden by a .env file or by the
KALAM_API_URL, KALAM_TOKEN, KALAM_LOG_LEVEL and KALAM_OUTPUT_DIR
environment variables.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir := filepath.Join(dirFlag, config.Dir)
	out := cmd.OutOrStdout()

	// Check if already initialized
	if _, err := os.Stat(configDir); err == nil {
		return fmt.Errorf("%s already exists", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := os.WriteFile(config.Path(dirFlag), []byte(config.Template), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.File, err)
	}

	fmt.Fprintf(out, "Initialized %s/\n", config.Dir)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. kalam login")
	fmt.Fprintln(out, "  2. kalam generate essay -i")
	return nil
}
