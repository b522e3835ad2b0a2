package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Show the resolved Kalam configuration.

Settings come from .kalam/config.yaml when present, then .env, then the
environment. Defaults are used for anything left unset.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dirFlag)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := config.Path(dirFlag)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "No %s found (using defaults)\n", path)
		fmt.Fprintln(out, "Run 'kalam init' to create a configuration file.")
	} else {
		fmt.Fprintf(out, "Current configuration (%s):\n", path)
	}
	fmt.Fprintln(out)
	printConfig(cmd, cfg)
	return nil
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	wordCount := "per content type"
	if cfg.Defaults.WordCount != 0 {
		wordCount = fmt.Sprint(cfg.Defaults.WordCount)
	}
	token := "(none)"
	if cfg.Token != "" {
		token = "(set from environment)"
	}
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "off"
	}
	sessionFile := cfg.SessionFile
	if sessionFile == "" {
		sessionFile = "(user config directory)"
	}

	fmt.Fprintf(out, "  apiBaseURL:  %s\n", cfg.APIBaseURL)
	fmt.Fprintf(out, "  timeout:     %s\n", cfg.Timeout)
	fmt.Fprintf(out, "  outputDir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  sessionFile: %s\n", sessionFile)
	fmt.Fprintf(out, "  log.level:   %s\n", logLevel)
	fmt.Fprintf(out, "  token:       %s\n", token)
	fmt.Fprintln(out, "  defaults:")
	fmt.Fprintf(out, "    wordCount:    %s\n", wordCount)
	fmt.Fprintf(out, "    writingStyle: %s\n", cfg.Defaults.WritingStyle)
	fmt.Fprintf(out, "    tone:         %s\n", cfg.Defaults.Tone)
	fmt.Fprintf(out, "    uniqueness:   %s\n", cfg.Defaults.Uniqueness)
}
