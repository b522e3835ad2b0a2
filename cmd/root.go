package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/display"
	"github.com/jywlabs/kalam/internal/form"
)

var (
	verboseFlag bool
	dirFlag     string
	apiURLFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "kalam",
	Short: "Kalam - AI writing assistant in your terminal",
	Long: `Kalam generates essays, speeches, letters and other writing with the
Kalam AI service, then lets you review, edit and export the result.

Workflow:
  kalam login                          Sign in and store a session token
  kalam types                          List the content types and their fields
  kalam generate essay --title ...     Generate content from a form
  kalam history                        Browse what you have generated
  kalam edit <id>                      Edit a generation in $EDITOR
  kalam export <id> -f pdf             Download a generation

Quick Start:
  1. kalam register --email you@example.com
  2. kalam generate essay --title "Climate" --field topic="carbon taxes"
  3. kalam export <id> --format pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log API requests to stderr")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", ".", "Project directory containing .kalam/config.yaml")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Override the API base URL")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(display.New(os.Stderr), err)
		os.Exit(1)
	}
}

// reportError shows err as a notification titled after its kind.
func reportError(d *display.Display, err error) {
	var (
		validation *form.ValidationError
		generation *form.GenerationError
		save       *form.SaveError
		apiErr     *api.Error
	)
	switch {
	case errors.As(err, &validation) && len(validation.Missing) == 0:
		d.ShowError("Invalid Input", validation.Error())
	case errors.As(err, &validation):
		d.ShowError("Missing Information", validation.Error())
	case errors.As(err, &generation):
		d.ShowError("Generation Failed", generation.Message)
	case errors.As(err, &save):
		d.ShowError("Save Failed", save.Message)
	case errors.Is(err, form.ErrNoContentID):
		d.ShowError("Error", "No content ID found for saving.")
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized:
		d.ShowError("Not Signed In", fmt.Sprintf("%s\nRun 'kalam login' and try again.", apiErr.Message))
	default:
		d.ShowError("Error", err.Error())
	}
}
