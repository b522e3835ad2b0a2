package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/form"
)

var editFileFlag string

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a generation and save it back",
	Long: `Edit the text of a stored generation.

Without --file, the current text opens in $EDITOR (or $VISUAL). Saving an
unchanged or empty buffer cancels the edit. With --file, the file's contents
replace the text directly.

Every saved edit is recorded with the note
"Manual edit from <type> generator".

Examples:
  kalam edit 64f1c2
  kalam edit 64f1c2 --file revised.md`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFileFlag, "file", "f", "", "Replace the text with this file's contents")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	ctx := context.Background()
	ctrl, err := loadController(ctx, a, args[0])
	if err != nil {
		return err
	}
	if err := ctrl.BeginEdit(); err != nil {
		return err
	}

	var edited string
	if editFileFlag != "" {
		data, err := os.ReadFile(editFileFlag)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", editFileFlag, err)
		}
		edited = string(data)
	} else {
		edited, err = openEditor(ctrl.EditBuffer())
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(edited) == "" || edited == ctrl.EditBuffer() {
		ctrl.CancelEdit()
		a.display.ShowWarning("Edit Cancelled", "No changes to save.")
		return nil
	}
	if err := ctrl.SetEditBuffer(edited); err != nil {
		return err
	}

	return saveEdit(ctx, a, ctrl)
}

func saveEdit(ctx context.Context, a *app, ctrl *form.Controller) error {
	label := strings.ToLower(ctrl.ContentType().Label)

	a.display.StartSpinner("Saving changes...")
	err := ctrl.SaveEdit(ctx)
	a.display.StopSpinner()
	if err != nil {
		// The buffer survives a failed save; keep it on disk so it can be retried with --file.
		if ctrl.Editing() {
			if path, werr := keepBuffer(ctrl.EditBuffer()); werr == nil {
				a.display.ShowWarning("Edit Kept", fmt.Sprintf("Your changes were written to %s.\nRetry with: kalam edit %s --file %s", path, ctrl.Result().ID, path))
			}
		}
		return err
	}

	a.display.ShowSuccess("Content Updated", fmt.Sprintf("Your %s has been successfully updated.", label))
	return nil
}

// openEditor opens text in the user's editor and returns the saved result.
func openEditor(text string) (string, error) {
	tmpfile, err := os.CreateTemp("", "kalam-edit-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.WriteString(text); err != nil {
		tmpfile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpfile.Close()

	editor := findEditor()
	if editor == "" {
		return "", fmt.Errorf("no editor found - set $EDITOR or use --file")
	}

	fmt.Printf("Opening %s... (save and quit when done)\n", editor)
	parts := strings.Fields(editor)
	editorCmd := exec.Command(parts[0], append(parts[1:], tmpfile.Name())...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

func findEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	for _, e := range []string{"nvim", "nano", "vim", "vi"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

func keepBuffer(text string) (string, error) {
	f, err := os.CreateTemp("", "kalam-unsaved-*.md")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return "", err
	}
	return f.Name(), nil
}
