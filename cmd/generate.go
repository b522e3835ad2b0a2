package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/config"
	"github.com/jywlabs/kalam/internal/export"
	"github.com/jywlabs/kalam/internal/form"
	"github.com/jywlabs/kalam/internal/render"
	"github.com/jywlabs/kalam/internal/schema"
)

var (
	generateTitleFlag       string
	generateFieldFlags      []string
	generateDictateFlags    []string
	generateWordsFlag       int
	generateStyleFlag       string
	generateToneFlag        string
	generateUniquenessFlag  string
	generateInteractiveFlag bool
	generateExportFlag      []string
)

var generateCmd = &cobra.Command{
	Use:   "generate <type>",
	Short: "Generate content from a form",
	Long: `Generate a piece of writing of the given content type.

Form values come from flags, from an interactive prompt (--interactive),
or both: flags pre-fill the prompt. Every content type needs a title plus
its required fields; run 'kalam types <type>' to see them.

--dictate appends text to a field the way voice input does: it is joined to
the existing value with a single space.

Examples:
  kalam generate essay --title "Climate" --field topic="carbon taxes"
  kalam generate speech -i
  kalam generate summary --title Notes --field text="$(cat notes.md)" --words 200
  kalam generate letter -i --export pdf,txt`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateTitleFlag, "title", "t", "", "Title of the piece")
	generateCmd.Flags().StringArrayVarP(&generateFieldFlags, "field", "F", nil, "Set a form field (id=value, repeatable)")
	generateCmd.Flags().StringArrayVar(&generateDictateFlags, "dictate", nil, "Append a transcript to a field (id=text, repeatable)")
	generateCmd.Flags().IntVarP(&generateWordsFlag, "words", "w", 0, fmt.Sprintf("Target word count (%d-%d)", schema.MinWordCount, schema.MaxWordCount))
	generateCmd.Flags().StringVar(&generateStyleFlag, "style", "", "Writing style: "+strings.Join(schema.WritingStyles, ", "))
	generateCmd.Flags().StringVar(&generateToneFlag, "tone", "", "Tone: "+strings.Join(schema.Tones, ", "))
	generateCmd.Flags().StringVar(&generateUniquenessFlag, "uniqueness", "", "Uniqueness: "+strings.Join(schema.Uniqueness, ", "))
	generateCmd.Flags().BoolVarP(&generateInteractiveFlag, "interactive", "i", false, "Prompt for the title and fields")
	generateCmd.Flags().StringSliceVarP(&generateExportFlag, "export", "e", nil, "Export the result (pdf, txt, html)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ct, err := schema.Lookup(args[0])
	if err != nil {
		return err
	}
	formats, err := parseFormats(generateExportFlag)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	ctrl := form.New(ct, a.client)
	if err := applyDefaults(ctrl, a.cfg.Defaults); err != nil {
		return err
	}
	if err := applyParameterFlags(cmd, ctrl); err != nil {
		return err
	}

	if generateTitleFlag != "" {
		ctrl.UpdateField(form.TitleField, generateTitleFlag)
	}
	fields, err := parseAssignments(ct, generateFieldFlags)
	if err != nil {
		return err
	}
	for _, f := range fields {
		ctrl.UpdateField(f.id, f.value)
	}
	dictated, err := parseAssignments(ct, generateDictateFlags)
	if err != nil {
		return err
	}
	for _, f := range dictated {
		ctrl.AppendVoiceTranscript(f.id, f.value)
	}

	if generateInteractiveFlag {
		if err := collectForm(ctrl, newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())); err != nil {
			return fmt.Errorf("failed to read form: %w", err)
		}
	}

	d := a.display
	state := ctrl.State()
	d.ShowCommandHeader("Generate", fmt.Sprintf("%s · %d words · %s · %s", ct.Label, state.WordCount, state.WritingStyle, state.Tone))

	if missing := ctrl.Missing(); len(missing) > 0 {
		return &form.ValidationError{Missing: missing}
	}

	d.StartSpinner(fmt.Sprintf("Generating %s...", strings.ToLower(ct.Label)))
	res, err := ctrl.Submit(context.Background())
	d.StopSpinner()
	if err != nil {
		return err
	}

	d.ShowSuccess(ct.Label+" Generated!", fmt.Sprintf("Your %s has been successfully generated.\nID: %s", strings.ToLower(ct.Label), res.ID))
	fmt.Fprintln(d.Writer(), render.New(d.Width()).Render(res.Content))

	doc := export.Document{Title: state.Title, TypeLabel: ct.Label, Body: res.Content}
	return saveExports(a, doc, formats)
}

// applyDefaults seeds the form with the configured parameter defaults.
func applyDefaults(ctrl *form.Controller, def config.Defaults) error {
	if def.WordCount != 0 {
		if err := ctrl.SetWordCount(def.WordCount); err != nil {
			return err
		}
	}
	if err := ctrl.SetWritingStyle(def.WritingStyle); err != nil {
		return err
	}
	if err := ctrl.SetTone(def.Tone); err != nil {
		return err
	}
	return ctrl.SetUniqueness(def.Uniqueness)
}

func applyParameterFlags(cmd *cobra.Command, ctrl *form.Controller) error {
	flags := cmd.Flags()
	if flags.Changed("words") {
		if err := ctrl.SetWordCount(generateWordsFlag); err != nil {
			return err
		}
	}
	if flags.Changed("style") {
		if err := ctrl.SetWritingStyle(generateStyleFlag); err != nil {
			return err
		}
	}
	if flags.Changed("tone") {
		if err := ctrl.SetTone(generateToneFlag); err != nil {
			return err
		}
	}
	if flags.Changed("uniqueness") {
		if err := ctrl.SetUniqueness(generateUniquenessFlag); err != nil {
			return err
		}
	}
	return nil
}

type assignment struct {
	id    string
	value string
}

// parseAssignments splits id=value pairs and checks each id against ct.
func parseAssignments(ct schema.ContentType, pairs []string) ([]assignment, error) {
	out := make([]assignment, 0, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid field %q: expected id=value", pair)
		}
		if id != form.TitleField {
			if _, known := ct.Field(id); !known {
				return nil, fmt.Errorf("unknown field %q for %s (fields: %s)", id, strings.ToLower(ct.Label), fieldIDs(ct))
			}
		}
		out = append(out, assignment{id: id, value: value})
	}
	return out, nil
}

func fieldIDs(ct schema.ContentType) string {
	ids := make([]string, 0, len(ct.Fields))
	for _, f := range ct.Fields {
		ids = append(ids, f.ID)
	}
	return strings.Join(ids, ", ")
}
