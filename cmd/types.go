package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/display"
	"github.com/jywlabs/kalam/internal/form"
	"github.com/jywlabs/kalam/internal/schema"
)

var typesCmd = &cobra.Command{
	Use:   "types [type]",
	Short: "List content types and their fields",
	Long: `List every content type Kalam can generate, or show the form fields of
one type. Required fields are marked with '*'.

Examples:
  kalam types
  kalam types essay`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, display.StyleBold.Render("Content types"))
		fmt.Fprintln(out)
		for _, ct := range schema.All() {
			fmt.Fprintf(out, "  %-12s %s\n", ct.Tag, display.StyleMuted.Render(fieldSummary(ct)))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'kalam types <type>' for field details.")
		return nil
	}

	ct, err := schema.Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s  %s\n\n", display.StyleBold.Render(ct.Label), display.StyleMuted.Render(fmt.Sprintf("default %d words", ct.DefaultWordCount)))
	fmt.Fprintf(out, "  %-24s %s\n", form.TitleField+" *", "single line")
	for _, f := range ct.Fields {
		id := f.ID
		if f.Required {
			id += " *"
		}
		kind := "single line"
		if f.Kind == schema.KindMultiLine {
			kind = "multi line"
		}
		fmt.Fprintf(out, "  %-24s %-12s %s\n", id, kind, display.StyleMuted.Render(f.Label+": "+f.Placeholder))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Parameters: --words %d-%d, --style %s, --tone %s, --uniqueness %s\n",
		schema.MinWordCount, schema.MaxWordCount,
		strings.Join(schema.WritingStyles, "|"),
		strings.Join(schema.Tones, "|"),
		strings.Join(schema.Uniqueness, "|"))
	return nil
}

func fieldSummary(ct schema.ContentType) string {
	var parts []string
	for _, f := range ct.Fields {
		id := f.ID
		if f.Required {
			id += "*"
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, ", ")
}
