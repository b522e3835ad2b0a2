package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/export"
	"github.com/jywlabs/kalam/internal/form"
	"github.com/jywlabs/kalam/internal/schema"
)

var (
	exportFormatFlag []string
	exportOutputFlag string
	exportStdoutFlag bool
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Download a generation as PDF, text or HTML",
	Long: `Export a stored generation to a file.

The file is named after the title, or after the content type when the title
is blank, and written to the configured output directory.

Examples:
  kalam export 64f1c2 --format pdf
  kalam export 64f1c2 -f pdf,txt -o ~/Documents
  kalam export 64f1c2 -f html --stdout > essay.html`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormatFlag, "format", "f", []string{"pdf"}, "Formats to write (pdf, txt, html)")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Output directory (default from config)")
	exportCmd.Flags().BoolVar(&exportStdoutFlag, "stdout", false, "Write a single format to stdout instead of a file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	formats, err := parseFormats(exportFormatFlag)
	if err != nil {
		return err
	}
	if exportStdoutFlag && len(formats) != 1 {
		return fmt.Errorf("--stdout needs exactly one format")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	if exportOutputFlag != "" {
		a.cfg.OutputDir = exportOutputFlag
	}

	ctrl, err := loadController(context.Background(), a, args[0])
	if err != nil {
		return err
	}
	doc := documentFrom(ctrl)

	if exportStdoutFlag {
		return export.Render(cmd.OutOrStdout(), doc, formats[0])
	}
	return saveExports(a, doc, formats)
}

// parseFormats accepts format names, also comma-joined inside one value.
func parseFormats(values []string) ([]export.Format, error) {
	var formats []export.Format
	seen := make(map[export.Format]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := export.ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

func saveExports(a *app, doc export.Document, formats []export.Format) error {
	if len(formats) == 0 {
		return nil
	}
	for _, f := range formats {
		path, err := export.Save(a.cfg.OutputDir, doc, f)
		if err != nil {
			return err
		}
		a.display.ShowSuccess("Downloaded", fmt.Sprintf("%s downloaded as %s.\nPath: %s", doc.TypeLabel, formatName(f), path))
	}
	return nil
}

func formatName(f export.Format) string {
	switch f {
	case export.FormatPDF:
		return "PDF with formatting preserved"
	case export.FormatText:
		return "text file"
	case export.FormatHTML:
		return "HTML page"
	}
	return string(f)
}

// loadController fetches a stored generation and seeds a controller with it.
func loadController(ctx context.Context, a *app, id string) (*form.Controller, error) {
	a.display.StartSpinner("Fetching content...")
	item, err := a.client.Content(ctx, id)
	a.display.StopSpinner()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content %s: %w", id, err)
	}

	ct, err := schema.Lookup(item.Type)
	if err != nil {
		// Unknown types still export and edit under their raw tag.
		ct = schema.ContentType{Tag: item.Type, Label: labelFor(item.Type)}
	}
	ctrl := form.New(ct, a.client)
	if err := ctrl.Load(*item); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func documentFrom(ctrl *form.Controller) export.Document {
	doc := export.Document{
		Title:     ctrl.State().Title,
		TypeLabel: ctrl.ContentType().Label,
	}
	if res := ctrl.Result(); res != nil {
		doc.Body = res.Content
	}
	return doc
}

func labelFor(tag string) string {
	if tag == "" {
		return "Content"
	}
	return strings.ToUpper(tag[:1]) + tag[1:]
}
