package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/display"
	"github.com/jywlabs/kalam/internal/library"
	"github.com/jywlabs/kalam/internal/render"
)

var (
	historySearchFlag string
	historyTypeFlag   string
	showRawFlag       bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated content",
	Long: `List your generations, newest first as returned by the server.

--search matches the title and the text, ignoring case. --type keeps one
content type.

Examples:
  kalam history
  kalam history --search climate --type essay`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a generation",
	Long:  `Show a stored generation rendered as formatted text, or as raw markdown with --raw.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a generation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	historyCmd.Flags().StringVarP(&historySearchFlag, "search", "s", "", "Search titles and text")
	historyCmd.Flags().StringVar(&historyTypeFlag, "type", "", "Only show this content type")
	showCmd.Flags().BoolVar(&showRawFlag, "raw", false, "Print the markdown source")
	rootCmd.AddCommand(historyCmd, showCmd, deleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	a.display.StartSpinner("Fetching content history...")
	items, err := a.client.History(context.Background())
	a.display.StopSpinner()
	if err != nil {
		return fmt.Errorf("failed to fetch content history: %w", err)
	}

	filter := library.Filter{Search: historySearchFlag, Type: historyTypeFlag}
	printHistory(a.display, items, filter.Apply(items))
	return nil
}

func printHistory(d *display.Display, all, shown []api.ContentItem) {
	out := d.Writer()
	if len(shown) == 0 {
		fmt.Fprintln(out, display.StyleMuted.Render("No content found"))
		return
	}

	preview := library.PreviewLength
	if w := d.Width() - 4; w > 20 && w < preview {
		preview = w
	}
	for _, item := range shown {
		title := display.Truncate(item.Title, 60)
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "%s  %s  %s\n",
			display.StyleBold.Render(title),
			display.StyleAccent.Render(item.Type),
			display.StyleMuted.Render(formatDate(item)))
		fmt.Fprintf(out, "  %s\n", display.StyleMuted.Render("id: "+item.ID))
		fmt.Fprintf(out, "  %s\n\n", library.Preview(item.Content, preview))
	}
	fmt.Fprintf(out, "%d of %d shown · types: %s\n", len(shown), len(all), strings.Join(library.Types(all), ", "))
}

func formatDate(item api.ContentItem) string {
	if item.CreatedAt.IsZero() {
		return ""
	}
	return item.CreatedAt.Local().Format("2006-01-02")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	ctrl, err := loadController(context.Background(), a, args[0])
	if err != nil {
		return err
	}
	res := ctrl.Result()
	out := a.display.Writer()

	if showRawFlag {
		fmt.Fprintln(out, res.Content)
		return nil
	}

	state := ctrl.State()
	a.display.ShowCommandHeader(ctrl.ContentType().Label, documentFrom(ctrl).DisplayTitle())
	fmt.Fprintln(out, render.New(a.display.Width()).Render(res.Content))
	a.display.ShowPanel("Details", fmt.Sprintf("ID: %s\nWords: %d · Style: %s · Tone: %s",
		res.ID, state.WordCount, state.WritingStyle, state.Tone))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	if err := a.client.DeleteContent(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	a.display.ShowSuccess("Content Deleted", "Content has been successfully deleted")
	return nil
}
