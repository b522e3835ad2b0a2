// Package render draws generated markdown as styled terminal text.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading and emphasis colours.
var (
	StyleH1     = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).Bold(true)
	StyleH2     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D8B4FE")).Bold(true)
	StyleH3     = lipgloss.NewStyle().Foreground(lipgloss.Color("#86EFAC"))
	StyleStrong = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE047")).Bold(true)
	StyleEm     = lipgloss.NewStyle().Foreground(lipgloss.Color("#67E8F9")).Italic(true)
	StyleCode   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	StyleStrike = lipgloss.NewStyle().Strikethrough(true)
	StyleQuote  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Renderer converts markdown into wrapped, styled text.
type Renderer struct {
	width int
	md    goldmark.Markdown
}

// New creates a renderer that wraps paragraphs at width columns.
func New(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{
		width: width,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render returns the formatted form of src.
func (r *Renderer) Render(src string) string {
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	w := &writer{r: r, source: source}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, "")
	}
	return strings.TrimRight(w.buf.String(), "\n") + "\n"
}

type writer struct {
	r      *Renderer
	source []byte
	buf    bytes.Buffer
}

func (w *writer) wrap(s, indent string) string {
	width := w.r.width - len(indent)
	if width < 20 {
		width = 20
	}
	lines := strings.Split(wordwrap.String(s, width), "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (w *writer) block(n ast.Node, indent string) {
	switch n := n.(type) {
	case *ast.Heading:
		style := StyleH3
		switch n.Level {
		case 1:
			style = StyleH1
		case 2:
			style = StyleH2
		}
		w.buf.WriteString(indent + style.Render(w.inline(n)) + "\n\n")

	case *ast.Paragraph, *ast.TextBlock:
		w.buf.WriteString(w.wrap(w.inline(n), indent) + "\n")
		if _, ok := n.(*ast.Paragraph); ok {
			w.buf.WriteString("\n")
		}

	case *ast.List:
		num := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if n.IsOrdered() {
				marker = fmt.Sprintf("%d. ", num)
				num++
			}
			w.listItem(item, indent, marker)
		}
		if indent == "" {
			w.buf.WriteString("\n")
		}

	case *ast.Blockquote:
		var inner writer
		inner.r, inner.source = w.r, w.source
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			inner.block(c, "")
		}
		for _, line := range strings.Split(strings.TrimRight(inner.buf.String(), "\n"), "\n") {
			w.buf.WriteString(indent + StyleQuote.Render("│ ") + line + "\n")
		}
		w.buf.WriteString("\n")

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(w.source)), "\n")
			w.buf.WriteString(indent + "    " + StyleCode.Render(line) + "\n")
		}
		w.buf.WriteString("\n")

	case *ast.ThematicBreak:
		w.buf.WriteString(indent + StyleCode.Render(strings.Repeat("─", min(w.r.width, 40))) + "\n\n")

	case *east.Table:
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cellText := w.inline(cell)
				if _, ok := row.(*east.TableHeader); ok {
					cellText = StyleStrong.Render(cellText)
				}
				cells = append(cells, cellText)
			}
			w.buf.WriteString(indent + strings.Join(cells, " │ ") + "\n")
		}
		w.buf.WriteString("\n")

	case *ast.HTMLBlock:
		// Raw HTML is not shown.

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, indent)
		}
	}
}

func (w *writer) listItem(item ast.Node, indent, marker string) {
	first := true
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			prefix := indent + strings.Repeat(" ", len([]rune(marker)))
			body := w.wrap(w.inline(c), prefix)
			if first {
				body = indent + marker + strings.TrimPrefix(body, prefix)
			}
			w.buf.WriteString(body + "\n")
		default:
			w.block(c, indent+"  ")
		}
		first = false
	}
}

func (w *writer) inline(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(w.source))
			if c.HardLineBreak() {
				sb.WriteString("\n")
			} else if c.SoftLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.Emphasis:
			if c.Level >= 2 {
				sb.WriteString(StyleStrong.Render(w.inline(c)))
			} else {
				sb.WriteString(StyleEm.Render(w.inline(c)))
			}
		case *ast.CodeSpan:
			sb.WriteString(StyleCode.Render(w.inline(c)))
		case *ast.Link:
			label := w.inline(c)
			sb.WriteString(label)
			if dest := string(c.Destination); dest != "" && dest != label {
				sb.WriteString(StyleCode.Render(" (" + dest + ")"))
			}
		case *ast.AutoLink:
			sb.Write(c.URL(w.source))
		case *east.Strikethrough:
			sb.WriteString(StyleStrike.Render(w.inline(c)))
		case *east.TaskCheckBox:
			if c.IsChecked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
		case *ast.RawHTML:
		default:
			sb.WriteString(w.inline(c))
		}
	}
	return sb.String()
}
