package export

import (
	"regexp"
	"strings"
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 20.0
)

// Font sizes in points.
const (
	TitleSize = 18.0
	H1Size    = 16.0
	H2Size    = 14.0
	H3Size    = 13.0
	BodySize  = 12.0
)

// BlankAdvance is the vertical gap left by an empty line.
const BlankAdvance = 5.0

// lineHeightFactor matches the usual 1.15 leading of PDF text blocks.
const lineHeightFactor = 1.15

const ptToMM = 25.4 / 72

// Run is one line of text placed on a page. Y is the baseline.
type Run struct {
	Text string
	X, Y float64
	Size float64
	Bold bool
}

// Page is the ordered runs of one page.
type Page struct {
	Runs []Run
}

// Layout is a paginated rendering of a document, independent of any PDF
// library.
type Layout struct {
	Width, Height float64
	Pages         []Page
}

// Runs returns every run across all pages, in order.
func (l *Layout) Runs() []Run {
	var out []Run
	for _, p := range l.Pages {
		out = append(out, p.Runs...)
	}
	return out
}

// Measurer reports the printed width of text in millimetres.
type Measurer interface {
	Width(text string, size float64, bold bool) float64
}

// block style: font size, bold, and the advance formula lines*perLine+extra.
type blockStyle struct {
	size    float64
	bold    bool
	perLine float64
	extra   float64
}

var (
	titleStyle = blockStyle{TitleSize, true, 8, 10}
	h1Style    = blockStyle{H1Size, true, 8, 5}
	h2Style    = blockStyle{H2Size, true, 7, 4}
	h3Style    = blockStyle{H3Size, true, 6, 3}
	bodyStyle  = blockStyle{BodySize, false, 6, 3}
)

var (
	boldMarkup   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMarkup = regexp.MustCompile(`\*(.*?)\*`)
)

// StripInline removes **bold** and *italic* markers, keeping the text.
func StripInline(s string) string {
	s = boldMarkup.ReplaceAllString(s, "$1")
	return italicMarkup.ReplaceAllString(s, "$1")
}

// BuildLayout lays out title and markdown-flavoured body on A4 pages.
// Headings (#, ##, ###) are bold at decreasing sizes, blank lines leave a
// small gap, and every other line is stripped of inline markup and wrapped
// to the printable width. A page break happens before any line that would
// start below the bottom margin.
func BuildLayout(title, body string, m Measurer) *Layout {
	l := &layouter{
		m:        m,
		maxWidth: PageWidth - 2*Margin,
		y:        Margin,
		out:      &Layout{Width: PageWidth, Height: PageHeight, Pages: []Page{{}}},
	}

	l.block(title, titleStyle)

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if l.y > PageHeight-Margin {
			l.out.Pages = append(l.out.Pages, Page{})
			l.y = Margin
		}

		switch {
		case strings.HasPrefix(line, "# "):
			l.block(strings.TrimPrefix(line, "# "), h1Style)
		case strings.HasPrefix(line, "## "):
			l.block(strings.TrimPrefix(line, "## "), h2Style)
		case strings.HasPrefix(line, "### "):
			l.block(strings.TrimPrefix(line, "### "), h3Style)
		case strings.TrimSpace(line) == "":
			l.y += BlankAdvance
		default:
			l.block(StripInline(line), bodyStyle)
		}
	}
	return l.out
}

type layouter struct {
	m        Measurer
	maxWidth float64
	y        float64
	out      *Layout
}

func (l *layouter) block(text string, st blockStyle) {
	lines := Wrap(text, l.maxWidth, func(s string) float64 {
		return l.m.Width(s, st.size, st.bold)
	})
	page := &l.out.Pages[len(l.out.Pages)-1]
	leading := st.size * lineHeightFactor * ptToMM
	for i, line := range lines {
		page.Runs = append(page.Runs, Run{
			Text: line,
			X:    Margin,
			Y:    l.y + float64(i)*leading,
			Size: st.size,
			Bold: st.bold,
		})
	}
	l.y += float64(len(lines))*st.perLine + st.extra
}

// Wrap splits text into lines no wider than maxWidth, breaking at spaces and
// splitting words that are wider than a whole line. It always returns at
// least one line.
func Wrap(text string, maxWidth float64, width func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		for width(word) > maxWidth {
			head, tail := splitWord(word, maxWidth, width)
			lines = append(lines, head)
			word = tail
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits, at least one rune.
func splitWord(word string, maxWidth float64, width func(string) float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && width(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
