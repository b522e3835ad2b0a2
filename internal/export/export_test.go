package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// monoMeasurer gives every rune the same width, scaled by font size.
type monoMeasurer struct{ perRune float64 }

func (m monoMeasurer) Width(text string, size float64, bold bool) float64 {
	return float64(len([]rune(text))) * m.perRune * size / BodySize
}

func TestBuildLayout_HeadingAndParagraph(t *testing.T) {
	layout := BuildLayout("T", "# Heading\n\nplain text", monoMeasurer{perRune: 2})

	if len(layout.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(layout.Pages))
	}
	runs := layout.Runs()
	want := []Run{
		{Text: "T", X: Margin, Y: 20, Size: TitleSize, Bold: true},
		{Text: "Heading", X: Margin, Y: 38, Size: H1Size, Bold: true},
		{Text: "plain text", X: Margin, Y: 56, Size: BodySize, Bold: false},
	}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs %+v, want %d", len(runs), runs, len(want))
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, runs[i], want[i])
		}
	}
}

func TestBuildLayout_HeadingLevels(t *testing.T) {
	layout := BuildLayout("Doc", "# One\n## Two\n### Three\n#### Four", monoMeasurer{perRune: 1})
	runs := layout.Runs()[1:]

	tests := []struct {
		text string
		size float64
		bold bool
	}{
		{"One", H1Size, true},
		{"Two", H2Size, true},
		{"Three", H3Size, true},
		{"#### Four", BodySize, false},
	}
	if len(runs) != len(tests) {
		t.Fatalf("got %d runs, want %d", len(runs), len(tests))
	}
	for i, tt := range tests {
		if runs[i].Text != tt.text || runs[i].Size != tt.size || runs[i].Bold != tt.bold {
			t.Errorf("run %d = %+v, want text=%q size=%v bold=%v", i, runs[i], tt.text, tt.size, tt.bold)
		}
	}
	// # advances 8+5, ## advances 7+4, ### advances 6+3.
	if runs[1].Y-runs[0].Y != 13 || runs[2].Y-runs[1].Y != 11 || runs[3].Y-runs[2].Y != 9 {
		t.Errorf("unexpected advances: %v %v %v %v", runs[0].Y, runs[1].Y, runs[2].Y, runs[3].Y)
	}
}

func TestBuildLayout_StripsInlineMarkup(t *testing.T) {
	layout := BuildLayout("T", "This is **bold** and *italic* text", monoMeasurer{perRune: 0.5})
	runs := layout.Runs()
	if got := runs[1].Text; got != "This is bold and italic text" {
		t.Errorf("body = %q", got)
	}
}

func TestBuildLayout_WrapsLongLines(t *testing.T) {
	// 170mm printable width at 10mm per rune fits 17 runes.
	layout := BuildLayout("T", "aaaa bbbb cccc dddd eeee", monoMeasurer{perRune: 10})
	runs := layout.Runs()[1:]
	if len(runs) != 2 {
		t.Fatalf("got %d lines %+v, want 2", len(runs), runs)
	}
	if runs[0].Text != "aaaa bbbb cccc" || runs[1].Text != "dddd eeee" {
		t.Errorf("lines = %q, %q", runs[0].Text, runs[1].Text)
	}
	if runs[1].Y <= runs[0].Y {
		t.Error("wrapped lines should move down the page")
	}
}

func TestBuildLayout_Paginates(t *testing.T) {
	body := strings.Repeat("line of text\n", 60)
	layout := BuildLayout("Long", body, monoMeasurer{perRune: 1})

	if len(layout.Pages) < 2 {
		t.Fatalf("got %d pages, want at least 2", len(layout.Pages))
	}
	for i, page := range layout.Pages[1:] {
		if len(page.Runs) == 0 {
			t.Fatalf("page %d is empty", i+2)
		}
		if page.Runs[0].Y != Margin {
			t.Errorf("page %d starts at %v, want %v", i+2, page.Runs[0].Y, Margin)
		}
	}
	for _, run := range layout.Runs() {
		if run.Y > PageHeight-Margin+9 {
			t.Errorf("run %q placed at %v, past the bottom margin", run.Text, run.Y)
		}
	}
	total := 0
	for _, run := range layout.Runs() {
		if run.Text == "line of text" {
			total++
		}
	}
	if total != 60 {
		t.Errorf("laid out %d body lines, want 60", total)
	}
}

func TestWrap(t *testing.T) {
	width := func(s string) float64 { return float64(len([]rune(s))) }

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"fits", "short", []string{"short"}},
		{"breaks at spaces", "aaaa bbbb cccc", []string{"aaaa bbbb", "cccc"}},
		{"splits long words", "abcdefghijklmnop", []string{"abcdefghij", "klmnop"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, 10, width)
			if len(got) != len(tt.want) {
				t.Fatalf("Wrap() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		f    Format
		want string
	}{
		{"title used as is", Document{Title: "My Speech", TypeLabel: "Speech"}, FormatPDF, "My Speech.pdf"},
		{"falls back to type", Document{Title: "  ", TypeLabel: "Speech"}, FormatText, "speech.txt"},
		{"path separators replaced", Document{Title: "a/b\\c", TypeLabel: "Essay"}, FormatHTML, "a-b-c.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.doc, tt.f); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_TextIsVerbatim(t *testing.T) {
	body := "# Heading\n\nplain text"
	var buf bytes.Buffer
	if err := Render(&buf, Document{Title: "T", Body: body}, FormatText); err != nil {
		t.Fatal(err)
	}
	if buf.String() != body {
		t.Errorf("text export = %q, want %q", buf.String(), body)
	}
}

func TestRender_PDF(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{Title: "Café notes", TypeLabel: "Diary", Body: "# Heading\n\nplain **text** with ünïcödé"}
	if err := Render(&buf, doc, FormatPDF); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestRender_HTMLSanitised(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{Title: "<T>", Body: "# Heading\n\n**bold**\n\n<script>alert(1)</script>"}
	if err := Render(&buf, doc, FormatHTML); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<title>&lt;T&gt;</title>", "<h1>Heading</h1>", "<strong>bold</strong>"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script") {
		t.Errorf("html contains script tag:\n%s", out)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := Document{TypeLabel: "Letter", Body: "Dear reader"}

	path, err := Save(dir, doc, FormatText)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Base(path) != "letter.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Dear reader" {
		t.Errorf("content = %q", data)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pdf": FormatPDF, "TEXT": FormatText, "txt": FormatText, "htm": FormatHTML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for docx")
	}
}
