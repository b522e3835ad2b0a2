package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func newPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(Margin, Margin, Margin)
	return pdf
}

// FontMeasurer measures text with the core Helvetica metrics used when the
// PDF is written.
type FontMeasurer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewFontMeasurer returns a measurer backed by fpdf's font metrics.
func NewFontMeasurer() *FontMeasurer {
	pdf := newPDF()
	return &FontMeasurer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Width implements Measurer.
func (f *FontMeasurer) Width(text string, size float64, bold bool) float64 {
	f.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return f.pdf.GetStringWidth(f.translate(text))
}

// WritePDF renders a layout as a PDF document.
func WritePDF(w io.Writer, title string, layout *Layout) error {
	pdf := newPDF()
	pdf.SetTitle(title, true)
	pdf.SetCreator("kalam", true)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, run := range page.Runs {
			if run.Text == "" {
				continue
			}
			pdf.SetFont(fontFamily, fontStyle(run.Bold), run.Size)
			pdf.Text(run.X, run.Y, translate(run.Text))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
