package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is a downloadable artifact type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
	FormatHTML Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatText, FormatHTML}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "txt", "text":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q (supported: pdf, txt, html)", s)
}

// Document is generated content ready for export.
type Document struct {
	Title     string // User-entered title, may be blank
	TypeLabel string // Content type display name, used when Title is blank
	Body      string
}

// DisplayTitle is the title printed at the top of the document.
func (d Document) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return d.TypeLabel
}

var unsafeFilenameChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
	"\"", "-", "<", "-", ">", "-", "|", "-",
)

// Filename is the title (or the lowercased type label) plus the extension.
func Filename(d Document, f Format) string {
	base := strings.TrimSpace(d.Title)
	if base == "" {
		base = strings.ToLower(d.TypeLabel)
	}
	base = unsafeFilenameChars.Replace(base)
	if base == "" {
		base = "content"
	}
	return base + "." + string(f)
}

// Render writes the document in the given format.
func Render(w io.Writer, d Document, f Format) error {
	switch f {
	case FormatPDF:
		layout := BuildLayout(d.DisplayTitle(), d.Body, NewFontMeasurer())
		return WritePDF(w, d.DisplayTitle(), layout)
	case FormatText:
		_, err := io.WriteString(w, d.Body)
		return err
	case FormatHTML:
		return WriteHTML(w, d.DisplayTitle(), d.Body)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// Save renders the document into dir and returns the written path.
func Save(dir string, d Document, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d, f); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(d, f))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
