package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var htmlPolicy = bluemonday.UGCPolicy()

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<h1>%s</h1>
%s</body>
</html>
`

// WriteHTML renders the body as sanitised HTML under the given title.
func WriteHTML(w io.Writer, title, body string) error {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	safe := htmlPolicy.SanitizeBytes(buf.Bytes())
	escaped := html.EscapeString(title)
	_, err := fmt.Fprintf(w, htmlTemplate, escaped, escaped, safe)
	return err
}
