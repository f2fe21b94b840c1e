package reporting

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteHTML writes the Markdown report rendered as a standalone HTML page.
func WriteHTML(w io.Writer, b *Benchmark) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, b); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "GSEA Calibration Benchmark",
		Flags: html.CommonFlags | html.CompletePage,
	})
	_, err := w.Write(markdown.Render(p.Parse(md.Bytes()), renderer))
	return err
}
