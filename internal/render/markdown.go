// File: internal/render/markdown.go
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts model output to HTML. Raw HTML in the source is dropped.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// ToHTML returns the rendered HTML, or "" if the source cannot be rendered.
func (m *Markdown) ToHTML(source string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return buf.String()
}
