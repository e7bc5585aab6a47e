package content

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

// Renderer converts an item body to HTML.
type Renderer interface {
	Render(ctx context.Context, item *Item) (string, error)
}

// Markdown renders GitHub-flavoured Markdown with goldmark and sanitizes the
// result. Raw HTML in the source is passed to the sanitizer, not dropped.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates the default renderer. Extra goldmark extensions are
// appended after GFM, footnotes and buttons.
func NewMarkdown(extensions ...goldmark.Extender) *Markdown {
	exts := append([]goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		NewButtonExtension(),
	}, extensions...)

	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts item.Body.
func (m *Markdown) Render(_ context.Context, item *Item) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(item.Body), &buf); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, item.File, err)
	}
	return sanitizer.Content(buf.String()), nil
}

var _ Renderer = (*Markdown)(nil)
