package content

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Buttons are written as [!button|Label](/url) and render as
// <a class="button" href="/url">Label</a>.
var buttonOpen = []byte("[!button|")

// KindButton identifies button nodes in the goldmark AST.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link.
type ButtonNode struct {
	ast.BaseInline
	Destination []byte
	Label       []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Destination": string(n.Destination),
		"Label":       string(n.Label),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonOpen) {
		return nil
	}

	rest := line[len(buttonOpen):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd <= 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}
	dest := rest[labelEnd+2:]
	destEnd := bytes.IndexByte(dest, ')')
	if destEnd <= 0 {
		return nil
	}

	block.Advance(len(buttonOpen) + labelEnd + 2 + destEnd + 1)
	return &ButtonNode{
		Label:       bytes.TrimSpace(rest[:labelEnd]),
		Destination: bytes.TrimSpace(dest[:destEnd]),
	}
}

type buttonRenderer struct{}

func (buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, func(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*ButtonNode)
		_, _ = w.WriteString(`<a class="button" href="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(util.EscapeHTML(n.Label))
		_, _ = w.WriteString(`</a>`)
		return ast.WalkContinue, nil
	})
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(buttonRenderer{}, 50)))
}

// NewButtonExtension registers button syntax with goldmark.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}
