// Package superscript adds a Superscript inline node to goldmark, the same
// way goldmark's own GFM bundle adds Strikethrough: a dedicated ast.Kind, an
// inline parser that recognizes the delimiter run, and an extension that
// registers both with a goldmark.Markdown instance.
//
// CommonMark and GFM have no native superscript syntax. This extension
// defines one: an opening run of exactly four carets and a closing run of
// exactly five, e.g. "^^^^raised^^^^^". The asymmetric run lengths are not
// cosmetic — they fix the rendered delimiter widths (4 open, 5 close) that
// the rest of this module treats as authoritative.
package superscript

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// OpenWidth and CloseWidth are the fixed delimiter run lengths this syntax requires.
const (
	OpenWidth  = 4
	CloseWidth = 5
	marker     = '^'
)

// Node is a goldmark inline node representing a superscript span.
// It carries no state of its own beyond its children, mirroring
// extension/ast.Strikethrough.
type Node struct {
	ast.BaseInline
}

// NewNode returns an empty Superscript node ready to receive children.
func NewNode() *Node {
	return &Node{}
}

// KindSuperscript is this node's unique ast.NodeKind.
var KindSuperscript = ast.NewNodeKind("Superscript")

// Kind implements ast.Node.
func (n *Node) Kind() ast.NodeKind { return KindSuperscript }

// Dump implements ast.Node, for debugging.
func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type inlineParser struct{}

// Parser is the shared inline parser instance, analogous to
// extension.NewStrikethroughParser in goldmark's GFM bundle.
var Parser = &inlineParser{}

func (p *inlineParser) Trigger() []byte {
	return []byte{marker}
}

func (p *inlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	openLen := caretRunLength(line)
	if openLen < OpenWidth {
		return nil
	}
	// Consume exactly OpenWidth carets; any surplus carets stay in the stream
	// and are scanned below like the rest of the line, so they end up as
	// literal text at the start of the span's content (or, when five or more
	// remain, as its closing run).
	block.Advance(OpenWidth)

	rest, _ := block.PeekLine()
	closeOffset, closeLen := findClosingRun(rest)
	if closeOffset < 0 {
		// No valid closing run on this line: not a superscript span, put the
		// opening carets back as plain text.
		block.Advance(-OpenWidth)
		return nil
	}

	start := segment.Start + OpenWidth
	stop := segment.Start + OpenWidth + closeOffset
	block.Advance(closeOffset + closeLen)

	node := NewNode()
	node.AppendChild(node, ast.NewTextSegment(text.NewSegment(start, stop)))
	return node
}

// caretRunLength returns the number of consecutive marker bytes at the start of line.
func caretRunLength(line []byte) int {
	n := 0
	for n < len(line) && line[n] == marker {
		n++
	}
	return n
}

// findClosingRun scans line for the first run of at least CloseWidth carets,
// returning its byte offset and length, or (-1, 0) if none exists.
func findClosingRun(line []byte) (offset, length int) {
	i := 0
	for i < len(line) {
		if line[i] != marker {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == marker {
			j++
		}
		if j-i >= CloseWidth {
			return i, CloseWidth
		}
		i = j
	}
	return -1, 0
}

// extender implements goldmark.Extender, wiring Parser into the inline
// parser table at priority 201.
type extender struct{}

// Extension is the goldmark.Extender to pass to goldmark.New(goldmark.WithExtensions(...)).
var Extension goldmark.Extender = &extender{}

func (e *extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(Parser, 201),
		),
	)
}
