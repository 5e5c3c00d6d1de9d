// Package tagged flattens a paragraph's inline AST into a single text buffer
// annotated with the style stack active at each byte range — the width-
// accurate linear coordinate system the rest of the pipeline operates over.
package tagged

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/inkcheck/reflow/internal/mdstyle"
	"github.com/inkcheck/reflow/internal/pipelineerr"
	"github.com/inkcheck/reflow/internal/superscript"
)

// Span marks the byte offset in Text.Buf at which Stack begins to apply.
// The region extends to the next span's offset, or to end of buffer for the
// last span.
type Span struct {
	Offset int
	Stack  mdstyle.Stack
}

// Text is a flattened paragraph: the concatenation of its literal text in
// document order, plus the style stack spans that apply across it.
type Text struct {
	Buf   []byte
	Spans []Span
}

// Flatten walks para's inline children depth-first and produces one or more
// Text segments. More than one segment is produced when a hard line break is
// encountered (§4.2): each segment is reflowed independently and rejoined by
// the rebuilder with an explicit hard break.
func Flatten(para ast.Node, source []byte) ([]*Text, error) {
	f := &flattener{source: source}
	f.segments = append(f.segments, &Text{})
	if err := f.walkChildren(para, nil); err != nil {
		return nil, err
	}
	return f.segments, nil
}

type flattener struct {
	source   []byte
	segments []*Text

	// instanceSeq stamps each pushed Style with a unique Instance so two
	// separately-pushed styles that look alike (two sibling emphasis runs)
	// are never mistaken by downstream packages for one continuous region.
	instanceSeq int
}

func (f *flattener) cur() *Text {
	return f.segments[len(f.segments)-1]
}

// pushStyle pushes a freshly-stamped occurrence of kind (and url, for
// Link/Image) onto ctx.
func (f *flattener) pushStyle(ctx mdstyle.Stack, kind mdstyle.Kind, url string) mdstyle.Stack {
	f.instanceSeq++
	return ctx.Push(mdstyle.Style{Kind: kind, URL: url, Instance: f.instanceSeq})
}

func (f *flattener) walkChildren(n ast.Node, ctx mdstyle.Stack) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := f.walk(child, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) walk(n ast.Node, ctx mdstyle.Stack) error {
	switch node := n.(type) {
	case *ast.Text:
		if err := f.appendText(node, ctx); err != nil {
			return err
		}
		if node.HardLineBreak() {
			f.segments = append(f.segments, &Text{})
		}
		return nil

	case *ast.String:
		return f.appendRaw(node.Value, ctx)

	case *ast.Emphasis:
		kind := mdstyle.Emph
		if node.Level >= 2 {
			kind = mdstyle.Strong
		}
		return f.walkChildren(node, f.pushStyle(ctx, kind, ""))

	case *east.Strikethrough:
		return f.walkChildren(node, f.pushStyle(ctx, mdstyle.Strikethrough, ""))

	case *superscript.Node:
		return f.walkChildren(node, f.pushStyle(ctx, mdstyle.Superscript, ""))

	case *ast.Link:
		return f.walkChildren(node, f.pushStyle(ctx, mdstyle.Link, string(node.Destination)))

	case *ast.Image:
		return f.walkChildren(node, f.pushStyle(ctx, mdstyle.Image, string(node.Destination)))

	default:
		return pipelineerr.Unsupported(n.Kind().String())
	}
}

// appendText appends a Text node's visible bytes, recording a span if the
// buffer grew, then accounts for a trailing soft break as a single space.
func (f *flattener) appendText(node *ast.Text, ctx mdstyle.Stack) error {
	seg := node.Segment.Value(f.source)
	if err := f.appendRaw(seg, ctx); err != nil {
		return err
	}
	if node.SoftLineBreak() {
		f.appendSpace()
	}
	return nil
}

// appendRaw appends a literal text leaf's bytes to the current segment's
// buffer, recording a span for it. A leaf that is entirely whitespace (a
// standalone separator between two sibling inline nodes, as between "*foo*"
// and "*bar*") carries no style of its own, so it contributes a single
// normalized separator space instead of a span: the real space must survive
// into the buffer so the word stream downstream still sees two words, not
// one run-on word.
func (f *flattener) appendRaw(raw []byte, ctx mdstyle.Stack) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		if len(raw) > 0 {
			f.appendSpace()
		}
		return nil
	}
	if !utf8.Valid(raw) {
		return pipelineerr.Encoding("invalid UTF-8 in text leaf")
	}
	t := f.cur()
	t.Spans = append(t.Spans, Span{Offset: len(t.Buf), Stack: ctx.Clone()})
	t.Buf = append(t.Buf, raw...)
	return nil
}

// appendSpace inserts a bare separator space with no style span of its own;
// it belongs to whichever span precedes it.
func (f *flattener) appendSpace() {
	t := f.cur()
	if len(t.Buf) == 0 || t.Buf[len(t.Buf)-1] == ' ' {
		return
	}
	t.Buf = append(t.Buf, ' ')
}
