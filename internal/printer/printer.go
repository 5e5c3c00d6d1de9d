// Package printer renders a goldmark AST back to CommonMark text. It is a
// goldmark renderer.NodeRenderer, registered the way the GFM extension
// bundle registers its own table/strikethrough renderers, but it prints
// markdown rather than HTML — the same shape the community's
// goldmark-to-markdown renderers use, trimmed to what this pipeline needs:
// block structure passes through verbatim, only inline content under a
// paragraph is ever something this program itself produced.
package printer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/inkcheck/reflow/internal/rebuild"
	"github.com/inkcheck/reflow/internal/superscript"
)

// NodeRenderer renders a (partially rewritten) goldmark document as markdown.
type NodeRenderer struct{}

// New returns a NodeRenderer ready to register with a goldmark renderer.
func New() renderer.NodeRenderer {
	return &NodeRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer. Every kind this package
// knows how to print shares the same dispatch function; there is no
// per-kind state to keep across calls.
func (r *NodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	kinds := []ast.NodeKind{
		ast.KindDocument,
		ast.KindHeading,
		ast.KindParagraph,
		ast.KindTextBlock,
		ast.KindBlockquote,
		ast.KindList,
		ast.KindListItem,
		ast.KindCodeBlock,
		ast.KindFencedCodeBlock,
		ast.KindHTMLBlock,
		ast.KindThematicBreak,
		ast.KindText,
		ast.KindString,
		ast.KindAutoLink,
		ast.KindCodeSpan,
		ast.KindRawHTML,
		ast.KindEmphasis,
		ast.KindLink,
		ast.KindImage,
		east.KindStrikethrough,
		east.KindTable,
		east.KindTableHeader,
		east.KindTableRow,
		east.KindTableCell,
		superscript.KindSuperscript,
		rebuild.KindLineBreak,
	}
	for _, k := range kinds {
		reg.Register(k, dispatch)
	}
}

// Render renders doc as markdown to w using this package's NodeRenderer.
func Render(w *bytes.Buffer, source []byte, doc ast.Node) error {
	rend := renderer.NewRenderer(renderer.WithNodeRenderers(util.Prioritized(New(), 500)))
	return rend.Render(w, source, doc)
}

// dispatch is the single renderer.NodeRendererFunc registered for every
// node kind this package handles.
func dispatch(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	case *ast.Heading:
		if entering {
			blockSeparator(w, node)
			w.WriteString(repeat("#", node.Level))
			if node.HasChildren() {
				w.WriteByte(' ')
			}
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				w.Write(bytes.TrimRight(lines.At(i).Value(source), "\n"))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.Paragraph:
		if entering {
			blockSeparator(w, node)
		}
		return ast.WalkContinue, nil

	case *ast.TextBlock:
		return ast.WalkContinue, nil

	case *ast.Blockquote:
		if entering {
			blockSeparator(w, node)
			return renderPrefixed(w, source, node, "> ", "> ")
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		if entering {
			blockSeparator(w, node)
			if err := renderList(w, source, node); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.ListItem:
		return ast.WalkContinue, nil

	case *ast.CodeBlock:
		if entering {
			blockSeparator(w, node)
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				w.WriteString("    ")
				w.Write(line.Value(source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.FencedCodeBlock:
		if entering {
			blockSeparator(w, node)
			w.WriteString("```")
			if node.Info != nil {
				w.Write(node.Info.Segment.Value(source))
			}
			w.WriteByte('\n')
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				w.Write(lines.At(i).Value(source))
			}
			w.WriteString("```")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.HTMLBlock:
		if entering {
			blockSeparator(w, node)
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				w.Write(lines.At(i).Value(source))
			}
			if node.HasClosure() {
				w.Write(node.ClosureLine.Value(source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.ThematicBreak:
		if entering {
			blockSeparator(w, node)
			w.WriteString("---")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil

	case *ast.Text:
		if entering {
			w.Write(node.Segment.Value(source))
			if node.SoftLineBreak() {
				w.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil

	case *ast.String:
		if entering {
			w.Write(node.Value)
		}
		return ast.WalkContinue, nil

	case *ast.AutoLink:
		if entering {
			w.WriteByte('<')
			w.Write(node.URL(source))
			w.WriteByte('>')
		}
		return ast.WalkContinue, nil

	case *ast.CodeSpan:
		if entering {
			w.WriteByte('`')
		} else {
			w.WriteByte('`')
		}
		return ast.WalkContinue, nil

	case *ast.RawHTML:
		if entering {
			segments := node.Segments
			for i := 0; i < segments.Len(); i++ {
				w.Write(segments.At(i).Value(source))
			}
		}
		return ast.WalkContinue, nil

	case *ast.Emphasis:
		w.WriteString(repeat("*", node.Level))
		return ast.WalkContinue, nil

	case *ast.Link:
		if entering {
			w.WriteByte('[')
		} else {
			w.WriteString("](")
			w.Write(node.Destination)
			if len(node.Title) > 0 {
				w.WriteString(` "`)
				w.Write(node.Title)
				w.WriteByte('"')
			}
			w.WriteByte(')')
		}
		return ast.WalkContinue, nil

	case *ast.Image:
		if entering {
			w.WriteString("![")
		} else {
			w.WriteString("](")
			w.Write(node.Destination)
			if len(node.Title) > 0 {
				w.WriteString(` "`)
				w.Write(node.Title)
				w.WriteByte('"')
			}
			w.WriteByte(')')
		}
		return ast.WalkContinue, nil

	case *east.Strikethrough:
		w.WriteString("~~")
		return ast.WalkContinue, nil

	case *east.Table:
		if entering {
			blockSeparator(w, node)
		}
		return ast.WalkContinue, nil

	case *east.TableHeader:
		if entering {
			w.WriteByte('|')
		} else {
			w.WriteByte('\n')
			table, _ := node.Parent().(*east.Table)
			w.WriteByte('|')
			for _, alignment := range table.Alignments {
				w.WriteByte(' ')
				switch alignment {
				case east.AlignLeft:
					w.WriteString(":----- ")
				case east.AlignRight:
					w.WriteString("-----: ")
				case east.AlignCenter:
					w.WriteString(":----: ")
				default:
					w.WriteString("----- ")
				}
				w.WriteByte('|')
			}
			w.WriteByte('\n')
		}
		return ast.WalkContinue, nil

	case *east.TableRow:
		if entering {
			w.WriteByte('|')
		} else {
			w.WriteByte('\n')
		}
		return ast.WalkContinue, nil

	case *east.TableCell:
		if entering {
			w.WriteByte(' ')
		} else {
			w.WriteString(" |")
		}
		return ast.WalkContinue, nil

	case *superscript.Node:
		if entering {
			w.WriteString(repeat("^", superscript.OpenWidth))
		} else {
			w.WriteString(repeat("^", superscript.CloseWidth))
		}
		return ast.WalkContinue, nil

	case *rebuild.LineBreak:
		if entering {
			if node.Hard {
				w.WriteString("\\\n")
			} else {
				w.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil

	default:
		return ast.WalkContinue, fmt.Errorf("printer: unhandled node kind %s", n.Kind())
	}
}

// blockSeparator writes the blank line that separates a block from its
// previous sibling. The first block in a container gets none.
func blockSeparator(w util.BufWriter, n ast.Node) {
	if n.PreviousSibling() != nil {
		w.WriteString("\n\n")
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// renderPrefixed renders node's children into a scratch buffer, then prefixes
// every line of the result with prefix (firstPrefix for the very first line),
// the same two-pass approach the community's goldmark-markdown renderers use
// for blockquotes: block nodes don't know their own indentation, so render
// first and indent after.
func renderPrefixed(w util.BufWriter, source []byte, node ast.Node, firstPrefix, prefix string) (ast.WalkStatus, error) {
	var buf bytes.Buffer
	bw := util.NewBufWriter(&buf)
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if err := ast.Walk(child, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			return dispatch(bw, source, c, entering)
		}); err != nil {
			return ast.WalkStop, err
		}
	}
	bw.Flush()

	text := bytes.TrimRight(buf.Bytes(), "\n")
	lines := bytes.Split(text, []byte("\n"))
	for i, line := range lines {
		if i > 0 {
			w.WriteByte('\n')
		}
		if i == 0 {
			w.WriteString(firstPrefix)
		} else {
			w.WriteString(prefix)
		}
		w.Write(line)
	}
	return ast.WalkSkipChildren, nil
}

// renderList renders every item of a list, numbering ordered items from
// node.Start and indenting continuation lines under the marker's width.
func renderList(w util.BufWriter, source []byte, node *ast.List) error {
	num := node.Start
	if num == 0 {
		num = 1
	}
	item := node.FirstChild()
	for item != nil {
		var marker string
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", num, node.Marker)
			num++
		} else {
			marker = fmt.Sprintf("%c ", node.Marker)
		}
		indent := repeat(" ", len(marker))

		if item.PreviousSibling() != nil {
			w.WriteByte('\n')
			if !node.IsTight {
				w.WriteByte('\n')
			}
		}

		var buf bytes.Buffer
		bw := util.NewBufWriter(&buf)
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if err := ast.Walk(child, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
				return dispatch(bw, source, c, entering)
			}); err != nil {
				return err
			}
		}
		bw.Flush()

		text := bytes.TrimRight(buf.Bytes(), "\n")
		lines := bytes.Split(text, []byte("\n"))
		for i, line := range lines {
			if i > 0 {
				w.WriteByte('\n')
				w.WriteString(indent)
			} else {
				w.WriteString(marker)
			}
			w.Write(line)
		}

		item = item.NextSibling()
	}
	return nil
}
