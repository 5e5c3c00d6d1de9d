// Package rebuild reconstructs an inline AST from a rewrapped word stream.
// It is the inverse of tagged.Flatten: instead of walking a style stack down
// into linear text, it folds consecutive words that share a style back up
// into nested nodes, one stack layer at a time, so a run of words that only
// differ in some inner style doesn't force the outer style to close and
// reopen at every word boundary — including across a line break introduced
// purely by wrapping, which must land inside the style it wrapped, not
// outside it.
package rebuild

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/inkcheck/reflow/internal/breaker"
	"github.com/inkcheck/reflow/internal/mdstyle"
	"github.com/inkcheck/reflow/internal/words"
)

// KindLineBreak identifies the break marker node this package emits between
// rewrapped lines. It carries no source position: the line breaks here are
// new ones introduced by reflowing, not breaks present in the input.
var KindLineBreak = ast.NewNodeKind("ReflowLineBreak")

// LineBreak separates two rewrapped lines. Hard distinguishes a break that
// must survive as a hard break in the rendered output (because the input
// paragraph had one at this point) from a soft break introduced purely by
// line wrapping.
type LineBreak struct {
	ast.BaseInline
	Hard bool
}

// NewLineBreak returns a LineBreak node.
func NewLineBreak(hard bool) *LineBreak {
	return &LineBreak{Hard: hard}
}

// Kind implements ast.Node.
func (b *LineBreak) Kind() ast.NodeKind { return KindLineBreak }

// Dump implements ast.Node.
func (b *LineBreak) Dump(source []byte, level int) {
	ast.DumpHelper(b, source, level, map[string]string{"Hard": boolString(b.Hard)}, nil)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// item is one element of the flat sequence buildLevel folds: either a word
// or a break between two lines/segments. A break's Stack is the common
// prefix of the styles open just before and just after it, which governs
// which nesting level the break belongs inside: a style present on both
// sides of the break stays open across it.
type item struct {
	word  *words.Word
	hard  bool
	stack mdstyle.Stack
}

// Rebuild reconstructs the inline children of a paragraph from its rewrapped
// segments. segments mirrors the paragraph's hard-break-delimited pieces (as
// produced by tagged.Flatten and then independently broken into lines by
// breaker.Wrap): a hard break separates segments, a soft one separates lines
// wrapped within the same segment. The whole paragraph folds as one
// sequence, so a style spanning a break stays a single node with the break
// nested inside it rather than closing and reopening at every line.
func Rebuild(segments [][]breaker.Line) []ast.Node {
	items := flattenItems(segments)
	fixupBreakStacks(items)
	return buildLevel(items, 0)
}

func flattenItems(segments [][]breaker.Line) []item {
	var items []item
	for segIdx, lines := range segments {
		if segIdx > 0 {
			items = appendBreak(items, true)
		}
		for lineIdx, line := range lines {
			if lineIdx > 0 {
				items = appendBreak(items, false)
			}
			for i := range line.Words {
				items = append(items, item{word: &line.Words[i], stack: line.Words[i].Stack})
			}
		}
	}
	return items
}

func appendBreak(items []item, hard bool) []item {
	if len(items) == 0 {
		return items
	}
	prev := items[len(items)-1].stack
	// The next word's stack isn't known yet; it is filled in once appended,
	// by recomputing the break's stack as the common prefix with whatever
	// follows. Store prev for now and patch after the caller appends the
	// next word.
	return append(items, item{hard: hard, stack: prev})
}

// buildLevel folds items into nodes at one layer of style nesting:
// consecutive items sharing the same style at stack position depth become a
// single materialized style node wrapping the recursively folded remainder;
// items with no style left at this depth are rendered as a run of literal
// text interleaved with line breaks.
func buildLevel(items []item, depth int) []ast.Node {
	var out []ast.Node
	i := 0
	for i < len(items) {
		hasStyle := depth < len(items[i].stack)
		j := i + 1
		for j < len(items) {
			curHasStyle := depth < len(items[j].stack)
			if curHasStyle != hasStyle {
				break
			}
			if hasStyle && !items[j].stack[depth].SameOccurrence(items[i].stack[depth]) {
				break
			}
			j++
		}
		group := items[i:j]

		if i > 0 && needsSeparator(items[i-1], items[i]) {
			out = append(out, ast.NewString([]byte(" ")))
		}

		if hasStyle {
			style := firstWordStack(group)[depth]
			node := mdstyle.Materialize(style)
			for _, child := range buildLevel(group, depth+1) {
				node.AppendChild(node, child)
			}
			out = append(out, node)
		} else {
			out = append(out, buildLeaf(group)...)
		}

		i = j
	}
	return out
}

// fixupBreakStacks finalizes each break item's Stack as the common prefix
// between the word before it and the word after it. appendBreak only knows
// the word before at the time it runs, so this pass fills in the rest.
func fixupBreakStacks(items []item) {
	for i := range items {
		if items[i].word != nil {
			continue
		}
		var before, after mdstyle.Stack
		if i > 0 {
			before = items[i-1].stack
		}
		if i+1 < len(items) {
			after = items[i+1].stack
		}
		items[i].stack = before[:commonPrefixLen(before, after)]
	}
}

// commonPrefixLen returns how many leading styles a and b share, by
// occurrence rather than by look: a style only counts as continuing across
// a break if it is literally the same push from flattening, not merely one
// that looks the same (e.g. two separate emphasis runs landing on either
// side of a wrap-introduced break must not be spliced into one).
func commonPrefixLen(a, b mdstyle.Stack) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i].SameOccurrence(b[i]) {
		i++
	}
	return i
}

func firstWordStack(group []item) mdstyle.Stack {
	for _, it := range group {
		if it.word != nil {
			return it.stack
		}
	}
	// A group made entirely of breaks only arises at depth 0 for a
	// paragraph with no words at all, which reflowParagraph already rejects.
	return nil
}

// needsSeparator reports whether a literal space belongs between prev and
// cur. A break already supplies the visual separation a space would, and a
// space landing right next to one would be redundant or, worse, sit right
// after an opening delimiter where CommonMark forbids it.
func needsSeparator(prev, cur item) bool {
	return prev.word != nil && cur.word != nil
}

// buildLeaf renders a run of words and breaks with no style at the current
// depth: literal text runs joined by spaces, split by LineBreak nodes
// wherever a break falls.
func buildLeaf(group []item) []ast.Node {
	var out []ast.Node
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, ast.NewString([]byte(sb.String())))
			sb.Reset()
		}
	}
	for _, it := range group {
		if it.word != nil {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(it.word.Text)
			continue
		}
		flush()
		out = append(out, NewLineBreak(it.hard))
	}
	flush()
	return out
}
