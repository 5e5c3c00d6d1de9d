// Package mdstyle enumerates the inline styles the reflow engine understands
// and the rendered width of the punctuation the printer wraps them in.
package mdstyle

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/inkcheck/reflow/internal/superscript"
)

// Kind identifies one of the closed set of inline styles the engine supports.
type Kind int

const (
	Emph Kind = iota
	Strong
	Strikethrough
	Superscript
	Link
	Image
)

func (k Kind) String() string {
	switch k {
	case Emph:
		return "Emph"
	case Strong:
		return "Strong"
	case Strikethrough:
		return "Strikethrough"
	case Superscript:
		return "Superscript"
	case Link:
		return "Link"
	case Image:
		return "Image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Style is a tagged variant over the inline styles the engine reflows.
// URL is only meaningful for Link and Image. Instance is stamped once per
// push during flattening and distinguishes one AST occurrence of a style
// from another that merely looks the same (two sibling emphasis runs, say):
// it is deliberately excluded from Equal, which compares only what the
// printer would render.
type Style struct {
	Kind     Kind
	URL      string
	Instance int
}

// Equal reports structural equality: same Kind and, for Link/Image, byte-equal URL.
// Instance is ignored; this is the printer-visible notion of equality §3
// describes, not "is this the same push."
func (s Style) Equal(o Style) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case Link, Image:
		return s.URL == o.URL
	default:
		return true
	}
}

// SameOccurrence reports whether s and o are the very same push of a style
// during flattening, not just two structurally-equal styles. Two sibling
// runs like "*foo* *bar*" produce equal-looking Emph styles from distinct
// pushes; SameOccurrence tells them apart so a style that merely looks
// unchanged across a span boundary isn't mistaken for one that stayed open.
func (s Style) SameOccurrence(o Style) bool {
	return s == o
}

// LeftWidth returns the character count of the opening delimiter the printer emits.
func (s Style) LeftWidth() int {
	switch s.Kind {
	case Emph:
		return 1
	case Strong:
		return 2
	case Strikethrough:
		return 2
	case Superscript:
		return 4
	case Link:
		return 1
	case Image:
		return 2
	default:
		panic(fmt.Sprintf("mdstyle: unhandled kind %v", s.Kind))
	}
}

// RightWidth returns the character count of the closing delimiter the printer emits.
func (s Style) RightWidth() int {
	switch s.Kind {
	case Emph:
		return 1
	case Strong:
		return 2
	case Strikethrough:
		return 2
	case Superscript:
		return 5
	case Link:
		return 3 + len(s.URL)
	case Image:
		return 3 + len(s.URL)
	default:
		panic(fmt.Sprintf("mdstyle: unhandled kind %v", s.Kind))
	}
}

// Stack is an ordered sequence of styles, outermost first.
type Stack []Style

// Equal reports elementwise equality between two stacks.
func (s Stack) Equal(o Stack) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the stack.
func (s Stack) Clone() Stack {
	if len(s) == 0 {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// Push returns a new stack with style appended as the innermost entry.
// The receiver is left unmodified.
func (s Stack) Push(style Style) Stack {
	out := make(Stack, len(s)+1)
	copy(out, s)
	out[len(s)] = style
	return out
}

// Materialize builds the single inline AST node that renders this style's
// delimiters, with title left empty for Link/Image (see DESIGN.md).
func Materialize(style Style) ast.Node {
	switch style.Kind {
	case Emph:
		return ast.NewEmphasis(1)
	case Strong:
		return ast.NewEmphasis(2)
	case Strikethrough:
		return east.NewStrikethrough()
	case Superscript:
		return superscript.NewNode()
	case Link:
		n := ast.NewLink()
		n.Destination = []byte(style.URL)
		return n
	case Image:
		link := ast.NewLink()
		link.Destination = []byte(style.URL)
		return ast.NewImage(link)
	default:
		panic(fmt.Sprintf("mdstyle: unhandled kind %v", style.Kind))
	}
}
