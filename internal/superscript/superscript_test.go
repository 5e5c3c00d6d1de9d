package superscript

import (
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(Extension))
	return md.Parser().Parse(text.NewReader([]byte(src)))
}

func firstParagraph(t *testing.T, doc ast.Node) ast.Node {
	t.Helper()
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if p, ok := c.(*ast.Paragraph); ok {
			return p
		}
	}
	t.Fatal("no paragraph found")
	return nil
}

func TestParsesValidDelimiters(t *testing.T) {
	doc := parse(t, "before ^^^^raised^^^^^ after")
	para := firstParagraph(t, doc)

	var found *Node
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		if n, ok := c.(*Node); ok {
			found = n
		}
	}
	if found == nil {
		t.Fatal("expected a Superscript node in the paragraph")
	}
	if found.FirstChild() == nil {
		t.Fatal("expected Superscript node to have a text child")
	}
}

func TestRejectsShortOpeningRun(t *testing.T) {
	doc := parse(t, "^^^not enough^^^^^")
	para := firstParagraph(t, doc)
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*Node); ok {
			t.Fatal("did not expect a Superscript node with only 3 opening carets")
		}
	}
}

func TestRejectsMissingClosingRun(t *testing.T) {
	doc := parse(t, "^^^^unterminated")
	para := firstParagraph(t, doc)
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*Node); ok {
			t.Fatal("did not expect a Superscript node with no closing run")
		}
	}
}

func TestKindIsDistinctFromStrikethrough(t *testing.T) {
	if KindSuperscript == east.KindStrikethrough {
		t.Fatal("Superscript kind must not collide with Strikethrough's")
	}
}

func TestFindClosingRun(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOffset int
		wantLength int
	}{
		{"exact run", "x^^^^^", 1, 5},
		{"longer run", "x^^^^^^^", 1, 5},
		{"no run", "plain text", -1, 0},
		{"run too short", "x^^^^y", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, length := findClosingRun([]byte(tt.line))
			if offset != tt.wantOffset || length != tt.wantLength {
				t.Errorf("findClosingRun(%q) = (%d, %d), want (%d, %d)",
					tt.line, offset, length, tt.wantOffset, tt.wantLength)
			}
		})
	}
}
