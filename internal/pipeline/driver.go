// Package pipeline walks a parsed document and reflows every paragraph
// in place: TaggedText, StyledWordStream and LineBreaker run per paragraph,
// independently of its siblings, and InlineRebuilder replaces the
// paragraph's children with the rewrapped result.
package pipeline

import (
	"errors"

	"github.com/yuin/goldmark/ast"
	"go.uber.org/multierr"

	"github.com/inkcheck/reflow/internal/breaker"
	"github.com/inkcheck/reflow/internal/pipelineerr"
	"github.com/inkcheck/reflow/internal/rebuild"
	"github.com/inkcheck/reflow/internal/tagged"
	"github.com/inkcheck/reflow/internal/words"
)

// Run walks doc and rewrites every paragraph's inline content to fit width,
// mutating the tree in place. source is the original document bytes the
// parsed AST points into.
//
// keepGoing controls what happens when a paragraph contains inline markup
// this pipeline does not support: false aborts the whole run on the first
// one (the default); true skips the offending paragraph, leaving it
// unrewrapped, and collects the error with go.uber.org/multierr instead of
// stopping, so the caller can still report every skipped paragraph once
// the walk finishes. Errors other than ErrUnsupportedInline always abort
// immediately regardless of keepGoing, since they indicate bad input
// encoding or an internal invariant violation rather than a paragraph this
// pipeline merely declines to rewrap.
func Run(doc ast.Node, source []byte, width int, keepGoing bool) error {
	var warnings error
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		para, ok := n.(*ast.Paragraph)
		if !ok {
			return ast.WalkContinue, nil
		}
		if err := reflowParagraph(para, source, width); err != nil {
			if keepGoing && errors.Is(err, pipelineerr.ErrUnsupportedInline) {
				warnings = multierr.Append(warnings, err)
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkStop, err
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return err
	}
	return warnings
}

// reflowParagraph flattens, rewraps and rebuilds a single paragraph.
func reflowParagraph(para *ast.Paragraph, source []byte, width int) error {
	segments, err := tagged.Flatten(para, source)
	if err != nil {
		return err
	}

	lineSegments := make([][]breaker.Line, len(segments))
	for i, seg := range segments {
		ws, err := words.ToWords(seg)
		if err != nil {
			return err
		}
		lineSegments[i] = breaker.Wrap(ws, width)
	}

	children := rebuild.Rebuild(lineSegments)
	if len(children) == 0 {
		return pipelineerr.Invariant("paragraph %p reflowed to no content", para)
	}

	for c := para.FirstChild(); c != nil; {
		next := c.NextSibling()
		para.RemoveChild(para, c)
		c = next
	}
	for _, child := range children {
		para.AppendChild(para, child)
	}
	return nil
}
