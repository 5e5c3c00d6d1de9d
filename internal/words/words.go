// Package words splits flattened tagged text into styled word fragments,
// charging each word the width of any markup delimiters that open or close
// around it so the line breaker can work in "as the printer will render it"
// units.
package words

import (
	"strings"

	"github.com/inkcheck/reflow/internal/mdstyle"
	"github.com/inkcheck/reflow/internal/pipelineerr"
	"github.com/inkcheck/reflow/internal/tagged"
)

// Word is one word fragment: its text, the style stack in effect, and the
// widths the line breaker must account for beyond the text's own rune count.
type Word struct {
	Text string

	// WhitespaceWidth is the width of the separator expected before the next
	// word on the same line (normalized to 0 or 1).
	WhitespaceWidth int

	// PenaltyWidth reports the width of a word's trailing run of
	// hyphenation/sentence punctuation, already included in Width(). It is
	// not yet consumed by breaker's badness function — a deliberate,
	// presently-inert hook for a future cost function that wants to
	// discount trailing punctuation when judging a candidate break, not
	// dead weight.
	PenaltyWidth int

	Stack mdstyle.Stack

	// StyleWidth is the sum of left/right delimiter widths charged to this
	// word because a style region opens or closes at its boundary.
	StyleWidth int
}

// Width is the word's total effective width for line-fit calculations.
func (w Word) Width() int {
	return len([]rune(w.Text)) + w.StyleWidth
}

// ToWords segments a flattened Text into styled words, per §4.3.
func ToWords(t *tagged.Text) ([]Word, error) {
	if len(t.Spans) == 0 {
		if len(t.Buf) != 0 {
			return nil, pipelineerr.Invariant("non-empty buffer with no spans")
		}
		return nil, nil
	}

	var out []Word
	var context mdstyle.Stack

	for i, span := range t.Spans {
		end := len(t.Buf)
		if i+1 < len(t.Spans) {
			end = t.Spans[i+1].Offset
		}
		if span.Offset < 0 || end < span.Offset || end > len(t.Buf) {
			return nil, pipelineerr.Invariant("span offsets not monotone or out of range")
		}

		added, removedWidth := diffStacks(context, span.Stack)

		regionWords, err := splitWords(string(t.Buf[span.Offset:end]), span.Stack)
		if err != nil {
			return nil, err
		}

		if removedWidth > 0 && len(out) > 0 {
			out[len(out)-1].StyleWidth += removedWidth
		}

		leftPending := sumLeftWidths(added)
		if leftPending > 0 {
			if len(regionWords) == 0 {
				// Flatten only ever records a span for a non-empty text
				// region (see tagged.flattener.appendRaw), so a span whose
				// slice splits into zero words would mean a style opened
				// with nothing to charge the delimiter to.
				return nil, pipelineerr.Invariant("empty word stream for non-empty span")
			}
			regionWords[0].StyleWidth += leftPending
		}

		out = append(out, regionWords...)
		context = span.Stack
	}

	if len(context) > 0 && len(out) > 0 {
		out[len(out)-1].StyleWidth += sumWidths(context, mdstyle.Style.RightWidth)
	}

	// Every word is followed by exactly one rendered space except the very
	// last word of the whole stream, which ends the paragraph. A region
	// boundary is not special: the separator between the last word of one
	// span and the first word of the next is just as real as the separator
	// between two words in the same span, and must be charged the same way
	// or a line packed to exactly width renders one column too wide at
	// every style boundary it crosses.
	if len(out) > 0 {
		out[len(out)-1].WhitespaceWidth = 0
	}

	return out, nil
}

// diffStacks compares the previous and current style stacks position by
// position (per §4.3) and returns the newly added styles (innermost last)
// and the total right_width owed by styles that are no longer open.
//
// Positions are compared by SameOccurrence, not Equal: two sibling regions
// that happen to carry structurally-equal styles (two separate emphasis
// runs, say) are still a close-then-reopen, not a continuation, because
// they came from two different pushes during flattening.
func diffStacks(prev, cur mdstyle.Stack) (added mdstyle.Stack, removedRightWidth int) {
	shorter := len(prev)
	if len(cur) < shorter {
		shorter = len(cur)
	}
	firstDiff := shorter
	for i := 0; i < shorter; i++ {
		if !prev[i].SameOccurrence(cur[i]) {
			firstDiff = i
			break
		}
	}
	for i := firstDiff; i < len(prev); i++ {
		removedRightWidth += prev[i].RightWidth()
	}
	added = cur[firstDiff:]
	return added, removedRightWidth
}

func sumLeftWidths(styles mdstyle.Stack) int {
	total := 0
	for _, s := range styles {
		total += s.LeftWidth()
	}
	return total
}

func sumWidths(styles mdstyle.Stack, width func(mdstyle.Style) int) int {
	total := 0
	for _, s := range styles {
		total += width(s)
	}
	return total
}

// splitWords segments a single span's raw text into words, normalizing
// internal runs of whitespace to a single trailing space per word. Every
// word here is charged a full WhitespaceWidth of 1: whether its trailing
// separator is to another word in this same region, or to the first word
// of the next span (ToWords stitches regions back-to-back with no gap of
// their own), there is always exactly one rendered space there except at
// the very end of the whole stream, which only ToWords can know about.
func splitWords(raw string, stack mdstyle.Stack) ([]Word, error) {
	fields := strings.Fields(raw)
	out := make([]Word, 0, len(fields))
	for _, field := range fields {
		text, penalty := splitPenalty(field)
		if text == "" {
			continue
		}
		out = append(out, Word{
			Text:            text,
			WhitespaceWidth: 1,
			PenaltyWidth:    penalty,
			Stack:           stack,
		})
	}
	return out, nil
}

// splitPenalty reports a trailing run of hyphenation/sentence punctuation as
// a penalty width distinct from the word's core text width. The penalty is
// already part of text's rune count; it exists so future cost functions can
// discount trailing punctuation when judging a candidate break.
func splitPenalty(field string) (text string, penalty int) {
	runes := []rune(field)
	n := 0
	for n < len(runes) && isPenaltyRune(runes[len(runes)-1-n]) {
		n++
	}
	return field, n
}

func isPenaltyRune(r rune) bool {
	switch r {
	case '-', ',', '.', ';', ':', '!', '?':
		return true
	default:
		return false
	}
}
