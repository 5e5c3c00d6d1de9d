package words

import (
	"testing"

	"github.com/inkcheck/reflow/internal/mdstyle"
	"github.com/inkcheck/reflow/internal/tagged"
)

func span(offset int, stack mdstyle.Stack) tagged.Span {
	return tagged.Span{Offset: offset, Stack: stack}
}

func TestToWordsPlainText(t *testing.T) {
	text := &tagged.Text{
		Buf:   []byte("hello world"),
		Spans: []tagged.Span{span(0, nil)},
	}
	got, err := ToWords(text)
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Text != "hello" || got[0].Width() != 5 {
		t.Errorf("word 0 = %+v", got[0])
	}
	if got[1].Text != "world" || got[1].Width() != 5 {
		t.Errorf("word 1 = %+v", got[1])
	}
	if got[1].WhitespaceWidth != 0 {
		t.Errorf("last word WhitespaceWidth = %d, want 0", got[1].WhitespaceWidth)
	}
}

func TestToWordsChargesEmphasisDelimiters(t *testing.T) {
	emph := mdstyle.Stack{{Kind: mdstyle.Emph}}
	text := &tagged.Text{
		Buf: []byte("plain word"),
		Spans: []tagged.Span{
			span(0, emph),
		},
	}
	got, err := ToWords(text)
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	// LeftWidth (1) charged to first word, RightWidth (1) charged to last,
	// since the whole buffer is covered by one Emph span.
	if got[0].StyleWidth != 1 {
		t.Errorf("first word StyleWidth = %d, want 1", got[0].StyleWidth)
	}
	if got[1].StyleWidth != 1 {
		t.Errorf("last word StyleWidth = %d, want 1", got[1].StyleWidth)
	}
}

func TestToWordsClosesOnTransition(t *testing.T) {
	emph := mdstyle.Stack{{Kind: mdstyle.Emph}}
	text := &tagged.Text{
		Buf: []byte("styled plain"),
		Spans: []tagged.Span{
			span(0, emph),
			span(7, nil),
		},
	}
	got, err := ToWords(text)
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].StyleWidth != 2 {
		t.Errorf("styled word StyleWidth = %d, want 2 (left 1 + right 1)", got[0].StyleWidth)
	}
	if got[1].StyleWidth != 0 {
		t.Errorf("plain word StyleWidth = %d, want 0", got[1].StyleWidth)
	}
}

func TestToWordsNestedStyles(t *testing.T) {
	strong := mdstyle.Stack{{Kind: mdstyle.Strong}}
	strongEmph := strong.Push(mdstyle.Style{Kind: mdstyle.Emph})
	text := &tagged.Text{
		Buf: []byte("bold mixed done"),
		Spans: []tagged.Span{
			span(0, strong),
			span(5, strongEmph),
			span(11, strong),
		},
	}
	got, err := ToWords(text)
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	// "bold": opens Strong only -> left 2.
	if got[0].StyleWidth != 2 {
		t.Errorf("word 0 StyleWidth = %d, want 2", got[0].StyleWidth)
	}
	// "mixed": opens Emph within Strong (left 1) and closes it again (right 1).
	if got[1].StyleWidth != 2 {
		t.Errorf("word 1 StyleWidth = %d, want 2", got[1].StyleWidth)
	}
	// "done": closes Strong -> right 2.
	if got[2].StyleWidth != 2 {
		t.Errorf("word 2 StyleWidth = %d, want 2", got[2].StyleWidth)
	}
}

func TestToWordsOnlyFinalWordLosesWhitespaceWidth(t *testing.T) {
	// A word sitting at a style-region boundary (not at the very end of the
	// whole stream) is still followed by a real rendered space and must keep
	// WhitespaceWidth 1; only the last word of the entire stream gets 0.
	emph := mdstyle.Stack{{Kind: mdstyle.Emph}}
	text := &tagged.Text{
		Buf: []byte("styled plain more"),
		Spans: []tagged.Span{
			span(0, emph),
			span(7, nil),
		},
	}
	got, err := ToWords(text)
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if got[0].WhitespaceWidth != 1 {
		t.Errorf("word 0 (last word of first span) WhitespaceWidth = %d, want 1", got[0].WhitespaceWidth)
	}
	if got[1].WhitespaceWidth != 1 {
		t.Errorf("word 1 (mid-span) WhitespaceWidth = %d, want 1", got[1].WhitespaceWidth)
	}
	if got[2].WhitespaceWidth != 0 {
		t.Errorf("word 2 (last word of whole stream) WhitespaceWidth = %d, want 0", got[2].WhitespaceWidth)
	}
}

func TestDiffStacksDistinguishesSiblingOccurrences(t *testing.T) {
	first := mdstyle.Stack{{Kind: mdstyle.Emph, Instance: 1}}
	second := mdstyle.Stack{{Kind: mdstyle.Emph, Instance: 2}}

	added, removedWidth := diffStacks(first, second)
	if len(added) != 1 {
		t.Fatalf("len(added) = %d, want 1 (second occurrence counted as newly opened)", len(added))
	}
	if removedWidth != first[0].RightWidth() {
		t.Errorf("removedWidth = %d, want %d (first occurrence's close charged)", removedWidth, first[0].RightWidth())
	}
}

func TestToWordsEmptyText(t *testing.T) {
	got, err := ToWords(&tagged.Text{})
	if err != nil {
		t.Fatalf("ToWords: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestSplitPenalty(t *testing.T) {
	tests := []struct {
		field       string
		wantText    string
		wantPenalty int
	}{
		{"word.", "word.", 1},
		{"word", "word", 0},
		{"word...", "word...", 3},
		{"end-", "end-", 1},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			text, penalty := splitPenalty(tt.field)
			if text != tt.wantText || penalty != tt.wantPenalty {
				t.Errorf("splitPenalty(%q) = (%q, %d), want (%q, %d)",
					tt.field, text, penalty, tt.wantText, tt.wantPenalty)
			}
		})
	}
}
