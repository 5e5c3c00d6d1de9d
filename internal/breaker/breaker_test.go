package breaker

import (
	"testing"

	"github.com/inkcheck/reflow/internal/words"
)

func word(text string) words.Word {
	return words.Word{Text: text, WhitespaceWidth: 1}
}

func wordsFrom(texts ...string) []words.Word {
	ws := make([]words.Word, len(texts))
	for i, text := range texts {
		ws[i] = word(text)
	}
	ws[len(ws)-1].WhitespaceWidth = 0
	return ws
}

func lineTexts(l Line) []string {
	out := make([]string, len(l.Words))
	for i, w := range l.Words {
		out[i] = w.Text
	}
	return out
}

func TestWrapFitsOnOneLine(t *testing.T) {
	ws := wordsFrom("the", "quick", "fox")
	lines := Wrap(ws, 80)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if len(lines[0].Words) != 3 {
		t.Errorf("line 0 has %d words, want 3", len(lines[0].Words))
	}
}

func TestWrapSplitsAtWidth(t *testing.T) {
	// Each word is 4 runes + 1 space = 5 width; width 11 fits two words (9)
	// but not three (14).
	ws := wordsFrom("aaaa", "bbbb", "cccc", "dddd")
	lines := Wrap(ws, 11)
	if len(lines) < 2 {
		t.Fatalf("expected the words to be split across multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		width := 0
		for i, w := range l.Words {
			if i > 0 {
				width += l.Words[i-1].WhitespaceWidth
			}
			width += w.Width()
		}
		if width > 11 {
			t.Errorf("line %v exceeds width 11: got %d", lineTexts(l), width)
		}
	}
}

func TestWrapOverwideSingleWord(t *testing.T) {
	ws := []words.Word{
		{Text: "short", WhitespaceWidth: 1},
		{Text: "waytoolongforthewidth", WhitespaceWidth: 1},
		{Text: "end", WhitespaceWidth: 0},
	}
	lines := Wrap(ws, 10)
	foundAlone := false
	for _, l := range lines {
		if len(l.Words) == 1 && l.Words[0].Text == "waytoolongforthewidth" {
			foundAlone = true
		}
	}
	if !foundAlone {
		t.Errorf("expected the oversized word on a line by itself, got %v", lines)
	}
}

func TestWrapEmpty(t *testing.T) {
	if got := Wrap(nil, 80); got != nil {
		t.Errorf("Wrap(nil, 80) = %v, want nil", got)
	}
}

func TestWrapPreservesWordOrder(t *testing.T) {
	texts := []string{"one", "two", "three", "four", "five", "six"}
	ws := wordsFrom(texts...)
	lines := Wrap(ws, 8)
	var got []string
	for _, l := range lines {
		got = append(got, lineTexts(l)...)
	}
	if len(got) != len(texts) {
		t.Fatalf("got %d words back, want %d", len(got), len(texts))
	}
	for i, w := range texts {
		if got[i] != w {
			t.Errorf("word %d = %q, want %q", i, got[i], w)
		}
	}
}
