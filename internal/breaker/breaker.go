// Package breaker applies an optimal-fit line-breaking algorithm to a
// sequence of styled words, the same dynamic-programming shape as TeX's
// paragraph breaker: minimize total badness over all break points rather
// than greedily filling each line first-fit.
package breaker

import (
	"math"

	"github.com/inkcheck/reflow/internal/words"
)

// Line is one output line: the contiguous slice of words it contains.
type Line struct {
	Words []words.Word
}

// overfullPenalty dominates any in-budget badness so the optimizer always
// prefers a line that merely falls short of width over one that overflows,
// whenever a choice exists.
const overfullPenalty = 1e6

// Wrap partitions words into lines that fit within width, minimizing the sum
// of each line's badness (squared slack, badly-short lines penalized more
// than badly-tight ones) across the whole paragraph. Ties prefer the break
// that occurs earliest. A single word wider than width is placed alone on
// its own line rather than causing the algorithm to fail.
func Wrap(ws []words.Word, width int) []Line {
	n := len(ws)
	if n == 0 {
		return nil
	}

	// lineWidth is the rendered width of the candidate line ws[i:j].
	// cost[k] is the minimal total badness for wrapping ws[:k], breakAt[k] the
	// start index of the last line in that optimal wrapping.
	cost := make([]float64, n+1)
	breakAt := make([]int, n+1)
	cost[0] = 0

	for j := 1; j <= n; j++ {
		cost[j] = math.Inf(1)
		lineWidth := 0
		for i := j - 1; i >= 0; i-- {
			w := ws[i].Width()
			if i < j-1 {
				lineWidth += ws[i].WhitespaceWidth
			}
			lineWidth += w

			if i < j-1 && lineWidth > width {
				// Several words that overflow never form a line; only a single
				// word wider than width may stand alone on an overfull line.
				break
			}

			// i only decreases, so accepting an equal cost moves the break
			// earlier on a tie.
			c := cost[i] + badness(lineWidth, width, j == n)
			if c < cost[j]+1e-9 {
				cost[j] = c
				breakAt[j] = i
			}

			if i > 0 && lineWidth > width {
				// This candidate line is already overfull; extending it
				// further left (smaller i) only makes it worse, so there is
				// no point considering any earlier start for this end j.
				break
			}
		}
	}

	var starts []int
	for j := n; j > 0; {
		i := breakAt[j]
		starts = append(starts, i)
		j = i
	}
	// starts was built back-to-front.
	for l, r := 0, len(starts)-1; l < r; l, r = l+1, r-1 {
		starts[l], starts[r] = starts[r], starts[l]
	}

	lines := make([]Line, 0, len(starts))
	for idx, start := range starts {
		end := n
		if idx+1 < len(starts) {
			end = starts[idx+1]
		}
		lines = append(lines, Line{Words: ws[start:end]})
	}
	return lines
}

// badness scores a candidate line of the given rendered width against the
// target width: 0 at exactly width, growing as the square of the slack, and
// dominated by overfullPenalty once the line doesn't fit — except the last
// line of the paragraph, which is allowed to fall short for free since there
// is nothing to justify it against.
func badness(lineWidth, width int, isLast bool) float64 {
	if lineWidth > width {
		if lineWidth-width == 0 {
			return 0
		}
		return overfullPenalty + float64(lineWidth-width)
	}
	if isLast {
		return 0
	}
	slack := float64(width - lineWidth)
	return slack * slack
}
