package grammar

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineIndex holds lookup tables for one inline run. Each table is built
// lazily in a single pass over s, so an opener that finds no closer costs a
// binary search instead of a rescan of the rest of the line.
type lineIndex struct {
	s string

	closerPos map[string][]int // valid closing positions per delimiter
	brackets  []int            // matching "]" per "[" position, or -1
	stops     []int            // first unescaped space, tab or ")" at or after a position, or -1
	codeRuns  map[int][]int    // start positions of backtick runs per run length
}

// closers returns the ascending positions where delim can close a span,
// independent of where the span opened.
func (x *lineIndex) closers(delim string) []int {
	if ks, ok := x.closerPos[delim]; ok {
		return ks
	}
	if x.closerPos == nil {
		x.closerPos = make(map[string][]int, len(delimiters))
	}
	ks := closerPositions(x.s, delim)
	x.closerPos[delim] = ks
	return ks
}

func closerPositions(s, delim string) []int {
	c := delim[0]
	single := len(delim) == 1
	var ks []int
	for k := 1; k+len(delim) <= len(s); k++ {
		if s[k] != c || !strings.HasPrefix(s[k:], delim) {
			continue
		}
		if escaped(s, k) {
			continue
		}
		if single && (runAt(s, k+1, c) || s[k-1] == c) {
			continue
		}
		if c == '_' && isWordByteAt(s, k+len(delim)) {
			continue
		}
		if last, _ := utf8.DecodeLastRuneInString(s[:k]); unicode.IsSpace(last) {
			continue
		}
		ks = append(ks, k)
	}
	return ks
}

// escaped reports whether s[k] follows an odd number of backslashes.
func escaped(s string, k int) bool {
	n := 0
	for b := k - 1; b >= 0 && s[b] == '\\'; b-- {
		n++
	}
	return n%2 == 1
}

// closeBracket returns the index of the "]" matching the "[" at open,
// honoring backslash escapes and nested brackets, or -1.
func (x *lineIndex) closeBracket(open int) int {
	if x.brackets == nil {
		x.brackets = bracketPairs(x.s)
	}
	return x.brackets[open]
}

func bracketPairs(s string) []int {
	pairs := make([]int, len(s))
	for i := range pairs {
		pairs[i] = -1
	}
	var open []int
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			open = append(open, j)
		case ']':
			if n := len(open); n > 0 {
				pairs[open[n-1]] = j
				open = open[:n-1]
			}
		}
	}
	return pairs
}

// destination matches "(url)" at s[at] and returns the bounds of url.
// The url may contain "\)" but no unescaped whitespace.
func (x *lineIndex) destination(at int) (start, end int, ok bool) {
	s := x.s
	if at >= len(s) || s[at] != '(' {
		return 0, 0, false
	}
	if x.stops == nil {
		x.stops = urlStops(s)
	}
	j := x.stops[at+1]
	if j < 0 || s[j] != ')' {
		return 0, 0, false
	}
	return at + 1, j, true
}

// urlStops computes, for every position p, where a url scan starting at p
// ends. A backslash skips the following byte.
func urlStops(s string) []int {
	stops := make([]int, len(s)+2)
	stops[len(s)], stops[len(s)+1] = -1, -1
	for p := len(s) - 1; p >= 0; p-- {
		switch s[p] {
		case '\\':
			stops[p] = stops[p+2]
		case ' ', '\t', ')':
			stops[p] = p
		default:
			stops[p] = stops[p+1]
		}
	}
	return stops
}

// codeRun returns the start of the first maximal backtick run of exactly n
// at or after from, or -1.
func (x *lineIndex) codeRun(n, from int) int {
	if x.codeRuns == nil {
		x.codeRuns = make(map[int][]int)
		for j := 0; j < len(x.s); {
			if x.s[j] != '`' {
				j++
				continue
			}
			run := runLength(x.s, j, '`')
			x.codeRuns[run] = append(x.codeRuns[run], j)
			j += run
		}
	}
	starts := x.codeRuns[n]
	at, _ := slices.BinarySearch(starts, from)
	if at == len(starts) {
		return -1
	}
	return starts[at]
}
