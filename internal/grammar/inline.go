package grammar

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// specialChars end a plain text run.
const specialChars = "![*_~`\\"

// delimiters maps the paired formatting rules to their delimiter strings.
// Italic accepts both "*" and "_".
var delimiters = map[Rule][]string{
	RuleBold:          {"**"},
	RuleItalic:        {"*", "_"},
	RuleStrikethrough: {"~~"},
	RuleUnderline:     {"__"},
}

// inlines matches all of s as a sequence of inline nodes. base is the
// absolute offset of s in the source.
func (m *matcher) inlines(s string, base, depth int) ([]*Node, error) {
	if depth > m.maxDepth {
		return nil, m.depthError(base)
	}

	var nodes []*Node
	x := &lineIndex{s: s}
	for i := 0; i < len(s); {
		n, next, err := m.inline(x, i, base, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		i = next
	}
	return nodes, nil
}

// inline tries every inline rule in priority order at s[i]. Plain text
// always matches, so a node is returned unless a nested match fails hard.
func (m *matcher) inline(x *lineIndex, i, base, depth int) (*Node, int, error) {
	s := x.s
	for _, r := range inlinePriority {
		var (
			n    *Node
			next int
			err  error
		)
		switch r {
		case RuleImage:
			n, next = m.image(x, i, base)
		case RuleLink:
			n, next, err = m.link(x, i, base, depth)
		case RuleBold, RuleItalic, RuleStrikethrough, RuleUnderline:
			for _, delim := range delimiters[r] {
				n, next, err = m.delimited(r, delim, x, i, base, depth)
				if n != nil || err != nil {
					break
				}
			}
		case RuleInlineCode:
			n, next = m.inlineCode(x, i, base)
		case RuleEscape:
			n, next = m.escape(s, i, base)
		case RuleText:
			n, next = m.text(s, i, base)
		}
		if err != nil {
			return nil, 0, err
		}
		if n != nil {
			return n, next, nil
		}
	}
	panic("grammar: plain text rule did not match")
}

func (m *matcher) image(x *lineIndex, i, base int) (*Node, int) {
	s := x.s
	if !strings.HasPrefix(s[i:], "![") {
		return nil, 0
	}
	altEnd := x.closeBracket(i + 1)
	if altEnd < 0 {
		return nil, 0
	}
	urlStart, urlEnd, ok := x.destination(altEnd + 1)
	if !ok {
		return nil, 0
	}
	return &Node{
		Rule: RuleImage,
		Span: Span{base + i, base + urlEnd + 1},
		Children: []*Node{
			{Rule: RuleImageAlt, Span: Span{base + i + 2, base + altEnd}},
			{Rule: RuleURL, Span: Span{base + urlStart, base + urlEnd}},
		},
	}, urlEnd + 1
}

func (m *matcher) link(x *lineIndex, i, base, depth int) (*Node, int, error) {
	s := x.s
	if s[i] != '[' {
		return nil, 0, nil
	}
	textEnd := x.closeBracket(i)
	if textEnd < 0 {
		return nil, 0, nil
	}
	urlStart, urlEnd, ok := x.destination(textEnd + 1)
	if !ok {
		return nil, 0, nil
	}
	text, err := m.content(s[i+1:textEnd], base+i+1, depth+1)
	if err != nil {
		return nil, 0, err
	}
	return &Node{
		Rule: RuleLink,
		Span: Span{base + i, base + urlEnd + 1},
		Children: []*Node{
			text,
			{Rule: RuleURL, Span: Span{base + urlStart, base + urlEnd}},
		},
	}, urlEnd + 1, nil
}

// delimited matches delim + content + delim. Content must be non-empty and
// must not start or end with whitespace. A single-character delimiter that is
// part of a run of the same character neither opens nor closes. A closer never
// starts inside the opening run, and a longer opening run keeps its surplus
// inside the span when the closing run is long enough, so "***x***" is bold
// around italic.
func (m *matcher) delimited(r Rule, delim string, x *lineIndex, i, base, depth int) (*Node, int, error) {
	s := x.s
	if !strings.HasPrefix(s[i:], delim) {
		return nil, 0, nil
	}
	c := delim[0]
	single := len(delim) == 1
	if single && (runAt(s, i+1, c) || (i > 0 && s[i-1] == c)) {
		return nil, 0, nil
	}
	if c == '_' && i > 0 && isWordByteBefore(s, i) {
		return nil, 0, nil
	}

	start := i + len(delim)
	if start >= len(s) {
		return nil, 0, nil
	}
	if first, _ := utf8.DecodeRuneInString(s[start:]); unicode.IsSpace(first) {
		return nil, 0, nil
	}

	from := start + 1
	surplus := 0
	if !single {
		run := runLength(s, i, c)
		from = max(from, i+run)
		surplus = run - len(delim)
	}
	closers := x.closers(delim)
	at, _ := slices.BinarySearch(closers, from)
	if at == len(closers) {
		return nil, 0, nil
	}
	k := closers[at]
	if surplus > 0 && runLength(s, k, c)-len(delim) >= surplus {
		if _, ok := slices.BinarySearch(closers, k+surplus); ok {
			k += surplus
		}
	}

	after := k + len(delim)
	children, err := m.inlines(s[start:k], base+start, depth+1)
	if err != nil {
		return nil, 0, err
	}
	return &Node{
		Rule:     r,
		Span:     Span{base + i, base + after},
		Children: children,
	}, after, nil
}

func runAt(s string, i int, c byte) bool {
	return i < len(s) && s[i] == c
}

func isWordByteBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordByteAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// inlineCode matches a run of N backticks closed by the next run of exactly N.
func (m *matcher) inlineCode(x *lineIndex, i, base int) (*Node, int) {
	s := x.s
	if s[i] != '`' {
		return nil, 0
	}
	n := runLength(s, i, '`')
	j := x.codeRun(n, i+n)
	if j < 0 {
		return nil, 0
	}
	return &Node{
		Rule: RuleInlineCode,
		Span: Span{base + i, base + j + n},
		Children: []*Node{
			{Rule: RuleCodeContent, Span: Span{base + i + n, base + j}},
		},
	}, j + n
}

func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// escape matches a backslash followed by one ASCII punctuation character.
func (m *matcher) escape(s string, i, base int) (*Node, int) {
	if s[i] != '\\' || i+1 >= len(s) || !util.IsPunct(s[i+1]) {
		return nil, 0
	}
	return &Node{
		Rule: RuleEscape,
		Span: Span{base + i, base + i + 2},
		Children: []*Node{
			{Rule: RuleEscapedChar, Span: Span{base + i + 1, base + i + 2}},
		},
	}, i + 2
}

// text matches a literal run up to the next special character. A special
// character no other rule accepted is consumed as text, together with the
// rest of its run for repeatable delimiters.
func (m *matcher) text(s string, i, base int) (*Node, int) {
	var end int
	if strings.IndexByte(specialChars, s[i]) >= 0 {
		end = i + 1
		switch s[i] {
		case '*', '_', '~', '`':
			end = i + runLength(s, i, s[i])
		}
	} else if idx := strings.IndexAny(s[i:], specialChars); idx >= 0 {
		end = i + idx
	} else {
		end = len(s)
	}
	return &Node{Rule: RuleText, Span: Span{base + i, base + end}}, end
}
