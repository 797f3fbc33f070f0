// Package grammar matches Markdown source text against a fixed, closed grammar
// and produces a generic parse tree of rule matches.
//
// Matching is ordered choice: at every decision point the candidate rules are
// tried in a fixed priority order and the first one that matches wins. Block
// rules are tried per line (heading, blockquote, code fence, thematic break,
// unordered item, ordered item, blank line, then paragraph as the fallback);
// inline rules are tried per position (image, link, bold, italic,
// strikethrough, underline, inline code, escape, then plain text).
//
// Blockquote content and inline formatting recurse. The combined depth is
// bounded by Options.MaxDepth; exceeding it yields a *DepthError.
package grammar

import (
	"context"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth bounds blockquote and inline nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

// Options controls matching.
type Options struct {
	// MaxDepth bounds nested blockquotes plus nested inline formatting.
	MaxDepth int
}

// Match parses text into a generic parse tree. On failure no partial tree is
// returned; the error is a *ParseError or a *DepthError.
func Match(text string, opts Options) (*Tree, error) {
	return MatchContext(context.Background(), text, opts)
}

// MatchContext is Match with cancellation. ctx is checked between blocks;
// when it is done the context's error is returned.
func MatchContext(ctx context.Context, text string, opts Options) (*Tree, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	m := &matcher{ctx: ctx, src: text, maxDepth: maxDepth}

	if !utf8.ValidString(text) {
		return nil, m.parseError(firstInvalidUTF8(text), "valid UTF-8 text")
	}

	blocks, err := m.blocks(splitLines(text), 0)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Source: text,
		Root: &Node{
			Rule:     RuleDocument,
			Span:     Span{Start: 0, End: len(text)},
			Children: blocks,
		},
	}, nil
}

type matcher struct {
	ctx      context.Context
	src      string
	maxDepth int
}

// line is one source line without its terminator. start is the absolute
// offset of text in the source, so spans stay absolute even for blockquote
// content whose markers have been stripped.
type line struct {
	text  string
	start int
}

func (l line) end() int {
	return l.start + len(l.text)
}

func splitLines(src string) []line {
	var lines []line
	start := 0
	for start < len(src) {
		idx := strings.IndexByte(src[start:], '\n')
		var text string
		next := len(src)
		if idx < 0 {
			text = src[start:]
		} else {
			text = src[start : start+idx]
			next = start + idx + 1
		}
		lines = append(lines, line{text: strings.TrimSuffix(text, "\r"), start: start})
		start = next
	}
	return lines
}

func firstInvalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}
