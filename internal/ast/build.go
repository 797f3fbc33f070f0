package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/mdhtml/internal/grammar"
)

// Build converts a generic parse tree into a Document. It fails only when the
// tree contains a rule that cannot appear at its position, which indicates a
// grammar bug rather than bad input.
func Build(tree *grammar.Tree) (*Document, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("ast: nil parse tree")
	}
	b := builder{tree: tree}
	blocks, err := b.blocks(tree.Root.Children)
	if err != nil {
		return nil, err
	}
	return &Document{Blocks: blocks}, nil
}

type builder struct {
	tree *grammar.Tree
}

func (b *builder) text(n *grammar.Node) string {
	return b.tree.Text(n)
}

func (b *builder) unexpected(n *grammar.Node, where string) error {
	return fmt.Errorf("ast: unexpected %s rule in %s at offset %d", n.Rule, where, n.Span.Start)
}

func (b *builder) blocks(nodes []*grammar.Node) ([]Block, error) {
	var (
		out   []Block
		lists listMachine
	)
	for _, n := range nodes {
		if n.Rule == grammar.RuleUnorderedItem || n.Rule == grammar.RuleOrderedItem {
			l, err := b.listItemLine(n)
			if err != nil {
				return nil, err
			}
			if closed := lists.feed(l); closed != nil {
				out = append(out, closed)
			}
			continue
		}

		if closed := lists.flush(); closed != nil {
			out = append(out, closed)
		}
		if n.Rule == grammar.RuleBlankLine {
			continue
		}
		blk, err := b.block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, blk)
	}
	if closed := lists.flush(); closed != nil {
		out = append(out, closed)
	}
	return out, nil
}

func (b *builder) block(n *grammar.Node) (Block, error) {
	switch n.Rule {
	case grammar.RuleHeading:
		content, err := b.content(n.Child(grammar.RuleContent))
		if err != nil {
			return nil, err
		}
		return &Heading{Level: len(b.text(n.Child(grammar.RuleHeadingMarker))), Content: content}, nil

	case grammar.RuleParagraph:
		var content []Inline
		for i, line := range n.Children {
			if i > 0 {
				content = append(content, &Text{Value: "\n"})
			}
			inlines, err := b.content(line)
			if err != nil {
				return nil, err
			}
			content = append(content, inlines...)
		}
		return &Paragraph{Content: mergeText(content)}, nil

	case grammar.RuleBlockQuote:
		children, err := b.blocks(n.Children)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Content: children}, nil

	case grammar.RuleCodeFence:
		fence := &CodeFence{Lines: []string{}}
		for _, c := range n.Children {
			switch c.Rule {
			case grammar.RuleFenceInfo:
				fence.Language = b.text(c)
			case grammar.RuleFenceLine:
				fence.Lines = append(fence.Lines, b.text(c))
			default:
				return nil, b.unexpected(c, "code fence")
			}
		}
		return fence, nil

	case grammar.RuleThematicBreak:
		return &ThematicBreak{}, nil
	}
	return nil, b.unexpected(n, "document")
}

func (b *builder) listItemLine(n *grammar.Node) (listItemLine, error) {
	content, err := b.content(n.Child(grammar.RuleContent))
	if err != nil {
		return listItemLine{}, err
	}
	marker := b.text(n.Child(grammar.RuleListMarker))
	l := listItemLine{item: ListItem{Content: content}}

	if n.Rule == grammar.RuleOrderedItem {
		num, err := strconv.Atoi(strings.TrimSuffix(marker, "."))
		if err != nil {
			return listItemLine{}, fmt.Errorf("ast: invalid ordered list marker %q: %w", marker, err)
		}
		l.ordered, l.marker, l.numeral = true, '.', num
		return l, nil
	}
	if marker == "" {
		return listItemLine{}, b.unexpected(n, "list item without marker")
	}
	l.marker = marker[0]
	return l, nil
}

// content builds the inline children of a RuleContent node.
func (b *builder) content(n *grammar.Node) ([]Inline, error) {
	if n == nil {
		return nil, nil
	}
	if n.Rule != grammar.RuleContent {
		return nil, b.unexpected(n, "inline content")
	}
	return b.inlines(n.Children)
}

func (b *builder) inlines(nodes []*grammar.Node) ([]Inline, error) {
	out := make([]Inline, 0, len(nodes))
	for _, n := range nodes {
		in, err := b.inline(n)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return mergeText(out), nil
}

func (b *builder) inline(n *grammar.Node) (Inline, error) {
	switch n.Rule {
	case grammar.RuleText:
		return &Text{Value: b.text(n)}, nil

	case grammar.RuleBold, grammar.RuleItalic, grammar.RuleStrikethrough, grammar.RuleUnderline:
		children, err := b.inlines(n.Children)
		if err != nil {
			return nil, err
		}
		switch n.Rule {
		case grammar.RuleBold:
			return &Bold{Children: children}, nil
		case grammar.RuleItalic:
			return &Italic{Children: children}, nil
		case grammar.RuleStrikethrough:
			return &Strikethrough{Children: children}, nil
		default:
			return &Underline{Children: children}, nil
		}

	case grammar.RuleInlineCode:
		return &InlineCode{Code: b.text(n.Child(grammar.RuleCodeContent))}, nil

	case grammar.RuleLink:
		text, err := b.content(n.Child(grammar.RuleContent))
		if err != nil {
			return nil, err
		}
		return &Link{Text: text, URL: Unescape(b.text(n.Child(grammar.RuleURL)))}, nil

	case grammar.RuleImage:
		return &Image{
			Alt: Unescape(b.text(n.Child(grammar.RuleImageAlt))),
			URL: Unescape(b.text(n.Child(grammar.RuleURL))),
		}, nil

	case grammar.RuleEscape:
		r, _ := utf8.DecodeRuneInString(b.text(n.Child(grammar.RuleEscapedChar)))
		return &EscapedChar{Char: r}, nil
	}
	return nil, b.unexpected(n, "inline content")
}

// mergeText joins adjacent Text nodes.
func mergeText(in []Inline) []Inline {
	out := in[:0]
	for i := 0; i < len(in); {
		t, ok := in[i].(*Text)
		if !ok {
			out = append(out, in[i])
			i++
			continue
		}
		j := i + 1
		for j < len(in) {
			if _, ok := in[j].(*Text); !ok {
				break
			}
			j++
		}
		if j == i+1 {
			out = append(out, t)
			i = j
			continue
		}
		var sb strings.Builder
		for _, n := range in[i:j] {
			sb.WriteString(n.(*Text).Value)
		}
		out = append(out, &Text{Value: sb.String()})
		i = j
	}
	return out
}

// Unescape resolves backslash escapes of ASCII punctuation in alt text and URLs.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && util.IsPunct(s[i+1]) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
