package grammar

import (
	"regexp"
	"strings"
)

var (
	// Capture groups: 1. marker, 2. content.
	headingRegexp = regexp.MustCompile(`^(#{1,6})[ \t]+(\S.*?)[ \t]*$`)

	thematicBreakRegexp = regexp.MustCompile(
		`^[ \t]*(?:(?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,})$`)

	// Capture groups: 1. marker, 2. optional content.
	unorderedItemRegexp = regexp.MustCompile(`^([-*])(?:[ \t]+(.*?))?[ \t]*$`)
	orderedItemRegexp   = regexp.MustCompile(`^(\d{1,9}\.)(?:[ \t]+(.*?))?[ \t]*$`)
)

const fence = "```"

// blocks matches a sequence of lines as blocks at the given nesting depth.
func (m *matcher) blocks(lines []line, depth int) ([]*Node, error) {
	if depth > m.maxDepth {
		pos := 0
		if len(lines) > 0 {
			pos = lines[0].start
		}
		return nil, m.depthError(pos)
	}

	var nodes []*Node
	for i := 0; i < len(lines); {
		if err := m.ctx.Err(); err != nil {
			return nil, err
		}
		n, next, err := m.block(lines, i, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		i = next
	}
	return nodes, nil
}

// block tries every block rule in priority order on lines[i] and falls back
// to a paragraph. It returns the node and the index of the next unconsumed line.
func (m *matcher) block(lines []line, i, depth int) (*Node, int, error) {
	for _, r := range blockPriority {
		if !claims(r, lines[i].text) {
			continue
		}
		switch r {
		case RuleHeading:
			n, err := m.heading(lines[i], depth)
			return n, i + 1, err
		case RuleBlockQuote:
			return m.blockQuote(lines, i, depth)
		case RuleCodeFence:
			return m.codeFence(lines, i)
		case RuleThematicBreak:
			return &Node{Rule: RuleThematicBreak, Span: Span{lines[i].start, lines[i].end()}}, i + 1, nil
		case RuleUnorderedItem:
			n, err := m.listItem(RuleUnorderedItem, unorderedItemRegexp, lines[i], depth)
			return n, i + 1, err
		case RuleOrderedItem:
			n, err := m.listItem(RuleOrderedItem, orderedItemRegexp, lines[i], depth)
			return n, i + 1, err
		case RuleBlankLine:
			return &Node{Rule: RuleBlankLine, Span: Span{lines[i].start, lines[i].end()}}, i + 1, nil
		}
	}
	return m.paragraph(lines, i, depth)
}

// claims reports whether block rule r accepts a line with the given text.
func claims(r Rule, text string) bool {
	switch r {
	case RuleHeading:
		return headingRegexp.MatchString(text)
	case RuleBlockQuote:
		return strings.HasPrefix(text, ">")
	case RuleCodeFence:
		return strings.HasPrefix(text, fence)
	case RuleThematicBreak:
		return thematicBreakRegexp.MatchString(text)
	case RuleUnorderedItem:
		return unorderedItemRegexp.MatchString(text)
	case RuleOrderedItem:
		return orderedItemRegexp.MatchString(text)
	case RuleBlankLine:
		return strings.TrimSpace(text) == ""
	}
	return false
}

func claimedByAny(text string) bool {
	for _, r := range blockPriority {
		if claims(r, text) {
			return true
		}
	}
	return false
}

func (m *matcher) heading(l line, depth int) (*Node, error) {
	idx := headingRegexp.FindStringSubmatchIndex(l.text)
	content, err := m.content(l.text[idx[4]:idx[5]], l.start+idx[4], depth)
	if err != nil {
		return nil, err
	}
	return &Node{
		Rule: RuleHeading,
		Span: Span{l.start, l.end()},
		Children: []*Node{
			{Rule: RuleHeadingMarker, Span: Span{l.start + idx[2], l.start + idx[3]}},
			content,
		},
	}, nil
}

func (m *matcher) blockQuote(lines []line, i, depth int) (*Node, int, error) {
	var inner []line
	j := i
	for ; j < len(lines) && strings.HasPrefix(lines[j].text, ">"); j++ {
		l := lines[j]
		strip := 1
		if len(l.text) > 1 && l.text[1] == ' ' {
			strip = 2
		}
		inner = append(inner, line{text: l.text[strip:], start: l.start + strip})
	}

	children, err := m.blocks(inner, depth+1)
	if err != nil {
		return nil, 0, err
	}
	return &Node{
		Rule:     RuleBlockQuote,
		Span:     Span{lines[i].start, lines[j-1].end()},
		Children: children,
	}, j, nil
}

func (m *matcher) codeFence(lines []line, i int) (*Node, int, error) {
	open := lines[i]
	n := &Node{Rule: RuleCodeFence}

	rest := open.text[len(fence):]
	if info := strings.Trim(rest, " \t"); info != "" {
		start := open.start + len(fence) + (len(rest) - len(strings.TrimLeft(rest, " \t")))
		n.Children = append(n.Children, &Node{Rule: RuleFenceInfo, Span: Span{start, start + len(info)}})
	}

	for j := i + 1; j < len(lines); j++ {
		if isFenceClose(lines[j].text) {
			n.Span = Span{open.start, lines[j].end()}
			return n, j + 1, nil
		}
		n.Children = append(n.Children, &Node{Rule: RuleFenceLine, Span: Span{lines[j].start, lines[j].end()}})
	}
	return nil, 0, m.parseError(open.start, "closing code fence")
}

func isFenceClose(text string) bool {
	t := strings.Trim(text, " \t")
	return len(t) >= len(fence) && strings.Trim(t, "`") == ""
}

func (m *matcher) listItem(r Rule, re *regexp.Regexp, l line, depth int) (*Node, error) {
	idx := re.FindStringSubmatchIndex(l.text)
	contentStart, contentEnd := l.end(), l.end()
	text := ""
	if idx[4] >= 0 {
		contentStart, contentEnd = l.start+idx[4], l.start+idx[5]
		text = l.text[idx[4]:idx[5]]
	}

	content, err := m.content(text, contentStart, depth)
	if err != nil {
		return nil, err
	}
	content.Span = Span{contentStart, contentEnd}
	return &Node{
		Rule: r,
		Span: Span{l.start, l.end()},
		Children: []*Node{
			{Rule: RuleListMarker, Span: Span{l.start + idx[2], l.start + idx[3]}},
			content,
		},
	}, nil
}

// paragraph consumes lines[i] and every following line no other block rule claims.
func (m *matcher) paragraph(lines []line, i, depth int) (*Node, int, error) {
	n := &Node{Rule: RuleParagraph}
	j := i
	for ; j < len(lines); j++ {
		if j > i && claimedByAny(lines[j].text) {
			break
		}
		l := lines[j]
		trimmed := strings.TrimLeft(l.text, " \t")
		offset := len(l.text) - len(trimmed)
		trimmed = strings.TrimRight(trimmed, " \t")

		content, err := m.content(trimmed, l.start+offset, depth)
		if err != nil {
			return nil, 0, err
		}
		n.Children = append(n.Children, content)
	}
	n.Span = Span{lines[i].start, lines[j-1].end()}
	return n, j, nil
}

// content wraps the inline matches of text in a RuleContent node.
func (m *matcher) content(text string, base, depth int) (*Node, error) {
	children, err := m.inlines(text, base, depth)
	if err != nil {
		return nil, err
	}
	return &Node{
		Rule:     RuleContent,
		Span:     Span{base, base + len(text)},
		Children: children,
	}, nil
}
