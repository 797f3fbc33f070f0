package grammar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// shape renders a node's inline subtree as rule(text) for compact assertions.
func shape(tree *Tree, nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Rule {
		case RuleText:
			out = append(out, "text("+tree.Text(n)+")")
		case RuleEscape:
			out = append(out, "escape("+tree.Text(n.Child(RuleEscapedChar))+")")
		case RuleInlineCode:
			out = append(out, "code("+tree.Text(n.Child(RuleCodeContent))+")")
		case RuleImage:
			out = append(out, "image("+tree.Text(n.Child(RuleImageAlt))+"|"+tree.Text(n.Child(RuleURL))+")")
		case RuleLink:
			inner := shape(tree, n.Child(RuleContent).Children)
			out = append(out, "link("+strings.Join(inner, " ")+"|"+tree.Text(n.Child(RuleURL))+")")
		default:
			out = append(out, n.Rule.String()+"("+strings.Join(shape(tree, n.Children), " ")+")")
		}
	}
	return out
}

func inlineShape(t *testing.T, src string) []string {
	t.Helper()
	tree, err := Match(src, Options{})
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 1)
	para := tree.Root.Children[0]
	require.Equal(t, RuleParagraph, para.Rule)
	return shape(tree, para.Children[0].Children)
}

func TestInline_OrderedChoice(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"plain", "just text", []string{"text(just text)"}},
		{"bold and italic", "**bold** and *italic*", []string{"bold(text(bold))", "text( and )", "italic(text(italic))"}},
		{"underscore italic", "_it_", []string{"italic(text(it))"}},
		{"strikethrough", "~~gone~~", []string{"strikethrough(text(gone))"}},
		{"underline", "__under__", []string{"underline(text(under))"}},
		{"italic in bold", "**a *b* c**", []string{"bold(text(a ) italic(text(b)) text( c))"}},
		{"bold in italic", "*a **b** c*", []string{"italic(text(a ) bold(text(b)) text( c))"}},
		{"triple star is bold around italic", "***x***", []string{"bold(italic(text(x)))"}},
		{"triple underscore is underline around italic", "___x___", []string{"underline(italic(text(x)))"}},
		{"long runs nest", "*****a*****", []string{"bold(bold(italic(text(a))))"}},
		{"closer never inside opening run", "****", []string{"text(****)"}},
		{"inline code is literal", "`**x**`", []string{"code(**x**)"}},
		{"double backtick code", "``a ` b``", []string{"code(a ` b)"}},
		{"link", "[docs](http://x.io)", []string{"link(text(docs)|http://x.io)"}},
		{"link with bold text", "[**b**](u)", []string{"link(bold(text(b))|u)"}},
		{"image beats link", "![alt text](img.png)", []string{"image(alt text|img.png)"}},
		{"escaped bracket in link", `[a\]b](u)`, []string{`link(text(a) escape(]) text(b)|u)`}},
		{"escaped paren in url", `[a](u\)v)`, []string{`link(text(a)|u\)v)`}},
		{"escape", `\*literal\*`, []string{"escape(*)", "text(literal)", "escape(*)"}},
		{"backslash before letter is text", `a\b`, []string{"text(a)", `text(\)`, "text(b)"}},
		{"unmatched star is text", "2 * 3", []string{"text(2 )", "text(*)", "text( 3)"}},
		{"whitespace inside delimiters", "x * a *", []string{"text(x )", "text(*)", "text( a )", "text(*)"}},
		{"intraword underscore", "snake_case_name", []string{"text(snake)", "text(_)", "text(case)", "text(_)", "text(name)"}},
		{"url with space is not a link", "[a](b c)", []string{"text([)", "text(a](b c))"}},
		{"exclamation alone", "Hi!", []string{"text(Hi)", "text(!)"}},
		{"unclosed code run", "``a", []string{"text(``)", "text(a)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, inlineShape(t, tt.src))
		})
	}
}

func TestInline_SpansAreAbsolute(t *testing.T) {
	tree, err := Match("> see **this**", Options{})
	require.NoError(t, err)

	var bold *Node
	Walk(tree.Root, func(n *Node) bool {
		if n.Rule == RuleBold {
			bold = n
		}
		return true
	})
	require.NotNil(t, bold)
	require.Equal(t, "**this**", tree.Text(bold))
	require.Equal(t, Span{Start: 6, End: 14}, bold.Span)
}

func TestInline_DepthLimitCountsFormatting(t *testing.T) {
	src := "*a **b ~~c~~ b** a*"

	_, err := Match(src, Options{MaxDepth: 3})
	require.NoError(t, err)

	_, err = Match(src, Options{MaxDepth: 2})
	var derr *DepthError
	require.ErrorAs(t, err, &derr)
}

func TestLineIndex_CloserPositions(t *testing.T) {
	x := &lineIndex{s: `a* b *c\* d*`}
	// 1: follows "a". 5: follows a space. 8: escaped. 11: follows "d".
	require.Equal(t, []int{1, 11}, x.closers("*"))
}

func TestLineIndex_BracketsAndDestinations(t *testing.T) {
	x := &lineIndex{s: `[a [b] \] c](u\)v) [x`}
	require.Equal(t, 11, x.closeBracket(0))
	require.Equal(t, 5, x.closeBracket(3))
	require.Equal(t, -1, x.closeBracket(19))

	start, end, ok := x.destination(12)
	require.True(t, ok)
	require.Equal(t, `u\)v`, x.s[start:end])
}

func TestLineIndex_CodeRun(t *testing.T) {
	x := &lineIndex{s: "``a`b``c"}
	require.Equal(t, 5, x.codeRun(2, 2))
	require.Equal(t, 3, x.codeRun(1, 2))
	require.Equal(t, -1, x.codeRun(3, 0))
}

func TestInline_UnmatchedOpenersStayLinear(t *testing.T) {
	const size = 200 << 10
	for _, unit := range []string{"*a ", "_a ", "**a ", "~~a ", "[", "[a](", "![a](b ", "``a`"} {
		t.Run(unit, func(t *testing.T) {
			src := strings.Repeat(unit, size/len(unit))
			start := time.Now()
			_, err := Match(src, Options{})
			require.NoError(t, err)
			require.Less(t, time.Since(start), 2*time.Second)
		})
	}
}
