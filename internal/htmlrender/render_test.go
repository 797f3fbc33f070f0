package htmlrender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdhtml/internal/ast"
	"git.home.luguber.info/inful/mdhtml/internal/grammar"
)

func renderSource(t *testing.T, src string) []string {
	t.Helper()
	tree, err := grammar.Match(src, grammar.Options{})
	require.NoError(t, err)
	doc, err := ast.Build(tree)
	require.NoError(t, err)
	return Render(doc)
}

func TestRender_Scenarios(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"# Hello World!", []string{"<h1>Hello World!</h1>"}},
		{"**bold** and *italic*", []string{"<p><strong>bold</strong> and <em>italic</em></p>"}},
		{"- a\n- b", []string{"<ul><li>a</li><li>b</li></ul>"}},
		{"1. a\n2. b", []string{`<ol start="1"><li>a</li><li>b</li></ol>`}},
		{"> quote", []string{"<blockquote><p>quote</p></blockquote>"}},
		{`\*literal\*`, []string{"<p>*literal*</p>"}},
		{"---", []string{"<hr>"}},
		{"~~x~~ __y__", []string{"<p><del>x</del> <u>y</u></p>"}},
		{"[go](https://go.dev)", []string{`<p><a href="https://go.dev">go</a></p>`}},
		{"![a \"b\"](x.png)", []string{`<p><img src="x.png" alt="a &quot;b&quot;"></p>`}},
		{"```go\nif a < b && c {\n}\n```", []string{"<pre><code class=\"language-go\">if a &lt; b &amp;&amp; c {\n}</code></pre>"}},
		{"```\n**x**\n```", []string{"<pre><code>**x**</code></pre>"}},
		{"`<b>`", []string{"<p><code>&lt;b&gt;</code></p>"}},
		{"> a\n>\n> b", []string{"<blockquote><p>a</p><p>b</p></blockquote>"}},
		{"# T\n\npara\n3. x", []string{"<h1>T</h1>", "<p>para</p>", `<ol start="3"><li>x</li></ol>`}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, renderSource(t, tt.src))
		})
	}
}

func TestRender_HeadingLevels(t *testing.T) {
	for n := 1; n <= 6; n++ {
		src := strings.Repeat("#", n) + " Plain title"
		level := string(rune('0' + n))
		require.Equal(t, []string{"<h" + level + ">Plain title</h" + level + ">"}, renderSource(t, src))
	}
}

func TestRender_ThematicBreakVariants(t *testing.T) {
	for _, src := range []string{"---", "***", "___", "- - -", "* * *", "_ _ _ _", "-----"} {
		require.Equal(t, []string{"<hr>"}, renderSource(t, src), src)
	}
}

func TestRender_EscapeSequencesSuppressFormatting(t *testing.T) {
	for _, c := range "*_~`[]()#>!\\-" {
		src := "a \\" + string(c) + "x\\" + string(c) + " b"
		lines := renderSource(t, src)
		require.Len(t, lines, 1)
		want := "<p>a " + Escape(string(c)) + "x" + Escape(string(c)) + " b</p>"
		require.Equal(t, want, lines[0], src)
	}
}

// TestRender_NoUnescapedSpecialsInText tokenizes the output and checks every
// text node and attribute round-trips to exactly the characters written.
func TestRender_NoUnescapedSpecialsInText(t *testing.T) {
	srcs := []string{
		`Tom & Jerry <script>alert("x")</script>`,
		`**a < b** and *"q"* > ~~&amp;~~`,
		`[x&y](http://e.com/?a=1&b="2") ![<alt>](i.png)`,
		"- 1 < 2\n- \"quoted\" & more",
		"> <div>\n> & done",
	}
	for _, src := range srcs {
		out := strings.Join(renderSource(t, src), "\n")

		raw := stripTags(out)
		require.NotContains(t, raw, "<", src)
		require.NotContains(t, raw, ">", src)
		require.NotContains(t, raw, `"`, src)
		require.NotContains(t, strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(raw,
			"&amp;", ""), "&lt;", ""), "&gt;", ""), "&quot;", ""), "&", src)

		z := html.NewTokenizer(strings.NewReader(out))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				break
			}
			if tt == html.StartTagToken {
				name, _ := z.TagName()
				require.NotEqual(t, "script", string(name), src)
				require.NotEqual(t, "div", string(name), src)
			}
		}
	}
}

// stripTags removes the markup the renderer itself emits, leaving text and
// attribute values.
func stripTags(s string) string {
	var sb strings.Builder
	inTag, inAttr := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !inTag && c == '<':
			inTag = true
		case inTag && !inAttr && c == '"':
			inAttr = true
		case inTag && inAttr && c == '"':
			inAttr = false
		case inTag && !inAttr && c == '>':
			inTag = false
		case inAttr || !inTag:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func TestRender_IsDeterministic(t *testing.T) {
	tree, err := grammar.Match("# a\n\n> *b* [c](d)\n\n1. e\n- f", grammar.Options{})
	require.NoError(t, err)
	doc, err := ast.Build(tree)
	require.NoError(t, err)

	first := Render(doc)
	second := Render(doc)
	require.Equal(t, first, second)
	require.Equal(t, strings.Join(first, "\n"), RenderString(doc))
}

// TestRender_CoversEveryVariant constructs each Block and Inline variant
// directly so an unhandled variant panics here.
func TestRender_CoversEveryVariant(t *testing.T) {
	inlines := []ast.Inline{
		&ast.Text{Value: "t"},
		&ast.Bold{Children: []ast.Inline{&ast.Text{Value: "b"}}},
		&ast.Italic{Children: []ast.Inline{&ast.Text{Value: "i"}}},
		&ast.Strikethrough{Children: []ast.Inline{&ast.Text{Value: "s"}}},
		&ast.Underline{Children: []ast.Inline{&ast.Text{Value: "u"}}},
		&ast.InlineCode{Code: "c"},
		&ast.Link{Text: []ast.Inline{&ast.Text{Value: "l"}}, URL: "h"},
		&ast.Image{Alt: "a", URL: "s"},
		&ast.EscapedChar{Char: '<'},
	}
	doc := &ast.Document{Blocks: []ast.Block{
		&ast.Heading{Level: 2, Content: inlines},
		&ast.Paragraph{Content: inlines},
		&ast.BlockQuote{Content: []ast.Block{&ast.ThematicBreak{}}},
		&ast.CodeFence{Language: "sh", Lines: []string{"echo"}},
		&ast.UnorderedList{Marker: '-', Items: []ast.ListItem{{Content: inlines}}},
		&ast.OrderedList{Start: 0, Items: []ast.ListItem{{}}},
		&ast.ThematicBreak{},
	}}

	wantInline := `t<strong>b</strong><em>i</em><del>s</del><u>u</u><code>c</code><a href="h">l</a><img src="s" alt="a">&lt;`
	require.Equal(t, []string{
		"<h2>" + wantInline + "</h2>",
		"<p>" + wantInline + "</p>",
		"<blockquote><hr></blockquote>",
		`<pre><code class="language-sh">echo</code></pre>`,
		"<ul><li>" + wantInline + "</li></ul>",
		`<ol start="0"><li></li></ol>`,
		"<hr>",
	}, Render(doc))
}

func TestRender_NilDocument(t *testing.T) {
	require.Empty(t, Render(nil))
	require.Empty(t, Render(&ast.Document{}))
}
