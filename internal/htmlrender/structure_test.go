package htmlrender

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func renderDOM(t *testing.T, src string) *goquery.Document {
	t.Helper()
	out := strings.Join(renderSource(t, src), "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRender_Structure(t *testing.T) {
	doc := renderDOM(t, "# Title & more\n\n> *quoted* <b>\n> - in list\n\n3. three\n4. four\n\n[link](https://e.com/?a=1&b=2)")

	require.Equal(t, "Title & more", doc.Find("h1").Text())

	quote := doc.Find("blockquote")
	require.Equal(t, 1, quote.Length())
	require.Equal(t, "quoted", quote.Find("p > em").Text())
	require.Equal(t, "quoted <b>", quote.Find("p").First().Text())
	require.Equal(t, "in list", quote.Find("ul > li").Text())
	require.Zero(t, doc.Find("b").Length())

	ol := doc.Find("ol")
	start, ok := ol.Attr("start")
	require.True(t, ok)
	require.Equal(t, "3", start)
	require.Equal(t, 2, ol.Find("li").Length())

	href, ok := doc.Find("a").Attr("href")
	require.True(t, ok)
	require.Equal(t, "https://e.com/?a=1&b=2", href)
}

func TestRender_CodeFenceStructure(t *testing.T) {
	doc := renderDOM(t, "```html\n<p class=\"x\">&amp;</p>\n```")

	code := doc.Find("pre > code.language-html")
	require.Equal(t, 1, code.Length())
	require.Equal(t, `<p class="x">&amp;</p>`, code.Text())
	require.Zero(t, doc.Find("pre p").Length())
}

func TestRender_ImageAttributes(t *testing.T) {
	doc := renderDOM(t, `![a "quoted" <alt>](img.png?x=1&y=2)`)

	img := doc.Find("p > img")
	require.Equal(t, 1, img.Length())
	alt, _ := img.Attr("alt")
	src, _ := img.Attr("src")
	require.Equal(t, `a "quoted" <alt>`, alt)
	require.Equal(t, "img.png?x=1&y=2", src)
}
