// Package htmlrender renders an ast.Document as HTML.
//
// Render is a pure function of its input: one output line per top-level
// block, every literal fragment escaped, no I/O and no shared state.
package htmlrender

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/mdhtml/internal/ast"
)

// Render returns one HTML line per top-level block of doc.
func Render(doc *ast.Document) []string {
	if doc == nil {
		return []string{}
	}
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		var sb strings.Builder
		writeBlock(&sb, b)
		lines = append(lines, sb.String())
	}
	return lines
}

// RenderString returns the rendered lines joined by newlines.
func RenderString(doc *ast.Document) string {
	return strings.Join(Render(doc), "\n")
}

// Escape replaces &, <, > and " with their entities.
func Escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

func writeEscaped(sb *strings.Builder, s string) {
	_, _ = sb.Write(util.EscapeHTML([]byte(s)))
}

func writeBlock(sb *strings.Builder, b ast.Block) {
	switch b := b.(type) {
	case *ast.Heading:
		level := strconv.Itoa(b.Level)
		sb.WriteString("<h" + level + ">")
		writeInlines(sb, b.Content)
		sb.WriteString("</h" + level + ">")

	case *ast.Paragraph:
		sb.WriteString("<p>")
		writeInlines(sb, b.Content)
		sb.WriteString("</p>")

	case *ast.BlockQuote:
		sb.WriteString("<blockquote>")
		for _, c := range b.Content {
			writeBlock(sb, c)
		}
		sb.WriteString("</blockquote>")

	case *ast.CodeFence:
		sb.WriteString("<pre><code")
		if b.Language != "" {
			sb.WriteString(` class="language-`)
			writeEscaped(sb, b.Language)
			sb.WriteString(`"`)
		}
		sb.WriteString(">")
		writeEscaped(sb, strings.Join(b.Lines, "\n"))
		sb.WriteString("</code></pre>")

	case *ast.UnorderedList:
		sb.WriteString("<ul>")
		writeItems(sb, b.Items)
		sb.WriteString("</ul>")

	case *ast.OrderedList:
		sb.WriteString(`<ol start="` + strconv.Itoa(b.Start) + `">`)
		writeItems(sb, b.Items)
		sb.WriteString("</ol>")

	case *ast.ThematicBreak:
		sb.WriteString("<hr>")

	default:
		panic(fmt.Sprintf("htmlrender: unhandled block %T", b))
	}
}

func writeItems(sb *strings.Builder, items []ast.ListItem) {
	for _, it := range items {
		sb.WriteString("<li>")
		writeInlines(sb, it.Content)
		sb.WriteString("</li>")
	}
}

func writeInlines(sb *strings.Builder, inlines []ast.Inline) {
	for _, in := range inlines {
		writeInline(sb, in)
	}
}

func writeInline(sb *strings.Builder, in ast.Inline) {
	switch in := in.(type) {
	case *ast.Text:
		writeEscaped(sb, in.Value)
	case *ast.Bold:
		wrap(sb, "strong", in.Children)
	case *ast.Italic:
		wrap(sb, "em", in.Children)
	case *ast.Strikethrough:
		wrap(sb, "del", in.Children)
	case *ast.Underline:
		wrap(sb, "u", in.Children)
	case *ast.InlineCode:
		sb.WriteString("<code>")
		writeEscaped(sb, in.Code)
		sb.WriteString("</code>")
	case *ast.Link:
		sb.WriteString(`<a href="`)
		writeEscaped(sb, in.URL)
		sb.WriteString(`">`)
		writeInlines(sb, in.Text)
		sb.WriteString("</a>")
	case *ast.Image:
		sb.WriteString(`<img src="`)
		writeEscaped(sb, in.URL)
		sb.WriteString(`" alt="`)
		writeEscaped(sb, in.Alt)
		sb.WriteString(`">`)
	case *ast.EscapedChar:
		writeEscaped(sb, string(in.Char))
	default:
		panic(fmt.Sprintf("htmlrender: unhandled inline %T", in))
	}
}

func wrap(sb *strings.Builder, tag string, children []ast.Inline) {
	sb.WriteString("<" + tag + ">")
	writeInlines(sb, children)
	sb.WriteString("</" + tag + ">")
}
