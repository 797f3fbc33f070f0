// Package ast defines the typed Markdown syntax tree and builds it from the
// generic parse tree produced by package grammar.
//
// Block and Inline are closed variant sets: only the types in this package
// implement them.
package ast

// Document is the ordered sequence of top-level blocks, in source order.
type Document struct {
	Blocks []Block
}

// Block is a structural unit of a document.
type Block interface {
	blockNode()
}

// Inline is a span-level element inside a block.
type Inline interface {
	inlineNode()
}

// Heading is an ATX heading; Level is always in [1, 6].
type Heading struct {
	Level   int
	Content []Inline
}

type Paragraph struct {
	Content []Inline
}

// BlockQuote owns its nested blocks.
type BlockQuote struct {
	Content []Block
}

// CodeFence holds verbatim lines. An empty Language means no language tag.
type CodeFence struct {
	Language string
	Lines    []string
}

// UnorderedList items all share Marker ('-' or '*').
type UnorderedList struct {
	Marker byte
	Items  []ListItem
}

// OrderedList starts at the numeral of its first source item.
type OrderedList struct {
	Start int
	Items []ListItem
}

type ThematicBreak struct{}

// ListItem is a flat sequence of inlines.
type ListItem struct {
	Content []Inline
}

func (*Heading) blockNode()       {}
func (*Paragraph) blockNode()     {}
func (*BlockQuote) blockNode()    {}
func (*CodeFence) blockNode()     {}
func (*UnorderedList) blockNode() {}
func (*OrderedList) blockNode()   {}
func (*ThematicBreak) blockNode() {}

type Text struct {
	Value string
}

type Bold struct {
	Children []Inline
}

type Italic struct {
	Children []Inline
}

type Strikethrough struct {
	Children []Inline
}

type Underline struct {
	Children []Inline
}

// InlineCode is literal and never re-parsed.
type InlineCode struct {
	Code string
}

type Link struct {
	Text []Inline
	URL  string
}

type Image struct {
	Alt string
	URL string
}

// EscapedChar is a punctuation character written with a leading backslash.
type EscapedChar struct {
	Char rune
}

func (*Text) inlineNode()          {}
func (*Bold) inlineNode()          {}
func (*Italic) inlineNode()        {}
func (*Strikethrough) inlineNode() {}
func (*Underline) inlineNode()     {}
func (*InlineCode) inlineNode()    {}
func (*Link) inlineNode()          {}
func (*Image) inlineNode()         {}
func (*EscapedChar) inlineNode()   {}
