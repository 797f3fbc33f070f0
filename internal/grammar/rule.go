package grammar

import "slices"

// Rule identifies the grammar rule that produced a Node.
type Rule int

const (
	RuleDocument Rule = iota

	// Block level.
	RuleHeading
	RuleBlockQuote
	RuleCodeFence
	RuleThematicBreak
	RuleUnorderedItem
	RuleOrderedItem
	RuleBlankLine
	RuleParagraph

	// Captures inside blocks.
	RuleHeadingMarker
	RuleListMarker
	RuleFenceInfo
	RuleFenceLine
	RuleContent

	// Inline level.
	RuleImage
	RuleLink
	RuleBold
	RuleItalic
	RuleStrikethrough
	RuleUnderline
	RuleInlineCode
	RuleEscape
	RuleText

	// Captures inside inlines.
	RuleImageAlt
	RuleURL
	RuleCodeContent
	RuleEscapedChar
)

var ruleNames = map[Rule]string{
	RuleDocument:      "document",
	RuleHeading:       "heading",
	RuleBlockQuote:    "blockquote",
	RuleCodeFence:     "code_fence",
	RuleThematicBreak: "thematic_break",
	RuleUnorderedItem: "unordered_list_item",
	RuleOrderedItem:   "ordered_list_item",
	RuleBlankLine:     "blank_line",
	RuleParagraph:     "paragraph",
	RuleHeadingMarker: "heading_marker",
	RuleListMarker:    "list_marker",
	RuleFenceInfo:     "fence_info",
	RuleFenceLine:     "fence_line",
	RuleContent:       "content",
	RuleImage:         "image",
	RuleLink:          "link",
	RuleBold:          "bold",
	RuleItalic:        "italic",
	RuleStrikethrough: "strikethrough",
	RuleUnderline:     "underline",
	RuleInlineCode:    "inline_code",
	RuleEscape:        "escape_sequence",
	RuleText:          "plain_text",
	RuleImageAlt:      "image_alt",
	RuleURL:           "url",
	RuleCodeContent:   "code_content",
	RuleEscapedChar:   "escaped_char",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsBlock reports whether r is a block-level rule.
func (r Rule) IsBlock() bool {
	return r >= RuleHeading && r <= RuleParagraph
}

// IsInline reports whether r is an inline-level rule.
func (r Rule) IsInline() bool {
	return r >= RuleImage && r <= RuleText
}

// blockPriority is the order in which block rules are tried for each line.
// The thematic break precedes the list items so that "---" is a break and
// "-" is a list marker. Paragraph is the fallback and is not listed.
var blockPriority = []Rule{
	RuleHeading,
	RuleBlockQuote,
	RuleCodeFence,
	RuleThematicBreak,
	RuleUnorderedItem,
	RuleOrderedItem,
	RuleBlankLine,
}

// inlinePriority is the order in which inline rules are tried at each
// position. Plain text always matches and is last.
var inlinePriority = []Rule{
	RuleImage,
	RuleLink,
	RuleBold,
	RuleItalic,
	RuleStrikethrough,
	RuleUnderline,
	RuleInlineCode,
	RuleEscape,
	RuleText,
}

// BlockPriority returns the block rules in the order they are tried.
func BlockPriority() []Rule { return slices.Clone(blockPriority) }

// InlinePriority returns the inline rules in the order they are tried.
func InlinePriority() []Rule { return slices.Clone(inlinePriority) }
