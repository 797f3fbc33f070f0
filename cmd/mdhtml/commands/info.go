package commands

import (
	"fmt"
	"strings"

	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/grammar"
	"git.home.luguber.info/inful/mdhtml/internal/version"
)

// InfoCmd implements the 'info' command.
type InfoCmd struct{}

func (InfoCmd) Run(g *Global) error {
	p := g.Config.Parser
	var sb strings.Builder
	fmt.Fprintln(&sb, version.String())
	fmt.Fprintln(&sb, "Markdown to HTML converter")
	fmt.Fprintln(&sb)
	fmt.Fprintf(&sb, "Block rules (in order):  %s\n", ruleList(grammar.BlockPriority()))
	fmt.Fprintf(&sb, "Inline rules (in order): %s\n", ruleList(grammar.InlinePriority()))
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "Settings:")
	fmt.Fprintf(&sb, "  max_nesting_depth: %d\n", p.MaxNestingDepth)
	fmt.Fprintf(&sb, "  strip_frontmatter: %t\n", p.StripFrontmatter)
	fmt.Fprintf(&sb, "  normalize_unicode: %t\n", p.NormalizeUnicode)
	fmt.Fprintf(&sb, "  trailing_newline:  %t\n", g.Config.Output.TrailingNewline)
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "Examples:")
	fmt.Fprintln(&sb, "  mdhtml convert -i document.md -o document.html")
	fmt.Fprintln(&sb, `  mdhtml parse -t "# Hello **World**"`)
	fmt.Fprintln(&sb, "  mdhtml serve")

	if _, err := fmt.Fprint(g.Stdout, sb.String()); err != nil {
		return derrors.WriteFailed("stdout", err)
	}
	return nil
}

func ruleList(rules []grammar.Rule) string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
