package commands

import (
	"fmt"
	"io"
	"os"

	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/frontmatter"
)

// ParseCmd implements the 'parse' command.
type ParseCmd struct {
	Text  string `short:"t" xor:"source" required:"" placeholder:"MARKDOWN_TEXT" help:"Markdown text to parse and convert"`
	Input string `short:"i" xor:"source" required:"" placeholder:"INPUT_FILE" help:"Path to a Markdown file to parse and convert"`

	Tree        bool `help:"Print the parse tree instead of HTML"`
	Frontmatter bool `help:"Print the front matter as YAML before the output"`
}

func (p *ParseCmd) Run(g *Global) error {
	text := p.Text
	if p.Input != "" {
		data, err := os.ReadFile(p.Input)
		if err != nil {
			return derrors.ReadFailed(p.Input, err)
		}
		text = string(data)
	}
	conv := g.Converter()

	if p.Frontmatter {
		if err := printFrontmatter(g.Stdout, text); err != nil {
			return err
		}
	}

	if !p.Tree {
		return conv.PrintHTMLToConsole(text)
	}
	tree, err := conv.ParseMarkdown(text)
	if err != nil {
		return err
	}
	if err := tree.Format(g.Stdout); err != nil {
		return derrors.WriteFailed("stdout", err)
	}
	return nil
}

func printFrontmatter(w io.Writer, text string) error {
	fm, err := frontmatter.Split(text)
	if err != nil {
		return derrors.ValidationFailed("frontmatter", err.Error())
	}
	if !fm.Had {
		return nil
	}
	fields, err := frontmatter.ParseYAML(fm.Raw)
	if err != nil {
		return derrors.ValidationFailed("frontmatter", err.Error())
	}
	out, err := frontmatter.SerializeYAML(fields)
	if err != nil {
		return derrors.InternalError("failed to serialize front matter", err)
	}
	if _, err := fmt.Fprintf(w, "---\n%s---\n", out); err != nil {
		return derrors.WriteFailed("stdout", err)
	}
	return nil
}
