package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/watch"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	Input  string `short:"i" required:"" placeholder:"INPUT_FILE" help:"Path to the input Markdown file"`
	Output string `short:"o" required:"" placeholder:"OUTPUT_FILE" help:"Path where the HTML output will be written"`
	Watch  bool   `short:"w" help:"Reconvert whenever the input file changes"`
}

func (c *ConvertCmd) Run(g *Global) error {
	if c.Input == c.Output {
		return derrors.ValidationFailed("output", "output must differ from input")
	}
	conv := g.Converter()

	_, _ = fmt.Fprintf(g.Stdout, "Converting %s to %s\n", c.Input, c.Output)
	err := conv.ConvertFileToHTML(c.Input, c.Output)
	if !c.Watch {
		if err != nil {
			return err
		}
		c.reportSaved(g)
		return nil
	}
	if err != nil {
		g.Logger.Warn("initial conversion failed; watching for changes", logfields.Error(err))
	}

	return watch.File(g.Ctx, c.Input, watch.DefaultDebounce, g.Logger, func(context.Context) error {
		if err := conv.ConvertFileToHTML(c.Input, c.Output); err != nil {
			return err
		}
		c.reportSaved(g)
		return nil
	})
}

func (c *ConvertCmd) reportSaved(g *Global) {
	size := ""
	if fi, err := os.Stat(c.Output); err == nil {
		size = " (" + humanize.Bytes(uint64(fi.Size())) + ")"
	}
	_, _ = fmt.Fprintf(g.Stdout, "HTML file saved to %s%s\n", c.Output, size)
}
