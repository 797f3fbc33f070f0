// Package commands implements the mdhtml command line.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/convert"
	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/observability"
	"git.home.luguber.info/inful/mdhtml/internal/version"
)

// Global is the state shared by every subcommand, bound after flag parsing.
type Global struct {
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Stdout io.Writer
}

// Converter builds a converter from the loaded configuration.
func (g *Global) Converter() *convert.Converter {
	return convert.New(convert.OptionsFromConfig(g.Config)).
		WithLogger(g.Logger).
		WithStdout(g.Stdout)
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default ${config_path} when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert a Markdown file to an HTML file"`
	Parse   ParseCmd   `cmd:"" help:"Parse Markdown text or a file and print the HTML"`
	Info    InfoCmd    `cmd:"" help:"Show version, supported syntax and defaults"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP conversion service"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`

	Global *Global         `kong:"-"`
	ctx    context.Context `kong:"-"`
}

// AfterApply runs after flag parsing: it loads the configuration (except for
// init, which creates it), installs the logger and binds Global.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	cfg := config.Default()
	if !strings.HasPrefix(kctx.Command(), "init") {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := string(cfg.Logging.Level)
	if c.Verbose {
		level = "debug"
	}
	logger := observability.NewLogger(kctx.Stderr, level, string(cfg.Logging.Format))
	slog.SetDefault(logger)

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	c.Global = &Global{Ctx: ctx, Config: cfg, Logger: logger, Stdout: kctx.Stdout}
	kctx.Bind(c.Global)
	return nil
}

// Execute parses args, runs the selected command and reports failures through
// the CLI error adapter, which calls exit with the mapped code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) {
	if exit == nil {
		exit = os.Exit
	}
	cli := &CLI{ctx: ctx}
	parser, err := kong.New(cli,
		kong.Name("mdhtml"),
		kong.Description("Convert Markdown documents to HTML."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		// -t values such as "- item" or "---" start with a hyphen.
		kong.WithHyphenPrefixedParameters(true),
		kong.Vars{
			"version":     version.String(),
			"config_path": config.DefaultPath,
		},
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(args)
	if err == nil {
		err = kctx.Run()
	}
	if err == nil {
		return
	}

	logger := slog.Default()
	if cli.Global != nil {
		logger = cli.Global.Logger
	}
	if _, ok := derrors.As(err); !ok {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			err = derrors.ValidationFailed("arguments", err.Error())
		}
	}
	derrors.NewCLIErrorAdapter(cli.Verbose, logger).WithOutput(stderr, exit).HandleError(err)
}
