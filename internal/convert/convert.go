// Package convert is the conversion entry point: it runs the grammar, builds
// the AST, renders HTML and classifies failures as MarkdownErrors.
package convert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/mdhtml/internal/ast"
	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/frontmatter"
	"git.home.luguber.info/inful/mdhtml/internal/grammar"
	"git.home.luguber.info/inful/mdhtml/internal/htmlrender"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/metrics"
	"git.home.luguber.info/inful/mdhtml/internal/observability"
)

// Result is a successful conversion.
type Result struct {
	// Lines holds one rendered HTML line per top-level block.
	Lines    []string
	Document *ast.Document
	// Frontmatter is nil unless a header was stripped.
	Frontmatter map[string]any
	// Fingerprint identifies the source content (header fields and body).
	Fingerprint string
}

// HTML returns the lines joined by newlines.
func (r *Result) HTML() string {
	return strings.Join(r.Lines, "\n")
}

// Converter converts markdown to HTML. It holds no per-document state and is
// safe for concurrent use once configured.
type Converter struct {
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
	stdout   io.Writer
}

// New creates a Converter. A non-positive MaxDepth selects the default.
func New(opts Options) *Converter {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = grammar.DefaultMaxDepth
	}
	return &Converter{
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		stdout:   os.Stdout,
	}
}

// WithRecorder injects a metrics recorder (nil resets to no-op).
func (c *Converter) WithRecorder(r metrics.Recorder) *Converter {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	c.recorder = r
	return c
}

// WithLogger sets the logger used for conversion diagnostics.
func (c *Converter) WithLogger(l *slog.Logger) *Converter {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithStdout redirects PrintHTMLToConsole.
func (c *Converter) WithStdout(w io.Writer) *Converter {
	if w != nil {
		c.stdout = w
	}
	return c
}

// Options returns the converter's options.
func (c *Converter) Options() Options { return c.opts }

// source is an input after normalization and header removal.
type source struct {
	body   string
	fields map[string]any
	// lineShift and byteShift map body positions back to the original input.
	lineShift int
	byteShift int
}

func (c *Converter) prepare(text string) (source, error) {
	if c.opts.NormalizeUnicode && utf8.ValidString(text) {
		text = norm.NFC.String(text)
	}
	if !c.opts.StripFrontmatter {
		return source{body: text}, nil
	}

	block, err := frontmatter.Split(text)
	if err != nil {
		return source{}, derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityError, "invalid front matter")
	}
	if !block.Had {
		return source{body: text}, nil
	}
	fields, err := frontmatter.ParseYAML(block.Raw)
	if err != nil {
		return source{}, derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityError, "invalid front matter").
			WithContext("line", 2)
	}
	return source{
		body:      block.Body,
		fields:    fields,
		lineShift: block.Lines,
		byteShift: len(text) - len(block.Body),
	}, nil
}

// ParseMarkdown matches text against the grammar and returns the parse tree.
func (c *Converter) ParseMarkdown(text string) (*grammar.Tree, error) {
	src, err := c.prepare(text)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	tree, err := grammar.Match(src.body, grammar.Options{MaxDepth: c.opts.MaxDepth})
	c.recorder.ObserveStageDuration(metrics.StageMatch, time.Since(start))
	if err != nil {
		return nil, classify(err, src)
	}
	return tree, nil
}

// Convert runs the full pipeline. On error no partial output is produced.
func (c *Converter) Convert(ctx context.Context, text string) (*Result, error) {
	start := time.Now()
	res, err := c.convert(ctx, text)
	c.recorder.ObserveConversionDuration(time.Since(start))
	c.recorder.IncConversionOutcome(outcomeFor(err))
	if err != nil {
		observability.Log(ctx, c.logger, slog.LevelDebug, "conversion failed", logfields.Error(err))
		return nil, err
	}
	c.recorder.AddRenderedBlocks(len(res.Lines))
	observability.Log(ctx, c.logger, slog.LevelDebug, "converted",
		logfields.Blocks(len(res.Lines)),
		logfields.Bytes(len(text)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

func (c *Converter) convert(ctx context.Context, text string) (*Result, error) {
	src, err := c.prepare(text)
	if err != nil {
		return nil, err
	}

	t := time.Now()
	tree, err := grammar.MatchContext(ctx, src.body, grammar.Options{MaxDepth: c.opts.MaxDepth})
	c.recorder.ObserveStageDuration(metrics.StageMatch, time.Since(t))
	if err != nil {
		return nil, classify(err, src)
	}

	t = time.Now()
	doc, err := ast.Build(tree)
	c.recorder.ObserveStageDuration(metrics.StageBuild, time.Since(t))
	if err != nil {
		return nil, derrors.InternalError("building the document tree failed", err)
	}

	t = time.Now()
	lines := htmlrender.Render(doc)
	c.recorder.ObserveStageDuration(metrics.StageRender, time.Since(t))

	fp, err := frontmatter.Fingerprint(src.fields, src.body)
	if err != nil {
		return nil, derrors.InternalError("fingerprinting failed", err)
	}
	return &Result{Lines: lines, Document: doc, Frontmatter: src.fields, Fingerprint: fp}, nil
}

// StrToHTML converts text to one HTML line per top-level block.
func (c *Converter) StrToHTML(text string) ([]string, error) {
	res, err := c.Convert(context.Background(), text)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// ConvertFileToHTML reads inputPath, converts it and writes the HTML lines to
// outputPath. The output file is left untouched when conversion fails.
func (c *Converter) ConvertFileToHTML(inputPath, outputPath string) error {
	ctx := observability.WithSource(context.Background(), inputPath)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		c.recorder.IncConversionOutcome(metrics.OutcomeIOError)
		return derrors.ReadFailed(inputPath, err)
	}
	res, err := c.Convert(ctx, string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(c.join(res.Lines)), 0o644); err != nil {
		c.recorder.IncConversionOutcome(metrics.OutcomeIOError)
		return derrors.WriteFailed(outputPath, err)
	}
	observability.Log(ctx, c.logger, slog.LevelInfo, "wrote html",
		logfields.Output(outputPath), logfields.Blocks(len(res.Lines)))
	return nil
}

// PrintHTMLToConsole converts text and writes each HTML line to stdout.
func (c *Converter) PrintHTMLToConsole(text string) error {
	lines, err := c.StrToHTML(text)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(c.stdout, sb.String()); err != nil {
		return derrors.WriteFailed("stdout", err)
	}
	return nil
}

func (c *Converter) join(lines []string) string {
	if !c.opts.TrailingNewline || len(lines) == 0 {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines, "\n") + "\n"
}

// classify wraps grammar errors, moving their positions back onto the
// original input when a header was stripped.
func classify(err error, src source) error {
	var pe *grammar.ParseError
	if errors.As(err, &pe) {
		shifted := *pe
		shifted.Pos += src.byteShift
		shifted.Line += src.lineShift
		return derrors.ParseFailed(shifted.Line, shifted.Col, shifted.Expected, &shifted)
	}
	var de *grammar.DepthError
	if errors.As(err, &de) {
		shifted := *de
		shifted.Pos += src.byteShift
		shifted.Line += src.lineShift
		return derrors.NestingTooDeep(shifted.Limit, &shifted).
			WithContext("line", shifted.Line).
			WithContext("column", shifted.Col)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return derrors.InternalError("conversion canceled", err)
	}
	return derrors.InternalError("matching failed", err)
}

func outcomeFor(err error) metrics.OutcomeLabel {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch derrors.GetCategory(err) {
	case derrors.CategoryNesting:
		return metrics.OutcomeNestingError
	case derrors.CategoryIO:
		return metrics.OutcomeIOError
	default:
		return metrics.OutcomeParseError
	}
}
