package convert

import (
	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/grammar"
)

// Options controls a Converter.
type Options struct {
	// MaxDepth bounds blockquote and inline nesting together.
	MaxDepth int
	// StripFrontmatter removes a leading YAML header before parsing.
	StripFrontmatter bool
	// NormalizeUnicode applies NFC to valid UTF-8 input before parsing.
	NormalizeUnicode bool
	// TrailingNewline terminates every written line with "\n" instead of
	// only separating them.
	TrailingNewline bool
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		MaxDepth:        grammar.DefaultMaxDepth,
		TrailingNewline: true,
	}
}

// OptionsFromConfig maps the parser and output sections of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		MaxDepth:         cfg.Parser.MaxNestingDepth,
		StripFrontmatter: cfg.Parser.StripFrontmatter,
		NormalizeUnicode: cfg.Parser.NormalizeUnicode,
		TrailingNewline:  cfg.Output.TrailingNewline,
	}
}
