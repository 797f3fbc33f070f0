package config

// Default values.
const (
	DefaultMaxNestingDepth = 32
	MaxNestingDepthLimit   = 1024
	DefaultServerAddr      = ":8080"
	DefaultMaxBodyBytes    = 1 << 20
)

// DefaultApplier applies defaults for a specific configuration domain.
//
// raw is the decoded YAML document, used to tell an explicit false apart
// from an absent key. It is nil when there was no file.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config, raw map[string]any)
	Domain() string
}

// ParserDefaultApplier handles Parser configuration defaults.
type ParserDefaultApplier struct{}

func (ParserDefaultApplier) Domain() string { return "parser" }

func (ParserDefaultApplier) ApplyDefaults(cfg *Config, _ map[string]any) {
	if cfg.Parser.MaxNestingDepth == 0 {
		cfg.Parser.MaxNestingDepth = DefaultMaxNestingDepth
	}
}

// OutputDefaultApplier handles Output configuration defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config, raw map[string]any) {
	if !isSet(raw, "output", "trailing_newline") {
		cfg.Output.TrailingNewline = true
	}
}

// LoggingDefaultApplier normalizes level and format names.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config, _ map[string]any) {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

// ServerDefaultApplier handles Server configuration defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config, raw map[string]any) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if !isSet(raw, "server", "metrics") {
		cfg.Server.Metrics = true
	}
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		ParserDefaultApplier{},
		OutputDefaultApplier{},
		LoggingDefaultApplier{},
		ServerDefaultApplier{},
	}
}

func applyDefaults(cfg *Config, raw map[string]any) {
	for _, a := range defaultAppliers() {
		a.ApplyDefaults(cfg, raw)
	}
}

func isSet(raw map[string]any, section, key string) bool {
	m, ok := raw[section].(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}
