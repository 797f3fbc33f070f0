// Package frontmatter splits an optional YAML header off a markdown source.
package frontmatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// Block is the result of splitting a source into header and body.
type Block struct {
	// Raw is the YAML between the delimiters, without them.
	Raw string
	// Body is everything after the closing delimiter line.
	Body string
	// Had reports whether the source started with a header at all.
	Had bool
	// Lines is the number of source lines the header occupied, delimiters included.
	Lines int
}

// Split separates YAML frontmatter (`---` delimited) from the markdown body.
//
// If the source does not start with a delimiter line, Had is false and Body
// is the full input. A header that opens but never closes is an error.
func Split(src string) (Block, error) {
	first, rest, ok := cutLine(src)
	if !ok || first != "---" {
		return Block{Body: src}, nil
	}

	var raw strings.Builder
	lines := 1
	for rest != "" {
		line, next, _ := cutLine(rest)
		lines++
		if line == "---" {
			return Block{Raw: raw.String(), Body: next, Had: true, Lines: lines}, nil
		}
		raw.WriteString(line)
		raw.WriteByte('\n')
		rest = next
	}
	return Block{}, ErrMissingClosingDelimiter
}

// cutLine returns the first line of s without its terminator, and the remainder.
// ok is false when s has no line terminator.
func cutLine(s string) (line, rest string, ok bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return strings.TrimSuffix(s, "\r"), "", false
	}
	return strings.TrimSuffix(s[:i], "\r"), s[i+1:], true
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter string) (map[string]any, error) {
	if strings.TrimSpace(frontmatter) == "" {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ErrMissingClosingDelimiter indicates the source started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")
