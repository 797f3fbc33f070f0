package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError reports that no grammar rule could match the input at Pos.
type ParseError struct {
	Pos      int
	Line     int
	Col      int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s", e.Line, e.Col, e.Expected)
}

// DepthError reports that blockquote or inline nesting exceeded Limit.
type DepthError struct {
	Pos   int
	Line  int
	Col   int
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("nesting deeper than %d levels at line %d, column %d", e.Limit, e.Line, e.Col)
}

// lineCol converts a byte offset into 1-based line and rune column.
func lineCol(src string, pos int) (line, col int) {
	if pos > len(src) {
		pos = len(src)
	}
	if pos < 0 {
		pos = 0
	}
	before := src[:pos]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[lineStart:]) + 1
}

func (m *matcher) parseError(pos int, expected string) *ParseError {
	line, col := lineCol(m.src, pos)
	return &ParseError{Pos: pos, Line: line, Col: col, Expected: expected}
}

func (m *matcher) depthError(pos int) *DepthError {
	line, col := lineCol(m.src, pos)
	return &DepthError{Pos: pos, Line: line, Col: col, Limit: m.maxDepth}
}
