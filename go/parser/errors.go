/*
 * Error reporting for the chronoql parser.
 *
 * Lexical and syntax errors share one type so callers get a single
 * ordered list per parse. Every error carries the byte offset it was
 * raised at plus the derived line and column, and a snippet of the
 * input near the failure.
 */

package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorClass separates tokenizer failures from grammar failures.
type ErrorClass int

const (
	ErrorLexical ErrorClass = iota
	ErrorSyntax
)

func (c ErrorClass) String() string {
	if c == ErrorLexical {
		return "lexical"
	}
	return "syntax"
}

// ParseError is one diagnostic produced while parsing. Errors never
// abort the pipeline; they accumulate while parsing continues with the
// next statement.
type ParseError struct {
	Class    ErrorClass
	Message  string
	Position int    // byte offset into the input
	Line     int    // 1-based
	Column   int    // 1-based, in runes from the line start
	NearText string // input snippet starting at Position
	AtEOF    bool   // error raised at end of input
}

// Error formats the diagnostic with its source position.
func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s error at line %d, column %d: %s", e.Class, e.Line, e.Column, e.Message)
	if e.AtEOF {
		sb.WriteString(" at end of input")
	} else if e.NearText != "" {
		fmt.Fprintf(&sb, " near %q", e.NearText)
	}
	return sb.String()
}

// newParseError builds an error at the given offset, deriving line,
// column and near text from the input.
func newParseError(class ErrorClass, input string, pos int, message string) *ParseError {
	if pos > len(input) {
		pos = len(input)
	}
	line, column := CalculateLineColumn(input, pos)
	return &ParseError{
		Class:    class,
		Message:  message,
		Position: pos,
		Line:     line,
		Column:   column,
		NearText: sanitizeNearText(input, pos),
		AtEOF:    pos >= len(input),
	}
}

// CalculateLineColumn converts a byte offset to a 1-based line and
// column pair. Columns count runes, not bytes.
func CalculateLineColumn(input string, position int) (line, column int) {
	if position > len(input) {
		position = len(input)
	}
	line = 1
	column = 1
	for i := 0; i < position; i++ {
		if input[i] == '\n' {
			line++
			column = 1
		} else if utf8.RuneStart(input[i]) {
			column++
		}
	}
	return line, column
}

// maxNearTextLen bounds the snippet included in error messages.
const maxNearTextLen = 20

// sanitizeNearText extracts a short single-line snippet starting at pos.
func sanitizeNearText(input string, pos int) string {
	if pos >= len(input) {
		return ""
	}
	rest := input[pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > maxNearTextLen {
		return rest[:maxNearTextLen] + "..."
	}
	return rest
}
