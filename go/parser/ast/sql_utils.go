/*
 * SQL utility functions for deparsing.
 *
 * Identifier and literal quoting rules used by the SqlString methods.
 * Identifiers are emitted bare whenever the dialect would read them back
 * unchanged, and double-quoted otherwise.
 */

package ast

import (
	"regexp"
	"strings"
)

var (
	// Bare identifiers start with a letter or underscore and continue with
	// letters, digits, underscores or dollar signs.
	sqlIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*$`)

	// Reserved words always need quoting when used as identifiers.
	reservedKeywords = map[string]bool{
		"all": true, "and": true, "as": true, "asc": true, "asof": true,
		"between": true, "by": true, "case": true, "cast": true, "create": true,
		"cross": true, "desc": true, "distinct": true, "else": true, "end": true,
		"except": true, "false": true, "fill": true, "from": true, "group": true,
		"ilike": true, "in": true, "inner": true, "insert": true, "intersect": true,
		"into": true, "is": true, "join": true, "latest": true, "left": true,
		"like": true, "limit": true, "lt": true, "natural": true, "not": true,
		"null": true, "on": true, "or": true, "order": true, "outer": true,
		"over": true, "sample": true, "select": true, "splice": true, "table": true,
		"then": true, "true": true, "union": true, "update": true, "values": true,
		"when": true, "where": true, "with": true, "within": true,
	}
)

// QuoteIdentifier quotes an identifier when it could not be read back
// bare: empty, non-identifier characters, or a reserved word. Unlike
// PostgreSQL the dialect does not fold case, so mixed-case names stay
// unquoted.
func QuoteIdentifier(name string) string {
	needsQuoting := !sqlIdentifierRegex.MatchString(name)
	if reservedKeywords[strings.ToLower(name)] {
		needsQuoting = true
	}

	if needsQuoting {
		escaped := strings.ReplaceAll(name, `"`, `""`)
		return `"` + escaped + `"`
	}
	return name
}

// QuoteStringLiteral renders a string literal, doubling embedded single
// quotes.
func QuoteStringLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `'`, `''`)
	return `'` + escaped + `'`
}

// FormatQualifiedName joins name parts with dots, quoting each part as
// needed. Empty parts are skipped.
func FormatQualifiedName(parts ...string) string {
	var quotedParts []string
	for _, part := range parts {
		if part != "" {
			quotedParts = append(quotedParts, QuoteIdentifier(part))
		}
	}
	return strings.Join(quotedParts, ".")
}

// FormatColumnList quotes and comma-joins a list of column names.
func FormatColumnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}
