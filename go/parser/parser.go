// Package parser implements the chronoql SQL dialect front end: a
// lexer, a recovering statement grammar producing concrete syntax
// trees, and a visitor lowering them to the typed AST in package ast.
//
// The three entry points expose successive pipeline stages. Tokenize
// stops after the lexer. Parse adds the grammar and returns one CST
// per statement together with every lexical and syntax error; a
// statement that failed midway is returned as a partial CST. ParseToAST
// runs the visitor on top and returns only the statements that lowered
// cleanly. All entry points are safe for concurrent use.
package parser

import (
	"log/slog"

	"github.com/chronoql/chronoql/go/parser/ast"
)

// DefaultMaxDepth bounds expression and statement nesting when the
// caller does not set an explicit limit.
const DefaultMaxDepth = 200

// Options tunes a parse. A zero field means its default.
type Options struct {
	// MaxDepth bounds grammar recursion. Input nesting deeper than
	// this fails with a syntax error on the offending statement.
	MaxDepth int

	// Logger receives debug records for lexical errors, statement
	// resynchronization and statements dropped during lowering. Nil
	// disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when the caller passes nil.
func DefaultOptions() *Options {
	return &Options{MaxDepth: DefaultMaxDepth}
}

func normalizeOptions(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	out := *opts
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	return &out
}

// Tokenize runs only the lexer. The returned token slice always ends
// with an EOF token, even for empty input.
func Tokenize(sql string) ([]Token, []*ParseError) {
	return tokenize(sql)
}

// Parse runs the lexer and grammar, returning one CST per statement
// plus all accumulated errors, lexical before syntax.
func Parse(sql string) ([]StatementCst, []*ParseError) {
	return ParseWithOptions(sql, nil)
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(sql string, opts *Options) ([]StatementCst, []*ParseError) {
	opts = normalizeOptions(opts)
	tokens, errs := tokenize(sql)
	if opts.Logger != nil {
		for _, e := range errs {
			opts.Logger.Debug("lexical error",
				"position", e.Position,
				"error", e.Message)
		}
	}
	g := newGrammar(sql, tokens, opts)
	stmts := g.parseStatements()
	return stmts, append(errs, g.errors...)
}

// ParseToAST runs the full pipeline. Statements whose CST was left
// incomplete by a syntax error are dropped from the result; their
// errors remain in the returned list.
func ParseToAST(sql string) ([]ast.Statement, []*ParseError) {
	return ParseToASTWithOptions(sql, nil)
}

// ParseToASTWithOptions is ParseToAST with explicit options.
func ParseToASTWithOptions(sql string, opts *Options) ([]ast.Statement, []*ParseError) {
	opts = normalizeOptions(opts)
	csts, errs := ParseWithOptions(sql, opts)
	v := &visitor{logger: opts.Logger}
	return v.visitStatements(csts), errs
}
