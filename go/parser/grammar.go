/*
 * Grammar core: token cursor, statement dispatch and error recovery.
 *
 * Statement rules build their CST struct up front and fill fields as
 * tokens match, so when a rule fails midway the partially filled
 * statement is still returned to the caller alongside the syntax
 * error. A failure raises a parseFailure panic that unwinds to the
 * statement boundary, where the parser resynchronizes to the next
 * semicolon and carries on with the following statement. Nothing
 * escapes the parse call itself.
 */

package parser

import (
	"fmt"
	"log/slog"
	"strings"
)

// parseFailure unwinds a failed statement rule to the recovery point.
type parseFailure struct {
	err *ParseError
}

type grammar struct {
	input    string
	tokens   []Token
	pos      int
	errors   []*ParseError
	depth    int
	maxDepth int
	logger   *slog.Logger

	// stack holds the statement rules currently being built, outermost
	// first; stack[0] is the partial result kept on failure.
	stack []StatementCst
}

func newGrammar(input string, tokens []Token, opts *Options) *grammar {
	return &grammar{
		input:    input,
		tokens:   tokens,
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
}

// ---------------------------------------------------------------------------
// Token cursor
// ---------------------------------------------------------------------------

func (p *grammar) cur() Token {
	return p.tokens[p.pos]
}

func (p *grammar) peek(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

// next returns the current token and advances. The cursor never moves
// past the trailing EOF token.
func (p *grammar) next() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *grammar) at(kind TokenKind) bool {
	return p.cur().Kind == kind
}

func (p *grammar) atKw(kw Keyword) bool {
	return p.cur().IsKw(kw)
}

func (p *grammar) eat(kind TokenKind) (Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	return Token{}, false
}

func (p *grammar) eatKw(kw Keyword) (Token, bool) {
	if p.atKw(kw) {
		return p.next(), true
	}
	return Token{}, false
}

// ---------------------------------------------------------------------------
// Failure and expectation helpers
// ---------------------------------------------------------------------------

// fail raises a syntax error at the current token and unwinds to the
// statement boundary.
func (p *grammar) fail(format string, args ...any) {
	err := newParseError(ErrorSyntax, p.input, p.cur().Pos, fmt.Sprintf(format, args...))
	panic(parseFailure{err: err})
}

func (p *grammar) failExpected(what string) {
	tok := p.cur()
	if tok.Is(TokenEOF) {
		p.fail("expected %s", what)
	}
	p.fail("expected %s, found %q", what, tok.Text)
}

func (p *grammar) expect(kind TokenKind) Token {
	if !p.at(kind) {
		p.failExpected(kind.String())
	}
	return p.next()
}

func (p *grammar) expectKw(kw Keyword) Token {
	if !p.atKw(kw) {
		p.failExpected(strings.ToUpper(KeywordName(kw)))
	}
	return p.next()
}

func (p *grammar) expectIdentLike(what string) Token {
	if !p.cur().IdentLike() {
		p.failExpected(what)
	}
	return p.next()
}

// enter guards recursion depth; leave undoes it. The depth counter is
// reset wholesale when a failure unwinds to the statement boundary.
func (p *grammar) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.fail("nesting deeper than %d levels", p.maxDepth)
	}
}

func (p *grammar) leave() {
	p.depth--
}

// open registers a statement CST under construction so it survives a
// mid-rule failure.
func (p *grammar) open(stmt StatementCst) {
	p.stack = append(p.stack, stmt)
}

// ---------------------------------------------------------------------------
// Statement list and recovery
// ---------------------------------------------------------------------------

// parseStatements consumes the whole token stream. Empty statements
// produce no entries; a failed statement contributes its partial CST
// (when its rule got far enough to start one) plus one syntax error.
func (p *grammar) parseStatements() []StatementCst {
	var stmts []StatementCst
	for {
		for p.at(TokenSemicolon) {
			p.next()
		}
		if p.at(TokenEOF) {
			break
		}
		if stmt := p.parseStatementRecover(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *grammar) parseStatementRecover() (stmt StatementCst) {
	p.stack = p.stack[:0]
	p.depth = 0
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(parseFailure)
			if !ok {
				panic(r)
			}
			p.errors = append(p.errors, f.err)
			p.resync()
			if p.logger != nil {
				p.logger.Debug("statement resynchronized",
					"error", f.err.Message,
					"position", f.err.Position,
					"resumeOffset", p.cur().Pos)
			}
			if len(p.stack) > 0 {
				stmt = p.stack[0]
			}
		}
	}()
	stmt = p.parseStatement()
	if !p.at(TokenSemicolon) && !p.at(TokenEOF) {
		p.failExpected("';'")
	}
	return stmt
}

// resync skips to the next statement boundary.
func (p *grammar) resync() {
	for !p.at(TokenSemicolon) && !p.at(TokenEOF) {
		p.next()
	}
}

// parseStatement dispatches on the leading token. Anything that does
// not begin with a statement keyword is attempted as an implicit
// select, the dialect's from-first shorthand.
func (p *grammar) parseStatement() StatementCst {
	tok := p.cur()
	if tok.Kind == TokenKeyword {
		switch tok.Kw {
		case KwSelect, KwWith:
			return p.parseSelectWithSetOps()
		case KwInsert:
			return p.parseInsert()
		case KwUpdate:
			return p.parseUpdate()
		case KwCreate:
			return p.parseCreate()
		case KwAlter:
			return p.parseAlter()
		case KwDrop:
			return p.parseDrop()
		case KwRename:
			return p.parseRenameTable()
		case KwTruncate:
			return p.parseTruncateTable()
		case KwVacuum:
			return p.parseVacuum()
		case KwReindex:
			return p.parseReindex()
		case KwCheckpoint:
			return p.parseCheckpoint()
		case KwSnapshot:
			return p.parseSnapshot()
		case KwBackup:
			return p.parseBackup()
		case KwCopy:
			return p.parseCopy()
		case KwAdd:
			return p.parseAddUser()
		case KwRemove:
			return p.parseRemoveUser()
		case KwGrant:
			return p.parseGrant()
		case KwRevoke:
			return p.parseRevoke()
		case KwAssume:
			return p.parseAssume()
		case KwExit:
			return p.parseExit()
		case KwShow:
			return p.parseShow()
		case KwExplain:
			return p.parseExplain()
		}
	}
	return p.parseImplicitOrPivot()
}

// parseCreate fans out on the object keyword after CREATE.
func (p *grammar) parseCreate() StatementCst {
	switch p.peek(1).Kw {
	case KwTable:
		return p.parseCreateTable()
	case KwMaterialized:
		return p.parseCreateMatView()
	case KwView:
		return p.parseCreateView()
	case KwUser:
		return p.parseCreateUser()
	case KwGroup:
		return p.parseCreateGroup()
	case KwService:
		return p.parseCreateServiceAccount()
	}
	p.next()
	p.failExpected("TABLE, MATERIALIZED VIEW, VIEW, USER, GROUP or SERVICE ACCOUNT")
	return nil
}

// parseAlter fans out on the object keyword after ALTER.
func (p *grammar) parseAlter() StatementCst {
	switch p.peek(1).Kw {
	case KwTable:
		return p.parseAlterTable()
	case KwMaterialized:
		return p.parseAlterMatView()
	case KwUser, KwService:
		return p.parseAlterUser()
	}
	p.next()
	p.failExpected("TABLE, MATERIALIZED VIEW, USER or SERVICE ACCOUNT")
	return nil
}

// ---------------------------------------------------------------------------
// Shared name and type rules
// ---------------------------------------------------------------------------

// parseQualifiedName matches ident ('.' ident)*.
func (p *grammar) parseQualifiedName() *QualifiedNameCst {
	first := p.expectIdentLike("identifier")
	cst := &QualifiedNameCst{cstBase: cstBase{Start: first.Pos}}
	cst.Parts = append(cst.Parts, first)
	for p.at(TokenDot) {
		p.next()
		cst.Parts = append(cst.Parts, p.expectIdentLike("identifier"))
	}
	return cst
}

// parseTableName is parseQualifiedName relaxed to admit a single-quoted
// string as the whole name, the way table positions accept file-like
// names.
func (p *grammar) parseTableName() *QualifiedNameCst {
	if p.at(TokenString) {
		tok := p.next()
		cst := &QualifiedNameCst{cstBase: cstBase{Start: tok.Pos}}
		cst.Parts = append(cst.Parts, tok)
		return cst
	}
	return p.parseQualifiedName()
}

// parseIdentList matches ident (',' ident)* and returns the name
// tokens.
func (p *grammar) parseIdentList(what string) []Token {
	var out []Token
	out = append(out, p.expectIdentLike(what))
	for p.at(TokenComma) {
		p.next()
		out = append(out, p.expectIdentLike(what))
	}
	return out
}

// parseTypeName matches a type: name, optional parenthesized precision
// tokens, and trailing [] pairs for array types.
func (p *grammar) parseTypeName() *TypeNameCst {
	name := p.expectIdentLike("type name")
	cst := &TypeNameCst{cstBase: cstBase{Start: name.Pos}, Name: name}
	if p.at(TokenLParen) {
		p.next()
		for !p.at(TokenRParen) {
			if p.at(TokenEOF) {
				p.failExpected("')'")
			}
			if p.at(TokenComma) {
				p.next()
				continue
			}
			cst.PrecisionToks = append(cst.PrecisionToks, p.next())
		}
		p.next()
	}
	for p.at(TokenLBracket) && p.peek(1).Is(TokenRBracket) {
		cst.BracketToks = append(cst.BracketToks, p.next(), p.next())
	}
	return cst
}

// parseTtl matches TTL <number> <unit keyword> or TTL <duration>.
func (p *grammar) parseTtl() *TtlCst {
	ttlTok := p.expectKw(KwTtl)
	cst := &TtlCst{cstBase: cstBase{Start: ttlTok.Pos}, TtlTok: ttlTok}
	switch {
	case p.at(TokenDuration):
		cst.Value = p.next()
	case p.at(TokenNumber):
		cst.Value = p.next()
		switch p.cur().Kw {
		case KwHour, KwHours, KwDay, KwDays, KwWeek, KwWeeks,
			KwMonth, KwMonths, KwYear, KwYears:
			cst.UnitToks = append(cst.UnitToks, p.next())
		default:
			p.failExpected("retention unit")
		}
	default:
		p.failExpected("retention period")
	}
	return cst
}

// parsePartitionUnit matches the granularity keyword after
// PARTITION BY.
func (p *grammar) parsePartitionUnit() Token {
	switch p.cur().Kw {
	case KwNone, KwHour, KwDay, KwWeek, KwMonth, KwYear:
		return p.next()
	}
	p.failExpected("NONE, HOUR, DAY, WEEK, MONTH or YEAR")
	return Token{}
}
