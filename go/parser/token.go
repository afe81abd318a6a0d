/*
 * Token definitions for the chronoql lexer.
 *
 * Tokens carry their raw source text and byte offset; string-like tokens
 * additionally carry the unescaped value. Keyword tokens share one kind
 * and are distinguished by the Kw field.
 */

package parser

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenEOF

	TokenIdent       // bare identifier
	TokenQuotedIdent // "double quoted" identifier
	TokenString      // 'single quoted' string
	TokenNumber      // numeric literal, suffix included
	TokenDuration    // interval literal such as 5m or 1.5d
	TokenGeohash     // #chars[/bits] or ##bits
	TokenVariable    // @name bind variable
	TokenKeyword     // dialect keyword, see Kw

	TokenSemicolon
	TokenComma
	TokenDot
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenColon

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenEq
	TokenNeq // != and <>
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenTilde
	TokenNotTilde // !~
	TokenTildeEq  // ~=
	TokenAmp
	TokenPipe
	TokenCaret
	TokenConcat   // ||
	TokenLShift   // <<
	TokenLShiftEq // <<=
	TokenRShift   // >>
	TokenRShiftEq // >>=
	TokenCastOp   // ::
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid:     "invalid",
	TokenEOF:         "EOF",
	TokenIdent:       "identifier",
	TokenQuotedIdent: "quoted identifier",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenDuration:    "duration",
	TokenGeohash:     "geohash",
	TokenVariable:    "variable",
	TokenKeyword:     "keyword",
	TokenSemicolon:   "';'",
	TokenComma:       "','",
	TokenDot:         "'.'",
	TokenLParen:      "'('",
	TokenRParen:      "')'",
	TokenLBracket:    "'['",
	TokenRBracket:    "']'",
	TokenColon:       "':'",
	TokenPlus:        "'+'",
	TokenMinus:       "'-'",
	TokenStar:        "'*'",
	TokenSlash:       "'/'",
	TokenPercent:     "'%'",
	TokenEq:          "'='",
	TokenNeq:         "'!='",
	TokenLt:          "'<'",
	TokenLe:          "'<='",
	TokenGt:          "'>'",
	TokenGe:          "'>='",
	TokenTilde:       "'~'",
	TokenNotTilde:    "'!~'",
	TokenTildeEq:     "'~='",
	TokenAmp:         "'&'",
	TokenPipe:        "'|'",
	TokenCaret:       "'^'",
	TokenConcat:      "'||'",
	TokenLShift:      "'<<'",
	TokenLShiftEq:    "'<<='",
	TokenRShift:      "'>>'",
	TokenRShiftEq:    "'>>='",
	TokenCastOp:      "'::'",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexed unit of input.
type Token struct {
	Kind TokenKind
	Kw   Keyword // valid when Kind is TokenKeyword
	Text string  // raw source text
	Val  string  // unescaped value for strings, quoted identifiers and variables
	Pos  int     // byte offset into the input
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind TokenKind) bool {
	return t.Kind == kind
}

// IsKw reports whether the token is the given keyword.
func (t Token) IsKw(kw Keyword) bool {
	return t.Kind == TokenKeyword && t.Kw == kw
}

// IdentLike reports whether the token can stand in identifier position:
// identifiers, quoted identifiers and non-reserved keywords.
func (t Token) IdentLike() bool {
	switch t.Kind {
	case TokenIdent, TokenQuotedIdent:
		return true
	case TokenKeyword:
		return !keywordInfos[t.Kw].Reserved
	}
	return false
}

// IdentValue returns the identifier text the token stands for: the
// unescaped value for quoted identifiers, the raw text otherwise.
func (t Token) IdentValue() string {
	if t.Kind == TokenQuotedIdent {
		return t.Val
	}
	return t.Text
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenKeyword:
		return fmt.Sprintf("%s@%d", t.Text, t.Pos)
	default:
		return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Text, t.Pos)
	}
}
