package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds strips the trailing EOF token and returns the remaining kinds.
func kinds(t *testing.T, sql string) []TokenKind {
	t.Helper()
	tokens, errs := Tokenize(sql)
	require.Empty(t, errs, "unexpected lexical errors for %q", sql)
	require.NotEmpty(t, tokens)
	require.Equal(t, TokenEOF, tokens[len(tokens)-1].Kind, "token stream must end with EOF")
	out := make([]TokenKind, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeBasicStatement(t *testing.T) {
	tokens, errs := Tokenize("SELECT price FROM trades;")
	require.Empty(t, errs)
	require.Len(t, tokens, 6)

	assert.True(t, tokens[0].IsKw(KwSelect), "SELECT should lex as keyword")
	assert.Equal(t, TokenIdent, tokens[1].Kind)
	assert.Equal(t, "price", tokens[1].Text)
	assert.True(t, tokens[2].IsKw(KwFrom))
	assert.Equal(t, TokenIdent, tokens[3].Kind)
	assert.Equal(t, TokenSemicolon, tokens[4].Kind)
	assert.Equal(t, TokenEOF, tokens[5].Kind)
	assert.Equal(t, len("SELECT price FROM trades;"), tokens[5].Pos, "EOF sits at end of input")
}

func TestTokenizeKeywordCase(t *testing.T) {
	tokens, errs := Tokenize("select SeLeCt SELECT")
	require.Empty(t, errs)
	require.Len(t, tokens, 4)
	for i := 0; i < 3; i++ {
		assert.True(t, tokens[i].IsKw(KwSelect), "keyword match is case insensitive")
	}
	assert.Equal(t, "SeLeCt", tokens[1].Text, "raw text keeps source casing")
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		kind TokenKind
		text string
	}{
		{"integer", "42", TokenNumber, "42"},
		{"decimal", "3.25", TokenNumber, "3.25"},
		{"underscore separators", "1_000_000", TokenNumber, "1_000_000"},
		{"exponent", "1e10", TokenNumber, "1e10"},
		{"signed exponent", "2.5e-3", TokenNumber, "2.5e-3"},
		{"long suffix", "100L", TokenNumber, "100L"},
		{"lowercase long suffix", "7l", TokenNumber, "7l"},
		{"decimal suffix after underscores", "1_000m", TokenNumber, "1_000m"},
		{"decimal suffix after exponent", "1e3m", TokenNumber, "1e3m"},
		{"seconds", "30s", TokenDuration, "30s"},
		{"minutes", "5m", TokenDuration, "5m"},
		{"hours", "2h", TokenDuration, "2h"},
		{"days", "1.5d", TokenDuration, "1.5d"},
		{"weeks", "3w", TokenDuration, "3w"},
		{"months", "6M", TokenDuration, "6M"},
		{"years", "1y", TokenDuration, "1y"},
		{"milliseconds", "250T", TokenDuration, "250T"},
		{"microseconds", "500U", TokenDuration, "500U"},
		{"nanoseconds", "10n", TokenDuration, "10n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Tokenize(tt.sql)
			require.Empty(t, errs)
			require.Len(t, tokens, 2, "expected a single token plus EOF")
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.text, tokens[0].Text)
		})
	}
}

// A digit run followed by a bare dot lexes as one number token, so the
// dot is not available to start a qualified name.
func TestTokenizeTrailingDotNumber(t *testing.T) {
	tokens, errs := Tokenize("1.")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenNumber, tokens[0].Kind)
	assert.Equal(t, "1.", tokens[0].Text)
}

// A unit letter followed by more identifier characters is not a
// duration, so 5sec splits into a number and an identifier.
func TestTokenizeDurationUnitBoundary(t *testing.T) {
	tokens, errs := Tokenize("5sec")
	require.Empty(t, errs)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenNumber, tokens[0].Kind)
	assert.Equal(t, "5", tokens[0].Text)
	assert.Equal(t, TokenIdent, tokens[1].Kind)
	assert.Equal(t, "sec", tokens[1].Text)
}

func TestTokenizeStrings(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		val  string
	}{
		{"plain", "'hello'", "hello"},
		{"empty", "''", ""},
		{"doubled quote", "'it''s'", "it's"},
		{"embedded double quote", `'say "hi"'`, `say "hi"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Tokenize(tt.sql)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenString, tokens[0].Kind)
			assert.Equal(t, tt.val, tokens[0].Val, "Val carries the unescaped content")
			assert.Equal(t, tt.sql, tokens[0].Text, "Text carries the raw literal")
		})
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens, errs := Tokenize("'abc")
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorLexical, errs[0].Class)
	assert.Equal(t, "unterminated string literal", errs[0].Message)
	assert.Equal(t, 0, errs[0].Position)
	// The partial token is still emitted so the grammar sees the text.
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, "abc", tokens[0].Val)
}

func TestTokenizeQuotedIdentifiers(t *testing.T) {
	tokens, errs := Tokenize(`"my table" "a""b"`)
	require.Empty(t, errs)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenQuotedIdent, tokens[0].Kind)
	assert.Equal(t, "my table", tokens[0].Val)
	assert.Equal(t, `a"b`, tokens[1].Val, "doubled quote unescapes")

	_, errs = Tokenize(`"abc`)
	require.Len(t, errs, 1)
	assert.Equal(t, "unterminated quoted identifier", errs[0].Message)
}

func TestTokenizeGeohash(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		text string
	}{
		{"base32", "#u33d8b12", "#u33d8b12"},
		{"with bit precision", "#u33/25", "#u33/25"},
		{"binary", "##10110", "##10110"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Tokenize(tt.sql)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenGeohash, tokens[0].Kind)
			assert.Equal(t, tt.text, tokens[0].Text)
		})
	}

	_, errs := Tokenize("#")
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid geohash literal", errs[0].Message)

	_, errs = Tokenize("##")
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid binary geohash literal", errs[0].Message)
}

func TestTokenizeBindVariables(t *testing.T) {
	tokens, errs := Tokenize("@symbol")
	require.Empty(t, errs)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenVariable, tokens[0].Kind)
	assert.Equal(t, "symbol", tokens[0].Val, "Val excludes the at sign")

	_, errs = Tokenize("@ x")
	require.Len(t, errs, 1)
	assert.Equal(t, "incomplete bind variable", errs[0].Message)
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		sql  string
		kind TokenKind
	}{
		{"<", TokenLt},
		{"<=", TokenLe},
		{"<<", TokenLShift},
		{"<<=", TokenLShiftEq},
		{"<>", TokenNeq},
		{">", TokenGt},
		{">=", TokenGe},
		{">>", TokenRShift},
		{">>=", TokenRShiftEq},
		{"!=", TokenNeq},
		{"!~", TokenNotTilde},
		{"~", TokenTilde},
		{"~=", TokenTildeEq},
		{"::", TokenCastOp},
		{":", TokenColon},
		{"||", TokenConcat},
		{"|", TokenPipe},
		{"&", TokenAmp},
		{"^", TokenCaret},
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"%", TokenPercent},
		{"=", TokenEq},
		{"(", TokenLParen},
		{")", TokenRParen},
		{"[", TokenLBracket},
		{"]", TokenRBracket},
		{",", TokenComma},
		{".", TokenDot},
		{";", TokenSemicolon},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			tokens, errs := Tokenize(tt.sql)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.sql, tokens[0].Text, "operator text preserves the source spelling")
		})
	}
}

func TestTokenizeComments(t *testing.T) {
	assert.Equal(t,
		[]TokenKind{TokenKeyword, TokenNumber, TokenPlus, TokenNumber},
		kinds(t, "SELECT /* block\ncomment */ 1 -- rest of line\n+ 2"),
		"comments vanish from the token stream")

	_, errs := Tokenize("SELECT 1 /* open")
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorLexical, errs[0].Class)
	assert.Equal(t, "unterminated block comment", errs[0].Message)
	assert.Equal(t, 9, errs[0].Position)
}

func TestTokenizeUnexpectedCharacters(t *testing.T) {
	_, errs := Tokenize("!")
	require.Len(t, errs, 1)
	assert.Equal(t, "unexpected character '!'", errs[0].Message)

	tokens, errs := Tokenize("a ? b")
	require.Len(t, errs, 1)
	assert.Equal(t, "unexpected character '?'", errs[0].Message)
	// Lexing resumes after the bad byte.
	require.Len(t, tokens, 3)
	assert.Equal(t, "a", tokens[0].Text)
	assert.Equal(t, "b", tokens[1].Text)
}

func TestTokenizePositions(t *testing.T) {
	tokens, errs := Tokenize("SELECT  ts\nFROM trades")
	require.Empty(t, errs)
	require.Len(t, tokens, 5)
	assert.Equal(t, 0, tokens[0].Pos)
	assert.Equal(t, 8, tokens[1].Pos)
	assert.Equal(t, 11, tokens[2].Pos)
	assert.Equal(t, 16, tokens[3].Pos)
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens, errs := Tokenize("")
	require.Empty(t, errs)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
	assert.Equal(t, 0, tokens[0].Pos)

	tokens, errs = Tokenize("   \n\t  ")
	require.Empty(t, errs)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
}
