/*
 * Lexer for the chronoql dialect.
 *
 * Single pass over the input producing the full token slice. Lexical
 * errors never stop the scan: the offending input is skipped, an error
 * is recorded and scanning resumes, so the parser always receives an
 * EOF-terminated token stream.
 *
 * Number literals admit underscore separators and the L (long) and
 * m (decimal) suffixes. A duration literal is digits with an optional
 * fraction plus a single unit letter; when both readings are possible,
 * as in "1m", the duration wins. The number scan accepts a bare
 * trailing dot, so "1." lexes as one number token.
 */

package parser

// durationUnits holds the single-letter interval suffixes:
// seconds, minutes, hours, days, weeks, months, years, millis,
// micros and nanos.
const durationUnits = "smhHdwMyTUunN"

type lexer struct {
	input  string
	pos    int
	tokens []Token
	errors []*ParseError
}

// tokenize scans the whole input. The returned slice always ends with
// an EOF token.
func tokenize(input string) ([]Token, []*ParseError) {
	l := &lexer{input: input}
	l.run()
	return l.tokens, l.errors
}

func (l *lexer) run() {
	for {
		l.skipSpaceAndComments()
		if l.pos >= len(l.input) {
			break
		}
		start := l.pos
		c := l.input[l.pos]
		switch {
		case isDigit(c):
			l.scanNumberOrDuration()
		case isIdentStart(c):
			l.scanWord()
		case c == '\'':
			l.scanString()
		case c == '"':
			l.scanQuotedIdent()
		case c == '#':
			l.scanGeohash()
		case c == '@':
			l.scanVariable()
		default:
			l.scanOperator()
		}
		if l.pos == start {
			// A scanner that consumed nothing must not stall the loop.
			l.pos++
		}
	}
	l.emit(Token{Kind: TokenEOF, Pos: len(l.input)})
}

func (l *lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) errorAt(pos int, message string) {
	l.errors = append(l.errors, newParseError(ErrorLexical, l.input, pos, message))
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '-' && l.peekAt(l.pos+1) == '-':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekAt(l.pos+1) == '*':
			start := l.pos
			l.pos += 2
			for {
				if l.pos+1 >= len(l.input) {
					l.errorAt(start, "unterminated block comment")
					l.pos = len(l.input)
					break
				}
				if l.input[l.pos] == '*' && l.input[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) peekAt(pos int) byte {
	if pos < len(l.input) {
		return l.input[pos]
	}
	return 0
}

// tryDuration matches digits ('.' digits)? unit at l.pos and returns
// the end offset, or -1 when the input there is not a duration. The
// unit letter must not be followed by another identifier character.
func (l *lexer) tryDuration() int {
	i := l.pos
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i == l.pos {
		return -1
	}
	if i < len(l.input) && l.input[i] == '.' {
		j := i + 1
		for j < len(l.input) && isDigit(l.input[j]) {
			j++
		}
		if j == i+1 {
			return -1
		}
		i = j
	}
	if i >= len(l.input) || !isDurationUnit(l.input[i]) {
		return -1
	}
	i++
	if i < len(l.input) && isIdentCont(l.input[i]) {
		return -1
	}
	return i
}

func (l *lexer) scanNumberOrDuration() {
	start := l.pos
	if end := l.tryDuration(); end >= 0 {
		l.emit(Token{Kind: TokenDuration, Text: l.input[start:end], Pos: start})
		l.pos = end
		return
	}

	// Integer part with optional underscore separators.
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
		l.pos++
	}
	// Fraction; the digits after the dot are optional, so a trailing
	// bare dot is taken into the number token.
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.pos++
		}
	}
	// Exponent.
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		i := l.pos + 1
		if i < len(l.input) && (l.input[i] == '+' || l.input[i] == '-') {
			i++
		}
		if i < len(l.input) && isDigit(l.input[i]) {
			for i < len(l.input) && isDigit(l.input[i]) {
				i++
			}
			l.pos = i
		}
	}
	// Long or decimal suffix.
	if l.pos < len(l.input) {
		switch l.input[l.pos] {
		case 'L', 'l', 'm':
			l.pos++
		}
	}
	l.emit(Token{Kind: TokenNumber, Text: l.input[start:l.pos], Pos: start})
}

func (l *lexer) scanWord() {
	start := l.pos
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]
	if kw, ok := LookupKeyword(text); ok {
		l.emit(Token{Kind: TokenKeyword, Kw: kw, Text: text, Pos: start})
		return
	}
	l.emit(Token{Kind: TokenIdent, Text: text, Pos: start})
}

func (l *lexer) scanString() {
	start := l.pos
	l.pos++ // opening quote
	var val []byte
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\'' {
			if l.peekAt(l.pos+1) == '\'' {
				val = append(val, '\'')
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(Token{Kind: TokenString, Text: l.input[start:l.pos], Val: string(val), Pos: start})
			return
		}
		val = append(val, c)
		l.pos++
	}
	l.errorAt(start, "unterminated string literal")
	l.emit(Token{Kind: TokenString, Text: l.input[start:], Val: string(val), Pos: start})
}

func (l *lexer) scanQuotedIdent() {
	start := l.pos
	l.pos++ // opening quote
	var val []byte
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '"' {
			if l.peekAt(l.pos+1) == '"' {
				val = append(val, '"')
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(Token{Kind: TokenQuotedIdent, Text: l.input[start:l.pos], Val: string(val), Pos: start})
			return
		}
		val = append(val, c)
		l.pos++
	}
	l.errorAt(start, "unterminated quoted identifier")
	l.emit(Token{Kind: TokenQuotedIdent, Text: l.input[start:], Val: string(val), Pos: start})
}

func (l *lexer) scanGeohash() {
	start := l.pos
	l.pos++ // '#'
	if l.peekAt(l.pos) == '#' {
		l.pos++
		digits := 0
		for l.pos < len(l.input) && (l.input[l.pos] == '0' || l.input[l.pos] == '1') {
			l.pos++
			digits++
		}
		if digits == 0 {
			l.errorAt(start, "invalid binary geohash literal")
			return
		}
		l.emit(Token{Kind: TokenGeohash, Text: l.input[start:l.pos], Pos: start})
		return
	}
	chars := 0
	for l.pos < len(l.input) && isGeohashChar(l.input[l.pos]) {
		l.pos++
		chars++
	}
	if chars == 0 {
		l.errorAt(start, "invalid geohash literal")
		return
	}
	// Optional /bits precision.
	if l.peekAt(l.pos) == '/' && isDigit(l.peekAt(l.pos+1)) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	l.emit(Token{Kind: TokenGeohash, Text: l.input[start:l.pos], Pos: start})
}

func (l *lexer) scanVariable() {
	start := l.pos
	l.pos++ // '@'
	if l.pos >= len(l.input) || !isIdentStart(l.input[l.pos]) {
		l.errorAt(start, "incomplete bind variable")
		return
	}
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	l.emit(Token{Kind: TokenVariable, Text: l.input[start:l.pos], Val: l.input[start+1 : l.pos], Pos: start})
}

func (l *lexer) scanOperator() {
	start := l.pos
	c := l.input[l.pos]

	two := func(kind TokenKind, length int) {
		l.emit(Token{Kind: kind, Text: l.input[start : start+length], Pos: start})
		l.pos += length
	}

	switch c {
	case '<':
		switch {
		case l.peekAt(l.pos+1) == '<' && l.peekAt(l.pos+2) == '=':
			two(TokenLShiftEq, 3)
		case l.peekAt(l.pos+1) == '<':
			two(TokenLShift, 2)
		case l.peekAt(l.pos+1) == '=':
			two(TokenLe, 2)
		case l.peekAt(l.pos+1) == '>':
			two(TokenNeq, 2)
		default:
			two(TokenLt, 1)
		}
	case '>':
		switch {
		case l.peekAt(l.pos+1) == '>' && l.peekAt(l.pos+2) == '=':
			two(TokenRShiftEq, 3)
		case l.peekAt(l.pos+1) == '>':
			two(TokenRShift, 2)
		case l.peekAt(l.pos+1) == '=':
			two(TokenGe, 2)
		default:
			two(TokenGt, 1)
		}
	case '!':
		switch l.peekAt(l.pos + 1) {
		case '=':
			two(TokenNeq, 2)
		case '~':
			two(TokenNotTilde, 2)
		default:
			l.errorAt(start, "unexpected character '!'")
			l.pos++
		}
	case '~':
		if l.peekAt(l.pos+1) == '=' {
			two(TokenTildeEq, 2)
		} else {
			two(TokenTilde, 1)
		}
	case ':':
		if l.peekAt(l.pos+1) == ':' {
			two(TokenCastOp, 2)
		} else {
			two(TokenColon, 1)
		}
	case '|':
		if l.peekAt(l.pos+1) == '|' {
			two(TokenConcat, 2)
		} else {
			two(TokenPipe, 1)
		}
	case '+':
		two(TokenPlus, 1)
	case '-':
		two(TokenMinus, 1)
	case '*':
		two(TokenStar, 1)
	case '/':
		two(TokenSlash, 1)
	case '%':
		two(TokenPercent, 1)
	case '=':
		two(TokenEq, 1)
	case '&':
		two(TokenAmp, 1)
	case '^':
		two(TokenCaret, 1)
	case '(':
		two(TokenLParen, 1)
	case ')':
		two(TokenRParen, 1)
	case '[':
		two(TokenLBracket, 1)
	case ']':
		two(TokenRBracket, 1)
	case ',':
		two(TokenComma, 1)
	case '.':
		two(TokenDot, 1)
	case ';':
		two(TokenSemicolon, 1)
	default:
		l.errorAt(start, "unexpected character "+quoteByte(c))
		l.pos++
	}
}

func quoteByte(c byte) string {
	if c >= 0x20 && c < 0x7f {
		return "'" + string(c) + "'"
	}
	return "0x" + hexDigits(c)
}

func hexDigits(c byte) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[c>>4], hex[c&0x0f]})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func isDurationUnit(c byte) bool {
	for i := 0; i < len(durationUnits); i++ {
		if durationUnits[i] == c {
			return true
		}
	}
	return false
}

// isGeohashChar reports membership in the geohash base32 alphabet,
// which drops a, i, l and o.
func isGeohashChar(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if c < 'a' || c > 'z' {
		return false
	}
	return c != 'a' && c != 'i' && c != 'l' && c != 'o'
}
