// Package lexer tokenizes BASIC lines, both as typed ASCII and in the
// compacted form stored in program text.
//
// In compacted form every keyword and operator is the single byte 0x80|token,
// and numeric literals are a tag byte (TagInteger, TagLong or TagReal)
// followed by their little-endian encoding. Identifiers, string literals and
// REM remarks stay verbatim. A Lexer reads either form, or a mix.
package lexer

import (
	"math"
	"strconv"

	"github.com/jcorbin/gobasic/internal/value"
)

// Literal tag bytes of the compacted form.
const (
	TagInteger = 0x01
	TagLong    = 0x02
	TagReal    = 0x03

	tokenBit = 0x80
)

// keywordTable holds every keyword, sorted, back to back; the last byte of
// each entry has its high bit set.
var keywordTable []byte

func init() {
	for _, name := range keywordNames {
		keywordTable = append(keywordTable, name...)
		keywordTable[len(keywordTable)-1] |= tokenBit
	}
}

// matchKeyword returns the longest keyword prefixing b, compared without
// regard to case, and its length.
func matchKeyword(b []byte) (Token, int) {
	best, bestLen := NoToken, 0
	tok := firstKeyword
	for i := 0; i < len(keywordTable); tok++ {
		j, n := i, 0
		matched := true
		for {
			c := keywordTable[j]
			last := c&tokenBit != 0
			c &^= tokenBit
			if matched && (n >= len(b) || upper(b[n]) != c) {
				matched = false
			}
			j++
			n++
			if last {
				break
			}
		}
		if matched && n > bestLen {
			best, bestLen = tok, n
		}
		i = j
	}
	return best, bestLen
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isAlpha(c byte) bool { c = upper(c); return 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Lexer scans one line at a time.
type Lexer struct {
	// Reals enables real literals and makes unsuffixed identifiers Real.
	Reals bool

	// Longs enables long integer literals and the "%%" sigil.
	Longs bool

	line  []byte
	pos   int
	start int
	tok   Token
	val   value.Value
	id    []byte
}

// Init starts scanning line from its beginning.
func (l *Lexer) Init(line []byte) { l.InitAt(line, 0) }

// InitAt starts scanning line from offset pos.
func (l *Lexer) InitAt(line []byte, pos int) {
	l.line = line
	l.pos = pos
	l.start = pos
	l.tok = NoToken
	l.val = value.Value{}
	l.id = l.id[:0]
}

// Token returns the current token: EOL at end of line, NoToken after a
// lexical error.
func (l *Lexer) Token() Token { return l.tok }

// Value returns the value of the current numeric literal.
func (l *Lexer) Value() value.Value { return l.val }

// ID returns the upper-cased name of the current identifier, or the contents
// of the current string literal. It is only valid until the next call to Next.
func (l *Lexer) ID() []byte { return l.id }

// Pos returns the offset just past the current token.
func (l *Lexer) Pos() int { return l.pos }

// Start returns the offset of the current token.
func (l *Lexer) Start() int { return l.start }

// Line returns the line being scanned.
func (l *Lexer) Line() []byte { return l.line }

// Rest consumes and returns the remainder of the line, used for REM text.
func (l *Lexer) Rest() []byte {
	rest := l.line[l.pos:]
	l.pos = len(l.line)
	return rest
}

// Next scans the next token, returning false at end of line or on a lexical
// error; Token tells which.
func (l *Lexer) Next() bool {
	l.val = value.Value{}
	l.id = l.id[:0]
	for l.pos < len(l.line) && l.line[l.pos] == ' ' {
		l.pos++
	}
	l.start = l.pos
	if l.pos >= len(l.line) {
		l.tok = EOL
		return false
	}
	c := l.line[l.pos]
	switch {
	case c&tokenBit != 0:
		l.tok = Token(c &^ tokenBit)
		l.pos++
		if !l.tok.IsKeyword() && !l.tok.IsOperator() {
			l.tok = NoToken
		}
	case c == TagInteger || c == TagLong || c == TagReal:
		l.scanTagged(c)
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.line) && isDigit(l.line[l.pos+1])):
		l.scanNumber()
	case c == '"':
		l.scanString()
	case isAlpha(c):
		if tok, n := matchKeyword(l.line[l.pos:]); n > 0 {
			l.tok = tok
			l.pos += n
		} else {
			l.scanIdent()
		}
	default:
		l.scanOperator()
	}
	return l.tok != NoToken
}

func (l *Lexer) scanTagged(tag byte) {
	b := l.line[l.pos+1:]
	switch tag {
	case TagInteger:
		if len(b) >= 2 {
			l.tok, l.val = IntegerLiteral, value.Decode(value.Integer, b)
			l.pos += 3
			return
		}
	case TagLong:
		if len(b) >= 4 {
			l.tok, l.val = LongLiteral, value.Decode(value.LongInteger, b)
			l.pos += 5
			return
		}
	case TagReal:
		if len(b) >= 4 {
			l.tok, l.val = RealLiteral, value.Decode(value.Real, b)
			l.pos += 5
			return
		}
	}
	l.tok = NoToken
}

func (l *Lexer) scanNumber() {
	i, isReal := l.pos, false
	for i < len(l.line) && isDigit(l.line[i]) {
		i++
	}
	if i < len(l.line) && l.line[i] == '.' {
		isReal = true
		for i++; i < len(l.line) && isDigit(l.line[i]); i++ {
		}
	}
	if i < len(l.line) && upper(l.line[i]) == 'E' {
		j := i + 1
		if j < len(l.line) && (l.line[j] == '+' || l.line[j] == '-') {
			j++
		}
		if j < len(l.line) && isDigit(l.line[j]) {
			isReal = true
			for i = j; i < len(l.line) && isDigit(l.line[i]); i++ {
			}
		}
	}
	text := string(l.line[l.pos:i])
	l.pos = i
	l.tok = NoToken

	if !isReal {
		n, err := strconv.ParseInt(text, 10, 64)
		switch {
		case err == nil && n <= math.MaxInt16:
			l.tok, l.val = IntegerLiteral, value.Int(int16(n))
			return
		case err == nil && l.Longs && n <= math.MaxInt32:
			l.tok, l.val = LongLiteral, value.Long(int32(n))
			return
		}
	}
	if l.Reals {
		if f, err := strconv.ParseFloat(text, 32); err == nil {
			l.tok, l.val = RealLiteral, value.Float(float32(f))
		}
	}
}

func (l *Lexer) scanString() {
	i := l.pos + 1
	for i < len(l.line) && l.line[i] != '"' {
		i++
	}
	l.id = append(l.id, l.line[l.pos+1:i]...)
	if i < len(l.line) {
		i++
	}
	l.pos = i
	l.tok = StringLiteral
}

func (l *Lexer) scanIdent() {
	i := l.pos
	for i < len(l.line) && (isAlpha(l.line[i]) || isDigit(l.line[i])) {
		l.id = append(l.id, upper(l.line[i]))
		i++
	}
	l.tok = IntegerIdent
	if l.Reals {
		l.tok = RealIdent
	}
	if i < len(l.line) {
		switch l.line[i] {
		case '%':
			i++
			l.tok = IntegerIdent
			if l.Longs && i < len(l.line) && l.line[i] == '%' {
				i++
				l.tok = LongIdent
			}
		case '!':
			i++
			l.tok = BooleanIdent
		case '$':
			i++
			l.tok = StringIdent
		}
		l.id = append(l.id, l.line[l.pos+len(l.id):i]...)
	}
	l.pos = i
}

func (l *Lexer) scanOperator() {
	c := l.line[l.pos]
	var d byte
	if l.pos+1 < len(l.line) {
		d = l.line[l.pos+1]
	}
	l.pos++
	switch c {
	case '*':
		l.tok = Star
	case '/':
		l.tok = Slash
	case '+':
		l.tok = Plus
	case '-':
		l.tok = Minus
	case '=':
		l.tok = Equal
	case ':':
		l.tok = Colon
	case ';':
		l.tok = Semicolon
	case ',':
		l.tok = Comma
	case '^':
		l.tok = Caret
	case '(':
		l.tok = LeftParen
	case ')':
		l.tok = RightParen
	case '<':
		switch d {
		case '=':
			l.tok = LessEqual
			l.pos++
		case '>':
			l.tok = LessGreater
			l.pos++
		default:
			l.tok = Less
		}
	case '>':
		switch d {
		case '=':
			l.tok = GreaterEqual
			l.pos++
		case '<':
			l.tok = GreaterLess
			l.pos++
		default:
			l.tok = Greater
		}
	default:
		l.pos--
		l.tok = NoToken
	}
}
