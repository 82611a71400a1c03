package lexer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobasic/internal/value"
)

// ErrUnexpected is returned by Compact for bytes that start no token.
var ErrUnexpected = errors.New("unexpected character")

// SyntaxError locates a lexical error within a source line.
type SyntaxError struct {
	Pos int
	Err error
}

func (se SyntaxError) Error() string { return fmt.Sprintf("%v at column %v", se.Err, se.Pos+1) }
func (se SyntaxError) Unwrap() error { return se.Err }

// Compact converts an ASCII source line into compacted form using l's
// settings. Lexing the result yields the same tokens, values and identifiers
// as lexing src.
func Compact(l *Lexer, src []byte) ([]byte, error) {
	var out []byte
	prevIdent := false
	for l.Init(src); l.Next(); {
		tok := l.Token()
		switch tok {
		case IntegerLiteral, LongLiteral, RealLiteral:
			out = appendLiteral(out, l.Value())
		case StringLiteral:
			out = append(out, '"')
			out = append(out, l.ID()...)
			out = append(out, '"')
		default:
			if tok.IsIdent() {
				if prevIdent {
					out = append(out, ' ')
				}
				out = append(out, l.ID()...)
				break
			}
			out = append(out, tokenBit|byte(tok))
			if tok == REM {
				out = append(out, l.Rest()...)
			}
		}
		prevIdent = tok.IsIdent()
	}
	if l.Token() == NoToken {
		return out, SyntaxError{Pos: l.Start(), Err: ErrUnexpected}
	}
	return out, nil
}

func appendLiteral(out []byte, v value.Value) []byte {
	var tag byte
	switch v.Type() {
	case value.Integer:
		tag = TagInteger
	case value.LongInteger:
		tag = TagLong
	default:
		tag = TagReal
	}
	var buf [4]byte
	v.Encode(buf[:])
	out = append(out, tag)
	return append(out, buf[:v.Type().Size()]...)
}

// Format writes the ASCII listing of a compacted line body to w, lexing it
// with the Reals and Longs settings of like; like itself is left untouched.
func Format(w io.Writer, like *Lexer, body []byte) error {
	var (
		l    = Lexer{Reals: like.Reals, Longs: like.Longs}
		sb   strings.Builder
		prev = NoToken
	)
	for l.Init(body); l.Next(); {
		tok := l.Token()
		if spaceBetween(prev, tok) {
			sb.WriteByte(' ')
		}
		switch {
		case tok == StringLiteral:
			sb.WriteByte('"')
			sb.Write(l.ID())
			sb.WriteByte('"')
		case tok == RealLiteral:
			s := l.Value().String()
			if !strings.ContainsAny(s, ".E") {
				s += ".0"
			}
			sb.WriteString(s)
		case tok.IsLiteral():
			sb.WriteString(l.Value().String())
		case tok.IsIdent():
			sb.Write(l.ID())
		default:
			sb.WriteString(tok.Text())
			if tok == REM {
				sb.Write(l.Rest())
			}
		}
		prev = unaryAware(prev, tok)
	}
	if l.Token() == NoToken {
		return SyntaxError{Pos: l.Start(), Err: ErrUnexpected}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// unaryMinus stands in for a minus sign that binds to the following operand.
const unaryMinus = tokenCount

func unaryAware(prev, tok Token) Token {
	if tok == Minus && !endsOperand(prev) {
		return unaryMinus
	}
	return tok
}

// endsOperand returns true if an expression operand could end with prev.
func endsOperand(prev Token) bool {
	switch {
	case prev.IsLiteral(), prev.IsIdent(), prev == RightParen, prev == TRUE, prev == FALSE:
		return true
	}
	return false
}

func spaceBetween(prev, tok Token) bool {
	switch {
	case prev == NoToken, prev == LeftParen, prev == unaryMinus:
		return false
	case tok == RightParen, tok == Comma, tok == Semicolon, tok == Colon:
		return false
	case tok == LeftParen && (prev.IsIdent() || prev == TAB):
		return false
	}
	return true
}
