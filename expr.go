package main

import (
	"bytes"

	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/lexer"
	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/value"
)

// Expression evaluation returns numeric results by value; a string result
// is left on the arena stack as a StringLiteral frame and returned as
// value.StringMarker. In scan mode nothing is evaluated and every result is
// the zero Value.

func (s *Session) numericExpr() value.Value {
	v := s.expr()
	if s.exec() && v.Type() == value.String {
		s.raise(TypeMismatch)
	}
	return v
}

func (s *Session) expr() value.Value {
	v := s.and()
	for s.tok() == lexer.OR {
		s.advance()
		r := s.and()
		if s.exec() {
			s.numeric(v, r)
			v = value.Bool(v.Bool() || r.Bool())
		}
	}
	return v
}

func (s *Session) and() value.Value {
	v := s.relation()
	for s.tok() == lexer.AND {
		s.advance()
		r := s.relation()
		if s.exec() {
			s.numeric(v, r)
			v = value.Bool(v.Bool() && r.Bool())
		}
	}
	return v
}

func (s *Session) relation() value.Value {
	v := s.additive()
	for op := s.tok(); op.IsRelation(); op = s.tok() {
		s.advance()
		r := s.additive()
		if s.exec() {
			v = value.Bool(relate(op, s.compare(v, r)))
		}
	}
	return v
}

// compare orders v and r, popping both operands if they are strings.
func (s *Session) compare(v, r value.Value) int {
	vs, rs := v.Type() == value.String, r.Type() == value.String
	switch {
	case vs && rs:
		rb, err := s.arena.PopString()
		s.check(err)
		lb, err := s.arena.PopString()
		s.check(err)
		return bytes.Compare(lb, rb)
	case vs || rs:
		s.raise(TypeMismatch)
	}
	return v.Compare(r)
}

func relate(op lexer.Token, c int) bool {
	switch op {
	case lexer.Equal:
		return c == 0
	case lexer.LessGreater, lexer.GreaterLess:
		return c != 0
	case lexer.Less:
		return c < 0
	case lexer.LessEqual:
		return c <= 0
	case lexer.Greater:
		return c > 0
	case lexer.GreaterEqual:
		return c >= 0
	}
	return false
}

func (s *Session) additive() value.Value {
	v := s.product()
	for {
		switch op := s.tok(); op {
		case lexer.Plus:
			s.advance()
			r := s.product()
			if !s.exec() {
				break
			}
			if v.Type() == value.String && r.Type() == value.String {
				s.concat()
			} else {
				s.numeric(v, r)
				v = v.Add(r)
			}

		case lexer.Minus:
			s.advance()
			r := s.product()
			if s.exec() {
				s.numeric(v, r)
				v = v.Sub(r)
			}

		default:
			return v
		}
	}
}

// concat replaces the two top StringLiteral frames with their concatenation.
func (s *Session) concat() {
	rb, err := s.arena.PopString()
	s.check(err)
	lb, err := s.arena.PopString()
	s.check(err)
	s.check(s.arena.PushString(append(lb[:len(lb):len(lb)], rb...)))
}

func (s *Session) product() value.Value {
	v := s.factor()
	for {
		op := s.tok()
		switch op {
		case lexer.Star, lexer.Slash, lexer.MOD:
		default:
			return v
		}
		s.advance()
		r := s.factor()
		if !s.exec() {
			continue
		}
		s.numeric(v, r)
		switch op {
		case lexer.Star:
			v = v.Mul(r)
		case lexer.Slash:
			s.nonZero(r)
			v = v.Div(r)
		case lexer.MOD:
			s.nonZero(r)
			v = v.Mod(r)
		}
	}
}

func (s *Session) nonZero(r value.Value) {
	if r.IsZero() {
		s.raise(DivisionByZero)
	}
}

// factor binds '^' to the right, and below unary minus: -2^2 is 4.
func (s *Session) factor() value.Value {
	v := s.unary()
	if s.tok() == lexer.Caret {
		s.advance()
		r := s.factor()
		if s.exec() {
			s.numeric(v, r)
			v = v.Pow(r)
		}
	}
	return v
}

func (s *Session) unary() value.Value {
	switch s.tok() {
	case lexer.Minus:
		s.advance()
		v := s.unary()
		if s.exec() {
			s.numeric(v)
			v = v.Neg()
		}
		return v
	case lexer.Plus:
		s.advance()
		v := s.unary()
		if s.exec() {
			s.numeric(v)
		}
		return v
	case lexer.NOT:
		s.advance()
		v := s.unary()
		if s.exec() {
			s.numeric(v)
			v = v.Not()
		}
		return v
	}
	return s.primary()
}

// numeric raises TYPE MISMATCH if any operand is a string.
func (s *Session) numeric(vs ...value.Value) {
	for _, v := range vs {
		if v.Type() == value.String {
			s.raise(TypeMismatch)
		}
	}
}

func (s *Session) primary() value.Value {
	switch tok := s.tok(); tok {
	case lexer.IntegerLiteral, lexer.LongLiteral, lexer.RealLiteral:
		v := s.lex.Value()
		s.advance()
		return v

	case lexer.StringLiteral:
		if s.exec() {
			s.check(s.arena.PushString(s.lex.ID()))
		}
		s.advance()
		return s.result(value.StringMarker)

	case lexer.TRUE, lexer.FALSE:
		s.advance()
		return value.Bool(tok == lexer.TRUE)

	case lexer.LeftParen:
		s.advance()
		v := s.expr()
		s.expect(lexer.RightParen, InvalidDataExpression)
		return v

	default:
		if tok.IsIdent() {
			return s.reference()
		}
	}
	s.raise(ExpressionExpected)
	return value.Value{}
}

func (s *Session) result(v value.Value) value.Value {
	if !s.exec() {
		return value.Value{}
	}
	return v
}

// reference evaluates a function call, an array element or a variable.
func (s *Session) reference() value.Value {
	tok := s.tok()
	id := string(s.lex.ID())
	name, t := mem.NormalizeName(id), identType(tok)
	s.advance()

	if s.tok() == lexer.LeftParen {
		if op, ok := s.functionOp(id); ok {
			return s.callFunction(id, op)
		}
		idx := s.indices()
		if !s.exec() {
			return value.Value{}
		}
		if t == value.String {
			str, err := s.arena.ElementString(name, idx)
			s.check(err)
			s.check(s.arena.PushString(str))
			return value.StringMarker
		}
		v, err := s.arena.Element(name, idx)
		s.check(err)
		return v
	}

	if !s.exec() {
		return value.Value{}
	}
	if t == value.String {
		str, _ := s.arena.String(name)
		s.check(s.arena.PushString(str))
		return value.StringMarker
	}
	v, _ := s.arena.Variable(name, t)
	return v
}

func (s *Session) functionOp(name string) (funcs.Operation, bool) {
	if s.funcs == nil {
		return nil, false
	}
	return s.funcs.Function(name)
}

func (s *Session) commandOp(name string) (funcs.Operation, bool) {
	if s.funcs == nil {
		return nil, false
	}
	return s.funcs.Command(name)
}

// arguments pushes a comma separated expression list, numbers as Scalar
// frames and strings as StringLiteral frames, stopping at end.
func (s *Session) arguments(end func() bool) {
	if end() {
		return
	}
	for {
		v := s.expr()
		if s.exec() && v.Type() != value.String {
			s.push(&mem.Scalar{Value: v})
		}
		if s.tok() != lexer.Comma {
			return
		}
		s.advance()
	}
}

func (s *Session) callFunction(name string, op funcs.Operation) value.Value {
	s.advance()
	depth := s.arena.Depth()
	s.arguments(func() bool { return s.tok() == lexer.RightParen })
	s.expect(lexer.RightParen, InvalidDataExpression)
	if !s.exec() {
		return value.Value{}
	}
	s.check(op(s.arena))
	if s.arena.Depth() != depth+1 {
		s.logf("!", "function %v left stack depth %v, want %v", name, s.arena.Depth(), depth+1)
		s.raise(InvalidArgument)
	}
	if s.arena.PeekKind() == mem.StringLiteralFrame {
		return value.StringMarker
	}
	v, err := s.arena.PopValue()
	s.check(err)
	return v
}

func (s *Session) callCommand(name string, op funcs.Operation) {
	depth := s.arena.Depth()
	s.arguments(s.atStatementEnd)
	if !s.exec() {
		return
	}
	s.check(op(s.arena))
	if s.arena.Depth() != depth {
		s.logf("!", "command %v left stack depth %v, want %v", name, s.arena.Depth(), depth)
		s.raise(InvalidArgument)
	}
}
