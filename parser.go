package main

import (
	"github.com/jcorbin/gobasic/internal/lexer"
	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/value"
)

// flow tells the session where execution continues after a line.
type flow uint8

const (
	flowNext  flow = iota // the following line
	flowJump              // the cursor, which was moved
	flowEnd               // back to the shell
	flowInput             // collect INPUT values, then resume
)

// printZone is the column width PRINT advances to on a comma.
const printZone = 8

// runLine parses and runs statements from the cursor to the end of the line
// or until control leaves it. A raised lineError is reported, ending the run.
func (s *Session) runLine() (fl flow) {
	defer func() {
		if e := recover(); e != nil {
			le, ok := e.(lineError)
			if !ok {
				panic(e)
			}
			s.report(le)
			fl = flowEnd
		}
	}()

	s.scan = false
	s.lex.InitAt(s.body(s.cur.line), s.cur.pos)
	s.advance()
	for {
		switch s.tok() {
		case lexer.EOL:
			return flowNext
		case lexer.Colon:
			s.advance()
			continue
		}
		if fl := s.statement(); fl != flowNext {
			return fl
		}
		switch s.tok() {
		case lexer.EOL:
			return flowNext
		case lexer.Colon:
			s.advance()
		default:
			s.raise(UnexpectedToken)
		}
	}
}

func (s *Session) body(offset int) []byte {
	if offset == mem.DirectLine {
		return s.direct
	}
	l, ok := s.arena.LineAt(offset)
	if !ok {
		s.raise(NoSuchLine)
	}
	return l.Body
}

// raise aborts the running line with err, classified by codeOf.
func (s *Session) raise(err error) {
	panic(s.lineError(err, s.cur.line))
}

func (s *Session) check(err error) {
	if err != nil {
		s.raise(err)
	}
}

func (s *Session) tok() lexer.Token { return s.lex.Token() }

func (s *Session) advance() {
	if !s.lex.Next() && s.lex.Token() == lexer.NoToken {
		s.raise(UnexpectedToken)
	}
}

func (s *Session) expect(tok lexer.Token, code StaticError) {
	if s.tok() != tok {
		s.raise(code)
	}
	s.advance()
}

// exec returns true unless the parser is only checking syntax.
func (s *Session) exec() bool { return !s.scan }

func (s *Session) atStatementEnd() bool {
	switch s.tok() {
	case lexer.EOL, lexer.Colon:
		return true
	}
	return false
}

func (s *Session) push(f mem.Frame) { s.check(s.arena.Push(f)) }

func (s *Session) jump(offset int) flow {
	s.logf("^", "jump to line %v", s.lineNumber(offset))
	s.cur = cursor{line: offset}
	return flowJump
}

func identType(tok lexer.Token) value.Type {
	switch tok {
	case lexer.RealIdent:
		return value.Real
	case lexer.LongIdent:
		return value.LongInteger
	case lexer.BooleanIdent:
		return value.Boolean
	case lexer.StringIdent:
		return value.String
	}
	return value.Integer
}

// identifier consumes an identifier, returning its normalized name and type.
func (s *Session) identifier() (string, value.Type) {
	tok := s.tok()
	if !tok.IsIdent() {
		s.raise(IdentifierExpected)
	}
	name := mem.NormalizeName(string(s.lex.ID()))
	s.advance()
	return name, identType(tok)
}

func (s *Session) statement() flow {
	switch tok := s.tok(); tok {
	case lexer.REM:
		s.lex.Rest()
		s.advance()

	case lexer.END:
		s.advance()
		if s.exec() {
			return flowEnd
		}

	case lexer.STOP:
		s.advance()
		if s.exec() {
			s.breakAt(s.cur.line)
			return flowEnd
		}

	case lexer.LET:
		s.advance()
		s.assignment()

	case lexer.PRINT:
		s.print()

	case lexer.IF:
		return s.ifThen()

	case lexer.GOTO:
		s.advance()
		target := s.lineTarget()
		if s.exec() {
			return s.jump(target)
		}

	case lexer.GOSUB:
		return s.gosub()

	case lexer.RETURN:
		return s.subReturn()

	case lexer.FOR:
		s.forLoop()

	case lexer.NEXT:
		return s.next()

	case lexer.DIM:
		s.dim()

	case lexer.INPUT:
		return s.input()

	case lexer.NEW, lexer.RUN, lexer.LIST, lexer.SAVE, lexer.LOAD, lexer.DUMP:
		return s.command()

	default:
		if tok.IsIdent() {
			name := string(s.lex.ID())
			if op, ok := s.commandOp(name); ok {
				s.advance()
				s.callCommand(name, op)
				break
			}
			s.assignment()
			break
		}
		s.raise(OperatorExpected)
	}
	return flowNext
}

// lineTarget evaluates a line number expression into a text offset.
func (s *Session) lineTarget() int {
	v := s.numericExpr()
	if !s.exec() {
		return mem.DirectLine
	}
	if v.Type() == value.Real && v.Float() != float32(v.Long()) {
		s.raise(IntegerExpressionExpected)
	}
	n := v.Long()
	if n < 1 || n > 0xffff {
		s.raise(NoSuchLine)
	}
	l, ok := s.arena.FindLine(uint16(n))
	if !ok {
		s.raise(NoSuchLine)
	}
	return l.Offset
}

func (s *Session) ifThen() flow {
	s.advance()
	cond := s.expr()
	taken := false
	if s.exec() {
		if cond.Type() == value.String {
			s.raise(TypeMismatch)
		}
		taken = cond.Bool()
		s.scan = !taken
	}

	switch s.tok() {
	case lexer.THEN:
		s.advance()
		if !s.tok().IsLiteral() || s.tok() == lexer.StringLiteral {
			return s.statement()
		}
	case lexer.GOTO:
		s.advance()
	default:
		s.raise(ThenOrGotoExpected)
	}

	target := s.lineTarget()
	if taken {
		return s.jump(target)
	}
	return flowNext
}

func (s *Session) gosub() flow {
	s.advance()
	target := s.lineTarget()
	if !s.exec() {
		return flowNext
	}
	s.push(&mem.SubroutineReturn{Line: s.cur.line, Pos: s.lex.Start()})
	return s.jump(target)
}

func (s *Session) subReturn() flow {
	s.advance()
	if !s.exec() {
		return flowNext
	}
	for {
		switch f := s.arena.Top().(type) {
		case *mem.ForNext:
			_, _ = s.arena.Pop()
		case *mem.SubroutineReturn:
			_, _ = s.arena.Pop()
			s.logf("^", "return to line %v", s.lineNumber(f.Line))
			s.cur = cursor{line: f.Line, pos: f.Pos}
			return flowJump
		default:
			s.raise(ReturnWithoutGosub)
		}
	}
}

func (s *Session) forLoop() {
	s.advance()
	name, t := s.identifier()
	s.expect(lexer.Equal, UnexpectedToken)
	start := s.numericExpr()
	s.expect(lexer.TO, UnexpectedToken)
	final := s.numericExpr()
	step := value.Int(1)
	if s.tok() == lexer.STEP {
		s.advance()
		step = s.numericExpr()
	}
	if !s.exec() {
		return
	}
	if t == value.String || t == value.Boolean {
		s.raise(TypeMismatch)
	}

	start = start.Convert(t)
	s.check(s.arena.SetVariable(name, t, start))
	if f, ok := s.arena.Top().(*mem.ForNext); ok && f.Var == name {
		_, _ = s.arena.Pop()
	}
	s.push(&mem.ForNext{
		Line:    s.cur.line,
		Pos:     s.lex.Start(),
		Var:     name,
		Current: start,
		Step:    step.Convert(t),
		Final:   final.Convert(t),
	})
}

func (s *Session) next() flow {
	s.advance()
	var name string
	if s.tok().IsIdent() {
		name, _ = s.identifier()
	}
	if !s.exec() {
		return flowNext
	}
	for {
		f, ok := s.arena.Top().(*mem.ForNext)
		if !ok {
			s.raise(NextWithoutFor)
		}
		if name != "" && f.Var != name {
			_, _ = s.arena.Pop()
			continue
		}

		t := f.Current.Type()
		cur, _ := s.arena.Variable(f.Var, t)
		cur = cur.Add(f.Step).Convert(t)
		s.check(s.arena.SetVariable(f.Var, t, cur))
		f.Current = cur

		var done bool
		if f.Step.Negative() {
			done = cur.Less(f.Final)
		} else {
			done = cur.Greater(f.Final)
		}
		if done {
			_, _ = s.arena.Pop()
			return flowNext
		}
		s.cur = cursor{line: f.Line, pos: f.Pos}
		return flowJump
	}
}

func (s *Session) dim() {
	s.advance()
	for {
		name, t := s.identifier()
		if s.tok() != lexer.LeftParen {
			s.raise(UnexpectedToken)
		}
		dims := s.indices()
		if s.exec() {
			s.check(s.arena.DimArray(name, t, dims))
			s.logf("+", "dim %v%v", name, dims)
		}
		if s.tok() != lexer.Comma {
			return
		}
		s.advance()
	}
}

// indices parses a parenthesized index list, pushing each index as an
// ArrayDimension frame, then pops them back off; the list is nil in scan mode.
func (s *Session) indices() []uint16 {
	s.advance()
	count := 0
	for {
		v := s.numericExpr()
		if s.exec() {
			s.push(&mem.ArrayDimension{Index: s.index(v)})
		}
		count++
		if s.tok() != lexer.Comma {
			break
		}
		s.advance()
	}
	s.expect(lexer.RightParen, InvalidDataExpression)
	if !s.exec() {
		return nil
	}
	if count > 0xff {
		s.raise(IndexOutOfRange)
	}
	s.push(&mem.ArrayDimensionCount{Count: uint8(count)})

	f, err := s.arena.Pop()
	s.check(err)
	n := int(f.(*mem.ArrayDimensionCount).Count)
	idx := make([]uint16, n)
	for i := n - 1; i >= 0; i-- {
		ix, err := s.arena.PopIndex()
		s.check(err)
		idx[i] = ix
	}
	return idx
}

func (s *Session) index(v value.Value) uint16 {
	n := v.Long()
	if n < 0 || n > 0xffff {
		s.raise(IndexOutOfRange)
	}
	return uint16(n)
}

func (s *Session) input() flow {
	s.advance()
	prompt := ""
	if s.tok() == lexer.StringLiteral {
		prompt = string(s.lex.ID())
		s.advance()
		switch s.tok() {
		case lexer.Semicolon, lexer.Comma:
			s.advance()
		default:
			s.raise(UnexpectedToken)
		}
	}
	var objs []mem.InputObject
	for {
		name, t := s.identifier()
		objs = append(objs, mem.InputObject{Var: name, Type: t})
		if s.tok() != lexer.Comma {
			break
		}
		s.advance()
	}
	if !s.atStatementEnd() {
		s.raise(UnexpectedToken)
	}
	if !s.exec() {
		return flowNext
	}
	for i := len(objs) - 1; i >= 0; i-- {
		s.push(&objs[i])
	}
	s.prompt = prompt
	s.resume = cursor{line: s.cur.line, pos: s.lex.Start()}
	return flowInput
}

func (s *Session) print() {
	s.advance()
	newline := true
	for !s.atStatementEnd() {
		switch s.tok() {
		case lexer.Comma:
			s.advance()
			newline = false
			if s.exec() {
				s.tabTo((s.column/printZone + 1) * printZone)
			}

		case lexer.Semicolon:
			s.advance()
			newline = false

		case lexer.TAB:
			s.advance()
			s.expect(lexer.LeftParen, UnexpectedToken)
			v := s.numericExpr()
			s.expect(lexer.RightParen, InvalidDataExpression)
			newline = true
			if s.exec() {
				n := v.Long()
				if n < 0 || n > 0xff {
					s.raise(InvalidTab)
				}
				s.tabTo(int(n))
			}

		default:
			v := s.expr()
			newline = true
			if s.exec() {
				s.printValue(v)
			}
		}
	}
	if newline && s.exec() {
		s.writeNewline()
	}
}

func (s *Session) tabTo(col int) {
	for s.column < col {
		s.writeByte(' ')
	}
}

// printValue prints an expression result; numbers get a leading space
// unless negative.
func (s *Session) printValue(v value.Value) {
	switch v.Type() {
	case value.String:
		str, err := s.arena.PopString()
		s.check(err)
		s.writeBytes(str)
	case value.Boolean:
		s.writeString(v.String())
	default:
		if !v.Negative() {
			s.writeByte(' ')
		}
		s.writeString(v.String())
	}
}

// assignment handles [LET] ident ['(' indices ')'] '=' expr.
func (s *Session) assignment() {
	name, t := s.identifier()
	var idx []uint16
	isArray := s.tok() == lexer.LeftParen
	if isArray {
		idx = s.indices()
	}
	s.expect(lexer.Equal, UnexpectedToken)
	v := s.expr()
	if !s.exec() {
		return
	}
	if (t == value.String) != (v.Type() == value.String) {
		s.raise(TypeMismatch)
	}

	switch {
	case t == value.String && isArray:
		str, err := s.arena.PopString()
		s.check(err)
		s.check(s.arena.SetElementString(name, idx, str))
	case t == value.String:
		str, err := s.arena.PopString()
		s.check(err)
		s.check(s.arena.SetString(name, str))
	case isArray:
		s.check(s.arena.SetElement(name, idx, v))
	default:
		s.check(s.arena.SetVariable(name, t, v.Convert(t)))
	}
}
