package main

import (
	"github.com/jcorbin/gobasic/internal/lexer"
	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/storage"
)

// command runs one of the session commands: NEW, RUN, LIST, SAVE, LOAD and
// DUMP. They may appear in program lines too.
func (s *Session) command() flow {
	tok := s.tok()
	s.advance()
	switch tok {
	case lexer.NEW:
		if !s.exec() {
			return flowNext
		}
		if s.confirm && !s.confirmNew() {
			return flowEnd
		}
		s.arena.Reset()
		s.logf("-", "new")
		return flowEnd

	case lexer.RUN:
		start := -1
		if isNumber(s.tok()) {
			start = s.lineTarget()
		}
		if !s.exec() {
			return flowNext
		}
		s.arena.ClearData()
		if start < 0 {
			l, ok := s.arena.FirstLine()
			if !ok {
				return flowEnd
			}
			start = l.Offset
		}
		return s.jump(start)

	case lexer.LIST:
		from, to := s.listRange()
		if s.exec() {
			s.list(from, to)
		}

	case lexer.SAVE:
		if s.exec() {
			s.save()
		}

	case lexer.LOAD:
		if s.exec() {
			s.load()
			return flowEnd
		}

	case lexer.DUMP:
		what := lexer.NoToken
		switch s.tok() {
		case lexer.VARS, lexer.ARRAYS:
			what = s.tok()
			s.advance()
		}
		if s.exec() {
			d := dumper{s: s, out: termWriter{&s.core}}
			switch what {
			case lexer.VARS:
				d.dumpVars()
			case lexer.ARRAYS:
				d.dumpArrays()
			default:
				d.dump()
			}
		}
	}
	return flowNext
}

func isNumber(tok lexer.Token) bool {
	switch tok {
	case lexer.IntegerLiteral, lexer.LongLiteral, lexer.RealLiteral:
		return true
	}
	return false
}

// listRange parses LIST's optional "start", "start-", "-stop" or
// "start-stop" argument.
func (s *Session) listRange() (from, to uint16) {
	from, to = 0, 0xffff
	literal := func() uint16 {
		n := s.lex.Value().Long()
		if n < 0 || n > 0xffff {
			s.raise(InvalidLineNumber)
		}
		s.advance()
		return uint16(n)
	}
	if isNumber(s.tok()) {
		from = literal()
		to = from
		if s.tok() != lexer.Minus {
			return from, to
		}
		to = 0xffff
	} else if s.tok() != lexer.Minus {
		return from, to
	}
	s.advance()
	if isNumber(s.tok()) {
		to = literal()
	}
	return from, to
}

func (s *Session) list(from, to uint16) {
	for l, ok := s.arena.FirstLine(); ok; l, ok = s.arena.NextLine(l) {
		if l.Number < from {
			continue
		}
		if l.Number > to {
			break
		}
		s.printf("%d ", l.Number)
		s.check(lexer.Format(termWriter{&s.core}, &s.lex, l.Body))
		s.writeNewline()
	}
}

func (s *Session) save() {
	if s.slot == nil {
		s.raise(StorageError)
	}
	image, err := storage.Encode(s.arena.Text())
	s.check(err)
	s.check(s.slot.Save(image))
	s.logf("=", "saved %v bytes", len(image))
}

func (s *Session) load() {
	if s.slot == nil {
		s.raise(StorageError)
	}
	image, err := s.slot.Load()
	s.check(err)
	text, err := storage.Decode(image)
	s.check(err)
	s.check(s.arena.LoadText(text))
	s.cur.line = mem.DirectLine
	s.logf("=", "loaded %v bytes", len(text))
}
