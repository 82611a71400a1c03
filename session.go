package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/lexer"
	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/panicerr"
	"github.com/jcorbin/gobasic/internal/storage"
	"github.com/jcorbin/gobasic/internal/termio"
	"github.com/jcorbin/gobasic/internal/value"
)

// state is a Session FSM state.
type state uint8

const (
	stateShell state = iota
	stateProgramInput
	stateCollectInput
	stateExecute
	stateVarInput
	stateGetVarValue
)

var stateNames = [...]string{
	stateShell:        "Shell",
	stateProgramInput: "ProgramInput",
	stateCollectInput: "CollectInput",
	stateExecute:      "Execute",
	stateVarInput:     "VarInput",
	stateGetVarValue:  "GetVarValue",
}

func (st state) String() string {
	if int(st) < len(stateNames) {
		return stateNames[st]
	}
	return fmt.Sprintf("state(%d)", uint8(st))
}

// maxInputLine bounds how many bytes CollectInput keeps for one line.
const maxInputLine = 0xff

// collectChunk bounds how many input bytes one step consumes.
const collectChunk = 64

// cursor locates execution: a line offset in the text region (or
// mem.DirectLine) and a byte position within that line's body.
type cursor struct {
	line int
	pos  int
}

// Session runs one BASIC interpreter over one arena and one terminal.
type Session struct {
	core

	arena *mem.Arena
	lex   lexer.Lexer
	funcs funcs.Table
	slot  storage.Slot

	arenaSize int
	confirm   bool
	ctx       context.Context

	state state
	after state
	line  []byte
	sawCR bool

	direct []byte
	cur    cursor
	scan   bool

	prompt string
	resume cursor
}

// New creates a Session; without options it has a 4KiB arena, an idle
// terminal that immediately reports end of input, and the math and string
// function libraries.
func New(opts ...SessionOption) *Session {
	var s Session
	defaultOptions.apply(&s)
	SessionOptions(opts).apply(&s)
	s.arena = mem.New(s.arenaSize)
	return &s
}

// Run drives the session until input ends, ctx is done, or the terminal
// fails; only the latter two return an error.
func (s *Session) Run(ctx context.Context) error {
	err := panicerr.Recover("Session", func() error {
		return s.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

func (s *Session) run(ctx context.Context) error {
	s.ctx = ctx
	defer func() { s.ctx = nil }()
	for {
		if err := ctx.Err(); err != nil {
			s.flush()
			return err
		}
		if s.step() {
			continue
		}
		if err := s.waitInput(ctx); err != nil {
			s.flush()
			return err
		}
	}
}

func (s *Session) waitInput(ctx context.Context) error {
	if w, ok := s.term.(inputWaiter); ok {
		return w.WaitInput(ctx)
	}
	runtime.Gosched()
	return ctx.Err()
}

func (s *Session) setState(st state) {
	if st != s.state {
		s.logf(">", "%v -> %v", s.state, st)
	}
	s.state = st
}

// collect starts collecting an input line, moving to next once one is read.
func (s *Session) collect(next state) {
	s.line = s.line[:0]
	s.after = next
	s.setState(stateCollectInput)
}

// step performs one bounded unit of work, returning false if it could make
// no progress without more input.
func (s *Session) step() bool {
	switch s.state {
	case stateShell:
		s.freshLine()
		s.writeLine("READY")
		s.arena.ClearStack()
		s.collect(stateProgramInput)

	case stateCollectInput:
		return s.collectInput()

	case stateProgramInput:
		s.programInput()

	case stateExecute:
		s.execute()

	case stateVarInput:
		s.varInput()

	case stateGetVarValue:
		s.getVarValue()

	default:
		s.halt(fmt.Errorf("invalid session state %v", s.state))
	}
	return true
}

func (s *Session) collectInput() bool {
	n, err := s.available()
	if n == 0 {
		if err == io.EOF {
			if len(s.line) > 0 {
				s.endInput()
				return true
			}
			s.halt(io.EOF)
		}
		s.flush()
		return false
	}
	if n > collectChunk {
		n = collectChunk
	}
	for ; n > 0; n-- {
		if s.inputByte(s.readByte()) {
			break
		}
	}
	return true
}

// inputByte handles one input byte, returning true once the line is done.
func (s *Session) inputByte(b byte) bool {
	sawCR := s.sawCR
	s.sawCR = false
	switch {
	case b == termio.CR:
		s.sawCR = true
		s.endInput()
		return true

	case b == termio.LF:
		if sawCR {
			return false
		}
		s.endInput()
		return true

	case b == termio.BS || b == termio.DEL:
		if len(s.line) > 0 {
			s.line = s.line[:len(s.line)-1]
			if s.echo {
				s.writeString("\b \b")
			}
		}

	case b == termio.ETX:
		s.interrupt()
		return true

	case b < 0x20 || b >= termio.DEL:
		s.logf("?", "ignored input byte %v", termio.Name(b))

	case len(s.line) < maxInputLine:
		s.line = append(s.line, b)
		if s.echo {
			s.writeByte(b)
		}
	}
	return false
}

func (s *Session) endInput() {
	if s.echo {
		s.writeNewline()
	}
	s.setState(s.after)
}

func (s *Session) interrupt() {
	if s.echo {
		s.writeString("^C")
	}
	s.line = s.line[:0]
	if s.after == stateGetVarValue {
		s.breakAt(s.resume.line)
	}
	s.setState(stateShell)
}

func (s *Session) breakAt(line int) {
	s.freshLine()
	if n := s.lineNumber(line); n > 0 {
		s.writeLine(fmt.Sprintf("BREAK IN %d", n))
	} else {
		s.writeLine("BREAK")
	}
}

func (s *Session) programInput() {
	line := bytes.TrimSpace(s.line)
	switch {
	case len(line) == 0:
		s.collect(stateProgramInput)

	case isDigit(line[0]):
		s.editLine(line)
		s.collect(stateProgramInput)

	default:
		body, err := lexer.Compact(&s.lex, line)
		if err != nil {
			s.report(s.lineError(err, mem.DirectLine))
			s.setState(stateShell)
			return
		}
		s.direct = body
		s.cur = cursor{line: mem.DirectLine}
		s.setState(stateExecute)
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// editLine stores, replaces, or with a bare number removes a program line.
func (s *Session) editLine(line []byte) {
	i := 0
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	n, err := strconv.Atoi(string(line[:i]))
	if err != nil || n < 1 || n > 0xffff {
		s.report(s.lineError(InvalidLineNumber, mem.DirectLine))
		return
	}
	num := uint16(n)
	rest := bytes.TrimLeft(line[i:], " ")

	s.arena.ClearStack()
	if len(rest) == 0 {
		if s.arena.RemoveLine(num) {
			s.logf("-", "removed line %v", num)
		}
		return
	}
	body, err := lexer.Compact(&s.lex, rest)
	if err == nil {
		err = s.arena.InsertLine(num, body)
	}
	if err != nil {
		s.report(s.lineError(err, mem.DirectLine))
		return
	}
	s.logf("+", "stored line %v (%v bytes)", num, len(body))
}

func (s *Session) execute() {
	if s.pollBreak() {
		s.breakAt(s.cur.line)
		s.setState(stateShell)
		return
	}

	if s.logfn != nil {
		if n := s.lineNumber(s.cur.line); n > 0 {
			s.logf("@", "line %v pos %v", n, s.cur.pos)
		}
	}

	switch s.runLine() {
	case flowNext:
		if s.cur.line == mem.DirectLine {
			s.setState(stateShell)
			return
		}
		l, ok := s.arena.LineAt(s.cur.line)
		if ok {
			l, ok = s.arena.NextLine(l)
		}
		if !ok {
			s.setState(stateShell)
			return
		}
		s.cur = cursor{line: l.Offset}

	case flowJump:

	case flowEnd:
		s.setState(stateShell)

	case flowInput:
		s.setState(stateVarInput)
	}
}

func (s *Session) varInput() {
	s.writeString(s.prompt)
	s.writeString("? ")
	s.collect(stateGetVarValue)
}

// getVarValue assigns the collected input line to the pending InputObject
// frames, asking again on malformed or missing values.
func (s *Session) getVarValue() {
	fields := strings.Split(string(s.line), ",")
	s.line = s.line[:0]

	frames := s.arena.Frames()
	var objs []*mem.InputObject
	for i := len(frames) - 1; i >= 0; i-- {
		obj, ok := frames[i].(*mem.InputObject)
		if !ok {
			break
		}
		objs = append(objs, obj)
	}
	if len(objs) > len(fields) {
		objs = objs[:len(fields)]
	}

	type input struct {
		obj *mem.InputObject
		val value.Value
		str []byte
	}
	inputs := make([]input, 0, len(objs))
	for i, obj := range objs {
		in := input{obj: obj}
		field := strings.TrimSpace(fields[i])
		if obj.Type == value.String {
			in.str = []byte(strings.Trim(field, `"`))
		} else if v, ok := parseInput(field, obj.Type); ok {
			in.val = v
		} else {
			s.writeLine("?REDO")
			s.setState(stateVarInput)
			return
		}
		inputs = append(inputs, in)
	}

	for _, in := range inputs {
		if _, err := s.arena.Pop(); err != nil {
			s.halt(err)
		}
		var err error
		if in.obj.Type == value.String {
			err = s.arena.SetString(in.obj.Var, in.str)
		} else {
			err = s.arena.SetVariable(in.obj.Var, in.obj.Type, in.val)
		}
		if err != nil {
			s.report(s.lineError(err, s.resume.line))
			s.setState(stateShell)
			return
		}
	}

	if s.arena.PeekKind() == mem.InputObjectFrame {
		s.prompt = "?"
		s.setState(stateVarInput)
		return
	}
	s.cur = s.resume
	s.setState(stateExecute)
}

// parseInput parses a typed INPUT value: an optionally signed number, or
// TRUE/FALSE for a boolean.
func parseInput(field string, t value.Type) (value.Value, bool) {
	switch t {
	case value.Integer:
		if n, err := strconv.ParseInt(field, 10, 16); err == nil {
			return value.Int(int16(n)), true
		}
	case value.LongInteger:
		if n, err := strconv.ParseInt(field, 10, 32); err == nil {
			return value.Long(int32(n)), true
		}
	case value.Real:
		if f, err := strconv.ParseFloat(field, 32); err == nil {
			return value.Float(float32(f)), true
		}
	case value.Boolean:
		switch strings.ToUpper(field) {
		case "TRUE":
			return value.Bool(true), true
		case "FALSE":
			return value.Bool(false), true
		}
		if n, err := strconv.ParseInt(field, 10, 32); err == nil {
			return value.Bool(n != 0), true
		}
	}
	return value.Value{}, false
}

// confirmNew asks before NEW discards the program, polling the terminal
// until an answer byte arrives.
func (s *Session) confirmNew() bool {
	s.writeString("ARE YOU SURE (Y/N)? ")
	s.flush()
	for {
		n, err := s.available()
		if n > 0 {
			b := s.readByte()
			if b == termio.LF && s.sawCR {
				s.sawCR = false
				continue
			}
			s.sawCR = false
			if s.echo && b >= 0x20 && b < termio.DEL {
				s.writeByte(b)
			}
			s.writeNewline()
			return b == 'Y' || b == 'y'
		}
		if err != nil {
			s.writeNewline()
			return false
		}
		if s.ctx != nil {
			if err := s.ctx.Err(); err != nil {
				s.halt(err)
			}
		}
		runtime.Gosched()
	}
}

// lineNumber returns the number of the stored line at offset, or 0 for the
// direct line.
func (s *Session) lineNumber(offset int) int {
	if offset == mem.DirectLine {
		return 0
	}
	if l, ok := s.arena.LineAt(offset); ok {
		return int(l.Number)
	}
	return 0
}

func (s *Session) lineError(err error, offset int) lineError {
	if le, ok := err.(lineError); ok {
		return le
	}
	le := lineError{code: codeOf(err), line: s.lineNumber(offset)}
	switch err.(type) {
	case StaticError, DynamicError:
	default:
		le.cause = err
	}
	return le
}

func (s *Session) report(le lineError) {
	s.freshLine()
	s.writeLine(le.Error())
	if le.cause != nil {
		s.logf("!", "%v: %v", le.code, le.cause)
	} else {
		s.logf("!", "%v", le)
	}
}
