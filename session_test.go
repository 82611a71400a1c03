package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/logio"
	"github.com/jcorbin/gobasic/internal/storage"
	"github.com/jcorbin/gobasic/internal/termio"
	"github.com/jcorbin/gobasic/internal/value"
)

func TestSession_program(t *testing.T) {
	sessionTestCases{
		sessionTest("print").
			withInput(lines(
				`10 PRINT "HI"`,
				"RUN",
			)).
			expectOutput(lines("READY", "HI", "READY")),

		sessionTest("for loop").
			withInput(lines(
				"10 FOR I=1 TO 3",
				"20 PRINT I",
				"30 NEXT I",
				"RUN",
			)).
			expectOutput(lines("READY", " 1", " 2", " 3", "READY")).
			expectVariable("I", value.Int(4)).
			expectStackDepth(0),

		sessionTest("for step down").
			withInput(lines("FOR I=3 TO 1 STEP -1: PRINT I;: NEXT")).
			expectOutput(lines("READY", " 3 2 1", "READY")),

		sessionTest("gosub").
			withInput(lines(
				"10 GOSUB 100",
				`20 PRINT "BACK"`,
				"30 END",
				`100 PRINT "SUB"`,
				"110 RETURN",
				"RUN",
			)).
			expectOutput(lines("READY", "SUB", "BACK", "READY")),

		sessionTest("if then").
			withInput(lines(
				"10 X=5",
				`20 IF X>3 THEN PRINT "BIG": PRINT "ALSO"`,
				`30 IF X<3 THEN PRINT "SMALL": PRINT "NOT"`,
				"40 IF X=5 THEN 60",
				`50 PRINT "SKIPPED"`,
				`60 PRINT "DONE"`,
				"RUN",
			)).
			expectOutput(lines("READY", "BIG", "ALSO", "DONE", "READY")),

		sessionTest("run from line").
			withInput(lines(
				`10 PRINT "A"`,
				`20 PRINT "B"`,
				"RUN 20",
			)).
			expectOutput(lines("READY", "B", "READY")),

		sessionTest("replace and delete lines").
			withInput(lines(
				`10 PRINT "A"`,
				`20 PRINT "B"`,
				`10 PRINT "C"`,
				"20",
				"RUN",
			)).
			expectOutput(lines("READY", "C", "READY")),

		sessionTest("stop").
			withInput(lines(
				`10 PRINT "A"`,
				"20 STOP",
				`30 PRINT "B"`,
				"RUN",
			)).
			expectOutput(lines("READY", "A", "BREAK IN 20", "READY")),

		sessionTest("composed").apply(
			withSessionInput(lines("10 X=X+1: IF X<3 THEN 10", "RUN")),
			expectSessionOutput(lines("READY", "READY")),
			expectSessionVariable("X", value.Int(3)),
			expectSessionStackDepth(0),
		),
	}.run(t)
}

func TestSession_expressions(t *testing.T) {
	sessionTestCases{
		sessionTest("arithmetic").
			withInput(lines("PRINT 1+2*3; -7 MOD 3; 2^3^2; (1+2)*3")).
			expectOutput(lines("READY", " 7-1 512 9", "READY")),

		sessionTest("strings").
			withInput(lines(
				`A$="HEL"`,
				`B$=A$+"LO"`,
				"PRINT B$, LEN(B$)",
				`IF A$<B$ THEN PRINT "LESS"`,
			)).
			expectOutput(lines("READY", "READY", "READY", "HELLO    5", "READY", "LESS", "READY")).
			expectString("B$", "HELLO"),

		sessionTest("string functions").
			withInput(lines(
				`PRINT MID$("HELLO", 2, 3); LEFT$("HELLO", 2); CHR$(65); ASC("A")`,
				`PRINT STR$(5)+"!"; VAL("12")+1`,
			)).
			expectOutput(lines("READY", "ELLHEA 65", "READY", " 5! 13", "READY")),

		sessionTest("booleans").
			withInput(lines("B!=1<2 AND NOT (3<2): PRINT B!; 1=2")).
			expectOutput(lines("READY", "TRUEFALSE", "READY")).
			expectVariable("B!", value.Bool(true)),

		sessionTest("reals").
			withOptions(WithReals(true)).
			withInput(lines("X=7: PRINT X/2; 1.5*2")).
			expectOutput(lines("READY", " 3.5 3", "READY")),

		sessionTest("tab").
			withInput(lines(`PRINT "A"; TAB(4); "B"`)).
			expectOutput(lines("READY", "A   B", "READY")),

		sessionTest("arrays").
			withInput(lines(
				"DIM A%(3), B$(2)",
				`A%(2)=99: B$(1)="X"`,
				"PRINT A%(2); B$(1); A%(0)",
			)).
			expectOutput(lines("READY", "READY", "READY", " 99X 0", "READY")),

		sessionTest("dump vars").
			withInput(lines(`X%=5: N$="HI": DUMP VARS`)).
			expectOutput(lines("READY", "# VARS", `  N$ = "HI"`, "  X% = 5", "READY")),

		sessionTest("long integers").
			withOptions(WithLongIntegers(true)).
			withInput(lines("10 A%%=70000: PRINT A%%", "LIST", "RUN", "PRINT A%%*2")).
			expectOutput(lines("READY", "10 A%% = 70000: PRINT A%%", "READY", " 70000", "READY", " 140000", "READY")).
			expectVariable("A%%", value.Long(70000)),

		sessionTest("huge power").
			withOptions(WithLongIntegers(true)).
			withTimeout(time.Second).
			withInput(lines("PRINT 1^2000000000; (-1)^2000000001")).
			expectOutput(lines("READY", " 1-1", "READY")),
	}.run(t)
}

func TestSession_errors(t *testing.T) {
	sessionTestCases{
		sessionTest("division by zero").
			withInput(lines("PRINT 1/0")).
			expectOutput(lines("READY", "DYNAMIC ERROR 9: DIVISION BY ZERO", "READY")),

		sessionTest("no such line").
			withInput(lines("10 GOTO 50", "RUN")).
			expectOutput(lines("READY", "DYNAMIC ERROR 5: NO SUCH LINE IN 10", "READY")),

		sessionTest("next without for").
			withInput(lines("NEXT")).
			expectOutput(lines("READY", "DYNAMIC ERROR 6: NEXT WITHOUT FOR", "READY")),

		sessionTest("return without gosub").
			withInput(lines("RETURN")).
			expectOutput(lines("READY", "DYNAMIC ERROR 7: RETURN WITHOUT GOSUB", "READY")),

		sessionTest("type mismatch").
			withInput(lines("A$=1")).
			expectOutput(lines("READY", "DYNAMIC ERROR 8: TYPE MISMATCH", "READY")),

		sessionTest("index out of range").
			withInput(lines("DIM A%(3)", "PRINT A%(4)")).
			expectOutput(lines("READY", "READY", "DYNAMIC ERROR 4: INDEX OUT OF RANGE", "READY")),

		sessionTest("redimensioned").
			withInput(lines("DIM A%(3)", "DIM A%(1)")).
			expectOutput(lines("READY", "READY", "DYNAMIC ERROR 2: REDIMENSIONED ARRAY", "READY")),

		sessionTest("no such array").
			withInput(lines("PRINT Z%(1)")).
			expectOutput(lines("READY", "DYNAMIC ERROR 3: NO SUCH ARRAY", "READY")),

		sessionTest("invalid tab").
			withInput(lines("PRINT TAB(300)")).
			expectOutput(lines("READY", "DYNAMIC ERROR 11: INVALID TAB", "READY")),

		sessionTest("unclosed paren").
			withInput(lines("PRINT (1")).
			expectOutput(lines("READY", "STATIC ERROR 5: INVALID DATA EXPRESSION", "READY")),

		sessionTest("missing expression").
			withInput(lines("X=")).
			expectOutput(lines("READY", "STATIC ERROR 2: EXPRESSION EXPECTED", "READY")),

		sessionTest("missing then").
			withInput(lines("IF 1 PRINT")).
			expectOutput(lines("READY", "STATIC ERROR 4: THEN OR GOTO EXPECTED", "READY")),

		sessionTest("false branch syntax").
			withInput(lines("IF 0 THEN PRINT (1")).
			expectOutput(lines("READY", "STATIC ERROR 5: INVALID DATA EXPRESSION", "READY")),

		sessionTest("input bad target").
			withInput(lines("10 INPUT A(1)", "RUN", "PRINT A")).
			expectOutput(lines("READY", "STATIC ERROR 7: UNEXPECTED TOKEN IN 10", "READY", " 0", "READY")).
			expectStackDepth(0),

		sessionTest("input trailing").
			withInput(lines("INPUT A B")).
			expectOutput(lines("READY", "STATIC ERROR 7: UNEXPECTED TOKEN", "READY")).
			expectStackDepth(0),

		sessionTest("invalid line number").
			withInput(lines("0 PRINT", "70000 PRINT")).
			expectOutput(lines(
				"READY",
				"STATIC ERROR 9: INVALID LINE NUMBER",
				"STATIC ERROR 9: INVALID LINE NUMBER",
			)),

		sessionTest("error in program").
			withInput(lines(
				`10 PRINT "A"`,
				"20 X=1/0",
				`30 PRINT "B"`,
				"RUN",
			)).
			expectOutput(lines("READY", "A", "DYNAMIC ERROR 9: DIVISION BY ZERO IN 20", "READY")).
			expectStackDepth(0),
	}.run(t)
}

func TestSession_memory(t *testing.T) {
	sessionTestCases{
		sessionTest("array too big").
			withArenaSize(64).
			withInput(lines("DIM A%(100)")).
			expectOutput(lines("READY", "DYNAMIC ERROR 1: OUT OF MEMORY", "READY")),

		sessionTest("runaway gosub").
			withArenaSize(64).
			withInput(lines("10 GOSUB 10", "RUN")).
			expectOutput(lines("READY", "DYNAMIC ERROR 1: OUT OF MEMORY IN 10", "READY")).
			expectStackDepth(0),

		sessionTest("new clears").
			withInput(lines("10 END", "X=1", "NEW", "LIST")).
			expectOutput(lines("READY", "READY", "READY", "READY")).
			expectVariable("X", value.Int(0)),
	}.run(t)
}

func TestSession_terminalOption(t *testing.T) {
	var out bytes.Buffer
	first := NewBufferTerminal(nil, &out)
	sess := New(WithTerminal(first))
	assert.Equal(t, first, sess.term)

	second := NewBufferTerminal(nil, io.Discard)
	WithTerminal(second).apply(sess)
	assert.Equal(t, second, sess.term)
	assert.Equal(t, 0, sess.column)
}

func TestSession_arenaSize(t *testing.T) {
	assert.Equal(t, 128, New(WithArenaSize(128)).arena.Size())
	assert.Equal(t, DefaultArenaSize, New(WithArenaSize(0)).arena.Size())
	assert.NotPanics(t, func() {
		assert.Equal(t, DefaultArenaSize, New(WithArenaSize(-1)).arena.Size())
	})
}

func TestSession_list(t *testing.T) {
	prog := lines(
		"10 REM ONE",
		`20 PRINT "TWO"; 2`,
		"30 IF X<-1 THEN 10",
	)
	listing := []string{
		"10 REM ONE",
		`20 PRINT "TWO"; 2`,
		"30 IF X < -1 THEN 10",
	}
	sessionTestCases{
		sessionTest("all").
			withInput(prog).
			withInput(lines("LIST")).
			expectOutput(lines("READY", listing[0], listing[1], listing[2], "READY")),

		sessionTest("from").
			withInput(prog).
			withInput(lines("LIST 20-")).
			expectOutput(lines("READY", listing[1], listing[2], "READY")),

		sessionTest("to").
			withInput(prog).
			withInput(lines("LIST -10")).
			expectOutput(lines("READY", listing[0], "READY")),

		sessionTest("one").
			withInput(prog).
			withInput(lines("LIST 20")).
			expectOutput(lines("READY", listing[1], "READY")),

		sessionTest("normalized").
			withInput(lines("10 print   \"hi\" ;x+1", "LIST")).
			expectOutput(lines("READY", `10 PRINT "hi"; X + 1`, "READY")),
	}.run(t)
}

func TestSession_storage(t *testing.T) {
	corrupt := &storage.Memory{}
	{
		image, err := storage.Encode([]byte("ABC"))
		require.NoError(t, err)
		image[2] ^= 0xff
		require.NoError(t, corrupt.Save(image))
	}

	sessionTestCases{
		sessionTest("save new load").
			withStorage(&storage.Memory{}).
			withInput(lines(
				`10 PRINT "HI"`,
				"SAVE",
				"NEW",
				"LIST",
				"LOAD",
				"LIST",
				"RUN",
			)).
			expectOutput(lines(
				"READY",
				"READY",
				"READY",
				"READY",
				"READY",
				`10 PRINT "HI"`,
				"READY",
				"HI",
				"READY",
			)),

		sessionTest("bad checksum").
			withStorage(corrupt).
			withInput(lines("LOAD")).
			expectOutput(lines("READY", "DYNAMIC ERROR 10: BAD CHECKSUM", "READY")),

		sessionTest("empty slot").
			withStorage(&storage.Memory{}).
			withInput(lines("LOAD")).
			expectOutput(lines("READY", "DYNAMIC ERROR 13: STORAGE ERROR", "READY")),

		sessionTest("no storage").
			withInput(lines("SAVE")).
			expectOutput(lines("READY", "DYNAMIC ERROR 13: STORAGE ERROR", "READY")),
	}.run(t)
}

func TestSession_input(t *testing.T) {
	sessionTestCases{
		sessionTest("prompt").
			withInput(lines(
				`10 INPUT "N"; N`,
				"20 PRINT N*2",
				"RUN",
				"21",
			)).
			expectOutput("READY\nN?  42\nREADY\n").
			expectVariable("N", value.Int(21)),

		sessionTest("redo").
			withInput(lines(
				`10 INPUT "N"; N`,
				"20 PRINT N*2",
				"RUN",
				"X",
				"21",
			)).
			expectOutput("READY\nN? ?REDO\nN?  42\nREADY\n"),

		sessionTest("more values").
			withInput(lines(
				"10 INPUT A, B",
				"20 PRINT A+B",
				"RUN",
				"1",
				"2",
			)).
			expectOutput("READY\n? ??  3\nREADY\n"),

		sessionTest("one line").
			withInput(lines(
				"10 INPUT A, B$",
				"20 PRINT B$; A",
				"RUN",
				`7, "SEVEN"`,
			)).
			expectOutput("READY\n? SEVEN 7\nREADY\n").
			expectString("B$", "SEVEN"),

		sessionTest("break").
			withInput(lines("10 INPUT A", "RUN")).
			withInputDelay(5).
			withInput(termio.Expand("<ETX>")).
			expectOutput("READY\n? \nBREAK IN 10\nREADY\n"),
	}.run(t)
}

func TestSession_terminal(t *testing.T) {
	sessionTestCases{
		sessionTest("echo").
			withOptions(WithEcho(true)).
			withInput("PRINT 12\b3\n").
			expectOutput("READY\nPRINT 12\b \b3\n 13\nREADY\n"),

		sessionTest("crlf").
			withInput("10 PRINT 1\r\nRUN\r\n").
			expectOutput(lines("READY", " 1", "READY")),

		sessionTest("crlf newline").
			withOptions(WithNewline("\r\n")).
			withInput(lines("PRINT 1")).
			expectOutput("READY\r\n 1\r\nREADY\r\n"),

		sessionTest("break").
			withInput(lines("10 GOTO 10", "RUN")).
			withInputDelay(10).
			withInput(termio.Expand("<ETX>")).
			expectOutput(lines("READY", "BREAK IN 10", "READY")),

		sessionTest("confirm new").
			withOptions(WithConfirm(true)).
			withInput(lines("10 END", "NEW", "N", "LIST", "NEW", "Y", "LIST")).
			expectOutput(lines(
				"READY",
				"ARE YOU SURE (Y/N)? ",
				"READY",
				"10 END",
				"READY",
				"ARE YOU SURE (Y/N)? ",
				"READY",
				"READY",
			)),

		sessionTest("timeout").
			withInput(lines("10 GOTO 10", "RUN")).
			withTimeout(10 * time.Millisecond).
			expectError(context.DeadlineExceeded),
	}.run(t)
}

func TestSession_stackDepth(t *testing.T) {
	var depths []int
	check := funcs.Library{
		Name: "check",
		Commands: map[string]funcs.Operation{
			"CHECK": func(s funcs.Stack) error {
				depths = append(depths, s.Depth())
				return nil
			},
		},
	}

	var out bytes.Buffer
	sess := New(
		WithTerminal(NewBufferTerminal([]byte(lines(
			`PRINT LEN("AB")+1: CHECK`,
			"FOR I=1 TO 2: CHECK: NEXT",
			"10 GOSUB 20",
			"15 END",
			"20 CHECK: RETURN",
			"RUN",
		)), &out)),
		WithNewline("\n"),
		WithEcho(false),
		WithFunctions(funcs.Strings(), check),
	)
	require.NoError(t, sess.Run(context.Background()))
	assert.Equal(t, lines("READY", " 3", "READY", "READY", "READY"), out.String())
	assert.Equal(t, []int{0, 1, 1, 1}, depths)
}

func TestSession_writeError(t *testing.T) {
	sess := New(
		WithTerminal(NewBufferTerminal([]byte(lines("PRINT 1")), failWriter{})),
	)
	assert.ErrorIs(t, sess.Run(context.Background()), errFailWrite)
}

var errFailWrite = errors.New("write failed")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errFailWrite }

//// test harness

type sessionTestCases []sessionTestCase

func (scts sessionTestCases) run(t *testing.T) {
	{
		var exclusive []sessionTestCase
		for _, sct := range scts {
			if sct.exclusive {
				exclusive = append(exclusive, sct)
			}
		}
		if len(exclusive) > 0 {
			scts = exclusive
		}
	}
	for _, sct := range scts {
		if !t.Run(sct.name, sct.run) {
			return
		}
	}
}

func sessionTest(name string) (sct sessionTestCase) {
	sct.name = name
	return sct
}

type sessionTestCase struct {
	name    string
	opts    []interface{}
	input   [][]byte
	delay   int
	expect  []func(t testingT, s *Session)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (sct sessionTestCase) apply(wraps ...func(sessionTestCase) sessionTestCase) sessionTestCase {
	for _, wrap := range wraps {
		sct = wrap(sct)
	}
	return sct
}

func (sct sessionTestCase) exclusiveTest() sessionTestCase {
	sct.exclusive = true
	return sct
}

func (sct sessionTestCase) withOptions(opts ...SessionOption) sessionTestCase {
	for _, opt := range opts {
		sct.opts = append(sct.opts, opt)
	}
	return sct
}

// withInput adds a chunk of typed input; each chunk is offered only after the
// prior one is consumed, and after any input delay.
func (sct sessionTestCase) withInput(input string) sessionTestCase {
	sct.input = append(sct.input[:len(sct.input):len(sct.input)], []byte(input))
	return sct
}

func (sct sessionTestCase) withInputDelay(polls int) sessionTestCase {
	sct.delay = polls
	return sct
}

func (sct sessionTestCase) withArenaSize(size int) sessionTestCase {
	sct.opts = append(sct.opts, WithArenaSize(size))
	return sct
}

func (sct sessionTestCase) withStorage(slot storage.Slot) sessionTestCase {
	sct.opts = append(sct.opts, WithStorage(slot))
	return sct
}

func (sct sessionTestCase) withTimeout(timeout time.Duration) sessionTestCase {
	sct.timeout = timeout
	return sct
}

func (sct sessionTestCase) expectError(err error) sessionTestCase {
	sct.wantErr = err
	return sct
}

func (sct sessionTestCase) expectOutput(output string) sessionTestCase {
	sct.expect = append(sct.expect, func(t testingT, s *Session) {
		if st := scriptOf(s.term); assert.NotNil(t, st, "expected a script terminal, got %T", s.term) {
			assert.Equal(t, output, st.out.String(), "expected output")
		}
	})
	return sct
}

func (sct sessionTestCase) expectStackDepth(depth int) sessionTestCase {
	sct.expect = append(sct.expect, func(t testingT, s *Session) {
		assert.Equal(t, depth, s.arena.Depth(), "expected stack depth")
	})
	return sct
}

func (sct sessionTestCase) expectVariable(name string, v value.Value) sessionTestCase {
	sct.expect = append(sct.expect, func(t testingT, s *Session) {
		got, _ := s.arena.Variable(name, v.Type())
		assert.Equal(t, v, got, "expected variable %v", name)
	})
	return sct
}

func (sct sessionTestCase) expectString(name string, str string) sessionTestCase {
	sct.expect = append(sct.expect, func(t testingT, s *Session) {
		got, ok := s.arena.String(name)
		if assert.True(t, ok, "expected string %v to be defined", name) {
			assert.Equal(t, str, string(got), "expected string %v", name)
		}
	})
	return sct
}

func (sct sessionTestCase) withTestOutput() sessionTestCase {
	sct.opts = append(sct.opts, func(sct *sessionTestCase, t *testing.T) SessionOption {
		return withTee{&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}}}
	})
	return sct
}

func (sct sessionTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	if testFails(func(ft testingT) {
		sct.runSessionTest(context.Background(), ft, sct.buildSession(t))
	}) {
		sess := sct.buildSession(t)
		WithLogf(t.Logf).apply(sess)
		sct.runSessionTest(context.Background(), t, sess)
	}
}

func (sct sessionTestCase) runSessionTest(ctx context.Context, t testingT, sess *Session) {
	const defaultTimeout = time.Second
	timeout := sct.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			sct.dumpToTest(t, sess)
		}
	}()

	if err := sess.Run(ctx); sct.wantErr != nil {
		assert.True(t, errors.Is(err, sct.wantErr), "expected error: %v\ngot: %+v", sct.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected session run error")
	}

	if !t.Failed() {
		for _, expect := range sct.expect {
			expect(t, sess)
		}
	}
}

func (sct sessionTestCase) buildSession(t *testing.T) *Session {
	st := &scriptTerminal{parts: sct.input, delay: sct.delay}
	opts := SessionOptions{
		WithTerminal(st),
		WithNewline("\n"),
		WithEcho(false),
	}
	var tees []SessionOption
	for _, o := range sct.opts {
		switch impl := o.(type) {
		case func(sct *sessionTestCase, t *testing.T) SessionOption:
			tees = append(tees, impl(&sct, t))
		case SessionOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported sessionTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(append(opts, tees...)...)
}

func (sct sessionTestCase) dumpToTest(t testingT, sess *Session) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	dumper{s: sess, out: &lw, maxElements: 16}.dump()
	if st := scriptOf(sess.term); st != nil {
		t.Logf("output: %q", st.out.String())
	}
}

// scriptTerminal feeds input parts in order, reporting no input for delay
// polls before each part after the first; once all parts are read it reports
// io.EOF.
type scriptTerminal struct {
	parts [][]byte
	delay int
	wait  int
	in    []byte
	out   bytes.Buffer
}

func (st *scriptTerminal) Available() (int, error) {
	if len(st.in) == 0 && len(st.parts) > 0 {
		if st.wait > 0 {
			st.wait--
			return 0, nil
		}
		st.in, st.parts = st.parts[0], st.parts[1:]
		st.wait = st.delay
	}
	if len(st.in) == 0 {
		return 0, io.EOF
	}
	return len(st.in), nil
}

func (st *scriptTerminal) ReadByte() (byte, error) {
	if len(st.in) == 0 {
		return 0, io.EOF
	}
	b := st.in[0]
	st.in = st.in[1:]
	return b, nil
}

func (st *scriptTerminal) WriteByte(b byte) error { return st.out.WriteByte(b) }
func (st *scriptTerminal) Flush() error           { return nil }

func scriptOf(term Terminal) *scriptTerminal {
	switch impl := term.(type) {
	case *scriptTerminal:
		return impl
	case teeTerminal:
		return scriptOf(impl.Terminal)
	}
	return nil
}

// withTee copies terminal output to another writer.
type withTee struct{ io.Writer }

func (tee withTee) apply(s *Session) {
	s.term = teeTerminal{s.term, tee.Writer}
}

type teeTerminal struct {
	Terminal
	w io.Writer
}

func (tt teeTerminal) WriteByte(b byte) error {
	if err := tt.Terminal.WriteByte(b); err != nil {
		return err
	}
	_, err := tt.w.Write([]byte{b})
	return err
}

//// utilities

// testingT is the part of testing.T that session expectations use.
type testingT interface {
	Errorf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Failed() bool
}

// quietT records failure without logging, for a first silent attempt.
type quietT struct{ failed bool }

func (qt *quietT) Errorf(string, ...interface{}) { qt.failed = true }
func (qt *quietT) Logf(string, ...interface{})   {}
func (qt *quietT) Failed() bool                  { return qt.failed }

func testFails(fn func(t testingT)) bool {
	var qt quietT
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&qt)
	}()
	<-done
	return qt.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func ExampleNew() {
	var out strings.Builder
	sess := New(
		WithTerminal(NewBufferTerminal([]byte(lines(
			"10 FOR I=1 TO 3",
			`20 PRINT "LINE"; I`,
			"30 NEXT",
			"RUN",
		)), &out)),
		WithNewline("\n"),
		WithEcho(false),
	)
	if err := sess.Run(context.Background()); err != nil {
		fmt.Println(err)
	}
	fmt.Print(out.String())
	// Output:
	// READY
	// LINE 1
	// LINE 2
	// LINE 3
	// READY
}
