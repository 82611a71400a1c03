package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobasic/internal/termio"
)

// core holds a Session's terminal plumbing: output with column tracking,
// input with type-ahead, and trace logging.
type core struct {
	logging

	term    Terminal
	newline string
	echo    bool

	column int
	ahead  []byte
}

// halt aborts the session with err, after trying to flush output.
func (c *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if c.term != nil {
			if ferr := c.term.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		c.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (c *core) writeByte(b byte) {
	if err := c.term.WriteByte(b); err != nil {
		c.halt(err)
	}
	switch {
	case b == termio.CR || b == termio.LF:
		c.column = 0
	case b == termio.BS:
		if c.column > 0 {
			c.column--
		}
	case b >= 0x20 && b < termio.DEL:
		c.column++
	}
}

func (c *core) writeString(s string) {
	for i := 0; i < len(s); i++ {
		c.writeByte(s[i])
	}
}

func (c *core) writeBytes(p []byte) {
	for _, b := range p {
		c.writeByte(b)
	}
}

func (c *core) writeLine(s string) {
	c.writeString(s)
	c.writeNewline()
}

func (c *core) writeNewline() { c.writeString(c.newline) }

// freshLine starts a new output line unless the cursor is already at one.
func (c *core) freshLine() {
	if c.column != 0 {
		c.writeNewline()
	}
}

func (c *core) printf(format string, args ...interface{}) {
	fmt.Fprintf(termWriter{c}, format, args...)
}

func (c *core) flush() {
	if err := c.term.Flush(); err != nil {
		c.halt(err)
	}
}

// available returns how many input bytes may be read without blocking,
// counting any type-ahead.
func (c *core) available() (int, error) {
	n, err := c.term.Available()
	if len(c.ahead) > 0 {
		return len(c.ahead) + n, nil
	}
	if err != nil && err != io.EOF {
		c.halt(err)
	}
	return n, err
}

func (c *core) readByte() byte {
	if len(c.ahead) > 0 {
		b := c.ahead[0]
		c.ahead = c.ahead[1:]
		return b
	}
	b, err := c.term.ReadByte()
	if err != nil {
		c.halt(err)
	}
	return b
}

// pollBreak reads at most one pending input byte, returning true if it was
// ETX; any other byte is kept as type-ahead.
func (c *core) pollBreak() bool {
	n, err := c.term.Available()
	if n == 0 {
		if err != nil && err != io.EOF {
			c.halt(err)
		}
		return false
	}
	b, err := c.term.ReadByte()
	if err != nil {
		c.halt(err)
	}
	if b == termio.ETX {
		return true
	}
	c.ahead = append(c.ahead, b)
	return false
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	if logfn == nil {
		return func() {}
	}
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
