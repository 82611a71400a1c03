package main

import (
	"context"
	"io"
)

// Terminal is the byte oriented console a Session runs on. Available must
// never block; ReadByte is only called after Available reports a byte.
type Terminal interface {
	Available() (int, error)
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Flush() error
}

// inputWaiter is implemented by terminals that can block until Available
// would report input, such as termio.Stream.
type inputWaiter interface {
	WaitInput(ctx context.Context) error
}

// termWriter adapts a core into an io.Writer, for use with fmt; each '\n'
// is written as the session newline.
type termWriter struct{ *core }

func (tw termWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			tw.writeNewline()
		} else {
			tw.writeByte(b)
		}
	}
	return len(p), nil
}

// bufferTerminal is a Terminal over an in-memory input script; once the
// script is consumed, Available reports io.EOF.
type bufferTerminal struct {
	in  []byte
	out io.Writer
}

// NewBufferTerminal creates a Terminal that reads input from the given
// bytes, writing output to w.
func NewBufferTerminal(input []byte, w io.Writer) Terminal {
	return &bufferTerminal{in: input, out: w}
}

func (bt *bufferTerminal) Available() (int, error) {
	if len(bt.in) == 0 {
		return 0, io.EOF
	}
	return len(bt.in), nil
}

func (bt *bufferTerminal) ReadByte() (byte, error) {
	if len(bt.in) == 0 {
		return 0, io.EOF
	}
	b := bt.in[0]
	bt.in = bt.in[1:]
	return b, nil
}

func (bt *bufferTerminal) WriteByte(b byte) error {
	if bw, ok := bt.out.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	_, err := bt.out.Write([]byte{b})
	return err
}

func (bt *bufferTerminal) Flush() error {
	if fl, ok := bt.out.(interface{ Flush() error }); ok {
		return fl.Flush()
	}
	return nil
}
