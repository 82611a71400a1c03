// Package termio provides the byte-level terminal plumbing used to connect an
// interpreter session to real streams: flushable writers, control byte names,
// and a Stream terminal whose input is pumped in from any io.Reader.
package termio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher creates a new flushable writer: in-memory buffers and
// io.Discard get a noop Flush, existing WriteFlushers are returned as-is, and
// anything else is wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == io.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// bytes.Buffer and strings.Builder hold everything written already
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee is a WriteFlusher that copies every write to each of its members.
type Tee []WriteFlusher

// NewTee builds a Tee, flattening nested Tees and dropping nils; a single
// remaining member is returned unwrapped.
func NewTee(wfs ...WriteFlusher) WriteFlusher {
	var tee Tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case Tee:
			tee = append(tee, impl...)
		default:
			tee = append(tee, wf)
		}
	}
	switch len(tee) {
	case 0:
		return discardWriteFlusher
	case 1:
		return tee[0]
	}
	return tee
}

func (tee Tee) Write(p []byte) (int, error) {
	for _, wf := range tee {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every member, returning the first error encountered.
func (tee Tee) Flush() error {
	var first error
	for _, wf := range tee {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
