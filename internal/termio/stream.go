package termio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
)

// Stream is a terminal over plain streams: output goes to a WriteFlusher,
// while input is pumped in from an io.Reader by a separate goroutine, so
// that Available never blocks.
type Stream struct {
	out WriteFlusher

	// EOF, when non-zero, is an input byte that ends input as if the reader
	// had; raw mode terminals use EOT.
	EOF byte

	mu    sync.Mutex
	in    []byte
	err   error
	ready chan struct{}
}

// NewStream creates a Stream writing to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		out:   NewWriteFlusher(w),
		ready: make(chan struct{}, 1),
	}
}

// Pump copies r into the input buffer until r ends, fails, or ctx is done.
// End of input, including a closed reader, is recorded as io.EOF and is not
// returned as an error.
func (s *Stream) Pump(ctx context.Context, r io.Reader) error {
	var buf [256]byte
	for {
		if err := ctx.Err(); err != nil {
			s.finish(io.EOF)
			return err
		}
		n, err := r.Read(buf[:])
		chunk := buf[:n]
		if s.EOF != 0 {
			if i := bytes.IndexByte(chunk, s.EOF); i >= 0 {
				chunk, err = chunk[:i], io.EOF
			}
		}
		s.mu.Lock()
		s.in = append(s.in, chunk...)
		s.mu.Unlock()
		s.signal()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				s.finish(io.EOF)
				return nil
			}
			s.finish(err)
			return err
		}
	}
}

func (s *Stream) finish(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.signal()
}

func (s *Stream) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Available returns the number of buffered input bytes; once input has
// ended and the buffer is drained it returns io.EOF.
func (s *Stream) Available() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.in); n > 0 {
		return n, nil
	}
	return 0, s.err
}

// ReadByte returns the next buffered input byte, io.EOF after input ended,
// or io.ErrNoProgress if no byte is buffered yet.
func (s *Stream) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.in) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.ErrNoProgress
	}
	b := s.in[0]
	s.in = s.in[1:]
	return b, nil
}

// WaitInput blocks until input is buffered, input ends, or ctx is done.
func (s *Stream) WaitInput(ctx context.Context) error {
	if n, err := s.Available(); n > 0 || err != nil {
		return nil
	}
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WriteByte writes one output byte.
func (s *Stream) WriteByte(b byte) error {
	if bw, ok := s.out.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	_, err := s.out.Write([]byte{b})
	return err
}

// Flush flushes output.
func (s *Stream) Flush() error { return s.out.Flush() }
