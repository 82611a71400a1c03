// Package feed joins a queue of input sources, such as program files followed
// by standard input, into a single io.Reader.
package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Location names a line in a Feed source.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Feed reads each queued source to its end before moving on to the next,
// tracking the name and line number being read. Reads happen on one
// goroutine; Location and Close may be called from any other.
type Feed struct {
	mu     sync.Mutex
	queue  []io.Reader
	cur    io.Reader
	loc    Location
	closed bool
}

// New creates a Feed over sources, in order.
func New(sources ...io.Reader) *Feed {
	return &Feed{queue: sources}
}

// Push appends a source to the queue.
func (f *Feed) Push(r io.Reader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, r)
}

// Location returns the position of the most recently read byte.
func (f *Feed) Location() Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loc
}

// Read implements io.Reader, returning io.EOF only once every source is done.
func (f *Feed) Read(p []byte) (int, error) {
	for {
		r, err := f.current()
		if r == nil {
			return 0, err
		}
		n, err := r.Read(p)
		if n > 0 {
			f.mu.Lock()
			f.loc.Line += bytes.Count(p[:n], []byte{'\n'})
			f.mu.Unlock()
		}
		if errors.Is(err, io.EOF) {
			f.advance(r)
			err = nil
		}
		if n > 0 || err != nil {
			return n, err
		}
	}
}

func (f *Feed) current() (io.Reader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, os.ErrClosed
	}
	if f.cur == nil {
		if len(f.queue) == 0 {
			return nil, io.EOF
		}
		f.cur = f.queue[0]
		f.queue = f.queue[1:]
		f.loc = Location{Name: nameOf(f.cur), Line: 1}
	}
	return f.cur, nil
}

func (f *Feed) advance(r io.Reader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cur == r {
		f.cur = nil
		if cl, ok := r.(io.Closer); ok {
			cl.Close()
		}
	}
}

// Close closes the current and every queued source that is an io.Closer; a
// Read blocked in a source may return early as a result.
func (f *Feed) Close() (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for _, r := range append([]io.Reader{f.cur}, f.queue...) {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	f.cur, f.queue = nil, nil
	return err
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
