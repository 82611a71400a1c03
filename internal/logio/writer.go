// Package logio adapts between line oriented logging and byte streams: Writer
// turns writes into log calls, while Logger writes leveled log lines.
package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.Writer that passes each completed line to Logf, as used to
// route output into testing.T.Logf.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p and logs any completed lines; it is safe to call from
// multiple goroutines.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.logLines(false)
	return len(p), nil
}

// Sync logs any partial line still buffered.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.logLines(true)
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }

func (lw *Writer) logLines(partial bool) {
	for lw.buf.Len() > 0 {
		line, rest, found := bytes.Cut(lw.buf.Bytes(), []byte{'\n'})
		if !found && !partial {
			return
		}
		lw.Logf("%s", line)
		lw.buf.Next(len(lw.buf.Bytes()) - len(rest))
	}
}
