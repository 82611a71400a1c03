// Package mem implements the single byte arena that holds a program's text,
// its variables, its arrays and its control stack.
//
// The regions are laid out from the bottom of the arena upward:
//
//	[0, TextEnd)                 program lines, sorted by number
//	[TextEnd, VariablesEnd)      scalar and string variables, sorted by name
//	[VariablesEnd, ArraysEnd)    arrays, sorted by name
//	[ArraysEnd, StackPointer)    free space
//	[StackPointer, Size)         frames, charged by their packed byte size
//
// Growing any region, or pushing any frame, fails with a LimitError once the
// free space is exhausted.
package mem

import (
	"errors"
	"fmt"
)

// Errors returned by arena operations.
var (
	ErrRedimensioned = errors.New("array already dimensioned")
	ErrNoArray       = errors.New("no such array")
	ErrBadIndex      = errors.New("array index out of range")
	ErrStackEmpty    = errors.New("stack empty")
	ErrFrameKind     = errors.New("unexpected stack frame")
	ErrType          = errors.New("value type mismatch")
	ErrLineTooLong   = errors.New("line too long")
	ErrCorruptText   = errors.New("corrupt program text")
)

// LimitError indicates that an operation needed more free arena space than
// was available.
type LimitError struct {
	Op   string
	Need int
	Free int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v: need %v bytes, have %v", lim.Op, lim.Need, lim.Free)
}

// Arena is a fixed capacity byte buffer partitioned into program, variable,
// array and stack regions.
type Arena struct {
	buf       []byte
	textEnd   int
	varsEnd   int
	arraysEnd int

	frames    []Frame
	stackSize int
}

// New allocates an arena of size bytes.
func New(size int) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// Size returns the arena capacity.
func (a *Arena) Size() int { return len(a.buf) }

// TextEnd returns the end offset of the program text region.
func (a *Arena) TextEnd() int { return a.textEnd }

// VariablesEnd returns the end offset of the variables region.
func (a *Arena) VariablesEnd() int { return a.varsEnd }

// ArraysEnd returns the end offset of the arrays region.
func (a *Arena) ArraysEnd() int { return a.arraysEnd }

// StackPointer returns the offset of the most recently pushed frame, or Size
// when the stack is empty.
func (a *Arena) StackPointer() int { return len(a.buf) - a.stackSize }

// Free returns the number of unused bytes between the arrays region and the
// stack.
func (a *Arena) Free() int { return a.StackPointer() - a.arraysEnd }

// Reset discards everything: program, data and stack.
func (a *Arena) Reset() {
	clear(a.buf[:a.arraysEnd])
	a.textEnd, a.varsEnd, a.arraysEnd = 0, 0, 0
	a.ClearStack()
}

// ClearData discards all variables, arrays and frames, keeping program text.
func (a *Arena) ClearData() {
	clear(a.buf[a.textEnd:a.arraysEnd])
	a.varsEnd, a.arraysEnd = a.textEnd, a.textEnd
	a.ClearStack()
}

type region uint8

const (
	textRegion region = iota
	varsRegion
	arraysRegion
)

func (a *Arena) reserve(op string, n int) error {
	if free := a.Free(); n > free {
		return LimitError{Op: op, Need: n, Free: free}
	}
	return nil
}

// open makes room for n zeroed bytes at offset at, inside region r, moving
// every byte above it upward.
func (a *Arena) open(r region, at, n int) {
	end := a.arraysEnd
	copy(a.buf[at+n:end+n], a.buf[at:end])
	clear(a.buf[at : at+n])
	switch r {
	case textRegion:
		a.textEnd += n
		a.varsEnd += n
	case varsRegion:
		a.varsEnd += n
	}
	a.arraysEnd += n
}

// shut removes n bytes at offset at, inside region r, moving every byte above
// them downward.
func (a *Arena) shut(r region, at, n int) {
	end := a.arraysEnd
	copy(a.buf[at:end-n], a.buf[at+n:end])
	clear(a.buf[end-n : end])
	switch r {
	case textRegion:
		a.textEnd -= n
		a.varsEnd -= n
	case varsRegion:
		a.varsEnd -= n
	}
	a.arraysEnd -= n
}

func u16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }

func putU16(b []byte, n uint16) {
	b[0] = byte(n)
	b[1] = byte(n >> 8)
}
