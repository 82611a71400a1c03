package mem

import (
	"fmt"

	"github.com/jcorbin/gobasic/internal/value"
)

// FrameKind identifies a stack frame variant.
type FrameKind uint8

// Frame kinds.
const (
	SubroutineReturnFrame FrameKind = iota + 1
	ForNextFrame
	StringLiteralFrame
	ArrayDimensionFrame
	ArrayDimensionCountFrame
	ScalarFrame
	InputObjectFrame
)

var frameKindNames = [...]string{
	SubroutineReturnFrame:    "SubroutineReturn",
	ForNextFrame:             "ForNext",
	StringLiteralFrame:       "StringLiteral",
	ArrayDimensionFrame:      "ArrayDimension",
	ArrayDimensionCountFrame: "ArrayDimensionCount",
	ScalarFrame:              "Scalar",
	InputObjectFrame:         "InputObject",
}

func (k FrameKind) String() string {
	if int(k) < len(frameKindNames) && frameKindNames[k] != "" {
		return frameKindNames[k]
	}
	return fmt.Sprintf("FrameKind(%d)", uint8(k))
}

// Frame is one entry on the arena stack. Size reports the frame's packed
// byte cost, which is charged against arena capacity while it is pushed.
type Frame interface {
	Kind() FrameKind
	Size() int
}

// DirectLine is the Line offset recorded by frames created while executing an
// immediate (unnumbered) line.
const DirectLine = -1

// SubroutineReturn records where RETURN resumes.
type SubroutineReturn struct {
	Line int
	Pos  int
}

// ForNext records an active FOR loop.
type ForNext struct {
	Line    int
	Pos     int
	Var     string
	Current value.Value
	Step    value.Value
	Final   value.Value
}

// StringLiteral carries an intermediate string.
type StringLiteral struct {
	Text []byte
}

// ArrayDimension carries one array index or extent.
type ArrayDimension struct {
	Index uint16
}

// ArrayDimensionCount records how many ArrayDimension frames precede it.
type ArrayDimensionCount struct {
	Count uint8
}

// Scalar carries an intermediate numeric value.
type Scalar struct {
	Value value.Value
}

// InputObject names a variable still waiting for INPUT.
type InputObject struct {
	Var  string
	Type value.Type
}

// MaxStringLiteral bounds the text held by a StringLiteral frame.
const MaxStringLiteral = 0xff

func (*SubroutineReturn) Kind() FrameKind    { return SubroutineReturnFrame }
func (*ForNext) Kind() FrameKind             { return ForNextFrame }
func (*StringLiteral) Kind() FrameKind       { return StringLiteralFrame }
func (*ArrayDimension) Kind() FrameKind      { return ArrayDimensionFrame }
func (*ArrayDimensionCount) Kind() FrameKind { return ArrayDimensionCountFrame }
func (*Scalar) Kind() FrameKind              { return ScalarFrame }
func (*InputObject) Kind() FrameKind         { return InputObjectFrame }

func (*SubroutineReturn) Size() int    { return 4 }
func (f *ForNext) Size() int           { return 4 + NameSize + 1 + 3*f.Current.Type().Size() }
func (f *StringLiteral) Size() int     { return 2 + len(f.Text) }
func (*ArrayDimension) Size() int      { return 3 }
func (*ArrayDimensionCount) Size() int { return 2 }
func (f *Scalar) Size() int            { return 2 + f.Value.Type().Size() }
func (*InputObject) Size() int         { return 2 + NameSize }

func (f *SubroutineReturn) String() string {
	return fmt.Sprintf("SubroutineReturn line:%v pos:%v", f.Line, f.Pos)
}
func (f *ForNext) String() string {
	return fmt.Sprintf("ForNext %v=%v TO %v STEP %v line:%v pos:%v",
		f.Var, f.Current, f.Final, f.Step, f.Line, f.Pos)
}
func (f *StringLiteral) String() string       { return fmt.Sprintf("StringLiteral %q", f.Text) }
func (f *ArrayDimension) String() string      { return fmt.Sprintf("ArrayDimension %v", f.Index) }
func (f *ArrayDimensionCount) String() string { return fmt.Sprintf("ArrayDimensionCount %v", f.Count) }
func (f *Scalar) String() string              { return fmt.Sprintf("Scalar %v %v", f.Value.Type(), f.Value) }
func (f *InputObject) String() string         { return fmt.Sprintf("InputObject %v %v", f.Var, f.Type) }

// Push pushes f, charging its size against free space.
func (a *Arena) Push(f Frame) error {
	size := f.Size()
	if err := a.reserve("push "+f.Kind().String(), size); err != nil {
		return err
	}
	a.frames = append(a.frames, f)
	a.stackSize += size
	return nil
}

// Pop removes and returns the top frame.
func (a *Arena) Pop() (Frame, error) {
	i := len(a.frames) - 1
	if i < 0 {
		return nil, ErrStackEmpty
	}
	f := a.frames[i]
	a.frames[i] = nil
	a.frames = a.frames[:i]
	a.stackSize -= f.Size()
	return f, nil
}

// Top returns the top frame, or nil if the stack is empty.
func (a *Arena) Top() Frame {
	if i := len(a.frames) - 1; i >= 0 {
		return a.frames[i]
	}
	return nil
}

// Depth returns the number of frames on the stack.
func (a *Arena) Depth() int { return len(a.frames) }

// Frames returns the stack contents, bottom first. The slice aliases the
// stack and is only valid until the next push or pop.
func (a *Arena) Frames() []Frame { return a.frames }

// Truncate pops frames until at most depth remain.
func (a *Arena) Truncate(depth int) {
	for len(a.frames) > depth {
		_, _ = a.Pop()
	}
}

// ClearStack pops every frame.
func (a *Arena) ClearStack() {
	clear(a.frames)
	a.frames = a.frames[:0]
	a.stackSize = 0
}

// PushValue pushes a Scalar frame.
func (a *Arena) PushValue(v value.Value) error { return a.Push(&Scalar{Value: v}) }

// PopValue pops a Scalar frame; ErrFrameKind is returned, and nothing popped,
// if the top frame is of another kind.
func (a *Arena) PopValue() (value.Value, error) {
	switch f := a.Top().(type) {
	case nil:
		return value.Value{}, ErrStackEmpty
	case *Scalar:
		_, _ = a.Pop()
		return f.Value, nil
	}
	return value.Value{}, ErrFrameKind
}

// PushString pushes a StringLiteral frame holding a copy of s, truncated to
// MaxStringLiteral bytes.
func (a *Arena) PushString(s []byte) error {
	if len(s) > MaxStringLiteral {
		s = s[:MaxStringLiteral]
	}
	return a.Push(&StringLiteral{Text: append([]byte(nil), s...)})
}

// PopString pops a StringLiteral frame.
func (a *Arena) PopString() ([]byte, error) {
	switch f := a.Top().(type) {
	case nil:
		return nil, ErrStackEmpty
	case *StringLiteral:
		_, _ = a.Pop()
		return f.Text, nil
	}
	return nil, ErrFrameKind
}

// PopIndex pops an ArrayDimension frame.
func (a *Arena) PopIndex() (uint16, error) {
	switch f := a.Top().(type) {
	case nil:
		return 0, ErrStackEmpty
	case *ArrayDimension:
		_, _ = a.Pop()
		return f.Index, nil
	}
	return 0, ErrFrameKind
}

// PeekKind returns the kind of the top frame, or zero if the stack is empty.
func (a *Arena) PeekKind() FrameKind {
	if f := a.Top(); f != nil {
		return f.Kind()
	}
	return 0
}
