package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/value"
)

// dumper prints the arena for the DUMP command: region bounds, variables,
// arrays and the frame stack.
type dumper struct {
	s   *Session
	out io.Writer

	// maxElements bounds how many elements are shown per array.
	maxElements int
}

func (dump dumper) dump() {
	a := dump.s.arena
	fmt.Fprintf(dump.out, "# ARENA %v BYTES, %v FREE\n", a.Size(), a.Free())
	fmt.Fprintf(dump.out, "  TEXT   @0-%v\n", a.TextEnd())
	fmt.Fprintf(dump.out, "  VARS   @%v-%v\n", a.TextEnd(), a.VariablesEnd())
	fmt.Fprintf(dump.out, "  ARRAYS @%v-%v\n", a.VariablesEnd(), a.ArraysEnd())
	fmt.Fprintf(dump.out, "  STACK  @%v-%v\n", a.StackPointer(), a.Size())
	dump.dumpVars()
	dump.dumpArrays()
	dump.dumpStack()
}

func (dump dumper) dumpVars() {
	fmt.Fprintf(dump.out, "# VARS\n")
	dump.s.arena.EachVariable(func(name string, v value.Value, s []byte) {
		fmt.Fprintf(dump.out, "  %v = %v\n", name, formatValue(v, s))
	})
}

func (dump dumper) dumpArrays() {
	limit := dump.maxElements
	if limit == 0 {
		limit = 16
	}
	fmt.Fprintf(dump.out, "# ARRAYS\n")
	a := dump.s.arena
	a.EachArray(func(arr mem.Array) {
		fmt.Fprintf(dump.out, "  %v%v =", arr.Name, formatDims(arr.Dims))
		a.EachElement(arr, func(i int, v value.Value, s []byte) {
			switch {
			case i < limit:
				fmt.Fprintf(dump.out, " %v", formatValue(v, s))
			case i == limit:
				fmt.Fprintf(dump.out, " ...")
			}
		})
		fmt.Fprintf(dump.out, "\n")
	})
}

func (dump dumper) dumpStack() {
	fmt.Fprintf(dump.out, "# STACK\n")
	frames := dump.s.arena.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		fmt.Fprintf(dump.out, "  %v\n", dump.formatFrame(frames[i]))
	}
}

func (dump dumper) formatFrame(f mem.Frame) string {
	switch f := f.(type) {
	case *mem.SubroutineReturn:
		return fmt.Sprintf("GOSUB FROM %v", dump.lineName(f.Line))
	case *mem.ForNext:
		return fmt.Sprintf("FOR %v = %v TO %v STEP %v IN %v",
			f.Var, f.Current, f.Final, f.Step, dump.lineName(f.Line))
	case *mem.InputObject:
		return fmt.Sprintf("INPUT %v", f.Var)
	}
	return fmt.Sprint(f)
}

func (dump dumper) lineName(offset int) string {
	if n := dump.s.lineNumber(offset); n > 0 {
		return strconv.Itoa(n)
	}
	return "DIRECT"
}

func formatValue(v value.Value, s []byte) string {
	if v.Type() == value.String {
		return strconv.Quote(string(s))
	}
	return v.String()
}

func formatDims(dims []uint16) string {
	buf := []byte{'('}
	for i, d := range dims {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(d), 10)
	}
	return string(append(buf, ')'))
}
