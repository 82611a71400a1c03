// Package funcs provides the pluggable function and command tables consulted
// by the interpreter when it meets an identifier that is not a variable.
//
// Operations see only a Stack: arguments are pushed left to right before the
// call, so an operation pops them in reverse; a function then pushes exactly
// one result, while a command pushes nothing.
package funcs

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gobasic/internal/value"
)

// ErrArgument is returned by operations given an argument they can not use.
var ErrArgument = errors.New("invalid argument")

// Stack is the part of the runtime stack visible to operations.
type Stack interface {
	PushValue(v value.Value) error
	PopValue() (value.Value, error)
	PushString(s []byte) error
	PopString() ([]byte, error)
	Depth() int
}

// Operation implements a function or command.
type Operation func(s Stack) error

// Table resolves function and command names. Names are upper case, sigil
// included.
type Table interface {
	Function(name string) (Operation, bool)
	Command(name string) (Operation, bool)
}

// Library is a Table backed by maps.
type Library struct {
	Name      string
	Functions map[string]Operation
	Commands  map[string]Operation
}

// Function implements Table.
func (lib Library) Function(name string) (Operation, bool) {
	op, ok := lib.Functions[name]
	return op, ok
}

// Command implements Table.
func (lib Library) Command(name string) (Operation, bool) {
	op, ok := lib.Commands[name]
	return op, ok
}

func (lib Library) String() string {
	return fmt.Sprintf("%v(%v functions, %v commands)", lib.Name, len(lib.Functions), len(lib.Commands))
}

type chain []Table

// Chain combines tables; earlier tables shadow later ones. Nil tables are
// skipped.
func Chain(tables ...Table) Table {
	var c chain
	for _, t := range tables {
		switch impl := t.(type) {
		case nil:
		case chain:
			c = append(c, impl...)
		default:
			c = append(c, t)
		}
	}
	return c
}

func (c chain) Function(name string) (Operation, bool) {
	for _, t := range c {
		if op, ok := t.Function(name); ok {
			return op, true
		}
	}
	return nil, false
}

func (c chain) Command(name string) (Operation, bool) {
	for _, t := range c {
		if op, ok := t.Command(name); ok {
			return op, true
		}
	}
	return nil, false
}

// popInt pops a value and narrows it to a non-negative int no larger than max.
func popInt(s Stack, max int) (int, error) {
	v, err := s.PopValue()
	if err != nil {
		return 0, err
	}
	n := v.Long()
	if v.Negative() || int64(n) > int64(max) {
		return 0, ErrArgument
	}
	return int(n), nil
}
