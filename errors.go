package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/lexer"
	"github.com/jcorbin/gobasic/internal/mem"
	"github.com/jcorbin/gobasic/internal/storage"
)

// StaticError is a grammar error, detected while parsing a line.
type StaticError uint8

// Static error codes.
const (
	OperatorExpected StaticError = iota + 1
	ExpressionExpected
	IntegerExpressionExpected
	ThenOrGotoExpected
	InvalidDataExpression
	IdentifierExpected
	UnexpectedToken
	LineTooLong
	InvalidLineNumber
)

var staticMessages = [...]string{
	OperatorExpected:          "OPERATOR EXPECTED",
	ExpressionExpected:        "EXPRESSION EXPECTED",
	IntegerExpressionExpected: "INTEGER EXPRESSION EXPECTED",
	ThenOrGotoExpected:        "THEN OR GOTO EXPECTED",
	InvalidDataExpression:     "INVALID DATA EXPRESSION",
	IdentifierExpected:        "IDENTIFIER EXPECTED",
	UnexpectedToken:           "UNEXPECTED TOKEN",
	LineTooLong:               "LINE TOO LONG",
	InvalidLineNumber:         "INVALID LINE NUMBER",
}

func (code StaticError) Error() string {
	if int(code) < len(staticMessages) && staticMessages[code] != "" {
		return fmt.Sprintf("STATIC ERROR %d: %s", uint8(code), staticMessages[code])
	}
	return fmt.Sprintf("STATIC ERROR %d", uint8(code))
}

// DynamicError is a runtime error, detected while executing a line.
type DynamicError uint8

// Dynamic error codes.
const (
	OutOfMemory DynamicError = iota + 1
	RedimensionedArray
	NoSuchArray
	IndexOutOfRange
	NoSuchLine
	NextWithoutFor
	ReturnWithoutGosub
	TypeMismatch
	DivisionByZero
	BadChecksum
	InvalidTab
	InvalidArgument
	StorageError
)

var dynamicMessages = [...]string{
	OutOfMemory:        "OUT OF MEMORY",
	RedimensionedArray: "REDIMENSIONED ARRAY",
	NoSuchArray:        "NO SUCH ARRAY",
	IndexOutOfRange:    "INDEX OUT OF RANGE",
	NoSuchLine:         "NO SUCH LINE",
	NextWithoutFor:     "NEXT WITHOUT FOR",
	ReturnWithoutGosub: "RETURN WITHOUT GOSUB",
	TypeMismatch:       "TYPE MISMATCH",
	DivisionByZero:     "DIVISION BY ZERO",
	BadChecksum:        "BAD CHECKSUM",
	InvalidTab:         "INVALID TAB",
	InvalidArgument:    "INVALID ARGUMENT",
	StorageError:       "STORAGE ERROR",
}

func (code DynamicError) Error() string {
	if int(code) < len(dynamicMessages) && dynamicMessages[code] != "" {
		return fmt.Sprintf("DYNAMIC ERROR %d: %s", uint8(code), dynamicMessages[code])
	}
	return fmt.Sprintf("DYNAMIC ERROR %d", uint8(code))
}

// lineError is an error raised while running a line; it prints as the code's
// message, naming the stored line, if any.
type lineError struct {
	code  error
	cause error
	line  int
}

func (le lineError) Error() string {
	if le.line > 0 {
		return fmt.Sprintf("%v IN %d", le.code, le.line)
	}
	return le.code.Error()
}

// Unwrap allows errors.Is to match the code and errors.As to reach the cause.
func (le lineError) Unwrap() []error {
	if le.cause != nil {
		return []error{le.code, le.cause}
	}
	return []error{le.code}
}

// codeOf classifies an error returned by the arena, a function table or a
// storage slot as the error code a user sees.
func codeOf(err error) error {
	var (
		static  StaticError
		dynamic DynamicError
		limit   mem.LimitError
		syntax  lexer.SyntaxError
	)
	switch {
	case errors.As(err, &static):
		return static
	case errors.As(err, &dynamic):
		return dynamic
	case errors.As(err, &limit):
		return OutOfMemory
	case errors.As(err, &syntax):
		return UnexpectedToken
	case errors.Is(err, mem.ErrRedimensioned):
		return RedimensionedArray
	case errors.Is(err, mem.ErrNoArray):
		return NoSuchArray
	case errors.Is(err, mem.ErrBadIndex):
		return IndexOutOfRange
	case errors.Is(err, mem.ErrType), errors.Is(err, mem.ErrFrameKind):
		return TypeMismatch
	case errors.Is(err, mem.ErrStackEmpty), errors.Is(err, funcs.ErrArgument):
		return InvalidArgument
	case errors.Is(err, mem.ErrLineTooLong):
		return LineTooLong
	case errors.Is(err, storage.ErrChecksum), errors.Is(err, storage.ErrLength), errors.Is(err, mem.ErrCorruptText):
		return BadChecksum
	}
	return StorageError
}

// haltError carries a terminal failure out of the run loop.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
