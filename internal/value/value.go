// Package value implements the tagged scalar used by every layer of the
// runtime: integers, long integers, reals and booleans, plus a marker type
// standing in for strings whose bytes live elsewhere.
package value

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Type tags a Value, a variable, or an array element.
type Type uint8

// Value types; the order is also the on-arena tag value.
const (
	Integer Type = iota
	LongInteger
	Real
	Boolean
	String
)

var typeNames = [...]string{
	Integer:     "INTEGER",
	LongInteger: "LONG",
	Real:        "REAL",
	Boolean:     "BOOLEAN",
	String:      "STRING",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Size returns the number of bytes a value of type t occupies in the arena.
// String returns 0: string storage is sized by its container.
func (t Type) Size() int {
	switch t {
	case Integer:
		return 2
	case LongInteger, Real:
		return 4
	case Boolean:
		return 1
	}
	return 0
}

// Valid returns true if t names a known type.
func (t Type) Valid() bool { return t <= String }

// rank orders numeric types for widening; Boolean widens as an Integer.
func (t Type) rank() int {
	switch t {
	case LongInteger:
		return 2
	case Real:
		return 3
	}
	return 1
}

// Widest returns the type both a and b promote to for arithmetic and
// comparison: Real over LongInteger over Integer, Boolean counting as
// Integer.
func Widest(a, b Type) Type {
	if a.rank() < b.rank() {
		a = b
	}
	if a == Boolean || a == String {
		return Integer
	}
	return a
}

// TypeOfName derives a variable type from the trailing sigil of name:
// "%%" long integer, "%" integer, "!" boolean, "$" string; unsuffixed names
// are Real when realDefault is set, Integer otherwise.
func TypeOfName(name string, realDefault bool) Type {
	n := len(name)
	switch {
	case n >= 2 && name[n-2:] == "%%":
		return LongInteger
	case n >= 1 && name[n-1] == '%':
		return Integer
	case n >= 1 && name[n-1] == '!':
		return Boolean
	case n >= 1 && name[n-1] == '$':
		return String
	case realDefault:
		return Real
	}
	return Integer
}

// Value is a closed tagged union over the scalar types.
// The zero Value is Integer 0.
type Value struct {
	typ Type
	i   int32
	r   float32
}

// StringMarker is the Value of an expression whose result is a string.
var StringMarker = Value{typ: String}

// Int constructs an Integer value.
func Int(n int16) Value { return Value{typ: Integer, i: int32(n)} }

// Long constructs a LongInteger value.
func Long(n int32) Value { return Value{typ: LongInteger, i: n} }

// Float constructs a Real value.
func Float(f float32) Value { return Value{typ: Real, r: f} }

// Bool constructs a Boolean value.
func Bool(b bool) Value {
	if b {
		return Value{typ: Boolean, i: 1}
	}
	return Value{typ: Boolean}
}

// Zero returns the zero value of type t.
func Zero(t Type) Value { return Value{typ: t} }

// Type returns the value's tag.
func (v Value) Type() Type { return v.typ }

// Int narrows v to an Integer, truncating reals and wrapping wider integers.
func (v Value) Int() int16 {
	if v.typ == Real {
		return int16(int32(v.r))
	}
	return int16(v.i)
}

// Long narrows or widens v to a LongInteger.
func (v Value) Long() int32 {
	switch v.typ {
	case Real:
		return int32(v.r)
	case Integer:
		return int32(int16(v.i))
	}
	return v.i
}

// Float converts v to a Real.
func (v Value) Float() float32 {
	if v.typ == Real {
		return v.r
	}
	return float32(v.Long())
}

// Bool converts v to a Boolean: any non-zero value is true.
func (v Value) Bool() bool {
	if v.typ == Real {
		return v.r != 0
	}
	return v.i != 0
}

// IsZero returns true if v is numerically zero.
func (v Value) IsZero() bool { return !v.Bool() }

// Convert returns v converted to type t; converting to String returns the
// marker.
func (v Value) Convert(t Type) Value {
	switch t {
	case Integer:
		return Int(v.Int())
	case LongInteger:
		return Long(v.Long())
	case Real:
		return Float(v.Float())
	case Boolean:
		return Bool(v.Bool())
	}
	return StringMarker
}

// Neg negates v; a Boolean becomes the Integer 0 or -1.
func (v Value) Neg() Value {
	switch v.typ {
	case Boolean:
		return Int(-int16(v.i))
	case Integer:
		return Int(-v.Int())
	case LongInteger:
		return Long(-v.i)
	case Real:
		return Float(-v.r)
	}
	return v
}

// Not returns the Boolean complement of v.
func (v Value) Not() Value { return Bool(!v.Bool()) }

// Add returns v + o in the widest operand type; integers wrap on overflow.
func (v Value) Add(o Value) Value {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		return Float(v.Float() + o.Float())
	case LongInteger:
		return Long(v.Long() + o.Long())
	default:
		return Int(v.Int() + o.Int())
	}
}

// Sub returns v - o in the widest operand type.
func (v Value) Sub(o Value) Value {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		return Float(v.Float() - o.Float())
	case LongInteger:
		return Long(v.Long() - o.Long())
	default:
		return Int(v.Int() - o.Int())
	}
}

// Mul returns v * o in the widest operand type.
func (v Value) Mul(o Value) Value {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		return Float(v.Float() * o.Float())
	case LongInteger:
		return Long(v.Long() * o.Long())
	default:
		return Int(v.Int() * o.Int())
	}
}

// Div returns v / o in the widest operand type; integer division truncates.
// Callers must check o.IsZero() first: integer division by zero panics.
func (v Value) Div(o Value) Value {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		return Float(v.Float() / o.Float())
	case LongInteger:
		return Long(v.Long() / o.Long())
	default:
		return Int(v.Int() / o.Int())
	}
}

// Mod returns the remainder of v / o, with the sign of v.
func (v Value) Mod(o Value) Value {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		return Float(float32(math.Mod(float64(v.Float()), float64(o.Float()))))
	case LongInteger:
		return Long(v.Long() % o.Long())
	default:
		return Int(v.Int() % o.Int())
	}
}

// Pow raises v to the power o. Negative or real exponents compute a Real
// through math.Pow; other exponents multiply in the widest integer width.
func (v Value) Pow(o Value) Value {
	t := Widest(v.typ, o.typ)
	if t == Real || o.Long() < 0 {
		return Float(float32(math.Pow(float64(v.Float()), float64(o.Float()))))
	}
	n := o.Long()
	if t == LongInteger {
		acc, base := int32(1), v.Long()
		for ; n > 0; n >>= 1 {
			if n&1 != 0 {
				acc *= base
			}
			base *= base
		}
		return Long(acc)
	}
	acc, base := int16(1), v.Int()
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			acc *= base
		}
		base *= base
	}
	return Int(acc)
}

// realEpsilon bounds the relative difference of "equal" reals.
const realEpsilon = 1.0 / (1 << 21)

func almostEqual(a, b float32) bool {
	if a == b {
		return true
	}
	diff := math.Abs(float64(a) - float64(b))
	largest := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	return diff <= largest*realEpsilon
}

// Compare returns -1, 0 or 1 ordering v against o after widening.
func (v Value) Compare(o Value) int {
	switch t := Widest(v.typ, o.typ); t {
	case Real:
		a, b := v.Float(), o.Float()
		switch {
		case almostEqual(a, b):
			return 0
		case a < b:
			return -1
		}
		return 1
	default:
		a, b := v.Long(), o.Long()
		switch {
		case a == b:
			return 0
		case a < b:
			return -1
		}
		return 1
	}
}

// Equal implements type aware equality.
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// NotEqual is the negation of Equal.
func (v Value) NotEqual(o Value) bool { return v.Compare(o) != 0 }

// Less returns v < o.
func (v Value) Less(o Value) bool { return v.Compare(o) < 0 }

// Greater returns v > o.
func (v Value) Greater(o Value) bool { return v.Compare(o) > 0 }

// LessEqual returns v <= o.
func (v Value) LessEqual(o Value) bool { return v.Compare(o) <= 0 }

// GreaterEqual returns v >= o.
func (v Value) GreaterEqual(o Value) bool { return v.Compare(o) >= 0 }

// Negative returns true if v is below zero.
func (v Value) Negative() bool {
	if v.typ == Real {
		return v.r < 0
	}
	return v.Long() < 0
}

// Encode writes v into b, which must hold at least v.Type().Size() bytes.
func (v Value) Encode(b []byte) {
	switch v.typ {
	case Integer:
		binary.LittleEndian.PutUint16(b, uint16(v.Int()))
	case LongInteger:
		binary.LittleEndian.PutUint32(b, uint32(v.i))
	case Real:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v.r))
	case Boolean:
		b[0] = byte(v.i)
	}
}

// Decode reads a value of type t from b.
func Decode(t Type, b []byte) Value {
	switch t {
	case Integer:
		return Int(int16(binary.LittleEndian.Uint16(b)))
	case LongInteger:
		return Long(int32(binary.LittleEndian.Uint32(b)))
	case Real:
		return Float(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Boolean:
		return Bool(b[0] != 0)
	}
	return StringMarker
}

// String formats v the way PRINT shows it, without the sign column.
func (v Value) String() string {
	switch v.typ {
	case Integer, LongInteger:
		return strconv.FormatInt(int64(v.Long()), 10)
	case Real:
		return strconv.FormatFloat(float64(v.r), 'G', 7, 32)
	case Boolean:
		if v.i != 0 {
			return "TRUE"
		}
		return "FALSE"
	}
	return "STRING"
}
