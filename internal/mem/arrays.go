package mem

import (
	"bytes"

	"github.com/jcorbin/gobasic/internal/value"
)

// Array describes one dimensioned array.
type Array struct {
	Name   string
	Type   value.Type
	Dims   []uint16
	Offset int
	Size   int
}

// Len returns the number of elements in the array.
func (arr Array) Len() int {
	n := 1
	for _, d := range arr.Dims {
		n *= int(d) + 1
	}
	return n
}

func (a *Arena) arrayAt(off int) Array {
	var n name
	copy(n[:], a.buf[off:])
	t := value.Type(a.buf[off+NameSize])
	nd := int(a.buf[off+NameSize+1])
	arr := Array{Name: n.String(), Type: t, Offset: off, Dims: make([]uint16, nd)}
	p := off + NameSize + 2
	for i := range arr.Dims {
		arr.Dims[i] = u16(a.buf[p:])
		p += 2
	}
	arr.Size = p - off + arr.Len()*slotSize(t)
	return arr
}

func (a *Arena) seekArray(n name) (offset int, found bool) {
	off := a.varsEnd
	for off < a.arraysEnd {
		switch c := bytes.Compare(a.buf[off:off+NameSize], n[:]); {
		case c == 0:
			return off, true
		case c > 0:
			return off, false
		}
		off += a.arrayAt(off).Size
	}
	return off, false
}

// DimArray creates the array name with the given extents; extent k allows
// indices 0 through k.
func (a *Arena) DimArray(name string, t value.Type, dims []uint16) error {
	if len(dims) == 0 || len(dims) > 0xff {
		return ErrBadIndex
	}
	n := makeName(name)
	off, found := a.seekArray(n)
	if found {
		return ErrRedimensioned
	}
	count := 1
	for _, d := range dims {
		count *= int(d) + 1
		if count > len(a.buf) {
			return LimitError{Op: "dim", Need: count, Free: a.Free()}
		}
	}
	header := NameSize + 2 + 2*len(dims)
	size := header + count*slotSize(t)
	if err := a.reserve("dim", size); err != nil {
		return err
	}
	a.open(arraysRegion, off, size)
	copy(a.buf[off:], n[:])
	a.buf[off+NameSize] = byte(t)
	a.buf[off+NameSize+1] = byte(len(dims))
	for i, d := range dims {
		putU16(a.buf[off+NameSize+2+2*i:], d)
	}
	return nil
}

// element returns the offset of an element slot along with the array's type.
func (a *Arena) element(name string, index []uint16) (int, value.Type, error) {
	off, found := a.seekArray(makeName(name))
	if !found {
		return 0, 0, ErrNoArray
	}
	arr := a.arrayAt(off)
	if len(index) != len(arr.Dims) {
		return 0, 0, ErrBadIndex
	}
	flat := 0
	for i, d := range arr.Dims {
		if index[i] > d {
			return 0, 0, ErrBadIndex
		}
		flat = flat*(int(d)+1) + int(index[i])
	}
	data := off + NameSize + 2 + 2*len(arr.Dims)
	return data + flat*slotSize(arr.Type), arr.Type, nil
}

// Element reads a numeric array element.
func (a *Arena) Element(name string, index []uint16) (value.Value, error) {
	off, t, err := a.element(name, index)
	if err != nil {
		return value.Value{}, err
	}
	if t == value.String {
		return value.Value{}, ErrType
	}
	return value.Decode(t, a.buf[off:]), nil
}

// SetElement writes a numeric array element, converting v to the array type.
func (a *Arena) SetElement(name string, index []uint16, v value.Value) error {
	off, t, err := a.element(name, index)
	if err != nil {
		return err
	}
	if t == value.String {
		return ErrType
	}
	v.Convert(t).Encode(a.buf[off:])
	return nil
}

// ElementString reads a string array element.
func (a *Arena) ElementString(name string, index []uint16) ([]byte, error) {
	off, t, err := a.element(name, index)
	if err != nil {
		return nil, err
	}
	if t != value.String {
		return nil, ErrType
	}
	return getString(a.buf[off:]), nil
}

// SetElementString writes a string array element, truncating s to StringSize
// bytes.
func (a *Arena) SetElementString(name string, index []uint16, s []byte) error {
	off, t, err := a.element(name, index)
	if err != nil {
		return err
	}
	if t != value.String {
		return ErrType
	}
	putString(a.buf[off:], s)
	return nil
}

// EachArray calls fn for every array in name order.
func (a *Arena) EachArray(fn func(arr Array)) {
	for off := a.varsEnd; off < a.arraysEnd; {
		arr := a.arrayAt(off)
		fn(arr)
		off += arr.Size
	}
}

// EachElement calls fn for every element of arr in row-major order; s holds
// the bytes of string elements.
func (a *Arena) EachElement(arr Array, fn func(i int, v value.Value, s []byte)) {
	size := slotSize(arr.Type)
	off := arr.Offset + NameSize + 2 + 2*len(arr.Dims)
	for i, n := 0, arr.Len(); i < n; i, off = i+1, off+size {
		if arr.Type == value.String {
			fn(i, value.StringMarker, getString(a.buf[off:]))
		} else {
			fn(i, value.Decode(arr.Type, a.buf[off:]), nil)
		}
	}
}
