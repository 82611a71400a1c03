package mem

import (
	"bytes"
	"strings"

	"github.com/jcorbin/gobasic/internal/value"
)

const (
	// NameSize is the number of name bytes kept for variables and arrays.
	NameSize = 8

	// StringSize is the capacity of a string variable or array element.
	StringSize = 32
)

type name [NameSize]byte

// NormalizeName upper-cases name, truncating its stem so that the stem and
// its type sigil together fit in NameSize bytes.
func NormalizeName(s string) string {
	s = strings.ToUpper(s)
	if len(s) <= NameSize {
		return s
	}
	stem, sigil := s, ""
	switch {
	case strings.HasSuffix(s, "%%"):
		stem, sigil = s[:len(s)-2], "%%"
	case strings.HasSuffix(s, "%"), strings.HasSuffix(s, "!"), strings.HasSuffix(s, "$"):
		stem, sigil = s[:len(s)-1], s[len(s)-1:]
	}
	return stem[:NameSize-len(sigil)] + sigil
}

func makeName(s string) (n name) {
	copy(n[:], NormalizeName(s))
	return n
}

func (n name) String() string {
	if i := bytes.IndexByte(n[:], 0); i >= 0 {
		return string(n[:i])
	}
	return string(n[:])
}

// slotSize returns the storage size of one value of type t.
func slotSize(t value.Type) int {
	if t == value.String {
		return 1 + StringSize
	}
	return t.Size()
}

func varSize(t value.Type) int { return NameSize + 1 + slotSize(t) }

// seekVar returns the offset of the variable record named n, or of the first
// record sorting after it.
func (a *Arena) seekVar(n name) (offset int, found bool) {
	off := a.textEnd
	for off < a.varsEnd {
		switch c := bytes.Compare(a.buf[off:off+NameSize], n[:]); {
		case c == 0:
			return off, true
		case c > 0:
			return off, false
		}
		off += varSize(value.Type(a.buf[off+NameSize]))
	}
	return off, false
}

func (a *Arena) defineVar(n name, t value.Type) (int, error) {
	off, found := a.seekVar(n)
	if found {
		if value.Type(a.buf[off+NameSize]) != t {
			return 0, ErrType
		}
		return off, nil
	}
	size := varSize(t)
	if err := a.reserve("variable", size); err != nil {
		return 0, err
	}
	a.open(varsRegion, off, size)
	copy(a.buf[off:], n[:])
	a.buf[off+NameSize] = byte(t)
	return off, nil
}

// Variable returns the value of the scalar variable name. A variable that was
// never assigned reads as the zero value of t.
func (a *Arena) Variable(name string, t value.Type) (value.Value, bool) {
	off, found := a.seekVar(makeName(name))
	if !found {
		return value.Zero(t), false
	}
	vt := value.Type(a.buf[off+NameSize])
	if vt == value.String {
		return value.StringMarker, true
	}
	return value.Decode(vt, a.buf[off+NameSize+1:]), true
}

// SetVariable assigns v, converted to t, to the variable name, creating it if
// needed.
func (a *Arena) SetVariable(name string, t value.Type, v value.Value) error {
	if t == value.String {
		return ErrType
	}
	off, err := a.defineVar(makeName(name), t)
	if err != nil {
		return err
	}
	v.Convert(t).Encode(a.buf[off+NameSize+1:])
	return nil
}

// String returns a copy of the string variable name; an unassigned variable
// reads as the empty string.
func (a *Arena) String(name string) ([]byte, bool) {
	off, found := a.seekVar(makeName(name))
	if !found || value.Type(a.buf[off+NameSize]) != value.String {
		return nil, false
	}
	return getString(a.buf[off+NameSize+1:]), true
}

// SetString assigns s to the string variable name, truncating it to
// StringSize bytes.
func (a *Arena) SetString(name string, s []byte) error {
	off, err := a.defineVar(makeName(name), value.String)
	if err != nil {
		return err
	}
	putString(a.buf[off+NameSize+1:], s)
	return nil
}

// EachVariable calls fn for every variable in name order; s holds the bytes
// of string variables.
func (a *Arena) EachVariable(fn func(name string, v value.Value, s []byte)) {
	for off := a.textEnd; off < a.varsEnd; {
		var n name
		copy(n[:], a.buf[off:])
		t := value.Type(a.buf[off+NameSize])
		slot := a.buf[off+NameSize+1:]
		if t == value.String {
			fn(n.String(), value.StringMarker, getString(slot))
		} else {
			fn(n.String(), value.Decode(t, slot), nil)
		}
		off += varSize(t)
	}
}

func getString(slot []byte) []byte {
	n := int(slot[0])
	return append([]byte(nil), slot[1:1+n]...)
}

func putString(slot []byte, s []byte) {
	if len(s) > StringSize {
		s = s[:StringSize]
	}
	slot[0] = byte(len(s))
	copy(slot[1:], s)
	clear(slot[1+len(s) : 1+StringSize])
}
