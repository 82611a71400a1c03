package mem

const (
	lineHeaderSize = 3

	// MaxLineBody is the largest compacted line body a record can hold.
	MaxLineBody = 0xff - lineHeaderSize
)

// Line is a view of one stored program line.
type Line struct {
	Number uint16
	Offset int
	Body   []byte
}

// Size returns the record size of the line, header included.
func (l Line) Size() int { return lineHeaderSize + len(l.Body) }

// End returns the offset just past the line record.
func (l Line) End() int { return l.Offset + l.Size() }

// LineAt returns the line record starting at offset, if any.
// The returned Body aliases arena memory and is only valid until the next
// text mutation.
func (a *Arena) LineAt(offset int) (Line, bool) {
	if offset < 0 || offset+lineHeaderSize > a.textEnd {
		return Line{}, false
	}
	size := int(a.buf[offset+2])
	end := offset + size
	if size < lineHeaderSize || end > a.textEnd {
		return Line{}, false
	}
	return Line{
		Number: u16(a.buf[offset:]),
		Offset: offset,
		Body:   a.buf[offset+lineHeaderSize : end : end],
	}, true
}

// FirstLine returns the lowest numbered line.
func (a *Arena) FirstLine() (Line, bool) { return a.LineAt(0) }

// NextLine returns the line following l.
func (a *Arena) NextLine(l Line) (Line, bool) { return a.LineAt(l.End()) }

// seekLine returns the offset of the first line numbered num or higher, or
// TextEnd if there is none; found is true on an exact match.
func (a *Arena) seekLine(num uint16) (offset int, found bool) {
	l, ok := a.FirstLine()
	for ; ok; l, ok = a.NextLine(l) {
		if l.Number >= num {
			return l.Offset, l.Number == num
		}
	}
	return a.textEnd, false
}

// FindLine returns the line numbered num.
func (a *Arena) FindLine(num uint16) (Line, bool) {
	if off, found := a.seekLine(num); found {
		return a.LineAt(off)
	}
	return Line{}, false
}

// InsertLine stores body as line num, replacing any existing line with that
// number, shifting variables and arrays upward as needed.
func (a *Arena) InsertLine(num uint16, body []byte) error {
	if len(body) > MaxLineBody {
		return ErrLineTooLong
	}
	size := lineHeaderSize + len(body)
	off, found := a.seekLine(num)
	if found {
		old := int(a.buf[off+2])
		if delta := size - old; delta > 0 {
			if err := a.reserve("line insert", delta); err != nil {
				return err
			}
			a.open(textRegion, off+old, delta)
		} else if delta < 0 {
			a.shut(textRegion, off+size, -delta)
		}
	} else {
		if err := a.reserve("line insert", size); err != nil {
			return err
		}
		a.open(textRegion, off, size)
	}
	putU16(a.buf[off:], num)
	a.buf[off+2] = byte(size)
	copy(a.buf[off+lineHeaderSize:off+size], body)
	return nil
}

// RemoveLine deletes line num, returning false if there was no such line.
func (a *Arena) RemoveLine(num uint16) bool {
	off, found := a.seekLine(num)
	if !found {
		return false
	}
	a.shut(textRegion, off, int(a.buf[off+2]))
	return true
}

// Text returns a copy of the program text region.
func (a *Arena) Text() []byte {
	return append([]byte(nil), a.buf[:a.textEnd]...)
}

// LoadText replaces the program with text, a run of line records as returned
// by Text. All data and frames are discarded; on error the arena is left
// unchanged.
func (a *Arena) LoadText(text []byte) error {
	if err := checkText(text); err != nil {
		return err
	}
	if len(text) > len(a.buf) {
		return LimitError{Op: "load", Need: len(text), Free: len(a.buf)}
	}
	a.Reset()
	if err := a.reserve("load", len(text)); err != nil {
		return err
	}
	a.open(textRegion, 0, len(text))
	copy(a.buf, text)
	return nil
}

func checkText(text []byte) error {
	prev := -1
	for off := 0; off < len(text); {
		if off+lineHeaderSize > len(text) {
			return ErrCorruptText
		}
		num := int(u16(text[off:]))
		size := int(text[off+2])
		if size < lineHeaderSize || off+size > len(text) || num == 0 || num <= prev {
			return ErrCorruptText
		}
		prev = num
		off += size
	}
	return nil
}
