// Package storage persists saved program images.
//
// An image is the program text framed as
//
//	[u16 length][text][u16 checksum]
//
// little-endian, where checksum is the 16-bit wrapping sum of the text bytes.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

// Errors returned by Decode and by slots.
var (
	ErrLength   = errors.New("image length mismatch")
	ErrChecksum = errors.New("bad checksum")
	ErrEmpty    = errors.New("nothing saved")
	ErrTooLarge = errors.New("program too large to save")
)

// Slot holds a single saved image.
type Slot interface {
	Save(image []byte) error
	Load() ([]byte, error)
}

// Checksum returns the 16-bit wrapping sum of text.
func Checksum(text []byte) uint16 {
	var sum uint16
	for _, b := range text {
		sum += uint16(b)
	}
	return sum
}

// Encode frames text as an image.
func Encode(text []byte) ([]byte, error) {
	if len(text) > 0xffff {
		return nil, ErrTooLarge
	}
	image := make([]byte, 2+len(text)+2)
	binary.LittleEndian.PutUint16(image, uint16(len(text)))
	copy(image[2:], text)
	binary.LittleEndian.PutUint16(image[2+len(text):], Checksum(text))
	return image, nil
}

// Decode validates an image and returns the text it frames.
func Decode(image []byte) ([]byte, error) {
	if len(image) < 4 {
		return nil, ErrLength
	}
	n := int(binary.LittleEndian.Uint16(image))
	if len(image) != 2+n+2 {
		return nil, fmt.Errorf("%w: header says %v bytes, image holds %v", ErrLength, n, len(image)-4)
	}
	text := image[2 : 2+n]
	if want, have := binary.LittleEndian.Uint16(image[2+n:]), Checksum(text); want != have {
		return nil, fmt.Errorf("%w: expected %04x, computed %04x", ErrChecksum, want, have)
	}
	return text, nil
}

// Memory is a Slot kept in process memory.
type Memory struct {
	mu    sync.Mutex
	image []byte
}

// Save implements Slot.
func (m *Memory) Save(image []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = append(m.image[:0], image...)
	return nil
}

// Load implements Slot.
func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.image...), nil
}
