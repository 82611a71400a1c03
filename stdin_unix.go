//go:build unix

package main

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// pollableStdin reopens standard input in non-blocking mode, so that closing
// it interrupts a pending read; restore returns the descriptor to blocking
// mode and may be called more than once.
func pollableStdin() (f *os.File, restore func()) {
	fd := int(os.Stdin.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return os.Stdin, func() {}
	}
	var once sync.Once
	return os.NewFile(uintptr(fd), "/dev/stdin"), func() {
		once.Do(func() { _ = unix.SetNonblock(fd, false) })
	}
}
