//go:build !unix

package main

import "os"

func pollableStdin() (f *os.File, restore func()) { return os.Stdin, func() {} }
