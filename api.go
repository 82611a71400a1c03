package main

import (
	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/storage"
)

func WithTerminal(term Terminal) SessionOption          { return withTerminal(term) }
func WithArenaSize(size int) SessionOption              { return withArenaSize(size) }
func WithReals(enabled bool) SessionOption              { return realsOption(enabled) }
func WithLongIntegers(enabled bool) SessionOption       { return longsOption(enabled) }
func WithStorage(slot storage.Slot) SessionOption       { return storageOption{slot} }
func WithFunctions(tables ...funcs.Table) SessionOption { return withFunctions(tables...) }
func WithNewline(nl string) SessionOption               { return withNewline(nl) }
func WithEcho(echo bool) SessionOption                  { return withEcho(echo) }
func WithConfirm(confirm bool) SessionOption            { return confirmOption(confirm) }

func WithLogf(logfn func(mess string, args ...interface{})) SessionOption { return withLogfn(logfn) }
