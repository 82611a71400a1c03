package main

import (
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/gobasic/internal/funcs"
	"github.com/jcorbin/gobasic/internal/storage"
)

// SessionOption configures a Session created by New.
type SessionOption interface{ apply(s *Session) }

// SessionOptions applies a list of options in order.
type SessionOptions []SessionOption

func (opts SessionOptions) apply(s *Session) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(s)
		}
	}
}

// DefaultArenaSize is the arena capacity used unless WithArenaSize is given.
const DefaultArenaSize = 4096

var defaultOptions = SessionOptions{
	withTerminal(NewBufferTerminal(nil, io.Discard)),
	withArenaSize(DefaultArenaSize),
	withNewline("\r\n"),
	withEcho(true),
	withFunctions(
		funcs.Math(rand.New(rand.NewSource(time.Now().UnixNano()))),
		funcs.Strings(),
	),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(s *Session) { s.logfn = logfn }

type terminalOption struct{ Terminal }
type arenaSizeOption int
type realsOption bool
type longsOption bool
type storageOption struct{ storage.Slot }
type functionsOption struct{ funcs.Table }
type newlineOption string
type echoOption bool
type confirmOption bool

func withTerminal(term Terminal) terminalOption { return terminalOption{term} }
func withArenaSize(size int) arenaSizeOption    { return arenaSizeOption(size) }
func withNewline(nl string) newlineOption       { return newlineOption(nl) }
func withEcho(echo bool) echoOption             { return echoOption(echo) }

func withFunctions(tables ...funcs.Table) functionsOption {
	return functionsOption{funcs.Chain(tables...)}
}

func (o terminalOption) apply(s *Session) {
	if s.term != nil {
		s.term.Flush()
	}
	s.term = o.Terminal
	s.column = 0
}

func (size arenaSizeOption) apply(s *Session) {
	if size <= 0 {
		size = DefaultArenaSize
	}
	s.arenaSize = int(size)
}

func (reals realsOption) apply(s *Session)  { s.lex.Reals = bool(reals) }
func (longs longsOption) apply(s *Session)  { s.lex.Longs = bool(longs) }
func (o storageOption) apply(s *Session)    { s.slot = o.Slot }
func (o functionsOption) apply(s *Session)  { s.funcs = o.Table }
func (nl newlineOption) apply(s *Session)   { s.newline = string(nl) }
func (echo echoOption) apply(s *Session)    { s.echo = bool(echo) }
func (conf confirmOption) apply(s *Session) { s.confirm = bool(conf) }
