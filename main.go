package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jcorbin/gobasic/internal/feed"
	"github.com/jcorbin/gobasic/internal/logio"
	"github.com/jcorbin/gobasic/internal/storage"
	"github.com/jcorbin/gobasic/internal/termio"
)

func main() {
	log := logio.NewLogger(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	var (
		timeout  time.Duration
		trace    bool
		memSize  int
		reals    bool
		longs    bool
		store    string
		slotName string
		echo     bool
		confirm  bool
		record   string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&memSize, "mem", DefaultArenaSize, "arena size in bytes")
	flag.BoolVar(&reals, "reals", false, "enable real numbers; unsuffixed variables become real")
	flag.BoolVar(&longs, "longs", false, "enable long integers and the %% sigil")
	flag.StringVar(&store, "storage", "mem", "program storage for SAVE and LOAD: mem, file:PATH or sqlite:PATH")
	flag.StringVar(&slotName, "slot", "default", "slot name within sqlite storage")
	flag.BoolVar(&echo, "echo", true, "echo input lines")
	flag.BoolVar(&confirm, "confirm", false, "ask before NEW discards the program")
	flag.StringVar(&record, "transcript", "", "also write session output to this file")
	flag.Parse()
	if memSize <= 0 {
		log.Errorf("invalid -mem size %v, must be positive", memSize)
		return
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slot, closer, err := openStorage(store, slotName)
	if err != nil {
		log.Errorf("unable to open storage: %v", err)
		return
	}
	if closer != nil {
		defer func() { log.ErrorIf(closer.Close()) }()
	}

	var sources []io.Reader
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		sources = append(sources, f)
	}
	stdin, restoreStdin := pollableStdin()
	defer restoreStdin()
	in := feed.New(append(sources, stdin)...)

	out := termio.NewWriteFlusher(os.Stdout)
	if record != "" {
		f, err := os.Create(record)
		if err != nil {
			log.Errorf("unable to create transcript: %v", err)
			return
		}
		transcript := termio.NewWriteFlusher(f)
		defer func() {
			log.ErrorIf(transcript.Flush())
			log.ErrorIf(f.Close())
		}()
		out = termio.NewTee(out, transcript)
	}
	stream := termio.NewStream(out)
	newline := "\n"
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			log.Errorf("unable to enter raw mode: %v", err)
			return
		}
		defer term.Restore(fd, state)
		stream.EOF = termio.EOT
		newline = "\r\n"
	}

	opts := []SessionOption{
		WithTerminal(stream),
		WithArenaSize(memSize),
		WithReals(reals),
		WithLongIntegers(longs),
		WithStorage(slot),
		WithNewline(newline),
		WithEcho(echo),
		WithConfirm(confirm),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	sess := New(opts...)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return stream.Pump(ctx, in)
	})
	eg.Go(func() error {
		defer func() {
			restoreStdin()
			in.Close()
		}()
		return sess.Run(ctx)
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("%+v (reading %v)", err, in.Location())
	}
}

// openStorage opens the slot named by a -storage value; the returned closer
// is nil when there is nothing to close.
func openStorage(spec, slotName string) (storage.Slot, io.Closer, error) {
	kind, path, _ := strings.Cut(spec, ":")
	switch kind {
	case "", "mem":
		return &storage.Memory{}, nil, nil
	case "file":
		if path == "" {
			return nil, nil, errors.New("file storage needs a path")
		}
		return storage.File{Path: path}, nil, nil
	case "sqlite":
		if path == "" {
			return nil, nil, errors.New("sqlite storage needs a path")
		}
		db, err := storage.OpenSQLite(path, slotName)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	}
	return nil, nil, fmt.Errorf("unknown storage kind %q", kind)
}
