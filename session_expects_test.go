package main

// @generated from session_test.go

//go:generate go run scripts/gen_session_expects.go -- session_test.go session_expects_test.go

import (
	"time"

	"github.com/jcorbin/gobasic/internal/storage"
	"github.com/jcorbin/gobasic/internal/value"
)

func withSessionOptions(opts ...SessionOption) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withOptions(opts...)
	}
}

func withSessionInput(input string) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withInput(input)
	}
}

func withSessionInputDelay(polls int) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withInputDelay(polls)
	}
}

func withSessionArenaSize(size int) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withArenaSize(size)
	}
}

func withSessionStorage(slot storage.Slot) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withStorage(slot)
	}
}

func withSessionTimeout(timeout time.Duration) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.withTimeout(timeout)
	}
}

func expectSessionError(err error) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.expectError(err)
	}
}

func expectSessionOutput(output string) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.expectOutput(output)
	}
}

func expectSessionStackDepth(depth int) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.expectStackDepth(depth)
	}
}

func expectSessionVariable(name string, v value.Value) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.expectVariable(name, v)
	}
}

func expectSessionString(name string, str string) func(sessionTestCase) sessionTestCase {
	return func(tc sessionTestCase) sessionTestCase {
		return tc.expectString(name, str)
	}
}
