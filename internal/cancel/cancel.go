// Package cancel provides a process-wide cancellation signal shared by every
// long-running operation (lock waits, download retries, extraction loops),
// per spec.md §4.N.
package cancel

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/kopi-vm/kopi-sub003/internal/logging"
)

// Token observes a shared cancellation flag. The zero value is not usable;
// construct one with New or obtain the process-wide one via Global.
type Token struct {
	flag *atomic.Bool
}

// New returns a standalone token, useful for tests that need isolation from
// the process-wide signal registry.
func New() Token {
	return Token{flag: &atomic.Bool{}}
}

// IsCancelled reports whether the token has been signalled.
func (t Token) IsCancelled() bool {
	return t.flag.Load()
}

// Cancel marks the token as cancelled. Exposed for tests and for the
// registry's signal handler.
func (t Token) Cancel() {
	t.flag.Store(true)
}

var (
	once     sync.Once
	registry Token
)

// Global returns a token backed by the process-wide signal registry,
// initializing OS signal handlers (SIGINT, SIGTERM) on first call.
// Registration failures log a warning and continue: reduced cancellability
// is preferred over startup failure.
func Global() Token {
	once.Do(func() {
		registry = New()
		registerSignals(registry)
	})
	return registry
}

func registerSignals(t Token) {
	defer func() {
		if r := recover(); r != nil {
			logging.New().Warnw("failed to register cancellation signal handler", "panic", r)
		}
	}()
	// Go's os/signal has no portable SIGBREAK; SIGINT/SIGTERM cover every
	// supported platform's Ctrl-C equivalent.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range ch {
			t.Cancel()
		}
	}()
}
