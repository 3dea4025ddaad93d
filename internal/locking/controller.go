package locking

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"go.uber.org/zap"
)

// Default polling backoff parameters (spec.md §4.D): exponential with
// jitter, initial 10ms, multiplier 1.7, capped at 500ms.
const (
	initialInterval = 10 * time.Millisecond
	multiplier      = 1.7
	maxInterval     = 500 * time.Millisecond
)

// ForceFallback, when true, skips filesystem probing and always uses the
// marker-file backend. It takes effect only where a caller sets it; the CLI
// does not pass config.ForceFallbackLocking through to it.
type Options struct {
	ForceFallback bool
	Timeout       time.Duration // zero means use the scope's default
}

// Controller serializes acquisition of lock scopes under a managed home.
type Controller struct {
	paths  *kopipath.Registry
	logger *zap.SugaredLogger
}

// New builds a Controller rooted at paths. A nil logger is replaced with a
// no-op logger.
func New(paths *kopipath.Registry, logger *zap.SugaredLogger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{paths: paths, logger: logger}
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.Multiplier = multiplier
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0 // the acquisition deadline governs overall duration
	b.Reset()
	return b
}

func (c *Controller) pickBackend(dir string, opts Options) backend {
	if opts.ForceFallback || filesystemNeedsFallback(dir) {
		return fallbackBackend{}
	}
	return advisoryBackend{}
}

// Acquire blocks until scope's lock is held, the deadline elapses, or token
// is cancelled. The returned Handle must be released by the caller.
func (c *Controller) Acquire(scope Scope, token cancel.Token, opts Options) (Handle, error) {
	path := scope.Path(c.paths)
	if err := ensureParentDir(path); err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrLockingIO, err)
	}

	be := c.pickBackend(path, opts)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = scope.DefaultTimeout()
	}
	deadline := time.Now().Add(timeout)

	if h, err := be.tryAcquire(path); err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrLockingIO, err)
	} else if h != nil {
		return h, nil
	}

	c.logger.Debugw("lock contended, entering poll loop", "scope", scope.Label(), "backend", be.name())

	bo := newBackoff()
	for {
		if token.IsCancelled() {
			return nil, kopierr.ErrLockingCancelled
		}
		if time.Now().After(deadline) {
			return nil, &kopierr.LockingTimeout{Scope: scope.Label(), Timeout: timeout}
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			delay = maxInterval
		}
		time.Sleep(delay)

		if token.IsCancelled() {
			return nil, kopierr.ErrLockingCancelled
		}

		h, err := be.tryAcquire(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kopierr.ErrLockingIO, err)
		}
		if h != nil {
			return h, nil
		}
	}
}
