package lockman

import (
	"log/slog"
	"sync"
	"time"
)

// UnlockOptionKind enumerates when an UnlockToken's release actually runs
// relative to external events.
type UnlockOptionKind int

const (
	// UnlockImmediate releases the lock inline, synchronously.
	UnlockImmediate UnlockOptionKind = iota
	// UnlockMainRunLoop enqueues the release onto the Executor supplied to
	// the Manager (e.g. a host UI's main-thread dispatcher).
	UnlockMainRunLoop
	// UnlockTransition defers the release until the caller signals that a
	// transition (e.g. a navigation animation) has completed, via
	// UnlockToken.Signal.
	UnlockTransition
	// UnlockDelayed schedules the release after a fixed duration.
	UnlockDelayed
)

// UnlockOption controls unlock timing. The zero value is Immediate.
type UnlockOption struct {
	Kind  UnlockOptionKind
	Delay time.Duration // meaningful only when Kind == UnlockDelayed
}

// Immediate releases the lock inline as soon as Release is called.
var Immediate = UnlockOption{Kind: UnlockImmediate}

// MainRunLoop releases the lock via the Manager's Executor.
var MainRunLoop = UnlockOption{Kind: UnlockMainRunLoop}

// Transition defers the release until UnlockToken.Signal is called.
var Transition = UnlockOption{Kind: UnlockTransition}

// Delayed releases the lock after d has elapsed.
func Delayed(d time.Duration) UnlockOption {
	return UnlockOption{Kind: UnlockDelayed, Delay: d}
}

// Executor enqueues a release callback onto a caller-provided scheduler,
// such as a UI main thread or an event loop. It is the only collaborator
// the core needs for MainRunLoop timing; the core never schedules work
// on its own beyond time.AfterFunc for Delayed.
type Executor interface {
	Enqueue(fn func())
}

// UnlockToken is an idempotent handle that releases a previously acquired
// lock. It is created by Acquire and must be released by the caller
// exactly once; calling Release (or Signal) more than once performs
// exactly one underlying unlock (Testable Property 7).
type UnlockToken struct {
	mu       sync.Mutex
	fired    bool
	unlock   func()
	option   UnlockOption
	executor Executor
	logger   *slog.Logger
}

func newUnlockToken(unlock func(), option UnlockOption, executor Executor, logger *slog.Logger) *UnlockToken {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnlockToken{
		unlock:   unlock,
		option:   option,
		executor: executor,
		logger:   logger,
	}
}

// fire invokes the underlying unlock exactly once, however many times it
// is called and from however many goroutines.
func (t *UnlockToken) fire() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()
	t.unlock()
}

// Release performs the unlock according to the token's UnlockOption. For
// UnlockTransition it does nothing; the unlock happens when Signal is
// called.
func (t *UnlockToken) Release() {
	switch t.option.Kind {
	case UnlockImmediate:
		t.fire()
	case UnlockDelayed:
		time.AfterFunc(t.option.Delay, t.fire)
	case UnlockMainRunLoop:
		if t.executor != nil {
			t.executor.Enqueue(t.fire)
			return
		}
		t.logger.Warn("no executor configured for MainRunLoop unlock option, releasing immediately")
		t.fire()
	case UnlockTransition:
		// Held until Signal is called.
	}
}

// Signal completes a deferred UnlockTransition release. It performs the
// underlying unlock directly, whatever the token's UnlockOption and
// whether or not Release was called first; it is a no-op once the token
// has fired.
func (t *UnlockToken) Signal() {
	t.fire()
}
