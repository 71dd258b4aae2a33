// Package lockman enforces exclusive-execution policies for user-triggered
// actions in event-driven applications. It prevents duplicate, conflicting,
// or out-of-order side effects (a double-tapped submit button, re-entrant
// navigation, a burst of identical API calls) by composing canLock, lock,
// and unlock across a set of pluggable [Strategy] implementations.
//
// The package is agnostic to how callers run their side effects: it never
// blocks, schedules nothing on its own apart from the timer behind a
// Delayed unlock, and never cancels external
// work. It only tells the caller whether to proceed, whether to proceed
// while cancelling some prior action, or to refuse.
//
// Built-in strategies (single-execution, priority-based, group
// coordination, concurrency-limited, dynamic-condition, and composites of
// them) live in the sibling package
// github.com/takeshishimada/lockman-go/strategies. Importing that package
// registers them into the process-wide default [Registry] as a side
// effect, mirroring how database/sql drivers register themselves.
package lockman
