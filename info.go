package lockman

import "github.com/google/uuid"

// LockmanInfo is the per-acquisition record passed to a strategy. Two
// LockmanInfo values are considered equal iff their UniqueID values are
// equal, regardless of ActionID.
type LockmanInfo interface {
	// StrategyID reports which strategy owns this record.
	StrategyID() StrategyId
	// ActionID is the logical identity of the action; several strategies
	// use it for conflict detection.
	ActionID() string
	// UniqueID is generated fresh per acquisition and is the primary key
	// used by Unlock.
	UniqueID() uuid.UUID
	// IsCancellationTarget reports whether this record can be named as
	// the target of an external preceding cancellation.
	IsCancellationTarget() bool
	// DebugDescription renders the record for introspection/debug output.
	DebugDescription() string
}

// LockmanAction is implemented by a caller's action type to produce the
// LockmanInfo for a given strategy and the unlock timing it prefers.
type LockmanAction[I LockmanInfo] interface {
	LockmanInfo() I
	UnlockOption() UnlockOption
}

// InfoEqual reports whether two LockmanInfo values identify the same
// acquisition (Testable Property 4: equality by unique_id).
func InfoEqual(a, b LockmanInfo) bool {
	return a.UniqueID() == b.UniqueID()
}
