package lockman

// Strategy is a policy object that decides whether an acquisition over a
// boundary is allowed. Implementations never block: CanLock is a pure
// function over current state, and Lock/Unlock only mutate that state
// under a short critical section.
//
// I is the concrete LockmanInfo payload the strategy operates on (e.g. a
// SingleExecutionInfo or a PriorityBasedInfo from package strategies).
type Strategy[I LockmanInfo] interface {
	// StrategyID reports the id this strategy is (or should be)
	// registered under.
	StrategyID() StrategyId

	// CanLock reports whether info may acquire the lock for boundary,
	// given the strategy's current state. It must not mutate state.
	CanLock(boundary BoundaryId, info I) CanLockResult

	// Lock records info as held for boundary. Precondition: the most
	// recent CanLock for the same (boundary, info.UniqueID()) returned a
	// non-Cancel result.
	Lock(boundary BoundaryId, info I)

	// Unlock removes exactly the record identified by info.UniqueID();
	// it is a no-op if no such record exists (Testable Property 2).
	Unlock(boundary BoundaryId, info I)

	// CurrentLocks returns a snapshot of every active lock, grouped by
	// boundary, in acquisition order.
	CurrentLocks() map[BoundaryId][]LockmanInfo

	// Cleanup discards all state across every boundary.
	Cleanup()

	// CleanupBoundary discards all state for a single boundary.
	CleanupBoundary(boundary BoundaryId)
}
