package strategies

import (
	"fmt"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// ConcurrencyLimit caps how many locks a single concurrency id may hold
// at once. The zero value is Unlimited.
type ConcurrencyLimit struct {
	unlimited bool
	max       int
}

// Unlimited places no cap on the concurrency id.
var Unlimited = ConcurrencyLimit{unlimited: true}

// Limited caps the concurrency id at n concurrent holders. n must be at
// least 1 (spec.md:132 types the payload as Limited(n: u32 >= 1));
// Limited panics for n < 1 rather than silently accepting an
// unenforceable limit.
func Limited(n int) ConcurrencyLimit {
	if n < 1 {
		panic(fmt.Sprintf("concurrencyLimited: Limited(%d): n must be at least 1", n))
	}
	return ConcurrencyLimit{max: n}
}

func (l ConcurrencyLimit) String() string {
	if l.unlimited || l.max == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("limited(%d)", l.max)
}

// ConcurrencyLimitedInfo is the LockmanInfo payload for ConcurrencyLimited.
type ConcurrencyLimitedInfo struct {
	baseInfo
	ConcurrencyID string
	Limit         ConcurrencyLimit
}

// NewConcurrencyLimitedInfo builds a ConcurrencyLimitedInfo for actionID,
// sharing the concurrencyID pool under limit. limit should be built via
// Unlimited or Limited, both of which already guarantee a valid bound.
func NewConcurrencyLimitedInfo(actionID, concurrencyID string, limit ConcurrencyLimit) ConcurrencyLimitedInfo {
	return ConcurrencyLimitedInfo{
		baseInfo:      newBaseInfo(lockman.ConcurrencyLimitedStrategyId, actionID, true),
		ConcurrencyID: concurrencyID,
		Limit:         limit,
	}
}

// DebugDescription renders the record for introspection.
func (i ConcurrencyLimitedInfo) DebugDescription() string {
	return fmt.Sprintf("ConcurrencyLimitedInfo(actionId: %s, concurrencyId: %s, limit: %s, uniqueId: %s)",
		i.actionID, i.ConcurrencyID, i.Limit, i.uniqueID)
}

// ConcurrencyLimitReachedError is returned when accepting the request
// would push the concurrency id's holder count past its limit.
type ConcurrencyLimitReachedError struct {
	Boundary      lockman.BoundaryId
	ConcurrencyID string
	CurrentCount  int
	Limit         int
	Existing      []lockman.LockmanInfo
}

func (e *ConcurrencyLimitReachedError) Error() string {
	return fmt.Sprintf("concurrencyLimited: concurrency id %q at boundary %s already holds %d/%d locks",
		e.ConcurrencyID, e.Boundary, e.CurrentCount, e.Limit)
}

// ConcurrencyLimitedStrategy caps how many concurrent locks a shared
// concurrency id may hold per boundary, per spec.md §4.3.4.
type ConcurrencyLimitedStrategy struct {
	state *lockstate.State[ConcurrencyLimitedInfo]
}

// NewConcurrencyLimitedStrategy builds a ConcurrencyLimitedStrategy with
// its own independent lock state.
func NewConcurrencyLimitedStrategy() *ConcurrencyLimitedStrategy {
	return &ConcurrencyLimitedStrategy{
		state: lockstate.New[ConcurrencyLimitedInfo](func(i ConcurrencyLimitedInfo) string { return i.ConcurrencyID }),
	}
}

// StrategyID reports the canonical concurrencyLimited id.
func (s *ConcurrencyLimitedStrategy) StrategyID() lockman.StrategyId {
	return lockman.ConcurrencyLimitedStrategyId
}

// CanLock refuses the request iff the concurrency id is already at its
// limit within the boundary; Unlimited never refuses.
func (s *ConcurrencyLimitedStrategy) CanLock(boundary lockman.BoundaryId, info ConcurrencyLimitedInfo) lockman.CanLockResult {
	if info.Limit.unlimited || info.Limit.max == 0 {
		return lockman.Success()
	}
	existing := s.state.CurrentByKey(boundary, info.ConcurrencyID)
	if len(existing) >= info.Limit.max {
		erased := make([]lockman.LockmanInfo, len(existing))
		for i, e := range existing {
			erased[i] = e
		}
		return lockman.Cancel(&ConcurrencyLimitReachedError{
			Boundary:      boundary,
			ConcurrencyID: info.ConcurrencyID,
			CurrentCount:  len(existing),
			Limit:         info.Limit.max,
			Existing:      erased,
		})
	}
	return lockman.Success()
}

// Lock records info as held for boundary.
func (s *ConcurrencyLimitedStrategy) Lock(boundary lockman.BoundaryId, info ConcurrencyLimitedInfo) {
	s.state.Add(boundary, info)
}

// Unlock removes info's record for boundary.
func (s *ConcurrencyLimitedStrategy) Unlock(boundary lockman.BoundaryId, info ConcurrencyLimitedInfo) {
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of all active locks, erased to
// lockman.LockmanInfo.
func (s *ConcurrencyLimitedStrategy) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup discards all state across every boundary.
func (s *ConcurrencyLimitedStrategy) Cleanup() { s.state.RemoveAll() }

// CleanupBoundary discards all state for a single boundary.
func (s *ConcurrencyLimitedStrategy) CleanupBoundary(boundary lockman.BoundaryId) {
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[ConcurrencyLimitedInfo] = (*ConcurrencyLimitedStrategy)(nil)
