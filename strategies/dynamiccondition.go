package strategies

import (
	"fmt"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// Condition is a caller-supplied predicate evaluated against the
// snapshot of existing locks in the target boundary. Returning ok=false
// refuses the request; hint is optional context surfaced on
// ConditionNotMetError.
type Condition func(existing []lockman.LockmanInfo) (ok bool, hint string)

// DynamicConditionInfo is the LockmanInfo payload for DynamicCondition.
// Condition is not part of its identity and is never compared; it is
// pure evaluation logic invoked fresh on every CanLock.
type DynamicConditionInfo struct {
	baseInfo
	Condition Condition
}

// NewDynamicConditionInfo builds a DynamicConditionInfo for actionID,
// gated by condition.
func NewDynamicConditionInfo(actionID string, condition Condition) DynamicConditionInfo {
	return DynamicConditionInfo{
		baseInfo:  newBaseInfo(lockman.DynamicConditionStrategyId, actionID, true),
		Condition: condition,
	}
}

// DebugDescription renders the record for introspection.
func (i DynamicConditionInfo) DebugDescription() string {
	return fmt.Sprintf("DynamicConditionInfo(actionId: %s, uniqueId: %s)", i.actionID, i.uniqueID)
}

// ConditionNotMetError is returned when Condition evaluates to false.
type ConditionNotMetError struct {
	Boundary lockman.BoundaryId
	Hint     string
}

func (e *ConditionNotMetError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("dynamicCondition: condition not met on boundary %s", e.Boundary)
	}
	return fmt.Sprintf("dynamicCondition: condition not met on boundary %s: %s", e.Boundary, e.Hint)
}

// DynamicConditionStrategy defers the lock decision to a caller-supplied
// predicate, per spec.md §4.3.5.
type DynamicConditionStrategy struct {
	state *lockstate.State[DynamicConditionInfo]
}

// NewDynamicConditionStrategy builds a DynamicConditionStrategy with its
// own independent lock state.
func NewDynamicConditionStrategy() *DynamicConditionStrategy {
	return &DynamicConditionStrategy{
		state: lockstate.New[DynamicConditionInfo](nil),
	}
}

// StrategyID reports the canonical dynamicCondition id.
func (s *DynamicConditionStrategy) StrategyID() lockman.StrategyId {
	return lockman.DynamicConditionStrategyId
}

// CanLock evaluates info.Condition against a snapshot of the boundary's
// locks, taken under the state's lock; the condition itself runs after
// that lock is released. A nil Condition always succeeds.
func (s *DynamicConditionStrategy) CanLock(boundary lockman.BoundaryId, info DynamicConditionInfo) lockman.CanLockResult {
	if info.Condition == nil {
		return lockman.Success()
	}
	existing := s.state.Current(boundary)
	erased := make([]lockman.LockmanInfo, len(existing))
	for i, e := range existing {
		erased[i] = e
	}
	if ok, hint := info.Condition(erased); !ok {
		return lockman.Cancel(&ConditionNotMetError{Boundary: boundary, Hint: hint})
	}
	return lockman.Success()
}

// Lock records info as held for boundary.
func (s *DynamicConditionStrategy) Lock(boundary lockman.BoundaryId, info DynamicConditionInfo) {
	s.state.Add(boundary, info)
}

// Unlock removes info's record for boundary.
func (s *DynamicConditionStrategy) Unlock(boundary lockman.BoundaryId, info DynamicConditionInfo) {
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of all active locks, erased to
// lockman.LockmanInfo.
func (s *DynamicConditionStrategy) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup discards all state across every boundary.
func (s *DynamicConditionStrategy) Cleanup() { s.state.RemoveAll() }

// CleanupBoundary discards all state for a single boundary.
func (s *DynamicConditionStrategy) CleanupBoundary(boundary lockman.BoundaryId) {
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[DynamicConditionInfo] = (*DynamicConditionStrategy)(nil)
