package strategies

import (
	"fmt"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// SingleExecutionMode selects what SingleExecutionStrategy checks before
// allowing an acquisition.
type SingleExecutionMode int

const (
	// SingleExecutionNone performs no check; CanLock always succeeds.
	// The strategy still tracks the lock, preserving lock/unlock
	// symmetry, but never refuses.
	SingleExecutionNone SingleExecutionMode = iota
	// SingleExecutionBoundary refuses unless the boundary has zero
	// active locks.
	SingleExecutionBoundary
	// SingleExecutionAction refuses unless no existing lock shares the
	// requested action id.
	SingleExecutionAction
)

func (m SingleExecutionMode) String() string {
	switch m {
	case SingleExecutionNone:
		return "none"
	case SingleExecutionBoundary:
		return "boundary"
	case SingleExecutionAction:
		return "action"
	default:
		return "unknown"
	}
}

// SingleExecutionInfo is the LockmanInfo payload for SingleExecution.
type SingleExecutionInfo struct {
	baseInfo
	Mode SingleExecutionMode
}

// NewSingleExecutionInfo builds a SingleExecutionInfo for actionID under
// mode.
func NewSingleExecutionInfo(actionID string, mode SingleExecutionMode) SingleExecutionInfo {
	return SingleExecutionInfo{
		baseInfo: newBaseInfo(lockman.SingleExecutionStrategyId, actionID, true),
		Mode:     mode,
	}
}

// DebugDescription renders the record for introspection.
func (i SingleExecutionInfo) DebugDescription() string {
	return fmt.Sprintf("SingleExecutionInfo(actionId: %s, mode: %v, uniqueId: %s)", i.actionID, i.Mode, i.uniqueID)
}

// BoundaryAlreadyLockedError is returned in SingleExecutionBoundary mode
// when the boundary already holds a lock.
type BoundaryAlreadyLockedError struct {
	Boundary lockman.BoundaryId
	Existing lockman.LockmanInfo
}

func (e *BoundaryAlreadyLockedError) Error() string {
	return fmt.Sprintf("singleExecution: boundary %s already locked by action %q", e.Boundary, e.Existing.ActionID())
}

// ActionAlreadyRunningError is returned in SingleExecutionAction mode
// when an existing lock shares the requested action id.
type ActionAlreadyRunningError struct {
	Boundary lockman.BoundaryId
	Existing lockman.LockmanInfo
}

func (e *ActionAlreadyRunningError) Error() string {
	return fmt.Sprintf("singleExecution: action %q already running on boundary %s", e.Existing.ActionID(), e.Boundary)
}

// SingleExecutionStrategy refuses re-entrant acquisitions scoped to a
// boundary or to a single action id.
type SingleExecutionStrategy struct {
	state *lockstate.State[SingleExecutionInfo]
}

// NewSingleExecutionStrategy builds a SingleExecutionStrategy with its
// own independent lock state.
func NewSingleExecutionStrategy() *SingleExecutionStrategy {
	return &SingleExecutionStrategy{
		state: lockstate.New[SingleExecutionInfo](func(i SingleExecutionInfo) string { return i.ActionID() }),
	}
}

// StrategyID reports the canonical singleExecution id.
func (s *SingleExecutionStrategy) StrategyID() lockman.StrategyId {
	return lockman.SingleExecutionStrategyId
}

// CanLock implements the three SingleExecutionMode policies from spec
// §4.3.1.
func (s *SingleExecutionStrategy) CanLock(boundary lockman.BoundaryId, info SingleExecutionInfo) lockman.CanLockResult {
	switch info.Mode {
	case SingleExecutionNone:
		return lockman.Success()
	case SingleExecutionBoundary:
		existing := s.state.Current(boundary)
		if len(existing) > 0 {
			return lockman.Cancel(&BoundaryAlreadyLockedError{Boundary: boundary, Existing: existing[0]})
		}
		return lockman.Success()
	case SingleExecutionAction:
		existing := s.state.CurrentByKey(boundary, info.ActionID())
		if len(existing) > 0 {
			return lockman.Cancel(&ActionAlreadyRunningError{Boundary: boundary, Existing: existing[0]})
		}
		return lockman.Success()
	default:
		return lockman.Success()
	}
}

// Lock records info as held for boundary.
func (s *SingleExecutionStrategy) Lock(boundary lockman.BoundaryId, info SingleExecutionInfo) {
	s.state.Add(boundary, info)
}

// Unlock removes info's record for boundary.
func (s *SingleExecutionStrategy) Unlock(boundary lockman.BoundaryId, info SingleExecutionInfo) {
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of all active locks, erased to
// lockman.LockmanInfo.
func (s *SingleExecutionStrategy) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup discards all state across every boundary.
func (s *SingleExecutionStrategy) Cleanup() { s.state.RemoveAll() }

// CleanupBoundary discards all state for a single boundary.
func (s *SingleExecutionStrategy) CleanupBoundary(boundary lockman.BoundaryId) {
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[SingleExecutionInfo] = (*SingleExecutionStrategy)(nil)
