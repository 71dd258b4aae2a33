package strategies

import (
	"fmt"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// PriorityLevel orders requests for PriorityBasedStrategy.
type PriorityLevel int

const (
	// PriorityNone never conflicts with anything and is never preempted.
	PriorityNone PriorityLevel = iota
	PriorityLow
	PriorityHigh
)

func (l PriorityLevel) String() string {
	switch l {
	case PriorityNone:
		return "none"
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// PriorityBehavior controls what happens when two requests share a
// PriorityLevel.
type PriorityBehavior int

const (
	// Exclusive refuses a same-priority request outright.
	Exclusive PriorityBehavior = iota
	// Replaceable allows a same-priority request to preempt, with
	// preceding cancellation of the existing holder.
	Replaceable
)

func (b PriorityBehavior) String() string {
	switch b {
	case Exclusive:
		return "exclusive"
	case Replaceable:
		return "replaceable"
	default:
		return "unknown"
	}
}

// Priority is the PriorityBased payload. Behavior is ignored when Level
// is PriorityNone: such requests always succeed and such locks are never
// compared against. NonePriority, Low and High are the provided
// constructors, but the fields are exported, so a None-level Priority with
// a Behavior can still be built directly; its Behavior has no effect.
type Priority struct {
	Level    PriorityLevel
	Behavior PriorityBehavior
}

// NonePriority requests no priority participation at all.
var NonePriority = Priority{Level: PriorityNone}

// Low builds a Low-priority request with the given same-priority behavior.
func Low(behavior PriorityBehavior) Priority {
	return Priority{Level: PriorityLow, Behavior: behavior}
}

// High builds a High-priority request with the given same-priority
// behavior.
func High(behavior PriorityBehavior) Priority {
	return Priority{Level: PriorityHigh, Behavior: behavior}
}

// PriorityBasedInfo is the LockmanInfo payload for PriorityBased.
type PriorityBasedInfo struct {
	baseInfo
	Priority Priority
}

// NewPriorityBasedInfo builds a PriorityBasedInfo for actionID at the
// given priority.
func NewPriorityBasedInfo(actionID string, priority Priority) PriorityBasedInfo {
	return PriorityBasedInfo{
		baseInfo: newBaseInfo(lockman.PriorityBasedStrategyId, actionID, priority.Level != PriorityNone),
		Priority: priority,
	}
}

// DebugDescription renders the record for introspection.
func (i PriorityBasedInfo) DebugDescription() string {
	return fmt.Sprintf("PriorityBasedInfo(actionId: %s, priority: %s/%s, uniqueId: %s)",
		i.actionID, i.Priority.Level, i.Priority.Behavior, i.uniqueID)
}

// HigherPriorityExistsError is returned when a higher-priority lock
// already holds the boundary.
type HigherPriorityExistsError struct {
	Boundary lockman.BoundaryId
	Existing PriorityBasedInfo
}

func (e *HigherPriorityExistsError) Error() string {
	return fmt.Sprintf("priorityBased: higher priority %s already held by action %q on boundary %s",
		e.Existing.Priority.Level, e.Existing.ActionID(), e.Boundary)
}

// SamePriorityConflictError is returned when an existing Exclusive
// same-priority lock refuses the request.
type SamePriorityConflictError struct {
	Boundary lockman.BoundaryId
	Existing PriorityBasedInfo
}

func (e *SamePriorityConflictError) Error() string {
	return fmt.Sprintf("priorityBased: same priority %s held exclusively by action %q on boundary %s",
		e.Existing.Priority.Level, e.Existing.ActionID(), e.Boundary)
}

// PrecedingCancellationError identifies the prior lock the caller must
// cancel after a SuccessWithPrecedingCancellation outcome.
type PrecedingCancellationError struct {
	Boundary  lockman.BoundaryId
	Cancelled lockman.LockmanInfo
}

func (e *PrecedingCancellationError) Error() string {
	return fmt.Sprintf("priorityBased: preceding action %q (unique id %s) on boundary %s must be cancelled",
		e.Cancelled.ActionID(), e.Cancelled.UniqueID(), e.Boundary)
}

// PriorityBasedStrategy preempts lower-priority holders and refuses
// lower-priority requests, per spec.md §4.3.2.
type PriorityBasedStrategy struct {
	state *lockstate.State[PriorityBasedInfo]
}

// NewPriorityBasedStrategy builds a PriorityBasedStrategy with its own
// independent lock state.
func NewPriorityBasedStrategy() *PriorityBasedStrategy {
	return &PriorityBasedStrategy{
		state: lockstate.New[PriorityBasedInfo](nil),
	}
}

// StrategyID reports the canonical priorityBased id.
func (s *PriorityBasedStrategy) StrategyID() lockman.StrategyId {
	return lockman.PriorityBasedStrategyId
}

// CanLock implements the priority ordering law from spec.md §4.3.2 and
// Testable Property 8.
func (s *PriorityBasedStrategy) CanLock(boundary lockman.BoundaryId, info PriorityBasedInfo) lockman.CanLockResult {
	if info.Priority.Level == PriorityNone {
		return lockman.Success()
	}

	existing := s.state.Current(boundary)
	var top *PriorityBasedInfo
	for i := range existing {
		e := existing[i]
		if e.Priority.Level == PriorityNone {
			continue
		}
		if top == nil || e.Priority.Level > top.Priority.Level {
			top = &existing[i]
		}
	}
	if top == nil {
		return lockman.Success()
	}

	switch {
	case top.Priority.Level > info.Priority.Level:
		return lockman.Cancel(&HigherPriorityExistsError{Boundary: boundary, Existing: *top})
	case top.Priority.Level < info.Priority.Level:
		return lockman.SuccessWithPrecedingCancellation(&PrecedingCancellationError{Boundary: boundary, Cancelled: *top})
	default: // same level
		if top.Priority.Behavior == Exclusive {
			return lockman.Cancel(&SamePriorityConflictError{Boundary: boundary, Existing: *top})
		}
		return lockman.SuccessWithPrecedingCancellation(&PrecedingCancellationError{Boundary: boundary, Cancelled: *top})
	}
}

// Lock records info as held for boundary.
func (s *PriorityBasedStrategy) Lock(boundary lockman.BoundaryId, info PriorityBasedInfo) {
	s.state.Add(boundary, info)
}

// Unlock removes info's record for boundary.
func (s *PriorityBasedStrategy) Unlock(boundary lockman.BoundaryId, info PriorityBasedInfo) {
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of all active locks, erased to
// lockman.LockmanInfo.
func (s *PriorityBasedStrategy) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup discards all state across every boundary.
func (s *PriorityBasedStrategy) Cleanup() { s.state.RemoveAll() }

// CleanupBoundary discards all state for a single boundary.
func (s *PriorityBasedStrategy) CleanupBoundary(boundary lockman.BoundaryId) {
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[PriorityBasedInfo] = (*PriorityBasedStrategy)(nil)
