package lockman

import "github.com/google/uuid"

// fakeInfo is a minimal LockmanInfo used across this package's tests.
type fakeInfo struct {
	actionID string
	uniqueID uuid.UUID
}

func newFakeInfo(actionID string) fakeInfo {
	return fakeInfo{actionID: actionID, uniqueID: uuid.New()}
}

func (f fakeInfo) StrategyID() StrategyId       { return NewStrategyId("fake") }
func (f fakeInfo) ActionID() string             { return f.actionID }
func (f fakeInfo) UniqueID() uuid.UUID          { return f.uniqueID }
func (f fakeInfo) IsCancellationTarget() bool    { return true }
func (f fakeInfo) DebugDescription() string {
	return "fakeInfo(" + f.actionID + ")"
}

// fakeStrategy is a scriptable Strategy[fakeInfo] used to exercise
// Acquire, Registry, and Manager without a real strategy implementation.
type fakeStrategy struct {
	id            StrategyId
	canLockResult CanLockResult
	locked        map[BoundaryId][]fakeInfo
	cleanedUp     bool
	cleanedBounds []BoundaryId
}

func newFakeStrategy(id StrategyId) *fakeStrategy {
	return &fakeStrategy{
		id:            id,
		canLockResult: Success(),
		locked:        make(map[BoundaryId][]fakeInfo),
	}
}

func (s *fakeStrategy) StrategyID() StrategyId { return s.id }

func (s *fakeStrategy) CanLock(boundary BoundaryId, info fakeInfo) CanLockResult {
	return s.canLockResult
}

func (s *fakeStrategy) Lock(boundary BoundaryId, info fakeInfo) {
	s.locked[boundary] = append(s.locked[boundary], info)
}

func (s *fakeStrategy) Unlock(boundary BoundaryId, info fakeInfo) {
	seq := s.locked[boundary]
	for i, e := range seq {
		if e.UniqueID() == info.UniqueID() {
			s.locked[boundary] = append(seq[:i], seq[i+1:]...)
			return
		}
	}
}

func (s *fakeStrategy) CurrentLocks() map[BoundaryId][]LockmanInfo {
	out := make(map[BoundaryId][]LockmanInfo, len(s.locked))
	for boundary, seq := range s.locked {
		erased := make([]LockmanInfo, len(seq))
		for i, info := range seq {
			erased[i] = info
		}
		out[boundary] = erased
	}
	return out
}

func (s *fakeStrategy) Cleanup() {
	s.cleanedUp = true
	s.locked = make(map[BoundaryId][]fakeInfo)
}

func (s *fakeStrategy) CleanupBoundary(boundary BoundaryId) {
	s.cleanedBounds = append(s.cleanedBounds, boundary)
	delete(s.locked, boundary)
}

var _ Strategy[fakeInfo] = (*fakeStrategy)(nil)
