package strategies

import (
	"errors"
	"testing"

	lockman "github.com/takeshishimada/lockman-go"
)

func TestSingleExecutionStrategy_NoneModeAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	s := NewSingleExecutionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	first := NewSingleExecutionInfo("load", SingleExecutionNone)
	second := NewSingleExecutionInfo("load", SingleExecutionNone)

	if r := s.CanLock(boundary, first); r.IsCancel() {
		t.Fatalf("CanLock() = %v, want Success", r)
	}
	s.Lock(boundary, first)

	if r := s.CanLock(boundary, second); r.IsCancel() {
		t.Fatalf("second CanLock() under None mode = %v, want Success", r)
	}
}

func TestSingleExecutionStrategy_BoundaryModeRefusesWhileHeld(t *testing.T) {
	t.Parallel()

	s := NewSingleExecutionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	first := NewSingleExecutionInfo("load", SingleExecutionBoundary)
	s.Lock(boundary, first)

	second := NewSingleExecutionInfo("refresh", SingleExecutionBoundary)
	result := s.CanLock(boundary, second)
	if !result.IsCancel() {
		t.Fatal("CanLock() should refuse a second acquisition under Boundary mode")
	}
	var conflict *BoundaryAlreadyLockedError
	if !errors.As(result.Err, &conflict) {
		t.Fatalf("Err = %v, want *BoundaryAlreadyLockedError", result.Err)
	}

	s.Unlock(boundary, first)
	if r := s.CanLock(boundary, second); r.IsCancel() {
		t.Fatal("CanLock() should succeed once the boundary is released")
	}
}

func TestSingleExecutionStrategy_ActionModeScopesToActionID(t *testing.T) {
	t.Parallel()

	s := NewSingleExecutionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	load := NewSingleExecutionInfo("load", SingleExecutionAction)
	refresh := NewSingleExecutionInfo("refresh", SingleExecutionAction)
	s.Lock(boundary, load)

	if r := s.CanLock(boundary, refresh); r.IsCancel() {
		t.Fatal("a different action id should not conflict under Action mode")
	}

	secondLoad := NewSingleExecutionInfo("load", SingleExecutionAction)
	result := s.CanLock(boundary, secondLoad)
	if !result.IsCancel() {
		t.Fatal("the same action id should conflict under Action mode")
	}
	var conflict *ActionAlreadyRunningError
	if !errors.As(result.Err, &conflict) {
		t.Fatalf("Err = %v, want *ActionAlreadyRunningError", result.Err)
	}
}

func TestSingleExecutionStrategy_CleanupBoundary(t *testing.T) {
	t.Parallel()

	s := NewSingleExecutionStrategy()
	a, b := lockman.NewBoundaryId("a"), lockman.NewBoundaryId("b")
	s.Lock(a, NewSingleExecutionInfo("x", SingleExecutionBoundary))
	s.Lock(b, NewSingleExecutionInfo("y", SingleExecutionBoundary))

	s.CleanupBoundary(a)
	locks := s.CurrentLocks()
	if len(locks[a]) != 0 {
		t.Error("CleanupBoundary(a) left locks behind on a")
	}
	if len(locks[b]) != 1 {
		t.Error("CleanupBoundary(a) affected boundary b")
	}
}

func TestSingleExecutionStrategy_UnlockUnknownIsNoop(t *testing.T) {
	t.Parallel()

	s := NewSingleExecutionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	s.Unlock(boundary, NewSingleExecutionInfo("never-locked", SingleExecutionBoundary)) // must not panic
}
