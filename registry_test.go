package lockman

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	strat := newFakeStrategy(NewStrategyId("fake"))
	if err := Register[fakeInfo](r, strat); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	resolved, err := Resolve[fakeInfo](r, NewStrategyId("fake"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if resolved != strat {
		t.Error("Resolve() returned a different strategy instance")
	}
}

func TestRegistry_DuplicateRegistrationFails(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("fake")
	if err := RegisterAs[fakeInfo](r, id, newFakeStrategy(id)); err != nil {
		t.Fatalf("first RegisterAs() error: %v", err)
	}
	err := RegisterAs[fakeInfo](r, id, newFakeStrategy(id))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second RegisterAs() error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegistry_ResolveNotRegistered(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := Resolve[fakeInfo](r, NewStrategyId("missing"))
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Resolve() error = %v, want ErrNotRegistered", err)
	}
}

// otherFakeInfo is a distinct LockmanInfo type, used to provoke a type
// mismatch at Resolve.
type otherFakeInfo struct{ fakeInfo }

func (otherFakeInfo) StrategyID() StrategyId { return NewStrategyId("other") }

func TestRegistry_ResolveTypeMismatch(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("fake")
	if err := RegisterAs[fakeInfo](r, id, newFakeStrategy(id)); err != nil {
		t.Fatalf("RegisterAs() error: %v", err)
	}

	_, err := Resolve[otherFakeInfo](r, id)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Resolve() error = %v, want ErrTypeMismatch", err)
	}
}

func TestRegistry_RegisterAllIsAtomic(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	idA, idB := NewStrategyId("a"), NewStrategyId("b")
	if err := RegisterAs[fakeInfo](r, idA, newFakeStrategy(idA)); err != nil {
		t.Fatalf("pre-seed RegisterAs() error: %v", err)
	}

	// idA collides with the pre-seeded entry; idB must not survive either.
	err := RegisterAll(r,
		Pair[fakeInfo](idB, newFakeStrategy(idB)),
		Pair[fakeInfo](idA, newFakeStrategy(idA)),
	)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("RegisterAll() error = %v, want ErrAlreadyRegistered", err)
	}
	if r.IsRegistered(idB) {
		t.Error("RegisterAll() must not partially apply a rejected batch")
	}
}

func TestRegistry_RegisterAllRejectsInternalDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("dup")
	err := RegisterAll(r,
		Pair[fakeInfo](id, newFakeStrategy(id)),
		Pair[fakeInfo](id, newFakeStrategy(id)),
	)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("RegisterAll() error = %v, want ErrAlreadyRegistered", err)
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after a rejected batch", r.Count())
	}
}

func TestRegistry_UnregisterInvokesCleanup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("fake")
	strat := newFakeStrategy(id)
	strat.Lock(NewBoundaryId("b"), newFakeInfo("a"))
	if err := Register[fakeInfo](r, strat); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if ok := r.Unregister(id); !ok {
		t.Fatal("Unregister() = false, want true")
	}
	if !strat.cleanedUp {
		t.Error("Unregister() did not invoke Cleanup on the removed strategy")
	}
	if r.IsRegistered(id) {
		t.Error("strategy still registered after Unregister()")
	}
	if ok := r.Unregister(id); ok {
		t.Error("second Unregister() = true, want false (already removed)")
	}
}

func TestRegistry_CleanupAllLocksDoesNotUnregister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("fake")
	strat := newFakeStrategy(id)
	if err := Register[fakeInfo](r, strat); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	r.CleanupAllLocks()
	if !strat.cleanedUp {
		t.Error("CleanupAllLocks() did not invoke Cleanup")
	}
	if !r.IsRegistered(id) {
		t.Error("CleanupAllLocks() must not unregister strategies")
	}
}

func TestRegistry_RemoveAllClearsEverything(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := NewStrategyId("fake")
	strat := newFakeStrategy(id)
	if err := Register[fakeInfo](r, strat); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	r.RemoveAll()
	if !strat.cleanedUp {
		t.Error("RemoveAll() did not invoke Cleanup")
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after RemoveAll()", r.Count())
	}
}

func TestRegistry_InfoSortedByRegistrationTime(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first, second := NewStrategyId("first"), NewStrategyId("second")
	if err := Register[fakeInfo](r, newFakeStrategy(first)); err != nil {
		t.Fatalf("Register(first) error: %v", err)
	}
	if err := Register[fakeInfo](r, newFakeStrategy(second)); err != nil {
		t.Fatalf("Register(second) error: %v", err)
	}

	info := r.Info()
	if len(info) != 2 {
		t.Fatalf("Info() returned %d entries, want 2", len(info))
	}
	if info[0].ID != first || info[1].ID != second {
		t.Errorf("Info() = %v, %v; want registration order %v, %v", info[0].ID, info[1].ID, first, second)
	}
}
