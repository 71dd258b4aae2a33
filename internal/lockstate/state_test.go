package lockstate

import (
	"testing"

	"github.com/google/uuid"

	lockman "github.com/takeshishimada/lockman-go"
)

type entry struct {
	id     uuid.UUID
	action string
}

func (e entry) UniqueID() uuid.UUID { return e.id }

func newEntry(action string) entry {
	return entry{id: uuid.New(), action: action}
}

func TestState_AddCurrentRemove(t *testing.T) {
	t.Parallel()

	s := New[entry](nil)
	boundary := lockman.NewBoundaryId("screen")
	a, b := newEntry("a"), newEntry("b")

	s.Add(boundary, a)
	s.Add(boundary, b)

	current := s.Current(boundary)
	if len(current) != 2 || current[0].action != "a" || current[1].action != "b" {
		t.Fatalf("Current() = %v, want insertion order [a, b]", current)
	}

	s.Remove(boundary, a)
	current = s.Current(boundary)
	if len(current) != 1 || current[0].action != "b" {
		t.Fatalf("Current() after Remove(a) = %v, want [b]", current)
	}
}

func TestState_RemoveUnknownEntryIsNoop(t *testing.T) {
	t.Parallel()

	s := New[entry](nil)
	boundary := lockman.NewBoundaryId("screen")
	s.Remove(boundary, newEntry("never added")) // must not panic
	if len(s.Current(boundary)) != 0 {
		t.Fatal("Current() should remain empty")
	}
}

func TestState_DistinctBoundaryTypesDoNotCollide(t *testing.T) {
	t.Parallel()

	s := New[entry](nil)
	intBoundary := lockman.NewBoundaryId(5)
	stringBoundary := lockman.NewBoundaryId("5")

	s.Add(intBoundary, newEntry("int-scoped"))
	if len(s.Current(stringBoundary)) != 0 {
		t.Fatal("an int(5) boundary entry leaked into the string(\"5\") boundary's view")
	}
	if len(s.Current(intBoundary)) != 1 {
		t.Fatal("entry missing from its own boundary")
	}
}

func TestState_CurrentByKeyAndContains(t *testing.T) {
	t.Parallel()

	s := New[entry](func(e entry) string { return e.action })
	boundary := lockman.NewBoundaryId("screen")
	s.Add(boundary, newEntry("refresh"))
	s.Add(boundary, newEntry("submit"))

	if !s.Contains(boundary, "refresh") {
		t.Error("Contains() = false for a key that was added")
	}
	if s.Contains(boundary, "missing") {
		t.Error("Contains() = true for a key that was never added")
	}

	byKey := s.CurrentByKey(boundary, "submit")
	if len(byKey) != 1 || byKey[0].action != "submit" {
		t.Fatalf("CurrentByKey(\"submit\") = %v, want exactly the submit entry", byKey)
	}
}

func TestState_RemoveAllForBoundary(t *testing.T) {
	t.Parallel()

	s := New[entry](func(e entry) string { return e.action })
	a, b := lockman.NewBoundaryId("a"), lockman.NewBoundaryId("b")
	s.Add(a, newEntry("x"))
	s.Add(b, newEntry("y"))

	s.RemoveAllForBoundary(a)
	if len(s.Current(a)) != 0 {
		t.Error("boundary a should be empty after RemoveAllForBoundary")
	}
	if len(s.Current(b)) != 1 {
		t.Error("boundary b should be untouched")
	}
}

func TestState_RemoveAll(t *testing.T) {
	t.Parallel()

	s := New[entry](nil)
	a, b := lockman.NewBoundaryId("a"), lockman.NewBoundaryId("b")
	s.Add(a, newEntry("x"))
	s.Add(b, newEntry("y"))

	s.RemoveAll()
	all := s.AllLocks()
	if len(all) != 0 {
		t.Errorf("AllLocks() = %v, want empty after RemoveAll()", all)
	}
}

func TestState_AllLocksIsASnapshot(t *testing.T) {
	t.Parallel()

	s := New[entry](nil)
	boundary := lockman.NewBoundaryId("screen")
	s.Add(boundary, newEntry("x"))

	snapshot := s.AllLocks()
	s.Add(boundary, newEntry("y"))

	if len(snapshot[boundary]) != 1 {
		t.Error("AllLocks() snapshot was mutated by a later Add()")
	}
}
