package lockman

import "testing"

func TestBoundaryId_EqualityByTypeAndValue(t *testing.T) {
	t.Parallel()

	intFive := NewBoundaryId(5)
	stringFive := NewBoundaryId("5")
	if intFive == stringFive {
		t.Fatal("BoundaryId wrapping int 5 and string \"5\" must not be equal")
	}

	otherIntFive := NewBoundaryId(5)
	if intFive != otherIntFive {
		t.Fatal("two BoundaryId values wrapping the same int must be equal")
	}
}

func TestBoundaryId_UsableAsMapKey(t *testing.T) {
	t.Parallel()

	m := map[BoundaryId]string{
		NewBoundaryId("screen-a"):  "a",
		NewBoundaryId(42):          "int",
		NewBoundaryId(screenID(1)): "custom",
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 distinct entries, got %d", len(m))
	}
	if m[NewBoundaryId("screen-a")] != "a" {
		t.Fatal("lookup by reconstructed BoundaryId failed")
	}
}

func TestBoundaryId_Unwrap(t *testing.T) {
	t.Parallel()

	b := NewBoundaryId(screenID(7))
	v, ok := b.Unwrap().(screenID)
	if !ok || v != 7 {
		t.Fatalf("Unwrap() = %v, want screenID(7)", b.Unwrap())
	}
}

func TestBoundaryId_String(t *testing.T) {
	t.Parallel()

	if got := NewBoundaryId("checkout").String(); got != "checkout" {
		t.Errorf("String() = %q, want %q", got, "checkout")
	}
}

type screenID int
