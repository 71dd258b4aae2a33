package lockman

import "fmt"

// BoundaryId is a type-erased, hashable key identifying a scope of mutual
// exclusion (a screen, a feature, a session). Equality and hash are those
// of the caller's underlying value: two BoundaryId values holding equal
// logical values but constructed from different Go types are NOT equal,
// since Go interface comparison takes the dynamic type into account.
//
// BoundaryId is itself comparable and safe to use as a map key, provided
// the wrapped value is comparable (enforced at construction time by
// NewBoundaryId's generic constraint).
type BoundaryId struct {
	value any
}

// NewBoundaryId wraps any comparable value as a BoundaryId.
func NewBoundaryId[T comparable](v T) BoundaryId {
	return BoundaryId{value: v}
}

// Unwrap returns the original value stored in the BoundaryId.
func (b BoundaryId) Unwrap() any {
	return b.value
}

// String renders the boundary for debug output.
func (b BoundaryId) String() string {
	return fmt.Sprintf("%v", b.value)
}
