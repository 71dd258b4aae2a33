// Package lockstate implements the per-strategy, per-boundary ordered
// multimap strategies use to track active locks (spec component C4).
//
// It is internal because its generic, key-extractor-driven shape is an
// implementation detail of the strategies package; the public API
// surfaces it only through Strategy.CurrentLocks snapshots.
package lockstate

import (
	"sync"

	"github.com/google/uuid"

	lockman "github.com/takeshishimada/lockman-go"
)

// Entry is anything State can store: it must expose the identity used for
// removal.
type Entry interface {
	UniqueID() uuid.UUID
}

// State is a single exclusive-lock-protected map from boundary to an
// insertion-ordered slice of T, plus an auxiliary (boundary, key) index
// for O(1) key-scoped lookups. A nil keyFunc disables the auxiliary
// index; callers that never call CurrentByKey or Contains can omit it.
//
// Keys are lockman.BoundaryId, not a stringified form: BoundaryId already
// preserves the caller's original type in its equality, and collapsing it
// to a string would wrongly conflate e.g. the int 5 and the string "5".
type State[T Entry] struct {
	mu      sync.Mutex
	byBound map[lockman.BoundaryId][]T
	keyFunc func(T) string
	keys    map[lockman.BoundaryId]map[string][]T
}

// New creates an empty State. keyFunc extracts the per-entry key used for
// the auxiliary index (e.g. an action id or a group id); pass nil if the
// strategy never needs key-scoped lookups.
func New[T Entry](keyFunc func(T) string) *State[T] {
	return &State[T]{
		byBound: make(map[lockman.BoundaryId][]T),
		keyFunc: keyFunc,
		keys:    make(map[lockman.BoundaryId]map[string][]T),
	}
}

// Add appends entry to boundary's sequence, and to the auxiliary index if
// a keyFunc was supplied.
func (s *State[T]) Add(boundary lockman.BoundaryId, entry T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byBound[boundary] = append(s.byBound[boundary], entry)
	if s.keyFunc != nil {
		key := s.keyFunc(entry)
		if s.keys[boundary] == nil {
			s.keys[boundary] = make(map[string][]T)
		}
		s.keys[boundary][key] = append(s.keys[boundary][key], entry)
	}
}

// Remove deletes the element of boundary's sequence whose UniqueID
// matches entry's; a no-op if no such element exists (Testable Property
// 2). Empty boundary entries are pruned from both maps.
func (s *State[T]) Remove(boundary lockman.BoundaryId, entry T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entry.UniqueID()
	seq, ok := s.byBound[boundary]
	if !ok {
		return
	}
	idx := -1
	for i, e := range seq {
		if e.UniqueID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	seq = append(seq[:idx], seq[idx+1:]...)
	if len(seq) == 0 {
		delete(s.byBound, boundary)
	} else {
		s.byBound[boundary] = seq
	}

	if s.keyFunc != nil {
		key := s.keyFunc(entry)
		if byKey, ok := s.keys[boundary]; ok {
			if keySeq, ok := byKey[key]; ok {
				keySeq = removeByID(keySeq, id)
				if len(keySeq) == 0 {
					delete(byKey, key)
				} else {
					byKey[key] = keySeq
				}
				if len(byKey) == 0 {
					delete(s.keys, boundary)
				}
			}
		}
	}
}

func removeByID[T Entry](seq []T, id uuid.UUID) []T {
	for i, e := range seq {
		if e.UniqueID() == id {
			return append(seq[:i], seq[i+1:]...)
		}
	}
	return seq
}

// Contains reports whether any entry in boundary projects to key via
// keyFunc.
func (s *State[T]) Contains(boundary lockman.BoundaryId, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.keys[boundary]
	if !ok {
		return false
	}
	return len(byKey[key]) > 0
}

// Current returns a snapshot of boundary's sequence in insertion order.
func (s *State[T]) Current(boundary lockman.BoundaryId) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.byBound[boundary]
	out := make([]T, len(seq))
	copy(out, seq)
	return out
}

// CurrentByKey returns a snapshot of boundary's sequence filtered to key.
func (s *State[T]) CurrentByKey(boundary lockman.BoundaryId, key string) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.keys[boundary][key]
	out := make([]T, len(seq))
	copy(out, seq)
	return out
}

// RemoveAllForBoundary clears every entry for one boundary.
func (s *State[T]) RemoveAllForBoundary(boundary lockman.BoundaryId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byBound, boundary)
	delete(s.keys, boundary)
}

// RemoveAll clears every boundary's state.
func (s *State[T]) RemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byBound = make(map[lockman.BoundaryId][]T)
	s.keys = make(map[lockman.BoundaryId]map[string][]T)
}

// AllLocks returns a snapshot of the whole map.
func (s *State[T]) AllLocks() map[lockman.BoundaryId][]T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[lockman.BoundaryId][]T, len(s.byBound))
	for b, seq := range s.byBound {
		cp := make([]T, len(seq))
		copy(cp, seq)
		out[b] = cp
	}
	return out
}
