package lockman

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// registryEntry is the type-erased record the Registry keeps for a
// registered strategy. strategy is stored as `any` and recovered with a
// type assertion to Strategy[I] in Resolve; typeName is kept alongside so
// a failed assertion can report what IS registered.
type registryEntry struct {
	strategy     any
	typeName     string
	registeredAt time.Time
}

// cleaner is satisfied by every Strategy[I] regardless of I, since
// Cleanup/CleanupBoundary take no type-parameterized arguments.
type cleaner interface {
	Cleanup()
	CleanupBoundary(boundary BoundaryId)
}

// lockLister is satisfied by every Strategy[I] regardless of I, since
// CurrentLocks returns the already-erased LockmanInfo.
type lockLister interface {
	CurrentLocks() map[BoundaryId][]LockmanInfo
}

// Registry is a thread-safe map from StrategyId to a type-erased Strategy.
// All mutations are serialized by a single exclusive lock; resolution is
// likewise serialized but O(1).
type Registry struct {
	mu      sync.Mutex
	entries map[StrategyId]registryEntry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[StrategyId]registryEntry)}
}

// RegisterAs registers strategy under id. It fails with
// *AlreadyRegisteredError if id is already occupied.
func RegisterAs[I LockmanInfo](r *Registry, id StrategyId, strategy Strategy[I]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return &AlreadyRegisteredError{ID: id}
	}
	r.entries[id] = registryEntry{
		strategy:     strategy,
		typeName:     fmt.Sprintf("%T", strategy),
		registeredAt: time.Now(),
	}
	return nil
}

// Register registers strategy under its own StrategyID().
func Register[I LockmanInfo](r *Registry, strategy Strategy[I]) error {
	return RegisterAs(r, strategy.StrategyID(), strategy)
}

// registration is one (id, strategy) pair for a batch RegisterAll call.
// Build one with Pair.
type registration struct {
	id       StrategyId
	strategy any
	typeName string
}

// Pair builds a registration pair for use with RegisterAll, erasing I so
// pairs of different strategy types can share a single batch.
func Pair[I LockmanInfo](id StrategyId, strategy Strategy[I]) registration {
	return registration{id: id, strategy: strategy, typeName: fmt.Sprintf("%T", strategy)}
}

// RegisterAll registers every pair atomically: if any id in the batch is
// already registered, or the batch itself contains a duplicate id, the
// whole batch is rejected and nothing is added.
func RegisterAll(r *Registry, pairs ...registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[StrategyId]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p.id]; dup {
			return &AlreadyRegisteredError{ID: p.id}
		}
		seen[p.id] = struct{}{}
		if _, exists := r.entries[p.id]; exists {
			return &AlreadyRegisteredError{ID: p.id}
		}
	}

	now := time.Now()
	for _, p := range pairs {
		r.entries[p.id] = registryEntry{strategy: p.strategy, typeName: p.typeName, registeredAt: now}
	}
	return nil
}

// Resolve returns the Strategy[I] registered under id. It fails with
// *NotRegisteredError if absent, or *TypeMismatchError if the stored
// strategy's info type differs from I.
func Resolve[I LockmanInfo](r *Registry, id StrategyId) (Strategy[I], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, &NotRegisteredError{ID: id}
	}
	strategy, ok := entry.strategy.(Strategy[I])
	if !ok {
		return nil, &TypeMismatchError{ID: id, Want: fmt.Sprintf("%T", *new(I)), Got: entry.typeName}
	}
	return strategy, nil
}

// IsRegistered reports whether id has an entry.
func (r *Registry) IsRegistered(id StrategyId) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Count returns the number of registered strategies.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// IDs returns every registered StrategyId in no particular order.
func (r *Registry) IDs() []StrategyId {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]StrategyId, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// RegistryInfo describes one registered strategy for introspection.
type RegistryInfo struct {
	ID           StrategyId
	TypeName     string
	RegisteredAt time.Time
}

// Info returns (id, type name, registration time) for every registered
// strategy, sorted by registration time.
func (r *Registry) Info() []RegistryInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RegistryInfo, 0, len(r.entries))
	for id, entry := range r.entries {
		out = append(out, RegistryInfo{ID: id, TypeName: entry.typeName, RegisteredAt: entry.registeredAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out
}

// Unregister removes id's entry, invoking its Cleanup before drop. It
// reports whether an entry was actually present.
func (r *Registry) Unregister(id StrategyId) bool {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	if c, ok := entry.strategy.(cleaner); ok {
		c.Cleanup()
	}
	return true
}

// CleanupAllLocks invokes Cleanup on every registered strategy, clearing
// their lock state, without unregistering them (unlike RemoveAll). Errors
// are not possible by contract (Strategy.Cleanup returns nothing); a
// strategy that panics is not caught, matching the "never blocks, never
// recovers" design of the core.
func (r *Registry) CleanupAllLocks() {
	r.mu.Lock()
	entries := make([]registryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.mu.Unlock()

	for _, entry := range entries {
		if c, ok := entry.strategy.(cleaner); ok {
			c.Cleanup()
		}
	}
}

// CurrentLocks aggregates CurrentLocks across every registered strategy,
// keyed first by StrategyId and then by boundary.
func (r *Registry) CurrentLocks() map[StrategyId]map[BoundaryId][]LockmanInfo {
	r.mu.Lock()
	entries := make(map[StrategyId]registryEntry, len(r.entries))
	for id, entry := range r.entries {
		entries[id] = entry
	}
	r.mu.Unlock()

	out := make(map[StrategyId]map[BoundaryId][]LockmanInfo, len(entries))
	for id, entry := range entries {
		if l, ok := entry.strategy.(lockLister); ok {
			out[id] = l.CurrentLocks()
		}
	}
	return out
}

// RemoveAll invokes Cleanup on every registered strategy (best-effort;
// a panic-free Cleanup failing to fully clear its own state does not
// abort cleanup of the rest) and then clears the registry.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	entries := make([]registryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.entries = make(map[StrategyId]registryEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		if c, ok := entry.strategy.(cleaner); ok {
			c.Cleanup()
		}
	}
}
