package lockman

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// defaultRegistry is the process-wide Registry used by Manager when no
// test override is active. It starts empty; package strategies registers
// the five built-in strategies into it as an init-time side effect when
// imported, the way database/sql drivers register themselves.
var defaultRegistry = NewRegistry()

// registryOverride holds the test-scoped substitute Registry, if any. A
// nil value means "use defaultRegistry".
var registryOverride atomic.Pointer[Registry]

// overrideMu serializes WithTestContainer calls. Go has no goroutine-local
// storage, so per-test isolation across parallel tests is not supported;
// concurrent WithTestContainer calls are serialized instead (see
// DESIGN.md's resolution of this Open Question).
var overrideMu sync.Mutex

// Container returns the Registry currently in effect: the active test
// override if WithTestContainer is running, else the process-wide
// default.
func Container() *Registry {
	if r := registryOverride.Load(); r != nil {
		return r
	}
	return defaultRegistry
}

// WithTestContainer substitutes registry as the active container for the
// duration of fn, then restores whatever was active before. Nested calls
// and concurrent calls from different goroutines are serialized by
// overrideMu.
func WithTestContainer(registry *Registry, fn func()) {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	prev := registryOverride.Swap(registry)
	defer registryOverride.Store(prev)
	fn()
}

// Config holds Manager defaults. There is no file or environment
// configuration: Lockman persists nothing and reads no environment, so
// the only configuration surface is this in-process struct.
type Config struct {
	// DefaultUnlockOption is used by AcquireWith when the action's
	// own UnlockOption() is the zero value UnlockOption{} (Kind
	// UnlockImmediate), i.e. effectively "use the manager default".
	DefaultUnlockOption UnlockOption
	// Executor services UnlockMainRunLoop releases. May be nil, in which
	// case such releases run inline with a logged warning.
	Executor Executor
	// Logger receives the warning logged when a MainRunLoop release finds
	// no executor configured. Defaults to slog.Default().
	Logger *slog.Logger
}

// Manager is the facade applications use to acquire and introspect locks.
// It bundles a Registry (by default the process-wide Container()), an
// Executor for MainRunLoop releases, and a Logger.
type Manager struct {
	registry            *Registry
	executor            Executor
	logger              *slog.Logger
	defaultUnlockOption UnlockOption
}

// NewManager builds a Manager over Container() (the active registry) with
// the given Config. A zero Config is valid: it yields Immediate releases,
// no executor, and the default logger.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry:            Container(),
		executor:            cfg.Executor,
		logger:              logger,
		defaultUnlockOption: cfg.DefaultUnlockOption,
	}
}

// Registry returns the Manager's backing Registry.
func (m *Manager) Registry() *Registry { return m.registry }

// AcquireWith resolves action's strategy, runs CanLock/Lock, and returns the
// outcome. It is the primary entry point for callers wiring Lockman into
// an effect system.
func AcquireWith[I LockmanInfo](m *Manager, boundary BoundaryId, action LockmanAction[I]) AcquireOutcome {
	info := action.LockmanInfo()
	option := action.UnlockOption()
	if option == (UnlockOption{}) {
		option = m.defaultUnlockOption
	}
	return Acquire[I](m.registry, boundary, info, option, m.executor, m.logger)
}

// CleanupAll invokes Cleanup on every strategy in the Manager's registry.
// Best-effort: a panic-free per-strategy failure does not stop the rest
// (strategies never return errors from Cleanup, so in practice this only
// ever fans the call out; the method exists so callers have one place to
// reset all state between, e.g., test cases).
func (m *Manager) CleanupAll() {
	m.registry.CleanupAllLocks()
}
