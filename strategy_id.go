package lockman

import "fmt"

// StrategyId is the stable textual identifier of a registered strategy
// instance: a name plus an optional config discriminator, canonically
// rendered as "name" or "name:config".
type StrategyId struct {
	name      string
	config    string
	hasConfig bool
}

// NewStrategyId builds a bare StrategyId from a name.
func NewStrategyId(name string) StrategyId {
	return StrategyId{name: name}
}

// NewStrategyIdWithConfig builds a StrategyId carrying a config
// discriminator, for when a single strategy implementation is registered
// more than once under different configurations.
func NewStrategyIdWithConfig(name, config string) StrategyId {
	return StrategyId{name: name, config: config, hasConfig: true}
}

// Name returns the strategy name component.
func (id StrategyId) Name() string { return id.name }

// Config returns the config discriminator and whether one is present.
func (id StrategyId) Config() (string, bool) { return id.config, id.hasConfig }

// String renders the canonical form: "name" or "name:config".
func (id StrategyId) String() string {
	if id.hasConfig {
		return fmt.Sprintf("%s:%s", id.name, id.config)
	}
	return id.name
}

// Canonical strategy ids for the built-in strategies. The concrete
// implementations live in package strategies; these identifiers are
// declared here so callers can reference them without importing that
// package (e.g. when resolving against a custom Registry).
var (
	SingleExecutionStrategyId   = NewStrategyId("singleExecution")
	PriorityBasedStrategyId     = NewStrategyId("priorityBased")
	GroupCoordinationStrategyId = NewStrategyId("groupCoordination")
	ConcurrencyLimitedStrategyId = NewStrategyId("concurrencyLimited")
	DynamicConditionStrategyId  = NewStrategyId("dynamicCondition")
)

// CompositeStrategyId returns the canonical id for an N-ary composite
// strategy, N in 2..5.
func CompositeStrategyId(arity int) StrategyId {
	return NewStrategyId(fmt.Sprintf("Lockman.CompositeStrategy%d", arity))
}
