// Package strategies provides the six built-in lockman.Strategy
// implementations: SingleExecution, PriorityBased, GroupCoordination,
// ConcurrencyLimited, DynamicCondition, and Composite.
//
// Importing this package registers the first five under their canonical
// StrategyId into lockman's process-wide default Registry as an init-time
// side effect, the way database/sql drivers register themselves:
//
//	import _ "github.com/takeshishimada/lockman-go/strategies"
//
// Tests that swap in a scratch Registry via lockman.WithTestContainer
// should call RegisterDefaults on it explicitly, since init-time
// registration only ever touches the process-wide default.
//
// Composite strategies are never auto-registered since they are built
// from caller-chosen inner strategies; construct and register them
// explicitly with NewComposite2..NewComposite5.
package strategies

import lockman "github.com/takeshishimada/lockman-go"

func init() {
	if err := RegisterDefaults(lockman.Container()); err != nil {
		panic(err)
	}
}

// RegisterDefaults registers SingleExecution, PriorityBased,
// GroupCoordination, ConcurrencyLimited, and DynamicCondition into
// registry under their canonical StrategyId values.
func RegisterDefaults(registry *lockman.Registry) error {
	if err := lockman.Register[SingleExecutionInfo](registry, NewSingleExecutionStrategy()); err != nil {
		return err
	}
	if err := lockman.Register[PriorityBasedInfo](registry, NewPriorityBasedStrategy()); err != nil {
		return err
	}
	if err := lockman.Register[GroupCoordinationInfo](registry, NewGroupCoordinationStrategy()); err != nil {
		return err
	}
	if err := lockman.Register[ConcurrencyLimitedInfo](registry, NewConcurrencyLimitedStrategy()); err != nil {
		return err
	}
	if err := lockman.Register[DynamicConditionInfo](registry, NewDynamicConditionStrategy()); err != nil {
		return err
	}
	return nil
}
