package lockman

import "log/slog"

// Acquire resolves the strategy named by info.StrategyID() in r, invokes
// CanLock, and on any non-Cancel result invokes Lock and returns a token
// the caller must Release exactly once.
//
// This is the low-level, registry-parameterized entry point; most callers
// should use AcquireWith instead, which supplies the Manager's
// default registry, executor, and logger.
func Acquire[I LockmanInfo](r *Registry, boundary BoundaryId, info I, unlockOption UnlockOption, executor Executor, logger *slog.Logger) AcquireOutcome {
	strategy, err := Resolve[I](r, info.StrategyID())
	if err != nil {
		return AcquireOutcome{Kind: OutcomeError, Err: err}
	}

	result := strategy.CanLock(boundary, info)
	switch result.Kind {
	case CanLockCancel:
		return AcquireOutcome{Kind: OutcomeRefused, Err: result.Err}
	case CanLockSuccessWithPrecedingCancellation:
		strategy.Lock(boundary, info)
		token := newUnlockToken(func() { strategy.Unlock(boundary, info) }, unlockOption, executor, logger)
		return AcquireOutcome{Kind: OutcomeAcquiredPreempting, Token: token, PrecedingCancellation: result.PrecedingCancellation}
	default:
		strategy.Lock(boundary, info)
		token := newUnlockToken(func() { strategy.Unlock(boundary, info) }, unlockOption, executor, logger)
		return AcquireOutcome{Kind: OutcomeAcquired, Token: token}
	}
}
