package lockman

// CanLockKind enumerates the possible outcomes of a strategy's CanLock
// check.
type CanLockKind int

const (
	// CanLockSuccess means the acquisition may proceed with no side
	// effects on any other holder.
	CanLockSuccess CanLockKind = iota
	// CanLockSuccessWithPrecedingCancellation means the acquisition may
	// proceed, but the caller must cancel a preceding action identified
	// by PrecedingCancellation.
	CanLockSuccessWithPrecedingCancellation
	// CanLockCancel means the acquisition is refused; Err describes why.
	CanLockCancel
)

// CanLockResult is the sum type returned by Strategy.CanLock.
type CanLockResult struct {
	Kind CanLockKind
	// PrecedingCancellation is set iff Kind ==
	// CanLockSuccessWithPrecedingCancellation.
	PrecedingCancellation error
	// Err is set iff Kind == CanLockCancel.
	Err error
}

// Success builds a CanLockResult that allows the acquisition outright.
func Success() CanLockResult {
	return CanLockResult{Kind: CanLockSuccess}
}

// SuccessWithPrecedingCancellation builds a CanLockResult that allows the
// acquisition but requires the caller to cancel the action named by err.
func SuccessWithPrecedingCancellation(err error) CanLockResult {
	return CanLockResult{Kind: CanLockSuccessWithPrecedingCancellation, PrecedingCancellation: err}
}

// Cancel builds a CanLockResult that refuses the acquisition.
func Cancel(err error) CanLockResult {
	return CanLockResult{Kind: CanLockCancel, Err: err}
}

// IsCancel reports whether the acquisition was refused.
func (r CanLockResult) IsCancel() bool { return r.Kind == CanLockCancel }

// OutcomeKind enumerates the possible results of Acquire.
type OutcomeKind int

const (
	// OutcomeAcquired means the lock was taken cleanly.
	OutcomeAcquired OutcomeKind = iota
	// OutcomeAcquiredPreempting means the lock was taken, and the caller
	// must cancel the preceding action described by PrecedingCancellation.
	OutcomeAcquiredPreempting
	// OutcomeRefused means the strategy declined the acquisition.
	OutcomeRefused
	// OutcomeError means the acquisition could not even be attempted
	// (e.g. the strategy id is not registered).
	OutcomeError
)

// AcquireOutcome is the result of Acquire.
type AcquireOutcome struct {
	Kind OutcomeKind
	// Token is set iff Kind is OutcomeAcquired or OutcomeAcquiredPreempting.
	Token *UnlockToken
	// PrecedingCancellation is set iff Kind == OutcomeAcquiredPreempting.
	PrecedingCancellation error
	// Err is set iff Kind is OutcomeRefused or OutcomeError.
	Err error
}

// Acquired reports the token when the acquisition succeeded (with or
// without a preceding cancellation).
func (o AcquireOutcome) Acquired() (*UnlockToken, bool) {
	if o.Kind == OutcomeAcquired || o.Kind == OutcomeAcquiredPreempting {
		return o.Token, true
	}
	return nil, false
}
