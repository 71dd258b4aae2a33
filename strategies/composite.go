package strategies

import (
	"fmt"
	"strings"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// PrecedingCancellationAggregateError collects the preceding-cancellation
// errors of every inner strategy that returned
// SuccessWithPrecedingCancellation, in declaration order.
type PrecedingCancellationAggregateError struct {
	Errors []error
}

func (e *PrecedingCancellationAggregateError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("composite: preceding cancellations required: %s", strings.Join(parts, "; "))
}

// combineResults implements the Composite can_lock law from spec.md
// §4.3.6: short-circuit on the first Cancel; otherwise aggregate every
// SuccessWithPrecedingCancellation payload; otherwise Success.
func combineResults(results ...lockman.CanLockResult) lockman.CanLockResult {
	var pending []error
	for _, r := range results {
		switch r.Kind {
		case lockman.CanLockCancel:
			return r
		case lockman.CanLockSuccessWithPrecedingCancellation:
			pending = append(pending, r.PrecedingCancellation)
		}
	}
	if len(pending) > 0 {
		return lockman.SuccessWithPrecedingCancellation(&PrecedingCancellationAggregateError{Errors: pending})
	}
	return lockman.Success()
}

// Composite2Info bundles two inner LockmanInfo payloads acquired
// atomically.
type Composite2Info[I1 lockman.LockmanInfo, I2 lockman.LockmanInfo] struct {
	baseInfo
	Info1 I1
	Info2 I2
}

// NewComposite2Info builds a Composite2Info for actionID from its two
// inner payloads.
func NewComposite2Info[I1, I2 lockman.LockmanInfo](actionID string, info1 I1, info2 I2) Composite2Info[I1, I2] {
	return Composite2Info[I1, I2]{
		baseInfo: newBaseInfo(lockman.CompositeStrategyId(2), actionID, true),
		Info1:    info1,
		Info2:    info2,
	}
}

// DebugDescription renders the record for introspection.
func (i Composite2Info[I1, I2]) DebugDescription() string {
	return fmt.Sprintf("Composite2Info(actionId: %s, uniqueId: %s)", i.actionID, i.uniqueID)
}

// Composite2Strategy acquires two inner strategies atomically, per
// spec.md §4.3.6.
type Composite2Strategy[I1 lockman.LockmanInfo, I2 lockman.LockmanInfo] struct {
	s1    lockman.Strategy[I1]
	s2    lockman.Strategy[I2]
	state *lockstate.State[Composite2Info[I1, I2]]
}

// NewComposite2 builds a Composite2Strategy over two inner strategies.
func NewComposite2[I1, I2 lockman.LockmanInfo](s1 lockman.Strategy[I1], s2 lockman.Strategy[I2]) *Composite2Strategy[I1, I2] {
	return &Composite2Strategy[I1, I2]{
		s1:    s1,
		s2:    s2,
		state: lockstate.New[Composite2Info[I1, I2]](nil),
	}
}

// StrategyID reports the canonical 2-ary composite id.
func (s *Composite2Strategy[I1, I2]) StrategyID() lockman.StrategyId {
	return lockman.CompositeStrategyId(2)
}

// CanLock evaluates both inner strategies in declaration order.
func (s *Composite2Strategy[I1, I2]) CanLock(boundary lockman.BoundaryId, info Composite2Info[I1, I2]) lockman.CanLockResult {
	return combineResults(
		s.s1.CanLock(boundary, info.Info1),
		s.s2.CanLock(boundary, info.Info2),
	)
}

// Lock acquires both inner strategies in declaration order.
func (s *Composite2Strategy[I1, I2]) Lock(boundary lockman.BoundaryId, info Composite2Info[I1, I2]) {
	s.s1.Lock(boundary, info.Info1)
	s.s2.Lock(boundary, info.Info2)
	s.state.Add(boundary, info)
}

// Unlock releases both inner strategies in reverse order.
func (s *Composite2Strategy[I1, I2]) Unlock(boundary lockman.BoundaryId, info Composite2Info[I1, I2]) {
	s.s2.Unlock(boundary, info.Info2)
	s.s1.Unlock(boundary, info.Info1)
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of the composite-level lock records.
func (s *Composite2Strategy[I1, I2]) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup fans out to both inner strategies and clears composite-level
// state.
func (s *Composite2Strategy[I1, I2]) Cleanup() {
	s.s1.Cleanup()
	s.s2.Cleanup()
	s.state.RemoveAll()
}

// CleanupBoundary fans out to both inner strategies for a single
// boundary.
func (s *Composite2Strategy[I1, I2]) CleanupBoundary(boundary lockman.BoundaryId) {
	s.s1.CleanupBoundary(boundary)
	s.s2.CleanupBoundary(boundary)
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[Composite2Info[SingleExecutionInfo, SingleExecutionInfo]] = (*Composite2Strategy[SingleExecutionInfo, SingleExecutionInfo])(nil)

// Composite3Info bundles three inner LockmanInfo payloads acquired
// atomically.
type Composite3Info[I1, I2, I3 lockman.LockmanInfo] struct {
	baseInfo
	Info1 I1
	Info2 I2
	Info3 I3
}

// NewComposite3Info builds a Composite3Info for actionID from its three
// inner payloads.
func NewComposite3Info[I1, I2, I3 lockman.LockmanInfo](actionID string, info1 I1, info2 I2, info3 I3) Composite3Info[I1, I2, I3] {
	return Composite3Info[I1, I2, I3]{
		baseInfo: newBaseInfo(lockman.CompositeStrategyId(3), actionID, true),
		Info1:    info1,
		Info2:    info2,
		Info3:    info3,
	}
}

// DebugDescription renders the record for introspection.
func (i Composite3Info[I1, I2, I3]) DebugDescription() string {
	return fmt.Sprintf("Composite3Info(actionId: %s, uniqueId: %s)", i.actionID, i.uniqueID)
}

// Composite3Strategy acquires three inner strategies atomically, per
// spec.md §4.3.6.
type Composite3Strategy[I1, I2, I3 lockman.LockmanInfo] struct {
	s1    lockman.Strategy[I1]
	s2    lockman.Strategy[I2]
	s3    lockman.Strategy[I3]
	state *lockstate.State[Composite3Info[I1, I2, I3]]
}

// NewComposite3 builds a Composite3Strategy over three inner strategies.
func NewComposite3[I1, I2, I3 lockman.LockmanInfo](s1 lockman.Strategy[I1], s2 lockman.Strategy[I2], s3 lockman.Strategy[I3]) *Composite3Strategy[I1, I2, I3] {
	return &Composite3Strategy[I1, I2, I3]{
		s1:    s1,
		s2:    s2,
		s3:    s3,
		state: lockstate.New[Composite3Info[I1, I2, I3]](nil),
	}
}

// StrategyID reports the canonical 3-ary composite id.
func (s *Composite3Strategy[I1, I2, I3]) StrategyID() lockman.StrategyId {
	return lockman.CompositeStrategyId(3)
}

// CanLock evaluates all three inner strategies in declaration order.
func (s *Composite3Strategy[I1, I2, I3]) CanLock(boundary lockman.BoundaryId, info Composite3Info[I1, I2, I3]) lockman.CanLockResult {
	return combineResults(
		s.s1.CanLock(boundary, info.Info1),
		s.s2.CanLock(boundary, info.Info2),
		s.s3.CanLock(boundary, info.Info3),
	)
}

// Lock acquires all three inner strategies in declaration order.
func (s *Composite3Strategy[I1, I2, I3]) Lock(boundary lockman.BoundaryId, info Composite3Info[I1, I2, I3]) {
	s.s1.Lock(boundary, info.Info1)
	s.s2.Lock(boundary, info.Info2)
	s.s3.Lock(boundary, info.Info3)
	s.state.Add(boundary, info)
}

// Unlock releases all three inner strategies in reverse order.
func (s *Composite3Strategy[I1, I2, I3]) Unlock(boundary lockman.BoundaryId, info Composite3Info[I1, I2, I3]) {
	s.s3.Unlock(boundary, info.Info3)
	s.s2.Unlock(boundary, info.Info2)
	s.s1.Unlock(boundary, info.Info1)
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of the composite-level lock records.
func (s *Composite3Strategy[I1, I2, I3]) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup fans out to all three inner strategies and clears
// composite-level state.
func (s *Composite3Strategy[I1, I2, I3]) Cleanup() {
	s.s1.Cleanup()
	s.s2.Cleanup()
	s.s3.Cleanup()
	s.state.RemoveAll()
}

// CleanupBoundary fans out to all three inner strategies for a single
// boundary.
func (s *Composite3Strategy[I1, I2, I3]) CleanupBoundary(boundary lockman.BoundaryId) {
	s.s1.CleanupBoundary(boundary)
	s.s2.CleanupBoundary(boundary)
	s.s3.CleanupBoundary(boundary)
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[Composite3Info[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo]] = (*Composite3Strategy[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo])(nil)

// Composite4Info bundles four inner LockmanInfo payloads acquired
// atomically.
type Composite4Info[I1, I2, I3, I4 lockman.LockmanInfo] struct {
	baseInfo
	Info1 I1
	Info2 I2
	Info3 I3
	Info4 I4
}

// NewComposite4Info builds a Composite4Info for actionID from its four
// inner payloads.
func NewComposite4Info[I1, I2, I3, I4 lockman.LockmanInfo](actionID string, info1 I1, info2 I2, info3 I3, info4 I4) Composite4Info[I1, I2, I3, I4] {
	return Composite4Info[I1, I2, I3, I4]{
		baseInfo: newBaseInfo(lockman.CompositeStrategyId(4), actionID, true),
		Info1:    info1,
		Info2:    info2,
		Info3:    info3,
		Info4:    info4,
	}
}

// DebugDescription renders the record for introspection.
func (i Composite4Info[I1, I2, I3, I4]) DebugDescription() string {
	return fmt.Sprintf("Composite4Info(actionId: %s, uniqueId: %s)", i.actionID, i.uniqueID)
}

// Composite4Strategy acquires four inner strategies atomically, per
// spec.md §4.3.6.
type Composite4Strategy[I1, I2, I3, I4 lockman.LockmanInfo] struct {
	s1    lockman.Strategy[I1]
	s2    lockman.Strategy[I2]
	s3    lockman.Strategy[I3]
	s4    lockman.Strategy[I4]
	state *lockstate.State[Composite4Info[I1, I2, I3, I4]]
}

// NewComposite4 builds a Composite4Strategy over four inner strategies.
func NewComposite4[I1, I2, I3, I4 lockman.LockmanInfo](s1 lockman.Strategy[I1], s2 lockman.Strategy[I2], s3 lockman.Strategy[I3], s4 lockman.Strategy[I4]) *Composite4Strategy[I1, I2, I3, I4] {
	return &Composite4Strategy[I1, I2, I3, I4]{
		s1:    s1,
		s2:    s2,
		s3:    s3,
		s4:    s4,
		state: lockstate.New[Composite4Info[I1, I2, I3, I4]](nil),
	}
}

// StrategyID reports the canonical 4-ary composite id.
func (s *Composite4Strategy[I1, I2, I3, I4]) StrategyID() lockman.StrategyId {
	return lockman.CompositeStrategyId(4)
}

// CanLock evaluates all four inner strategies in declaration order.
func (s *Composite4Strategy[I1, I2, I3, I4]) CanLock(boundary lockman.BoundaryId, info Composite4Info[I1, I2, I3, I4]) lockman.CanLockResult {
	return combineResults(
		s.s1.CanLock(boundary, info.Info1),
		s.s2.CanLock(boundary, info.Info2),
		s.s3.CanLock(boundary, info.Info3),
		s.s4.CanLock(boundary, info.Info4),
	)
}

// Lock acquires all four inner strategies in declaration order.
func (s *Composite4Strategy[I1, I2, I3, I4]) Lock(boundary lockman.BoundaryId, info Composite4Info[I1, I2, I3, I4]) {
	s.s1.Lock(boundary, info.Info1)
	s.s2.Lock(boundary, info.Info2)
	s.s3.Lock(boundary, info.Info3)
	s.s4.Lock(boundary, info.Info4)
	s.state.Add(boundary, info)
}

// Unlock releases all four inner strategies in reverse order.
func (s *Composite4Strategy[I1, I2, I3, I4]) Unlock(boundary lockman.BoundaryId, info Composite4Info[I1, I2, I3, I4]) {
	s.s4.Unlock(boundary, info.Info4)
	s.s3.Unlock(boundary, info.Info3)
	s.s2.Unlock(boundary, info.Info2)
	s.s1.Unlock(boundary, info.Info1)
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of the composite-level lock records.
func (s *Composite4Strategy[I1, I2, I3, I4]) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup fans out to all four inner strategies and clears
// composite-level state.
func (s *Composite4Strategy[I1, I2, I3, I4]) Cleanup() {
	s.s1.Cleanup()
	s.s2.Cleanup()
	s.s3.Cleanup()
	s.s4.Cleanup()
	s.state.RemoveAll()
}

// CleanupBoundary fans out to all four inner strategies for a single
// boundary.
func (s *Composite4Strategy[I1, I2, I3, I4]) CleanupBoundary(boundary lockman.BoundaryId) {
	s.s1.CleanupBoundary(boundary)
	s.s2.CleanupBoundary(boundary)
	s.s3.CleanupBoundary(boundary)
	s.s4.CleanupBoundary(boundary)
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[Composite4Info[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo]] = (*Composite4Strategy[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo])(nil)

// Composite5Info bundles five inner LockmanInfo payloads acquired
// atomically.
type Composite5Info[I1, I2, I3, I4, I5 lockman.LockmanInfo] struct {
	baseInfo
	Info1 I1
	Info2 I2
	Info3 I3
	Info4 I4
	Info5 I5
}

// NewComposite5Info builds a Composite5Info for actionID from its five
// inner payloads.
func NewComposite5Info[I1, I2, I3, I4, I5 lockman.LockmanInfo](actionID string, info1 I1, info2 I2, info3 I3, info4 I4, info5 I5) Composite5Info[I1, I2, I3, I4, I5] {
	return Composite5Info[I1, I2, I3, I4, I5]{
		baseInfo: newBaseInfo(lockman.CompositeStrategyId(5), actionID, true),
		Info1:    info1,
		Info2:    info2,
		Info3:    info3,
		Info4:    info4,
		Info5:    info5,
	}
}

// DebugDescription renders the record for introspection.
func (i Composite5Info[I1, I2, I3, I4, I5]) DebugDescription() string {
	return fmt.Sprintf("Composite5Info(actionId: %s, uniqueId: %s)", i.actionID, i.uniqueID)
}

// Composite5Strategy acquires five inner strategies atomically, per
// spec.md §4.3.6.
type Composite5Strategy[I1, I2, I3, I4, I5 lockman.LockmanInfo] struct {
	s1    lockman.Strategy[I1]
	s2    lockman.Strategy[I2]
	s3    lockman.Strategy[I3]
	s4    lockman.Strategy[I4]
	s5    lockman.Strategy[I5]
	state *lockstate.State[Composite5Info[I1, I2, I3, I4, I5]]
}

// NewComposite5 builds a Composite5Strategy over five inner strategies.
func NewComposite5[I1, I2, I3, I4, I5 lockman.LockmanInfo](s1 lockman.Strategy[I1], s2 lockman.Strategy[I2], s3 lockman.Strategy[I3], s4 lockman.Strategy[I4], s5 lockman.Strategy[I5]) *Composite5Strategy[I1, I2, I3, I4, I5] {
	return &Composite5Strategy[I1, I2, I3, I4, I5]{
		s1:    s1,
		s2:    s2,
		s3:    s3,
		s4:    s4,
		s5:    s5,
		state: lockstate.New[Composite5Info[I1, I2, I3, I4, I5]](nil),
	}
}

// StrategyID reports the canonical 5-ary composite id.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) StrategyID() lockman.StrategyId {
	return lockman.CompositeStrategyId(5)
}

// CanLock evaluates all five inner strategies in declaration order.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) CanLock(boundary lockman.BoundaryId, info Composite5Info[I1, I2, I3, I4, I5]) lockman.CanLockResult {
	return combineResults(
		s.s1.CanLock(boundary, info.Info1),
		s.s2.CanLock(boundary, info.Info2),
		s.s3.CanLock(boundary, info.Info3),
		s.s4.CanLock(boundary, info.Info4),
		s.s5.CanLock(boundary, info.Info5),
	)
}

// Lock acquires all five inner strategies in declaration order.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) Lock(boundary lockman.BoundaryId, info Composite5Info[I1, I2, I3, I4, I5]) {
	s.s1.Lock(boundary, info.Info1)
	s.s2.Lock(boundary, info.Info2)
	s.s3.Lock(boundary, info.Info3)
	s.s4.Lock(boundary, info.Info4)
	s.s5.Lock(boundary, info.Info5)
	s.state.Add(boundary, info)
}

// Unlock releases all five inner strategies in reverse order.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) Unlock(boundary lockman.BoundaryId, info Composite5Info[I1, I2, I3, I4, I5]) {
	s.s5.Unlock(boundary, info.Info5)
	s.s4.Unlock(boundary, info.Info4)
	s.s3.Unlock(boundary, info.Info3)
	s.s2.Unlock(boundary, info.Info2)
	s.s1.Unlock(boundary, info.Info1)
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of the composite-level lock records.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup fans out to all five inner strategies and clears
// composite-level state.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) Cleanup() {
	s.s1.Cleanup()
	s.s2.Cleanup()
	s.s3.Cleanup()
	s.s4.Cleanup()
	s.s5.Cleanup()
	s.state.RemoveAll()
}

// CleanupBoundary fans out to all five inner strategies for a single
// boundary.
func (s *Composite5Strategy[I1, I2, I3, I4, I5]) CleanupBoundary(boundary lockman.BoundaryId) {
	s.s1.CleanupBoundary(boundary)
	s.s2.CleanupBoundary(boundary)
	s.s3.CleanupBoundary(boundary)
	s.s4.CleanupBoundary(boundary)
	s.s5.CleanupBoundary(boundary)
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[Composite5Info[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo]] = (*Composite5Strategy[SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo, SingleExecutionInfo])(nil)
