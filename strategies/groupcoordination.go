package strategies

import (
	"errors"
	"fmt"

	lockman "github.com/takeshishimada/lockman-go"
	"github.com/takeshishimada/lockman-go/internal/lockstate"
)

// GroupId identifies one coordination group within a boundary.
type GroupId string

// CoordinationRoleKind is the role an action takes within its groups.
type CoordinationRoleKind int

const (
	// RoleNone does not participate in leader/member semantics; it only
	// avoids colliding with an identical action id already in the group.
	RoleNone CoordinationRoleKind = iota
	// RoleMember requires every requested group to already be non-empty.
	RoleMember
	// RoleLeader requires every requested group to satisfy its EntryPolicy.
	RoleLeader
)

func (k CoordinationRoleKind) String() string {
	switch k {
	case RoleNone:
		return "none"
	case RoleMember:
		return "member"
	case RoleLeader:
		return "leader"
	default:
		return "unknown"
	}
}

// EntryPolicy constrains a RoleLeader request's target group.
type EntryPolicy int

const (
	// EmptyGroup requires the group to have no participants at all.
	EmptyGroup EntryPolicy = iota
	// WithoutMembers requires the group to have no existing members.
	WithoutMembers
	// WithoutLeader requires the group to have no existing leader.
	WithoutLeader
)

func (p EntryPolicy) String() string {
	switch p {
	case EmptyGroup:
		return "emptyGroup"
	case WithoutMembers:
		return "withoutMembers"
	case WithoutLeader:
		return "withoutLeader"
	default:
		return "unknown"
	}
}

// CoordinationRole is the GroupCoordination payload's role component.
type CoordinationRole struct {
	Kind   CoordinationRoleKind
	Policy EntryPolicy // meaningful only when Kind == RoleLeader
}

// NoneRole requests no leader/member semantics.
var NoneRole = CoordinationRole{Kind: RoleNone}

// MemberRole requests membership in already-populated groups.
var MemberRole = CoordinationRole{Kind: RoleMember}

// LeaderRole requests leadership of every target group under policy.
func LeaderRole(policy EntryPolicy) CoordinationRole {
	return CoordinationRole{Kind: RoleLeader, Policy: policy}
}

// ErrEmptyGroupSet is returned by NewGroupCoordinationInfo when no group
// ids are supplied; spec.md §4.3.3 requires a non-empty set.
var ErrEmptyGroupSet = errors.New("groupCoordination: group id set must not be empty")

// GroupCoordinationInfo is the LockmanInfo payload for GroupCoordination.
type GroupCoordinationInfo struct {
	baseInfo
	GroupIDs []GroupId
	Role     CoordinationRole
}

// NewGroupCoordinationInfo builds a GroupCoordinationInfo for actionID,
// joining every group in groupIDs (order preserved, used as the
// fail-fast evaluation order) under role. Returns ErrEmptyGroupSet if
// groupIDs is empty.
func NewGroupCoordinationInfo(actionID string, groupIDs []GroupId, role CoordinationRole) (GroupCoordinationInfo, error) {
	if len(groupIDs) == 0 {
		return GroupCoordinationInfo{}, ErrEmptyGroupSet
	}
	return GroupCoordinationInfo{
		baseInfo: newBaseInfo(lockman.GroupCoordinationStrategyId, actionID, true),
		GroupIDs: groupIDs,
		Role:     role,
	}, nil
}

func (i GroupCoordinationInfo) hasGroup(g GroupId) bool {
	for _, x := range i.GroupIDs {
		if x == g {
			return true
		}
	}
	return false
}

// DebugDescription renders the record for introspection.
func (i GroupCoordinationInfo) DebugDescription() string {
	return fmt.Sprintf("GroupCoordinationInfo(actionId: %s, groups: %v, role: %s, uniqueId: %s)",
		i.actionID, i.GroupIDs, i.Role.Kind, i.uniqueID)
}

// LeaderCannotJoinNonEmptyGroupError is returned when an EmptyGroup
// leader request targets a group that already has any participant (unless
// BlockedByExclusiveLeaderError applies), or a WithoutMembers leader
// request targets a group that already has a member or role-None
// participant.
type LeaderCannotJoinNonEmptyGroupError struct {
	Boundary lockman.BoundaryId
	Group    GroupId
	Existing lockman.LockmanInfo
}

func (e *LeaderCannotJoinNonEmptyGroupError) Error() string {
	return fmt.Sprintf("groupCoordination: leader cannot join non-empty group %s on boundary %s", e.Group, e.Boundary)
}

// MemberCannotJoinEmptyGroupError is returned when a Member request
// targets a group with no existing participants.
type MemberCannotJoinEmptyGroupError struct {
	Boundary lockman.BoundaryId
	Group    GroupId
}

func (e *MemberCannotJoinEmptyGroupError) Error() string {
	return fmt.Sprintf("groupCoordination: member cannot join empty group %s on boundary %s", e.Group, e.Boundary)
}

// ActionAlreadyInGroupError is returned when an action id already
// participates in a requested group.
type ActionAlreadyInGroupError struct {
	Boundary lockman.BoundaryId
	Group    GroupId
	Existing lockman.LockmanInfo
}

func (e *ActionAlreadyInGroupError) Error() string {
	return fmt.Sprintf("groupCoordination: action %q already in group %s on boundary %s", e.Existing.ActionID(), e.Group, e.Boundary)
}

// BlockedByExclusiveLeaderError is returned when a requested group already
// has a leader that blocks a leader request: for an EmptyGroup request, a
// leader holding WithoutMembers or WithoutLeader; for a WithoutLeader
// request, any leader. Policy is the existing leader's own EntryPolicy.
type BlockedByExclusiveLeaderError struct {
	Boundary lockman.BoundaryId
	Group    GroupId
	Policy   EntryPolicy
	Existing lockman.LockmanInfo
}

func (e *BlockedByExclusiveLeaderError) Error() string {
	return fmt.Sprintf("groupCoordination: group %s on boundary %s already has a leader (policy %s)", e.Group, e.Boundary, e.Policy)
}

// GroupCoordinationStrategy implements leader/member coordination within
// named groups, per spec.md §4.3.3.
type GroupCoordinationStrategy struct {
	state *lockstate.State[GroupCoordinationInfo]
}

// NewGroupCoordinationStrategy builds a GroupCoordinationStrategy with its
// own independent lock state.
func NewGroupCoordinationStrategy() *GroupCoordinationStrategy {
	return &GroupCoordinationStrategy{
		state: lockstate.New[GroupCoordinationInfo](nil),
	}
}

// StrategyID reports the canonical groupCoordination id.
func (s *GroupCoordinationStrategy) StrategyID() lockman.StrategyId {
	return lockman.GroupCoordinationStrategyId
}

func groupMembers(entries []GroupCoordinationInfo, group GroupId) []GroupCoordinationInfo {
	var out []GroupCoordinationInfo
	for _, e := range entries {
		if e.hasGroup(group) {
			out = append(out, e)
		}
	}
	return out
}

// CanLock implements the per-role decision tree from spec.md §4.3.3. All
// requested groups must pass; evaluation fails fast on the first
// violating group, in GroupIDs declaration order.
func (s *GroupCoordinationStrategy) CanLock(boundary lockman.BoundaryId, info GroupCoordinationInfo) lockman.CanLockResult {
	entries := s.state.Current(boundary)

	switch info.Role.Kind {
	case RoleNone:
		for _, g := range info.GroupIDs {
			for _, m := range groupMembers(entries, g) {
				if m.ActionID() == info.ActionID() {
					return lockman.Cancel(&ActionAlreadyInGroupError{Boundary: boundary, Group: g, Existing: m})
				}
			}
		}
		return lockman.Success()

	case RoleMember:
		for _, g := range info.GroupIDs {
			members := groupMembers(entries, g)
			if len(members) == 0 {
				return lockman.Cancel(&MemberCannotJoinEmptyGroupError{Boundary: boundary, Group: g})
			}
			for _, m := range members {
				if m.ActionID() == info.ActionID() {
					return lockman.Cancel(&ActionAlreadyInGroupError{Boundary: boundary, Group: g, Existing: m})
				}
			}
		}
		return lockman.Success()

	case RoleLeader:
		for _, g := range info.GroupIDs {
			members := groupMembers(entries, g)
			switch info.Role.Policy {
			case EmptyGroup:
				if len(members) == 0 {
					continue
				}
				if leader, ok := firstLeader(members); ok && isStricterPolicy(leader.Role.Policy) {
					return lockman.Cancel(&BlockedByExclusiveLeaderError{Boundary: boundary, Group: g, Policy: leader.Role.Policy, Existing: leader})
				}
				return lockman.Cancel(&LeaderCannotJoinNonEmptyGroupError{Boundary: boundary, Group: g, Existing: members[0]})
			case WithoutMembers:
				for _, m := range members {
					if m.Role.Kind == RoleMember || m.Role.Kind == RoleNone {
						return lockman.Cancel(&LeaderCannotJoinNonEmptyGroupError{Boundary: boundary, Group: g, Existing: m})
					}
				}
			case WithoutLeader:
				if leader, ok := firstLeader(members); ok {
					return lockman.Cancel(&BlockedByExclusiveLeaderError{Boundary: boundary, Group: g, Policy: leader.Role.Policy, Existing: leader})
				}
			}
		}
		return lockman.Success()

	default:
		return lockman.Success()
	}
}

func firstLeader(members []GroupCoordinationInfo) (GroupCoordinationInfo, bool) {
	for _, m := range members {
		if m.Role.Kind == RoleLeader {
			return m, true
		}
	}
	return GroupCoordinationInfo{}, false
}

// isStricterPolicy reports whether an existing leader's own EntryPolicy
// would itself be violated by a new arrival sharing its group — the
// condition spec.md §4.3.3 calls a "conflicting leader... under a
// stricter policy". A plain EmptyGroup leader coexisting with ordinary
// members does not qualify: only WithoutMembers/WithoutLeader do, since
// either one forbids exactly the kind of new participant that triggered
// this check.
func isStricterPolicy(p EntryPolicy) bool {
	return p == WithoutMembers || p == WithoutLeader
}

// Lock records info as held for boundary.
func (s *GroupCoordinationStrategy) Lock(boundary lockman.BoundaryId, info GroupCoordinationInfo) {
	s.state.Add(boundary, info)
}

// Unlock removes info's record for boundary.
func (s *GroupCoordinationStrategy) Unlock(boundary lockman.BoundaryId, info GroupCoordinationInfo) {
	s.state.Remove(boundary, info)
}

// CurrentLocks returns a snapshot of all active locks, erased to
// lockman.LockmanInfo.
func (s *GroupCoordinationStrategy) CurrentLocks() map[lockman.BoundaryId][]lockman.LockmanInfo {
	return eraseAll(s.state.AllLocks())
}

// Cleanup discards all state across every boundary.
func (s *GroupCoordinationStrategy) Cleanup() { s.state.RemoveAll() }

// CleanupBoundary discards all state for a single boundary.
func (s *GroupCoordinationStrategy) CleanupBoundary(boundary lockman.BoundaryId) {
	s.state.RemoveAllForBoundary(boundary)
}

var _ lockman.Strategy[GroupCoordinationInfo] = (*GroupCoordinationStrategy)(nil)
