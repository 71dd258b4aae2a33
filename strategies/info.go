package strategies

import (
	"github.com/google/uuid"

	lockman "github.com/takeshishimada/lockman-go"
)

// baseInfo implements the identity-bearing half of lockman.LockmanInfo
// (StrategyID, ActionID, UniqueID, IsCancellationTarget) that every
// variant-specific Info struct embeds; each variant still supplies its
// own DebugDescription.
type baseInfo struct {
	strategyID         lockman.StrategyId
	actionID           string
	uniqueID           uuid.UUID
	isCancellationTarget bool
}

func newBaseInfo(strategyID lockman.StrategyId, actionID string, isCancellationTarget bool) baseInfo {
	return baseInfo{
		strategyID:           strategyID,
		actionID:             actionID,
		uniqueID:             uuid.New(),
		isCancellationTarget: isCancellationTarget,
	}
}

func (b baseInfo) StrategyID() lockman.StrategyId { return b.strategyID }
func (b baseInfo) ActionID() string                { return b.actionID }
func (b baseInfo) UniqueID() uuid.UUID             { return b.uniqueID }
func (b baseInfo) IsCancellationTarget() bool       { return b.isCancellationTarget }
