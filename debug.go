package lockman

import (
	"fmt"
	"io"
	"sort"

	"github.com/takeshishimada/lockman-go/internal/boxdraw"
)

// DebugFormat selects the column-width policy for Manager.Debug's table.
type DebugFormat int

const (
	// DebugDefault caps column widths to keep the table terminal-friendly.
	DebugDefault DebugFormat = iota
	// DebugCompact removes the width cap entirely.
	DebugCompact
	// DebugDetailed widens the cap for payloads whose description tends
	// to run long.
	DebugDetailed
)

func (f DebugFormat) width() boxdraw.Width {
	switch f {
	case DebugCompact:
		return boxdraw.Compact
	case DebugDetailed:
		return boxdraw.Detailed
	default:
		return boxdraw.Default
	}
}

// CurrentLocks aggregates every active lock across every strategy
// registered in the Manager's registry, keyed by StrategyId and then
// boundary.
func (m *Manager) CurrentLocks() map[StrategyId]map[BoundaryId][]LockmanInfo {
	return m.registry.CurrentLocks()
}

// Debug writes a box-drawing table of every active lock to w: strategy
// id, boundary id, action id, unique id, and the lock's own
// DebugDescription.
func (m *Manager) Debug(w io.Writer, format DebugFormat) error {
	table := boxdraw.Table{
		Headers: []string{"strategy", "boundary", "action id", "unique id", "info"},
	}

	all := m.CurrentLocks()
	ids := make([]StrategyId, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		byBoundary := all[id]
		boundaries := make([]BoundaryId, 0, len(byBoundary))
		for b := range byBoundary {
			boundaries = append(boundaries, b)
		}
		sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].String() < boundaries[j].String() })

		for _, boundary := range boundaries {
			for _, info := range byBoundary[boundary] {
				table.Rows = append(table.Rows, []string{
					id.String(),
					boundary.String(),
					info.ActionID(),
					info.UniqueID().String(),
					info.DebugDescription(),
				})
			}
		}
	}

	_, err := fmt.Fprint(w, table.Render(format.width()))
	return err
}
