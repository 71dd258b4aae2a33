package strategies

import lockman "github.com/takeshishimada/lockman-go"

// eraseAll upcasts a lockstate.State snapshot (keyed by concrete info
// type T) into the lockman.LockmanInfo-keyed shape Strategy.CurrentLocks
// must return.
func eraseAll[T lockman.LockmanInfo](locks map[lockman.BoundaryId][]T) map[lockman.BoundaryId][]lockman.LockmanInfo {
	out := make(map[lockman.BoundaryId][]lockman.LockmanInfo, len(locks))
	for boundary, seq := range locks {
		erased := make([]lockman.LockmanInfo, len(seq))
		for i, info := range seq {
			erased[i] = info
		}
		out[boundary] = erased
	}
	return out
}
