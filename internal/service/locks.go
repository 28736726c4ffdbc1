package service

import "sync"

// Exactly one round transition may be in flight per session: the settle
// step reads and mutates every role's ledger. Order placement serializes
// against advancing through the same lock; placements for different games
// proceed concurrently.
var sessionLocks sync.Map

func lockSession(gameID uint) func() {
	v, _ := sessionLocks.LoadOrStore(gameID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
