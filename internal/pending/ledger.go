// Package pending tracks in-flight user actions so the same logical action
// cannot be submitted twice while an earlier submission is still running.
//
// The triggering surface is event-driven: a double click or a re-render can
// dispatch the same action before the first completes. TryBegin therefore
// test-and-inserts under a single lock; there is no window where two callers
// both observe "not pending". Entries are freed only by Complete — there is
// no timeout-based expiry, because on-chain confirmation latency can
// legitimately exceed any fixed timer and the execution collaborator is the
// sole authority on completion.
package pending

import (
	"fmt"
	"sync"
)

// LockupKey builds the dedup key for an account's lockup confirmation. The
// key is scoped per account so one wallet's in-flight lockup never blocks
// another wallet's.
func LockupKey(account string) string {
	return fmt.Sprintf("select_lockup_option_%s", account)
}

// RedeemKey builds the dedup key for redeeming a specific note.
func RedeemKey(noteAddress string, tokenID int64) string {
	return fmt.Sprintf("redeem_%s_%d", noteAddress, tokenID)
}

// ClaimKey builds the dedup key for claiming rewards on a specific note.
func ClaimKey(noteAddress string, tokenID int64) string {
	return fmt.Sprintf("claim_%s_%d", noteAddress, tokenID)
}

// Ledger is a mutex-guarded set of in-flight action keys. Distinct keys are
// fully independent; the zero value is not usable, construct with NewLedger.
type Ledger struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{keys: make(map[string]struct{})}
}

// TryBegin atomically registers key as in flight. It returns true if the
// caller may proceed, false if the key is already pending and the caller
// must reject the duplicate.
func (l *Ledger) TryBegin(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.keys[key]; exists {
		return false
	}
	l.keys[key] = struct{}{}
	return true
}

// Complete removes key regardless of the execution outcome. A failed action
// must still free its key so the user can retry. Completing a key that is
// not pending is a no-op.
func (l *Ledger) Complete(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
}

// IsPending reports whether key is in flight. Read-only.
func (l *Ledger) IsPending(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.keys[key]
	return exists
}
