// Package feed maintains the market snapshot that reward and value
// calculations read: the protocol's base APY, the token market price, and
// the treasury market value. The primary source is the protocol's GraphQL
// endpoint; a stats-page scrape serves as fallback when GraphQL is down.
package feed

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/pearlvault/backend/internal/model"
)

// Store holds the latest market snapshot. Reads vastly outnumber writes, so
// a plain RWMutex around a value copy is enough.
type Store struct {
	mu       sync.RWMutex
	snapshot model.MarketSnapshot
}

// NewStore creates a store pre-filled with the given snapshot so reward
// calculations have usable numbers before the first refresh lands.
func NewStore(initial model.MarketSnapshot) *Store {
	return &Store{snapshot: initial}
}

// DefaultSnapshot is the boot-time snapshot used until the feed refreshes.
func DefaultSnapshot() model.MarketSnapshot {
	return model.MarketSnapshot{
		BaseAPY:             decimal.NewFromInt(4000),
		MarketPrice:         decimal.NewFromInt(40),
		TreasuryMarketValue: decimal.NewFromInt(0),
		FetchedAt:           time.Time{},
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() model.MarketSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Update replaces the snapshot.
func (s *Store) Update(snapshot model.MarketSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}
