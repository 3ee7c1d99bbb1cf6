package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pearlvault/backend/internal/model"
)

// Source produces a fresh market snapshot.
type Source interface {
	Fetch(ctx context.Context) (model.MarketSnapshot, error)
}

// Refresher updates the store from the primary source, falling back to the
// secondary when the primary fails. Fallback may be nil.
type Refresher struct {
	store    *Store
	primary  Source
	fallback Source
	logger   *slog.Logger
}

func NewRefresher(store *Store, primary, fallback Source, logger *slog.Logger) *Refresher {
	return &Refresher{
		store:    store,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Refresh fetches a new snapshot and publishes it. A refresh failure leaves
// the previous snapshot in place so readers never see an empty feed.
func (r *Refresher) Refresh(ctx context.Context) error {
	snapshot, err := r.primary.Fetch(ctx)
	if err == nil {
		r.store.Update(snapshot)
		r.logger.Info("market feed refreshed",
			slog.String("source", "graphql"),
			slog.String("base_apy", snapshot.BaseAPY.String()),
			slog.String("market_price", snapshot.MarketPrice.String()),
		)
		return nil
	}

	if r.fallback == nil {
		return fmt.Errorf("refreshing market feed: %w", err)
	}

	r.logger.Warn("primary feed failed, trying fallback", slog.String("error", err.Error()))

	snapshot, fbErr := r.fallback.Fetch(ctx)
	if fbErr != nil {
		return fmt.Errorf("refreshing market feed: primary: %v, fallback: %w", err, fbErr)
	}

	r.store.Update(snapshot)
	r.logger.Info("market feed refreshed",
		slog.String("source", "fallback"),
		slog.String("base_apy", snapshot.BaseAPY.String()),
	)
	return nil
}
