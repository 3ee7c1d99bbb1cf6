package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pearlvault/backend/internal/model"
)

var ErrTermNotFound = errors.New("term not found")

type TermRepository struct {
	db *sqlx.DB
}

func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns the full lock-up catalog in display order.
func (r *TermRepository) List(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	query := `SELECT * FROM terms ORDER BY display_position ASC`
	err := r.db.SelectContext(ctx, &terms, query)
	return terms, err
}

func (r *TermRepository) GetByNoteAddress(ctx context.Context, noteAddress string) (*model.Term, error) {
	var term model.Term
	query := `SELECT * FROM terms WHERE note_address = $1`
	err := r.db.GetContext(ctx, &term, query, noteAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTermNotFound
	}
	return &term, err
}

func (r *TermRepository) ListBonusTiers(ctx context.Context) ([]model.BonusTier, error) {
	var tiers []model.BonusTier
	query := `SELECT * FROM bonus_tiers ORDER BY lock_period_days ASC`
	err := r.db.SelectContext(ctx, &tiers, query)
	return tiers, err
}

func (r *TermRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM terms`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

// Seed upserts the catalog inside a single transaction so a partially
// applied catalog is never visible.
func (r *TermRepository) Seed(ctx context.Context, terms []model.Term, tiers []model.BonusTier) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	termQuery := `
		INSERT INTO terms (note_address, note_label, lock_period_days, multiplier_bp, min_lock_amount, display_position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (note_address) DO UPDATE
		SET note_label = EXCLUDED.note_label, lock_period_days = EXCLUDED.lock_period_days,
		    multiplier_bp = EXCLUDED.multiplier_bp, min_lock_amount = EXCLUDED.min_lock_amount,
		    display_position = EXCLUDED.display_position, updated_at = NOW()`
	for _, t := range terms {
		if _, err := tx.ExecContext(ctx, termQuery,
			t.NoteAddress, t.NoteLabel, t.LockPeriodDays, t.MultiplierBP, t.MinLockAmount, t.DisplayPosition,
		); err != nil {
			return fmt.Errorf("seed term %s: %w", t.NoteAddress, err)
		}
	}

	tierQuery := `
		INSERT INTO bonus_tiers (lock_period_days, bonus_percent)
		VALUES ($1, $2)
		ON CONFLICT (lock_period_days) DO UPDATE SET bonus_percent = EXCLUDED.bonus_percent`
	for _, tier := range tiers {
		if _, err := tx.ExecContext(ctx, tierQuery, tier.LockPeriodDays, tier.BonusPercent); err != nil {
			return fmt.Errorf("seed bonus tier %d: %w", tier.LockPeriodDays, err)
		}
	}

	return tx.Commit()
}
