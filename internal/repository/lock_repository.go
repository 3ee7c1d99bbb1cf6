package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pearlvault/backend/internal/model"
)

var (
	ErrLockNotFound        = errors.New("lock not found")
	ErrLockAlreadyRedeemed = errors.New("lock already redeemed")
)

type LockRepository struct {
	db *sqlx.DB
}

func NewLockRepository(db *sqlx.DB) *LockRepository {
	return &LockRepository{db: db}
}

func (r *LockRepository) Create(ctx context.Context, lock *model.Lock) error {
	query := `
		INSERT INTO locks (id, account, note_address, token_id, amount, locked_at, due_at, locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
		RETURNING created_at, updated_at`

	lock.ID = uuid.New()
	lock.Locked = true
	return r.db.QueryRowxContext(ctx, query,
		lock.ID, lock.Account, lock.NoteAddress, lock.TokenID,
		lock.Amount, lock.LockedAt, lock.DueAt,
	).Scan(&lock.CreatedAt, &lock.UpdatedAt)
}

func (r *LockRepository) GetByNote(ctx context.Context, noteAddress string, tokenID int64) (*model.Lock, error) {
	var lock model.Lock
	query := `SELECT * FROM locks WHERE note_address = $1 AND token_id = $2`
	err := r.db.GetContext(ctx, &lock, query, noteAddress, tokenID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLockNotFound
	}
	return &lock, err
}

// ListByAccount returns the account's locks oldest first, matching the order
// in which the notes were minted.
func (r *LockRepository) ListByAccount(ctx context.Context, account string) ([]model.Lock, error) {
	var locks []model.Lock
	query := `SELECT * FROM locks WHERE account = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &locks, query, account)
	return locks, err
}

// MarkRedeemed flips locked to false for exactly one caller. The conditional
// update is the single point where the transition happens, so concurrent
// redemptions cannot both succeed.
func (r *LockRepository) MarkRedeemed(ctx context.Context, noteAddress string, tokenID int64) error {
	query := `
		UPDATE locks
		SET locked = FALSE, redeemed_at = NOW(), updated_at = NOW()
		WHERE note_address = $1 AND token_id = $2 AND locked = TRUE`
	result, err := r.db.ExecContext(ctx, query, noteAddress, tokenID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLockAlreadyRedeemed
	}
	return nil
}

// NextTokenID allocates the next token number for a note series.
func (r *LockRepository) NextTokenID(ctx context.Context, noteAddress string) (int64, error) {
	var next int64
	query := `SELECT COALESCE(MAX(token_id), 0) + 1 FROM locks WHERE note_address = $1`
	err := r.db.GetContext(ctx, &next, query, noteAddress)
	return next, err
}
