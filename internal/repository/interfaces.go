package repository

import (
	"context"

	"github.com/pearlvault/backend/internal/model"
)

//go:generate mockery --name=TermRepositoryInterface --output=../mocks --outpkg=mocks
type TermRepositoryInterface interface {
	List(ctx context.Context) ([]model.Term, error)
	GetByNoteAddress(ctx context.Context, noteAddress string) (*model.Term, error)
	ListBonusTiers(ctx context.Context) ([]model.BonusTier, error)
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, terms []model.Term, tiers []model.BonusTier) error
}

//go:generate mockery --name=LockRepositoryInterface --output=../mocks --outpkg=mocks
type LockRepositoryInterface interface {
	Create(ctx context.Context, lock *model.Lock) error
	GetByNote(ctx context.Context, noteAddress string, tokenID int64) (*model.Lock, error)
	ListByAccount(ctx context.Context, account string) ([]model.Lock, error)
	MarkRedeemed(ctx context.Context, noteAddress string, tokenID int64) error
	NextTokenID(ctx context.Context, noteAddress string) (int64, error)
}
