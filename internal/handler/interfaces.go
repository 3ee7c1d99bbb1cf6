package handler

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pearlvault/backend/internal/model"
	"github.com/pearlvault/backend/internal/service"
)

// TermServiceInterface for handler testing
type TermServiceInterface interface {
	ListTermViews(ctx context.Context, baseAPY decimal.Decimal) ([]service.TermView, error)
}

// VaultServiceInterface for handler testing
type VaultServiceInterface interface {
	SelectTerm(ctx context.Context, session model.WalletSession, noteAddress string) (*model.Term, error)
	SelectedTerm(ctx context.Context, session model.WalletSession) (*model.Term, error)
	ConfirmLockup(ctx context.Context, session model.WalletSession, input service.LockupInput) (*service.LockupResult, error)
	Redeem(ctx context.Context, session model.WalletSession, noteAddress string, tokenID int64) (*model.Lock, error)
	ClaimReward(ctx context.Context, session model.WalletSession, noteAddress string, tokenID int64) (*service.ClaimResult, error)
	ListNotes(ctx context.Context, session model.WalletSession) ([]model.Note, error)
	PendingActions(ctx context.Context, session model.WalletSession) ([]string, error)
}

// SessionServiceInterface for handler testing
type SessionServiceInterface interface {
	Connect(address string) (*service.ConnectResponse, error)
}

// MarketProviderInterface for handler testing
type MarketProviderInterface interface {
	Snapshot() model.MarketSnapshot
}
