package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pearlvault/backend/internal/apperror"
	"github.com/pearlvault/backend/internal/chain"
	"github.com/pearlvault/backend/internal/model"
	"github.com/pearlvault/backend/internal/pending"
	"github.com/pearlvault/backend/internal/repository"
	"github.com/pearlvault/backend/pkg/currency"
	"github.com/pearlvault/backend/pkg/datetime"
)

// LockRepositoryInterface defines the contract for lock persistence.
type LockRepositoryInterface interface {
	Create(ctx context.Context, lock *model.Lock) error
	GetByNote(ctx context.Context, noteAddress string, tokenID int64) (*model.Lock, error)
	ListByAccount(ctx context.Context, account string) ([]model.Lock, error)
	MarkRedeemed(ctx context.Context, noteAddress string, tokenID int64) error
	NextTokenID(ctx context.Context, noteAddress string) (int64, error)
}

// TermProvider is the slice of the catalog the vault needs.
type TermProvider interface {
	GetTerm(ctx context.Context, noteAddress string) (*model.Term, error)
	BonusTiers(ctx context.Context) ([]model.BonusTier, error)
}

// MarketProvider supplies the current market snapshot.
type MarketProvider interface {
	Snapshot() model.MarketSnapshot
}

// VaultService orchestrates lockups, redemptions and reward claims. Every
// state-changing operation runs the same shape: validate inputs first, then
// take the action's dedup key, submit on chain, and free the key whatever
// the outcome.
type VaultService struct {
	locks     LockRepositoryInterface
	terms     TermProvider
	market    MarketProvider
	submitter chain.Submitter
	ledger    *pending.Ledger
	now       func() time.Time

	selMu      sync.Mutex
	selections map[string]string // account -> selected note address
}

func NewVaultService(locks LockRepositoryInterface, terms TermProvider, market MarketProvider, submitter chain.Submitter, ledger *pending.Ledger) *VaultService {
	return &VaultService{
		locks:      locks,
		terms:      terms,
		market:     market,
		submitter:  submitter,
		ledger:     ledger,
		now:        time.Now,
		selections: make(map[string]string),
	}
}

// SelectTerm sets or clears the account's current term selection. Clearing
// (empty noteAddress) is always permitted and never touches the pending
// ledger; selecting validates the term exists. Returns the selected term,
// or nil when cleared.
func (s *VaultService) SelectTerm(ctx context.Context, session model.WalletSession, noteAddress string) (*model.Term, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	if noteAddress == "" {
		s.selMu.Lock()
		delete(s.selections, session.Address)
		s.selMu.Unlock()
		return nil, nil
	}

	term, err := s.terms.GetTerm(ctx, noteAddress)
	if err != nil {
		return nil, err
	}

	s.selMu.Lock()
	s.selections[session.Address] = term.NoteAddress
	s.selMu.Unlock()
	return term, nil
}

// SelectedTerm returns the account's current selection, or nil when none.
func (s *VaultService) SelectedTerm(ctx context.Context, session model.WalletSession) (*model.Term, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	s.selMu.Lock()
	noteAddress, ok := s.selections[session.Address]
	s.selMu.Unlock()
	if !ok {
		return nil, nil
	}
	return s.terms.GetTerm(ctx, noteAddress)
}

func (s *VaultService) clearSelection(account string) {
	s.selMu.Lock()
	delete(s.selections, account)
	s.selMu.Unlock()
}

// LockupInput is a request to lock funds under a term.
type LockupInput struct {
	NoteAddress string          `json:"noteAddress"`
	Amount      decimal.Decimal `json:"amount"`
}

// LockupResult reports a confirmed lockup.
type LockupResult struct {
	Lock   *model.Lock `json:"lock"`
	TxHash string      `json:"txHash"`
}

// ConfirmLockup locks funds under the chosen term and mints the term's note.
// All validation happens before the dedup key is taken, so a rejected
// request never blocks a later retry.
func (s *VaultService) ConfirmLockup(ctx context.Context, session model.WalletSession, input LockupInput) (*LockupResult, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	term, err := s.terms.GetTerm(ctx, input.NoteAddress)
	if err != nil {
		return nil, err
	}

	if input.Amount.LessThan(term.MinLockAmount) {
		return nil, apperror.BelowMinimum(term.MinLockAmount.String())
	}

	key := pending.LockupKey(session.Address)
	if !s.ledger.TryBegin(key) {
		return nil, apperror.DuplicateSubmission(key)
	}
	defer s.ledger.Complete(key)

	result, err := s.submitter.Submit(ctx, chain.Request{
		Operation:   chain.OpLockup,
		Account:     session.Address,
		NoteAddress: term.NoteAddress,
		Amount:      input.Amount,
	})
	if err != nil {
		return nil, apperror.ExecutionFailure(err)
	}

	tokenID, err := s.locks.NextTokenID(ctx, term.NoteAddress)
	if err != nil {
		return nil, fmt.Errorf("allocating token id for %s: %w", term.NoteAddress, err)
	}

	now := s.now()
	lock := &model.Lock{
		Account:     session.Address,
		NoteAddress: term.NoteAddress,
		TokenID:     tokenID,
		Amount:      input.Amount,
		LockedAt:    now,
		DueAt:       now.AddDate(0, 0, term.LockPeriodDays),
	}
	if err := s.locks.Create(ctx, lock); err != nil {
		return nil, fmt.Errorf("recording lock for %s: %w", term.NoteAddress, err)
	}

	s.clearSelection(session.Address)
	return &LockupResult{Lock: lock, TxHash: result.TxHash}, nil
}

// Redeem returns the locked funds of a matured note to its owner. The lock
// flips to redeemed only after the chain confirms, and only once.
func (s *VaultService) Redeem(ctx context.Context, session model.WalletSession, noteAddress string, tokenID int64) (*model.Lock, error) {
	lock, err := s.ownedLock(ctx, session, noteAddress, tokenID)
	if err != nil {
		return nil, err
	}

	if !lock.Locked {
		return nil, apperror.Conflict("note already redeemed")
	}

	if remaining := datetime.DaysRemaining(s.now(), lock.DueAt); remaining > 0 {
		return nil, apperror.NotMature(remaining)
	}

	key := pending.RedeemKey(noteAddress, tokenID)
	if !s.ledger.TryBegin(key) {
		return nil, apperror.DuplicateSubmission(key)
	}
	defer s.ledger.Complete(key)

	if _, err := s.submitter.Submit(ctx, chain.Request{
		Operation:   chain.OpRedeem,
		Account:     session.Address,
		NoteAddress: noteAddress,
		TokenID:     tokenID,
	}); err != nil {
		return nil, apperror.ExecutionFailure(err)
	}

	if err := s.locks.MarkRedeemed(ctx, noteAddress, tokenID); err != nil {
		if errors.Is(err, repository.ErrLockAlreadyRedeemed) {
			return nil, apperror.Conflict("note already redeemed")
		}
		return nil, fmt.Errorf("marking lock redeemed: %w", err)
	}

	lock.Locked = false
	redeemedAt := s.now()
	lock.RedeemedAt = &redeemedAt
	return lock, nil
}

// ClaimResult reports a confirmed reward claim.
type ClaimResult struct {
	Amount decimal.Decimal `json:"amount"`
	TxHash string          `json:"txHash"`
}

// ClaimReward pays out the reward accrued so far on a still-locked note.
func (s *VaultService) ClaimReward(ctx context.Context, session model.WalletSession, noteAddress string, tokenID int64) (*ClaimResult, error) {
	lock, err := s.ownedLock(ctx, session, noteAddress, tokenID)
	if err != nil {
		return nil, err
	}

	if !lock.Locked {
		return nil, apperror.Conflict("rewards on a redeemed note are settled at redemption")
	}

	term, err := s.terms.GetTerm(ctx, lock.NoteAddress)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidReference(lock.NoteAddress)
		}
		return nil, err
	}

	snapshot := s.market.Snapshot()
	apy := ExpectedAPY(snapshot.BaseAPY, term.MultiplierBP)
	elapsed := datetime.DaysBetween(lock.LockedAt, s.now())
	amount := AccruedReward(lock.Amount, apy, elapsed, term.LockPeriodDays)

	key := pending.ClaimKey(noteAddress, tokenID)
	if !s.ledger.TryBegin(key) {
		return nil, apperror.DuplicateSubmission(key)
	}
	defer s.ledger.Complete(key)

	result, err := s.submitter.Submit(ctx, chain.Request{
		Operation:   chain.OpClaim,
		Account:     session.Address,
		NoteAddress: noteAddress,
		TokenID:     tokenID,
		Amount:      amount,
	})
	if err != nil {
		return nil, apperror.ExecutionFailure(err)
	}

	return &ClaimResult{Amount: amount, TxHash: result.TxHash}, nil
}

// ListNotes projects the caller's locks into display notes using the
// current market snapshot. A lock whose term has vanished from the catalog
// fails the whole listing rather than silently disappearing.
func (s *VaultService) ListNotes(ctx context.Context, session model.WalletSession) ([]model.Note, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	locks, err := s.locks.ListByAccount(ctx, session.Address)
	if err != nil {
		return nil, fmt.Errorf("listing locks for %s: %w", session.Address, err)
	}

	tiers, err := s.terms.BonusTiers(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := s.market.Snapshot()
	now := s.now()

	notes := make([]model.Note, 0, len(locks))
	for _, lock := range locks {
		term, err := s.terms.GetTerm(ctx, lock.NoteAddress)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.InvalidReference(lock.NoteAddress)
			}
			return nil, err
		}
		notes = append(notes, projectNote(lock, term, tiers, snapshot, now))
	}
	return notes, nil
}

// PendingActions returns the caller's in-flight dedup keys: the account's
// own lockup key plus redeem and claim keys for notes the account owns.
// Another wallet's keys never appear in the result.
func (s *VaultService) PendingActions(ctx context.Context, session model.WalletSession) ([]string, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	keys := make([]string, 0, 4)
	if lockupKey := pending.LockupKey(session.Address); s.ledger.IsPending(lockupKey) {
		keys = append(keys, lockupKey)
	}

	locks, err := s.locks.ListByAccount(ctx, session.Address)
	if err != nil {
		return nil, fmt.Errorf("listing locks for %s: %w", session.Address, err)
	}
	for _, lock := range locks {
		if key := pending.RedeemKey(lock.NoteAddress, lock.TokenID); s.ledger.IsPending(key) {
			keys = append(keys, key)
		}
		if key := pending.ClaimKey(lock.NoteAddress, lock.TokenID); s.ledger.IsPending(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *VaultService) ownedLock(ctx context.Context, session model.WalletSession, noteAddress string, tokenID int64) (*model.Lock, error) {
	if !session.Connected {
		return nil, apperror.NotConnected()
	}

	lock, err := s.locks.GetByNote(ctx, noteAddress, tokenID)
	if errors.Is(err, repository.ErrLockNotFound) {
		return nil, apperror.NotFound("note")
	}
	if err != nil {
		return nil, fmt.Errorf("getting lock %s/%d: %w", noteAddress, tokenID, err)
	}

	// A note owned by someone else is indistinguishable from a missing one.
	if lock.Account != session.Address {
		return nil, apperror.NotFound("note")
	}
	return lock, nil
}

func projectNote(lock model.Lock, term *model.Term, tiers []model.BonusTier, snapshot model.MarketSnapshot, now time.Time) model.Note {
	apy := ExpectedAPY(snapshot.BaseAPY, term.MultiplierBP)
	elapsed := datetime.DaysBetween(lock.LockedAt, now)
	current := AccruedReward(lock.Amount, apy, elapsed, term.LockPeriodDays)
	next := FullPeriodReward(lock.Amount, apy, term.LockPeriodDays, BonusFor(tiers, term.LockPeriodDays))
	lockedValue := lock.Amount.Add(current)
	marketValue := lockedValue.Mul(snapshot.MarketPrice).Round(2)

	return model.Note{
		ID:            fmt.Sprintf("%s-%d", lock.NoteAddress, lock.TokenID),
		NoteAddress:   lock.NoteAddress,
		NoteLabel:     term.NoteLabel,
		Amount:        lock.Amount,
		CurrentReward: current,
		NextReward:    next,
		LockedValue:   lockedValue,
		MarketValue:   marketValue,
		APY:           apy,
		DisplayValue:  currency.New(marketValue, currency.USD).Format(),
		DisplayAPY:    currency.FormatPercent(apy),
		LockPeriod:    term.LockPeriodDays,
		DueDate:       datetime.DateTime{Time: lock.DueAt},
		DaysRemaining: datetime.DaysRemaining(now, lock.DueAt),
		Locked:        lock.Locked,
	}
}
