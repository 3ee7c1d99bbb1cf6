package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pearlvault/backend/pkg/datetime"
)

// Term is a lock-up offer: commit funds for LockPeriodDays and receive the
// note named by NoteLabel, with rewards boosted by the term multiplier.
type Term struct {
	NoteAddress     string          `db:"note_address" json:"noteAddress"`
	NoteLabel       string          `db:"note_label" json:"noteLabel"`
	LockPeriodDays  int             `db:"lock_period_days" json:"lockPeriodDays"`
	MultiplierBP    int64           `db:"multiplier_bp" json:"multiplierBasisPoints"` // 100 = 1.0x
	MinLockAmount   decimal.Decimal `db:"min_lock_amount" json:"minLockAmount"`
	DisplayPosition int             `db:"display_position" json:"-"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// BonusTier grants an extra reward percentage for a specific lock period.
// A term has at most one tier; absence means standard bonus messaging.
type BonusTier struct {
	LockPeriodDays int   `db:"lock_period_days" json:"lockPeriodDays"`
	BonusPercent   int64 `db:"bonus_percent" json:"bonusPercent"`
}

// Lock is a user's active commitment against a Term. The (NoteAddress,
// TokenID) pair identifies the minted note and is unique across accounts.
// Locked transitions true -> false exactly once, on confirmed redemption.
type Lock struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Account     string          `db:"account" json:"account"`
	NoteAddress string          `db:"note_address" json:"noteAddress"`
	TokenID     int64           `db:"token_id" json:"tokenId"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	LockedAt    time.Time       `db:"locked_at" json:"lockedAt"`
	DueAt       time.Time       `db:"due_at" json:"dueAt"`
	Locked      bool            `db:"locked" json:"locked"`
	RedeemedAt  *time.Time      `db:"redeemed_at" json:"redeemedAt,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// Note is the display-facing projection of a Lock. It is recomputed from
// Lock + Term + live price/APY inputs on every read and never persisted.
type Note struct {
	ID            string            `json:"id"`
	NoteAddress   string            `json:"noteAddress"`
	NoteLabel     string            `json:"noteLabel"`
	Amount        decimal.Decimal   `json:"amount"`
	CurrentReward decimal.Decimal   `json:"currentReward"`
	NextReward    decimal.Decimal   `json:"nextReward"`
	LockedValue   decimal.Decimal   `json:"lockedValue"`
	MarketValue   decimal.Decimal   `json:"marketValue"`
	APY           decimal.Decimal   `json:"apy"`
	DisplayValue  string            `json:"displayValue"` // "$9,120.00"
	DisplayAPY    string            `json:"displayApy"`   // "492,391%"
	LockPeriod    int               `json:"lockupPeriod"`
	DueDate       datetime.DateTime `json:"dueDate"`
	DaysRemaining int               `json:"daysRemaining"`
	Locked        bool              `json:"locked"`
}

// WalletSession is the caller's wallet state as seen by the core. Address is
// empty while disconnected.
type WalletSession struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
}

// MarketSnapshot is a point-in-time view of the external price/APY feed.
type MarketSnapshot struct {
	BaseAPY             decimal.Decimal `json:"baseApy"` // percent, e.g. 4923.91
	MarketPrice         decimal.Decimal `json:"marketPrice"`
	TreasuryMarketValue decimal.Decimal `json:"treasuryMarketValue"`
	FetchedAt           time.Time       `json:"fetchedAt"`
}
