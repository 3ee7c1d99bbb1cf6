package model

import "github.com/shopspring/decimal"

// DefaultTerms is the product's standard lock-up catalog, used to seed the
// database on first run or when the catalog tables are empty.
// Multipliers are stored as integer hundredths (100 = 1.0x) to avoid
// floating drift; display code divides by 100.
var DefaultTerms = []Term{
	{NoteAddress: "0x3d5e27c0a7c1e5c9d8af28de9b3f4c2ae51d2a77", NoteLabel: "Stone-Hand PEARL Note", LockPeriodDays: 28, MultiplierBP: 100, MinLockAmount: decimal.Zero, DisplayPosition: 1},
	{NoteAddress: "0x91f4a1bd1e08cbd6f7c8b45a2d9f03715cc0b3e4", NoteLabel: "Diamond-Hand PEARL Note", LockPeriodDays: 90, MultiplierBP: 150, MinLockAmount: decimal.NewFromInt(10), DisplayPosition: 2},
	{NoteAddress: "0xa2c86e5f09d4b7a31f60cd4e8b92d5381fe7c611", NoteLabel: "Safe-Hand PEARL Note", LockPeriodDays: 180, MultiplierBP: 200, MinLockAmount: decimal.NewFromInt(50), DisplayPosition: 3},
}

// DefaultBonusTiers maps lock periods to their extra-reward percentage.
// Terms without an entry get standard bonus messaging.
var DefaultBonusTiers = []BonusTier{
	{LockPeriodDays: 28, BonusPercent: 5},
	{LockPeriodDays: 90, BonusPercent: 10},
	{LockPeriodDays: 180, BonusPercent: 20},
}

// BoostBadgeMinDays is the shortest lock period that earns the reward-boost
// badge on term cards.
const BoostBadgeMinDays = 90
