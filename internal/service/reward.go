package service

import (
	"github.com/shopspring/decimal"
	"github.com/pearlvault/backend/internal/model"
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// ExpectedAPY scales the protocol base APY by a term's multiplier. The
// multiplier is stored as integer hundredths, so 150 means 1.5x.
func ExpectedAPY(baseAPY decimal.Decimal, multiplierBP int64) decimal.Decimal {
	return baseAPY.Mul(decimal.NewFromInt(multiplierBP)).Div(hundred).Round(2)
}

// DisplayMultiplier renders a multiplier for term cards, rounded to one
// decimal, e.g. 150 -> "1.5x", 125 -> "1.3x".
func DisplayMultiplier(multiplierBP int64) string {
	m := decimal.NewFromInt(multiplierBP).Div(hundred).Round(1)
	return m.String() + "x"
}

// AccruedReward is the reward earned so far on a locked amount: simple
// interest at apy percent per year, accrued daily and capped at the lock
// period so a matured lock stops growing.
func AccruedReward(amount, apy decimal.Decimal, elapsedDays, periodDays int) decimal.Decimal {
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	if elapsedDays > periodDays {
		elapsedDays = periodDays
	}
	return amount.
		Mul(apy).Div(hundred).
		Mul(decimal.NewFromInt(int64(elapsedDays))).Div(daysPerYear).
		Round(9)
}

// FullPeriodReward is the reward a lock earns over its entire period, with
// the bonus tier percentage applied on top. bonusPercent of 0 means no tier.
func FullPeriodReward(amount, apy decimal.Decimal, periodDays int, bonusPercent int64) decimal.Decimal {
	base := AccruedReward(amount, apy, periodDays, periodDays)
	if bonusPercent == 0 {
		return base
	}
	scale := hundred.Add(decimal.NewFromInt(bonusPercent)).Div(hundred)
	return base.Mul(scale).Round(9)
}

// BonusFor returns the bonus percentage for a lock period, or 0 when the
// period has no tier.
func BonusFor(tiers []model.BonusTier, lockPeriodDays int) int64 {
	for _, t := range tiers {
		if t.LockPeriodDays == lockPeriodDays {
			return t.BonusPercent
		}
	}
	return 0
}
