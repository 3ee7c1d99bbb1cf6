// Package currency provides standardized amount handling for the vault.
// All amounts are stored as decimal.Decimal to avoid floating-point errors;
// formatting follows the product's display rules (token amounts with a
// trailing symbol, fiat with a leading one, percentages grouped to whole
// numbers).
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset identifies a token or fiat unit handled by the vault.
type Asset string

// Supported assets.
const (
	PEARL Asset = "PEARL" // the locked reward token
	CLAM  Asset = "CLAM"  // the protocol's base token
	USD   Asset = "USD"   // fiat valuation unit
)

// DefaultAsset is the asset assumed when none is specified.
const DefaultAsset = PEARL

// AssetInfo contains display metadata for an asset.
type AssetInfo struct {
	Code          Asset
	Name          string
	Symbol        string
	DecimalPlaces int  // display precision
	SymbolBefore  bool // "$5,592.12" vs "123 PEARL"
}

var assets = map[Asset]AssetInfo{
	PEARL: {Code: PEARL, Name: "Pearl", Symbol: "PEARL", DecimalPlaces: 4, SymbolBefore: false},
	CLAM:  {Code: CLAM, Name: "Clam", Symbol: "CLAM", DecimalPlaces: 4, SymbolBefore: false},
	USD:   {Code: USD, Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, SymbolBefore: true},
}

// GetInfo returns display metadata for an asset.
func GetInfo(code Asset) (AssetInfo, bool) {
	info, ok := assets[code]
	return info, ok
}

// Amount is a quantity of a specific asset.
type Amount struct {
	Value decimal.Decimal `json:"value"`
	Asset Asset           `json:"asset"`
}

// New creates an Amount, defaulting the asset when empty.
func New(value decimal.Decimal, asset Asset) Amount {
	if asset == "" {
		asset = DefaultAsset
	}
	return Amount{Value: value, Asset: asset}
}

// Format renders the amount with its symbol, grouped thousands, and the
// asset's display precision. "$5,592.12", "123 PEARL".
func (a Amount) Format() string {
	info, ok := GetInfo(a.Asset)
	if !ok {
		return fmt.Sprintf("%s %s", a.Value.StringFixed(2), a.Asset)
	}

	s := groupThousands(a.Value.StringFixed(int32(info.DecimalPlaces)))
	if info.SymbolBefore {
		return info.Symbol + s
	}
	return s + " " + info.Symbol
}

// FormatPercent renders a percentage rounded to whole numbers with grouped
// thousands, e.g. 492391.2 -> "492,391%". Used for APY figures, which can
// run to six digits.
func FormatPercent(v decimal.Decimal) string {
	return groupThousands(v.Round(0).StringFixed(0)) + "%"
}

// groupThousands inserts commas into the integer part of a decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
