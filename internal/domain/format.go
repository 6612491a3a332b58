package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how CompactNumber rounds the scaled value
type RoundingMode string

const (
	RoundDown RoundingMode = "ROUND_DOWN"
	RoundUp   RoundingMode = "ROUND_UP"
)

type compactUnit struct {
	exp    int32
	symbol string
}

var compactUnits = []compactUnit{
	{exp: 18, symbol: "Z"},
	{exp: 15, symbol: "Q"},
	{exp: 12, symbol: "T"},
	{exp: 9, symbol: "B"},
	{exp: 6, symbol: "M"},
	{exp: 3, symbol: "K"},
	{exp: 0, symbol: ""},
}

// FormatUnits renders an integer amount of the smallest unit as a decimal string,
// e.g. 1500000000000000000 with 18 decimals is "1.5".
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// CompactNumber formats a decimal string with a magnitude suffix (K, M, B, T, Q, Z),
// keeping at most decimals fraction digits and dropping trailing zeros.
// Values below 1 are printed with exactly decimals digits and no suffix.
// Unparseable input is returned unchanged.
func CompactNumber(value string, decimals int, mode RoundingMode) string {
	if decimals < 0 {
		decimals = 0
	}
	places := int32(decimals)

	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return value
	}

	for _, unit := range compactUnits {
		threshold := decimal.New(1, unit.exp)
		if v.LessThan(threshold) {
			continue
		}

		scaled := v.Shift(-unit.exp)
		if mode == RoundUp {
			scaled = scaled.RoundCeil(places)
		} else {
			scaled = scaled.Truncate(places)
		}

		// String drops trailing zeros
		return scaled.String() + unit.symbol
	}

	return v.StringFixed(places)
}
