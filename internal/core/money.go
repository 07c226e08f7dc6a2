// Package core holds the domain model and the pure pipeline leaves: money
// and date parsing, person normalization and transaction derivation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// two is hoisted so SplitAmountTwo does not rebuild it per call.
var two = decimal.NewFromInt(2)

// ParseMoney converts locale-ambiguous amount text into a decimal.
//
// The currency symbol and whitespace are stripped first. When both "," and
// "." occur, "." is a thousands separator and "," the decimal mark
// ("1.234,56" -> 1234.56). A lone "," is the decimal mark ("45,00" -> 45.00).
// Anything that still fails to parse yields zero; this function never errors.
func ParseMoney(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	s = strings.NewReplacer("R$", "", "$", "", " ", "", "\t", "").Replace(s)

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SplitAmountTwo halves an amount into two cent-rounded parts that sum
// exactly to the cent-rounded original. The odd half-cent, when the amount
// does not divide evenly, lands on the second part.
func SplitAmountTwo(amount decimal.Decimal) (half, other decimal.Decimal) {
	half = amount.Div(two).Round(2)
	other = amount.Sub(half).Round(2)
	return half, other
}
