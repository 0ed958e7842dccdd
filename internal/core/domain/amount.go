package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinorUnitScale is the fixed 10^2 factor between an amount and its minor units.
const MinorUnitScale = 100

// DefaultMaxMinorUnits caps a single wallet payment (999,999.99).
const DefaultMaxMinorUnits int64 = 99_999_999

var currencyMaxMinorUnits = map[string]int64{
	"GBP": 99_999_999,
	"EUR": 99_999_999,
	"USD": 99_999_999,
	"CHF": 99_999_999,
	"SEK": 999_999_999,
	"NOK": 999_999_999,
	"DKK": 999_999_999,
}

var amountPattern = regexp.MustCompile(`^(\d*)(?:\.(\d*))?$`)

var (
	ErrAmountFormat   = errors.New("amount must be a plain decimal number")
	ErrAmountNotPos   = errors.New("amount must be greater than zero")
	ErrAmountTooLarge = errors.New("amount is too large")
)

// ParseAmount converts a decimal string into integer minor units. Extra
// fraction digits are rounded half-up to two places. Zero and negative
// amounts are rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	m := amountPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, ErrAmountFormat
	}

	whole := strings.TrimLeft(m[1], "0")
	if len(whole) > 15 {
		return 0, ErrAmountTooLarge
	}
	var units int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAmountFormat, err)
		}
		units = n * MinorUnitScale
	}

	frac := m[2]
	padded := (frac + "00")[:2]
	cents, _ := strconv.ParseInt(padded, 10, 64)
	units += cents
	if len(frac) > 2 && frac[2] >= '5' {
		units++
	}

	if units <= 0 {
		return 0, ErrAmountNotPos
	}
	return units, nil
}

// FormatMinor renders minor units as a two-decimal string ("100" -> "1.00").
func FormatMinor(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/MinorUnitScale, minor%MinorUnitScale)
}

// MaxMinorUnits returns the per-payment ceiling for a currency.
func MaxMinorUnits(currency string) int64 {
	if max, ok := currencyMaxMinorUnits[currency]; ok {
		return max
	}
	return DefaultMaxMinorUnits
}
