// Package core holds the domain model: money, users, wallets, transactions
// and statement computation. Amounts are integer cents throughout; floats
// never touch a balance.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents parses a user-entered amount like "12.34" or "12,34"
// into cents. A third decimal digit rounds half-up ("12.344" -> 1234,
// "12.345" -> 1235). Signs, zero and malformed input fail with
// ErrInvalidAmount: amounts carry their direction in the transaction type,
// not in the number.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, ErrInvalidAmount
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if iv > (1<<63-1)/100 {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	cents := iv*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseInitialBalance is ParseDecimalToCents relaxed to admit zero: a new
// wallet may legitimately start empty.
func ParseInitialBalance(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	return ParseDecimalToCents(s)
}

// String renders the amount with two decimal places, e.g. "1200.00".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}
