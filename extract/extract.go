// Package extract holds the field-extraction primitives (§4.3) that channel
// descriptors are built from: digit filtering, decimal and cents-encoded
// amount parsing, and the positional/regex rules particular to METROBANK,
// UNIONBANK, SM and BANCNET that don't fit the generic field-index shape.
package extract

import (
	"strings"

	"github.com/ChristianF88/atmsettle/money"
)

// DigitsOnly returns s with every non-ASCII-digit rune removed.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FirstNDigitsOnly keeps only the ASCII digits in s, then returns their
// first n characters. ok is false when fewer than n digits remain.
func FirstNDigitsOnly(s string, n int) (string, bool) {
	digits := DigitsOnly(s)
	if len(digits) < n {
		return "", false
	}
	return digits[:n], true
}

// FirstNChars returns the first n bytes of s verbatim, with no digit
// filtering. ok is false when s is shorter than n bytes.
func FirstNChars(s string, n int) (string, bool) {
	if len(s) < n {
		return "", false
	}
	return s[:n], true
}

// DecimalAmount parses a field already expressed in major units, such as
// "100.50", stripping thousands separators first.
func DecimalAmount(field string) (money.Cents, bool) {
	return money.ParseDecimalCents(field)
}

// CentsDigits parses a bare digit run whose integer value already is the
// amount in cents, such as a regex capture "0000001005" == 10.05.
func CentsDigits(digits string) (money.Cents, bool) {
	return money.ParseCentsDigits(digits)
}

// SlashInsert reformats a 6- or 8-digit string by inserting '/' after the
// 2nd and 4th characters, e.g. "MMDDYYYY" -> "MM/DD/YYYY". It performs no
// reordering: the caller is responsible for the digits already being in the
// desired output order (see the UNIONBANK and METROBANK date rules, whose
// source layout already matches the "DD/MM/YY" table column despite neither
// being true day-month-year arithmetic, just slash placement).
func SlashInsert(digits string) string {
	if len(digits) < 6 {
		return digits
	}
	return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
}
