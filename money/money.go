// Package money represents settlement amounts as fixed-point cents.
//
// Channel files encode amounts two ways: as a major-unit decimal string
// ("100.50") or as a bare digit run whose value already is the amount in
// cents ("0000001005" == 10.05). Both paths funnel through shopspring/decimal
// so thousands separators and odd whitespace are handled the same way the
// channel files themselves are punctuated, then rounded to an integer number
// of cents. Arithmetic on parsed amounts stays integer from that point on;
// decimal.Decimal only reappears at the edges, for parsing and formatting.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a non-negative amount of money expressed in hundredths of a unit.
type Cents int64

// SaneUpperBound is the exclusive sanity ceiling on a single transaction
// amount, expressed in cents (₱1,000,000,000.00). Amounts outside
// [0, SaneUpperBound) are treated as zero by the parser rather than
// rejecting the whole line.
const SaneUpperBound Cents = 1_000_000_000 * 100

// ParseDecimalCents parses a major-unit decimal amount such as "1,234.56"
// or "170.0" into cents. Thousands separators are stripped before parsing.
func ParseDecimalCents(raw string) (Cents, bool) {
	cleaned := stripThousands(raw)
	if cleaned == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}

	return Cents(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()), true
}

// ParseCentsDigits parses a bare digit run, such as a regex capture group,
// whose integer value already is the amount in cents ("000000005000" == 50.00).
// Thousands separators are stripped first for channels that keep them even in
// digit-only fields.
func ParseCentsDigits(raw string) (Cents, bool) {
	cleaned := stripThousands(raw)
	if cleaned == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}

	return Cents(d.IntPart()), true
}

func stripThousands(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
}

// Sane reports whether c falls inside the global sanity range [0, SaneUpperBound).
func (c Cents) Sane() bool {
	return c >= 0 && c < SaneUpperBound
}

// Decimal returns c as an arbitrary-precision decimal in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats c with thousands separators and exactly two fractional
// digits, e.g. Cents(123456).String() == "1,234.56". No currency symbol.
func (c Cents) String() string {
	return formatGrouped(c)
}

// Peso formats c the way the summary report does: a leading peso sign
// followed by the grouped, two-decimal amount.
func (c Cents) Peso() string {
	return "₱" + formatGrouped(c)
}

func formatGrouped(c Cents) string {
	neg := c < 0
	if neg {
		c = -c
	}

	whole := int64(c) / 100
	frac := int64(c) % 100

	digits := []byte(strconvI64(whole))
	var grouped []byte
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if neg {
		sign = "-"
	}

	return sign + string(grouped) + "." + twoDigits(frac)
}

func strconvI64(n int64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[i:])
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconvI64(n)
	}
	return strconvI64(n)
}
