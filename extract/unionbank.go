package extract

import "regexp"

// ContinuationThreshold is the minimum raw line length that can carry a
// reference on a UNIONBANK line; anything shorter is a continuation of the
// currently open group (see channel.Descriptor.Continuation).
const ContinuationThreshold = 200

// NOREF is the sentinel grouping key used when a UNIONBANK line cannot
// produce any of its three reference candidates. Unlike every other
// channel, UNIONBANK never excludes a line outright for lack of a reference.
const NOREF = "NOREF"

var (
	unionbankRefPrimary  = regexp.MustCompile(`\s{10,}(\d{14})\s+`)
	unionbankRefFallback = regexp.MustCompile(`\s{10,}(\d{4,})\s+`)
	unionbankAmountRe    = regexp.MustCompile(`(\d{12})(?:DB|LC)\d*\s*$`)
	unionbankDateRe      = regexp.MustCompile(`UB\d+\s+(\d{6})`)
)

// UnionbankReference tries, in order: a 14-digit run preceded by a wide
// whitespace gutter, then any 4-or-more digit run in the same gutter, then
// the first 4 digits of whitespace field 4 (fields is the caller's
// whitespace split of raw). It always succeeds, falling back to NOREF.
func UnionbankReference(raw string, fields []string) string {
	if m := unionbankRefPrimary.FindStringSubmatch(raw); m != nil {
		if key, ok := FirstNDigitsOnly(m[1], 4); ok {
			return key
		}
	}
	if m := unionbankRefFallback.FindStringSubmatch(raw); m != nil {
		if key, ok := FirstNDigitsOnly(m[1], 4); ok {
			return key
		}
	}
	if len(fields) > 4 {
		if key, ok := FirstNDigitsOnly(fields[4], 4); ok {
			return key
		}
	}
	return NOREF
}

// UnionbankAmount extracts the 12-digit cents run preceding a DB/LC tag.
func UnionbankAmount(raw string) (string, bool) {
	m := unionbankAmountRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// UnionbankDate extracts the 6-digit date stamp following a "UB<digits>" tag.
func UnionbankDate(raw string) (string, bool) {
	m := unionbankDateRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}
