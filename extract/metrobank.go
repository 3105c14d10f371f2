package extract

import "regexp"

// metrobankAmountRe pulls the first 11-12 digit run immediately followed by
// a letter (the debit/credit tag glued onto the amount with no separator).
var metrobankAmountRe = regexp.MustCompile(`(\d{11,12})[A-Z]`)

// metrobankDateRe pulls the trailing 6-digit date stamp off the last
// whitespace-separated field.
var metrobankDateRe = regexp.MustCompile(`(\d{6})\d*$`)

// MetrobankAmount extracts the settlement amount from the whole raw
// METROBANK line. The captured digits already are the amount in cents.
func MetrobankAmount(raw string) (string, bool) {
	m := metrobankAmountRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MetrobankDate extracts the 6-digit date stamp from the last
// whitespace-separated field of a METROBANK line.
func MetrobankDate(lastField string) (string, bool) {
	m := metrobankDateRe.FindStringSubmatch(lastField)
	if m == nil {
		return "", false
	}
	return m[1], true
}
