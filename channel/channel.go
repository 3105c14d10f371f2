// Package channel is the declarative table of settlement-file channels: what
// delimiter each one uses, and the capability set {split, extract_reference,
// extract_amount, extract_date} that a single parser loop consults to handle
// all of them without a per-channel branch (see package parser).
package channel

import (
	"strings"

	"github.com/ChristianF88/atmsettle/money"
)

// ID identifies a settlement channel known to the registry.
type ID string

const (
	CIS       ID = "CIS"
	PNB       ID = "PNB"
	BDO       ID = "BDO"
	ECPAY     ID = "ECPAY"
	CEBUANA   ID = "CEBUANA"
	PERALINK  ID = "PERALINK"
	CHINABANK ID = "CHINABANK"
	METROBANK ID = "METROBANK"
	UNIONBANK ID = "UNIONBANK"
	SM        ID = "SM"
	BANCNET   ID = "BANCNET"
	ROB       ID = "ROB"
)

// DelimiterKind enumerates the closed set of field-splitting strategies a
// channel descriptor can declare. See Split in split.go.
type DelimiterKind int

const (
	Pipe DelimiterKind = iota
	Caret
	Comma
	Whitespace
	Positional
	MixedCaretPipe
)

// Line is one raw settlement-file line together with its already-split
// fields, for channels whose rules are field-indexed rather than positional.
type Line struct {
	Raw    string
	Fields []string
}

// Field returns Fields[i], or "" if the line is shorter than i+1 fields.
func (l Line) Field(i int) string {
	if i < 0 || i >= len(l.Fields) {
		return ""
	}
	return l.Fields[i]
}

// Descriptor is the immutable, table-driven shape of one channel: how to
// split a line, and how to pull a reference key, an amount, and a date out
// of it. New channels are added by appending a row to registry, never by
// editing the parser that drives these functions.
type Descriptor struct {
	ID          ID
	DisplayName string
	Delimiter   DelimiterKind
	Aliases     []string

	// Reference extracts the 4-digit grouping key. ok is false when the
	// channel has no fallback and the line must be excluded entirely; a
	// channel may instead always return ok=true with key NOREF (UNIONBANK).
	Reference func(Line) (key string, ok bool)

	// Amount extracts the transaction amount. ok is false when no numeric
	// value could be found; the caller treats the amount as zero but keeps
	// the record.
	Amount func(Line) (amount money.Cents, ok bool)

	// Date extracts the channel-native date string, if any.
	Date func(Line) (date string, ok bool)

	// Continuation marks channels (UNIONBANK) whose short lines cannot carry
	// a reference and must be folded into the currently open group instead
	// of starting a new record. See aggregator.Aggregator.
	Continuation bool

	// ContinuationThreshold is the minimum raw line length required to carry
	// a reference on a Continuation channel; shorter lines are continuations.
	ContinuationThreshold int
}

// registry holds every known descriptor, keyed by ID. It is built once at
// package init and never mutated afterwards.
var registry = map[ID]*Descriptor{}

// aliasOrder lists channel IDs in the order their aliases are tested during
// ClassifyByFilename: first alias hit wins.
var aliasOrder []ID

func register(d *Descriptor) {
	registry[d.ID] = d
	aliasOrder = append(aliasOrder, d.ID)
}

// Lookup returns the descriptor for id, or nil if id is unknown.
func Lookup(id ID) *Descriptor {
	return registry[id]
}

// Known reports whether id names a registered channel.
func Known(id ID) bool {
	return registry[id] != nil
}

// All returns every registered descriptor, in registration order.
func All() []*Descriptor {
	out := make([]*Descriptor, 0, len(aliasOrder))
	for _, id := range aliasOrder {
		out = append(out, registry[id])
	}
	return out
}

// ClassifyByFilename returns the canonical channel ID whose aliases first
// match a case-insensitive substring of name. It returns ("", false) if no
// alias matches.
func ClassifyByFilename(name string) (ID, bool) {
	upper := strings.ToUpper(name)

	for _, id := range aliasOrder {
		d := registry[id]
		for _, alias := range d.Aliases {
			if strings.Contains(upper, alias) {
				return d.ID, true
			}
		}
	}

	return "", false
}

// CanonicalizeID maps a user-supplied payment-mode string (case-insensitive,
// including ROBINSONS-family spellings) onto the registry's canonical ID.
// It returns ("", false) if raw does not name a known channel.
func CanonicalizeID(raw string) (ID, bool) {
	upper := strings.ToUpper(strings.TrimSpace(raw))

	switch upper {
	case "ROBINSONS", "ROBINSONS BANK", "ROBINSON", "ROBINSON BANK", "ROBINSONS_BANK":
		upper = string(ROB)
	}

	id := ID(upper)
	if Known(id) {
		return id, true
	}
	return "", false
}
