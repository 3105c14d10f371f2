// Package parser is the per-channel orchestrator (C4): it decodes a
// settlement file's raw bytes, splits it into lines, and drives a channel
// descriptor's reference/amount/date rules over each one, yielding a
// LineOutcome per line. A single bad line never aborts the file.
package parser

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/money"
)

// SkipReason enumerates why a line produced no record.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipReferenceInvalid SkipReason = "reference_invalid"
	SkipUnknownChannel   SkipReason = "unknown_channel"
)

// Record is one successfully parsed settlement line.
type Record struct {
	ChannelID    channel.ID
	RawLine      string
	Fields       []string
	Amount       money.Cents
	ReferenceKey string
	Date         string
	HasDate      bool
}

// LineOutcome is what the parser yields for every non-empty line of input.
// At most one of Record or SkipReason is set: a Continuation line
// carries no Record and no SkipReason, just RawLine, and must be appended
// to the aggregator's currently open group without touching its count.
type LineOutcome struct {
	RawLine      string
	Record       *Record
	Continuation bool
	SkipReason   SkipReason
}

// Stats accumulates per-run diagnostics. It is not an invariant-bearing
// type; reimplementations may extend it freely.
type Stats struct {
	LinesTotal    int
	LinesSkipped  int
	AmountMissing int
}

// encodings are tried in order; the first one that decodes the entire
// buffer without error wins. UTF-8 is attempted first because it is the
// only one of the four that can reject invalid input outright.
var encodings = []struct {
	name string
	dec  func([]byte) (string, bool)
}{
	{"utf-8", decodeUTF8},
	{"latin1", decodeCharmap(charmap.ISO8859_1)},
	{"cp1252", decodeCharmap(charmap.Windows1252)},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
}

// Decode turns raw into text using the first of UTF-8, Latin-1, CP1252, or
// ISO-8859-1 that decodes the whole buffer without error.
func Decode(raw []byte) string {
	for _, enc := range encodings {
		if text, ok := enc.dec(raw); ok {
			return text
		}
	}
	// All strict decoders failed (shouldn't happen: ISO-8859-1 accepts every
	// byte value); fall back to a lossy UTF-8 reinterpretation.
	return string(raw)
}

func decodeUTF8(raw []byte) (string, bool) {
	s := string(raw)
	for _, r := range s {
		if r == '�' {
			return "", false
		}
	}
	return s, true
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(raw []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

// Lines splits decoded text on '\n', trims a trailing '\r' off each line,
// and discards empty lines.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Parser drives one channel's descriptor over decoded file content.
type Parser struct {
	Descriptor *channel.Descriptor
	Stats      Stats
}

// New returns a Parser for id, or nil if id is unknown (the caller should
// treat this as a ValidationError before ever reaching the parser).
func New(id channel.ID) *Parser {
	d := channel.Lookup(id)
	if d == nil {
		return nil
	}
	return &Parser{Descriptor: d}
}

// Parse decodes raw and yields one LineOutcome per non-empty line, in file
// order. It never panics or aborts on a malformed line.
func (p *Parser) Parse(raw []byte) []LineOutcome {
	text := Decode(raw)
	lines := Lines(text)

	outcomes := make([]LineOutcome, 0, len(lines))
	for _, line := range lines {
		p.Stats.LinesTotal++
		outcomes = append(outcomes, p.parseLine(line))
	}
	return outcomes
}

func (p *Parser) parseLine(raw string) LineOutcome {
	d := p.Descriptor

	if d.Continuation && len(raw) < d.ContinuationThreshold {
		return LineOutcome{RawLine: raw, Continuation: true}
	}

	fields := channel.Split(raw, d.Delimiter)
	line := channel.Line{Raw: raw, Fields: fields}

	refKey, ok := d.Reference(line)
	if !ok {
		p.Stats.LinesSkipped++
		return LineOutcome{RawLine: raw, SkipReason: SkipReferenceInvalid}
	}

	amount, ok := d.Amount(line)
	if !ok {
		p.Stats.AmountMissing++
		amount = 0
	} else if !amount.Sane() {
		amount = 0
	}

	date, hasDate := d.Date(line)

	return LineOutcome{
		RawLine: raw,
		Record: &Record{
			ChannelID:    d.ID,
			RawLine:      raw,
			Fields:       fields,
			Amount:       amount,
			ReferenceKey: refKey,
			Date:         date,
			HasDate:      hasDate,
		},
	}
}
