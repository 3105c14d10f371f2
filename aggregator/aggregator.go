// Package aggregator is C5: it groups parsed records by their 4-digit
// reference key (or the NOREF sentinel), maintaining per-group counts,
// totals, raw-line sequences, and date sets, plus the file-wide totals the
// report builder projects from.
package aggregator

import (
	"sort"
	"sync"

	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/money"
	"github.com/ChristianF88/atmsettle/parser"
)

// Group is every record sharing one reference key within a single file.
type Group struct {
	ReferenceKey string
	ChannelID    channel.ID
	Count        uint32
	Total        money.Cents
	RawLines     []string

	dates map[string]struct{}
}

// NewGroup reconstructs a Group from already-aggregated data, such as the
// processed_data/raw_contents a report-generation request hands back from
// an earlier status poll. It is the only way to populate a Group's dates
// from outside this package.
func NewGroup(referenceKey string, channelID channel.ID, count uint32, total money.Cents, rawLines []string, dates []string) *Group {
	g := &Group{
		ReferenceKey: referenceKey,
		ChannelID:    channelID,
		Count:        count,
		Total:        total,
		RawLines:     rawLines,
		dates:        make(map[string]struct{}, len(dates)),
	}
	for _, d := range dates {
		g.dates[d] = struct{}{}
	}
	return g
}

// Dates returns the group's distinct date strings, sorted.
func (g *Group) Dates() []string {
	out := make([]string, 0, len(g.dates))
	for d := range g.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Aggregator accumulates LineOutcomes into Groups for one job's file. It is
// safe for concurrent use by a single worker and readers that only call the
// accessor methods; Ingest itself is not meant to be called concurrently
// with other Ingest calls on the same Aggregator, since raw-line order must
// match the input file.
type Aggregator struct {
	mu         sync.Mutex
	order      []string
	groups     map[string]*Group
	currentKey string
	haveKey    bool
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{groups: make(map[string]*Group)}
}

// Ingest applies one parser.LineOutcome. A skipped line (no Record, not a
// Continuation) contributes nothing. A Continuation line is appended to the
// currently open group's raw lines without touching its count or total,
// falling back to NOREF if no group has been opened yet.
func (a *Aggregator) Ingest(o parser.LineOutcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if o.Continuation {
		key := "NOREF"
		if a.haveKey {
			key = a.currentKey
		}
		g := a.groupLocked(key, "")
		g.RawLines = append(g.RawLines, o.RawLine)
		return
	}

	if o.Record == nil {
		return
	}

	rec := o.Record
	g := a.groupLocked(rec.ReferenceKey, rec.ChannelID)
	if g.ChannelID == "" {
		g.ChannelID = rec.ChannelID
	}
	g.RawLines = append(g.RawLines, rec.RawLine)
	g.Count++
	g.Total += rec.Amount
	if rec.HasDate {
		g.dates[rec.Date] = struct{}{}
	}

	a.currentKey = rec.ReferenceKey
	a.haveKey = true
}

func (a *Aggregator) groupLocked(key string, id channel.ID) *Group {
	g, ok := a.groups[key]
	if !ok {
		g = &Group{ReferenceKey: key, ChannelID: id, dates: make(map[string]struct{})}
		a.groups[key] = g
		a.order = append(a.order, key)
	}
	return g
}

// Groups returns every group in first-seen (insertion) order.
func (a *Aggregator) Groups() []*Group {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*Group, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.groups[key])
	}
	return out
}

// TotalCount sums Count across every group.
func (a *Aggregator) TotalCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	var n int
	for _, key := range a.order {
		n += int(a.groups[key].Count)
	}
	return n
}

// TotalAmount sums Total across every group.
func (a *Aggregator) TotalAmount() money.Cents {
	a.mu.Lock()
	defer a.mu.Unlock()

	var sum money.Cents
	for _, key := range a.order {
		sum += a.groups[key].Total
	}
	return sum
}
