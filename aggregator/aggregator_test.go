package aggregator

import (
	"testing"

	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/parser"
)

func TestIngestGroupsByReference(t *testing.T) {
	a := New()

	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.BDO, RawLine: "line1", ReferenceKey: "1234", Amount: 10050,
		Date: "2024-01-05", HasDate: true,
	}})
	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.BDO, RawLine: "line2", ReferenceKey: "1234", Amount: 5000,
	}})
	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.BDO, RawLine: "line3", ReferenceKey: "5678", Amount: 100,
	}})

	groups := a.Groups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	g1234 := groups[0]
	if g1234.ReferenceKey != "1234" || g1234.Count != 2 || g1234.Total != 15050 {
		t.Errorf("group 1234 = %+v", g1234)
	}
	if len(g1234.RawLines) != 2 || g1234.RawLines[0] != "line1" || g1234.RawLines[1] != "line2" {
		t.Errorf("group 1234 raw lines = %v", g1234.RawLines)
	}
	if dates := g1234.Dates(); len(dates) != 1 || dates[0] != "2024-01-05" {
		t.Errorf("group 1234 dates = %v", dates)
	}

	if a.TotalCount() != 3 {
		t.Errorf("TotalCount() = %d, want 3", a.TotalCount())
	}
	if a.TotalAmount() != 15150 {
		t.Errorf("TotalAmount() = %d, want 15150", a.TotalAmount())
	}
}

func TestIngestSkippedLineContributesNothing(t *testing.T) {
	a := New()
	a.Ingest(parser.LineOutcome{RawLine: "bad", SkipReason: parser.SkipReferenceInvalid})

	if len(a.Groups()) != 0 {
		t.Errorf("expected no groups for a skipped line")
	}
}

func TestUnionbankContinuationFoldsIntoCurrentGroup(t *testing.T) {
	a := New()

	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.UNIONBANK, RawLine: "primary", ReferenceKey: "1234", Amount: 5000,
	}})
	a.Ingest(parser.LineOutcome{RawLine: "continuation one", Continuation: true})
	a.Ingest(parser.LineOutcome{RawLine: "continuation two", Continuation: true})

	groups := a.Groups()
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.Count != 1 {
		t.Errorf("count = %d, want 1 (continuations must not increment it)", g.Count)
	}
	if g.Total != 5000 {
		t.Errorf("total = %d, want 5000", g.Total)
	}
	if len(g.RawLines) != 3 {
		t.Errorf("raw lines = %v, want 3 entries", g.RawLines)
	}
}

func TestOrphanContinuationFallsBackToNOREF(t *testing.T) {
	a := New()
	a.Ingest(parser.LineOutcome{RawLine: "orphan", Continuation: true})

	groups := a.Groups()
	if len(groups) != 1 || groups[0].ReferenceKey != "NOREF" {
		t.Fatalf("groups = %+v, want a single NOREF group", groups)
	}
	if groups[0].Count != 0 {
		t.Errorf("NOREF group count = %d, want 0", groups[0].Count)
	}
}

func TestEmptyAggregatorHasNoGroups(t *testing.T) {
	a := New()
	if len(a.Groups()) != 0 {
		t.Error("new aggregator should start empty")
	}
	if a.TotalCount() != 0 || a.TotalAmount() != 0 {
		t.Error("new aggregator totals should be zero")
	}
}
