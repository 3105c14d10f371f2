package parser

import (
	"testing"

	"github.com/ChristianF88/atmsettle/channel"
)

func mustRecord(t *testing.T, outcomes []LineOutcome, i int) *Record {
	t.Helper()
	if i >= len(outcomes) {
		t.Fatalf("outcome %d out of range (have %d)", i, len(outcomes))
	}
	if outcomes[i].Record == nil {
		t.Fatalf("outcome %d has no record: %+v", i, outcomes[i])
	}
	return outcomes[i].Record
}

func TestParseBDO(t *testing.T) {
	p := New(channel.BDO)
	line := "NAME|X|2024-01-05|X|X|1234567890|X|X|X|100.50"

	outcomes := p.Parse([]byte(line))
	rec := mustRecord(t, outcomes, 0)

	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 10050 {
		t.Errorf("amount = %d, want 10050", rec.Amount)
	}
	if rec.Date != "2024-01-05" {
		t.Errorf("date = %q, want 2024-01-05", rec.Date)
	}
}

func TestParseMetrobank(t *testing.T) {
	p := New(channel.METROBANK)
	line := "HDR 12345678 X 00000001005A ... 010524"

	outcomes := p.Parse([]byte(line))
	rec := mustRecord(t, outcomes, 0)

	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 1005 {
		t.Errorf("amount = %d, want 1005", rec.Amount)
	}
	if rec.Date != "01/05/24" {
		t.Errorf("date = %q, want 01/05/24", rec.Date)
	}
}

func TestParseUnionbankContinuation(t *testing.T) {
	p := New(channel.UNIONBANK)

	primary := "   UB0001 240115 ...            12345678901234    ...000000005000DB"
	for len(primary) < 205 {
		primary += " "
	}

	content := primary + "\n" + "short line two" + "\n" + "short line three"
	outcomes := p.Parse([]byte(content))

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	rec := mustRecord(t, outcomes, 0)
	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 5000 {
		t.Errorf("amount = %d, want 5000", rec.Amount)
	}
	if rec.Date != "24/01/15" {
		t.Errorf("date = %q, want 24/01/15", rec.Date)
	}

	if !outcomes[1].Continuation || !outcomes[2].Continuation {
		t.Errorf("lines 2-3 should be continuations: %+v", outcomes[1:])
	}
}

func TestParseSM(t *testing.T) {
	p := New(channel.SM)
	raw := "000" + "01152024" + "0000000" + "1234ABCDEFGHI" + "...000250CS..."

	outcomes := p.Parse([]byte(raw))
	rec := mustRecord(t, outcomes, 0)

	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 250 {
		t.Errorf("amount = %d, want 250", rec.Amount)
	}
	if rec.Date != "01/15/2024" {
		t.Errorf("date = %q, want 01/15/2024", rec.Date)
	}
}

func TestParseBancnet(t *testing.T) {
	p := New(channel.BANCNET)
	raw := "..........1234240115....*.....*....................00007500..."

	outcomes := p.Parse([]byte(raw))
	rec := mustRecord(t, outcomes, 0)

	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 7500 {
		t.Errorf("amount = %d, want 7500", rec.Amount)
	}
	if rec.Date != "15/01/2025" {
		t.Errorf("date = %q, want 15/01/2025", rec.Date)
	}
}

func TestParseROB(t *testing.T) {
	p := New(channel.ROB)
	line := "2024-01-05^X|X^X^1234567^X^123.45^X"

	outcomes := p.Parse([]byte(line))
	rec := mustRecord(t, outcomes, 0)

	if rec.ReferenceKey != "1234" {
		t.Errorf("reference = %q, want 1234", rec.ReferenceKey)
	}
	if rec.Amount != 12345 {
		t.Errorf("amount = %d, want 12345", rec.Amount)
	}
	if rec.Date != "2024-01-05" {
		t.Errorf("date = %q, want 2024-01-05", rec.Date)
	}
}

func TestParseEmptyFile(t *testing.T) {
	p := New(channel.BDO)
	outcomes := p.Parse([]byte(""))
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for empty file, want 0", len(outcomes))
	}
}

func TestParseShortLineSkipped(t *testing.T) {
	p := New(channel.BDO)
	outcomes := p.Parse([]byte("A|B"))
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if outcomes[0].Record != nil {
		t.Error("expected no record for a line with too few fields")
	}
	if outcomes[0].SkipReason != SkipReferenceInvalid {
		t.Errorf("skip reason = %q, want %q", outcomes[0].SkipReason, SkipReferenceInvalid)
	}
}

func TestParseAmountOutOfRangeTreatedAsZero(t *testing.T) {
	p := New(channel.BDO)
	line := "NAME|X|2024-01-05|X|X|1234567890|X|X|X|9999999999.00"

	outcomes := p.Parse([]byte(line))
	rec := mustRecord(t, outcomes, 0)
	if rec.Amount != 0 {
		t.Errorf("amount = %d, want 0 for out-of-range input", rec.Amount)
	}
}

func TestUnknownChannel(t *testing.T) {
	if New(channel.ID("NOPE")) != nil {
		t.Error("New should return nil for an unregistered channel id")
	}
}
