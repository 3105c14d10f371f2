package report

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/ChristianF88/atmsettle/aggregator"
	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/parser"
)

func buildGroups(t *testing.T) []*aggregator.Group {
	t.Helper()
	a := aggregator.New()
	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.BDO, RawLine: "line1", ReferenceKey: "1234", Amount: 10050,
		Date: "2024-01-05", HasDate: true,
	}})
	a.Ingest(parser.LineOutcome{Record: &parser.Record{
		ChannelID: channel.BDO, RawLine: "line2", ReferenceKey: "5678", Amount: 100,
	}})
	return a.Groups()
}

func TestSummaryHasBOMAndOverallBlock(t *testing.T) {
	csvBytes := Summary(buildGroups(t))

	if !bytes.HasPrefix(csvBytes, utf8BOM) {
		t.Fatal("summary should start with a UTF-8 BOM")
	}

	text := string(csvBytes[len(utf8BOM):])
	if !strings.Contains(text, "OVERALL SUMMARY REPORT") {
		t.Error("missing overall summary header")
	}
	if !strings.Contains(text, "Total Transactions,2\r\n") {
		t.Errorf("missing total transactions row, got: %q", text)
	}
	if !strings.Contains(text, "ATM REFERENCE BREAKDOWN") {
		t.Error("missing breakdown header")
	}
	if !strings.Contains(text, "1234,1,100.50,BDO,2024-01-05\r\n") {
		t.Errorf("missing group row, got: %q", text)
	}
}

func TestGroupExtractOnePerLine(t *testing.T) {
	groups := buildGroups(t)
	extract := GroupExtract(groups[0])
	if string(extract) != "line1\n" {
		t.Errorf("GroupExtract = %q, want %q", extract, "line1\n")
	}
}

func TestGroupExtractName(t *testing.T) {
	groups := buildGroups(t)
	name := GroupExtractName(groups[0], "EPR")
	if name != "ATM_1234_BDO_EPR.txt" {
		t.Errorf("GroupExtractName = %q, want ATM_1234_BDO_EPR.txt", name)
	}
}

func TestArchiveName(t *testing.T) {
	if got := ArchiveName("settlement_file", "PIC"); got != "settlement_file_PIC.zip" {
		t.Errorf("ArchiveName = %q, want settlement_file_PIC.zip", got)
	}
}

func TestBuildArchiveContainsSummaryAndExtracts(t *testing.T) {
	groups := buildGroups(t)
	archiveBytes, err := BuildArchive(groups, "EPR")
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archiveBytes), int64(len(archiveBytes)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}

	want := []string{
		"transactions_summary.csv",
		"ATM_1234_BDO_EPR.txt",
		"ATM_5678_BDO_EPR.txt",
	}
	for _, n := range want {
		if !names[n] {
			t.Errorf("archive missing entry %q (have %v)", n, names)
		}
	}
}
