// Package report is C6, the report builder: a pure projection over
// aggregator groups into a summary CSV, per-group raw-line extracts, and
// the ZIP archive bundling both. Every per-group count, total, and date
// set here is read straight off a Group; the overall totals in the summary
// are the sums of those per-group values.
package report

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/ChristianF88/atmsettle/aggregator"
	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/money"
	"github.com/ChristianF88/atmsettle/pools"
)

// utf8BOM is prefixed to the summary CSV for byte-for-byte compatibility
// with spreadsheet tools that assume a BOM on UTF-8 text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Summary renders transactions_summary.csv per §4.6: an overall totals
// block followed by one row per group in insertion order.
func Summary(groups []*aggregator.Group) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	var totalCount uint32
	var totalAmount money.Cents
	for _, g := range groups {
		totalCount += g.Count
		totalAmount += g.Total
	}

	rows := [][]string{
		{"OVERALL SUMMARY REPORT"},
		{},
		{"Total Transactions", fmt.Sprintf("%d", totalCount)},
		{"Total Amount", totalAmount.Peso()},
		{},
		{"ATM REFERENCE BREAKDOWN"},
		{"ATM Reference", "Count", "Amount", "PaymentMode", "Dates"},
	}
	for _, r := range rows {
		_ = w.Write(r)
	}

	for _, g := range groups {
		displayName := g.ChannelID
		if d := channel.Lookup(g.ChannelID); d != nil {
			displayName = channel.ID(d.DisplayName)
		}

		row := pools.Pools.GetStringSlice()
		row = append(row,
			g.ReferenceKey,
			fmt.Sprintf("%d", g.Count),
			g.Total.String(),
			string(displayName),
			strings.Join(g.Dates(), ", "),
		)
		_ = w.Write(row)
		pools.Pools.ReturnStringSlice(row)
	}

	w.Flush()
	return buf.Bytes()
}

// GroupExtractName is the filename §4.6 specifies for a group's raw-line
// extract file.
func GroupExtractName(g *aggregator.Group, area string) string {
	displayName := g.ChannelID
	if d := channel.Lookup(g.ChannelID); d != nil {
		displayName = channel.ID(d.DisplayName)
	}
	return fmt.Sprintf("ATM_%s_%s_%s.txt", g.ReferenceKey, displayName, area)
}

// GroupExtract renders a group's raw lines, one per line, terminated by
// '\n', in insertion order.
func GroupExtract(g *aggregator.Group) []byte {
	builder := pools.Pools.GetBuilder()
	defer pools.Pools.ReturnBuilder(builder)

	for _, line := range g.RawLines {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	out := make([]byte, builder.Len())
	copy(out, builder.String())
	return out
}

// ArchiveName is the filename §4.6 specifies for the bundled archive.
func ArchiveName(originalBase, area string) string {
	return fmt.Sprintf("%s_%s.zip", originalBase, area)
}

// BuildArchive zips the summary CSV alongside every group's raw-line
// extract, compressed with the klauspost/compress deflate implementation
// registered on the zip writer.
func BuildArchive(groups []*aggregator.Group, area string) ([]byte, error) {
	buf := pools.Pools.GetByteBuffer()
	defer pools.Pools.ReturnByteBuffer(buf)

	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	summaryWriter, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "transactions_summary.csv",
		Method: zip.Deflate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating summary entry: %w", err)
	}
	if _, err := summaryWriter.Write(Summary(groups)); err != nil {
		return nil, fmt.Errorf("writing summary entry: %w", err)
	}

	for _, g := range groups {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   GroupExtractName(g, area),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("creating extract entry for %s: %w", g.ReferenceKey, err)
		}
		if _, err := w.Write(GroupExtract(g)); err != nil {
			return nil, fmt.Errorf("writing extract entry for %s: %w", g.ReferenceKey, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
