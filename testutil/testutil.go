package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// GenerateTestSettlementFile creates a temporary pipe-delimited settlement
// file (the BDO shape) with fictional transaction lines for
// testing purposes. Returns the file path and a cleanup function.
func GenerateTestSettlementFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()

	if numLines < 1 {
		numLines = 1
	}

	tmpFile, err := os.CreateTemp("", "test_settlement_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp settlement file: %v", err)
	}

	references := []string{"1001", "1002", "1003", "1004", "1005"}

	var content strings.Builder
	for i := 0; i < numLines; i++ {
		ref := references[i%len(references)]
		content.WriteString(fmt.Sprintf(
			"NAME|X|2024-01-%02d|X|X|%s567890|X|X|X|%d.%02d\n",
			(i%28)+1, ref, 100+i, i%100,
		))
	}

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp settlement file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path with the given
// pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}

// TempDirPath returns a cross-platform temporary directory path.
func TempDirPath(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
