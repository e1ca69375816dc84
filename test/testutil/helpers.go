// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// ProjectRoot returns the repository root directory.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// DataPath returns the path of a file in the data directory.
func DataPath(t *testing.T, filename string) string {
	t.Helper()
	return filepath.Join(ProjectRoot(t), "data", filename)
}

// LoadDataFile loads a file from the data directory.
// It fails the test if the file cannot be read.
func LoadDataFile(t *testing.T, filename string) []byte {
	t.Helper()

	data, err := os.ReadFile(DataPath(t, filename))
	if err != nil {
		t.Fatalf("Failed to load data file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for optional intent fields and preferences in tests.
func Ptr[T any](v T) *T {
	return &v
}
