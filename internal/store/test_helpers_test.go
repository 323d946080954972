package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

// createTestSlot opens a SQLite slot in a temp directory.
func createTestSlot(t *testing.T) *SQLiteSlot {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// discardLogger suppresses log output in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
