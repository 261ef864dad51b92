package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh catalog in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(name, expr, hash string) Record {
	return Record{
		Name:       name,
		Expression: expr,
		Hash:       hash,
		Definition: `{"from":"` + name + `"}`,
	}
}
