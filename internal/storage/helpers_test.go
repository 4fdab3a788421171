package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const testBaseURL = "http://test.com"

// newTestStorage returns a storage rooted at a not yet existing directory
// inside a temp dir, mirroring how a fresh deployment starts.
func newTestStorage(t *testing.T) (*LocalFileStorage, string) {
	t.Helper()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	root := filepath.Join(tmp, "storage")
	return NewLocalFileStorage(root, testBaseURL, zerolog.Nop()), root
}

func writeExternal(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write external %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func mustPut(t *testing.T, s *LocalFileStorage, path, content string) {
	t.Helper()
	if _, err := s.PutFileContents(path, []byte(content), 0); err != nil {
		t.Fatalf("PutFileContents(%q): %v", path, err)
	}
}

func assertReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if got := ReasonOf(err); got != want {
		t.Fatalf("reason = %q, want %q (err: %v)", got, want, err)
	}
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected error to wrap ErrInvalidPath: %v", err)
	}
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be absent, stat err: %v", path, err)
	}
}
