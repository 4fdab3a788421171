package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestPredicates(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "dir/file.txt", "hello")

	tests := []struct {
		path                                      string
		exists, isFile, isDir, readable, writable bool
	}{
		{path: "dir/file.txt", exists: true, isFile: true, readable: true, writable: true},
		{path: "dir", exists: true, isDir: true, readable: true, writable: true},
		{path: "missing.txt"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			check := func(name string, fn func(string) (bool, error), want bool) {
				t.Helper()
				got, err := fn(tc.path)
				if err != nil {
					t.Fatalf("%s(%q) error: %v", name, tc.path, err)
				}
				if got != want {
					t.Fatalf("%s(%q) = %v, want %v", name, tc.path, got, want)
				}
			}
			check("FileExists", s.FileExists, tc.exists)
			check("IsFile", s.IsFile, tc.isFile)
			check("IsDir", s.IsDir, tc.isDir)
			check("IsReadable", s.IsReadable, tc.readable)
			check("IsWritable", s.IsWritable, tc.writable)
		})
	}
}

func TestPredicatesInvalidPath(t *testing.T) {
	s, _ := newTestStorage(t)
	ok, err := s.FileExists("$dir")
	if ok {
		t.Fatalf("FileExists returned true for an invalid path")
	}
	assertValidation(t, err)
}

func TestFileSize(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "sized.txt", "12345")
	size, err := s.FileSize("sized.txt")
	if err != nil || size != 5 {
		t.Fatalf("FileSize = %d, %v", size, err)
	}

	size, err = s.FileSize("missing.txt")
	if size != 0 {
		t.Fatalf("FileSize(missing) = %d", size)
	}
	assertReason(t, err, ReasonNotFound)
}

func TestFileTimes(t *testing.T) {
	s, root := newTestStorage(t)
	mustPut(t, s, "timed.txt", "x")
	atime := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	mtime := time.Date(2024, time.April, 2, 11, 30, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(root, "timed.txt"), atime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	gotM, err := s.FileModificationTime("timed.txt")
	if err != nil || !gotM.Equal(mtime) {
		t.Fatalf("FileModificationTime = %v, %v; want %v", gotM, err, mtime)
	}

	gotA, err := s.FileAccessTime("timed.txt")
	if err != nil {
		t.Fatalf("FileAccessTime error: %v", err)
	}
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd":
		if !gotA.Equal(atime) {
			t.Fatalf("FileAccessTime = %v, want %v", gotA, atime)
		}
	}

	gotC, err := s.FileCreationTime("timed.txt")
	if err != nil || gotC.IsZero() {
		t.Fatalf("FileCreationTime = %v, %v", gotC, err)
	}

	for name, fn := range map[string]func(string) (time.Time, error){
		"FileModificationTime": s.FileModificationTime,
		"FileAccessTime":       s.FileAccessTime,
		"FileCreationTime":     s.FileCreationTime,
	} {
		got, err := fn("missing.txt")
		if !got.IsZero() {
			t.Fatalf("%s(missing) = %v, want zero", name, got)
		}
		assertReason(t, err, ReasonNotFound)
	}
}

func TestFileURL(t *testing.T) {
	s, _ := newTestStorage(t)
	tests := []struct {
		path string
		want string
	}{
		{path: "a/b.txt", want: "http://test.com/a/b.txt"},
		{path: "/a/b.txt", want: "http://test.com/a/b.txt"},
		{path: " //a.txt", want: "http://test.com/a.txt"},
	}
	for _, tc := range tests {
		got, ok := s.FileURL(tc.path)
		if !ok || got != tc.want {
			t.Fatalf("FileURL(%q) = %q, %v; want %q", tc.path, got, ok, tc.want)
		}
	}

	s.SetBaseURL("")
	if got, ok := s.FileURL("a/b.txt"); ok || got != "" {
		t.Fatalf("FileURL without base URL = %q, %v", got, ok)
	}
}
