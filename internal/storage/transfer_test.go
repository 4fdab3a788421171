package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCopyFile(t *testing.T) {
	s, root := newTestStorage(t)
	src := writeExternal(t, "text.file", []byte("external text"))

	ok, err := s.CopyFile(src, "/test1/subdir1/file1.txt")
	if !ok || err != nil {
		t.Fatalf("CopyFile = %v, %v", ok, err)
	}
	if got := readFile(t, filepath.Join(root, "test1", "subdir1", "file1.txt")); got != "external text" {
		t.Fatalf("copied content = %q", got)
	}
	if got := readFile(t, src); got != "external text" {
		t.Fatalf("source modified: %q", got)
	}
}

func TestMoveFile(t *testing.T) {
	s, root := newTestStorage(t)
	src := writeExternal(t, "text.file", []byte("moving text"))

	ok, err := s.MoveFile(src, "/test3/subdir3/file3.txt")
	if !ok || err != nil {
		t.Fatalf("MoveFile = %v, %v", ok, err)
	}
	if got := readFile(t, filepath.Join(root, "test3", "subdir3", "file3.txt")); got != "moving text" {
		t.Fatalf("moved content = %q", got)
	}
	assertNotExist(t, src)
}

func TestCopyFileMissingSource(t *testing.T) {
	s, root := newTestStorage(t)
	ok, err := s.CopyFile(filepath.Join(t.TempDir(), "nope"), "dst.txt")
	if ok {
		t.Fatalf("CopyFile succeeded for a missing source")
	}
	assertReason(t, err, ReasonNotFound)
	assertNotExist(t, root)
}

func TestCopyFileInvalidDestination(t *testing.T) {
	s, _ := newTestStorage(t)
	ok, err := s.CopyFile(filepath.Join(t.TempDir(), "nope"), "../dst.txt")
	if ok {
		t.Fatalf("CopyFile succeeded")
	}
	assertValidation(t, err)
}

func TestCopyWithinStorage(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "src/a.txt", "payload")

	ok, err := s.Copy("src/a.txt", "dst/b.txt")
	if !ok || err != nil {
		t.Fatalf("Copy = %v, %v", ok, err)
	}
	for _, p := range []string{"src/a.txt", "dst/b.txt"} {
		got, err := s.GetFileContents(p, 0, 0)
		if err != nil || string(got) != "payload" {
			t.Fatalf("%s = %q, %v", p, got, err)
		}
	}
}

func TestCopyOverwritesDestination(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "a.txt", "new")
	mustPut(t, s, "b.txt", "old and longer")
	if ok, err := s.Copy("a.txt", "b.txt"); !ok {
		t.Fatalf("Copy failed: %v", err)
	}
	got, _ := s.GetFileContents("b.txt", 0, 0)
	if string(got) != "new" {
		t.Fatalf("destination = %q, want new", got)
	}
}

func TestCopyDirectorySource(t *testing.T) {
	s, _ := newTestStorage(t)
	if ok, err := s.Mkdir("dir"); !ok {
		t.Fatalf("Mkdir failed: %v", err)
	}
	ok, err := s.Copy("dir", "other")
	if ok {
		t.Fatalf("Copy of a directory succeeded")
	}
	assertReason(t, err, ReasonNotRegular)
}

func TestCopyKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	s, root := newTestStorage(t)
	src := writeExternal(t, "script.sh", []byte("#!/bin/sh\n"))
	if err := os.Chmod(src, 0o750); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if ok, err := s.CopyFile(src, "bin/script.sh"); !ok {
		t.Fatalf("CopyFile failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "bin", "script.sh"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Fatalf("mode = %v, want 0750", info.Mode().Perm())
	}
}

func TestMoveWithinStorage(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "old/name.txt", "content")

	ok, err := s.Move("old/name.txt", "new/place/name.txt")
	if !ok || err != nil {
		t.Fatalf("Move = %v, %v", ok, err)
	}
	if exists, _ := s.FileExists("old/name.txt"); exists {
		t.Fatalf("source still exists after move")
	}
	got, _ := s.GetFileContents("new/place/name.txt", 0, 0)
	if string(got) != "content" {
		t.Fatalf("moved content = %q", got)
	}
}

func TestMoveDirectory(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "tree/leaf.txt", "leaf")
	if ok, err := s.Move("tree", "moved/tree"); !ok {
		t.Fatalf("Move failed: %v", err)
	}
	got, err := s.GetFileContents("moved/tree/leaf.txt", 0, 0)
	if err != nil || string(got) != "leaf" {
		t.Fatalf("moved tree content = %q, %v", got, err)
	}
}

func TestRenameIsMove(t *testing.T) {
	s, _ := newTestStorage(t)
	mustPut(t, s, "a.txt", "x")
	if ok, err := s.Rename("a.txt", "b.txt"); !ok {
		t.Fatalf("Rename failed: %v", err)
	}
	if exists, _ := s.FileExists("a.txt"); exists {
		t.Fatalf("a.txt still exists")
	}
	if exists, _ := s.FileExists("b.txt"); !exists {
		t.Fatalf("b.txt missing")
	}
}

func TestMoveMissingSource(t *testing.T) {
	s, _ := newTestStorage(t)
	ok, err := s.Move("ghost.txt", "dst.txt")
	if ok {
		t.Fatalf("Move of a missing file succeeded")
	}
	assertReason(t, err, ReasonNotFound)
}

func TestMoveUploadedFile(t *testing.T) {
	s, root := newTestStorage(t)
	uploadDir := t.TempDir()
	s.SetUploadDir(uploadDir)

	tmp, err := os.CreateTemp(uploadDir, UploadTempPattern)
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	if _, err := tmp.WriteString("uploaded"); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	tmp.Close()

	ok, err := s.MoveUploadedFile(tmp.Name(), "uploads/photo.jpg")
	if !ok || err != nil {
		t.Fatalf("MoveUploadedFile = %v, %v", ok, err)
	}
	if got := readFile(t, filepath.Join(root, "uploads", "photo.jpg")); got != "uploaded" {
		t.Fatalf("content = %q", got)
	}
	assertNotExist(t, tmp.Name())
}

func TestMoveUploadedFileOutsideUploadDir(t *testing.T) {
	s, root := newTestStorage(t)
	s.SetUploadDir(t.TempDir())
	src := writeExternal(t, "passwd", []byte("secret"))

	ok, err := s.MoveUploadedFile(src, "stolen.txt")
	if ok {
		t.Fatalf("MoveUploadedFile accepted a file outside the upload dir")
	}
	assertReason(t, err, ReasonPermission)
	if got := readFile(t, src); got != "secret" {
		t.Fatalf("source modified: %q", got)
	}
	assertNotExist(t, root)
}
