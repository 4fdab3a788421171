package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Delete removes the file or directory at path. A missing path counts as
// deleted. A non-empty directory is only removed when recursive is set.
// Symlinks are unlinked, never followed.
func (s *LocalFileStorage) Delete(path string, recursive bool) (bool, error) {
	const op = "delete"
	full, err := s.normalizePath(path)
	if err != nil {
		return false, err
	}

	info, err := os.Lstat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, s.failed(opErr(op, path, err))
	}

	if !info.IsDir() {
		if err := os.Remove(full); err != nil {
			return false, s.failed(opErr(op, path, err))
		}
		s.done(op, path)
		return true, nil
	}

	empty, err := isDirEmpty(full)
	if err != nil {
		return false, s.failed(opErr(op, path, err))
	}
	switch {
	case !empty && !recursive:
		return false, s.failed(&OpError{Op: op, Path: path, Reason: ReasonNotEmpty})
	case !empty:
		err = removeTree(full)
	default:
		err = os.Remove(full)
	}
	if err != nil {
		return false, s.failed(opErr(op, path, err))
	}
	s.done(op, path)
	return true, nil
}

// Rmdir is an alias for Delete.
func (s *LocalFileStorage) Rmdir(path string, recursive bool) (bool, error) {
	return s.Delete(path, recursive)
}

// Mkdir creates the directory chain for path. It fails if anything already
// exists at path.
func (s *LocalFileStorage) Mkdir(path string) (bool, error) {
	const op = "mkdir"
	full, err := s.normalizePath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Lstat(full)
	switch {
	case err == nil:
		return false, s.failed(&OpError{Op: op, Path: path, Reason: ReasonExists, Err: fs.ErrExist})
	case !errors.Is(err, fs.ErrNotExist):
		return false, s.failed(opErr(op, path, err))
	}
	if err := os.MkdirAll(full, s.dirMode); err != nil {
		return false, s.failed(opErr(op, path, err))
	}
	s.done(op, path)
	return true, nil
}

func isDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// removeTree deletes dir and everything below it depth-first. Each directory
// handle is closed before descending into its children.
func removeTree(dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := removeTree(full); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.Remove(dir)
}

func readDir(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}
