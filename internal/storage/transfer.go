package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errNotUploaded = errors.New("source is not an uploaded file")

// Copy copies a stored file to another storage-relative destination.
func (s *LocalFileStorage) Copy(source, destination string) (bool, error) {
	src, err := s.normalizePath(source)
	if err != nil {
		return false, err
	}
	return s.transfer("copy", src, source, destination, false)
}

// Move renames a stored file or directory to another storage-relative destination.
func (s *LocalFileStorage) Move(source, destination string) (bool, error) {
	src, err := s.normalizePath(source)
	if err != nil {
		return false, err
	}
	return s.transfer("move", src, source, destination, true)
}

// Rename is an alias for Move.
func (s *LocalFileStorage) Rename(oldPath, newPath string) (bool, error) {
	return s.Move(oldPath, newPath)
}

// CopyFile copies an external file into the storage.
func (s *LocalFileStorage) CopyFile(filePath, destination string) (bool, error) {
	return s.transfer("copy_file", filePath, filePath, destination, false)
}

// MoveFile moves an external file into the storage.
func (s *LocalFileStorage) MoveFile(filePath, destination string) (bool, error) {
	return s.transfer("move_file", filePath, filePath, destination, true)
}

// MoveUploadedFile moves a freshly uploaded temp file into the storage. The
// source must be a regular file inside the upload directory.
func (s *LocalFileStorage) MoveUploadedFile(filePath, destination string) (bool, error) {
	const op = "move_uploaded_file"
	if _, err := s.normalizePath(destination); err != nil {
		return false, err
	}
	info, err := os.Lstat(filePath)
	if err != nil {
		return false, s.failed(opErr(op, filePath, err))
	}
	if !info.Mode().IsRegular() || !s.inUploadDir(filePath) {
		return false, s.failed(&OpError{Op: op, Path: filePath, Reason: ReasonPermission, Err: errNotUploaded})
	}
	return s.transfer(op, filePath, filePath, destination, true)
}

func (s *LocalFileStorage) inUploadDir(filePath string) bool {
	if s.uploadDir == "" {
		return false
	}
	dir, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return false
	}
	file, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// transfer checks the source, prepares the destination directory and then
// copies or renames src into place.
func (s *LocalFileStorage) transfer(op, src, source, destination string, move bool) (bool, error) {
	dst, err := s.normalizePath(destination)
	if err != nil {
		return false, err
	}
	info, err := os.Lstat(src)
	if err != nil {
		return false, s.failed(opErr(op, source, err))
	}
	// symlinks are never carried into the storage
	if info.Mode()&fs.ModeSymlink != 0 || (!move && !info.Mode().IsRegular()) {
		return false, s.failed(&OpError{Op: op, Path: source, Reason: ReasonNotRegular})
	}
	if err := s.ensureFileDirectoryExists(op, destination, dst); err != nil {
		return false, s.failure(err)
	}

	if move {
		err = moveFile(src, dst, info)
	} else {
		err = copyFile(src, dst, info.Mode().Perm())
	}
	if err != nil {
		return false, s.failed(opErr(op, destination, err))
	}
	s.done(op, destination)
	return true, nil
}

// copyFile writes src into a temp file next to dst and renames it into place.
func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// moveFile renames src to dst, falling back to copy and remove for regular
// files when they sit on another device.
func moveFile(src, dst string, info os.FileInfo) error {
	err := os.Rename(src, dst)
	if err == nil || !isCrossDevice(err) || !info.Mode().IsRegular() {
		return err
	}
	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Remove(src)
}
