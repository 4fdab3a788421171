package storage

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"
)

// lookup stats the file behind path. A missing file yields a nil FileInfo and
// a nil error.
func (s *LocalFileStorage) lookup(op, path string) (string, os.FileInfo, error) {
	full, err := s.followPath(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return full, nil, nil
	}
	if err != nil {
		return full, nil, s.failed(opErr(op, path, err))
	}
	return full, info, nil
}

// require is lookup for callers that need the file to exist.
func (s *LocalFileStorage) require(op, path string) (string, os.FileInfo, error) {
	full, info, err := s.lookup(op, path)
	if err != nil {
		return "", nil, err
	}
	if info == nil {
		return "", nil, s.failed(&OpError{Op: op, Path: path, Reason: ReasonNotFound, Err: fs.ErrNotExist})
	}
	return full, info, nil
}

func (s *LocalFileStorage) FileExists(path string) (bool, error) {
	_, info, err := s.lookup("file_exists", path)
	return info != nil, err
}

func (s *LocalFileStorage) IsFile(path string) (bool, error) {
	_, info, err := s.lookup("is_file", path)
	return info != nil && info.Mode().IsRegular(), err
}

func (s *LocalFileStorage) IsDir(path string) (bool, error) {
	_, info, err := s.lookup("is_dir", path)
	return info != nil && info.IsDir(), err
}

func (s *LocalFileStorage) IsReadable(path string) (bool, error) {
	full, info, err := s.lookup("is_readable", path)
	return info != nil && canAccess(full, false), err
}

func (s *LocalFileStorage) IsWritable(path string) (bool, error) {
	full, info, err := s.lookup("is_writable", path)
	return info != nil && canAccess(full, true), err
}

func (s *LocalFileStorage) FileSize(path string) (int64, error) {
	_, info, err := s.require("file_size", path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *LocalFileStorage) FileModificationTime(path string) (time.Time, error) {
	_, info, err := s.require("file_modification_time", path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (s *LocalFileStorage) FileAccessTime(path string) (time.Time, error) {
	atime, _, err := s.times("file_access_time", path)
	return atime, err
}

// FileCreationTime returns the inode change time, which is the closest thing
// to a creation time most Unix filesystems expose.
func (s *LocalFileStorage) FileCreationTime(path string) (time.Time, error) {
	_, ctime, err := s.times("file_creation_time", path)
	return ctime, err
}

func (s *LocalFileStorage) times(op, path string) (time.Time, time.Time, error) {
	full, _, err := s.require(op, path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	atime, ctime, err := statTimes(full)
	if err != nil {
		return time.Time{}, time.Time{}, s.failed(opErr(op, path, err))
	}
	return atime, ctime, nil
}

// FileURL joins the base URL and path. ok is false when no base URL is set.
// The path is not escaped.
func (s *LocalFileStorage) FileURL(path string) (string, bool) {
	if s.baseURL == "" {
		return "", false
	}
	return s.baseURL + "/" + strings.TrimLeft(path, " /"), true
}
