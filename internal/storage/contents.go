package storage

import (
	"errors"
	"io"
	"os"
)

// PutFileContents writes content to path, creating missing parent
// directories, and returns the number of bytes written. flags is a
// combination of FileAppend and LockExclusive.
func (s *LocalFileStorage) PutFileContents(path string, content []byte, flags int) (int, error) {
	const op = "put_file_contents"
	full, err := s.followPath(path)
	if err != nil {
		return 0, err
	}
	if err := s.ensureFileDirectoryExists(op, path, full); err != nil {
		return 0, s.failure(err)
	}

	mode := os.O_WRONLY | os.O_CREATE
	switch {
	case flags&FileAppend != 0:
		mode |= os.O_APPEND
	case flags&LockExclusive == 0:
		mode |= os.O_TRUNC
	}
	f, err := os.OpenFile(full, mode, 0o666)
	if err != nil {
		return 0, s.failed(opErr(op, path, err))
	}
	n, err := writeContents(f, content, flags)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, s.failed(opErr(op, path, err))
	}
	s.done(op, path)
	return n, nil
}

// writeContents releases the lock before the caller closes f.
func writeContents(f *os.File, content []byte, flags int) (int, error) {
	if flags&LockExclusive != 0 {
		unlock, err := lockExclusive(f)
		if err != nil {
			return 0, err
		}
		defer unlock()
		// truncate only once the lock is held
		if flags&FileAppend == 0 {
			if err := f.Truncate(0); err != nil {
				return 0, err
			}
		}
	}
	return f.Write(content)
}

// OpenFile opens the regular file at path for reading.
func (s *LocalFileStorage) OpenFile(path string) (*os.File, error) {
	const op = "open_file"
	full, err := s.followPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, s.failed(opErr(op, path, err))
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, s.failed(opErr(op, path, err))
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, s.failed(&OpError{Op: op, Path: path, Reason: ReasonNotRegular})
	}
	return f, nil
}

// GetFileContents reads maxLen bytes of path starting at offset. A maxLen of
// zero reads to the end of the file; a negative offset counts back from the end.
func (s *LocalFileStorage) GetFileContents(path string, offset, maxLen int64) ([]byte, error) {
	const op = "get_file_contents"
	full, err := s.followPath(path)
	if err != nil {
		return nil, err
	}
	if maxLen < 0 {
		return nil, &ValidationError{Path: path, Msg: "length must be greater than or equal to zero"}
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, s.failed(opErr(op, path, err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, s.failed(opErr(op, path, err))
	}
	if !info.Mode().IsRegular() {
		return nil, s.failed(&OpError{Op: op, Path: path, Reason: ReasonNotRegular})
	}

	size := info.Size()
	if offset < 0 {
		offset = max(size+offset, 0)
	}
	if offset >= size {
		return []byte{}, nil
	}
	n := size - offset
	if maxLen > 0 && maxLen < n {
		n = maxLen
	}
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, s.failed(opErr(op, path, err))
	}
	return buf[:read], nil
}
