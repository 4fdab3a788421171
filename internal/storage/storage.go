// Package storage maps storage-relative logical paths onto a directory on the
// local disk and exposes copy, move, delete, mkdir and stat style operations
// confined beneath that directory.
//
// A logical path is a slash-separated list of segments made of ASCII word
// characters with optional interior dots, so "file.txt", "a.b/c" and
// "backups/archive.tar.gz" are all accepted. Empty segments collapse, while
// "." and ".." segments, the empty path and "/" are rejected. Symlinks below
// the root are followed only while their target stays inside the root; Delete
// removes a symlink itself and never its target.
//
// Boolean operations keep a sentinel contract: the bool is false whenever the
// operation failed. The accompanying error says why. A *ValidationError means
// the path was rejected before the filesystem was touched; an *OpError wraps
// the failing filesystem call and carries a Reason.
package storage

import (
	"os"
	"time"
)

// Flags accepted by PutFileContents.
const (
	// FileAppend appends to an existing file instead of truncating it.
	FileAppend = 1 << iota
	// LockExclusive holds an exclusive advisory lock on the file while writing.
	LockExclusive
)

// FileStorage abstracts file persistence beneath a root directory.
type FileStorage interface {
	FileURL(path string) (string, bool)
	SetBaseURL(baseURL string)
	BaseURL() string
	SetRootPath(rootPath string)
	RootPath() string
	SetDefaultDirMode(mode os.FileMode)
	DefaultDirMode() os.FileMode

	// Copy and Move treat both paths as storage-relative.
	Copy(source, destination string) (bool, error)
	Move(source, destination string) (bool, error)
	// CopyFile, MoveFile and MoveUploadedFile take an external absolute source
	// and a storage-relative destination.
	CopyFile(filePath, destination string) (bool, error)
	MoveFile(filePath, destination string) (bool, error)
	MoveUploadedFile(filePath, destination string) (bool, error)

	PutFileContents(path string, content []byte, flags int) (int, error)
	GetFileContents(path string, offset, maxLen int64) ([]byte, error)
	// OpenFile opens a stored regular file for reading. The caller closes it.
	OpenFile(path string) (*os.File, error)

	Delete(path string, recursive bool) (bool, error)
	Mkdir(path string) (bool, error)
	Rmdir(path string, recursive bool) (bool, error)
	Rename(oldPath, newPath string) (bool, error)

	FileExists(path string) (bool, error)
	IsFile(path string) (bool, error)
	IsDir(path string) (bool, error)
	IsReadable(path string) (bool, error)
	IsWritable(path string) (bool, error)

	FileSize(path string) (int64, error)
	FileAccessTime(path string) (time.Time, error)
	FileCreationTime(path string) (time.Time, error)
	FileModificationTime(path string) (time.Time, error)
}

var _ FileStorage = (*LocalFileStorage)(nil)
