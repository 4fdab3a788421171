package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultDirMode is applied to directories created by the storage unless
// SetDefaultDirMode overrides it. The process umask still applies.
const DefaultDirMode os.FileMode = 0o777

// LocalFileStorage implements FileStorage on the local filesystem. It holds no
// locks; concurrent callers touching the same paths race at the filesystem level.
type LocalFileStorage struct {
	rootPath  string
	baseURL   string
	dirMode   os.FileMode
	uploadDir string
	logger    zerolog.Logger
}

// NewLocalFileStorage returns a storage rooted at rootPath publishing files
// under baseURL. Both may be empty and set later.
func NewLocalFileStorage(rootPath, baseURL string, logger zerolog.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		rootPath:  rootPath,
		baseURL:   baseURL,
		dirMode:   DefaultDirMode,
		uploadDir: os.TempDir(),
		logger:    logger.With().Str("component", "storage").Logger(),
	}
}

func (s *LocalFileStorage) SetBaseURL(baseURL string) { s.baseURL = baseURL }

func (s *LocalFileStorage) BaseURL() string { return s.baseURL }

func (s *LocalFileStorage) SetRootPath(rootPath string) { s.rootPath = rootPath }

func (s *LocalFileStorage) RootPath() string { return s.rootPath }

func (s *LocalFileStorage) SetDefaultDirMode(mode os.FileMode) { s.dirMode = mode }

func (s *LocalFileStorage) DefaultDirMode() os.FileMode { return s.dirMode }

// SetUploadDir sets the directory MoveUploadedFile accepts sources from.
func (s *LocalFileStorage) SetUploadDir(dir string) { s.uploadDir = dir }

// UploadDir returns the directory MoveUploadedFile accepts sources from.
func (s *LocalFileStorage) UploadDir() string { return s.uploadDir }

// ensureFileDirectoryExists creates the parent directory chain of fullPath.
func (s *LocalFileStorage) ensureFileDirectoryExists(op, path, fullPath string) error {
	dir := filepath.Dir(fullPath)
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return &OpError{Op: op, Path: path, Reason: ReasonNotDir}
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return opErr(op, path, err)
	}
	if err := os.MkdirAll(dir, s.dirMode); err != nil {
		return opErr(op, path, err)
	}
	return nil
}

// failed logs the failure and hands it back as an error.
func (s *LocalFileStorage) failed(e *OpError) error {
	s.logger.Debug().
		Str("op", e.Op).
		Str("path", e.Path).
		Str("reason", string(e.Reason)).
		Err(e.Err).
		Msg("storage operation failed")
	return e
}

// failure routes an error from a helper through failed when it is an OpError.
// Validation and configuration errors pass through untouched.
func (s *LocalFileStorage) failure(err error) error {
	var e *OpError
	if errors.As(err, &e) {
		return s.failed(e)
	}
	return err
}

func (s *LocalFileStorage) done(op, path string) {
	s.logger.Debug().Str("op", op).Str("path", path).Msg("storage operation done")
}
