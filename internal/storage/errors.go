package storage

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrInvalidPath is the root of every ValidationError.
	ErrInvalidPath = errors.New("storage: invalid path")
	// ErrRootNotConfigured is returned when an operation needs the root path and none is set.
	ErrRootNotConfigured = errors.New("storage: root path is not configured")
)

// ValidationError reports a malformed logical path or argument. Operations
// returning it never touch the filesystem.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("storage: invalid path %q: %s", e.Path, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPath }

// Reason classifies why a filesystem operation failed.
type Reason string

const (
	ReasonNotFound   Reason = "not_found"
	ReasonPermission Reason = "permission_denied"
	ReasonExists     Reason = "already_exists"
	ReasonNotEmpty   Reason = "not_empty"
	ReasonNotRegular Reason = "not_regular_file"
	ReasonNotDir     Reason = "not_directory"
	ReasonIO         Reason = "io"
)

// OpError carries the cause behind a false result.
type OpError struct {
	Op     string
	Path   string
	Reason Reason
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s %s: %s", e.Op, e.Path, e.Reason)
	}
	return fmt.Sprintf("storage: %s %s: %s: %v", e.Op, e.Path, e.Reason, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// ReasonOf returns the Reason of the first OpError in err's chain, or "" if there is none.
func ReasonOf(err error) Reason {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	return ""
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, fs.ErrExist):
		return ReasonExists
	default:
		return ReasonIO
	}
}

func opErr(op, path string, err error) *OpError {
	return &OpError{Op: op, Path: path, Reason: classify(err), Err: err}
}
