//go:build linux || darwin || freebsd

package storage

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// statTimes returns the access and inode change times of path.
func statTimes(path string) (atime, ctime time.Time, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, time.Time{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return time.Unix(st.Atim.Unix()), time.Unix(st.Ctim.Unix()), nil
}

func canAccess(path string, write bool) bool {
	mode := uint32(unix.R_OK)
	if write {
		mode = unix.W_OK
	}
	return unix.Access(path, mode) == nil
}

// lockExclusive takes an advisory flock on f. The lock is released by the
// returned func or when f is closed.
func lockExclusive(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return nil, &os.PathError{Op: "flock", Path: f.Name(), Err: err}
	}
	return func() { _ = unix.Flock(fd, unix.LOCK_UN) }, nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
