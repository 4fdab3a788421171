//go:build !linux && !darwin && !freebsd

package storage

import (
	"os"
	"time"
)

// statTimes falls back to the modification time where the platform stat
// structure is not available.
func statTimes(path string) (atime, ctime time.Time, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return info.ModTime(), info.ModTime(), nil
}

func canAccess(path string, write bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if write {
		return info.Mode().Perm()&0o222 != 0
	}
	return info.Mode().Perm()&0o444 != 0
}

func lockExclusive(*os.File) (func(), error) {
	return func() {}, nil
}

func isCrossDevice(error) bool { return false }
