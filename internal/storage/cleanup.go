package storage

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Upload temp files are named UploadTempPrefix + "*" + UploadTempSuffix.
const (
	UploadTempPrefix  = "upload-"
	UploadTempSuffix  = ".tmp"
	UploadTempPattern = UploadTempPrefix + "*" + UploadTempSuffix
)

// CleanOrphanedUploads removes regular files in dir named prefix + "*" +
// UploadTempSuffix that are older than maxAge, left behind by interrupted
// uploads. It returns how many were removed.
func CleanOrphanedUploads(dir, prefix string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, UploadTempSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
