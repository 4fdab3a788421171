package handlers

import (
	"net/http"
	"time"
)

type statResponse struct {
	Path       string     `json:"path"`
	Exists     bool       `json:"exists"`
	IsFile     bool       `json:"is_file"`
	IsDir      bool       `json:"is_dir"`
	Readable   bool       `json:"readable"`
	Writable   bool       `json:"writable"`
	Size       *int64     `json:"size,omitempty"`
	AccessedAt *time.Time `json:"accessed_at,omitempty"`
	ChangedAt  *time.Time `json:"changed_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	URL        *string    `json:"url"`
}

// Stat reports metadata for /stat/*. A missing path is a 200 with exists=false.
func (a *App) Stat(w http.ResponseWriter, r *http.Request) {
	p := logicalPath(r)
	resp := statResponse{Path: p, URL: a.fileURL(p)}

	var err error
	if resp.Exists, err = a.Storage.FileExists(p); err != nil {
		a.storageError(w, r, err)
		return
	}
	if !resp.Exists {
		a.json(w, http.StatusOK, resp)
		return
	}

	for _, q := range []struct {
		dst *bool
		fn  func(string) (bool, error)
	}{
		{&resp.IsFile, a.Storage.IsFile},
		{&resp.IsDir, a.Storage.IsDir},
		{&resp.Readable, a.Storage.IsReadable},
		{&resp.Writable, a.Storage.IsWritable},
	} {
		if *q.dst, err = q.fn(p); err != nil {
			a.storageError(w, r, err)
			return
		}
	}

	size, err := a.Storage.FileSize(p)
	if err != nil {
		a.storageError(w, r, err)
		return
	}
	resp.Size = &size

	for _, q := range []struct {
		dst **time.Time
		fn  func(string) (time.Time, error)
	}{
		{&resp.AccessedAt, a.Storage.FileAccessTime},
		{&resp.ChangedAt, a.Storage.FileCreationTime},
		{&resp.ModifiedAt, a.Storage.FileModificationTime},
	} {
		ts, err := q.fn(p)
		if err != nil {
			a.storageError(w, r, err)
			return
		}
		ts = ts.UTC()
		*q.dst = &ts
	}

	a.json(w, http.StatusOK, resp)
}
