package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"strconv"

	"filestorage/internal/storage"
)

// ServeFile answers GET and HEAD on /files/*. With offset or length query
// parameters only that slice of the file is returned.
func (a *App) ServeFile(w http.ResponseWriter, r *http.Request) {
	p := logicalPath(r)
	isFile, err := a.Storage.IsFile(p)
	if err != nil {
		a.storageError(w, r, err)
		return
	}
	if !isFile {
		a.error(w, http.StatusNotFound, string(storage.ReasonNotFound), "file not found")
		return
	}

	q := r.URL.Query()
	if q.Has("offset") || q.Has("length") {
		offset, err1 := parseInt64(q.Get("offset"))
		length, err2 := parseInt64(q.Get("length"))
		if err1 != nil || err2 != nil {
			a.error(w, http.StatusBadRequest, "invalid_range", "offset and length must be integers")
			return
		}
		content, err := a.Storage.GetFileContents(p, offset, length)
		if err != nil {
			a.storageError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(content)
		}
		return
	}

	f, err := a.Storage.OpenFile(p)
	if err != nil {
		a.storageError(w, r, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		a.storageError(w, r, err)
		return
	}
	http.ServeContent(w, r, path.Base(p), info.ModTime(), f)
}

// PutFile writes the request body to /files/*. ?append=1 appends, ?lock=1
// holds an exclusive lock for the write.
func (a *App) PutFile(w http.ResponseWriter, r *http.Request) {
	p := logicalPath(r)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read request body")
		return
	}

	existed, err := a.Storage.FileExists(p)
	if err != nil {
		a.storageError(w, r, err)
		return
	}

	flags := 0
	if queryFlag(r, "append") {
		flags |= storage.FileAppend
	}
	if queryFlag(r, "lock") {
		flags |= storage.LockExclusive
	}
	n, err := a.Storage.PutFileContents(p, body, flags)
	if err != nil {
		a.storageError(w, r, err)
		return
	}

	status := http.StatusOK
	if !existed {
		status = http.StatusCreated
	}
	a.json(w, status, map[string]any{
		"path":  p,
		"bytes": n,
		"url":   a.fileURL(p),
	})
}

// UploadFile accepts a multipart form with a "file" field and moves it to
// /files/* through the upload temp directory.
func (a *App) UploadFile(w http.ResponseWriter, r *http.Request) {
	p := logicalPath(r)
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", "upload too large")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	src, _, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer src.Close()

	tmpName, size, err := a.spool(src)
	if err != nil {
		a.log(r).Error().Err(err).Msg("failed to spool upload")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
		return
	}
	// a successful move leaves nothing to remove
	defer os.Remove(tmpName)

	ok, err := a.Storage.MoveUploadedFile(tmpName, p)
	if !ok {
		a.storageError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"path":  p,
		"bytes": size,
		"url":   a.fileURL(p),
	})
}

// spool copies src into a fresh upload temp file and returns its name.
func (a *App) spool(src io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(a.UploadDir, storage.UploadTempPattern)
	if err != nil {
		return "", 0, err
	}
	size, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}
	return tmp.Name(), size, nil
}

// DeleteFile removes /files/*; ?recursive=1 removes non-empty directories.
func (a *App) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ok, err := a.Storage.Delete(logicalPath(r), queryFlag(r, "recursive"))
	if !ok {
		a.storageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseInt64(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
