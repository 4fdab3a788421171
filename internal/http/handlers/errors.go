package handlers

import (
	"errors"
	"net/http"

	"filestorage/internal/storage"
)

// storageError maps a failed storage call onto an HTTP response.
func (a *App) storageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
		return
	case errors.Is(err, storage.ErrInvalidPath):
		a.error(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	case errors.Is(err, storage.ErrRootNotConfigured):
		a.log(r).Error().Err(err).Msg("storage root not configured")
		a.error(w, http.StatusInternalServerError, "internal", "storage is not configured")
		return
	}

	reason := storage.ReasonOf(err)
	switch reason {
	case storage.ReasonNotFound:
		a.error(w, http.StatusNotFound, string(reason), "file not found")
	case storage.ReasonPermission:
		a.error(w, http.StatusForbidden, string(reason), "permission denied")
	case storage.ReasonExists:
		a.error(w, http.StatusConflict, string(reason), "path already exists")
	case storage.ReasonNotEmpty:
		a.error(w, http.StatusConflict, string(reason), "directory is not empty")
	case storage.ReasonNotRegular:
		a.error(w, http.StatusConflict, string(reason), "not a regular file")
	case storage.ReasonNotDir:
		a.error(w, http.StatusConflict, string(reason), "parent is not a directory")
	default:
		a.log(r).Error().Err(err).Msg("storage operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "storage operation failed")
	}
}
