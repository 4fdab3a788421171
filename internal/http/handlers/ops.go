package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type transferRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Transfer handles POST /ops/{op} for copy, move and rename between storage paths.
func (a *App) Transfer(w http.ResponseWriter, r *http.Request) {
	var fn func(string, string) (bool, error)
	switch chi.URLParam(r, "op") {
	case "copy":
		fn = a.Storage.Copy
	case "move":
		fn = a.Storage.Move
	case "rename":
		fn = a.Storage.Rename
	default:
		a.error(w, http.StatusNotFound, "unknown_operation", "supported operations: copy, move, rename")
		return
	}

	var req transferRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Source == "" || req.Destination == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "source and destination are required")
		return
	}

	ok, err := fn(req.Source, req.Destination)
	if !ok {
		a.storageError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"source":      req.Source,
		"destination": req.Destination,
		"url":         a.fileURL(req.Destination),
	})
}
