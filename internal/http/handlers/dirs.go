package handlers

import "net/http"

func (a *App) MakeDir(w http.ResponseWriter, r *http.Request) {
	p := logicalPath(r)
	ok, err := a.Storage.Mkdir(p)
	if !ok {
		a.storageError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"path": p})
}

func (a *App) RemoveDir(w http.ResponseWriter, r *http.Request) {
	ok, err := a.Storage.Rmdir(logicalPath(r), queryFlag(r, "recursive"))
	if !ok {
		a.storageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
