package handlers

import (
	"net/http"
	"os"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	info, err := os.Stat(a.Storage.RootPath())
	if err != nil || !info.IsDir() {
		a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "storage_unavailable"})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
