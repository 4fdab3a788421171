package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"filestorage/internal/middleware"
	"filestorage/internal/storage"
)

// App exposes a FileStorage over HTTP.
type App struct {
	Storage        storage.FileStorage
	Logger         zerolog.Logger
	UploadDir      string
	MaxUploadBytes int64
}

func NewApp(store storage.FileStorage, logger zerolog.Logger, uploadDir string, maxUploadBytes int64) *App {
	return &App{
		Storage:        store,
		Logger:         logger.With().Str("component", "http").Logger(),
		UploadDir:      uploadDir,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// fileURL returns the public URL of path, or nil when none is configured so
// it encodes as JSON null.
func (a *App) fileURL(path string) *string {
	u, ok := a.Storage.FileURL(path)
	if !ok {
		return nil
	}
	return &u
}

func (a *App) log(r *http.Request) *zerolog.Logger {
	l := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	return &l
}

// logicalPath is the storage path captured by a trailing "/*" route.
func logicalPath(r *http.Request) string {
	return chi.URLParam(r, "*")
}

func queryFlag(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
