package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"filestorage/internal/http/handlers"
	"filestorage/internal/middleware"
)

// Options tunes the middleware stack around the handlers.
type Options struct {
	Logger             zerolog.Logger
	CORSAllowedOrigins []string
	// RateLimitPerMin caps mutating requests per client IP; zero disables it.
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))

	// Health
	r.Get("/v1/healthz", app.Health)

	// Reads
	r.Get("/files/*", app.ServeFile)
	r.Head("/files/*", app.ServeFile)
	r.Get("/stat/*", app.Stat)

	// Writes
	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		}
		r.Put("/files/*", app.PutFile)
		r.Post("/files/*", app.UploadFile)
		r.Delete("/files/*", app.DeleteFile)
		r.Post("/dirs/*", app.MakeDir)
		r.Delete("/dirs/*", app.RemoveDir)
		r.Post("/ops/{op}", app.Transfer)
	})

	return r
}
