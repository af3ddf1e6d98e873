package router

import (
	"context"
	"net/http"
	"os"

	fileadapter "medtimer/internal/adapters/storage/file"
	pg "medtimer/internal/adapters/storage/postgres"
	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
	"medtimer/internal/export"
	"medtimer/internal/platform/logger"
	"medtimer/internal/ports/storage"
	"medtimer/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: gateway explícito (tests). Si no viene, se resuelve por env:
	// DB_DSN ⇒ Postgres, si no DATA_FILE (default medtimer_data.json).
	Gateway storage.Gateway

	Log *logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	gw := opts.Gateway
	if gw == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			db, err := pg.Open(dsn)
			if err == nil {
				pgw := pg.NewGateway(db, log)
				if err := pgw.EnsureSchema(context.Background()); err != nil {
					log.Warn("postgres schema setup failed, falling back to file", map[string]any{"err": err.Error()})
				} else {
					gw = pgw
				}
			} else {
				log.Warn("postgres unavailable, falling back to file", map[string]any{"err": err.Error()})
			}
		}
	}
	if gw == nil {
		gw = fileadapter.NewGateway(os.Getenv("DATA_FILE"), log)
	}

	// Una sola sesión lógica para todo el proceso.
	sess := session.New(context.Background(), gw, log)

	medicines.RegisterRoutes(r, sess)
	adherence.RegisterRoutes(r, sess)
	export.RegisterRoutes(r, sess)
	session.RegisterRoutes(r, sess)

	return r
}
