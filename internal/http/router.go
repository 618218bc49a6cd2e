package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"adarchive/internal/handlers"
	"adarchive/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AssetService service.AssetService
	DB           *sql.DB
	CacheDir     string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(LoggerMiddleware)
	r.Use(CORS)

	assetHandler := handlers.NewAssetHandler(deps.AssetService)
	versionHandler := handlers.NewVersionHandler(deps.AssetService)
	groupHandler := handlers.NewGroupHandler(deps.AssetService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.CacheDir)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.ServeHTTP)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.List)
			r.Post("/", assetHandler.Create)
			r.Post("/import", assetHandler.Import)
			r.Post("/bulk-update", assetHandler.BulkUpdate)
			r.Post("/bulk-delete", assetHandler.BulkDelete)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", assetHandler.Get)
				r.Patch("/", assetHandler.Update)
				r.Delete("/", assetHandler.Delete)
				r.Get("/versions", versionHandler.List)
				r.Post("/versions", versionHandler.Create)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/add", groupHandler.Add)
			r.Post("/remove", groupHandler.Remove)
			r.Post("/promote", groupHandler.Promote)
			r.Post("/bulk-add", groupHandler.BulkAdd)
		})
	})

	return r
}
