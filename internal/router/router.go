package router

import (
	"context"
	"net/http"
	"time"

	"inventory-dashboard/internal/handler"
	"inventory-dashboard/internal/middleware"

	"github.com/rs/zerolog"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the handlers served by the router.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, store Pinger, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Dashboard
	mux.HandleFunc("GET /{$}", h.Dashboard.Show)
	mux.HandleFunc("POST /categories", h.Dashboard.AddCategory)
	mux.HandleFunc("POST /categories/{id}/delete", h.Dashboard.DeleteCategory)
	mux.HandleFunc("POST /products", h.Dashboard.AddProduct)
	mux.HandleFunc("POST /products/{id}/delete", h.Dashboard.DeleteProduct)
	mux.HandleFunc("POST /snapshots", h.Dashboard.SaveSnapshot)
	mux.HandleFunc("GET /export.csv", h.Dashboard.ExportCSV)

	// JSON API
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("POST /api/categories", h.Category.Create)
	mux.HandleFunc("DELETE /api/categories/{id}", h.Category.Delete)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("POST /api/products", h.Product.Create)
	mux.HandleFunc("DELETE /api/products/{id}", h.Product.Delete)
	mux.HandleFunc("GET /api/summary", h.Product.Summary)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
