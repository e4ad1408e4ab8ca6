package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/minimal-api/docs" // swagger docs
	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/middleware"
)

// NewRouter creates the HTTP router for every route in the table plus the
// documentation and metrics endpoints.
func NewRouter(routes []Route, auth *middleware.AuthMiddleware, log *logging.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	mux.Handle("GET /metrics", promhttp.Handler())

	for _, rt := range routes {
		pattern := rt.Pattern()
		mux.Handle(pattern, middleware.Instrument(pattern, auth.Require(pattern, rt.Requirement, rt.Handler)))
	}

	// Apply global middleware
	return middleware.RequestID(middleware.Logger(log)(middleware.Recoverer(log)(middleware.CORS(mux))))
}
