// Package app wires the comparison service together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcompare/internal/catalog"
	"github.com/abgdnv/productcompare/internal/config"
	"github.com/abgdnv/productcompare/internal/events"
	"github.com/abgdnv/productcompare/internal/store"
	grpcImpl "github.com/abgdnv/productcompare/internal/transport/grpc"
	"github.com/abgdnv/productcompare/internal/transport/rest"
	"github.com/abgdnv/productcompare/internal/view"
	"github.com/abgdnv/productcompare/pkg/messaging"
	"github.com/abgdnv/productcompare/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
)

type Dependencies struct {
	Store          *store.Store
	Session        *view.Session
	Health         *grpcImpl.Health
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// SetupDependencies builds the store around a catalog client and subscribes
// the health reporter and, when publisher is non-nil, the event notifier.
func SetupDependencies(cfg *config.Config, publisher messaging.Publisher, metrics http.Handler, logger *slog.Logger) (*Dependencies, error) {
	client, err := catalog.NewClient(catalog.Config{
		Endpoint: cfg.Catalog.Endpoint,
		Timeout:  cfg.Catalog.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	var fetcher store.Fetcher = client
	if cfg.Catalog.CircuitBreaker.Enabled {
		fetcher = catalog.NewBreakerFetcher(client, cfg.Catalog.CircuitBreaker, logger)
	}

	s := store.NewStore(fetcher, logger)
	health := grpcImpl.NewHealth(logger)
	s.Subscribe(health.Listener())
	if publisher != nil {
		s.Subscribe(events.NewNotifier(publisher, cfg.NATS.Timeout, logger).Listener())
	}

	return &Dependencies{
		Store:          s,
		Session:        view.NewSession(),
		Health:         health,
		MetricsHandler: metrics,
		Logger:         logger,
	}, nil
}

// SetupHttpHandler initializes the router with the comparison routes and /metrics.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewHandler(deps.Store, deps.Session, deps.Logger).RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux, "compare-http")
}

// SetupGrpcServer initializes the gRPC server that serves readiness.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, deps.Health.Register())
}
