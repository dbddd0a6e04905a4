// Package grpc reports catalog readiness through the standard gRPC health service.
package grpc

import (
	"log/slog"

	"github.com/abgdnv/productcompare/internal/store"
	"github.com/abgdnv/productcompare/pkg/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CatalogService is the health service name that tracks the catalog fetch.
const CatalogService = "productcompare.v1.Catalog"

// Health is NOT_SERVING until a fetch is fulfilled and flips back to
// NOT_SERVING whenever a fetch is rejected.
type Health struct {
	server *health.Server
	logger *slog.Logger
}

func NewHealth(logger *slog.Logger) *Health {
	h := &Health{server: health.NewServer(), logger: logger.With("component", "grpc-health")}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Listener returns a store.Listener that follows fetch settles.
func (h *Health) Listener() store.Listener {
	return func(action store.Action, _ store.State) {
		switch action.Type {
		case store.ActionFetchFulfilled:
			h.set(healthpb.HealthCheckResponse_SERVING)
		case store.ActionFetchRejected:
			h.set(healthpb.HealthCheckResponse_NOT_SERVING)
		}
	}
}

// Register is a server.RegistrationFunc for the health service.
func (h *Health) Register() server.RegistrationFunc {
	return func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, h.server)
	}
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}

func (h *Health) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(CatalogService, status)
	h.logger.Debug("Health status updated", "status", status.String())
}
