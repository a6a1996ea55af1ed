package router

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/identitystore/internal/api/grpc/health"
	"github.com/dtroode/identitystore/internal/api/grpc/middleware"
	"github.com/dtroode/identitystore/internal/logger"
)

// Router represents the gRPC surface of the identity store daemon.
// It manages service registration and middleware configuration.
type Router struct {
	checker *health.Checker
	logger  *logger.Logger
}

// New creates new gRPC Router instance.
func New(checker *health.Checker, logger *logger.Logger) *Router {
	return &Router{
		checker: checker,
		logger:  logger,
	}
}

// Register builds a gRPC server with tracing, logging and panic recovery, and
// registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.UnaryLogging(),
			logging.UnaryRecovery(),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamLogging(),
			logging.StreamRecovery(),
		),
	)

	healthpb.RegisterHealthServer(s, r.checker.Server())
	reflection.Register(s)

	return s
}
