package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/identitystore/internal/logger"
	"github.com/dtroode/identitystore/internal/model"
)

// ServiceName is the health service name reported for the user store.
const ServiceName = "identitystore.UserStore"

// Checker publishes backend reachability through the standard gRPC health
// service. Both the overall status and ServiceName follow the last ping.
type Checker struct {
	server   *health.Server
	backend  model.Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

// NewChecker creates a checker polling backend every interval.
func NewChecker(backend model.Pinger, interval time.Duration, logger *logger.Logger) *Checker {
	timeout := interval / 2
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &Checker{
		server:   health.NewServer(),
		backend:  backend,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Server returns the health service to register on a gRPC server.
func (c *Checker) Server() healthpb.HealthServer {
	return c.server
}

// Check pings the backend once and updates the published status.
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.backend.Ping(ctx); err != nil {
		c.logger.Warn("Health: backend ping failed",
			"error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run checks immediately and then on every tick until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING for every service and ignores later updates.
func (c *Checker) Shutdown() {
	c.server.Shutdown()
}
