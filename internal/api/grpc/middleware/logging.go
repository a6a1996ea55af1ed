package middleware

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identitystore/internal/logger"
)

// Logging adapts the application logger to the go-grpc-middleware
// logging and recovery interceptors.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Logger returns the interceptor logger backed by slog.
func (l *Logging) Logger() logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.logger.Log(ctx, slog.Level(lvl), "gRPC: "+msg, fields...)
	})
}

func (l *Logging) options() []logging.Option {
	return []logging.Option{
		logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
	}
}

// UnaryLogging logs the start and result of every unary call.
func (l *Logging) UnaryLogging() grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(l.Logger(), l.options()...)
}

// StreamLogging logs the start and result of every stream.
func (l *Logging) StreamLogging() grpc.StreamServerInterceptor {
	return logging.StreamServerInterceptor(l.Logger(), l.options()...)
}

// UnaryRecovery turns handler panics into codes.Internal.
func (l *Logging) UnaryRecovery() grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(l.recover))
}

// StreamRecovery turns stream handler panics into codes.Internal.
func (l *Logging) StreamRecovery() grpc.StreamServerInterceptor {
	return recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(l.recover))
}

func (l *Logging) recover(ctx context.Context, p any) error {
	l.logger.ErrorContext(ctx, "gRPC: recovered from panic",
		"panic", p)
	return status.Error(codes.Internal, "internal error")
}
