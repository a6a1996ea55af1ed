package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/identitystore/internal/api/grpc/health"
	"github.com/dtroode/identitystore/internal/api/grpc/router"
	grpcServer "github.com/dtroode/identitystore/internal/api/grpc/server"
	"github.com/dtroode/identitystore/internal/config"
	"github.com/dtroode/identitystore/internal/logger"
	"github.com/dtroode/identitystore/internal/model"
	"github.com/dtroode/identitystore/internal/repository/mongodb"
	"github.com/dtroode/identitystore/internal/repository/postgres"
	"github.com/dtroode/identitystore/internal/server"
	"github.com/dtroode/identitystore/internal/service"
	storage "github.com/dtroode/identitystore/internal/storage/minio"
	"github.com/dtroode/identitystore/internal/telemetry"
	"github.com/dtroode/identitystore/internal/validation"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// backend is an opened document collection with its reachability probe.
type backend struct {
	collection model.DocumentCollection
	pinger     model.Pinger
	close      func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "backend", cfg.Store.Backend, "error", err)
	}
	logger.Info("storage initialized", "address", b.collection.Address())

	entityType := model.EntityType{Field: cfg.Store.EntityField, Value: cfg.Store.EntityValue}
	userStore := service.NewUserStore(telemetry.WrapCollection(b.collection), entityType, logger)

	passwordValidator, userValidator, err := newValidators(cfg, userStore)
	if err != nil {
		logger.Fatal("failed to initialize validators", "error", err)
	}

	if cfg.Bootstrap.UserName != "" {
		bootstrap := service.NewBootstrap(userStore, userValidator, passwordValidator, logger, cfg.Bootstrap.BcryptCost)
		_, err := bootstrap.Ensure(ctx, service.BootstrapAccount{
			UserName: cfg.Bootstrap.UserName,
			Email:    cfg.Bootstrap.Email,
			Password: cfg.Bootstrap.Password,
			Roles:    cfg.Bootstrap.Roles,
		})
		if err != nil {
			logger.Fatal("failed to bootstrap account", "error", err)
		}
	}

	checker := health.NewChecker(b.pinger, cfg.GRPC.HealthInterval, logger)
	grpcServer := registerGRPCServer(checker, logger, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer

	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		checker.Run(ctx)
	}()
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	checker.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GRPC.ShutdownTimeout)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()

	if err := userStore.Close(); err != nil {
		logger.Error("error closing user store", "error", err)
	}
	if err := b.close(shutdownCtx); err != nil {
		logger.Error("error closing storage", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error flushing traces", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		coll, err := conn.Collection(ctx, cfg.Store.Collection)
		if err != nil {
			_ = conn.Close(ctx)
			return nil, err
		}
		return &backend{collection: coll, pinger: conn, close: conn.Close}, nil

	case config.BackendMinio:
		client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		coll, err := storage.NewClient(ctx, client, cfg.Storage.Bucket, cfg.Store.Collection)
		if err != nil {
			return nil, err
		}
		return &backend{collection: coll, pinger: coll, close: func(context.Context) error { return nil }}, nil

	default:
		conn, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		coll := postgres.NewDocumentRepository(conn.DB, cfg.Store.Collection)
		return &backend{collection: coll, pinger: conn, close: func(context.Context) error { return conn.Close() }}, nil
	}
}

func newValidators(cfg *config.Config, finder validation.UserFinder) (*validation.PasswordValidator, *validation.UserValidator, error) {
	tags, err := validation.ParseLocale(cfg.Messages.Locale)
	if err != nil {
		return nil, nil, err
	}
	messages, err := validation.MessagesFor(tags...).With(cfg.Messages.Overrides)
	if err != nil {
		return nil, nil, err
	}

	passwords := validation.NewPasswordValidator(messages)
	passwords.RequiredLength = cfg.Password.RequiredLength
	passwords.RequireNonLetterOrDigit = cfg.Password.RequireNonLetterOrDigit
	passwords.RequireDigit = cfg.Password.RequireDigit
	passwords.RequireLowercase = cfg.Password.RequireLowercase
	passwords.RequireUppercase = cfg.Password.RequireUppercase

	users := validation.NewUserValidator(finder, messages)
	users.AllowOnlyAlphanumericUserNames = cfg.User.AllowOnlyAlphanumericUserNames
	users.RequireUniqueEmail = cfg.User.RequireUniqueEmail

	return passwords, users, nil
}

func registerGRPCServer(
	checker *health.Checker,
	logger *logger.Logger,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(checker, logger)
	s := r.Register()

	return grpcServer.NewGRPCServer(s, addr)
}
