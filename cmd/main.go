package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"baduk/internal/adapters"
	"baduk/internal/bootstrap"
	gameDelivery "baduk/internal/delivery/game"
	"baduk/internal/delivery/rpc"
	ownMiddleware "baduk/internal/middleware"
	"baduk/internal/repository"
	gameuc "baduk/internal/usecase/game"
)

const shutdownTimeout = 10 * time.Second

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.Close(context.Background())

	hub := gameDelivery.NewHub(logger)
	gameUC := initGameUseCase(ctx, logger, *cfg, databaseAdapters, hub)

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	gameDelivery.NewGameHandler(*cfg, logger, gameUC, hub).Routes(r)

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcServer := rpc.NewServer(rpc.NewGameService(*cfg, logger, gameUC))

	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Error("Failed to listen for grpc", zap.Error(err))
		return
	}

	go func() {
		logger.Infof("gRPC server is running on port %s", cfg.GrpcPort)
		if err := grpcServer.Serve(grpcListener); err != nil {
			logger.Error("gRPC server stopped", zap.Error(err))
			cancel()
		}
	}()
	go func() {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	handleShutdown(logger, httpServer, grpcServer.GracefulStop)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// initDatabaseAdapters connects only what the configuration asks for:
// redis for STORAGE=redis, mongo when MONGO_URI is set.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	result := &dataBaseAdapters{}

	if cfg.Storage == bootstrap.StorageRedis {
		redisAdapter := adapters.NewAdapterRedis(&cfg)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		result.redisAdapter = redisAdapter
	}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(&cfg)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
		result.mongoAdapter = mongoAdapter
	}

	log.Infof("Database adapters initialized, storage=%s archive=%t", cfg.Storage, result.mongoAdapter != nil)
	return result
}

func initGameUseCase(
	ctx context.Context,
	log *zap.SugaredLogger,
	cfg bootstrap.Config,
	databaseAdapters *dataBaseAdapters,
	hub *gameDelivery.Hub,
) *gameuc.GameUseCase {
	var store gameuc.GameStore = repository.NewGameMapStorage()
	if databaseAdapters.redisAdapter != nil {
		store = repository.NewGameRepository(cfg, log, databaseAdapters.redisAdapter.GetClient())
	}

	var archive gameuc.GameArchive
	if databaseAdapters.mongoAdapter != nil {
		archiveRepo := repository.NewArchiveRepository(log, databaseAdapters.mongoAdapter.Database)
		if err := archiveRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to create archive indexes", zap.Error(err))
		}
		archive = archiveRepo
	}

	return gameuc.NewGameUseCase(store, archive, hub, log)
}

func handleShutdown(log *zap.SugaredLogger, httpServer *http.Server, stopGrpc func()) {
	log.Info("Received shutdown signal")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP shutdown failed", zap.Error(err))
	}
	stopGrpc()
	log.Info("Servers stopped")
}
