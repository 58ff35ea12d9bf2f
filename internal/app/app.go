package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/pizzeria-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/pizzeria-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/pizzeria-backend/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/pizzeria-backend/internal/repository/minio"
	"github.com/DRSN-tech/pizzeria-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/pizzeria-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pizzeria-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/pizzeria-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/clients"
	"github.com/DRSN-tech/pizzeria-backend/pkg/closer"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/DRSN-tech/pizzeria-backend/pkg/metrics"
	"github.com/DRSN-tech/pizzeria-backend/pkg/postgres"
	"github.com/DRSN-tech/pizzeria-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout      = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
	forcedCloseTimeout  = 3 * time.Second
	topicEnsureTimeout  = 10 * time.Second
	redisPingTimeout    = 5 * time.Second
	minioStartupTimeout = 10 * time.Second
)

// App держит запущенные компоненты сервиса и порядок их остановки.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
}

// NewApp подключается к хранилищам и собирает слои. Уже открытые ресурсы
// закрываются, если один из шагов завершился ошибкой.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(forcedCloseTimeout),
	}
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if closeErr := a.closer.Close(ctx); closeErr != nil {
				log.Warnf("cleanup after failed start: %v", closeErr)
			}
		}
	}()

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, err
	}
	a.closer.AddSimple("postgres", func() error {
		db.Close()
		return nil
	})

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, err
	}
	a.closer.AddSimple("redis", redisClient.Close)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), minioStartupTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Репозитории
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	settingsRepo := pgdb.NewSettingsRepo(db.Pool)
	orderRepo := pgdb.NewOrderRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverterImpl{}, cfg.Redis, log)
	cartRepo := redis.NewCartRepo(redisClient, redisConv.CartConverterImpl{}, cfg.Redis)
	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	// Инфраструктура
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio.PresignTTL)
	serverMetrics := metrics.NewServerMetrics(nil)

	producer := kafka.NewProducer(log, cfg.Kafka)
	a.closer.AddSimple("kafka producer", producer.Close)
	topicCtx, topicCancel := context.WithTimeout(context.Background(), topicEnsureTimeout)
	defer topicCancel()
	if err := producer.EnsureTopic(topicCtx); err != nil {
		log.Errorf(err, "failed to ensure kafka topic %s", cfg.Kafka.Topic)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Сценарии
	productUC := usecase.NewProductUC(productRepo, categoryRepo, cacheRepo, imagesInfra, log)
	cartUC := usecase.NewCartUC(cartRepo, productUC, domain.NewComposer(uuid.NewString), log)
	availabilityUC := usecase.NewAvailabilityUC(settingsRepo, time.Now, cfg.Shop.Location, serverMetrics, log)
	orderUC := usecase.NewOrderUC(
		cartRepo,
		orderRepo,
		productRepo,
		cacheRepo,
		outboxRepo,
		tr.NewManager(db.Pool),
		availabilityUC,
		kafka.NewEventEncoder(),
		time.Now,
		serverMetrics,
		cfg.Shop.ContactNumber,
		log,
	)

	a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, cfg.Kafka.OutboxBatchSize, db.Dsn)
	a.closer.Add("outbox worker", a.worker.Stop)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices(productUC)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log).Init(productUC, cartUC, availabilityUC, orderUC, serverMetrics, cfg.Http.AdminToken)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	if cfg.Http.AdminToken == "" {
		log.Warnf("ADMIN_TOKEN is empty, /api/v1/admin is not protected")
	}

	return a, nil
}

// Run запускает серверы и воркер outbox и блокируется до сигнала остановки
// или фатальной ошибки одного из серверов.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	a.worker.Start(workerCtx)

	errCh := make(chan error, 2)

	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			errCh <- err
		}
	}()

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error, shutting down")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func initRedis(cfg *config.Config) (*clients.RedisClient, error) {
	client := clients.NewRedisClient(cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}
