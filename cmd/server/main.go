package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-tyre-service/config"
	"github.com/fekuna/omnipos-tyre-service/internal/auth"
	"github.com/fekuna/omnipos-tyre-service/internal/database"
	"github.com/fekuna/omnipos-tyre-service/internal/metrics"
	"github.com/fekuna/omnipos-tyre-service/internal/server"
	"github.com/fekuna/omnipos-tyre-service/pkg/broker"
	"github.com/fekuna/omnipos-tyre-service/pkg/cache"
	"github.com/fekuna/omnipos-tyre-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/fekuna/omnipos-tyre-service/pkg/middleware"
	"github.com/fekuna/omnipos-tyre-service/pkg/search"
	"github.com/fekuna/omnipos-tyre-service/pkg/telemetry"

	"github.com/fekuna/omnipos-tyre-service/internal/sale"
	saleH "github.com/fekuna/omnipos-tyre-service/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-tyre-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-tyre-service/internal/sale/usecase"

	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	tyreH "github.com/fekuna/omnipos-tyre-service/internal/tyre/handler"
	tyreRepoPkg "github.com/fekuna/omnipos-tyre-service/internal/tyre/repository"
	tyreSearchPkg "github.com/fekuna/omnipos-tyre-service/internal/tyre/search"
	tyreUCPkg "github.com/fekuna/omnipos-tyre-service/internal/tyre/usecase"

	userH "github.com/fekuna/omnipos-tyre-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-tyre-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-tyre-service/internal/user/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceVersion = "1.0.0"

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	loc, err := cfg.Business.Location()
	if err != nil {
		appLogger.Fatal("Invalid business time zone", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	tp, err := telemetry.NewTracerProvider(ctx, &telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: serviceVersion,
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not apply schema", zap.Error(err))
		}
	}

	// 5. Initialize Repositories
	tyreRepo := tyreRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 6. Optional backends
	var tyreCache tyre.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, tyre list cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			tyreCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	var saleEvents sale.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		saleEvents = producer
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var tyreIndex tyre.SearchIndex
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err == nil {
			var idx *tyreSearchPkg.ElasticIndex
			idx, err = tyreSearchPkg.NewElasticIndex(ctx, esClient)
			if err == nil {
				tyreIndex = idx
			}
		}
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, tyre search uses SQL", zap.Error(err))
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize UseCases
	appMetrics := metrics.New()
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)

	tyreUC := tyreUCPkg.NewTyreUseCase(tyreRepo, tyreCache, tyreIndex, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, saleUCPkg.Options{
		Cache:     tyreCache,
		Publisher: saleEvents,
		Metrics:   appMetrics,
		Tracer:    tp.Tracer("github.com/fekuna/omnipos-tyre-service/internal/sale"),
		Location:  loc,
	}, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)

	if tyreIndex != nil {
		if _, err := tyreUC.RebuildSearchIndex(ctx); err != nil {
			appLogger.Warn("Search index rebuild incomplete", zap.Error(err))
		}
	}

	if cfg.Admin.Password != "" {
		if _, err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			appLogger.Fatal("Could not seed admin user", zap.Error(err))
		}
	}

	// 8. Initialize Handlers
	router := server.NewRouter(server.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		CORSOrigins: cfg.Server.CORSOrigins,
		Tokens:      tokens,
		Metrics:     appMetrics,
		Logger:      appLogger,
		Ping:        db.PingContext,
		Public: []server.RouteRegistrar{
			userH.NewUserHandler(userUC, appLogger),
		},
		Private: []server.RouteRegistrar{
			tyreH.NewTyreHandler(tyreUC, appLogger),
			saleH.NewSaleHandler(saleUC, appLogger),
		},
	})

	httpServer := &http.Server{
		Addr:         normalizePort(cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 9. Start gRPC Server (health + reflection)
	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
