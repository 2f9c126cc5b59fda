package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpDelivery "github.com/tair/user-service/internal/user/delivery/http"
	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/kafka"
	"github.com/tair/user-service/pkg/config"
	"github.com/tair/user-service/pkg/database"
	"github.com/tair/user-service/pkg/logger"
	"github.com/tair/user-service/pkg/tracing"
)

const serviceName = "user-service"

func main() {
	cfg := config.Load()

	logger.Init(serviceName, cfg.Environment == "development")
	logger.SetLevel(cfg.LogLevel)

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	repo, sqlDB, err := buildRepository(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize repository")
	}
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	repo = repository.NewTracingUserRepository(repo)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		repo = repository.NewCachedUserRepository(repo, rdb, 5*time.Minute)
		logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis cache enabled")
	}

	var events *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		events, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, lifecycle events disabled")
		} else {
			defer events.Close()
		}
	}

	handler := httpDelivery.NewUserHandler(repo, events, prometheus.DefaultRegisterer)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(c.Handler(router), serviceName),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("backend", cfg.RepoBackend).
			Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := tracing.Shutdown(ctx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

// buildRepository selects the store backend. The returned *sql.DB is nil for
// the in-memory backend and is used for health checks otherwise.
func buildRepository(cfg *config.Config) (domain.UserRepository, *sql.DB, error) {
	switch cfg.RepoBackend {
	case config.BackendMemory:
		return repository.NewMemoryUserRepository(), nil, nil

	case config.BackendPostgres:
		db, err := database.NewPostgresConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresUserRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return nil, nil, err
		}
		return repo, db, nil

	default:
		db, err := database.NewGormConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewGormUserRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repo, sqlDB, nil
	}
}
