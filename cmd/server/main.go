package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/ecrin-rms/rmsbe/config"
	"github.com/ecrin-rms/rmsbe/internal/handlers"
	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/internal/services/stats"
	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/events"
	"github.com/ecrin-rms/rmsbe/pkg/health"
	"github.com/ecrin-rms/rmsbe/pkg/middleware"
	"github.com/ecrin-rms/rmsbe/pkg/startup"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Service exited with error")
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func run(cfg *config.Config, logger ectologger.Logger) error {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		sqlDB       *sqlx.DB
		redisClient *redis.Client
		producer    *events.Producer
	)

	if cfg.OTLPEnabled {
		shutdown, err := initTracing(rootCtx, cfg)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)

	boot.AddDependency(&dependency{
		name: "database",
		start: func(ctx context.Context) error {
			db, err := sqlx.ConnectContext(ctx, cfg.DatabaseDriver, cfg.ConnectionString())
			if err != nil {
				return err
			}
			db.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
			db.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
			db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)
			sqlDB = db

			driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
			if err != nil {
				return err
			}
			migrations := database.NewMigrationService(logger, &database.MigrationConfig{
				MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
				Version:             uint(cfg.DatabaseMigrationVersion),
				Force:               cfg.DatabaseMigrationForce,
				AutoRollback:        cfg.DatabaseMigrationAutoRollback,
			})
			return migrations.Migrate(cfg.DatabaseName, driver)
		},
		stop: func(ctx context.Context) error {
			if sqlDB == nil {
				return nil
			}
			return sqlDB.Close()
		},
	})

	if cfg.RedisCacheEnabled {
		boot.AddDependency(&dependency{
			name: "redis",
			start: func(ctx context.Context) error {
				redisClient = redis.NewClient(&redis.Options{
					Addr:     cfg.RedisAddr(),
					Password: cfg.RedisPassword,
					DB:       cfg.RedisDB,
				})
				return redisClient.Ping(ctx).Err()
			},
			stop: func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				return redisClient.Close()
			},
		})
	}

	if cfg.KafkaEventsEnabled {
		boot.AddDependency(&dependency{
			name: "kafka",
			start: func(ctx context.Context) error {
				producer = events.NewProducer(events.ProducerConfig{
					Brokers:      cfg.KafkaBrokers,
					Topic:        cfg.KafkaEventsTopic,
					BatchSize:    cfg.KafkaBatchSize,
					BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
					RequiredAcks: cfg.KafkaRequiredAcks,
					Compression:  cfg.KafkaCompression,
				}, logger)
				return nil
			},
			stop: func(ctx context.Context) error {
				if producer == nil {
					return nil
				}
				return producer.Close()
			},
		})
	}

	if err := boot.Start(rootCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		_ = boot.Stop(stopCtx)
	}()

	e := buildServer(cfg, logger, sqlDB, redisClient, producer)
	checker := health.NewChecker(sqlDB, redisClient, version)
	checker.RegisterRoutes(e.Group("/health"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           e,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Infof("Starting %s on port %d", cfg.AppName, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	checker.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	checker.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// buildServer assembles the echo instance, repositories and route handlers.
func buildServer(cfg *config.Config, logger ectologger.Logger, sqlDB *sqlx.DB, redisClient *redis.Client, producer *events.Producer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(echomw.Recover())
	if cfg.OTLPEnabled {
		e.Use(otelecho.Middleware(cfg.AppName))
	}
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	db := database.NewDatabaseInstance(sqlDB, logger)

	dtpRepo := repositories.NewDtpRepository(db, logger)
	dupRepo := repositories.NewDupRepository(db, logger)
	objectRepo := repositories.NewObjectRepository(db, logger)
	refDataRepo := repositories.NewRefDataRepository(db, logger)
	lookupRepo := repositories.NewLookupRepository(db, logger, redisClient, cfg.RedisCacheTTL)

	emitter := events.NewEmitter(producer, logger)
	statsService := stats.NewService(dtpRepo, dupRepo, objectRepo, lookupRepo, logger)

	api := e.Group("/api")
	handlers.NewDtpHandler(dtpRepo, emitter, logger).RegisterRoutes(api)
	handlers.NewDupHandler(dupRepo, emitter, logger).RegisterRoutes(api)
	handlers.NewObjectHandler(objectRepo, emitter, logger).RegisterRoutes(api)
	handlers.NewRefDataHandler(refDataRepo, logger).RegisterRoutes(api)
	handlers.NewLookupHandler(lookupRepo, logger).RegisterRoutes(api)
	handlers.NewStatsHandler(statsService, logger).RegisterRoutes(api)

	return e
}

// initTracing configures the OTLP trace exporter and registers the global
// tracer. The returned function flushes and shuts the provider down.
func initTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.AppName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	return provider.Shutdown, nil
}

// dependency adapts start/stop closures to the startup interface.
type dependency struct {
	name      string
	dependsOn []string
	start     func(ctx context.Context) error
	stop      func(ctx context.Context) error
}

func (d *dependency) GetName() string     { return d.name }
func (d *dependency) DependsOn() []string { return d.dependsOn }

func (d *dependency) Start(ctx context.Context) error {
	return d.start(ctx)
}

func (d *dependency) Stop(ctx context.Context) error {
	return d.stop(ctx)
}
