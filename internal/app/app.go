// Package app wires together all dependencies and runs the storefront service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/database"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/health"
	pkgkafka "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/kafka"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/tracing"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/auth"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/catalog"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/checkout"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/config"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/event"
	handler "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/handler/http"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/media"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/remote"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/repository/postgres"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/service"
	redisstore "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store/redis"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/syncer"
)

// App holds the assembled storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	sessions       *syncer.Manager
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSample,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Redis backs the scoped collection store.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// PostgreSQL holds the admin catalog.
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.PostgresDSN()), logger)
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "storefront")

	// Kafka producer for domain events.
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	events := event.NewProducer(producer, logger)

	// Collection synchronizer. Remote persistence is optional.
	collectionTTL := time.Duration(cfg.CollectionTTL) * time.Hour
	local := redisstore.New(rdb, collectionTTL, logger)

	var cartRemote syncer.Remote[domain.CartItem]
	var wishRemote syncer.Remote[domain.WishlistItem]
	if cfg.RemoteBaseURL != "" {
		cartRemote = remote.NewCollection[domain.CartItem](cfg.RemoteBaseURL, "cart", remote.NewDefaultDoer("cart-remote", logger))
		wishRemote = remote.NewCollection[domain.WishlistItem](cfg.RemoteBaseURL, "wishlist", remote.NewDefaultDoer("wishlist-remote", logger))
		logger.Info("remote collection backend enabled", slog.String("base_url", cfg.RemoteBaseURL))
	}
	sessions := syncer.NewManager(local, cartRemote, wishRemote, logger)

	// Admin catalog services.
	products := service.NewProductService(postgres.NewProductRepository(pool), events, logger)
	taxonomy := service.NewTaxonomyService(postgres.NewCategoryRepository(pool), postgres.NewTagRepository(pool), logger)

	var uploader *media.Uploader
	if cfg.MediaUploadURL != "" {
		uploader = media.NewUploader(cfg.MediaUploadURL, cfg.MediaFolder, remote.NewDefaultDoer("media-upload", logger), logger)
		logger.Info("image host configured", slog.String("upload_url", cfg.MediaUploadURL))
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenExpiry)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(handler.RouterDeps{
		Storefront: handler.NewStorefrontHandler(products, catalog.NewPipeline(catalog.NewDemoEnricher(rand.NewSource(time.Now().UnixNano()))), logger),
		Cart:       handler.NewCartHandler(sessions, checkout.NewService(cfg.WhatsAppPhone, cfg.StoreName), events, logger),
		Wishlist:   handler.NewWishlistHandler(sessions, events, logger),
		Admin:      handler.NewAdminHandler(products, taxonomy, uploader, logger),
		Health:     healthHandler,
		Tokens:     tokens,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		pool:           pool,
		producer:       producer,
		sessions:       sessions,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Waits for in-flight remote persists before tearing down stores.
	a.sessions.Close()

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
