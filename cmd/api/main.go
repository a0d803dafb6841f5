package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alumnihub/alumnihub-api/config"
	"github.com/alumnihub/alumnihub-api/internal/cache"
	"github.com/alumnihub/alumnihub-api/internal/handlers"
	"github.com/alumnihub/alumnihub-api/internal/middleware"
	"github.com/alumnihub/alumnihub-api/internal/notifications"
	"github.com/alumnihub/alumnihub-api/internal/repository"
	"github.com/alumnihub/alumnihub-api/internal/services"
	"github.com/alumnihub/alumnihub-api/pkg/db"
	"github.com/alumnihub/alumnihub-api/pkg/httpclient"
	"github.com/alumnihub/alumnihub-api/pkg/jwt"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/alumnihub/alumnihub-api/pkg/profiling"
	"github.com/alumnihub/alumnihub-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const webhookTimeout = 10 * time.Second

// backend bundles the persistence pieces selected at startup
type backend struct {
	store         repository.Store
	notifications repository.NotificationStore
	profiles      repository.ProfileSource
	close         func()
}

// openBackend returns the in-memory store in offline mode and PostgreSQL otherwise
func openBackend(cfg *config.Config) (*backend, error) {
	if cfg.Database.WorkOffline {
		logger.Warn("Running in offline mode: data lives in memory and is lost on restart")
		mem := repository.NewMemoryStore()
		return &backend{store: mem, notifications: mem, profiles: mem, close: func() {}}, nil
	}

	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:           cfg.Database.URL,
		MaxConns:      cfg.Database.MaxConns,
		MinConns:      cfg.Database.MinConns,
		CACertPath:    cfg.Database.CACertPath,
		TLSServerName: cfg.Database.TLSServerName,
	})
	if err != nil {
		return nil, err
	}

	store := repository.NewPostgresStore(pool)
	return &backend{
		store:         store,
		notifications: store,
		profiles:      repository.NewProfileRepository(pool),
		close:         func() { db.Close(pool) },
	}, nil
}

// notificationPipeline always records notifications in the store and additionally
// forwards them to the webhook and Kafka sinks when those are configured
type notificationPipeline struct {
	sink    *notifications.Fanout
	webhook *notifications.WebhookSink
	kafka   *notifications.KafkaSink
}

func newNotificationPipeline(cfg config.NotificationsConfig, store repository.NotificationStore) *notificationPipeline {
	p := &notificationPipeline{}

	if cfg.WebhookURL != "" {
		p.webhook = notifications.NewWebhookSink(cfg.WebhookURL, cfg.WebhookSecret, httpclient.NewStandardClient(webhookTimeout))
		logger.Info("Webhook notifications enabled")
	}
	if len(cfg.KafkaBrokers) > 0 {
		p.kafka = notifications.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("Kafka notifications enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	sinks := []notifications.Sink{notifications.NewStoreSink(store)}
	if p.webhook != nil {
		sinks = append(sinks, p.webhook)
	}
	if p.kafka != nil {
		sinks = append(sinks, p.kafka)
	}
	p.sink = notifications.NewFanout(sinks...)
	return p
}

// Close flushes in-flight webhook deliveries and closes the Kafka writer
func (p *notificationPipeline) Close() {
	if p.webhook != nil {
		p.webhook.Wait()
	}
	if p.kafka != nil {
		if err := p.kafka.Close(); err != nil {
			logger.Error("Failed to close Kafka writer", zap.Error(err))
		}
	}
}

// registerAPIRoutes registers the authenticated mentorship API
func registerAPIRoutes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	tokenManager *jwt.TokenManager,
	userRateLimiter *middleware.RateLimiter,
	mentorshipHandler *handlers.MentorshipHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	v1.Use(
		middleware.UserSessionMiddleware(tokenManager, cfg.Session.CookieName),
		userRateLimiter.Middleware(),
		middleware.BodySizeLimitMiddleware(64*1024),
	)

	mentorshipHandler.RegisterRoutes(v1)
	v1.GET("/notifications", notificationHandler.ListNotifications)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting AlumniHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.Bool("offline", cfg.Database.WorkOffline),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// Migrations run separately: ./migrate or docker-compose run migrate
	be, err := openBackend(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer be.close()

	profileCache := cache.NewProfileCache(be.profiles, cfg.Cache.ProfileTTLSeconds)
	pipeline := newNotificationPipeline(cfg.Notifications, be.notifications)
	defer pipeline.Close()

	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, 0)

	mentorshipService := services.NewMentorshipService(be.store, profileCache, pipeline.sink)
	notificationService := services.NewNotificationService(be.notifications)

	mentorshipHandler := handlers.NewMentorshipHandler(mentorshipService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	healthHandler := handlers.NewHealthHandler(be.store.Ping)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}))

	opsRateLimiter := middleware.NewRateLimiter(50, 100)
	userRateLimiter := middleware.NewRateLimiter(20, 40)
	defer opsRateLimiter.Stop()
	defer userRateLimiter.Stop()

	api := router.Group("/api")
	api.GET("/healthcheck", opsRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", opsRateLimiter.Middleware(), middleware.MetricsAuthMiddleware(cfg.Observability.MetricsAuthToken), gin.WrapH(promhttp.Handler()))

	registerAPIRoutes(router.Group("/api/v1"), cfg, tokenManager, userRateLimiter, mentorshipHandler, notificationHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
