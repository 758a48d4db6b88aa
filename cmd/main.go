package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/events"
	"github.com/shenikar/safezone_notifier/internal/geo"
	"github.com/shenikar/safezone_notifier/internal/geocoding"
	v1 "github.com/shenikar/safezone_notifier/internal/handler/http/v1"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/shenikar/safezone_notifier/internal/repository"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/shenikar/safezone_notifier/internal/webhook"
	"github.com/shenikar/safezone_notifier/pkg/logger"
	"github.com/shenikar/safezone_notifier/pkg/postgres"
	redisclient "github.com/shenikar/safezone_notifier/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/safezone_notifier/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SafeZone Notifier API
// @version 1.0
// @description Community incident reports and geo-proximity subscriber notifications.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("Database migrations applied successfully")

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	matcher, err := geo.NewMatcher(cfg.NotifierMatcher)
	if err != nil {
		log.Fatalf("Failed to create matcher: %v", err)
	}

	// Обратное геокодирование адресов для событий
	var geocoder service.Geocoder
	if cfg.GeocodeEnabled {
		nominatim := geocoding.NewNominatimClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.GeocodeTimeout, metrics)
		geocoder = geocoding.NewCachedGeocoder(nominatim, geocoding.NewRedisStore(redisClient), cfg.GeocodeCacheTTL, metrics, log)
	}

	// Инициализация издателя вебхуков и воркера доставки
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg, metrics, clock)
	webhookWorker.Start(ctx)

	// Инициализация репозиториев
	reportRepo := repository.NewReportRepository(dbpool, redisClient, cfg.ReportCacheTTL)
	subscriptionRepo := repository.NewSubscriptionRepository(dbpool)
	voteRepo := repository.NewVoteRepository(dbpool)

	notifier := service.NewNotifier(reportRepo, subscriptionRepo, matcher, webhookPublisher, geocoder, clock, metrics, log)

	// События о новых отчётах идут через Kafka, если брокеры заданы
	var reportEvents service.ReportEventPublisher
	consumerDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		producer := events.NewProducer(cfg, clock)
		defer producer.Close()
		reportEvents = producer

		consumer := events.NewConsumer(cfg, notifier, clock, metrics, log)
		go func() {
			defer close(consumerDone)
			defer consumer.Close()
			if err := consumer.Run(ctx); err != nil {
				log.WithError(err).Error("Report trigger consumer stopped")
			}
		}()
	} else {
		log.Warn("KAFKA_BROKERS is empty, report.created events are disabled")
		close(consumerDone)
	}

	// Инициализация сервисов
	reportService := service.NewReportService(reportRepo, reportEvents, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, log)
	voteService := service.NewVoteService(voteRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(notifier, reportService, subscriptionService, voteService, log, cfg)

	// Настройка Gin роутера
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api := router.Group("/api/v1", v1.RateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, clock, log))
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Останавливаем фоновые обработчики после HTTP, чтобы не терять события
	cancel()
	<-consumerDone
	webhookWorker.Wait()

	log.Info("Server gracefully stopped")
}
