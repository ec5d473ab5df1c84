package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/event_dispatch/internal/config"
	"github.com/shenikar/event_dispatch/internal/geocode"
	v1 "github.com/shenikar/event_dispatch/internal/handler/http/v1"
	"github.com/shenikar/event_dispatch/internal/hub"
	"github.com/shenikar/event_dispatch/internal/metrics"
	"github.com/shenikar/event_dispatch/internal/repository"
	"github.com/shenikar/event_dispatch/internal/service"
	"github.com/shenikar/event_dispatch/internal/webhook"
	"github.com/shenikar/event_dispatch/pkg/logger"
	"github.com/shenikar/event_dispatch/pkg/postgres"
	redisclient "github.com/shenikar/event_dispatch/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/event_dispatch/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Event Dispatch API
// @version 1.0
// @description Incident dispatch for timed events: incidents, assignments, callsigns and the real-time messaging hub.
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
	if err := postgres.RunMigrations(cfg.DatabaseURL, "file://migrations", log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Издатель и воркер вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация репозиториев
	eventRepo := repository.NewEventRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	assignmentRepo := repository.NewAssignmentRepository(dbpool)
	messageRepo := repository.NewMessageRepository(dbpool)

	// Хаб сообщений
	dispatchHub := hub.New(eventRepo, messageRepo, log, hub.Options{
		SendBuffer:   cfg.HubSendBuffer,
		WriteTimeout: cfg.HubWriteTimeout,
		Metrics:      collector,
	})
	transport := hub.NewTransport(dispatchHub, cfg.WSAllowedOrigins, log)

	// Обратное геокодирование с кэшем в Redis
	resolver := geocode.NewCachedResolver(
		geocode.NewNominatimResolver(cfg.GeocodeURL, cfg.GeocodeUserAgent, cfg.GeocodeTimeout),
		redisClient, cfg.GeocodeCacheTTL, log,
	)

	// Инициализация сервисов
	eventService := service.NewEventService(eventRepo, dispatchHub, log)
	incidentService := service.NewIncidentService(incidentRepo, resolver, log, cfg, webhookPublisher)
	assignmentService := service.NewAssignmentService(assignmentRepo, incidentRepo, eventRepo, dispatchHub, log, webhookPublisher)

	// Инициализация хэндлеров
	handler := v1.NewHandler(eventService, incidentService, assignmentService, dispatchHub, transport, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(collector.Middleware())

	var protected []gin.HandlerFunc
	if len(cfg.APIKeys) > 0 {
		protected = append(protected, v1.APIKeyAuthMiddleware(cfg, log))
	} else {
		log.Warn("API_KEYS is empty, REST API is not protected")
	}
	handler.RegisterRoutes(router.Group("/api/v1"), protected...)

	router.GET("/metrics", gin.WrapH(collector.Handler()))
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Фоновое геокодирование пишет в БД: дожидаемся его до закрытия пула
	incidentService.Wait()

	cancel()
	select {
	case <-webhookWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
