package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/family_crisis_hub/internal/ai"
	"github.com/shenikar/family_crisis_hub/internal/circle"
	"github.com/shenikar/family_crisis_hub/internal/config"
	"github.com/shenikar/family_crisis_hub/internal/connectivity"
	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/geo"
	v1 "github.com/shenikar/family_crisis_hub/internal/handler/http/v1"
	"github.com/shenikar/family_crisis_hub/internal/mapview"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/preparedness"
	"github.com/shenikar/family_crisis_hub/internal/repository"
	"github.com/shenikar/family_crisis_hub/internal/service"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
	"github.com/shenikar/family_crisis_hub/internal/webhook"
	"github.com/shenikar/family_crisis_hub/pkg/logger"
	"github.com/shenikar/family_crisis_hub/pkg/postgres"
	redisclient "github.com/shenikar/family_crisis_hub/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/family_crisis_hub/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Family Crisis Hub API
// @version 1.0
// @description Family crisis coordination dashboard API: circle status, hazards, AI plans and preparedness.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// stateBackend выбирает хранилище состояния; closer освобождает соединения
func stateBackend(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) (statestore.Backend, func(), error) {
	switch cfg.StateBackend {
	case config.StateBackendMemory:
		log.Warn("Using in-memory state backend, state will not survive a restart")
		return statestore.NewMemoryBackend(), func() {}, nil

	case config.StateBackendPostgres:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return repository.NewPostgresStateBackend(dbpool), dbpool.Close, nil

	case config.StateBackendRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis state backend requires a Redis connection")
		}
		return repository.NewRedisStateBackend(redisClient, "family_crisis_hub"), func() {}, nil

	default:
		db, err := repository.OpenSQLite(cfg.StateSQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite state: %w", err)
		}
		log.WithField("path", cfg.StateSQLitePath).Info("Using SQLite state backend")
		return repository.NewSQLiteStateBackend(db), func() { db.Close() }, nil
	}
}

func simulationRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)))
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен для очереди оповещений, кеша кризисных данных и redis-бэкенда
	var redisClient *redis.Client
	if cfg.StateBackend == config.StateBackendRedis || cfg.WebhookURL != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	backend, closeBackend, err := stateBackend(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to initialize state backend: %v", err)
	}
	defer closeBackend()

	// Начальное состояние сети
	online := cfg.ConnectivityAssumeOnline
	if !online {
		online = connectivity.DialProbe(cfg.ConnectivityProbeAddr, 3*time.Second)(ctx)
	}
	monitor := connectivity.NewMonitor(online)
	log.WithField("online", online).Info("Initial connectivity probed")

	// Источники кризисных данных
	sources := []crisis.Source{crisis.NewUSGSSource(cfg.USGSBaseURL, &http.Client{Timeout: 15 * time.Second})}
	if cfg.WeatherAlertsEnabled {
		sources = append(sources, crisis.NewWeatherSource())
	}
	var crisisCache crisis.Cache = crisis.NewMemoryCache()
	if redisClient != nil {
		crisisCache = repository.NewRedisCrisisCache(redisClient)
	}
	fetcher := crisis.NewFetcher(sources, crisisCache, monitor, log)

	// AI оркестратор
	aiCfg := ai.Config{
		APIKey:    cfg.GeminiAPIKey,
		PlanModel: cfg.AIPlanModel,
		FastModel: cfg.AIFastModel,
		Timeout:   cfg.AITimeout,
	}
	var aiClient ai.Client
	aiClient, err = ai.NewGenAIClient(ctx, aiCfg, ai.NewLogObserver(log))
	if err != nil {
		log.WithError(err).Warn("AI provider unavailable, plan and check-in features will report errors")
		aiClient = ai.UnavailableClient{}
	}
	orchestrator := ai.NewOrchestrator(aiClient, monitor, log)

	// Семейный круг и симуляция
	store := circle.NewStore(log)
	simulator := circle.NewSimulator(store, circle.RealScheduler(), simulationRand(cfg.SimulationSeed), circle.DefaultRules(), cfg.SimulationInterval, log)

	// План готовности
	prepRepo := preparedness.NewStateRepository(statestore.Bind[models.PreparednessPlan](backend, statestore.KeyPreparednessPlan, log))
	prepService := preparedness.NewService(prepRepo, monitor, log)

	// Оповещения о статусах
	var publisher webhook.Publisher = webhook.NoopPublisher{}
	var workerDone <-chan struct{}
	if cfg.WebhookURL != "" {
		publisher = webhook.NewRedisPublisher(redisClient)
		workerDone = webhook.NewWorker(redisClient, log, cfg).Start(ctx)
	}

	// без MAPS_API_KEY карта отдается текстовым списком
	renderer := mapview.NewStaticMapRenderer(cfg.MapsAPIKey)

	dashboard := service.NewDashboardService(service.Dependencies{
		Store:           store,
		Simulation:      simulator,
		Fetcher:         fetcher,
		Planner:         orchestrator,
		Preparedness:    prepService,
		Resolver:        geo.NewResolver(cfg.GeolocationTimeout, monitor, log),
		Locator:         geo.NewPendingLocator(),
		Monitor:         monitor,
		Alerts:          publisher,
		Renderer:        renderer,
		State:           backend,
		NotificationTTL: cfg.NotificationTTL,
		Logger:          log,
	})
	defer dashboard.Close()

	// Mount ждет позицию от клиента не дольше GEOLOCATION_TIMEOUT
	go func() {
		if err := dashboard.Mount(ctx); err != nil {
			log.WithError(err).Error("Failed to mount dashboard")
		}
	}()

	// Инициализация хэндлеров
	handler := v1.NewHandler(dashboard, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware(cfg.ClientURL))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	cancel()
	if workerDone != nil {
		<-workerDone
	}

	log.Info("Server gracefully stopped")
}
