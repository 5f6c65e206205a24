package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/resago/booking-service/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/resago/booking-service/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/resago/booking-service/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/resago/booking-service/internal/api/handlers/get_calendar"
	getClientReservationsHandler "github.com/resago/booking-service/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/resago/booking-service/internal/api/handlers/get_reservation"
	getSlotsConfigHandler "github.com/resago/booking-service/internal/api/handlers/get_slots_config"
	updateReservationHandler "github.com/resago/booking-service/internal/api/handlers/update_reservation"
	updateSlotsConfigHandler "github.com/resago/booking-service/internal/api/handlers/update_slots_config"
	"github.com/resago/booking-service/internal/api/middleware"
	"github.com/resago/booking-service/internal/config"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	reservationRepo "github.com/resago/booking-service/internal/infra/storage/reservation"
	availabilityClient "github.com/resago/booking-service/internal/integrations/availability"
	catalogServiceClient "github.com/resago/booking-service/internal/integrations/catalogservice"
	configService "github.com/resago/booking-service/internal/service/config"
	reservationsService "github.com/resago/booking-service/internal/service/reservations"
	createReservationUC "github.com/resago/booking-service/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/resago/booking-service/internal/usecase/get_available_slots"
	getCalendarAvailabilityUC "github.com/resago/booking-service/internal/usecase/get_calendar_availability"
	updateReservationUC "github.com/resago/booking-service/internal/usecase/update_reservation"
	"github.com/resago/booking-service/pkg/dbmetrics"
	"github.com/resago/booking-service/pkg/logger"
	"github.com/resago/booking-service/pkg/metrics"
	"github.com/resago/booking-service/pkg/simpletxmanager"
	"github.com/resago/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем redis кэш результатов availability (если включен)
	var slotsCache *availabilityClient.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		slotsCache = availabilityClient.NewCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		log.Info("Redis slots cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	availClient := availabilityClient.NewClient(
		cfg.AvailabilityService.URL,
		time.Duration(cfg.AvailabilityService.Timeout)*time.Second,
		slotsCache,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, AvailabilityService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.AvailabilityService.URL, cfg.AvailabilityService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		availClient,
		log,
	)

	getCalendarAvailabilityUseCase := getCalendarAvailabilityUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		availClient,
		txMgr,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		catalogClient,
		availClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getSlotsConfig := getSlotsConfigHandler.NewHandler(configSvc, log)
	updateSlotsConfig := updateSlotsConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов на дату
	api.HandleFunc("/etablissements/{etablissementId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарная доступность за период
	api.HandleFunc("/etablissements/{etablissementId}/availability-calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Получение конфигурации слотов заведения
	api.HandleFunc("/etablissements/{etablissementId}/slots-config",
		getSlotsConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Client-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	// Создание резервации
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Изменение резервации
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)

	// Отмена резервации
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История резерваций клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Управление заведением (для менеджеров) ---
	// Обновление конфигурации слотов заведения
	protected.HandleFunc("/etablissements/{etablissementId}/slots-config",
		updateSlotsConfig.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
