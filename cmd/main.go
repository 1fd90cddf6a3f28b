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

	cancelReservationHandler "github.com/moshavereh/booking-service/internal/api/handlers/cancel_reservation"
	createConsultationHandler "github.com/moshavereh/booking-service/internal/api/handlers/create_consultation"
	createReservationHandler "github.com/moshavereh/booking-service/internal/api/handlers/create_reservation"
	deleteConsultationHandler "github.com/moshavereh/booking-service/internal/api/handlers/delete_consultation"
	getAvailabilityHandler "github.com/moshavereh/booking-service/internal/api/handlers/get_availability"
	getConsultationHandler "github.com/moshavereh/booking-service/internal/api/handlers/get_consultation"
	getConsultationReservationsHandler "github.com/moshavereh/booking-service/internal/api/handlers/get_consultation_reservations"
	getCustomerReservationsHandler "github.com/moshavereh/booking-service/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/moshavereh/booking-service/internal/api/handlers/get_reservation"
	listConsultationsHandler "github.com/moshavereh/booking-service/internal/api/handlers/list_consultations"
	markReservationDoneHandler "github.com/moshavereh/booking-service/internal/api/handlers/mark_reservation_done"
	updateConsultationHandler "github.com/moshavereh/booking-service/internal/api/handlers/update_consultation"
	"github.com/moshavereh/booking-service/internal/api/middleware"
	"github.com/moshavereh/booking-service/internal/config"
	consultationRepo "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	reservationRepo "github.com/moshavereh/booking-service/internal/infra/storage/reservation"
	consultationsService "github.com/moshavereh/booking-service/internal/service/consultations"
	reservationsService "github.com/moshavereh/booking-service/internal/service/reservations"
	createReservationUC "github.com/moshavereh/booking-service/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/moshavereh/booking-service/internal/usecase/get_availability"
	"github.com/moshavereh/booking-service/pkg/dbmetrics"
	"github.com/moshavereh/booking-service/pkg/logger"
	"github.com/moshavereh/booking-service/pkg/metrics"
	"github.com/moshavereh/booking-service/pkg/ratelimit"
	"github.com/moshavereh/booking-service/pkg/simpletxmanager"
	"github.com/moshavereh/booking-service/pkg/txmanager"
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

	// Инициализируем репозитории (с метриками или без)
	var (
		consultationRepository *consultationRepo.Repository
		reservationRepository  *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		consultationRepository = consultationRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		consultationRepository = consultationRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	consultationSvc := consultationsService.NewService(consultationRepository, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		consultationRepository,
		reservationRepository,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		consultationRepository,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	markReservationDone := markReservationDoneHandler.NewHandler(reservationSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationSvc, log)
	getConsultationReservations := getConsultationReservationsHandler.NewHandler(reservationSvc, log)
	listConsultations := listConsultationsHandler.NewHandler(consultationSvc, log)
	getConsultation := getConsultationHandler.NewHandler(consultationSvc, log)
	createConsultation := createConsultationHandler.NewHandler(consultationSvc, log)
	updateConsultation := updateConsultationHandler.NewHandler(consultationSvc, log)
	deleteConsultation := deleteConsultationHandler.NewHandler(consultationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Добавляем rate limit middleware (если включен)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer rdb.Close()

		limiter := ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute, cfg.RateLimit.KeyPrefix)
		r.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit middleware enabled (redis=%s, limit=%d/min)",
			cfg.RateLimit.RedisAddr, cfg.RateLimit.RequestsPerMinute)
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

	// Каталог консультаций
	api.HandleFunc("/consultations", listConsultations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/consultations/{consultationId}", getConsultation.Handle).Methods(http.MethodGet)

	// Доступные слоты консультации на дату
	api.HandleFunc("/consultations/{consultationId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Завершение брони
	protected.HandleFunc("/reservations/{reservationId}/done", markReservationDone.Handle).Methods(http.MethodPatch)

	// История броней клиента
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Управление консультациями (для администраторов) ---
	// Брони консультации
	protected.HandleFunc("/consultations/{consultationId}/reservations",
		getConsultationReservations.Handle).Methods(http.MethodGet)

	// CRUD консультаций
	protected.HandleFunc("/consultations", createConsultation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/consultations/{consultationId}", updateConsultation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/consultations/{consultationId}", deleteConsultation.Handle).Methods(http.MethodDelete)

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
