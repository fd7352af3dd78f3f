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

	createReservationHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/list_reservations"
	reconcileOfflineHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/reconcile_offline"
	setStatusHandler "github.com/m04kA/FP-ReservationService/internal/api/handlers/set_status"
	"github.com/m04kA/FP-ReservationService/internal/api/middleware"
	"github.com/m04kA/FP-ReservationService/internal/config"
	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/internal/infra/rabbitmq"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	chatServiceClient "github.com/m04kA/FP-ReservationService/internal/integrations/chatservice"
	venueServiceClient "github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
	"github.com/m04kA/FP-ReservationService/internal/notification"
	reservationsService "github.com/m04kA/FP-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/FP-ReservationService/internal/usecase/get_available_slots"
	reconcileOfflineUC "github.com/m04kA/FP-ReservationService/internal/usecase/reconcile_offline"
	"github.com/m04kA/FP-ReservationService/pkg/logger"
	"github.com/m04kA/FP-ReservationService/pkg/metrics"
	"github.com/m04kA/FP-ReservationService/pkg/txmanager"
)

// statusTransitionCounter приёмник событий, который только считает переходы
type statusTransitionCounter struct {
	metrics *metrics.Metrics
}

func (c statusTransitionCounter) Dispatch(event domain.StatusChanged) {
	c.metrics.StatusTransition(string(event.OldStatus), string(event.NewStatus))
}

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

	log.Info("Starting FP-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		time.Duration(cfg.VenueService.CacheTTLSeconds)*time.Second,
		log,
	)
	chatClient := chatServiceClient.NewClient(
		cfg.ChatService.URL,
		time.Duration(cfg.ChatService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, ChatService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.ChatService.URL, cfg.ChatService.Timeout)

	// Репозиторий и transaction manager
	reservationRepository := reservationRepo.NewRepository(db)
	txManager := txmanager.NewManager(db)

	// Диспетчер уведомлений: пул воркеров, живёт до завершения сервиса
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	dispatcher := notification.NewDispatcher(notification.Config{
		Workers:       cfg.Notifications.Workers,
		QueueSize:     cfg.Notifications.QueueSize,
		MaxAttempts:   cfg.Notifications.MaxAttempts,
		RetryDelay:    time.Duration(cfg.Notifications.RetryDelay) * time.Millisecond,
		RatePerSecond: cfg.Notifications.RatePerSecond,
	}, chatClient, log, metricsCollector)
	dispatcher.Start(dispatcherCtx)

	// Приёмники событий смены статуса: чат-уведомления, счётчики и,
	// если настроен брокер, публикация в RabbitMQ
	events := notification.Fanout{dispatcher, statusTransitionCounter{metricsCollector}}

	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		events = append(events, publisher)
		log.Info("RabbitMQ publisher initialized (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		events,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		venueClient,
		txManager,
		log,
	)

	reconcileOfflineUseCase := reconcileOfflineUC.NewUseCase(
		createReservationUseCase,
		reservationRepository,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		venueClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log, metricsCollector)
	setStatus := setStatusHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	reconcileOffline := reconcileOfflineHandler.NewHandler(reconcileOfflineUseCase, log, metricsCollector)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Лимит запросов на клиента (если включён)
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		api.Use(rl.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты поля на дату
	api.HandleFunc("/fields/{fieldId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Сверка офлайн-очереди устройства
	protected.HandleFunc("/reservations/reconcile", reconcileOffline.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", setStatus.Handle).Methods(http.MethodPatch)

	// Бронирования поля на дату
	protected.HandleFunc("/fields/{fieldId}/reservations", listReservations.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркеров уведомлений после того, как сервер перестал
	// принимать запросы
	stopDispatcher()

	log.Info("Server stopped gracefully")
}
