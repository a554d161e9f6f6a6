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

	addCartLineHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/add_cart_line"
	cancelSubmissionHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/cancel_submission"
	createSessionHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/create_session"
	destroySessionHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/destroy_session"
	getAvailableSlotsHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/get_available_slots"
	getSessionHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/get_session"
	gotoStepHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/goto_step"
	setPetHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/set_pet"
	setScheduleHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/set_schedule"
	submitBookingHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/submit_booking"
	toggleServiceHandler "github.com/pawcare/PC-BookingWizard/internal/api/handlers/toggle_service"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/config"
	catalogRepo "github.com/pawcare/PC-BookingWizard/internal/infra/storage/catalog"
	petsRepo "github.com/pawcare/PC-BookingWizard/internal/infra/storage/pets"
	scheduleServiceClient "github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
	pricingService "github.com/pawcare/PC-BookingWizard/internal/service/pricing"
	sessionService "github.com/pawcare/PC-BookingWizard/internal/service/session"
	queryAvailabilityUC "github.com/pawcare/PC-BookingWizard/internal/usecase/query_availability"
	submitBookingUC "github.com/pawcare/PC-BookingWizard/internal/usecase/submit_booking"
	"github.com/pawcare/PC-BookingWizard/pkg/dbmetrics"
	"github.com/pawcare/PC-BookingWizard/pkg/logger"
	"github.com/pawcare/PC-BookingWizard/pkg/metrics"
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

	log.Info("Starting PC-BookingWizard...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	// Инициализируем клиента сервиса расписания
	scheduleClient := scheduleServiceClient.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		log,
	)
	log.Info("ScheduleService client initialized (url=%s timeout=%ds)",
		cfg.ScheduleService.URL, cfg.ScheduleService.Timeout)

	// Инициализируем репозитории справочных данных (с метриками или без)
	var (
		catalogRepository *catalogRepo.Repository
		petsRepository    *petsRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		petsRepository = petsRepo.NewRepository(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		petsRepository = petsRepo.NewRepository(db)
	}

	// Инициализируем движок мастера бронирования
	pricer := pricingService.NewResolver(cfg.Wizard.FallbackSize())

	sessionManager := sessionService.NewManager(
		catalogRepository,
		petsRepository,
		scheduleClient,
		pricer,
		cfg.Wizard.ClinicID,
		time.Duration(cfg.Wizard.SessionTTLMinutes)*time.Minute,
		log,
	)
	sessionManager.StartSweeper(stopCh)
	log.Info("Session manager started (clinic=%d, ttl=%dm)",
		cfg.Wizard.ClinicID, cfg.Wizard.SessionTTLMinutes)

	// Инициализируем use cases
	queryAvailabilityUseCase := queryAvailabilityUC.NewUseCase(sessionManager, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(sessionManager, log)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionManager, log)
	getSession := getSessionHandler.NewHandler(sessionManager, log)
	destroySession := destroySessionHandler.NewHandler(sessionManager, log)
	toggleService := toggleServiceHandler.NewHandler(sessionManager, log)
	setPet := setPetHandler.NewHandler(sessionManager, log)
	setSchedule := setScheduleHandler.NewHandler(sessionManager, log)
	addCartLine := addCartLineHandler.NewHandler(sessionManager, log)
	gotoStep := gotoStepHandler.NewHandler(sessionManager, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(queryAvailabilityUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	cancelSubmission := cancelSubmissionHandler.NewHandler(sessionManager, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции мастера идут от имени клиента: требуют X-Customer-ID
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Жизненный цикл сессии мастера ---
	protected.HandleFunc("/wizard/sessions", createSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/wizard/sessions/{sessionId}", destroySession.Handle).Methods(http.MethodDelete)

	// --- Мутации выбора ---
	protected.HandleFunc("/wizard/sessions/{sessionId}/services/{serviceId}/toggle",
		toggleService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}/pet", setPet.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/wizard/sessions/{sessionId}/schedule", setSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/wizard/sessions/{sessionId}/lines", addCartLine.Handle).Methods(http.MethodPost)

	// --- Навигация по шагам ---
	protected.HandleFunc("/wizard/sessions/{sessionId}/step", gotoStep.Handle).Methods(http.MethodPost)

	// --- Доступность и отправка ---
	protected.HandleFunc("/wizard/sessions/{sessionId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/wizard/sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}/submit/cancel",
		cancelSubmission.Handle).Methods(http.MethodPost)

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

	// Останавливаем sweeper сессий и сбор метрик connection pool
	close(stopCh)

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
