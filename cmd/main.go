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

	cancelAppointmentHandler "github.com/slotline/availability-service/internal/api/handlers/cancel_appointment"
	cancelPublicAppointmentHandler "github.com/slotline/availability-service/internal/api/handlers/cancel_public_appointment"
	createAppointmentHandler "github.com/slotline/availability-service/internal/api/handlers/create_appointment"
	createTimeOffHandler "github.com/slotline/availability-service/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/slotline/availability-service/internal/api/handlers/delete_time_off"
	getAppointmentHandler "github.com/slotline/availability-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/slotline/availability-service/internal/api/handlers/get_available_slots"
	getPublicAppointmentHandler "github.com/slotline/availability-service/internal/api/handlers/get_public_appointment"
	getScheduleHandler "github.com/slotline/availability-service/internal/api/handlers/get_schedule"
	getTenantAppointmentsHandler "github.com/slotline/availability-service/internal/api/handlers/get_tenant_appointments"
	getTenantModulesHandler "github.com/slotline/availability-service/internal/api/handlers/get_tenant_modules"
	getTimeOffHandler "github.com/slotline/availability-service/internal/api/handlers/get_time_off"
	updateAppointmentStatusHandler "github.com/slotline/availability-service/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/slotline/availability-service/internal/api/handlers/update_schedule"
	updateTenantModulesHandler "github.com/slotline/availability-service/internal/api/handlers/update_tenant_modules"
	"github.com/slotline/availability-service/internal/api/middleware"
	"github.com/slotline/availability-service/internal/config"
	"github.com/slotline/availability-service/internal/domain"
	appointmentRepo "github.com/slotline/availability-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/slotline/availability-service/internal/infra/storage/schedule"
	tenantModuleRepo "github.com/slotline/availability-service/internal/infra/storage/tenantmodule"
	tenantServiceClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
	appointmentsService "github.com/slotline/availability-service/internal/service/appointments"
	modulesService "github.com/slotline/availability-service/internal/service/modules"
	scheduleService "github.com/slotline/availability-service/internal/service/schedule"
	createAppointmentUC "github.com/slotline/availability-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/slotline/availability-service/internal/usecase/get_available_slots"
	"github.com/slotline/availability-service/pkg/dbmetrics"
	"github.com/slotline/availability-service/pkg/logger"
	"github.com/slotline/availability-service/pkg/metrics"
	"github.com/slotline/availability-service/pkg/simpletxmanager"
	"github.com/slotline/availability-service/pkg/txmanager"
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

	log.Info("Starting availability-service...")
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

	// Инициализируем клиент каталога тенантов
	tenantClient := tenantServiceClient.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (TenantService=%s timeout=%ds)",
		cfg.TenantService.URL, cfg.TenantService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		tenantModuleRepository *tenantModuleRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		tenantModuleRepository = tenantModuleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		tenantModuleRepository = tenantModuleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		tenantClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		tenantClient,
		txMgr,
		log,
	)
	moduleSvc := modulesService.NewService(
		tenantModuleRepository,
		tenantClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		tenantClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		tenantClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	// Публичная витрина скрывает прошедшие слоты, админка видит весь день
	getPublicSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log, true)
	getAdminSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log, false)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getPublicAppointment := getPublicAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelPublicAppointment := cancelPublicAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getTenantAppointments := getTenantAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	getTimeOff := getTimeOffHandler.NewHandler(scheduleSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(scheduleSvc, log)
	getTenantModules := getTenantModulesHandler.NewHandler(moduleSvc, log)
	updateTenantModules := updateTenantModulesHandler.NewHandler(moduleSvc, log)

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

	// Маршруты модуля scheduling гейтятся на включенность модуля у тенанта
	publicScheduling := api.PathPrefix("/tenants/{tenantId}").Subrouter()
	publicScheduling.Use(middleware.RequireModule(moduleSvc, domain.ModuleScheduling))

	// Доступные слоты для публичной витрины бронирования
	publicScheduling.HandleFunc("/services/{serviceId}/available-slots",
		getPublicSlots.Handle).Methods(http.MethodGet)

	// Создание записи с публичной формы
	publicScheduling.HandleFunc("/appointments",
		createAppointment.Handle).Methods(http.MethodPost)

	// Недельное расписание тенанта
	publicScheduling.HandleFunc("/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Просмотр и отмена записи по публичной ссылке
	api.HandleFunc("/appointments/public/{publicId}",
		getPublicAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/public/{publicId}/cancel",
		cancelPublicAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Получение записи по внутреннему ID
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи владельцем тенанта
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Управление тенантом (для владельцев) ---
	protectedTenant := protected.PathPrefix("/tenants/{tenantId}").Subrouter()

	// Список записей тенанта
	protectedTenant.HandleFunc("/appointments", getTenantAppointments.Handle).Methods(http.MethodGet)

	// Слоты без скрытия прошедших (для админки)
	protectedTenant.HandleFunc("/services/{serviceId}/admin-slots", getAdminSlots.Handle).Methods(http.MethodGet)

	// Обновление недельного расписания
	protectedTenant.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Окна отгулов
	protectedTenant.HandleFunc("/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protectedTenant.HandleFunc("/time-off", getTimeOff.Handle).Methods(http.MethodGet)
	protectedTenant.HandleFunc("/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

	// Модули тенанта
	protectedTenant.HandleFunc("/modules", getTenantModules.Handle).Methods(http.MethodGet)
	protectedTenant.HandleFunc("/modules", updateTenantModules.Handle).Methods(http.MethodPut)

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
