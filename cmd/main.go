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

	addIntervalHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/add_interval"
	applyExceptionHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/apply_exception"
	applyTemplateHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/apply_template"
	confirmExceptionHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/confirm_exception"
	createCancellationRequestHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/create_cancellation_request"
	createSlotHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/create_slot"
	createTemplateHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/create_template"
	deleteExceptionHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/delete_exception"
	deleteSlotHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/delete_slot"
	deleteTemplateHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/delete_template"
	exportScheduleHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/export_schedule"
	getCancellationRequestsHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/get_cancellation_requests"
	getExceptionsHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/get_exceptions"
	getSlotsHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/get_slots"
	getTemplatesHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/get_templates"
	getWorkingHoursHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/get_working_hours"
	importScheduleHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/import_schedule"
	processCancellationRequestHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/process_cancellation_request"
	reconcileScheduleHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/reconcile_schedule"
	setDefaultTemplateHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/set_default_template"
	updateSlotStatusHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/update_slot_status"
	updateWorkingHoursHandler "github.com/m04kA/DS-ScheduleService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/DS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/DS-ScheduleService/internal/config"
	cancellationRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/cancellation"
	exceptionRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/exception"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/template"
	workingHoursRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	notifyServiceClient "github.com/m04kA/DS-ScheduleService/internal/integrations/notifyservice"
	cancellationsService "github.com/m04kA/DS-ScheduleService/internal/service/cancellations"
	exceptionsService "github.com/m04kA/DS-ScheduleService/internal/service/exceptions"
	scheduleService "github.com/m04kA/DS-ScheduleService/internal/service/schedule"
	slotsService "github.com/m04kA/DS-ScheduleService/internal/service/slots"
	applyExceptionUC "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
	reconcileScheduleUC "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
	transferScheduleUC "github.com/m04kA/DS-ScheduleService/internal/usecase/transfer_schedule"
	"github.com/m04kA/DS-ScheduleService/pkg/logger"
	"github.com/m04kA/DS-ScheduleService/pkg/metrics"
	"github.com/m04kA/DS-ScheduleService/pkg/txmanager"
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

	log.Info("Starting DS-ScheduleService...")
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

	// Инициализируем интеграционного клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	if cfg.NotifyService.URL != "" {
		log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	}

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(db)
	workingHoursRepository := workingHoursRepo.NewRepository(db)
	exceptionRepository := exceptionRepo.NewRepository(db)
	cancellationRepository := cancellationRepo.NewRepository(db)
	templateRepository := templateRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		templateRepository,
		txMgr,
		log,
	)
	slotsSvc := slotsService.NewService(
		slotRepository,
		txMgr,
		log,
	)
	exceptionsSvc := exceptionsService.NewService(
		exceptionRepository,
		slotRepository,
		txMgr,
		log,
	)
	cancellationsSvc := cancellationsService.NewService(
		cancellationRepository,
		slotRepository,
		txMgr,
		cfg.Scheduling.ReopenOnApprove,
		log,
	)

	// Инициализируем use cases
	reconcileUseCase := reconcileScheduleUC.NewUseCase(
		slotRepository,
		workingHoursRepository,
		exceptionRepository,
		txMgr,
		notifyClient,
		cfg.Scheduling.HorizonDays,
		log,
	)
	applyExceptionUseCase := applyExceptionUC.NewUseCase(
		exceptionRepository,
		slotRepository,
		txMgr,
		log,
	)
	transferUseCase := transferScheduleUC.NewUseCase(
		slotRepository,
		workingHoursRepository,
		templateRepository,
		exceptionRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	addInterval := addIntervalHandler.NewHandler(scheduleSvc, log)
	reconcileSchedule := reconcileScheduleHandler.NewHandler(reconcileUseCase, log)
	getSlots := getSlotsHandler.NewHandler(slotsSvc, log)
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	updateSlotStatus := updateSlotStatusHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	applyException := applyExceptionHandler.NewHandler(applyExceptionUseCase, log)
	confirmException := confirmExceptionHandler.NewHandler(applyExceptionUseCase, log)
	getExceptions := getExceptionsHandler.NewHandler(exceptionsSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(exceptionsSvc, log)
	createCancellationRequest := createCancellationRequestHandler.NewHandler(cancellationsSvc, log)
	getCancellationRequests := getCancellationRequestsHandler.NewHandler(cancellationsSvc, log)
	processCancellationRequest := processCancellationRequestHandler.NewHandler(cancellationsSvc, log)
	getTemplates := getTemplatesHandler.NewHandler(scheduleSvc, log)
	createTemplate := createTemplateHandler.NewHandler(scheduleSvc, log)
	applyTemplate := applyTemplateHandler.NewHandler(scheduleSvc, reconcileUseCase, log)
	setDefaultTemplate := setDefaultTemplateHandler.NewHandler(scheduleSvc, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(scheduleSvc, log)
	exportSchedule := exportScheduleHandler.NewHandler(transferUseCase, log)
	importSchedule := importScheduleHandler.NewHandler(transferUseCase, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты инструктора доступны студентам без аутентификации
	api.HandleFunc("/instructors/{instructorId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Рабочие часы ---
	protected.HandleFunc("/instructors/{instructorId}/working-hours",
		getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/working-hours/{weekday}",
		updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/instructors/{instructorId}/working-hours/{weekday}/intervals",
		addInterval.Handle).Methods(http.MethodPost)

	// --- Генерация слотов ---
	protected.HandleFunc("/instructors/{instructorId}/schedule/reconcile",
		reconcileSchedule.Handle).Methods(http.MethodPost)

	// --- Слоты ---
	protected.HandleFunc("/instructors/{instructorId}/slots",
		createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/slots/{slotId}/status",
		updateSlotStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/instructors/{instructorId}/slots/{slotId}",
		deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Исключения расписания ---
	protected.HandleFunc("/instructors/{instructorId}/exceptions",
		applyException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/exceptions",
		getExceptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/exceptions/{exceptionId}/confirm",
		confirmException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/exceptions/{exceptionId}",
		deleteException.Handle).Methods(http.MethodDelete)

	// --- Запросы на отмену ---
	protected.HandleFunc("/cancellation-requests",
		createCancellationRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/cancellation-requests",
		getCancellationRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/cancellation-requests/{requestId}",
		processCancellationRequest.Handle).Methods(http.MethodPatch)

	// --- Шаблоны расписания ---
	protected.HandleFunc("/instructors/{instructorId}/templates",
		getTemplates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/templates",
		createTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/templates/{templateId}/apply",
		applyTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instructors/{instructorId}/templates/{templateId}/default",
		setDefaultTemplate.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/instructors/{instructorId}/templates/{templateId}",
		deleteTemplate.Handle).Methods(http.MethodDelete)

	// --- Экспорт / импорт ---
	protected.HandleFunc("/instructors/{instructorId}/schedule/export",
		exportSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/schedule/import",
		importSchedule.Handle).Methods(http.MethodPost)

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

	log.Info("Server stopped gracefully")
}
