package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptSuggestionHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/accept_rebooking_suggestion"
	assignShiftHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/assign_shift"
	blacklistCancellationHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/blacklist_cancellation"
	createCancellationHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/create_cancellation"
	createSuggestionsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/create_rebooking_suggestions"
	createShiftHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/create_shift"
	createWorkerHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/create_worker"
	getAvailableWorkersHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_available_workers"
	getShiftHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_shift"
	getWorkerHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/get_worker"
	listCancellationsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/list_cancellations"
	listSuggestionsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/list_rebooking_suggestions"
	listShiftsHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/list_shifts"
	listWorkersHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/list_workers"
	respondCancellationHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/respond_cancellation"
	updateShiftHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/update_shift"
	updateWorkerHandler "github.com/m04kA/SMC-StaffingService/internal/api/handlers/update_worker"
	"github.com/m04kA/SMC-StaffingService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffingService/internal/config"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-StaffingService/internal/service/availability"
	blacklistService "github.com/m04kA/SMC-StaffingService/internal/service/blacklist"
	"github.com/m04kA/SMC-StaffingService/internal/service/reliability"
	shiftsService "github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
	workersService "github.com/m04kA/SMC-StaffingService/internal/service/workers"
	cancellationWorkflowUC "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
	rebookingUC "github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/metrics"
)

// eventPublisher публикация outbox фактов после коммита
type eventPublisher interface {
	Publish(ctx context.Context, events ...*domain.Event) error
	Close() error
}

func main() {
	// Загружаем конфигурацию (CONFIG_PATH или config.toml)
	cfg, err := config.Load("")
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

	log.Info("Starting SMC-StaffingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: postgres или memory
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()
	log.Info("Storage initialized (driver=%s)", cfg.Storage.Driver)

	// Публикация фактов в Kafka
	var publisher eventPublisher
	if cfg.Events.Kafka.Enabled {
		publisher, err = eventbus.NewKafkaPublisher(eventbus.KafkaConfig{
			Brokers:      cfg.Events.Kafka.Brokers,
			Topic:        cfg.Events.Kafka.Topic,
			WriteTimeout: time.Duration(cfg.Events.Kafka.WriteTimeout) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to create kafka publisher: %v", err)
		}
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic)
	} else {
		publisher = eventbus.NewNoopPublisher(log)
		log.Info("Kafka disabled: events are only stored in outbox")
	}
	defer publisher.Close()

	// Инициализируем сервисы
	guard := workerlock.NewGuard(store.txManager, store.locker)
	index := availability.NewIndex(store.workers, store.shifts, log)
	tracker := reliability.NewTracker(store.workers, store.txManager, log)
	registry := blacklistService.NewRegistry(store.workers, store.blacklist, store.events, store.txManager, log)

	workerSvc := workersService.NewService(store.workers, registry, store.txManager, log)
	shiftSvc := shiftsService.NewService(
		store.shifts,
		store.workers,
		store.events,
		index,
		tracker,
		guard,
		publisher,
		store.txManager,
		log,
	)

	// Инициализируем use cases
	rebookingUseCase := rebookingUC.NewUseCase(
		store.shifts,
		store.workers,
		store.suggestions,
		store.events,
		index,
		guard,
		publisher,
		store.txManager,
		cfg.Rebooking.MaxSuggestions,
		log,
	)

	cancellationUseCase := cancellationWorkflowUC.NewUseCase(
		store.cancellations,
		store.shifts,
		store.workers,
		registry,
		tracker,
		rebookingUseCase,
		publisher,
		store.txManager,
		cancellationWorkflowUC.EscalationPolicy{
			WindowDays: cfg.Escalation.WindowDays,
			Rules:      cfg.Escalation.DomainRules(),
		},
		log,
	)

	// Инициализируем handlers
	createShift := createShiftHandler.NewHandler(shiftSvc, log)
	listShifts := listShiftsHandler.NewHandler(shiftSvc, log)
	getShift := getShiftHandler.NewHandler(shiftSvc, log)
	updateShift := updateShiftHandler.NewHandler(shiftSvc, log)
	assignShift := assignShiftHandler.NewHandler(shiftSvc, log)
	getAvailableWorkers := getAvailableWorkersHandler.NewHandler(shiftSvc, log)

	createWorker := createWorkerHandler.NewHandler(workerSvc, log)
	listWorkers := listWorkersHandler.NewHandler(workerSvc, log)
	getWorker := getWorkerHandler.NewHandler(workerSvc, log)
	updateWorker := updateWorkerHandler.NewHandler(workerSvc, log)

	createCancellation := createCancellationHandler.NewHandler(cancellationUseCase, log)
	listCancellations := listCancellationsHandler.NewHandler(cancellationUseCase, log)
	blacklistCancellation := blacklistCancellationHandler.NewHandler(cancellationUseCase, log)
	respondCancellation := respondCancellationHandler.NewHandler(cancellationUseCase, log)

	createSuggestions := createSuggestionsHandler.NewHandler(rebookingUseCase, log)
	listSuggestions := listSuggestionsHandler.NewHandler(rebookingUseCase, log)
	acceptSuggestion := acceptSuggestionHandler.NewHandler(rebookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log))
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	if cfg.Auth.Enabled {
		api.Use(middleware.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, log).Middleware)
		log.Info("Bearer token auth enabled")
	} else {
		log.Warn("Auth disabled: capability checks are skipped")
	}

	// route группа маршрутов с одним правом
	route := func(c middleware.Capability) *mux.Router {
		sub := api.NewRoute().Subrouter()
		sub.Use(middleware.RequireCapability(c, log))
		return sub
	}

	// --- Смены ---
	shiftsRead := route(middleware.CapShiftsRead)
	shiftsWrite := route(middleware.CapShiftsWrite)

	// available-workers регистрируется раньше /shifts/{shiftId}
	shiftsRead.HandleFunc("/shifts/available-workers", getAvailableWorkers.Handle).Methods(http.MethodGet)
	shiftsRead.HandleFunc("/shifts", listShifts.Handle).Methods(http.MethodGet)
	shiftsRead.HandleFunc("/shifts/{shiftId:[0-9]+}", getShift.Handle).Methods(http.MethodGet)
	shiftsWrite.HandleFunc("/shifts", createShift.Handle).Methods(http.MethodPost)
	shiftsWrite.HandleFunc("/shifts/{shiftId:[0-9]+}", updateShift.Handle).Methods(http.MethodPut)
	shiftsWrite.HandleFunc("/shifts/{shiftId:[0-9]+}/assign", assignShift.Handle).Methods(http.MethodPost)

	// --- Работники ---
	workersRead := route(middleware.CapWorkersRead)
	workersWrite := route(middleware.CapWorkersWrite)

	workersRead.HandleFunc("/workers", listWorkers.Handle).Methods(http.MethodGet)
	workersRead.HandleFunc("/workers/{workerId:[0-9]+}", getWorker.Handle).Methods(http.MethodGet)
	workersWrite.HandleFunc("/workers", createWorker.Handle).Methods(http.MethodPost)
	workersWrite.HandleFunc("/workers/{workerId:[0-9]+}", updateWorker.Handle).Methods(http.MethodPut)

	// --- Отмены ---
	cancellationsRead := route(middleware.CapCancellationsRead)
	cancellationsWrite := route(middleware.CapCancellationsWrite)

	cancellationsRead.HandleFunc("/cancellations", listCancellations.Handle).Methods(http.MethodGet)
	cancellationsWrite.HandleFunc("/cancellations", createCancellation.Handle).Methods(http.MethodPost)
	cancellationsWrite.HandleFunc("/cancellations/{cancellationId:[0-9]+}/blacklist", blacklistCancellation.Handle).Methods(http.MethodPut)
	cancellationsWrite.HandleFunc("/cancellations/{cancellationId:[0-9]+}/respond", respondCancellation.Handle).Methods(http.MethodPut)

	// --- Замены ---
	rebookingRead := route(middleware.CapRebookingRead)
	rebookingWrite := route(middleware.CapRebookingWrite)

	rebookingRead.HandleFunc("/rebooking-suggestions", listSuggestions.Handle).Methods(http.MethodGet)
	rebookingWrite.HandleFunc("/rebooking-suggestions", createSuggestions.Handle).Methods(http.MethodPost)
	rebookingWrite.HandleFunc("/rebooking-suggestions/{suggestionId:[0-9]+}/accept", acceptSuggestion.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
