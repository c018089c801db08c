package main

import (
	"context"
	"database/sql"
	"errors"
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

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_available_slots"
	getEmployeeAppointmentsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_employee_appointments"
	getEmployeeAvailabilityHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_employee_availability"
	watchSlotsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/watch_slots"
	"github.com/m04kA/SMC-BarberSlots/internal/api/middleware"
	"github.com/m04kA/SMC-BarberSlots/internal/config"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/events"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/realtime"
	appointmentRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/appointment"
	barberServiceRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/barberservice"
	employeeRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/employee"
	"github.com/m04kA/SMC-BarberSlots/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	employeesService "github.com/m04kA/SMC-BarberSlots/internal/service/employees"
	createAppointmentUC "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/logger"
	"github.com/m04kA/SMC-BarberSlots/pkg/metrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/txmanager"
)

// slotsCache кэш занятых интервалов: in-memory или Redis
type slotsCache interface {
	getAvailableSlotsUC.UnavailableSlotsCache
	realtime.Invalidator
}

// eventPublisher публикация событий: Kafka или внутри процесса
type eventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentChanged) error
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarberSlots...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Slots.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Slots.Timezone, err)
	}

	// Инициализируем метрики (если включены).
	// *metrics.Metrics безопасен при nil, поэтому передается как есть.
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	// Репозитории и менеджер транзакций
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	serviceRepository := barberServiceRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш занятых интервалов
	var slotCache slotsCache
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		slotCache = cache.NewRedis(redisClient, cfg.Slots.CacheTTL(), metricsCollector, log)
		log.Info("Redis cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Slots.CacheTTL())
	} else {
		slotCache = cache.NewMemory(cfg.Slots.CacheTTL(), metricsCollector)
		log.Info("In-memory cache enabled (ttl=%s)", cfg.Slots.CacheTTL())
	}

	hub := realtime.NewHub(slotCache, metricsCollector)

	// События об изменении записей
	ctx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var publisher eventPublisher
	var producer *events.Producer
	var consumer *events.Consumer
	consumerDone := make(chan struct{})

	if cfg.Kafka.Enabled {
		producer = events.NewProducer(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), metricsCollector)
		publisher = producer

		// каждый экземпляр читает все события: у каждого свои подписчики SSE
		consumer = events.NewConsumer(
			events.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.Topic, instanceGroupID(cfg.Kafka.GroupID)),
			hub,
			metricsCollector,
			log,
		)
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil {
				log.Error("Events consumer failed: %v", err)
			}
		}()
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NewLocalPublisher(hub, metricsCollector)
		close(consumerDone)
		log.Info("In-process events enabled")
	}

	// Уведомления о сбоях загрузки расписания
	var alertSender notifier.AlertSender
	alertTimeout := time.Duration(cfg.Alerts.Timeout) * time.Second
	if cfg.Alerts.URL != "" {
		alertSender = notifier.NewClient(cfg.Alerts.URL, alertTimeout, log)
		log.Info("Alerts webhook enabled (url=%s, timeout=%ds)", cfg.Alerts.URL, cfg.Alerts.Timeout)
	}
	errorNotifier := notifier.NewNotifier(alertSender, metricsCollector, log, alertTimeout)

	// Правила доступности
	checker := availability.NewChecker(
		availability.Policy{
			SlotInterval:                cfg.Slots.IntervalMinutes,
			LeadTime:                    cfg.Slots.LeadTime(),
			TreatInvalidDataAsAvailable: cfg.Slots.FailOpen(),
		},
		&availability.RealTimeProvider{Location: location},
	)
	log.Info("Availability policy: interval=%dm, lead_time=%s, fail_open=%t, timezone=%s",
		cfg.Slots.IntervalMinutes, cfg.Slots.LeadTime(), cfg.Slots.FailOpen(), location)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		publisher,
		&availability.RealTimeProvider{Location: location},
		log,
	)
	employeeSvc := employeesService.NewService(employeeRepository, checker, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		employeeRepository,
		serviceRepository,
		appointmentRepository,
		slotCache,
		hub,
		errorNotifier,
		checker,
		cfg.Slots.AdvanceBookingDays,
		metricsCollector,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		serviceRepository,
		txMgr,
		publisher,
		checker,
		cfg.Slots.AdvanceBookingDays,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	watchSlots := watchSlotsHandler.NewHandler(getAvailableSlotsUseCase, log, 0)
	getEmployeeAvailability := getEmployeeAvailabilityHandler.NewHandler(employeeSvc, log)
	getEmployeeAppointments := getEmployeeAppointmentsHandler.NewHandler(appointmentSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log), middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Мастера ---
	// Доступные слоты на дату для услуги
	api.HandleFunc("/employees/{employeeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подписка на изменения слотов (SSE)
	api.HandleFunc("/employees/{employeeId}/slots/watch", watchSlots.Handle).Methods(http.MethodGet)

	// Рабочие смены мастера на дату
	api.HandleFunc("/employees/{employeeId}/availability", getEmployeeAvailability.Handle).Methods(http.MethodGet)

	// Расписание записей мастера на дату
	api.HandleFunc("/employees/{employeeId}/appointments", getEmployeeAppointments.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}
	srv.RegisterOnShutdown(watchSlots.Stop)

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// Останавливаем consumer событий
	stopBackground()
	<-consumerDone
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close events consumer: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close events producer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// instanceGroupID группа потребителей, уникальная для экземпляра
func instanceGroupID(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return base
	}
	return base + "-" + host
}
