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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	applyDefaultWorkingHoursHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/apply_default_working_hours"
	createBlockedTimeHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/create_blocked_time"
	createBookingHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/create_service"
	deleteBlockedTimeHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/delete_blocked_time"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_service"
	getTenantBookingsHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_tenant_bookings"
	getTenantBySlugHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_tenant_by_slug"
	getTenantProfileHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_tenant_profile"
	getWorkingHoursHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/get_working_hours"
	listBlockedTimesHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/list_blocked_times"
	listServicesHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/update_booking_status"
	updateCategoryDataHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/update_category_data"
	updateServiceHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/update_service"
	updateWorkingHoursHandler "github.com/m04kA/SMC-TenantBookingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/config"
	"github.com/m04kA/SMC-TenantBookingService/internal/infra/cache/slots"
	blockedTimeRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/blockedtime"
	bookingRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	tenantRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/tenant"
	workingHoursRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-TenantBookingService/internal/integrations/notificationservice"
	blockedTimesService "github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes"
	bookingsService "github.com/m04kA/SMC-TenantBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-TenantBookingService/internal/service/catalog"
	tenantsService "github.com/m04kA/SMC-TenantBookingService/internal/service/tenants"
	workingHoursService "github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours"
	createBookingUC "github.com/m04kA/SMC-TenantBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TenantBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TenantBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
	"github.com/m04kA/SMC-TenantBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TenantBookingService/pkg/txmanager"
)

const readyzTimeout = 2 * time.Second

// slotsCache общий интерфейс redis кэша и заглушки
type slotsCache interface {
	getAvailableSlotsUC.SlotsCache
	createBookingUC.SlotsCache
	InvalidateTenant(ctx context.Context, tenantID int64) error
	Ping(ctx context.Context) error
}

// txManager общий интерфейс менеджеров транзакций с метриками и без
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting SMC-TenantBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики бизнес-событий нужны use case'ам всегда.
	// При выключенных метриках они пишутся в отдельный реестр, который никто не отдает.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
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
		executor dbmetrics.DBExecutor = db
		txMgr    txManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	tenantRepository := tenantRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)
	workingHoursRepository := workingHoursRepo.NewRepository(executor)
	blockedTimeRepository := blockedTimeRepo.NewRepository(executor)

	// Кэш слотов
	var cache slotsCache = slots.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), readyzTimeout)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Без redis сервис работает, слоты просто считаются каждый раз
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Address, err)
		}
		cancel()

		cache = slots.NewCache(redisClient, cfg.Cache.SlotsTTL(), metricsCollector)
		log.Info("Slots cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, cfg.Cache.SlotsTTL())
	}

	// Клиент сервиса уведомлений
	notificationClient := notificationservice.NewClient(
		cfg.NotificationService.URL,
		cfg.NotificationService.Enabled,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (enabled=%t, url=%s)",
		cfg.NotificationService.Enabled, cfg.NotificationService.URL)

	location := cfg.Booking.Location()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		workingHoursRepository,
		blockedTimeRepository,
		cache,
		txMgr,
		log,
	)
	tenantSvc := tenantsService.NewService(tenantRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, cache, log)
	blockedTimeSvc := blockedTimesService.NewService(blockedTimeRepository, cache, log)
	workingHoursSvc := workingHoursService.NewService(
		workingHoursRepository,
		cache,
		txMgr,
		cfg.Booking.DefaultOpenTime,
		cfg.Booking.DefaultCloseTime,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tenantRepository,
		serviceRepository,
		workingHoursRepository,
		blockedTimeRepository,
		cache,
		notificationClient,
		metricsCollector,
		txMgr,
		cfg.Booking.AdvanceBookingDays,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		workingHoursRepository,
		bookingRepository,
		blockedTimeRepository,
		cache,
		metricsCollector,
		cfg.Booking.AdvanceBookingDays,
		location,
		log,
	)

	// Инициализируем handlers
	getTenantBySlug := getTenantBySlugHandler.NewHandler(tenantSvc, log)
	getTenantProfile := getTenantProfileHandler.NewHandler(tenantSvc, log)
	updateCategoryData := updateCategoryDataHandler.NewHandler(tenantSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	applyDefaultWorkingHours := applyDefaultWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	listBlockedTimes := listBlockedTimesHandler.NewHandler(blockedTimeSvc, log)
	createBlockedTime := createBlockedTimeHandler.NewHandler(blockedTimeSvc, log)
	deleteBlockedTime := deleteBlockedTimeHandler.NewHandler(blockedTimeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health checks
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readyzTimeout)
		defer cancel()

		if err := errors.Join(db.PingContext(ctx), cache.Ping(ctx)); err != nil {
			log.Warn("GET /readyz - Not ready: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "сервис не готов")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled for public routes (rps=%.1f, burst=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Тенант по slug
	public.HandleFunc("/tenants/{slug}", getTenantBySlug.Handle).Methods(http.MethodGet)

	// Активные услуги тенанта
	public.HandleFunc("/tenants/{tenantId:[0-9]+}/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/tenants/{tenantId:[0-9]+}/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	public.HandleFunc("/tenants/{tenantId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/tenants/{tenantId:[0-9]+}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Tenant-ID, совпадающий с {tenantId})
	// ============================================================

	admin := api.PathPrefix("/tenants/{tenantId:[0-9]+}").Subrouter()
	admin.Use(middleware.TenantScope)

	// --- Профиль тенанта ---
	admin.HandleFunc("/profile", getTenantProfile.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/category-data", updateCategoryData.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Рабочие часы ---
	admin.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/working-hours/defaults", applyDefaultWorkingHours.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/working-hours/{weekday}", updateWorkingHours.Handle).Methods(http.MethodPut)

	// --- Блокировки ---
	admin.HandleFunc("/blocked-times", listBlockedTimes.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-times", createBlockedTime.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times/{blockedTimeId:[0-9]+}", deleteBlockedTime.Handle).Methods(http.MethodDelete)

	// --- Услуги ---
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", updateService.Handle).Methods(http.MethodPut)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
