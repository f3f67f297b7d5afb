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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/cancel_reservation"
	getLessonStartsHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/get_lesson_starts"
	getReservationHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/get_reservation"
	getStayAvailabilityHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/get_stay_availability"
	listResourceReservationsHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/list_resource_reservations"
	openWizardHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/open_wizard"
	submitBookingHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/submit_booking"
	updateReservationStatusHandler "github.com/m04kA/SMC-SchoolBooking/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/config"
	"github.com/m04kA/SMC-SchoolBooking/internal/infra/cache/dayslots"
	reservationRepo "github.com/m04kA/SMC-SchoolBooking/internal/infra/storage/reservation"
	instructorServiceClient "github.com/m04kA/SMC-SchoolBooking/internal/integrations/instructorservice"
	packageServiceClient "github.com/m04kA/SMC-SchoolBooking/internal/integrations/packageservice"
	reservationsService "github.com/m04kA/SMC-SchoolBooking/internal/service/reservations"
	getLessonStartsUC "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_lesson_starts"
	getStayAvailabilityUC "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_stay_availability"
	openWizardUC "github.com/m04kA/SMC-SchoolBooking/internal/usecase/open_wizard"
	submitBookingUC "github.com/m04kA/SMC-SchoolBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
	"github.com/m04kA/SMC-SchoolBooking/pkg/metrics"
	"github.com/m04kA/SMC-SchoolBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SchoolBooking...")
	log.Info("Configuration loaded from config.toml (timezone=%s)", cfg.Engine.Location)

	// Инициализируем метрики (если включены); методы Metrics безопасны для nil
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

	// Статистика connection pool публикуется стандартным коллектором
	if cfg.Metrics.Enabled {
		prometheus.MustRegister(collectors.NewDBStatsCollector(db, cfg.Database.DBName))
		log.Info("Database pool metrics registered")
	}

	// Кеш доступности инструкторов (опционально)
	var (
		lessonStartsCache getLessonStartsUC.SlotCache
		submitCache       submitBookingUC.SlotCache
		reservationsCache reservationsService.SlotCache
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, slot cache will degrade to instructor service calls: %v", err)
		}
		cancelPing()

		slotCache := dayslots.NewCache(redisClient, cfg.Engine.SlotCacheTTL())
		lessonStartsCache = slotCache
		submitCache = slotCache
		reservationsCache = slotCache
		log.Info("Slot cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Engine.SlotCacheTTL())
	}

	// Инициализируем интеграционных клиентов
	instructorClient := instructorServiceClient.NewClient(
		cfg.InstructorService.URL,
		time.Duration(cfg.InstructorService.Timeout)*time.Second,
		log,
	)
	packageClient := packageServiceClient.NewClient(
		cfg.PackageService.URL,
		time.Duration(cfg.PackageService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (InstructorService=%s timeout=%ds, PackageService=%s timeout=%ds)",
		cfg.InstructorService.URL, cfg.InstructorService.Timeout, cfg.PackageService.URL, cfg.PackageService.Timeout)

	// Репозиторий и менеджер транзакций
	reservationRepository := reservationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	loc := cfg.Engine.Loc()
	presets := cfg.Engine.Presets()

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		reservationsCache,
		cfg.Auth.StaffUserIDs,
		log,
	)

	// Инициализируем use cases
	getStayAvailabilityUseCase := getStayAvailabilityUC.NewUseCase(
		reservationRepository,
		getStayAvailabilityUC.Settings{
			SearchWindowDays: cfg.Engine.SearchWindowDays,
			Location:         loc,
		},
		metricsCollector,
		log,
	)

	getLessonStartsUseCase := getLessonStartsUC.NewUseCase(
		instructorClient,
		reservationRepository,
		lessonStartsCache,
		getLessonStartsUC.Settings{
			StepMinutes:        cfg.Engine.StepMinutes,
			BufferMinutes:      cfg.Engine.BufferMinutes,
			LessonBlockMinutes: cfg.Engine.LessonBlockMinutes,
			PresetStarts:       presets,
			Location:           loc,
		},
		metricsCollector,
		log,
	)

	openWizardUseCase := openWizardUC.NewUseCase(
		packageClient,
		reservationRepository,
		openWizardUC.Settings{
			LessonBlockMinutes: cfg.Engine.LessonBlockMinutes,
			PresetStarts:       presets,
			SearchWindowDays:   cfg.Engine.SearchWindowDays,
			Location:           loc,
		},
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		reservationRepository,
		txMgr,
		packageClient,
		submitCache,
		metricsCollector,
		submitBookingUC.Settings{
			LessonBlockMinutes: cfg.Engine.LessonBlockMinutes,
			PresetStarts:       presets,
			Location:           loc,
		},
		log,
	)

	// Инициализируем handlers
	getStayAvailability := getStayAvailabilityHandler.NewHandler(getStayAvailabilityUseCase, log)
	getLessonStarts := getLessonStartsHandler.NewHandler(getLessonStartsUseCase, log)
	openWizard := openWizardHandler.NewHandler(openWizardUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	listResourceReservations := listResourceReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь занятости ресурса и ближайшая свободная дата
	api.HandleFunc("/resources/{resourceId}/availability",
		getStayAvailability.Handle).Methods(http.MethodGet)

	// Доступные начала занятий инструктора на день
	api.HandleFunc("/instructors/{instructorId}/lesson-starts",
		getLessonStarts.Handle).Methods(http.MethodGet)

	// Открытие мастера бронирования пакета
	api.HandleFunc("/packages/{packageId}/wizard",
		openWizard.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Отправка черновика мастера
	protected.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление школой (для сотрудников) ---
	// Смена статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Список бронирований ресурса
	protected.HandleFunc("/resources/{resourceId}/reservations", listResourceReservations.Handle).Methods(http.MethodGet)

	// CORS для фронтенда мастера и перехват паник
	var handler http.Handler = r
	if len(cfg.Server.AllowedOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-User-ID"}),
		)(handler)
	}
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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
