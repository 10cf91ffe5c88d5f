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

	archiveSalonHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/archive_salon"
	createBarberHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/create_barber"
	createBookingHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/create_booking"
	createJobHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/create_job"
	createServiceHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/create_service"
	deleteBarberHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/delete_barber"
	deleteServiceHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_available_slots"
	getBarbersHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_barbers"
	getPartnerJobsHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_partner_jobs"
	getSalonBookingsHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_salon_bookings"
	getSalonSettingsHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_salon_settings"
	getServicesHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/get_services"
	loginPartnerHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/login_partner"
	loginSalonHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/login_salon"
	registerPartnerHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/register_partner"
	registerSalonHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/register_salon"
	updateBookingStatusHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/update_booking_status"
	updateJobStatusHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/update_job_status"
	updateSalonSettingsHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/update_salon_settings"
	updateServiceHandler "github.com/gcare-app/GCare-BookingService/internal/api/handlers/update_service"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/config"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
	bookingRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/catalog"
	jobRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/job"
	partnerRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/partner"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
	"github.com/gcare-app/GCare-BookingService/internal/integrations/notifier"
	authService "github.com/gcare-app/GCare-BookingService/internal/service/auth"
	barbersService "github.com/gcare-app/GCare-BookingService/internal/service/barbers"
	bookingsService "github.com/gcare-app/GCare-BookingService/internal/service/bookings"
	catalogService "github.com/gcare-app/GCare-BookingService/internal/service/catalog"
	jobsService "github.com/gcare-app/GCare-BookingService/internal/service/jobs"
	settingsService "github.com/gcare-app/GCare-BookingService/internal/service/settings"
	createBookingUC "github.com/gcare-app/GCare-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/gcare-app/GCare-BookingService/internal/usecase/get_available_slots"
	"github.com/gcare-app/GCare-BookingService/pkg/authtoken"
	"github.com/gcare-app/GCare-BookingService/pkg/dbmetrics"
	"github.com/gcare-app/GCare-BookingService/pkg/logger"
	"github.com/gcare-app/GCare-BookingService/pkg/metrics"
	"github.com/gcare-app/GCare-BookingService/pkg/simpletxmanager"
	"github.com/gcare-app/GCare-BookingService/pkg/txmanager"
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

	log.Info("Starting GCare-BookingService...")
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
		salonRepository   *salonRepo.Repository
		partnerRepository *partnerRepo.Repository
		barberRepository  *barberRepo.Repository
		catalogRepository *catalogRepo.Repository
		bookingRepository *bookingRepo.Repository
		jobRepository     *jobRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		salonRepository = salonRepo.NewRepository(wrappedDB)
		partnerRepository = partnerRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		jobRepository = jobRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		salonRepository = salonRepo.NewRepository(db)
		partnerRepository = partnerRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		jobRepository = jobRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем выдачу токенов
	tokens := authtoken.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)

	// Инициализируем публикацию событий переходов статусов
	type TransitionNotifier interface {
		BookingTransition(ctx context.Context, salonID, bookingID int64, from, to string)
		JobTransition(ctx context.Context, partnerID, jobID int64, from, to string)
		Close() error
	}
	var events TransitionNotifier
	if cfg.Kafka.Enabled {
		events = notifier.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Info("Kafka notifier enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		events = notifier.NewNoop()
	}
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("Failed to close notifier: %v", err)
		}
	}()

	// Инициализируем сервисы
	authSvc := authService.NewService(salonRepository, partnerRepository, tokens, log)
	settingsSvc := settingsService.NewService(salonRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, bookingRepository, txMgr, log)
	barbersSvc := barbersService.NewService(barberRepository, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, barberRepository, txMgr, events, log)
	jobsSvc := jobsService.NewService(jobRepository, partnerRepository, events, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		catalogRepository,
		barberRepository,
		txMgr,
		events,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		salonRepository,
		catalogRepository,
		log,
	)

	// Инициализируем handlers
	registerSalon := registerSalonHandler.NewHandler(authSvc, log)
	loginSalon := loginSalonHandler.NewHandler(authSvc, log)
	registerPartner := registerPartnerHandler.NewHandler(authSvc, log)
	loginPartner := loginPartnerHandler.NewHandler(authSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	createBarber := createBarberHandler.NewHandler(barbersSvc, log)
	getBarbers := getBarbersHandler.NewHandler(barbersSvc, log)
	deleteBarber := deleteBarberHandler.NewHandler(barbersSvc, log)
	getSalonSettings := getSalonSettingsHandler.NewHandler(settingsSvc, log)
	archiveSalon := archiveSalonHandler.NewHandler(settingsSvc, log)
	updateSalonSettings := updateSalonSettingsHandler.NewHandler(settingsSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createJob := createJobHandler.NewHandler(jobsSvc, log)
	getPartnerJobs := getPartnerJobsHandler.NewHandler(jobsSvc, log)
	updateJobStatus := updateJobStatusHandler.NewHandler(jobsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Регистрация и вход
	api.HandleFunc("/salon/auth/register", registerSalon.Handle).Methods(http.MethodPost)
	api.HandleFunc("/salon/auth/login", loginSalon.Handle).Methods(http.MethodPost)
	api.HandleFunc("/partner/auth/register", registerPartner.Handle).Methods(http.MethodPost)
	api.HandleFunc("/partner/auth/login", loginPartner.Handle).Methods(http.MethodPost)

	// Клиентские бронирования (без аккаунта, по имени и телефону)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Выездные работы создаются от имени клиента
	api.HandleFunc("/jobs", createJob.Handle).Methods(http.MethodPost)

	// ============================================================
	// SALON ROUTES (bearer-токен с ролью salon)
	// ============================================================

	salon := api.PathPrefix("/salon").Subrouter()
	salon.Use(middleware.Auth(tokens, authtoken.RoleSalon, log))

	// --- Каталог услуг ---
	salon.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	salon.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	salon.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Мастера ---
	salon.HandleFunc("/barbers", getBarbers.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/barbers", createBarber.Handle).Methods(http.MethodPost)
	salon.HandleFunc("/barbers/{barberId}", deleteBarber.Handle).Methods(http.MethodDelete)

	// --- Настройки приёма ---
	salon.HandleFunc("/settings", getSalonSettings.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/settings", updateSalonSettings.Handle).Methods(http.MethodPut)
	salon.HandleFunc("/account", archiveSalon.Handle).Methods(http.MethodDelete)

	// --- Бронирования салона ---
	salon.HandleFunc("/bookings", getSalonBookings.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/bookings/{bookingId}/{action}", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PARTNER ROUTES (bearer-токен с ролью partner)
	// ============================================================

	partner := api.PathPrefix("/partner").Subrouter()
	partner.Use(middleware.Auth(tokens, authtoken.RolePartner, log))

	partner.HandleFunc("/jobs", getPartnerJobs.Handle).Methods(http.MethodGet)
	partner.HandleFunc("/jobs/{jobId}/{action}", updateJobStatus.Handle).Methods(http.MethodPatch)

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
