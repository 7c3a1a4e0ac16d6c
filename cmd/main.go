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

	cancelReservationHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/cancel_reservation"
	createDraftHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/create_draft"
	createReservationHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/create_reservation"
	deleteDraftHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/delete_draft"
	getAvailableSlotsHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_calendar"
	getCustomerReservationsHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_customer_reservations"
	getDraftHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_draft"
	getEmployeeScheduleHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_employee_schedule"
	getReservationHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/get_reservation"
	listCategoriesHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/list_categories"
	listEmployeesHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/list_employees"
	listServicesHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/list_services"
	resumeDraftHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/resume_draft"
	setQualificationsHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/set_qualifications"
	updateCalendarHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/update_calendar"
	updateReservationStatusHandler "github.com/salonix/SLX-BookingService/internal/api/handlers/update_reservation_status"
	"github.com/salonix/SLX-BookingService/internal/api/middleware"
	"github.com/salonix/SLX-BookingService/internal/config"
	"github.com/salonix/SLX-BookingService/internal/domain"
	calendarRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/calendar"
	catalogRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/catalog"
	draftRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/draft"
	reservationRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/reservation"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	userServiceClient "github.com/salonix/SLX-BookingService/internal/integrations/userservice"
	calendarService "github.com/salonix/SLX-BookingService/internal/service/calendar"
	catalogService "github.com/salonix/SLX-BookingService/internal/service/catalog"
	draftsService "github.com/salonix/SLX-BookingService/internal/service/drafts"
	reservationsService "github.com/salonix/SLX-BookingService/internal/service/reservations"
	staffService "github.com/salonix/SLX-BookingService/internal/service/staff"
	createReservationUC "github.com/salonix/SLX-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/salonix/SLX-BookingService/internal/usecase/get_available_slots"
	"github.com/salonix/SLX-BookingService/pkg/dbmetrics"
	"github.com/salonix/SLX-BookingService/pkg/logger"
	"github.com/salonix/SLX-BookingService/pkg/metrics"
	"github.com/salonix/SLX-BookingService/pkg/simpletxmanager"
	"github.com/salonix/SLX-BookingService/pkg/txmanager"
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

	log.Info("Starting SLX-BookingService...")
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

	// Инициализируем клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		catalogRepository     *catalogRepo.Repository
		staffRepository       *staffRepo.Repository
		reservationRepository *reservationRepo.Repository
		calendarRepository    *calendarRepo.Repository
		draftRepository       *draftRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		draftRepository = draftRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		catalogRepository = catalogRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		draftRepository = draftRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Дефолтный календарь для салонов без собственных настроек
	defaultCalendar := domain.BusinessCalendar{
		OpenHour:               cfg.Calendar.OpenHour,
		CloseHour:              cfg.Calendar.CloseHour,
		SlotGranularityMinutes: cfg.Calendar.SlotGranularityMinutes,
		AllowOverrunPastClose:  cfg.Calendar.AllowOverrunPastClose,
	}
	for _, wd := range cfg.Calendar.ClosedWeekdays {
		defaultCalendar.ClosedWeekdays = append(defaultCalendar.ClosedWeekdays, time.Weekday(wd))
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	staffSvc := staffService.NewService(staffRepository, log)
	calendarSvc := calendarService.NewService(calendarRepository, staffRepository, defaultCalendar, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, staffRepository, log)
	draftsSvc := draftsService.NewService(
		draftRepository,
		&draftsService.RealTimeProvider{},
		domain.DefaultDraftTTLMinutes*time.Minute,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		staffRepository,
		reservationRepository,
		calendarSvc,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		catalogSvc,
		staffRepository,
		reservationRepository,
		calendarSvc,
		userClient,
		draftRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationsSvc, log)
	getEmployeeSchedule := getEmployeeScheduleHandler.NewHandler(reservationsSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	updateCalendar := updateCalendarHandler.NewHandler(calendarSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listCategories := listCategoriesHandler.NewHandler(catalogSvc, log)
	listEmployees := listEmployeesHandler.NewHandler(staffSvc, log)
	setQualifications := setQualificationsHandler.NewHandler(staffSvc, log)
	createDraft := createDraftHandler.NewHandler(draftsSvc, log)
	getDraft := getDraftHandler.NewHandler(draftsSvc, log)
	deleteDraft := deleteDraftHandler.NewHandler(draftsSvc, log)
	resumeDraft := resumeDraftHandler.NewHandler(draftsSvc, log)

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

	// Доступные слоты для записи
	api.HandleFunc("/salons/{salonId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рабочий календарь салона
	api.HandleFunc("/salons/{salonId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Каталог услуг и мастера - первые шаги мастера записи
	api.HandleFunc("/salons/{salonId}/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/categories", listCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/employees", listEmployees.Handle).Methods(http.MethodGet)

	// Черновики бронирования - гость сохраняет выбор до авторизации
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{token}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{token}", deleteDraft.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (рабочий процесс салона)
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для сотрудников) ---
	// Расписание мастера на дату
	protected.HandleFunc("/salons/{salonId}/employees/{employeeId}/schedule",
		getEmployeeSchedule.Handle).Methods(http.MethodGet)

	// Обновление рабочего календаря
	protected.HandleFunc("/salons/{salonId}/calendar", updateCalendar.Handle).Methods(http.MethodPut)

	// Квалификации мастера
	protected.HandleFunc("/salons/{salonId}/employees/{employeeId}/qualifications",
		setQualifications.Handle).Methods(http.MethodPut)

	// --- Черновики ---
	// Возобновление оформления после авторизации
	protected.HandleFunc("/drafts/{token}/resume", resumeDraft.Handle).Methods(http.MethodPost)

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
