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

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addOffDayHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/add_off_day"
	adminLoginHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/admin_login"
	cancelBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_booking"
	getQuoteHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_quote"
	listBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_bookings"
	listOffDaysHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_off_days"
	markPaidHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/mark_paid"
	removeOffDayHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/remove_off_day"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	offDayRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/offday"
	sendgridClient "github.com/m04kA/SMC-StudioBooking/internal/integrations/sendgrid"
	twilioClient "github.com/m04kA/SMC-StudioBooking/internal/integrations/twilio"
	"github.com/m04kA/SMC-StudioBooking/internal/jobs/expire_pending"
	authService "github.com/m04kA/SMC-StudioBooking/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	offDaysService "github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/keymutex"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// recoveryLogger пишет паники из gorilla/handlers в общий лог
type recoveryLogger struct {
	log *logger.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
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

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Расписание студии
	schedule, err := cfg.BuildSchedule()
	if err != nil {
		log.Fatal("Failed to build studio schedule: %v", err)
	}
	engine := availability.NewEngine(schedule)
	log.Info("Studio schedule: %d slots, timezone=%s",
		schedule.Catalog().Len(), schedule.Location())

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

	// Без метрик обёртка только передает вызовы
	wrappedDB := dbmetrics.Wrap(db, nil)
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	offDayRepository := offDayRepo.NewRepository(wrappedDB)

	// Инициализируем каналы уведомлений
	var (
		emailSender notifications.EmailSender
		smsSender   notifications.SMSSender
	)
	if cfg.Notifications.Enabled && cfg.Notifications.SendGrid.Enabled {
		emailSender = sendgridClient.NewClient(
			cfg.Notifications.SendGrid.APIKey,
			cfg.Notifications.SendGrid.FromEmail,
			cfg.Notifications.SendGrid.FromName,
			log,
		)
		log.Info("SendGrid email channel enabled (from=%s)", cfg.Notifications.SendGrid.FromEmail)
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Twilio.Enabled {
		smsSender = twilioClient.NewClient(
			cfg.Notifications.Twilio.AccountSID,
			cfg.Notifications.Twilio.AuthToken,
			cfg.Notifications.Twilio.FromNumber,
			log,
		)
		log.Info("Twilio SMS channel enabled (from=%s)", cfg.Notifications.Twilio.FromNumber)
	}
	if emailSender == nil && smsSender == nil {
		log.Info("Notifications are log-only")
	}

	// Инициализируем сервисы
	notifier := notifications.NewService(
		emailSender,
		smsSender,
		notifications.Config{
			AdminEmail: cfg.Notifications.AdminEmail,
			Timeout:    cfg.Notifications.Timeout,
		},
		metricsCollector,
		log,
	)
	pricingSvc := pricing.NewService(pricing.Config{
		Currency:   cfg.Pricing.Currency,
		HourlyRate: cfg.Pricing.HourlyRate,
		Packages:   cfg.Pricing.Packages,
		Addons:     cfg.Pricing.Addons,
	})
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		notifier,
		log,
	)
	offDaySvc := offDaysService.NewService(
		offDayRepository,
		bookingRepository,
		log,
	)
	authSvc := authService.NewService(authService.Config{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       cfg.Admin.JWTSecret,
		TTL:          cfg.Admin.TokenLifetime(),
	}, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		offDayRepository,
		engine,
		pricingSvc,
		keymutex.New(),
		txMgr,
		notifier,
		metricsCollector,
		createBookingUC.Settings{
			AdvanceBookingDays: cfg.Studio.AdvanceBookingDays,
			PaymentWorkflow:    cfg.Studio.PaymentWorkflow,
			LockTimeout:        time.Duration(cfg.Studio.LockTimeout) * time.Second,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		offDayRepository,
		engine,
		getAvailableSlotsUC.Settings{AdvanceBookingDays: cfg.Studio.AdvanceBookingDays},
		log,
	)

	// Джоба истечения неоплаченных бронирований
	var expireJob *expire_pending.Job
	if cfg.Studio.PaymentWorkflow && cfg.Jobs.ExpirePendingEnabled {
		expireJob = expire_pending.NewJob(bookingRepository, txMgr, notifier, cfg.Studio.PendingPaymentTTL(), log)
		if err := expireJob.Start(cfg.Jobs.ExpirePendingSpec); err != nil {
			log.Fatal("Failed to start expire job: %v", err)
		}
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getQuote := getQuoteHandler.NewHandler(pricingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	markPaid := markPaidHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	listOffDays := listOffDaysHandler.NewHandler(offDaySvc, log)
	addOffDay := addOffDayHandler.NewHandler(offDaySvc, log)
	removeOffDay := removeOffDayHandler.NewHandler(offDaySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расчет стоимости
	api.HandleFunc("/quote", getQuote.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Authorization: Bearer)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authSvc, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/payment", markPaid.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// --- Выходные ---
	admin.HandleFunc("/off-days", listOffDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/off-days", addOffDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/off-days/{date}", removeOffDay.Handle).Methods(http.MethodDelete)

	// CORS и перехват паник
	var handler http.Handler = r
	if len(cfg.Server.AllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(handler)
		log.Info("CORS enabled for origins %v", cfg.Server.AllowedOrigins)
	}
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log: log}))(handler)

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

	if expireJob != nil {
		expireJob.Stop(shutdownCtx)
	}

	// Дожидаемся отправки уведомлений
	if err := notifier.Wait(shutdownCtx); err != nil {
		log.Warn("Pending notifications dropped: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
