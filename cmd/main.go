package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Dosada05/football-clinic/config"
	"github.com/Dosada05/football-clinic/db"
	"github.com/Dosada05/football-clinic/handlers"
	"github.com/Dosada05/football-clinic/live"
	"github.com/Dosada05/football-clinic/metrics"
	"github.com/Dosada05/football-clinic/payments"
	"github.com/Dosada05/football-clinic/repositories"
	api "github.com/Dosada05/football-clinic/routes"
	"github.com/Dosada05/football-clinic/services"
	"github.com/Dosada05/football-clinic/storage"
	"github.com/Dosada05/football-clinic/web"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("api_base_url", cfg.APIBaseURL))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Журнал платежей (опционально)
	audit := repositories.NewNopPaymentAuditRepository()
	if cfg.DatabaseURL != "" {
		dbConn, err := connectAudit(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to audit database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		audit = repositories.NewPostgresPaymentAuditRepository(dbConn)
		logger.Info("payment audit database ready")
	} else {
		logger.Info("DATABASE_URL not set, payment audit disabled")
	}

	// Архив выгрузок и квитанций в Cloudflare R2 (опционально)
	var archive *storage.Archive
	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		archive = storage.NewArchive(uploader)
		logger.Info("Cloudflare R2 archive initialized")
	}

	// Платёжный провайдер
	provider, err := payments.Init(cfg.StripePublishableKey)
	if err != nil {
		logger.Warn("payment provider not configured, checkout disabled", slog.Any("error", err))
	} else {
		logger.Info("payment provider initialized", slog.String("mode", provider.Mode()))
	}

	var tokens *services.CheckoutTokens
	if cfg.CheckoutSecretKey != "" {
		tokens = services.NewCheckoutTokens(cfg.CheckoutSecretKey, services.CheckoutTokenTTL)
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Внешний API заявок и платежей
	apiClient := repositories.NewAPIClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, m)
	registrationRepo := repositories.NewHTTPRegistrationRepository(apiClient)
	paymentRepo := repositories.NewHTTPPaymentRepository(apiClient)
	logger.Info("Repositories initialized")

	pages, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to parse page templates", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация обработчиков HTTP
	siteHandler := handlers.NewSiteHandler(pages)
	registrationHandler := handlers.NewRegistrationHandler(registrationRepo, tokens, cfg.RegistrationFeeAED, logger, m)
	paymentHandler := handlers.NewPaymentHandler(services.PaymentDeps{
		Payments:      paymentRepo,
		Registrations: registrationRepo,
		Audit:         audit,
		Logger:        logger,
		Metrics:       m,
		Currency:      cfg.PaymentCurrency,
		PublicURL:     cfg.PublicURL,
	}, tokens, pages)
	receiptHandler := handlers.NewReceiptHandler(services.NewReceiptService(paymentRepo, logger), archive, pages, logger)
	adminHandler := handlers.NewAdminHandler(registrationRepo, wsHub, archive, pages, logger)
	auditHandler := handlers.NewAuditHandler(audit, logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Tokens:         tokens,
			Metrics:        m,
			Gatherer:       registry,
		},
		siteHandler,
		registrationHandler,
		paymentHandler,
		receiptHandler,
		adminHandler,
		auditHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// Закрываем WebSocket клиентов
	stop()
	<-wsHub.Done()
	logger.Info("application exited")
}

func connectAudit(ctx context.Context, dsn string) (*sql.DB, error) {
	dbConn, err := db.Connect(dsn, 5*time.Second)
	if err != nil {
		return nil, err
	}
	schemaCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.EnsureSchema(schemaCtx, dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}
