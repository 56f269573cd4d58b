package main

import (
	"condominio/internal/api"
	"condominio/internal/auth"
	"condominio/internal/config"
	"condominio/internal/db"
	"condominio/internal/repository"
	"condominio/internal/service"
	"condominio/internal/utils"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	sweepSchedule   = "@every 30m"
	sweepMaxIdle    = 2 * time.Hour
	cmfTimeout      = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := utils.NewLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	// Gastos live in Postgres when configured, in memory otherwise.
	var gastoRepo repository.GastoRepository
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to DB", zap.Error(err))
		}
		defer conn.Close()
		if err := db.EnsureSchema(ctx, conn); err != nil {
			logger.Fatal("Failed to create schema", zap.Error(err))
		}
		pgRepo := repository.NewPostgresGastoRepository(conn)
		if err := pgRepo.SeedIfEmpty(ctx, repository.SeedGastos); err != nil {
			logger.Fatal("Failed to seed gastos", zap.Error(err))
		}
		gastoRepo = pgRepo
	} else {
		logger.Warn("DATABASE_URL not set, gastos are kept in memory")
		gastoRepo = repository.NewMemoryGastoRepository(repository.SeedGastos)
	}

	var ufCache repository.UFCache
	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		ufCache = repository.NewRedisUFCache(rdb)
	} else {
		ufCache = repository.NewMemoryUFCache()
	}

	// Outbound channels are optional; a nil sender disables its channel.
	var emailSender service.EmailSender
	if s := service.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, logger); s != nil {
		emailSender = s
	}
	var smsSender service.SMSSender
	if s := service.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger); s != nil {
		smsSender = s
	}
	var checkout service.CheckoutCreator
	if s := service.NewStripeService(cfg.StripeKey, cfg.StripeSuccessURL, cfg.StripeCancelURL); s != nil {
		checkout = s
	} else {
		logger.Warn("STRIPE_KEY not set, online payments disabled")
	}

	// repositories
	backend := repository.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
	reservaRepo := repository.NewReservationRepository(backend)
	pagoRepo := repository.NewPaymentRepository(backend)
	cmf := repository.NewCMFClient(cfg.CMFAPIURL, cfg.CMFAPIKey, cmfTimeout)

	// services
	notifier := service.NewNotifyService(emailSender, smsSender, cfg.ConserjePhone, logger)
	ufSvc := service.NewUFService(cmf, ufCache, logger)
	reservaSvc := service.NewReservationService(reservaRepo, notifier, logger, cfg.ReservaResetDelay)
	gastoSvc := service.NewGastoService(gastoRepo, logger)
	pagoSvc := service.NewPaymentService(pagoRepo, ufSvc, checkout, logger)
	dashboardSvc := service.NewDashboardService(gastoSvc, pagoSvc, reservaSvc, ufSvc, logger)

	jobs := service.NewJobService(logger)
	if err := jobs.Schedule(cfg.UFRefreshCron, "uf-refresh", time.Minute, service.RefreshUF(ufSvc)); err != nil {
		logger.Fatal("Failed to schedule UF refresh", zap.Error(err))
	}
	if err := jobs.Schedule(sweepSchedule, "wizard-sweep", time.Minute, service.SweepWizards(reservaSvc.Store(), sweepMaxIdle, logger)); err != nil {
		logger.Fatal("Failed to schedule session sweep", zap.Error(err))
	}
	jobs.Start()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
	if cfg.IsProduction() && cfg.JWTSecret == "dev-secret-change-me" {
		logger.Warn("JWT_SECRET is the development default")
	}

	router := api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(issuer, reservaSvc, logger),
		Reservas:  api.NewReservationHandler(reservaSvc, logger),
		Gastos:    api.NewGastoHandler(gastoSvc),
		Pagos:     api.NewPagosHandler(pagoSvc),
		Dashboard: api.NewDashboardHandler(dashboardSvc),
		UF:        api.NewUFHandler(ufSvc),
		Stripe:    api.NewStripeWebhookHandler(cfg.StripeWebhookSecret, notifier, logger),
	}, issuer, api.NewRateLimiter(cfg.LoginRatePerMin), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           api.WithMiddleware(router, cfg.AllowedOrigins(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server running", zap.String("addr", srv.Addr), zap.String("backend", cfg.BackendURL))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	jobs.Stop(shutdownCtx)
	notifier.Wait()
	logger.Info("Server stopped")
}
