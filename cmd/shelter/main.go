package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/api"
	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/config"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/gateway"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/security"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/shopspring/decimal"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting shelter api",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"gateway_live", cfg.Gateway.IsLive,
	)

	if err := api.Register(); err != nil {
		logger.Error("failed to load api document", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	donationRepo := postgres.NewDonationRepository(db)
	petRepo := postgres.NewPetRepository(db)
	userRepo := postgres.NewUserRepository(db)
	adoptionRepo := postgres.NewAdoptionRepository(db)
	inquiryRepo := postgres.NewInquiryRepository(db)
	volunteerRepo := postgres.NewVolunteerRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	storyRepo := postgres.NewStoryRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	paymentGateway := gateway.NewSSLCommerzClient(cfg.Gateway, logger)
	hasher := security.NewBcryptHasher()
	tokens := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := services.NewAuthService(userRepo, hasher, tokens, logger)

	svc := handlers.Services{
		Auth:       authService,
		Users:      services.NewUserService(userRepo, hasher, logger),
		Pets:       services.NewPetService(petRepo, logger),
		Adoptions:  services.NewAdoptionService(adoptionRepo, petRepo, logger),
		Inquiries:  services.NewInquiryService(inquiryRepo, petRepo, logger),
		Volunteers: services.NewVolunteerService(volunteerRepo, logger),
		Events:     services.NewEventService(eventRepo, logger),
		Stories:    services.NewStoryService(storyRepo, logger),
		Donations:  services.NewDonationService(donationRepo, petRepo, paymentGateway, cfg.Gateway.BaseURL, logger),
		Analytics:  services.NewAnalyticsService(analyticsRepo, logger),
	}

	errs := rest.NewErrorWriter(logger, cfg.Primary.IsDevelopment())

	devBypass := cfg.Auth.DevBypass && cfg.Primary.IsDevelopment()
	if devBypass {
		logger.Warn("AUTH DEV BYPASS ENABLED: requests without a token are treated as admin")
	} else if cfg.Auth.DevBypass {
		logger.Warn("auth dev bypass requested outside development, ignoring", "env", cfg.Primary.Env)
	}
	auth := middleware.NewAuth(authService, errs, devBypass, logger)

	h := handlers.NewHandlers(svc, db, cfg.Gateway.RedirectBaseURL(), errs, logger)

	router := h.Router(auth, handlers.RouterOptions{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimit.Requests,
		RateLimitWindow:    cfg.RateLimit.Window,
		RequestTimeout:     cfg.Server.RequestTimeout,
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
