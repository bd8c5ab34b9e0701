package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/fomo-calculator/internal/clients/yahoo"
	"github.com/aristath/fomo-calculator/internal/config"
	"github.com/aristath/fomo-calculator/internal/jobs"
	"github.com/aristath/fomo-calculator/internal/modules/charts"
	"github.com/aristath/fomo-calculator/internal/modules/valuation"
	"github.com/aristath/fomo-calculator/internal/scheduler"
	"github.com/aristath/fomo-calculator/internal/server"
	"github.com/aristath/fomo-calculator/pkg/formulas"
	"github.com/aristath/fomo-calculator/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting FOMO Calculator")

	// Market data client
	yahooClient := yahoo.NewClient(cfg.YahooBaseURL, log)

	// Valuation engine
	pricing := valuation.PricingConfig{
		BS: formulas.BSParams{
			Volatility:   cfg.Volatility,
			RiskFreeRate: cfg.RiskFreeRate,
		},
		FallbackPremiumRate: cfg.FallbackPremiumRate,
		ExpiryFloorYears:    cfg.ExpiryFloorYears,
	}
	valuationService := valuation.NewService(yahooClient, pricing, log)

	// Charts and stats
	chartsService := charts.NewService(yahooClient, log)

	valuationHandler := valuation.NewHandler(valuationService, chartsService, log)
	chartsHandler := charts.NewHandler(chartsService, log)

	// Background jobs
	if !cfg.DisableScheduler {
		sched := scheduler.New(log)

		healthJob := jobs.NewProviderCheck(yahooClient, cfg.CanarySymbol, log)
		if err := sched.AddJob(cfg.HealthCronSpec, healthJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register provider health check")
		}

		sched.Start()
		defer sched.Stop()
	}

	// HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DevMode:   cfg.DevMode,
		Valuation: valuationHandler,
		Charts:    chartsHandler,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
