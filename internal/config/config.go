package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	DevMode      bool
	LogLevel     string
	YahooBaseURL string

	// Pricing model constants. Fixed business parameters, overridable
	// through the environment for experiments and tests.
	Volatility          float64 // Annualized volatility for the option model
	RiskFreeRate        float64 // Annual risk-free rate
	FallbackPremiumRate float64 // Premium floor as a fraction of the strike
	ExpiryFloorYears    float64 // Minimum time-to-expiry fed to the model

	// Provider health check
	CanarySymbol     string
	HealthCronSpec   string
	DisableScheduler bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("PORT", 3000),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		YahooBaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),

		Volatility:          getEnvAsFloat("OPTION_VOLATILITY", 0.60),
		RiskFreeRate:        getEnvAsFloat("RISK_FREE_RATE", 0.04),
		FallbackPremiumRate: getEnvAsFloat("FALLBACK_PREMIUM_RATE", 0.15),
		ExpiryFloorYears:    getEnvAsFloat("EXPIRY_FLOOR_YEARS", 0.01),

		CanarySymbol:     getEnv("CANARY_SYMBOL", "SPY"),
		HealthCronSpec:   getEnv("HEALTH_CRON_SPEC", "@hourly"),
		DisableScheduler: getEnvAsBool("DISABLE_SCHEDULER", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	if c.YahooBaseURL == "" {
		return fmt.Errorf("YAHOO_BASE_URL is required")
	}

	if c.Volatility <= 0 {
		return fmt.Errorf("OPTION_VOLATILITY must be positive, got %f", c.Volatility)
	}

	if c.ExpiryFloorYears <= 0 {
		return fmt.Errorf("EXPIRY_FLOOR_YEARS must be positive, got %f", c.ExpiryFloorYears)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
