package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all runtime configuration for the bank service.
type Config struct {
	Port             int
	LogLevel         string
	ExchangeBaseURL  string
	ExchangeTimeout  time.Duration
	InitialLiquidity decimal.Decimal
	CommitRetries    int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	exchangeBaseURL := getStr("EXCHANGE_BASE_URL", "http://localhost:9000")

	exchangeTimeout, err := getDuration("EXCHANGE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid EXCHANGE_TIMEOUT: %w", err)
	}

	initialLiquidity, err := getDecimal("INITIAL_LIQUIDITY", decimal.NewFromInt(1_000_000_000))
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_LIQUIDITY: %w", err)
	}
	if !initialLiquidity.IsPositive() {
		return nil, fmt.Errorf("invalid INITIAL_LIQUIDITY: must be positive")
	}

	commitRetries, err := getInt("COMMIT_RETRIES", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid COMMIT_RETRIES: %w", err)
	}
	if commitRetries < 1 {
		return nil, fmt.Errorf("invalid COMMIT_RETRIES: must be at least 1")
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:             port,
		LogLevel:         logLevel,
		ExchangeBaseURL:  exchangeBaseURL,
		ExchangeTimeout:  exchangeTimeout,
		InitialLiquidity: initialLiquidity,
		CommitRetries:    commitRetries,
		ReadTimeout:      readTimeout,
		WriteTimeout:     writeTimeout,
		IdleTimeout:      idleTimeout,
		ShutdownTimeout:  shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func getDecimal(key string, defaultVal decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return decimal.NewFromString(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
