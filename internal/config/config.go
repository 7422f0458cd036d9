package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	LogLevel          string

	// Booking grid
	SlotOpenHour    int
	SlotCloseHour   int
	SlotStepMinutes int
	Location        *time.Location

	// Payment proofs
	StorageDir    string
	PublicBaseURL string
	ProofMaxBytes int64

	RateLimit RateLimitConfig

	// Lifecycle events. Empty AMQPURL disables publishing.
	AMQPURL      string
	AMQPExchange string

	// Optional account created on startup when both are set.
	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

// RateLimitConfig configures the Redis token bucket on public booking endpoints.
// Empty RedisAddr disables limiting.
type RateLimitConfig struct {
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	Capacity       int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{}
	var err error

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	if cfg.IsProduction && cfg.ProdOrigins == "" {
		return nil, fmt.Errorf("PROD_ORIGINS is required when APP_ENV=%s", PROD_STRING)
	}

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 0); err != nil {
		return nil, err
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 8*time.Hour); err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	if cfg.SlotOpenHour, err = getEnvAsInt("SLOT_OPEN_HOUR", 6); err != nil {
		return nil, err
	}
	if cfg.SlotCloseHour, err = getEnvAsInt("SLOT_CLOSE_HOUR", 20); err != nil {
		return nil, err
	}
	if cfg.SlotStepMinutes, err = getEnvAsInt("SLOT_STEP_MINUTES", 60); err != nil {
		return nil, err
	}

	tz := getEnv("FACILITY_TIMEZONE", "Asia/Jakarta")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid FACILITY_TIMEZONE %q: %w", tz, err)
	}

	cfg.StorageDir = getEnv("STORAGE_DIR", "./data")
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080/v1/admin/proofs")
	maxBytes, err := getEnvAsInt("PROOF_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.ProofMaxBytes = int64(maxBytes)

	cfg.RateLimit.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RateLimit.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RateLimit.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Capacity, err = getEnvAsInt("RATE_LIMIT_CAPACITY", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RefillInterval, err = getEnvAsDuration("RATE_LIMIT_REFILL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit.TTL, err = getEnvAsDuration("RATE_LIMIT_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	cfg.RateLimit.Prefix = getEnv("RATE_LIMIT_PREFIX", "rl")

	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", "court.reservations")

	cfg.BootstrapAdminUsername = getEnv("ADMIN_BOOTSTRAP_USERNAME", "")
	cfg.BootstrapAdminPassword = getEnv("ADMIN_BOOTSTRAP_PASSWORD", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values like "15m" or "1h".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
