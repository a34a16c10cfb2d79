package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("AUTH_JWT_SECRET is required")

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	RunMigrations   bool
	ConnMaxIdleSec  int32
	ConnMaxLifeSec  int32
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig defines token signing parameters. ExpiryUnit is parsed by the
// auth package.
type AuthConfig struct {
	JWTSecret  string
	Expiry     int
	ExpiryUnit string
	BcryptCost int
	Bootstrap  BootstrapConfig
}

// BootstrapConfig names an account created at startup when the user store
// has none by that name. Disabled when Username is empty.
type BootstrapConfig struct {
	Username string
	Password string
	Roles    []string
}

// Enabled reports whether a bootstrap account is configured.
func (b BootstrapConfig) Enabled() bool {
	return b.Username != ""
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing secret or a non-positive expiry fails fast.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "token-gate"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			ApplicationName: getEnv("APP_NAME", "token-gate"),
			MaxConns:        int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:   getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec:  int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec:  int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "development") == "development",
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("AUTH_JWT_SECRET"),
			ExpiryUnit: getEnv("AUTH_JWT_EXPIRY_UNIT", "minutes"),
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", 12),
			Bootstrap: BootstrapConfig{
				Username: os.Getenv("AUTH_BOOTSTRAP_USERNAME"),
				Password: os.Getenv("AUTH_BOOTSTRAP_PASSWORD"),
				Roles:    getEnvAsList("AUTH_BOOTSTRAP_ROLES", []string{"USER"}),
			},
		},
	}

	expiry, err := strconv.Atoi(getEnv("AUTH_JWT_EXPIRY", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_JWT_EXPIRY: %w", err)
	}
	cfg.Auth.Expiry = expiry

	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a AuthConfig) validate() error {
	if a.JWTSecret == "" {
		return ErrMissingSecret
	}
	if a.Expiry <= 0 {
		return fmt.Errorf("AUTH_JWT_EXPIRY must be positive, got %d", a.Expiry)
	}
	if a.Bootstrap.Enabled() && a.Bootstrap.Password == "" {
		return errors.New("AUTH_BOOTSTRAP_PASSWORD is required when AUTH_BOOTSTRAP_USERNAME is set")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
