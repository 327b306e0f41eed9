package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"3306"`
	DBUser     string `env:"DB_USER" env-default:"taskuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"taskpassword"`
	DBName     string `env:"DB_NAME" env-default:"task_management"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	DBPath     string `env:"DB_PATH" env-default:"task_management.db"`

	SessionStore  string `env:"SESSION_STORE" env-default:"redis"`
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE" env-default:"3600"`

	GinMode            string        `env:"GIN_MODE" env-default:"debug"`
	ServerPort         string        `env:"SERVER_PORT" env-default:"8080"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" env-default:"10"`
	LoginBurst         int `env:"LOGIN_BURST" env-default:"5"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cleanenv cannot express with tags.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case SessionStoreRedis, SessionStoreCookie:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.LoginRatePerMinute <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) ServerAddr() string {
	return ":" + c.ServerPort
}
