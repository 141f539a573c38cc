package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DBDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"3306"`
	DBUser     string `env:"DB_USER" env-default:"collabuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"collabpassword"`
	DBName     string `env:"DB_NAME" env-default:"collab_projects"`
	DBPath     string `env:"DB_PATH" env-default:"collab_projects.db"`

	SessionStore  string `env:"SESSION_STORE" env-default:"redis"`
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`

	JWTSecret       string        `env:"JWT_SECRET" env-default:"default-jwt-secret-change-me"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"5h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:4200,http://127.0.0.1:4200"`
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" env-default:"20"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" env-default:"40"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
