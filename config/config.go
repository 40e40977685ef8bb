package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Values shipped in example .env files; they never count as credentials.
const (
	placeholderAPIKey    = "your_openai_api_key_here"
	placeholderSecretKey = "your_secret_key_here_make_it_long_and_secure"
)

// ErrInsecureSecretKey rejects a production start without a private token signing key.
var ErrInsecureSecretKey = errors.New("SECRET_KEY must be set to a private value in production")

type Config struct {
	Server struct {
		Addr           string   `env:"SERVER_ADDR" envDefault:":8000"`
		Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
		LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	}

	Database struct {
		URL string `env:"DATABASE_URL" envDefault:"sqlite://landlord.db"`
	}

	Redis struct {
		URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	}

	Auth struct {
		SecretKey         string `env:"SECRET_KEY" envDefault:"your_secret_key_here_make_it_long_and_secure"`
		AccessTokenExpiry int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	}

	// Cache expiry windows. Entries are never purged on writes.
	Cache struct {
		DashboardTTL time.Duration `env:"DASHBOARD_CACHE_TTL" envDefault:"300s"`
		PropertyTTL  time.Duration `env:"PROPERTY_CACHE_TTL" envDefault:"1800s"`
		SessionTTL   time.Duration `env:"SESSION_CACHE_TTL" envDefault:"3600s"`
	}

	AI struct {
		APIKey  string        `env:"OPENAI_API_KEY"`
		BaseURL string        `env:"OPENAI_BASE_URL"`
		Model   string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
		Timeout time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	}

	Pagination struct {
		DefaultLimit int `env:"PAGINATION_DEFAULT_LIMIT" envDefault:"100"`
		MaxLimit     int `env:"PAGINATION_MAX_LIMIT" envDefault:"500"`
	}

	Geocoding struct {
		Enabled    bool          `env:"GEOCODING_ENABLED" envDefault:"false"`
		URL        string        `env:"GEOCODING_URL" envDefault:"https://nominatim.openstreetmap.org/search"`
		QueueSize  int           `env:"GEOCODE_QUEUE_SIZE" envDefault:"100"`
		MaxRetries int           `env:"GEOCODE_MAX_RETRIES" envDefault:"3"`
		RetryDelay time.Duration `env:"GEOCODE_RETRY_DELAY" envDefault:"5s"`
	}

	Scheduler struct {
		// Zero disables the sweep.
		OverdueSweepInterval time.Duration `env:"OVERDUE_SWEEP_INTERVAL" envDefault:"1h"`
	}

	Market struct {
		ComparableRadiusKm float64 `env:"COMPARABLE_RADIUS_KM" envDefault:"5"`
	}
}

// AIEnabled reports whether a usable provider credential is configured.
func (c *Config) AIEnabled() bool {
	return c.AI.APIKey != "" && c.AI.APIKey != placeholderAPIKey
}

// HasPrivateSecretKey reports whether the token signing key is something other
// than empty or the published example value.
func (c *Config) HasPrivateSecretKey() bool {
	return c.Auth.SecretKey != "" && c.Auth.SecretKey != placeholderSecretKey
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.IsProduction() && !cfg.HasPrivateSecretKey() {
		return nil, ErrInsecureSecretKey
	}
	return cfg, nil
}
