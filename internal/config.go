package internal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server" env:", prefix=SERVER_"`
	Storage       StorageConfig       `mapstructure:"storage" env:", prefix=STORAGE_"`
	Security      SecurityConfig      `mapstructure:"security" env:", prefix=SECURITY_"`
	Mailer        MailerConfig        `mapstructure:"mailer" env:", prefix=MAILER_"`
	Observability ObservabilityConfig `mapstructure:"observability" env:", prefix=OBS_"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" env:"PORT, default=8080"`
	BaseURL        string        `mapstructure:"base_url" env:"BASE_URL"`
	AllowedOrigins string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT, default=10s"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT, default=15s"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT, default=60s"`
}

// StorageConfig selects the durable key-value backend the store persists
// its collections to. One JSON document per collection key.
type StorageConfig struct {
	Driver      string `mapstructure:"driver" env:"DRIVER, default=sqlite"`
	SQLitePath  string `mapstructure:"sqlite_path" env:"SQLITE_PATH, default=studio.db"`
	PostgresDSN string `mapstructure:"postgres_dsn" env:"POSTGRES_DSN"`
	RedisAddr   string `mapstructure:"redis_addr" env:"REDIS_ADDR"`
	RedisDB     int    `mapstructure:"redis_db" env:"REDIS_DB, default=0"`
}

type SecurityConfig struct {
	AccessTokenSecret    string        `mapstructure:"access_token_secret" env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret   string        `mapstructure:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration" env:"ACCESS_TOKEN_DURATION, default=15m"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" env:"REFRESH_TOKEN_DURATION, default=168h"`
	BCryptCost           int           `mapstructure:"bcrypt_cost" env:"BCRYPT_COST, default=10"`
}

// MailerConfig points at the transactional email API used for return
// responses. Dispatch is fire-and-forget; the store never waits on it.
type MailerConfig struct {
	Enabled    bool          `mapstructure:"enabled" env:"ENABLED, default=false"`
	APIURL     string        `mapstructure:"api_url" env:"API_URL"`
	APIKey     string        `mapstructure:"api_key" env:"API_KEY"`
	Timeout    time.Duration `mapstructure:"timeout" env:"TIMEOUT, default=10s"`
	MaxWorkers int           `mapstructure:"max_workers" env:"MAX_WORKERS, default=4"`
	QueueSize  int           `mapstructure:"queue_size" env:"QUEUE_SIZE, default=64"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics" env:", prefix=METRICS_"`
	Logging LoggingConfig `mapstructure:"logging" env:", prefix=LOG_"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"ENABLED, default=false"`
	Path    string `mapstructure:"path" env:"PATH, default=/metrics"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL, default=info"`
	Format string `mapstructure:"format" env:"FORMAT, default=text"`
}

// LoadConfigFromEnv builds the configuration purely from environment
// variables, used for container deployments where no config file ships.
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Mailer.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("mailer config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case "memory":
		return nil
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("postgres_dsn is required for the postgres driver")
		}
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access token secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh token secret must be at least 32 characters")
	}
	if c.BCryptCost < 4 || c.BCryptCost > 31 {
		return errors.New("bcrypt cost out of range")
	}
	return nil
}

func (c *MailerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.APIURL == "" {
		return errors.New("api_url is required when the mailer is enabled")
	}
	if _, err := url.Parse(c.APIURL); err != nil {
		return fmt.Errorf("invalid mailer api_url: %w", err)
	}
	return nil
}
