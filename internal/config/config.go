package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"curbwatch"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Server
	Port             string        `envconfig:"PORT" default:"8080"`
	CORSOrigins      string        `envconfig:"CORS_ORIGINS" default:"*"`
	BodyLimitBytes   int           `envconfig:"BODY_LIMIT_BYTES" default:"4194304"`
	RateLimitPerMin  int           `envconfig:"RATE_LIMIT_PER_MIN" default:"60"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogRetentionDays int           `envconfig:"LOG_RETENTION_DAYS" default:"30"`

	// Reports
	DefaultPlateState string `envconfig:"DEFAULT_PLATE_STATE" default:"CA"`
	PhotoMaxKB        int    `envconfig:"PHOTO_MAX_KB" default:"1024"`

	// Photo offload (optional)
	PhotoBucket        string `envconfig:"PHOTO_BUCKET"`
	PhotoPublicBaseURL string `envconfig:"PHOTO_PUBLIC_BASE_URL"`

	// Observability
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	SentryDSN string `envconfig:"SENTRY_DSN"`
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
}

func Load() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DBPassword == "" {
		return nil, fmt.Errorf("set DB_PASSWORD")
	}
	if c.PhotoMaxKB <= 0 {
		return nil, fmt.Errorf("PHOTO_MAX_KB must be positive, got %d", c.PhotoMaxKB)
	}
	if c.DefaultPlateState == "" {
		c.DefaultPlateState = "CA"
	}

	return c, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
