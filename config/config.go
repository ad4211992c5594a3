package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	APP struct {
		Name        string   `env:"SERVICE_NAME" envDefault:"academichub"`
		Host        string   `env:"SERVICE_HOST" envDefault:"0.0.0.0"`
		Port        string   `env:"SERVICE_PORT" envDefault:"8080"`
		Env         string   `env:"SERVICE_ENV" envDefault:"dev"`
		JWTSecret   string   `env:"SERVICE_JWT_SECRET"`
		CORSOrigins []string `env:"SERVICE_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
		// MaxUploadBytes caps a single multipart upload.
		MaxUploadBytes int64 `env:"SERVICE_MAX_UPLOAD_BYTES" envDefault:"104857600"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	}
	S3 struct {
		Endpoint        string `env:"S3_ENDPOINT"`
		Region          string `env:"S3_REGION"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		BucketUploads   string `env:"S3_BUCKET_UPLOADS" envDefault:"academic-files"`
		UseSSL          bool   `env:"S3_USE_SSL" envDefault:"false"`
		// PublicBaseURL prefixes content refs; derived from Endpoint when empty.
		PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
		PartSizeBytes uint64 `env:"S3_PART_SIZE_BYTES" envDefault:"16777216"`
	}
	MQ struct {
		User         string        `env:"RABBITMQ_USER"`
		Password     string        `env:"RABBITMQ_PASSWORD"`
		Vhost        string        `env:"RABBITMQ_VHOST"`
		Host         string        `env:"RABBITMQ_HOST"`
		AmqpPort     string        `env:"RABBITMQ_AMQP_PORT" envDefault:"5672"`
		Exchange     string        `env:"RABBITMQ_EXCHANGE" envDefault:"academichub.files"`
		ExchangeType string        `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"topic"`
		QueueName    string        `env:"RABBITMQ_QUEUE_NAME" envDefault:"academichub.files.feed"`
		DialAttempts uint          `env:"RABBITMQ_DIAL_ATTEMPTS" envDefault:"5"`
		DialDelay    time.Duration `env:"RABBITMQ_DIAL_DELAY" envDefault:"2s"`
	}
	Feed struct {
		CacheSize int           `env:"FEED_CACHE_SIZE" envDefault:"1024"`
		CacheTTL  time.Duration `env:"FEED_CACHE_TTL" envDefault:"10m"`
	}

	Config struct {
		App  APP
		DB   DB
		S3   S3
		MQ   MQ
		Feed Feed
	}
)

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

// MigrateDSN is DBDSN with the scheme golang-migrate's pgx/v5 driver registers.
func (c Config) MigrateDSN() (string, error) {
	dsn, err := c.DBDSN()
	if err != nil {
		return "", err
	}
	return "pgx5" + dsn[len("postgres"):], nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) S3PublicBaseURL() string {
	if c.S3.PublicBaseURL != "" {
		return c.S3.PublicBaseURL
	}
	scheme := "http"
	if c.S3.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.S3.Endpoint
}
