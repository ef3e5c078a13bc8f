package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Sweep    SweepConfig
	Mail     MailConfig
	Push     PushConfig
	PubSub   PubSubConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// SweepConfig controls the due-reminder sweep. Schedule is a robfig/cron
// spec; with CronEnabled false the sweep only runs through POST /internal/sweep.
type SweepConfig struct {
	CronEnabled  bool
	Schedule     string
	BatchSize    int
	Lease        time.Duration
	Concurrency  int
	EmailEnabled bool
	PushEnabled  bool
}

type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	Workers        int
}

type PushConfig struct {
	FCMProjectID       string
	FCMCredentialsFile string
	ExpoAccessToken    string
}

type PubSubConfig struct {
	NatsURL         string
	GCloudProjectID string
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	slowThreshold, err := time.ParseDuration(getEnv("DB_SLOW_THRESHOLD", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_SLOW_THRESHOLD: %w", err)
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is required")
	}

	sweep, err := loadSweep()
	if err != nil {
		return nil, err
	}

	mailWorkers, err := strconv.Atoi(getEnv("MAIL_WORKERS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_WORKERS: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			DSN:             dsn,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
			SlowThreshold:   slowThreshold,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Sweep: sweep,
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "noreply@primind.app"),
			FromName:       getEnv("MAIL_FROM_NAME", "Primind"),
			Workers:        mailWorkers,
		},
		Push: PushConfig{
			FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),
			FCMCredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
			ExpoAccessToken:    os.Getenv("EXPO_ACCESS_TOKEN"),
		},
		PubSub: PubSubConfig{
			NatsURL:         os.Getenv("NATS_URL"),
			GCloudProjectID: os.Getenv("GCLOUD_PROJECT_ID"),
		},
	}, nil
}

func loadSweep() (SweepConfig, error) {
	cronEnabled, err := strconv.ParseBool(getEnv("SWEEP_CRON_ENABLED", "true"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_CRON_ENABLED: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnv("SWEEP_BATCH_SIZE", "200"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_BATCH_SIZE: %w", err)
	}

	lease, err := time.ParseDuration(getEnv("SWEEP_LEASE", "5m"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_LEASE: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("SWEEP_CONCURRENCY", "8"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_CONCURRENCY: %w", err)
	}

	emailEnabled, err := strconv.ParseBool(getEnv("SWEEP_EMAIL_ENABLED", "true"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_EMAIL_ENABLED: %w", err)
	}

	pushEnabled, err := strconv.ParseBool(getEnv("SWEEP_PUSH_ENABLED", "false"))
	if err != nil {
		return SweepConfig{}, fmt.Errorf("invalid SWEEP_PUSH_ENABLED: %w", err)
	}

	return SweepConfig{
		CronEnabled:  cronEnabled,
		Schedule:     getEnv("SWEEP_SCHEDULE", "@every 1m"),
		BatchSize:    batchSize,
		Lease:        lease,
		Concurrency:  concurrency,
		EmailEnabled: emailEnabled,
		PushEnabled:  pushEnabled,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
