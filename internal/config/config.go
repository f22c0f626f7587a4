package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite;
	// "memory" selects the in-process store for demos)
	DBDriver     string
	DBConnection string

	// Session
	SessionSecret string
	SessionExpiry time.Duration

	// Demo identity (login always resolves to this user)
	DemoUserID    string
	DemoUserEmail string

	// Uploads
	MaxUploadSize int64

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	// Optional: when unset, photo uploads are disabled.
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "Stride"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8080"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/stride.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		SessionSecret: envRequired("SESSION_SECRET"),
		SessionExpiry: envDuration("SESSION_EXPIRY", 168*time.Hour), // 7 days

		DemoUserID:    envString("DEMO_USER_ID", "demo-user"),
		DemoUserEmail: envString("DEMO_USER_EMAIL", "demo@example.com"),

		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 5<<20), // 5 MiB

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	// Production: photo uploads need object storage
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

func validateProduction(cfg *Config) {
	if cfg.S3Bucket == "" {
		slog.Error("production deployment requires S3_BUCKET",
			"hint", "set APP_ENV=development to run without object storage")
		os.Exit(1)
	}
	if cfg.DBDriver == "memory" {
		slog.Error("production deployment cannot use the in-memory store",
			"hint", "set DB_DRIVER=sqlite or DB_DRIVER=pgx")
		os.Exit(1)
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) StorageConfigured() bool {
	return c.S3Bucket != ""
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}
