package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	PostgresDSN string
	RedisURL    string
	JWTSecret   string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	OpsEmail     string

	UploadRoot string

	// AllowDecisionRevision lets a company overwrite an already accepted or
	// rejected application with the opposite decision.
	AllowDecisionRevision bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		PostgresDSN:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTokenTTL:        getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:       getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		DBMaxOpenConns:        getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:        getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:         getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:         getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:        getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              getInt("SMTP_PORT", 587),
		SMTPUser:              getEnv("SMTP_USER", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		MailFrom:              getEnv("MAIL_FROM", "no-reply@trabajatec.com"),
		OpsEmail:              getEnv("OPS_EMAIL", "aplicaciones@trabajatec.com"),
		UploadRoot:            getEnv("UPLOAD_ROOT", "./uploads"),
		AllowDecisionRevision: getBool("ALLOW_DECISION_REVISION", true),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
