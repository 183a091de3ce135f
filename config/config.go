package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string

	// Token verification. Tokens are issued by the external auth service;
	// this service only verifies them (HS256 shared secret or RS256 JWKS).
	AuthJWTSecret string
	AuthJWKSURL   string

	FrontendURL string

	// SMTP relay for contact requests (the candidate's address never leaves
	// the backend)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string

	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string

	// Rate limiting
	RateLimitWindowSeconds int
	RateLimitRequests      int

	// Audit log anchoring (S3 Object Lock). Disabled unless a bucket is set.
	AnchorProvider       string // "aws" or "wasabi"
	AnchorBucket         string
	AnchorKeyPrefix      string
	AnchorRegion         string
	AnchorAccessKey      string
	AnchorSecretKey      string
	AnchorWasabiEndpoint string
	AnchorRetentionYears int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthJWKSURL:   strings.TrimRight(getEnv("AUTH_JWKS_URL", ""), "/"),

		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitRequests:      getEnvInt("RATE_LIMIT_REQUESTS", 100),

		AnchorProvider:       getEnv("AUDIT_ANCHOR_PROVIDER", "aws"),
		AnchorBucket:         getEnv("AUDIT_ANCHOR_BUCKET", ""),
		AnchorKeyPrefix:      getEnv("AUDIT_ANCHOR_KEY_PREFIX", "privacy-anchors/"),
		AnchorRegion:         getEnv("AUDIT_ANCHOR_REGION", "us-east-1"),
		AnchorAccessKey:      getEnv("AUDIT_ANCHOR_ACCESS_KEY", ""),
		AnchorSecretKey:      getEnv("AUDIT_ANCHOR_SECRET_KEY", ""),
		AnchorWasabiEndpoint: getEnv("AUDIT_ANCHOR_WASABI_ENDPOINT", ""),
		AnchorRetentionYears: getEnvInt("AUDIT_ANCHOR_RETENTION_YEARS", 1),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AuthJWTSecret == "" && cfg.AuthJWKSURL == "" {
		log.Println("WARNING: neither AUTH_JWT_SECRET nor AUTH_JWKS_URL is configured. Token verification will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
