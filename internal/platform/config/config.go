package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	TokenTTL          time.Duration
	ResetTokenTTL     time.Duration
	DataEncryptionKey string
	Environment       string

	EmployerLegalName   string
	CompanyAddress      string
	PayrollContactEmail string

	SeedAdminEmail    string
	SeedAdminPassword string
	RunMigrations     bool
	RunSeed           bool

	DocumentDir  string
	MaxBodyBytes int64

	EmailFrom    string
	EmailEnabled bool
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	MaintenanceInterval time.Duration
	AuditRetentionDays  int
	MetricsEnabled      bool
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          getEnvDuration("ACCESS_TOKEN_TTL", 8*time.Hour),
		ResetTokenTTL:     getEnvDuration("PASSWORD_RESET_TTL", time.Hour),
		DataEncryptionKey: getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:       getEnv("APP_ENV", "development"),

		EmployerLegalName:   getEnv("EMPLOYER_LEGAL_NAME", "Kyronix LLC"),
		CompanyAddress:      getEnv("COMPANY_ADDRESS", "2261 Market Street, San Francisco, CA 94114"),
		PayrollContactEmail: getEnv("PAYROLL_CONTACT_EMAIL", "payroll@kyronix.ai"),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@kyronix.ai"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),

		DocumentDir:  getEnv("DOCUMENT_DIR", "storage/documents"),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 10485760)),

		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@kyronix.ai"),
		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", true),

		MaintenanceInterval: getEnvDuration("MAINTENANCE_INTERVAL", 24*time.Hour),
		AuditRetentionDays:  getEnvInt("AUDIT_RETENTION_DAYS", 365),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
