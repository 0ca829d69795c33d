// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetSubmitRatePerMinute() int
}

// FUBConfig provides settings for the Follow Up Boss API client.
type FUBConfig interface {
	GetFUBAPIKey() string
	GetFUBSystemName() string
	GetFUBSystemKey() string
	GetFUBBaseURL() string
	GetFUBTimeout() time.Duration
	GetFUBAgentCacheTTL() time.Duration
	GetFUBDealStageFilter() bool
}

// FormLinkConfig provides the external (Zoho) form URL overrides.
type FormLinkConfig interface {
	GetZohoBuyerBBAFormURL() string
	GetZohoBuyerUCFormURL() string
	GetZohoSellerLAFormURL() string
	GetZohoSellerUCFormURL() string
	GetPhoneRegion() string
}

// FormStoreConfig selects the backing store for submitted forms.
type FormStoreConfig interface {
	GetFormStore() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides the shared Redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetNoteRetryMax() int
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketForms() string
	IsMinIOEnabled() bool
}

// SMTPConfig provides settings for submission receipt emails.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	IsEmailEnabled() bool
}

// AdminAuthConfig provides settings for the admin (form store) endpoints.
type AdminAuthConfig interface {
	GetAdminJWTSecret() string
	IsAdminEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Form store backends.
const (
	FormStoreMemory   = "memory"
	FormStorePostgres = "postgres"
	FormStoreMinIO    = "minio"
)

const defaultFUBBaseURL = "https://api.followupboss.com/v1"

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	SubmitRatePerMinute int

	FUBAPIKey          string
	FUBSystemName      string
	FUBSystemKey       string
	FUBBaseURL         string
	FUBTimeout         time.Duration
	FUBAgentCacheTTL   time.Duration
	FUBDealStageFilter bool

	ZohoBuyerBBAFormURL string
	ZohoBuyerUCFormURL  string
	ZohoSellerLAFormURL string
	ZohoSellerUCFormURL string
	PhoneRegion         string

	FormStore   string
	DatabaseURL string

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int
	NoteRetryMax     int

	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinioBucketForms string

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string

	AdminJWTSecret string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool     { return c.CORSAllowCreds }
func (c *Config) GetSubmitRatePerMinute() int { return c.SubmitRatePerMinute }

// FUBConfig implementation
func (c *Config) GetFUBAPIKey() string               { return c.FUBAPIKey }
func (c *Config) GetFUBSystemName() string           { return c.FUBSystemName }
func (c *Config) GetFUBSystemKey() string            { return c.FUBSystemKey }
func (c *Config) GetFUBBaseURL() string              { return c.FUBBaseURL }
func (c *Config) GetFUBTimeout() time.Duration       { return c.FUBTimeout }
func (c *Config) GetFUBAgentCacheTTL() time.Duration { return c.FUBAgentCacheTTL }
func (c *Config) GetFUBDealStageFilter() bool        { return c.FUBDealStageFilter }

// FormLinkConfig implementation
func (c *Config) GetZohoBuyerBBAFormURL() string { return c.ZohoBuyerBBAFormURL }
func (c *Config) GetZohoBuyerUCFormURL() string  { return c.ZohoBuyerUCFormURL }
func (c *Config) GetZohoSellerLAFormURL() string { return c.ZohoSellerLAFormURL }
func (c *Config) GetZohoSellerUCFormURL() string { return c.ZohoSellerUCFormURL }
func (c *Config) GetPhoneRegion() string         { return c.PhoneRegion }

// FormStoreConfig implementation
func (c *Config) GetFormStore() string { return c.FormStore }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }
func (c *Config) GetNoteRetryMax() int       { return c.NoteRetryMax }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string    { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string   { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string   { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool        { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketForms() string { return c.MinioBucketForms }
func (c *Config) IsMinIOEnabled() bool        { return c.MinIOEndpoint != "" }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) IsEmailEnabled() bool        { return c.SMTPHost != "" }

// AdminAuthConfig implementation
func (c *Config) GetAdminJWTSecret() string { return c.AdminJWTSecret }
func (c *Config) IsAdminEnabled() bool      { return c.AdminJWTSecret != "" }

// Load reads configuration from environment variables.
// A missing FUB_API_KEY is an error: every HTTP entry point calls the CRM.
func Load() (*Config, error) {
	cfg, err := LoadOptional()
	if err != nil {
		return nil, err
	}
	if cfg.FUBAPIKey == "" {
		return nil, fmt.Errorf("FUB_API_KEY is required")
	}
	return cfg, nil
}

// LoadOptional reads configuration without requiring CRM credentials.
// Used by tooling that reports a missing key itself.
func LoadOptional() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":5000"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		SubmitRatePerMinute: mustInt(getEnv("SUBMIT_RATE_PER_MINUTE", "30")),

		FUBAPIKey:          getEnv("FUB_API_KEY", ""),
		FUBSystemName:      getEnv("FUB_SYSTEM_NAME", ""),
		FUBSystemKey:       getEnv("FUB_SYSTEM_KEY", ""),
		FUBBaseURL:         strings.TrimRight(getEnv("FUB_BASE_URL", defaultFUBBaseURL), "/"),
		FUBTimeout:         mustDuration(getEnv("FUB_TIMEOUT", "10s")),
		FUBAgentCacheTTL:   mustDuration(getEnv("FUB_AGENT_CACHE_TTL", "5m")),
		FUBDealStageFilter: strings.EqualFold(getEnv("FUB_DEAL_STAGE_FILTER", "false"), "true"),

		ZohoBuyerBBAFormURL: getEnv("ZOHO_BUYER_BBA_FORM_URL", ""),
		ZohoBuyerUCFormURL:  getEnv("ZOHO_BUYER_UC_FORM_URL", ""),
		ZohoSellerLAFormURL: getEnv("ZOHO_SELLER_LA_FORM_URL", ""),
		ZohoSellerUCFormURL: getEnv("ZOHO_SELLER_UC_FORM_URL", ""),
		PhoneRegion:         strings.ToUpper(getEnv("PHONE_REGION", "US")),

		FormStore:   strings.ToLower(getEnv("FORM_STORE", FormStoreMemory)),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		NoteRetryMax:     mustInt(getEnv("FUB_NOTE_RETRY_MAX", "5")),

		MinIOEndpoint:    getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:   getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:      strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketForms: getEnv("MINIO_BUCKET_FORMS", "transaction-forms"),

		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Transaction Form"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.FormStore {
	case FormStoreMemory:
	case FormStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when FORM_STORE is postgres")
		}
	case FormStoreMinIO:
		if !c.IsMinIOEnabled() {
			return fmt.Errorf("MINIO_ENDPOINT is required when FORM_STORE is minio")
		}
	default:
		return fmt.Errorf("FORM_STORE must be one of memory, postgres, minio (got %q)", c.FormStore)
	}
	if c.FUBTimeout <= 0 {
		return fmt.Errorf("FUB_TIMEOUT must be a positive duration")
	}
	if c.IsEmailEnabled() && c.EmailFromAddress == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
