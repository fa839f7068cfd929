// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

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
}

// EmailConfig provides settings for email sending and contact sync.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetBrevoAPIKey() string
	GetBrevoAPIURL() string
	GetBrevoListID() int64
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// SMTPConfig provides settings for the SMTP fallback sender.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	IsSMTPEnabled() bool
}

// GeoConfig provides settings for the postcode-coordinate and
// irradiance-estimation services.
type GeoConfig interface {
	GetPostcodesAPIURL() string
	GetPVGISAPIURL() string
	IsGeoEnabled() bool
}

// LeadStoreConfig provides settings for the flat-file lead store.
type LeadStoreConfig interface {
	GetLeadsFilePath() string
	GetAdminAPIKey() string
}

// PricingConfig provides settings for the pricing book.
type PricingConfig interface {
	GetPricingFilePath() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values. It is loaded once at
// startup and read-only for the lifetime of the process.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	AppBaseURL       string
	EmailEnabled     bool
	BrevoAPIKey      string
	BrevoAPIURL      string
	BrevoListID      int64
	EmailFromName    string
	EmailFromAddress string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	PostcodesAPIURL  string
	PVGISAPIURL      string
	GeoEnabled       bool
	LeadsFilePath    string
	AdminAPIKey      string
	PricingFilePath  string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetBrevoAPIKey() string      { return c.BrevoAPIKey }
func (c *Config) GetBrevoAPIURL() string      { return c.BrevoAPIURL }
func (c *Config) GetBrevoListID() int64       { return c.BrevoListID }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string     { return c.SMTPHost }
func (c *Config) GetSMTPPort() int        { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string { return c.SMTPPassword }
func (c *Config) IsSMTPEnabled() bool     { return c.SMTPHost != "" }

// GeoConfig implementation
func (c *Config) GetPostcodesAPIURL() string { return c.PostcodesAPIURL }
func (c *Config) GetPVGISAPIURL() string     { return c.PVGISAPIURL }
func (c *Config) IsGeoEnabled() bool         { return c.GeoEnabled }

// LeadStoreConfig implementation
func (c *Config) GetLeadsFilePath() string { return c.LeadsFilePath }
func (c *Config) GetAdminAPIKey() string   { return c.AdminAPIKey }

// PricingConfig implementation
func (c *Config) GetPricingFilePath() string { return c.PricingFilePath }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	brevoAPIKey := getEnv("BREVO_API_KEY", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:       getEnv("APP_BASE_URL", "http://localhost:4200"),
		EmailEnabled:     emailEnabled && brevoAPIKey != "",
		BrevoAPIKey:      brevoAPIKey,
		BrevoAPIURL:      getEnv("BREVO_API_URL", "https://api.brevo.com"),
		BrevoListID:      mustInt64(getEnv("BREVO_LIST_ID", "0")),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Solar Quotes"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		PostcodesAPIURL:  getEnv("POSTCODES_API_URL", "https://api.postcodes.io"),
		PVGISAPIURL:      getEnv("PVGIS_API_URL", "https://re.jrc.ec.europa.eu/api/v5_2"),
		GeoEnabled:       strings.EqualFold(getEnv("GEO_ENABLED", "true"), "true"),
		LeadsFilePath:    getEnv("LEADS_FILE", "data/leads.json"),
		AdminAPIKey:      getEnv("ADMIN_API_KEY", ""),
		PricingFilePath:  getEnv("PRICING_FILE", ""),
	}

	if emailEnabled && cfg.BrevoAPIKey == "" && cfg.SMTPHost == "" {
		// Without a provider email silently degrades to the noop sender;
		// surface a hard error only when an address was configured.
		if cfg.EmailFromAddress != "" {
			return nil, fmt.Errorf("BREVO_API_KEY or SMTP_HOST is required when EMAIL_FROM_ADDRESS is set")
		}
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
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
