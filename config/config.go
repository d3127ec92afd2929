package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Site          SiteConfig
	Contact       ContactConfig
	Mailjet       MailjetConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type SiteConfig struct {
	Name        string
	Description string
}

// ContactConfig is the fixed routing of contact submissions
type ContactConfig struct {
	InboxEmail    string
	InboxName     string
	FallbackEmail string
}

// MailjetConfig is the delivery configuration. Credentials are not required
// at startup: the submission service reads them per request through a
// MailjetSource and treats absence as a configuration fault.
type MailjetConfig struct {
	APIKey         string
	APISecret      string
	FromEmail      string
	FromName       string
	SendURL        string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

const (
	// DefaultFromName is used when MAILJET_FROM_NAME is unset or blank
	DefaultFromName = "Avuncular Group"

	keyMailjetAPIKey    = "MAILJET_API_KEY"
	keyMailjetAPISecret = "MAILJET_API_SECRET"
	keyMailjetFromEmail = "MAILJET_FROM_EMAIL"
	keyMailjetFromName  = "MAILJET_FROM_NAME"
)

// newViper builds the env-backed viper instance shared by Load and the
// per-request Mailjet source
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://avunculargroup.com")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://avunculargroup.com,https://www.avunculargroup.com")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("SITE_NAME", "Avuncular Group")
	v.SetDefault("SITE_DESCRIPTION", "A thoughtful collective building practical, human-focused ventures.")
	v.SetDefault("CONTACT_INBOX_EMAIL", "info@avunculargroup.com")
	v.SetDefault("CONTACT_INBOX_NAME", "Avuncular Group")
	v.SetDefault("CONTACT_FALLBACK_EMAIL", "info@avunculargroup.com")
	v.SetDefault(keyMailjetFromName, DefaultFromName)
	v.SetDefault("MAILJET_API_URL", "https://api.mailjet.com/v3.1/send")
	v.SetDefault("MAILJET_TIMEOUT_SECONDS", 30)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "avuncular-web")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "avuncular")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "avuncular-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	return v
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := newViper()

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	for _, origin := range strings.Split(v.GetString("ALLOWED_CORS_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
			AllowedOrigins: allowedOrigins,
		},
		Site: SiteConfig{
			Name:        v.GetString("SITE_NAME"),
			Description: v.GetString("SITE_DESCRIPTION"),
		},
		Contact: ContactConfig{
			InboxEmail:    v.GetString("CONTACT_INBOX_EMAIL"),
			InboxName:     v.GetString("CONTACT_INBOX_NAME"),
			FallbackEmail: v.GetString("CONTACT_FALLBACK_EMAIL"),
		},
		Mailjet: readMailjet(v),
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readMailjet(v *viper.Viper) MailjetConfig {
	fromName := strings.TrimSpace(v.GetString(keyMailjetFromName))
	if fromName == "" {
		fromName = DefaultFromName
	}
	return MailjetConfig{
		APIKey:         strings.TrimSpace(v.GetString(keyMailjetAPIKey)),
		APISecret:      strings.TrimSpace(v.GetString(keyMailjetAPISecret)),
		FromEmail:      strings.TrimSpace(v.GetString(keyMailjetFromEmail)),
		FromName:       fromName,
		SendURL:        v.GetString("MAILJET_API_URL"),
		TimeoutSeconds: v.GetInt("MAILJET_TIMEOUT_SECONDS"),
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Contact.InboxEmail == "" {
		return fmt.Errorf("CONTACT_INBOX_EMAIL is required")
	}
	if c.Contact.FallbackEmail == "" {
		return fmt.Errorf("CONTACT_FALLBACK_EMAIL is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// Missing lists the required delivery keys that are absent
func (m MailjetConfig) Missing() []string {
	var missing []string
	if m.APIKey == "" {
		missing = append(missing, keyMailjetAPIKey)
	}
	if m.APISecret == "" {
		missing = append(missing, keyMailjetAPISecret)
	}
	if m.FromEmail == "" {
		missing = append(missing, keyMailjetFromEmail)
	}
	return missing
}

// MailjetSource yields the delivery configuration for one submission
type MailjetSource interface {
	Mailjet() MailjetConfig
}

// EnvMailjetSource re-reads the Mailjet keys from the environment on every
// call, so rotated or newly provided credentials apply without a restart.
type EnvMailjetSource struct {
	v *viper.Viper
}

// NewEnvMailjetSource creates an environment-backed source
func NewEnvMailjetSource() *EnvMailjetSource {
	return &EnvMailjetSource{v: newViper()}
}

// Mailjet implements MailjetSource
func (s *EnvMailjetSource) Mailjet() MailjetConfig {
	return readMailjet(s.v)
}

// StaticMailjetSource serves a fixed configuration
type StaticMailjetSource MailjetConfig

// Mailjet implements MailjetSource
func (s StaticMailjetSource) Mailjet() MailjetConfig {
	return MailjetConfig(s)
}
