package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/titancargo/courier-site/internal/shell/mail"
)

// EnvPrefix prefixes every environment variable that maps onto a config key.
const EnvPrefix = "COURIER"

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Site     SiteConfig     `mapstructure:"site"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Contact  ContactConfig  `mapstructure:"contact"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds the content store location.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SiteConfig selects the landing page and the public origin.
type SiteConfig struct {
	// LandingPageID pins the page to render. Empty means the most recently
	// published page.
	LandingPageID string `mapstructure:"landing_page_id"`

	// BaseURL is the public origin used in sitemap.xml and robots.txt.
	BaseURL string `mapstructure:"base_url"`

	// ContentFile serves a bundle file instead of the store when set.
	ContentFile string `mapstructure:"content_file"`
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`

	// TLSMode is auto, opportunistic, starttls or implicit.
	TLSMode string `mapstructure:"tls_mode"`

	ConnectionTimeout time.Duration `mapstructure:"connection_timeout"`
	GreetingTimeout   time.Duration `mapstructure:"greeting_timeout"`
	SocketTimeout     time.Duration `mapstructure:"socket_timeout"`

	TLSRejectUnauthorized bool `mapstructure:"tls_reject_unauthorized"`
	Debug                 bool `mapstructure:"debug"`
}

// MailConfig converts the settings for the mail package.
func (c SMTPConfig) MailConfig() (mail.Config, error) {
	mode, err := mail.ParseTLSMode(strings.ToLower(strings.TrimSpace(c.TLSMode)))
	if err != nil {
		return mail.Config{}, err
	}
	return mail.Config{
		Host:                  strings.TrimSpace(c.Host),
		Port:                  c.Port,
		Username:              c.Username,
		Password:              c.Password,
		From:                  c.From,
		TLSMode:               mode,
		ConnectionTimeout:     c.ConnectionTimeout,
		GreetingTimeout:       c.GreetingTimeout,
		SocketTimeout:         c.SocketTimeout,
		TLSRejectUnauthorized: c.TLSRejectUnauthorized,
		Debug:                 c.Debug,
	}, nil
}

// ContactConfig holds the contact relay settings.
type ContactConfig struct {
	// Recipients is a comma separated list. Empty sends to the SMTP username.
	Recipients string `mapstructure:"recipients"`
}

// =============================================================================
// Legacy Environment
// =============================================================================

// legacyEnv lists the variables of the previous deployment that still
// configure a key. The prefixed variable wins when both are set.
var legacyEnv = map[string][]string{
	"smtp.host":                    {"SMTP_HOST"},
	"smtp.port":                    {"SMTP_PORT"},
	"smtp.username":                {"SMTP_USERNAME", "SMTP_USER"},
	"smtp.password":                {"SMTP_PASSWORD"},
	"smtp.from":                    {"SMTP_FROM"},
	"smtp.tls_reject_unauthorized": {"SMTP_TLS_REJECT_UNAUTHORIZED"},
	"smtp.debug":                   {"SMTP_DEBUG"},
	"contact.recipients":           {"CONTACT_RECIPIENTS", "CONTACT_TO_EMAIL"},
	"database.dsn":                 {"DATABASE_URL"},
	"site.base_url":                {"NEXT_PUBLIC_SITE_URL"},
}

// legacyMillis lists legacy timeout variables given in milliseconds.
var legacyMillis = map[string]string{
	"smtp.connection_timeout": "SMTP_CONNECTION_TIMEOUT",
	"smtp.greeting_timeout":   "SMTP_GREETING_TIMEOUT",
	"smtp.socket_timeout":     "SMTP_SOCKET_TIMEOUT",
}

// envName returns the prefixed variable for a config key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func bindLegacyEnv(v *viper.Viper) error {
	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key, envName(key)}, names...)...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	for key, name := range legacyMillis {
		if os.Getenv(envName(key)) != "" {
			continue
		}
		raw := strings.TrimSpace(os.Getenv(name))
		if raw == "" {
			continue
		}
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return fmt.Errorf("%s: expected milliseconds, got %q", name, raw)
		}
		v.Set(key, time.Duration(ms)*time.Millisecond)
	}
	return nil
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from defaults, an optional file and the
// environment, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("database.dsn", "./data/courier.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("site.landing_page_id", "")
	v.SetDefault("site.base_url", "")
	v.SetDefault("site.content_file", "")

	// SMTP defaults match a submission-port setup
	v.SetDefault("smtp.host", mail.DefaultHost)
	v.SetDefault("smtp.port", mail.DefaultPort)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.tls_mode", "auto")
	v.SetDefault("smtp.connection_timeout", mail.DefaultTimeout.String())
	v.SetDefault("smtp.greeting_timeout", mail.DefaultTimeout.String())
	v.SetDefault("smtp.socket_timeout", mail.DefaultTimeout.String())
	v.SetDefault("smtp.tls_reject_unauthorized", true)
	v.SetDefault("smtp.debug", false)
	v.SetDefault("contact.recipients", "")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// A missing file falls back to defaults; a broken one does not
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
