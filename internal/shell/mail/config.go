// Package mail delivers contact notifications over SMTP.
package mail

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"
)

// =============================================================================
// Configuration
// =============================================================================

// Defaults for a typical submission-port setup.
const (
	DefaultHost    = "titancargocourier.com"
	DefaultPort    = 587
	DefaultTimeout = 120 * time.Second
)

// TLSMode is how the connection is secured.
type TLSMode int

const (
	// TLSAuto derives the mode from the port.
	TLSAuto TLSMode = iota
	// TLSOpportunistic upgrades with STARTTLS when the server offers it.
	TLSOpportunistic
	// TLSStartTLSRequired fails unless STARTTLS succeeds.
	TLSStartTLSRequired
	// TLSImplicit speaks TLS from the first byte.
	TLSImplicit
)

func (m TLSMode) String() string {
	switch m {
	case TLSImplicit:
		return "implicit"
	case TLSStartTLSRequired:
		return "starttls"
	case TLSOpportunistic:
		return "opportunistic"
	default:
		return "auto"
	}
}

// ParseTLSMode parses "auto", "opportunistic", "starttls" or "implicit".
func ParseTLSMode(s string) (TLSMode, error) {
	switch s {
	case "", "auto":
		return TLSAuto, nil
	case "opportunistic":
		return TLSOpportunistic, nil
	case "starttls":
		return TLSStartTLSRequired, nil
	case "implicit":
		return TLSImplicit, nil
	default:
		return TLSAuto, fmt.Errorf("unknown SMTP TLS mode %q", s)
	}
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLSMode  TLSMode

	ConnectionTimeout time.Duration
	GreetingTimeout   time.Duration
	SocketTimeout     time.Duration

	// TLSRejectUnauthorized verifies the server certificate when true.
	TLSRejectUnauthorized bool
	Debug                 bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Host:                  DefaultHost,
		Port:                  DefaultPort,
		ConnectionTimeout:     DefaultTimeout,
		GreetingTimeout:       DefaultTimeout,
		SocketTimeout:         DefaultTimeout,
		TLSRejectUnauthorized: true,
	}
}

// ConfigError reports a missing SMTP setting.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return "Missing env: " + e.Name
}

// Validate checks that credentials are present.
func (c Config) Validate() error {
	if c.Username == "" {
		return &ConfigError{Name: "SMTP_USERNAME|SMTP_USER"}
	}
	if c.Password == "" {
		return &ConfigError{Name: "SMTP_PASSWORD"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port %d", c.Port)
	}
	return nil
}

// Mode returns the configured TLS mode. In auto mode port 465 is implicit
// TLS, 587 requires STARTTLS and anything else is opportunistic.
func (c Config) Mode() TLSMode {
	if c.TLSMode != TLSAuto {
		return c.TLSMode
	}
	switch c.Port {
	case 465:
		return TLSImplicit
	case 587:
		return TLSStartTLSRequired
	default:
		return TLSOpportunistic
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         c.Host,
		InsecureSkipVerify: !c.TLSRejectUnauthorized, //nolint:gosec // operator opt-in
		MinVersion:         tls.VersionTLS12,
	}
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}
