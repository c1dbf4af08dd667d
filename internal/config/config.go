package config

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session modes for the web UI.
const (
	SessionModeCookie = "cookie"
	SessionModeShared = "shared"
)

const (
	defaultOrigin        = "http://localhost:8080"
	defaultServerAddr    = ":8080"
	defaultTimeout       = 10 * time.Second
	defaultDomain        = "ucc.edu.co"
	defaultUniversity    = "Universidad Cooperativa de Colombia"
	defaultSessionSecret = "dev-session-secret-change-me"
	localDevelopmentAPI  = "http://localhost:5000/api"
)

// Provider is the read-only view of the configuration that services depend on.
type Provider interface {
	GetAPIBaseURL() string
	GetAppOrigin() string
	GetAPITimeout() time.Duration
	GetSessionDir() string
	GetSessionMode() string
	GetSessionSecret() string
	GetServerAddr() string
	GetInstitutionalDomain() string
	GetUniversityName() string
}

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL          string
	AppOrigin           string
	APITimeout          time.Duration
	SessionDir          string
	SessionMode         string
	SessionSecret       string
	ServerAddr          string
	InstitutionalDomain string
	UniversityName      string
}

// Overrides carries values set on the command line. Empty fields are ignored.
type Overrides struct {
	APIBaseURL  string
	AppOrigin   string
	SessionDir  string
	SessionMode string
	ServerAddr  string
}

// New loads configuration from a .env file, if any, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	cfg := &Config{
		APIBaseURL:          os.Getenv("API_BASE_URL"),
		AppOrigin:           envOr("APP_ORIGIN", defaultOrigin),
		APITimeout:          defaultTimeout,
		SessionDir:          envOr("SESSION_DIR", defaultSessionDir()),
		SessionMode:         envOr("SESSION_MODE", SessionModeCookie),
		SessionSecret:       envOr("SESSION_SECRET", defaultSessionSecret),
		ServerAddr:          envOr("SERVER_ADDR", defaultServerAddr),
		InstitutionalDomain: envOr("INSTITUTIONAL_DOMAIN", defaultDomain),
		UniversityName:      envOr("UNIVERSITY_NAME", defaultUniversity),
	}

	if raw := os.Getenv("API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.APITimeout = d
		} else {
			log.Printf("Ignoring invalid API_TIMEOUT %q", raw)
		}
	}

	if cfg.SessionMode != SessionModeCookie && cfg.SessionMode != SessionModeShared {
		log.Printf("Unknown SESSION_MODE %q, using %q", cfg.SessionMode, SessionModeCookie)
		cfg.SessionMode = SessionModeCookie
	}

	return cfg
}

// Apply copies non-empty overrides onto the config.
func (c *Config) Apply(o Overrides) *Config {
	if o.APIBaseURL != "" {
		c.APIBaseURL = o.APIBaseURL
	}
	if o.AppOrigin != "" {
		c.AppOrigin = o.AppOrigin
	}
	if o.SessionDir != "" {
		c.SessionDir = o.SessionDir
	}
	if o.SessionMode != "" {
		c.SessionMode = o.SessionMode
	}
	if o.ServerAddr != "" {
		c.ServerAddr = o.ServerAddr
	}
	return c
}

// GetAPIBaseURL returns the explicit API base URL, or one derived from the
// page origin when none is set.
func (c *Config) GetAPIBaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return ResolveBaseURL(c.AppOrigin)
}

func (c *Config) GetAppOrigin() string           { return strings.TrimRight(c.AppOrigin, "/") }
func (c *Config) GetAPITimeout() time.Duration   { return c.APITimeout }
func (c *Config) GetSessionDir() string          { return c.SessionDir }
func (c *Config) GetSessionMode() string         { return c.SessionMode }
func (c *Config) GetSessionSecret() string       { return c.SessionSecret }
func (c *Config) GetServerAddr() string          { return c.ServerAddr }
func (c *Config) GetInstitutionalDomain() string { return c.InstitutionalDomain }
func (c *Config) GetUniversityName() string      { return c.UniversityName }

// ResolveBaseURL maps a page origin to the API base URL. Local development
// hosts talk to the API on its default port; everything else is same-origin.
func ResolveBaseURL(origin string) string {
	origin = strings.TrimRight(origin, "/")
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return localDevelopmentAPI
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return localDevelopmentAPI
	}
	return origin + "/api"
}

// IsLocalOrigin reports whether the origin points at a development host.
func IsLocalOrigin(origin string) bool {
	return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "unisocial")
	}
	return ".unisocial"
}
