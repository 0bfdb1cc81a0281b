package config

import (
	"net"
	"strconv"
	"time"
)

// Store drivers for persisted preferences.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Store      StoreConfig      `yaml:"store"`
	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	RateLimit  RateLimitConfig  `yaml:"ratelimit"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings for the JSON API.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DictionaryConfig holds settings for the upstream dictionary API.
type DictionaryConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"DICT_BASE_URL"   env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout   time.Duration `yaml:"timeout"    env:"DICT_TIMEOUT"    env-default:"10s"`
	Retries   int           `yaml:"retries"    env:"DICT_RETRIES"    env-default:"0"`
	BatchWait time.Duration `yaml:"batch_wait" env:"DICT_BATCH_WAIT" env-default:"2ms"`
}

// StoreConfig selects the preference backend.
type StoreConfig struct {
	Driver      string `yaml:"driver"       env:"STORE_DRIVER"       env-default:"memory"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"STORE_AUTO_MIGRATE" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is required only when the postgres store driver is selected.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SessionConfig holds visitor cookie and in-memory session settings.
type SessionConfig struct {
	CookieName    string        `yaml:"cookie_name"    env:"SESSION_COOKIE_NAME"    env-default:"wordlens_visitor"`
	Secret        string        `yaml:"secret"         env:"SESSION_SECRET"         env-required:"true"`
	Issuer        string        `yaml:"issuer"         env:"SESSION_ISSUER"         env-default:"wordlens"`
	CookieTTL     time.Duration `yaml:"cookie_ttl"     env:"SESSION_COOKIE_TTL"     env-default:"8760h"`
	SecureCookie  bool          `yaml:"secure_cookie"  env:"SESSION_SECURE_COOKIE"  env-default:"false"`
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"SESSION_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	SearchPerMinute int           `yaml:"search_per_minute" env:"RATELIMIT_SEARCH_PER_MINUTE" env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATELIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
