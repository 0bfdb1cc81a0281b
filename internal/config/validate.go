package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	switch strings.ToLower(c.Store.Driver) {
	case StoreMemory:
	case StorePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when store.driver is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", StoreMemory, StorePostgres, c.Store.Driver)
	}

	if c.Session.CookieTTL <= 0 {
		return fmt.Errorf("session.cookie_ttl must be > 0 (got %v)", c.Session.CookieTTL)
	}
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be > 0 (got %v)", c.Session.IdleTTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be > 0 (got %v)", c.Session.SweepInterval)
	}
	if c.RateLimit.SearchPerMinute <= 0 {
		return fmt.Errorf("ratelimit.search_per_minute must be > 0 (got %d)", c.RateLimit.SearchPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("ratelimit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	u, err := url.Parse(d.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", d.BaseURL)
	}
	d.BaseURL = strings.TrimRight(d.BaseURL, "/")

	if d.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", d.Timeout)
	}
	if d.Retries < 0 {
		return fmt.Errorf("retries must be >= 0 (got %d)", d.Retries)
	}
	if d.BatchWait < 0 {
		return fmt.Errorf("batch_wait must be >= 0 (got %v)", d.BatchWait)
	}
	return nil
}
