// Package config loads the site-level configuration for the blog backend.
// Settings come from an optional YAML file with environment variable
// overrides on top, so deployments can ship a base file and tweak single
// values per environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	pkgconfig "savvy-blog/pkg/config"
)

// Duration wraps time.Duration so YAML values like "30s" parse. Plain
// integers are read as nanoseconds, matching time.Duration's underlying
// representation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// AsDuration returns the value as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// SiteConfig holds the deployment settings for the blog backend.
type SiteConfig struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`

	// Origin is the canonical site origin used for absolute URLs in
	// preview documents, the sitemap, and the RSS feed. The request Host
	// header is never trusted for this.
	Origin string `yaml:"origin"`

	// SiteName and Description feed the RSS channel metadata.
	SiteName    string `yaml:"site_name"`
	Description string `yaml:"description"`

	// BundlePath is the client entry script referenced from rendered
	// preview documents.
	BundlePath string `yaml:"bundle_path"`

	// DefaultMetaImage is used when a post has no meta image of its own.
	DefaultMetaImage string `yaml:"default_meta_image"`

	// SitemapSchedule is the cron expression for snapshot refreshes.
	SitemapSchedule string `yaml:"sitemap_schedule"`

	// RequestTimeout bounds in-flight request handling.
	RequestTimeout Duration `yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGTERM.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// RateLimit configures per-IP request limiting.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures the per-IP token bucket limiter.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// DefaultSiteConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Addr:             ":8080",
		Origin:           "https://sosavvy.so",
		SiteName:         "Sosavvy Blog",
		Description:      "Growth and marketing insights from the Sosavvy team.",
		BundlePath:       "/src/main.tsx",
		DefaultMetaImage: "",
		SitemapSchedule:  "30 5 * * *",
		RequestTimeout:   Duration(30 * time.Second),
		ShutdownTimeout:  Duration(5 * time.Second),
		CORSAllowedOrigins: []string{
			"https://sosavvy.so",
			"https://www.sosavvy.so",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   40,
		},
	}
}

// LoadSiteConfig builds the effective configuration: defaults, then the
// YAML file at path (skipped when path is empty or the file is absent),
// then environment variable overrides. The result is validated before it
// is returned.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := DefaultSiteConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator, not a request.
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("LoadSiteConfig: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Optional file; fall through to env overrides
		default:
			return cfg, fmt.Errorf("LoadSiteConfig: read %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("LoadSiteConfig: %w", err)
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnvOverrides() {
	c.Addr = pkgconfig.GetEnvString("HTTP_ADDR", c.Addr)
	c.Origin = pkgconfig.GetEnvString("SITE_ORIGIN", c.Origin)
	c.SiteName = pkgconfig.GetEnvString("SITE_NAME", c.SiteName)
	c.Description = pkgconfig.GetEnvString("SITE_DESCRIPTION", c.Description)
	c.BundlePath = pkgconfig.GetEnvString("PREVIEW_BUNDLE_PATH", c.BundlePath)
	c.DefaultMetaImage = pkgconfig.GetEnvString("PREVIEW_DEFAULT_META_IMAGE", c.DefaultMetaImage)
	c.SitemapSchedule = pkgconfig.GetEnvString("SITEMAP_REFRESH_SCHEDULE", c.SitemapSchedule)
	c.RequestTimeout = Duration(pkgconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.RequestTimeout.AsDuration()))
	c.ShutdownTimeout = Duration(pkgconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.ShutdownTimeout.AsDuration()))
	c.CORSAllowedOrigins = pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	c.RateLimit.Enabled = pkgconfig.GetEnvBool("RATELIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = pkgconfig.GetEnvFloat("RATELIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = pkgconfig.GetEnvInt("RATELIMIT_BURST", c.RateLimit.Burst)
}

// Validate checks the configuration for values that would break at runtime.
func (c *SiteConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	if _, err := cron.ParseStandard(c.SitemapSchedule); err != nil {
		return fmt.Errorf("invalid sitemap schedule %q: %w", c.SitemapSchedule, err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout.AsDuration()); err != nil {
		return fmt.Errorf("invalid request timeout: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout.AsDuration()); err != nil {
		return fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate limit rps must be positive, got %v", c.RateLimit.RPS)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimit.Burst)
		}
	}
	return nil
}
