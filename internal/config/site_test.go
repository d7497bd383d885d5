package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSiteConfig_Defaults(t *testing.T) {
	cfg, err := LoadSiteConfig("")
	if err != nil {
		t.Fatalf("LoadSiteConfig() error = %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("got addr %q, want :8080", cfg.Addr)
	}
	if cfg.Origin != "https://sosavvy.so" {
		t.Errorf("got origin %q, want https://sosavvy.so", cfg.Origin)
	}
	if cfg.BundlePath != "/src/main.tsx" {
		t.Errorf("got bundle path %q, want /src/main.tsx", cfg.BundlePath)
	}
	if cfg.SitemapSchedule != "30 5 * * *" {
		t.Errorf("got schedule %q, want default", cfg.SitemapSchedule)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("rate limiting should default to enabled")
	}
}

func TestLoadSiteConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	content := `
origin: https://staging.sosavvy.so
site_name: Staging Blog
sitemap_schedule: "0 6 * * *"
request_timeout: 10s
rate_limit:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig() error = %v", err)
	}

	if cfg.Origin != "https://staging.sosavvy.so" {
		t.Errorf("got origin %q, want file value", cfg.Origin)
	}
	if cfg.SiteName != "Staging Blog" {
		t.Errorf("got site name %q, want file value", cfg.SiteName)
	}
	if cfg.RequestTimeout.AsDuration() != 10*time.Second {
		t.Errorf("got request timeout %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.RateLimit.Enabled {
		t.Error("file should have disabled rate limiting")
	}
	// Values the file omits keep their defaults
	if cfg.Addr != ":8080" {
		t.Errorf("got addr %q, want default", cfg.Addr)
	}
}

func TestLoadSiteConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("origin: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SITE_ORIGIN", "https://env.example.com")
	t.Setenv("RATELIMIT_RPS", "50")

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig() error = %v", err)
	}

	if cfg.Origin != "https://env.example.com" {
		t.Errorf("got origin %q, env should win over file", cfg.Origin)
	}
	if cfg.RateLimit.RPS != 50 {
		t.Errorf("got rps %v, want 50", cfg.RateLimit.RPS)
	}
}

func TestLoadSiteConfig_FractionalRateLimit(t *testing.T) {
	t.Setenv("RATELIMIT_RPS", "0.5")

	cfg, err := LoadSiteConfig("")
	if err != nil {
		t.Fatalf("LoadSiteConfig() error = %v", err)
	}
	if cfg.RateLimit.RPS != 0.5 {
		t.Errorf("got rps %v, want 0.5", cfg.RateLimit.RPS)
	}
}

func TestLoadSiteConfig_MissingFileIgnored(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSiteConfig() error = %v", err)
	}
	if cfg.Origin != "https://sosavvy.so" {
		t.Errorf("got origin %q, want default", cfg.Origin)
	}
}

func TestLoadSiteConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func()
		cleanup []string
	}{
		{
			name:   "bad cron schedule",
			mutate: func() { os.Setenv("SITEMAP_REFRESH_SCHEDULE", "not-a-schedule") },
		},
		{
			name:   "zero request timeout",
			mutate: func() { os.Setenv("HTTP_REQUEST_TIMEOUT", "0s") },
		},
		{
			name:   "negative rate limit",
			mutate: func() { os.Setenv("RATELIMIT_RPS", "-5") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"SITEMAP_REFRESH_SCHEDULE", "HTTP_REQUEST_TIMEOUT", "RATELIMIT_RPS"} {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			tt.mutate()

			if _, err := LoadSiteConfig(""); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadSiteConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("origin: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSiteConfig(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}
