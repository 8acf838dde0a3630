package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"CONTENT", "DB", "PROFILE", "SECTION", "LOCATION", "LOG_LEVEL", "LOG_FILE", "TIP_INTERVAL", "HEAD_LINES"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
}

func TestLoad_UsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Content != defaultContent {
		t.Fatalf("unexpected content source: %s", cfg.Content)
	}
	if cfg.DBPath != "termfolio.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.TipInterval != 20*time.Second {
		t.Fatalf("unexpected tip interval: %s", cfg.TipInterval)
	}
	if cfg.HeadLines != 10 {
		t.Fatalf("unexpected head lines: %d", cfg.HeadLines)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TERMFOLIO_CONTENT", "https://example.org/site")
	t.Setenv("TERMFOLIO_LOG_LEVEL", "DEBUG")
	t.Setenv("TERMFOLIO_TIP_INTERVAL", "5s")

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Content != "https://example.org/site" {
		t.Fatalf("unexpected content source: %s", cfg.Content)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.TipInterval != 5*time.Second {
		t.Fatalf("unexpected tip interval: %s", cfg.TipInterval)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "content: /srv/site\nsection: blogs\nhead-lines: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Content != "/srv/site" || cfg.Section != "blogs" || cfg.HeadLines != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_DiscoversFileInWorkingDirectory(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("termfolio.yaml", []byte("db: other.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DBPath != "other.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	if err := LoadDotEnv(".env"); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if err := os.WriteFile(".env", []byte("TERMFOLIO_DB=from-dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TERMFOLIO_DB") })
	if err := LoadDotEnv(".env"); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DBPath != "from-dotenv.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
}

func validConfig() Config {
	return Config{
		Content:     "./site",
		DBPath:      "termfolio.db",
		LogLevel:    "info",
		TipInterval: 20 * time.Second,
		HeadLines:   10,
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty content":  func(c *Config) { c.Content = "" },
		"bad scheme":     func(c *Config) { c.Content = "ftp://example.org" },
		"empty db":       func(c *Config) { c.DBPath = "" },
		"bad section":    func(c *Config) { c.Section = "garage" },
		"bad log level":  func(c *Config) { c.LogLevel = "loud" },
		"short interval": func(c *Config) { c.TipInterval = time.Millisecond },
		"zero head":      func(c *Config) { c.HeadLines = 0 },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestStartLocation_SectionOverridesFragment(t *testing.T) {
	cfg := validConfig()
	cfg.Location = "/?tags=go#projects"
	cfg.Section = "home"

	loc, err := cfg.StartLocation()
	if err != nil {
		t.Fatalf("StartLocation returned error: %v", err)
	}
	if loc.String() != "/?tags=go" {
		t.Fatalf("unexpected location: %s", loc.String())
	}
}
