package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsAreValid(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), Config{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "hook-notify" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.Chatwork.BaseURL != DefaultChatworkBaseURL {
		t.Fatalf("expected default chatwork url, got %q", cfg.Chatwork.BaseURL)
	}
	if cfg.Database.Driver != DatabaseDriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.Database.Driver)
	}
}

func TestLoadConfig_LayersFileEnvAndRuntime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	content := `{
		// file values
		"database": {"dsn": "file:from-file.db"},
		"chatwork": {"timeout_seconds": 12},
		"http": {"addr": ":9000"},
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env := EnvRawConfigLoader{
		Environ: func() []string {
			return []string{
				"HOOK_NOTIFY_DATABASE_DSN=file:from-env.db",
				"HOOK_NOTIFY_TEMPLATES_DIR=/etc/hook-notify/templates",
				"UNRELATED=1",
			}
		},
	}

	cfg, err := LoadConfig(
		context.Background(),
		Config{HTTP: HTTPConfig{Addr: ":7000"}},
		FileRawConfigLoader{Path: path},
		env,
	)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN != "file:from-env.db" {
		t.Fatalf("expected env to override file dsn, got %q", cfg.Database.DSN)
	}
	if cfg.Chatwork.TimeoutSeconds != 12 {
		t.Fatalf("expected file timeout, got %d", cfg.Chatwork.TimeoutSeconds)
	}
	if cfg.Templates.Dir != "/etc/hook-notify/templates" {
		t.Fatalf("expected env templates dir, got %q", cfg.Templates.Dir)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("expected runtime addr to win, got %q", cfg.HTTP.Addr)
	}
	if cfg.Database.Driver != DatabaseDriverSQLite {
		t.Fatalf("expected default driver to survive layering, got %q", cfg.Database.Driver)
	}
}

func TestLoadConfig_LoadedFalseOverridesDefaultTrue(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), Config{}, StaticRawConfigLoader(map[string]any{
		"cache": map[string]any{"enabled": false},
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("expected cache to be disabled by loaded config")
	}
}

func TestLoadConfig_RejectsUnsupportedDriver(t *testing.T) {
	_, err := LoadConfig(context.Background(), Config{}, StaticRawConfigLoader(map[string]any{
		"database": map[string]any{"driver": "mysql"},
	}))
	if err == nil {
		t.Fatalf("expected unsupported driver to fail validation")
	}
}

func TestFileRawConfigLoader_OptionalMissingFile(t *testing.T) {
	loader := FileRawConfigLoader{Path: filepath.Join(t.TempDir(), "missing.json"), Optional: true}
	raw, err := loader.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("expected optional missing file to be ignored: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty raw config, got %#v", raw)
	}

	loader.Optional = false
	if _, err := loader.LoadRaw(context.Background()); err == nil {
		t.Fatalf("expected required missing file to fail")
	}
}

func TestEnvRawConfigLoader_NestsSectionsAndParsesScalars(t *testing.T) {
	loader := EnvRawConfigLoader{Environ: func() []string {
		return []string{
			"HOOK_NOTIFY_SERVICE_NAME=notify",
			"HOOK_NOTIFY_CACHE_ENABLED=false",
			"HOOK_NOTIFY_CACHE_TTL_SECONDS=30",
		}
	}}
	raw, err := loader.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if raw["service_name"] != "notify" {
		t.Fatalf("expected top-level service_name, got %#v", raw["service_name"])
	}
	cache, ok := raw["cache"].(map[string]any)
	if !ok {
		t.Fatalf("expected cache section, got %#v", raw["cache"])
	}
	if cache["enabled"] != false || cache["ttl_seconds"] != 30 {
		t.Fatalf("unexpected cache section %#v", cache)
	}
}
