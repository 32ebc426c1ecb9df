package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
    c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if c.BaseURL != DefaultBaseURL || c.Theme != DefaultTheme || c.Timeout != DefaultTimeout {
        t.Fatalf("expected defaults, got %+v", c)
    }
    if c.Endpoints.Load != DefaultLoadPath {
        t.Fatalf("unexpected load endpoint: %q", c.Endpoints.Load)
    }
}

func TestSaveThenLoadRoundTripsFields(t *testing.T) {
    path := filepath.Join(t.TempDir(), "nested", "config.yaml")
    want := Default()
    want.BaseURL = "https://author.example.com"
    want.Username = "admin"
    want.Timeout = 45 * time.Second
    want.Theme = "ace/theme/monokai"
    if err := Save(path, want, false); err != nil {
        t.Fatalf("save: %v", err)
    }
    got, err := Load(path)
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if got.BaseURL != want.BaseURL || got.Username != "admin" || got.Timeout != 45*time.Second || got.Theme != want.Theme {
        t.Fatalf("unexpected config after reload: %+v", got)
    }
}

func TestSaveRespectsOverwrite(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte("base_url: http://keep.me\n"), 0o600); err != nil {
        t.Fatalf("seed: %v", err)
    }
    if err := Save(path, Default(), false); err == nil {
        t.Fatalf("expected refusal to overwrite")
    }
    data, _ := os.ReadFile(path)
    if !strings.Contains(string(data), "keep.me") {
        t.Fatalf("existing file was modified: %s", data)
    }
    if err := Save(path, Default(), true); err != nil {
        t.Fatalf("overwrite: %v", err)
    }
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte("base_url: ftp://example.com\n"), 0o600); err != nil {
        t.Fatalf("seed: %v", err)
    }
    if _, err := Load(path); err == nil {
        t.Fatalf("expected scheme error")
    }
}

func TestLoadRejectsLoadEndpointWithoutPlaceholder(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte("endpoints:\n  load: /scripts\n"), 0o600); err != nil {
        t.Fatalf("seed: %v", err)
    }
    if _, err := Load(path); err == nil {
        t.Fatalf("expected placeholder error")
    }
}

func TestEnvOverridesFile(t *testing.T) {
    t.Setenv("SCRIPT_CONSOLE_BASE_URL", "http://env.example:8080/")
    c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if c.BaseURL != "http://env.example:8080" {
        t.Fatalf("expected env override with trailing slash trimmed, got %q", c.BaseURL)
    }
}
