package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_FileAndDefaults(t *testing.T) {
	p := writeFile(t, `
backend:
  kind: rest
  base_url: http://api.local
store:
  discard_stale_loads: true
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Backend.BaseURL != "http://api.local" {
		t.Errorf("base_url = %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout != 10*time.Second {
		t.Errorf("default timeout = %v", c.Backend.Timeout)
	}
	if c.HTTP.Addr != ":8080" || c.App.Env != "dev" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if !c.Store.DiscardStaleLoads || c.Store.RollbackFailedUpdates {
		t.Errorf("store flags = %+v", c.Store)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_BACKEND_KIND", "postgres")
	t.Setenv("APP_POSTGRES_DSN", "postgres://x")
	t.Setenv("APP_STORE_ROLLBACK_FAILED_UPDATES", "true")

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Backend.Kind != BackendPostgres || c.Postgres.DSN != "postgres://x" {
		t.Errorf("env not applied: %+v", c)
	}
	if !c.Store.RollbackFailedUpdates {
		t.Error("rollback flag from env not applied")
	}
}

func TestValidate(t *testing.T) {
	var c Config
	c.Backend.Kind = "grpc"
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "unknown backend.kind") {
		t.Fatalf("expected unknown kind, got %v", err)
	}

	c.Backend.Kind = BackendREST
	c.Telegram.Token = "t"
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "base_url") || !strings.Contains(err.Error(), "chat_id") {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
