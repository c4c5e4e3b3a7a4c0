package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
database:
  path: /tmp/tabula-test.db
model:
  api_key: sk-test
  name: gpt-4o
search:
  default_limit: 5
logging:
  level: debug
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("local")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Model.Name != "gpt-4o" {
		t.Errorf("model = %q", cfg.Model.Name)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("default_limit = %d", cfg.Search.DefaultLimit)
	}
	// Unset fields pick up defaults.
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("write timeout = %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.SnippetLength != 200 {
		t.Errorf("snippet_length = %d", cfg.Search.SnippetLength)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	path := writeConfig(t, `
model:
  api_key: ${TEST_TABULA_KEY}
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TEST_TABULA_KEY", "sk-secret")

	cfg, err := Load("local")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model.APIKey != "sk-secret" {
		t.Errorf("api_key = %q", cfg.Model.APIKey)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8080
`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load("local"); err == nil {
		t.Error("expected validation error for missing api_key")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load("local"); err == nil {
		t.Error("expected error")
	}
}

func TestValidate_BadLevel(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Model.APIKey = "x"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("default env = %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("env = %q", got)
	}
}
