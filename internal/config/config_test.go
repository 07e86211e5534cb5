package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  port: 3306
  user: clinic
  name: clinicdesk
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("default driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("default sslMode = %q", cfg.Database.SSLMode)
	}
	if cfg.OpenAITimeout() != 120*time.Second {
		t.Errorf("default timeout = %v", cfg.OpenAITimeout())
	}
	if cfg.Uploads.MaxBytes != 20<<20 {
		t.Errorf("default max upload = %d", cfg.Uploads.MaxBytes)
	}
	if cfg.Server.RequireAuth {
		t.Error("auth must be off unless configured")
	}
	if cfg.Server.RateLimitBurst != 0 || cfg.Server.RateLimitRefill != 0 {
		t.Error("rate limiting must be off unless configured")
	}
}

func TestLoadEnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, `
database:
  password: from-yaml
openai:
  apiKey: from-yaml
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("db password = %q", cfg.Database.Password)
	}
	if cfg.OpenAI.APIKey != "sk-env" {
		t.Errorf("openai key = %q", cfg.OpenAI.APIKey)
	}
}

func TestDSNFormats(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5432
	cfg.Database.User = "clinic"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "clinicdesk"
	cfg.Database.SSLMode = "require"

	wantPG := "host=db.internal port=5432 user=clinic password=secret dbname=clinicdesk sslmode=require"
	if got := cfg.PostgresDSN(); got != wantPG {
		t.Errorf("PostgresDSN = %q", got)
	}

	wantMy := "clinic:secret@tcp(db.internal:5432)/clinicdesk?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != wantMy {
		t.Errorf("MySQLDSN = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
