package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "DATABASE_URL", "JWT_SECRET", "STATIC_DIR",
		"CHAT_UPSTREAM", "CHAT_API_KEY", "REQUIRE_DB_AUTH",
		"AUTH_RATE_LIMIT", "AUTH_RATE_BURST",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:pw@localhost:5432/chat")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("REQUIRE_DB_AUTH", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://app:pw@localhost:5432/chat" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !cfg.RequireDBAuth {
		t.Error("RequireDBAuth should be true")
	}
	if cfg.StaticDir != "dist" {
		t.Errorf("StaticDir default = %q", cfg.StaticDir)
	}
	if cfg.AuthRateLimit != 5 || cfg.AuthRateBurst != 10 {
		t.Errorf("rate defaults = %v/%v", cfg.AuthRateLimit, cfg.AuthRateBurst)
	}
}

func TestLoad_DSNFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_NAME", "chat")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := "host=dbhost port=5432 dbname=chat user=app password=pw"
	if cfg.DatabaseURL != want {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, want)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_MissingDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing database settings")
	}
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9000\"\ndatabase_url: postgres://file/db\njwt_secret: from-file\nchat_upstream: https://api.example.com/v1\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000") // env wins over file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %q, want env override 7000", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://file/db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.ChatUpstream != "https://api.example.com/v1" {
		t.Errorf("ChatUpstream = %q", cfg.ChatUpstream)
	}
}
