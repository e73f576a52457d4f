package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store != StoreFile || cfg.DataFile != "data/prompts.json" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ClipboardRetries != 2 {
		t.Fatalf("expected 2 clipboard retries, got %d", cfg.ClipboardRetries)
	}
	if cfg.SystemDark != nil {
		t.Fatalf("expected no system theme override, got %v", *cfg.SystemDark)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PROMPT_STORE", "sqlite")
	t.Setenv("PROMPT_SQLITE_PATH", "/tmp/p.db")
	t.Setenv("PROMPT_THEME_SYSTEM_DARK", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.SQLitePath != "/tmp/p.db" {
		t.Fatalf("unexpected store settings %+v", cfg)
	}
	if cfg.SystemDark == nil || !*cfg.SystemDark {
		t.Fatal("expected system dark override")
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string][2]string{
		"bad int":     {"PROMPT_CLIPBOARD_RETRIES", "many"},
		"negative":    {"PROMPT_CLIPBOARD_RETRIES", "-1"},
		"bad backend": {"PROMPT_STORE", "redis"},
		"bad bool":    {"PROMPT_THEME_SYSTEM_DARK", "sometimes"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Parse(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PROMPT_STORE=memory\nPORT=9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	// Registered with t.Setenv so the values godotenv sets are restored afterwards.
	t.Setenv("PROMPT_STORE", "")
	t.Setenv("PORT", "")
	os.Unsetenv("PROMPT_STORE")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreMemory || cfg.Port != "9999" {
		t.Fatalf("expected .env values, got %+v", cfg)
	}
}

func TestParseErrorPrefix(t *testing.T) {
	t.Setenv("PROMPT_CLIPBOARD_RETRIES", "x")
	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidateRequiresPaths(t *testing.T) {
	if err := (Config{Store: StoreFile}).Validate(); err == nil {
		t.Fatal("expected error for file store without a path")
	}
	if err := (Config{Store: StoreSQLite}).Validate(); err == nil {
		t.Fatal("expected error for sqlite store without a path")
	}
	if err := (Config{Store: StoreMemory}).Validate(); err != nil {
		t.Fatalf("memory store needs no path: %v", err)
	}
}
