package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultCategory != "specimen" {
		t.Fatalf("default category: %q", cfg.DefaultCategory)
	}
	if cfg.CategoryRegex == "" {
		t.Fatalf("category regex empty")
	}
	if cfg.UID.Format != "oid" || cfg.UID.Root != "2.25" {
		t.Fatalf("uid defaults: %+v", cfg.UID)
	}
	if len(cfg.AllowedCategories) != 0 {
		t.Fatalf("allow-list should default to open")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "uidreg.json")
	data := []byte(`{"defaultCategory":"study","allowedCategories":["study","specimen"],"uid":{"format":"oid","root":"1.2.840.99999"}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultCategory != "study" {
		t.Fatalf("expected study, got %q", cfg.DefaultCategory)
	}
	if len(cfg.AllowedCategories) != 2 {
		t.Fatalf("allow-list: %v", cfg.AllowedCategories)
	}
	if cfg.UID.Root != "1.2.840.99999" {
		t.Fatalf("uid root: %q", cfg.UID.Root)
	}
	// Unset fields keep defaults.
	if cfg.CategoryRegex != Default().CategoryRegex {
		t.Fatalf("regex should keep default, got %q", cfg.CategoryRegex)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultCategory != Default().DefaultCategory {
		t.Fatalf("expected defaults")
	}
}

func TestLoadYAMLRejected(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "uidreg.yaml")
	if err := os.WriteFile(file, []byte("defaultCategory: x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected yaml rejection")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("UIDREG_DEFAULT_CATEGORY", "study")
	os.Setenv("UIDREG_ALLOWED_CATEGORIES", "study, specimen ,")
	os.Setenv("UIDREG_UID_ROOT", "1.2.3")
	t.Cleanup(func() {
		os.Unsetenv("UIDREG_DEFAULT_CATEGORY")
		os.Unsetenv("UIDREG_ALLOWED_CATEGORIES")
		os.Unsetenv("UIDREG_UID_ROOT")
	})
	FromEnv(&cfg)
	if cfg.DefaultCategory != "study" {
		t.Fatalf("env override category")
	}
	if len(cfg.AllowedCategories) != 2 || cfg.AllowedCategories[1] != "specimen" {
		t.Fatalf("env override allow-list: %v", cfg.AllowedCategories)
	}
	if cfg.UID.Root != "1.2.3" {
		t.Fatalf("env override root")
	}
}
