package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// DefaultCategory is applied when a caller omits the category.
	DefaultCategory string `json:"defaultCategory"`
	// CategoryRegex restricts category names accepted by the service layer.
	CategoryRegex string `json:"categoryRegex"`
	// AllowedCategories, when non-empty, is an allow-list of category names.
	AllowedCategories []string `json:"allowedCategories"`
	// UID selects the identifier format handed out by the registry.
	UID UIDConfig `json:"uid"`
}

// UIDConfig selects the identifier value format.
type UIDConfig struct {
	// Format is "oid" (UUID-derived OID, DICOM-compatible) or "uuid"
	// (canonical RFC 4122 text form).
	Format string `json:"format"`
	// Root is the OID root arc when Format is "oid".
	Root string `json:"root"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DefaultCategory: "specimen",
		CategoryRegex:   "^[a-z0-9-_]{1,64}$",
		UID: UIDConfig{
			Format: "oid",
			Root:   "2.25",
		},
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults. YAML is not supported.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported; use JSON")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
