package config

import (
	"os"
	"strings"
)

// FromEnv overlays UIDREG_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("UIDREG_DEFAULT_CATEGORY"); v != "" {
		cfg.DefaultCategory = v
	}
	if v := os.Getenv("UIDREG_CATEGORY_REGEX"); v != "" {
		cfg.CategoryRegex = v
	}
	if v := os.Getenv("UIDREG_ALLOWED_CATEGORIES"); v != "" {
		parts := strings.Split(v, ",")
		cfg.AllowedCategories = nil
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.AllowedCategories = append(cfg.AllowedCategories, p)
			}
		}
	}
	if v := os.Getenv("UIDREG_UID_FORMAT"); v != "" {
		cfg.UID.Format = v
	}
	if v := os.Getenv("UIDREG_UID_ROOT"); v != "" {
		cfg.UID.Root = v
	}
}
