package config

import (
	"os"
	"strings"
	"testing"
)

func TestDefaultDataDirXDGOverride(t *testing.T) {
	original := os.Getenv("XDG_DATA_HOME")
	os.Setenv("XDG_DATA_HOME", "/custom/data")
	t.Cleanup(func() {
		if original != "" {
			os.Setenv("XDG_DATA_HOME", original)
		} else {
			os.Unsetenv("XDG_DATA_HOME")
		}
	})

	if got := DefaultDataDir(); got != "/custom/data/uidreg" {
		t.Fatalf("xdg override: %q", got)
	}
}

func TestDefaultDataDirConsistency(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatal("empty data dir")
	}
	if DefaultDataDir() != DefaultDataDir() {
		t.Fatal("data dir not stable across calls")
	}
	if !strings.Contains(strings.ToLower(DefaultDataDir()), "uidreg") && DefaultDataDir() != "./data" {
		t.Fatalf("unexpected dir: %q", DefaultDataDir())
	}
}

func TestIsDir(t *testing.T) {
	if !isDir(".") {
		t.Fatal("cwd should be a dir")
	}
	if isDir("/non/existent/path/that/does/not/exist") {
		t.Fatal("missing path reported as dir")
	}
}
