package runtime

import (
	"context"
	"strings"
	"testing"

	cfgpkg "github.com/fedorov/pw44-wsi-conversion/internal/config"
	pebblestore "github.com/fedorov/pw44-wsi-conversion/internal/storage/pebble"
)

func TestOpenCloseHealth(t *testing.T) {
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestRegistryUsesConfiguredRoot(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.UID.Root = "1.2.840.99999"
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	v, err := rt.Registry().GetOrCreate(context.Background(), "specimen", "SAMPLE_001")
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}
	if !strings.HasPrefix(v, "1.2.840.99999.") {
		t.Fatalf("configured root not applied: %q", v)
	}
}

func TestUUIDFormat(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.UID.Format = "uuid"
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	v, err := rt.Registry().GetOrCreate(context.Background(), "specimen", "SAMPLE_001")
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}
	if strings.Count(v, "-") != 4 {
		t.Fatalf("expected canonical uuid form: %q", v)
	}
}

func TestUnknownUIDFormatRejected(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.UID.Format = "snowflake"
	if _, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg}); err == nil {
		t.Fatalf("expected error for unknown uid format")
	}
}
