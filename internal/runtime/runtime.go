package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	cfgpkg "github.com/fedorov/pw44-wsi-conversion/internal/config"
	"github.com/fedorov/pw44-wsi-conversion/internal/registry"
	pebblestore "github.com/fedorov/pw44-wsi-conversion/internal/storage/pebble"
	"github.com/fedorov/pw44-wsi-conversion/pkg/uid"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires storage, config, and the registry for a single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
	reg    *registry.Registry
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	gen, err := newGenerator(opts.Config.UID)
	if err != nil {
		return nil, err
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{db: db, config: opts.Config, reg: registry.Open(db, gen)}, nil
}

// newGenerator builds the identifier generator selected by config.
func newGenerator(cfg cfgpkg.UIDConfig) (uid.Generator, error) {
	switch cfg.Format {
	case "", "oid":
		return uid.NewOIDGenerator(cfg.Root)
	case "uuid":
		return uid.UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("runtime: unknown uid format %q", cfg.Format)
	}
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage read probe.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.db.Get([]byte("health/probe"))
	if err != nil && !errors.Is(err, pebblestore.ErrNotFound) {
		return err
	}
	return nil
}

// Registry returns the identifier registry.
func (r *Runtime) Registry() *registry.Registry { return r.reg }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
