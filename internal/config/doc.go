// Package config provides loading and environment overlay for uidreg
// configuration. It exposes a Default() baseline, JSON file loading, and a
// UIDREG_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/uidreg.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	rt, _ := runtime.Open(runtime.Options{DataDir: "/var/lib/uidreg", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
package config
