// Package runtime wires storage, config, and the registry into a single-node
// uidreg instance. It exposes Open/Close, a basic health check, and accessors
// used by the service and server layers.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	uid, _ := rt.Registry().GetOrCreate(ctx, "specimen", "SAMPLE_001")
package runtime
