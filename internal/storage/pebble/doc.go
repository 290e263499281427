// Package pebblestore provides a thin wrapper around Pebble with fsync
// policy, atomic batches, prefix iteration, and minimal metrics hooks. It is
// the durable store behind the UID registry: one Pebble directory holds every
// issued identifier record.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeAlways,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, _ := db.Get([]byte("k"))
package pebblestore
