package pebblestore

import (
	"errors"
	"testing"
	"time"
)

type testMetrics struct {
	wrote int
	read  int
}

func (m *testMetrics) ObserveWrite(d time.Duration, bytes int) { m.wrote += bytes }
func (m *testMetrics) ObserveRead(d time.Duration, bytes int)  { m.read += bytes }

func newTestDB(t *testing.T) (*DB, *testMetrics) {
	t.Helper()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       t.TempDir(),
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestSetGet(t *testing.T) {
	db, metrics := newTestDB(t)

	key := []byte("k1")
	val := []byte("v1")
	if err := db.Set(key, val); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(val) {
		t.Fatalf("got %q want %q", got, val)
	}
	if metrics.wrote == 0 || metrics.read == 0 {
		t.Fatalf("expected metrics to record bytes: %+v", metrics)
	}
}

func TestGetMissing(t *testing.T) {
	db, _ := newTestDB(t)
	if _, err := db.Get([]byte("absent")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestScanPrefix(t *testing.T) {
	db, _ := newTestDB(t)

	pairs := map[string]string{
		"reg/a/u/k1": "1",
		"reg/a/u/k2": "2",
		"reg/b/u/k1": "3",
	}
	for k, v := range pairs {
		if err := db.Set([]byte(k), []byte(v)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	var seen []string
	err := db.ScanPrefix([]byte("reg/a/"), func(key, value []byte) bool {
		seen = append(seen, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("want 2 keys under reg/a/, got %v", seen)
	}
	if seen[0] != "reg/a/u/k1" || seen[1] != "reg/a/u/k2" {
		t.Fatalf("wrong order: %v", seen)
	}
}

func TestScanPrefixEarlyStop(t *testing.T) {
	db, _ := newTestDB(t)
	for _, k := range []string{"p/1", "p/2", "p/3"} {
		if err := db.Set([]byte(k), []byte("x")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	count := 0
	err := db.ScanPrefix([]byte("p/"), func(key, value []byte) bool {
		count++
		return count < 2
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 2 {
		t.Fatalf("early stop did not hold: %d", count)
	}
}

func TestPrefixUpperBound(t *testing.T) {
	if got := prefixUpperBound([]byte("abc")); string(got) != "abd" {
		t.Fatalf("got %q", got)
	}
	if got := prefixUpperBound([]byte{0x61, 0xff}); string(got) != "b" {
		t.Fatalf("got %q", got)
	}
	if got := prefixUpperBound([]byte{0xff, 0xff}); got != nil {
		t.Fatalf("expected nil bound, got %q", got)
	}
}
