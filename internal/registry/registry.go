package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	pebblestore "github.com/fedorov/pw44-wsi-conversion/internal/storage/pebble"
	"github.com/fedorov/pw44-wsi-conversion/pkg/uid"
)

var (
	// ErrInvalidKey reports an empty or malformed category or domain key.
	// Nothing is written when it is returned.
	ErrInvalidKey = errors.New("registry: invalid category or domain key")
	// ErrStorageUnavailable reports that the durable store could not be read
	// or written. The caller owns retry policy.
	ErrStorageUnavailable = errors.New("registry: storage unavailable")
)

// stampTimeFormat is DICOM DT form YYYYMMDDHHMMSS, what conversion pipelines
// store as a study datetime.
const stampTimeFormat = "20060102150405"

// Registry owns a durable store handle and serializes all check-then-insert
// access through its own mutex. Multiple independent registries over distinct
// stores do not interfere.
type Registry struct {
	mu  sync.Mutex
	db  *pebblestore.DB
	gen uid.Generator

	// nowMs is swappable in tests.
	nowMs func() int64
}

// Open returns a Registry over the given store using gen to mint new
// identifier values.
func Open(db *pebblestore.DB, gen uid.Generator) *Registry {
	return &Registry{db: db, gen: gen, nowMs: func() int64 { return time.Now().UnixMilli() }}
}

// validateKey trims and validates a (category, domainKey) pair. The category
// must not contain '/' (see keys.go).
func validateKey(category, domainKey string) (string, string, error) {
	category = strings.TrimSpace(category)
	domainKey = strings.TrimSpace(domainKey)
	if category == "" || domainKey == "" || strings.ContainsRune(category, '/') {
		return "", "", ErrInvalidKey
	}
	return category, domainKey, nil
}

// GetOrCreate returns the stable identifier for a (category, domainKey)
// pair, generating and durably persisting a new one only if none exists.
// Two sequential or concurrent calls with the same pair return the same
// value; the record survives process restarts.
func (r *Registry) GetOrCreate(ctx context.Context, category, domainKey string) (string, error) {
	category, domainKey, err := validateKey(category, domainKey)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := KeyRecord(category, domainKey)
	if b, err := r.db.Get(key); err == nil {
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			return "", fmt.Errorf("%w: corrupt record for %s/%s: %v", ErrStorageUnavailable, category, domainKey, err)
		}
		return rec.UID, nil
	} else if !errors.Is(err, pebblestore.ErrNotFound) {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	value, err := r.gen.NewUID()
	if err != nil {
		return "", fmt.Errorf("registry: generate uid: %w", err)
	}
	rec := Record{
		Category:    category,
		DomainKey:   domainKey,
		UID:         value,
		CreatedAtMs: r.nowMs(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("registry: encode record: %w", err)
	}
	if err := r.db.Set(key, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return value, nil
}

// Lookup returns the existing record for a pair without creating one. The
// second return value reports whether a record exists.
func (r *Registry) Lookup(ctx context.Context, category, domainKey string) (Record, bool, error) {
	category, domainKey, err := validateKey(category, domainKey)
	if err != nil {
		return Record{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	b, err := r.db.Get(KeyRecord(category, domainKey))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, false, fmt.Errorf("%w: corrupt record for %s/%s: %v", ErrStorageUnavailable, category, domainKey, err)
	}
	return rec, true, nil
}

// GetOrSetStamp returns the stable auxiliary value for a pair, persisting the
// provided value on first call. An empty value falls back to the current UTC
// time in DICOM DT form (YYYYMMDDHHMMSS). Later calls return the stored value
// regardless of what they pass.
func (r *Registry) GetOrSetStamp(ctx context.Context, category, domainKey, value string) (string, error) {
	category, domainKey, err := validateKey(category, domainKey)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := KeyStamp(category, domainKey)
	if b, err := r.db.Get(key); err == nil {
		var st Stamp
		if err := json.Unmarshal(b, &st); err != nil {
			return "", fmt.Errorf("%w: corrupt stamp for %s/%s: %v", ErrStorageUnavailable, category, domainKey, err)
		}
		return st.Value, nil
	} else if !errors.Is(err, pebblestore.ErrNotFound) {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if value == "" {
		value = time.UnixMilli(r.nowMs()).UTC().Format(stampTimeFormat)
	}
	st := Stamp{
		Category:    category,
		DomainKey:   domainKey,
		Value:       value,
		CreatedAtMs: r.nowMs(),
	}
	b, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("registry: encode stamp: %w", err)
	}
	if err := r.db.Set(key, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return value, nil
}

// List returns every identifier record in a category in domain-key order.
func (r *Registry) List(ctx context.Context, category string) ([]Record, error) {
	category = strings.TrimSpace(category)
	if category == "" || strings.ContainsRune(category, '/') {
		return nil, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Record
	var decodeErr error
	err := r.db.ScanPrefix(PrefixRecords(category), func(key, value []byte) bool {
		var rec Record
		if err := json.Unmarshal(value, &rec); err != nil {
			decodeErr = fmt.Errorf("%w: corrupt record at %q: %v", ErrStorageUnavailable, key, err)
			return false
		}
		out = append(out, rec)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

// Categories returns every category with at least one identifier record, in
// lexical order.
func (r *Registry) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []string
	err := r.db.ScanPrefix(regPrefix, func(key, value []byte) bool {
		rest := key[len(regPrefix):]
		i := bytes.IndexByte(rest, '/')
		if i < 0 {
			return true
		}
		cat := string(rest[:i])
		if len(out) == 0 || out[len(out)-1] != cat {
			out = append(out, cat)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return out, nil
}

// Count returns the number of identifier records in a category.
func (r *Registry) Count(ctx context.Context, category string) (int, error) {
	category = strings.TrimSpace(category)
	if category == "" || strings.ContainsRune(category, '/') {
		return 0, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := 0
	err := r.db.ScanPrefix(PrefixRecords(category), func(key, value []byte) bool {
		n++
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return n, nil
}
