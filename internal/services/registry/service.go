package registrysvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fedorov/pw44-wsi-conversion/internal/registry"
	"github.com/fedorov/pw44-wsi-conversion/internal/runtime"
	logpkg "github.com/fedorov/pw44-wsi-conversion/pkg/log"
)

// ErrCategoryNotAllowed reports a category rejected by the configured name
// regex or allow-list.
var ErrCategoryNotAllowed = errors.New("registry: category not allowed")

// Service provides policy-checked registry operations for transports.
type Service struct {
	rt       *runtime.Runtime
	logger   logpkg.Logger
	nameRe   *regexp.Regexp
	allowed  map[string]struct{}
	fallback string
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger returns a Service using the provided logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("registry"))
	}
	cfg := rt.Config()
	var re *regexp.Regexp
	if cfg.CategoryRegex != "" {
		if compiled, err := regexp.Compile(cfg.CategoryRegex); err == nil {
			re = compiled
		} else {
			logger.Warn("invalid category regex, categories unrestricted", logpkg.Str("regex", cfg.CategoryRegex), logpkg.Err(err))
		}
	}
	var allowed map[string]struct{}
	if len(cfg.AllowedCategories) > 0 {
		allowed = make(map[string]struct{}, len(cfg.AllowedCategories))
		for _, c := range cfg.AllowedCategories {
			allowed[c] = struct{}{}
		}
	}
	return &Service{rt: rt, logger: logger, nameRe: re, allowed: allowed, fallback: cfg.DefaultCategory}
}

// resolveCategory applies the default category and enforces policy.
func (s *Service) resolveCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = s.fallback
	}
	if category == "" {
		return "", registry.ErrInvalidKey
	}
	if s.nameRe != nil && !s.nameRe.MatchString(category) {
		return "", fmt.Errorf("%w: %q does not match category regex", ErrCategoryNotAllowed, category)
	}
	if s.allowed != nil {
		if _, ok := s.allowed[category]; !ok {
			return "", fmt.Errorf("%w: %q not in allow-list", ErrCategoryNotAllowed, category)
		}
	}
	return category, nil
}

// GetOrCreate returns the stable identifier for a pair, minting one on first
// call. New issuance is logged; repeat lookups are not.
func (s *Service) GetOrCreate(ctx context.Context, category, domainKey string) (string, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return "", err
	}
	_, existed, err := s.rt.Registry().Lookup(ctx, category, domainKey)
	if err != nil && !errors.Is(err, registry.ErrInvalidKey) {
		return "", err
	}
	value, err := s.rt.Registry().GetOrCreate(ctx, category, domainKey)
	if err != nil {
		return "", err
	}
	if !existed {
		s.logger.Info("uid issued",
			logpkg.Str("category", category),
			logpkg.Str("key", strings.TrimSpace(domainKey)),
			logpkg.Str("uid", value),
		)
	}
	return value, nil
}

// Resolve returns the existing record for a pair without creating one.
func (s *Service) Resolve(ctx context.Context, category, domainKey string) (registry.Record, bool, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return registry.Record{}, false, err
	}
	return s.rt.Registry().Lookup(ctx, category, domainKey)
}

// GetOrSetStamp returns the stable stamp value for a pair, persisting value
// on first call. Empty value falls back to the current UTC datetime.
func (s *Service) GetOrSetStamp(ctx context.Context, category, domainKey, value string) (string, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return "", err
	}
	out, err := s.rt.Registry().GetOrSetStamp(ctx, category, domainKey, value)
	if err != nil {
		return "", err
	}
	return out, nil
}

// List returns the records in a category, optionally filtered by a CEL
// expression over category, domain_key, uid, created_at_ms, and now_ms.
func (s *Service) List(ctx context.Context, category, filterExpr string) ([]registry.Record, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	filter, err := newCELFilter(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("registry: invalid filter: %w", err)
	}
	recs, err := s.rt.Registry().List(ctx, category)
	if err != nil {
		return nil, err
	}
	if !filter.enabled {
		return recs, nil
	}
	out := recs[:0]
	for _, rec := range recs {
		if filter.Eval(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Stats returns the record count per category.
func (s *Service) Stats(ctx context.Context) (map[string]int, error) {
	cats, err := s.rt.Registry().Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(cats))
	for _, cat := range cats {
		n, err := s.rt.Registry().Count(ctx, cat)
		if err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, nil
}
