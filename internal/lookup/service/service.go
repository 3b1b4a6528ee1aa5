// Package service resolves foreign lookup references before profiles
// are written. Any missing reference is a validation error, reported
// before the registration transaction opens.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"partnerhub/internal/lookup/models"
	dErrors "partnerhub/pkg/domain-errors"
	"partnerhub/pkg/platform/sentinel"
)

// CatalogStore reads the lookup catalogs.
type CatalogStore interface {
	CountryByName(ctx context.Context, name string) (*models.Country, error)
	YearsOfExperienceByID(ctx context.Context, id int64) (*models.YearsOfExperience, error)
	BusinessStructureByID(ctx context.Context, id int64) (*models.BusinessStructure, error)
}

// Cache is the subset of the go-redis client the resolver uses.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// cacheTTL bounds staleness of catalog rows. Catalogs change rarely;
// a short TTL keeps deleted rows from validating for long.
const cacheTTL = 5 * time.Minute

// Resolver validates lookup references, optionally read-through cached.
type Resolver struct {
	store  CatalogStore
	cache  Cache
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache enables the read-through cache. A nil cache is ignored.
func WithCache(cache Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New constructs a Resolver over the given catalog store.
func New(store CatalogStore, opts ...Option) *Resolver {
	r := &Resolver{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveCountry validates that a country exists, matching by name
// case-insensitively.
func (r *Resolver) ResolveCountry(ctx context.Context, name string) (*models.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "country is required")
	}
	return resolve(ctx, r, "lookup:country:"+strings.ToLower(name),
		func(ctx context.Context) (*models.Country, error) {
			return r.store.CountryByName(ctx, name)
		},
		dErrors.Newf(dErrors.CodeValidation, "country %q not found", name),
	)
}

// ResolveYearsOfExperience validates that an experience bracket exists.
func (r *Resolver) ResolveYearsOfExperience(ctx context.Context, id int64) (*models.YearsOfExperience, error) {
	if id <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "years of experience id is required")
	}
	return resolve(ctx, r, cacheKey("lookup:experience:", id),
		func(ctx context.Context) (*models.YearsOfExperience, error) {
			return r.store.YearsOfExperienceByID(ctx, id)
		},
		dErrors.Newf(dErrors.CodeValidation, "years of experience %d not found", id),
	)
}

// ResolveBusinessStructure validates that a business structure exists.
func (r *Resolver) ResolveBusinessStructure(ctx context.Context, id int64) (*models.BusinessStructure, error) {
	if id <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "business structure id is required")
	}
	return resolve(ctx, r, cacheKey("lookup:structure:", id),
		func(ctx context.Context) (*models.BusinessStructure, error) {
			return r.store.BusinessStructureByID(ctx, id)
		},
		dErrors.Newf(dErrors.CodeValidation, "business structure %d not found", id),
	)
}

// resolve runs the cache-then-store read. Cache failures degrade to a
// plain store read rather than failing the registration.
func resolve[T any](
	ctx context.Context,
	r *Resolver,
	key string,
	fetch func(ctx context.Context) (*T, error),
	notFound *dErrors.Error,
) (*T, error) {
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "lookup cache read failed, falling back to store",
				"key", key,
				"error", err,
			)
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, notFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup catalog read failed")
	}

	if r.cache != nil {
		if raw, err := json.Marshal(v); err == nil {
			if err := r.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				r.logger.WarnContext(ctx, "lookup cache write failed",
					"key", key,
					"error", err,
				)
			}
		}
	}
	return v, nil
}

func cacheKey(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}
