// Package cache holds an in-memory TTL cache in front of the exercise catalog.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/coocood/freecache"
)

const (
	megabyte   = 1024 * 1024
	cacheSize  = 8 * megabyte
	catalogKey = "catalog::all"
)

// Catalog serves ListExercises from memory for ttl seconds before asking the
// wrapped store again. A ttl of zero or less disables caching.
type Catalog struct {
	next  engine.CatalogStore
	cache *freecache.Cache
	ttl   int
	log   *slog.Logger
}

// NewCatalog wraps next with a cache.
func NewCatalog(next engine.CatalogStore, ttlSec int, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		next:  next,
		cache: freecache.NewCache(cacheSize),
		ttl:   ttlSec,
		log:   log,
	}
}

// ListExercises returns the cached catalog, refreshing it when expired.
func (c *Catalog) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	if c.ttl <= 0 {
		return c.next.ListExercises(ctx)
	}

	if b, err := c.cache.Get([]byte(catalogKey)); err == nil {
		var list []models.Exercise
		err := json.Unmarshal(b, &list)
		if err == nil {
			return list, nil
		}
		c.log.Warn("decoding cached catalog", "error", err)
	}

	list, err := c.next.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(list)
	if err != nil {
		c.log.Warn("encoding catalog for cache", "error", err)
		return list, nil
	}
	if err := c.cache.Set([]byte(catalogKey), b, c.ttl); err != nil {
		c.log.Warn("caching catalog", "error", err)
	}
	return list, nil
}

// Invalidate drops the cached catalog, e.g. after seeding.
func (c *Catalog) Invalidate() {
	c.cache.Del([]byte(catalogKey))
}
