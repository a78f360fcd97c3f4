// Package cache implements the path-keyed, refcounted DEM grid registry:
// many callers can hold the same on-disk grid without re-parsing it, and a
// grid is freed once its last holder releases it. The map/mutex shape
// follows the teacher's in-memory tile cache; concurrent loads of the same
// path are deduplicated with singleflight instead of a second mutex.
package cache

import (
	"fmt"
	"sync"

	"geoengine/dem"
	"geoengine/internal/logging"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	grid     *dem.Grid
	refCount int
}

// Cache holds parsed DEM grids keyed by file path.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Load parses (or returns the already-cached) grid at path and increments
// its reference count. Concurrent Load calls for the same path share one
// parse via singleflight. The caller must call Unload exactly once per
// successful Load.
func (c *Cache) Load(path string) (*dem.Grid, error) {
	c.mu.Lock()
	if e, ok := c.entries[path]; ok {
		e.refCount++
		c.mu.Unlock()
		return e.grid, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		c.mu.RLock()
		if e, ok := c.entries[path]; ok {
			c.mu.RUnlock()
			return e.grid, nil
		}
		c.mu.RUnlock()

		g, err := parse(path)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[path] = &entry{grid: g, refCount: 0}
		c.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path].refCount++
	c.mu.Unlock()

	return v.(*dem.Grid), nil
}

// Unload decrements path's reference count, freeing the entry once it
// reaches zero.
func (c *Cache) Unload(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok {
		return
	}
	e.refCount--
	if e.refCount <= 0 {
		delete(c.entries, path)
	}
}

// LoadList loads every path in paths, returning the successfully loaded
// grids. A path that fails to load takes no reference; it is logged and
// skipped rather than aborting the whole list, matching a multi-file DEM
// layer's "best effort" load semantics. LoadList reports no progress and
// cannot be cancelled: every path in the list is attempted.
func (c *Cache) LoadList(paths []string) []*dem.Grid {
	log := logging.For("dem-cache")
	grids := make([]*dem.Grid, 0, len(paths))
	for _, p := range paths {
		g, err := c.Load(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("failed to load DEM file")
			continue
		}
		grids = append(grids, g)
	}
	return grids
}

// UnloadList releases every path previously obtained via LoadList.
func (c *Cache) UnloadList(paths []string) {
	for _, p := range paths {
		c.Unload(p)
	}
}

// Get returns the currently cached grid for path without affecting its
// reference count, or nil if it is not loaded.
func (c *Cache) Get(path string) *dem.Grid {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[path]; ok {
		return e.grid
	}
	return nil
}

func parse(path string) (*dem.Grid, error) {
	switch dem.RecognizeSource(path) {
	case dem.SourceSRTM:
		return dem.ParseSRTM(path)
	default:
		g, err := dem.ParseUSGS24K(path)
		if err != nil {
			return nil, fmt.Errorf("cache: cannot parse %q: %w", path, err)
		}
		return g, nil
	}
}
