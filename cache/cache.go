// Package cache provides the single-slot, time-boxed memoization that
// sits in front of the fetch pipeline.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"car-dashboard/models"
	"car-dashboard/utils"
)

// LoadFunc produces a fresh dataset, returning a classified error on
// failure.
type LoadFunc func(ctx context.Context) (models.Table, error)

// Snapshot is one memoized load result. Err carries the classified
// error of a failed load; failed results occupy the slot for the same
// freshness window as successful ones, mirroring how the source
// memoized its empty-table returns.
type Snapshot struct {
	ID        string
	Table     models.Table
	Err       error
	FetchedAt time.Time
}

// Cache holds at most one snapshot. A Get within the freshness window
// returns it without touching the network; afterwards, or after an
// explicit Invalidate, the next Get loads again. Safe for concurrent
// use; concurrent Gets on a stale slot are serialized so the load runs
// once.
type Cache struct {
	mu     sync.Mutex
	ttl    time.Duration
	load   LoadFunc
	now    func() time.Time
	snap   *Snapshot
	logger *utils.Logger
}

// New creates a Cache with the given freshness window around load.
func New(ttl time.Duration, load LoadFunc, logger *utils.Logger) *Cache {
	return &Cache{
		ttl:    ttl,
		load:   load,
		now:    time.Now,
		logger: logger,
	}
}

// Get returns the cached snapshot while fresh and reloads otherwise.
// It never returns nil.
func (c *Cache) Get(ctx context.Context) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.now().Sub(c.snap.FetchedAt) < c.ttl {
		return c.snap
	}

	table, err := c.load(ctx)
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Table:     table,
		Err:       err,
		FetchedAt: c.now(),
	}

	if err != nil {
		c.logger.Warn("[cache] load failed (%s): %v", models.ErrorKind(err), err)
	} else {
		c.logger.Info("[cache] snapshot %s: %d rows", snap.ID, table.Len())
	}

	c.snap = snap
	return snap
}

// Invalidate drops the cached snapshot so the next Get fetches again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}
