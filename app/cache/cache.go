// Package cache holds the latest aggregation snapshot and the background
// loop that refreshes it. Readers never block: the snapshot is an immutable
// value behind an atomic pointer, replaced as a whole on each publish.
package cache

import (
	"sync/atomic"

	"github.com/ymaor/war-monitor/app/news"
)

// Cache owns the current snapshot. The refresher is the only writer; any
// number of request handlers read concurrently.
type Cache struct {
	snapshot atomic.Pointer[news.Snapshot]
}

func New() *Cache {
	return &Cache{}
}

// Publish atomically replaces the current snapshot. Readers observe either
// the old or the new snapshot, never a partial state.
func (c *Cache) Publish(snapshot *news.Snapshot) {
	c.snapshot.Store(snapshot)
}

// Get returns the current snapshot, or nil before the first publish. The
// returned snapshot must not be modified.
func (c *Cache) Get() *news.Snapshot {
	return c.snapshot.Load()
}
