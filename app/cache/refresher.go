package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ymaor/war-monitor/app/news"
)

// Aggregator produces the merged, sorted, capped item list for one cycle.
type Aggregator interface {
	Aggregate(ctx context.Context) ([]news.Item, error)
}

// History answers whether an article URL was already delivered. Wired only
// when served-result deduplication is enabled.
type History interface {
	WasSent(url string) (bool, error)
}

// Dispatcher receives each freshly published snapshot.
type Dispatcher interface {
	Dispatch(ctx context.Context, snapshot *news.Snapshot)
}

// Refresher periodically rebuilds the snapshot and publishes it to the cache.
// A failed cycle leaves the previous snapshot authoritative; the loop never
// terminates on refresh errors.
type Refresher struct {
	aggregator Aggregator
	cache      *Cache
	history    History
	dispatcher Dispatcher
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewRefresher creates a refresher. history and dispatcher may be nil.
func NewRefresher(aggregator Aggregator, cache *Cache, history History,
	dispatcher Dispatcher, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Refresher{
		aggregator: aggregator,
		cache:      cache,
		history:    history,
		dispatcher: dispatcher,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start performs one synchronous refresh so the cache is warm before traffic
// is accepted, then launches the background loop. An initial failure is
// logged and serving continues from the empty cache.
func (r *Refresher) Start() {
	if err := r.Refresh(r.ctx); err != nil {
		slog.Warn("Initial fetch failed, serving empty cache until next cycle", "error", err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				if err := r.Refresh(r.ctx); err != nil {
					slog.Error("Cache refresh failed, keeping previous snapshot", "error", err)
				}
			}
		}
	}()
}

func (r *Refresher) Stop() {
	r.cancel()
	r.wg.Wait()
}

// Refresh runs one aggregation cycle and publishes the result.
func (r *Refresher) Refresh(ctx context.Context) error {
	started := time.Now()

	items, err := r.aggregator.Aggregate(ctx)
	if err != nil {
		return err
	}

	if r.history != nil {
		items = r.dropSent(items)
	}

	snapshot := news.NewSnapshot(items, time.Now().UTC())
	r.cache.Publish(snapshot)

	slog.Info("Cache refreshed",
		"articles", snapshot.Stats.Total,
		"critical", snapshot.Stats.Critical,
		"urgent", snapshot.Stats.Urgent,
		"duration", time.Since(started))

	if r.dispatcher != nil {
		r.dispatcher.Dispatch(ctx, snapshot)
	}

	return nil
}

// dropSent removes items already recorded in the sent-article history. A
// history lookup failure keeps the item: stale duplicates beat missing news.
func (r *Refresher) dropSent(items []news.Item) []news.Item {
	kept := make([]news.Item, 0, len(items))
	for _, item := range items {
		sent, err := r.history.WasSent(item.URL)
		if err != nil {
			slog.Warn("Sent-history lookup failed", "url", item.URL, "error", err)
			kept = append(kept, item)
			continue
		}
		if !sent {
			kept = append(kept, item)
		}
	}
	return kept
}
