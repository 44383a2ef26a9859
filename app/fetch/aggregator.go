package fetch

import (
	"context"
	"sort"
	"sync"

	"github.com/ymaor/war-monitor/app/news"
)

// Aggregate fans out one goroutine per configured source and search query,
// merges the results, sorts by urgency descending, and caps the total.
//
// Each fetch is independently time-bounded; a slow or failing source
// contributes an empty slice without delaying or aborting the others. Results
// are collected into indexed slots and concatenated in configuration order
// (RSS sources first, then search queries), so the stable sort yields a
// deterministic tie-break for equal urgency: source order, then feed order.
func (f *Fetcher) Aggregate(ctx context.Context) ([]news.Item, error) {
	results := make([][]news.Item, len(f.sources)+len(f.searches))

	var wg sync.WaitGroup
	for i, source := range f.sources {
		wg.Add(1)
		go func(slot int, source Source) {
			defer wg.Done()
			results[slot] = f.FetchFeed(ctx, source)
		}(i, source)
	}
	for i, search := range f.searches {
		wg.Add(1)
		go func(slot int, search SearchQuery) {
			defer wg.Done()
			results[slot] = f.FetchSearch(ctx, search)
		}(len(f.sources)+i, search)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := make([]news.Item, 0, MaxTotalItems)
	for _, items := range results {
		merged = append(merged, items...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Level > merged[j].Level
	})

	if len(merged) > MaxTotalItems {
		merged = merged[:MaxTotalItems]
	}

	return merged, nil
}
