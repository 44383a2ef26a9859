package news

import (
	"time"
)

// Urgency levels assigned by the classifier. Level 0 items are dropped from
// RSS results but kept for explicit keyword searches.
const (
	LevelNone     = 0
	LevelRegular  = 1
	LevelUrgent   = 2
	LevelCritical = 3
)

// Item is a single classified news article. The URL is the natural key:
// within one snapshot two items with the same URL are duplicates.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Lang        string `json:"lang"`
	Level       int    `json:"level"`
	Region      string `json:"region"`
	Published   string `json:"published"`
}

// Stats summarizes item counts per urgency level.
type Stats struct {
	Critical int `json:"critical"`
	Urgent   int `json:"urgent"`
	Regular  int `json:"regular"`
	Total    int `json:"total"`
}

// Snapshot is an immutable aggregation result. It is replaced as a whole on
// each refresh and must never be mutated after publication.
type Snapshot struct {
	Items     []Item
	Stats     Stats
	FetchedAt time.Time
}

// NewSnapshot captures items with their computed statistics.
func NewSnapshot(items []Item, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		Items:     items,
		Stats:     ComputeStats(items),
		FetchedAt: fetchedAt,
	}
}

func ComputeStats(items []Item) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		switch item.Level {
		case LevelCritical:
			stats.Critical++
		case LevelUrgent:
			stats.Urgent++
		case LevelRegular:
			stats.Regular++
		}
	}
	return stats
}
