package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ymaor/war-monitor/app/cache"
	"github.com/ymaor/war-monitor/app/classify"
	"github.com/ymaor/war-monitor/app/database"
	"github.com/ymaor/war-monitor/app/news"
)

const defaultLimit = 30

func NewHandler(snapshotCache *cache.Cache, searchHistory database.SearchHistoryRepository,
	searchEnabled bool, refreshInterval int, version string) *Handler {
	return &Handler{
		cache:           snapshotCache,
		searchHistory:   searchHistory,
		searchEnabled:   searchEnabled,
		refreshInterval: refreshInterval,
		version:         version,
	}
}

// snapshotView returns the items and capture metadata of the current
// snapshot, tolerating the empty pre-first-publish state.
func (h *Handler) snapshotView() ([]news.Item, news.Stats, int64) {
	snapshot := h.cache.Get()
	if snapshot == nil {
		return nil, news.Stats{}, 0
	}
	return snapshot.Items, snapshot.Stats, snapshot.FetchedAt.Unix()
}

// GetNews serves the filtered article list. Filters apply in order: urgency
// level set, language, region (item region or wildcard), free-text search;
// the result limit applies last. Count reflects the filtered total before
// the limit.
func (h *Handler) GetNews(c *gin.Context) {
	items, stats, cachedAt := h.snapshotView()

	levels, err := parseLevels(c.Query("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level filter, expected comma-separated integers"})
		return
	}

	limit := defaultLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	filtered := filterItems(items,
		levels,
		c.Query("lang"),
		c.Query("region"),
		strings.TrimSpace(c.Query("q")))

	capped := filtered
	if len(capped) > limit {
		capped = capped[:limit]
	}

	c.JSON(http.StatusOK, NewsResponse{
		Articles: capped,
		Count:    len(filtered),
		CachedAt: cachedAt,
		Stats:    stats,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	_, stats, cachedAt := h.snapshotView()

	c.JSON(http.StatusOK, StatsResponse{
		Stats:           stats,
		CachedAt:        cachedAt,
		RefreshInterval: h.refreshInterval,
	})
}

// Search runs the free-text filter over the whole snapshot, unbounded by the
// default result limit. An empty query yields an empty result, not an error.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"articles": []news.Item{}, "count": 0})
		return
	}

	if h.searchHistory != nil {
		if err := h.searchHistory.Log(0, query); err != nil {
			slog.Warn("Failed to record search query", "error", err)
		}
	}

	items, _, _ := h.snapshotView()
	matched := filterItems(items, nil, "", "", query)

	c.JSON(http.StatusOK, SearchResponse{
		Articles: matched,
		Count:    len(matched),
		Query:    classify.Fold(query),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	items, _, cachedAt := h.snapshotView()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Articles:  len(items),
		LastFetch: cachedAt,
		NewsAPI:   h.searchEnabled,
	})
}

func parseLevels(param string) (map[int]bool, error) {
	if param == "" {
		return nil, nil
	}

	levels := make(map[int]bool)
	for _, part := range strings.Split(param, ",") {
		level, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		levels[level] = true
	}
	return levels, nil
}

// filterItems applies the query-service filters in their defined order. A nil
// levels map, empty lang, empty or "all" region, and empty query each disable
// the corresponding filter.
func filterItems(items []news.Item, levels map[int]bool, lang, region, query string) []news.Item {
	filtered := make([]news.Item, 0, len(items))
	foldedQuery := classify.Fold(query)

	for _, item := range items {
		if levels != nil && !levels[item.Level] {
			continue
		}
		if lang != "" && item.Lang != lang {
			continue
		}
		if region != "" && region != "all" && item.Region != region && item.Region != "all" {
			continue
		}
		if foldedQuery != "" &&
			!strings.Contains(classify.Fold(item.Title+" "+item.Description), foldedQuery) {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered
}
