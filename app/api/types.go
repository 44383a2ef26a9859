package api

import (
	"github.com/ymaor/war-monitor/app/cache"
	"github.com/ymaor/war-monitor/app/database"
	"github.com/ymaor/war-monitor/app/news"
)

type Handler struct {
	cache           *cache.Cache
	searchHistory   database.SearchHistoryRepository
	searchEnabled   bool
	refreshInterval int
	version         string
}

type NewsResponse struct {
	Articles []news.Item `json:"articles"`
	Count    int         `json:"count"`
	CachedAt int64       `json:"cached_at"`
	Stats    news.Stats  `json:"stats"`
}

type StatsResponse struct {
	Stats           news.Stats `json:"stats"`
	CachedAt        int64      `json:"cached_at"`
	RefreshInterval int        `json:"refresh_interval"`
}

type SearchResponse struct {
	Articles []news.Item `json:"articles"`
	Count    int         `json:"count"`
	Query    string      `json:"query"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Articles  int    `json:"articles"`
	LastFetch int64  `json:"last_fetch"`
	NewsAPI   bool   `json:"news_api"`
}
