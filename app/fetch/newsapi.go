package fetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/ymaor/war-monitor/app/classify"
	"github.com/ymaor/war-monitor/app/news"
)

const defaultNewsAPIEndpoint = "https://newsapi.org/v2/everything"

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// FetchSearch queries the NewsAPI keyword-search endpoint. Unlike FetchFeed,
// level-0 items are kept: the query was explicit, so every result is surfaced.
// Failures are swallowed the same way as feed failures. Without a configured
// API key the search contributes nothing.
func (f *Fetcher) FetchSearch(ctx context.Context, search SearchQuery) []news.Item {
	if f.newsAPIKey == "" {
		return nil
	}

	params := map[string]string{
		"q":        search.Query,
		"language": search.Lang,
		"sortBy":   "publishedAt",
		"pageSize": strconv.Itoa(search.PageSize),
		"apiKey":   f.newsAPIKey,
	}

	data, err := f.get(ctx, f.newsAPIEndpoint, params)
	if err != nil {
		slog.Warn("NewsAPI fetch failed", "query", search.Query, "error", err)
		return nil
	}

	var response newsAPIResponse
	if err := json.Unmarshal(data, &response); err != nil {
		slog.Warn("NewsAPI response parse failed", "query", search.Query, "error", err)
		return nil
	}

	items := make([]news.Item, 0, len(response.Articles))
	for _, article := range response.Articles {
		combined := article.Title + " " + article.Description

		items = append(items, news.Item{
			Title:       article.Title,
			Description: truncate(article.Description, DescriptionLimit),
			URL:         article.URL,
			Source:      article.Source.Name,
			Lang:        search.Lang,
			Level:       classify.DetectLevel(combined),
			Region:      classify.DetectRegion(combined),
			Published:   article.PublishedAt,
		})
	}

	slog.Debug("NewsAPI fetched", "query", search.Query, "items", len(items))

	return items
}
