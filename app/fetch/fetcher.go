// Package fetch retrieves and classifies news items from configured RSS
// sources and the NewsAPI search endpoint, and merges them into one ranked
// list. Failures are isolated per source: a broken feed contributes nothing
// and never aborts the others.
package fetch

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ymaor/war-monitor/app/classify"
	"github.com/ymaor/war-monitor/app/news"
)

const (
	// MaxItemsPerSource caps entries taken from a single RSS feed.
	MaxItemsPerSource = 10
	// MaxTotalItems caps the merged aggregation result.
	MaxTotalItems = 50
	// DescriptionLimit caps description length in code points.
	DescriptionLimit = 200
)

type Fetcher struct {
	httpClient      *http.Client
	gofeedParser    *gofeed.Parser
	sources         []Source
	searches        []SearchQuery
	newsAPIKey      string
	newsAPIEndpoint string
	userAgent       string
	timeout         time.Duration
}

func NewFetcher(sources []Source, searches []SearchQuery, newsAPIKey string,
	timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient:      &http.Client{},
		gofeedParser:    gofeed.NewParser(),
		sources:         sources,
		searches:        searches,
		newsAPIKey:      newsAPIKey,
		newsAPIEndpoint: defaultNewsAPIEndpoint,
		userAgent:       userAgent,
		timeout:         timeout,
	}
}

// SearchEnabled reports whether keyword-search sourcing is configured.
func (f *Fetcher) SearchEnabled() bool {
	return f.newsAPIKey != ""
}

// FetchFeed fetches and classifies one RSS source. Any failure (network,
// timeout, malformed feed) is logged and yields an empty result; errors never
// propagate to the caller.
func (f *Fetcher) FetchFeed(ctx context.Context, source Source) []news.Item {
	data, err := f.get(ctx, source.URL, nil)
	if err != nil {
		slog.Warn("Feed fetch failed", "source", source.Name, "error", err)
		return nil
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Feed parse failed", "source", source.Name, "error", err)
		return nil
	}

	entries := parsed.Items
	if len(entries) > MaxItemsPerSource {
		entries = entries[:MaxItemsPerSource]
	}

	items := make([]news.Item, 0, len(entries))
	for _, entry := range entries {
		description := cmp.Or(entry.Description, entry.Content)
		combined := entry.Title + " " + description

		level := classify.DetectLevel(combined)
		if level == news.LevelNone {
			continue
		}

		items = append(items, news.Item{
			Title:       entry.Title,
			Description: truncate(stripTags(description), DescriptionLimit),
			URL:         entry.Link,
			Source:      source.Name,
			Lang:        source.Lang,
			Level:       level,
			Region:      classify.DetectRegion(combined),
			Published:   entry.Published,
		})
	}

	slog.Debug("Feed fetched", "source", source.Name, "entries", len(parsed.Items), "kept", len(items))

	return items
}

func (f *Fetcher) get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if len(params) > 0 {
		query := req.URL.Query()
		for key, value := range params {
			query.Set(key, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// stripTags removes markup from feed descriptions, keeping text content only.
func stripTags(s string) string {
	if s == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(doc.Text())
}

// truncate limits s to at most limit code points.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
