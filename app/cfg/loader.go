package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Serving configuration
	Port string `long:"port" env:"PORT" default:"5000" description:"HTTP server port"`

	// Pipeline configuration
	RefreshInterval   int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Cache refresh interval in seconds"`
	FetchTimeout      int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Per-source fetch timeout in seconds"`
	SourcesFile       string `long:"sources-file" env:"SOURCES_FILE" description:"Optional YAML file overriding the built-in source list"`
	NewsAPIKey        string `long:"news-api-key" env:"NEWS_API_KEY" description:"NewsAPI key for keyword-search sourcing (optional)"`
	DedupeServed      bool   `long:"dedupe-served" env:"DEDUPE_SERVED" description:"Drop already-sent articles from served snapshots"`
	SentRetentionDays int    `long:"sent-retention-days" env:"SENT_RETENTION_DAYS" default:"7" description:"Days to keep sent-article history"`

	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"war_monitor.db" description:"SQLite database path"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"War Monitor/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		RefreshInterval:   raw.RefreshInterval,
		FetchTimeout:      raw.FetchTimeout,
		SourcesFile:       raw.SourcesFile,
		NewsAPIKey:        raw.NewsAPIKey,
		DedupeServed:      raw.DedupeServed,
		SentRetentionDays: raw.SentRetentionDays,
		DBPath:            raw.DBPath,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
