package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ymaor/war-monitor/app/api"
	"github.com/ymaor/war-monitor/app/cache"
	"github.com/ymaor/war-monitor/app/cfg"
	"github.com/ymaor/war-monitor/app/database"
	"github.com/ymaor/war-monitor/app/fetch"
	"github.com/ymaor/war-monitor/app/news"
	"github.com/ymaor/war-monitor/app/notify"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting War Monitor server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	sources, err := fetch.LoadSources(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "error", err)
		os.Exit(1)
	}
	slog.Info("Sources loaded", "feeds", len(sources.Sources), "searches", len(sources.Searches),
		"news_api", appCfg.NewsAPIKey != "")

	fetcher := fetch.NewFetcher(sources.Sources, sources.Searches, appCfg.NewsAPIKey,
		time.Duration(appCfg.FetchTimeout)*time.Second, appCfg.UserAgent)

	subscribers := database.NewSubscriberRepo(db)
	articleHistory := database.NewArticleHistoryRepo(db)
	searchHistory := database.NewSearchHistoryRepo(db)

	dispatcher := notify.NewDispatcher(subscribers, articleHistory, notify.NewLogSender(),
		news.LevelCritical, appCfg.SentRetentionDays)

	// Served-result dedup against sent-article history is opt-in; by default
	// history only gates outbound alerts.
	var history cache.History
	if appCfg.DedupeServed {
		history = articleHistory
	}

	snapshotCache := cache.New()
	refresher := cache.NewRefresher(fetcher, snapshotCache, history, dispatcher,
		time.Duration(appCfg.RefreshInterval)*time.Second)
	refresher.Start()
	defer refresher.Stop()

	handler := api.NewHandler(snapshotCache, searchHistory, fetcher.SearchEnabled(),
		appCfg.RefreshInterval, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Refresher is stopped via defer
	slog.Info("Shutdown complete")
}
