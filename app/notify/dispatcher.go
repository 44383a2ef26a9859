// Package notify turns fresh snapshots into outbound alerts. The actual
// transport (Telegram bot, webhook) lives behind the Sender interface; this
// package decides who gets what and keeps the delivery history.
package notify

import (
	"context"
	"log/slog"

	"github.com/ymaor/war-monitor/app/database"
	"github.com/ymaor/war-monitor/app/news"
)

// Sender delivers one formatted message to one recipient.
type Sender interface {
	Send(ctx context.Context, userID int64, message string) error
}

type Dispatcher struct {
	subscribers   database.SubscriberRepository
	history       database.ArticleHistoryRepository
	sender        Sender
	minLevel      int
	retentionDays int
}

func NewDispatcher(subscribers database.SubscriberRepository,
	history database.ArticleHistoryRepository, sender Sender,
	minLevel, retentionDays int) *Dispatcher {
	return &Dispatcher{
		subscribers:   subscribers,
		history:       history,
		sender:        sender,
		minLevel:      minLevel,
		retentionDays: retentionDays,
	}
}

// Dispatch sends every not-yet-delivered item at or above the minimum level
// to the subscribers matching its region and level, then trims old history.
// All failures are per-item and logged; a broken store or transport never
// propagates back into the refresh loop.
func (d *Dispatcher) Dispatch(ctx context.Context, snapshot *news.Snapshot) {
	alerts := 0
	for _, item := range snapshot.Items {
		if item.Level < d.minLevel {
			continue
		}

		sent, err := d.history.WasSent(item.URL)
		if err != nil {
			slog.Warn("Sent-history lookup failed", "url", item.URL, "error", err)
			continue
		}
		if sent {
			continue
		}

		recipients, err := d.subscribers.ListForAlert(item.Region, item.Level)
		if err != nil {
			slog.Warn("Subscriber lookup failed", "region", item.Region, "level", item.Level, "error", err)
			continue
		}

		message := FormatAlert(item)
		delivered := 0
		for _, userID := range recipients {
			if err := d.sender.Send(ctx, userID, message); err != nil {
				slog.Warn("Alert delivery failed", "user_id", userID, "url", item.URL, "error", err)
				continue
			}
			delivered++
		}

		if err := d.history.MarkSent(item.URL, item.Title); err != nil {
			slog.Warn("Failed to mark article sent", "url", item.URL, "error", err)
		}
		if err := d.history.LogAlert(item.Title, item.Level, delivered); err != nil {
			slog.Warn("Failed to log alert", "url", item.URL, "error", err)
		}
		alerts++
	}

	if alerts > 0 {
		slog.Info("Alerts dispatched", "count", alerts)
	}

	if removed, err := d.history.PurgeOlderThan(d.retentionDays); err != nil {
		slog.Warn("Sent-history purge failed", "error", err)
	} else if removed > 0 {
		slog.Debug("Sent-history purged", "removed", removed)
	}
}
