package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ymaor/war-monitor/app/news"
)

// MockSubscribers implements database.SubscriberRepository.
type MockSubscribers struct {
	recipients []int64
	err        error
	calls      []string
}

func (m *MockSubscribers) Add(userID int64, username string) error { return nil }
func (m *MockSubscribers) Remove(userID int64) error               { return nil }
func (m *MockSubscribers) SetRegion(userID int64, region string) error {
	return nil
}
func (m *MockSubscribers) SetLevel(userID int64, level int) error { return nil }
func (m *MockSubscribers) Count() (int, error)                    { return len(m.recipients), nil }

func (m *MockSubscribers) ListForAlert(region string, level int) ([]int64, error) {
	m.calls = append(m.calls, fmt.Sprintf("%s/%d", region, level))
	if m.err != nil {
		return nil, m.err
	}
	return m.recipients, nil
}

// MockHistory implements database.ArticleHistoryRepository.
type MockHistory struct {
	sent    map[string]bool
	alerts  []string
	purges  int
	lookErr error
}

func (m *MockHistory) MarkSent(url, title string) error {
	if m.sent == nil {
		m.sent = make(map[string]bool)
	}
	m.sent[url] = true
	return nil
}

func (m *MockHistory) WasSent(url string) (bool, error) {
	if m.lookErr != nil {
		return false, m.lookErr
	}
	return m.sent[url], nil
}

func (m *MockHistory) PurgeOlderThan(days int) (int64, error) {
	m.purges++
	return 0, nil
}

func (m *MockHistory) LogAlert(title string, level int, sentTo int) error {
	m.alerts = append(m.alerts, fmt.Sprintf("%s/%d/%d", title, level, sentTo))
	return nil
}

// MockSender implements Sender.
type MockSender struct {
	messages map[int64][]string
	err      error
}

func (m *MockSender) Send(ctx context.Context, userID int64, message string) error {
	if m.err != nil {
		return m.err
	}
	if m.messages == nil {
		m.messages = make(map[int64][]string)
	}
	m.messages[userID] = append(m.messages[userID], message)
	return nil
}

func snapshotOf(items ...news.Item) *news.Snapshot {
	return news.NewSnapshot(items, time.Now())
}

func TestDispatch_SendsUnsentItemsAboveMinLevel(t *testing.T) {
	subscribers := &MockSubscribers{recipients: []int64{10, 20}}
	history := &MockHistory{}
	sender := &MockSender{}
	dispatcher := NewDispatcher(subscribers, history, sender, 2, 7)

	dispatcher.Dispatch(context.Background(), snapshotOf(
		news.Item{Title: "Critical", URL: "http://example.com/1", Level: 3, Region: "north"},
		news.Item{Title: "Regular", URL: "http://example.com/2", Level: 1, Region: "all"},
	))

	if len(sender.messages[10]) != 1 || len(sender.messages[20]) != 1 {
		t.Errorf("Expected one message per recipient, got %+v", sender.messages)
	}
	if !history.sent["http://example.com/1"] {
		t.Error("Dispatched article must be marked sent")
	}
	if history.sent["http://example.com/2"] {
		t.Error("Below-threshold article must not be marked sent")
	}
	if len(history.alerts) != 1 || history.alerts[0] != "Critical/3/2" {
		t.Errorf("Unexpected alert log: %v", history.alerts)
	}
	if len(subscribers.calls) != 1 || subscribers.calls[0] != "north/3" {
		t.Errorf("Expected region/level routed lookup, got %v", subscribers.calls)
	}
	if history.purges != 1 {
		t.Errorf("Expected one retention purge per dispatch, got %d", history.purges)
	}
}

func TestDispatch_SkipsAlreadySent(t *testing.T) {
	subscribers := &MockSubscribers{recipients: []int64{10}}
	history := &MockHistory{sent: map[string]bool{"http://example.com/1": true}}
	sender := &MockSender{}
	dispatcher := NewDispatcher(subscribers, history, sender, 2, 7)

	dispatcher.Dispatch(context.Background(), snapshotOf(
		news.Item{Title: "Old news", URL: "http://example.com/1", Level: 3, Region: "all"},
	))

	if len(sender.messages) != 0 {
		t.Errorf("Expected no messages for already-sent article, got %+v", sender.messages)
	}
	if len(history.alerts) != 0 {
		t.Errorf("Expected no alert log entries, got %v", history.alerts)
	}
}

func TestDispatch_SenderFailureStillRecordsHistory(t *testing.T) {
	subscribers := &MockSubscribers{recipients: []int64{10}}
	history := &MockHistory{}
	sender := &MockSender{err: fmt.Errorf("transport down")}
	dispatcher := NewDispatcher(subscribers, history, sender, 2, 7)

	dispatcher.Dispatch(context.Background(), snapshotOf(
		news.Item{Title: "Critical", URL: "http://example.com/1", Level: 3, Region: "all"},
	))

	if !history.sent["http://example.com/1"] {
		t.Error("Article must be marked sent even when delivery fails")
	}
	if len(history.alerts) != 1 || history.alerts[0] != "Critical/3/0" {
		t.Errorf("Expected alert log with zero deliveries, got %v", history.alerts)
	}
}

func TestDispatch_HistoryLookupFailureSkipsItem(t *testing.T) {
	subscribers := &MockSubscribers{recipients: []int64{10}}
	history := &MockHistory{lookErr: fmt.Errorf("database locked")}
	sender := &MockSender{}
	dispatcher := NewDispatcher(subscribers, history, sender, 2, 7)

	dispatcher.Dispatch(context.Background(), snapshotOf(
		news.Item{Title: "Critical", URL: "http://example.com/1", Level: 3, Region: "all"},
	))

	if len(sender.messages) != 0 {
		t.Errorf("Expected no delivery on history failure, got %+v", sender.messages)
	}
}

func TestFormatAlert(t *testing.T) {
	message := FormatAlert(news.Item{
		Title:       "Rocket fired at northern border",
		Description: "Sirens in Haifa",
		URL:         "http://example.com/1",
		Source:      "ynet",
		Level:       3,
		Region:      "north",
	})

	for _, fragment := range []string{"🔴", "קריטי", "Rocket fired", "ynet", "📍 north", "http://example.com/1"} {
		if !strings.Contains(message, fragment) {
			t.Errorf("Expected message to contain %q: %s", fragment, message)
		}
	}

	noRegion := FormatAlert(news.Item{Title: "t", Region: "all", Level: 1})
	if strings.Contains(noRegion, "📍") {
		t.Errorf("Wildcard region must not render a region tag: %s", noRegion)
	}
}
