package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ymaor/war-monitor/app/news"
)

// MockAggregator implements Aggregator for testing.
type MockAggregator struct {
	mu    sync.Mutex
	items []news.Item
	err   error
	calls int
}

func (m *MockAggregator) Aggregate(ctx context.Context) ([]news.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *MockAggregator) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockAggregator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockHistory implements History for testing.
type MockHistory struct {
	sent map[string]bool
	err  error
}

func (m *MockHistory) WasSent(url string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.sent[url], nil
}

// MockDispatcher implements Dispatcher for testing.
type MockDispatcher struct {
	mu        sync.Mutex
	snapshots []*news.Snapshot
}

func (m *MockDispatcher) Dispatch(ctx context.Context, snapshot *news.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snapshot)
}

func (m *MockDispatcher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

func testItems() []news.Item {
	return []news.Item{
		{Title: "critical", URL: "http://example.com/1", Level: news.LevelCritical},
		{Title: "urgent", URL: "http://example.com/2", Level: news.LevelUrgent},
	}
}

func TestRefresh_PublishesSnapshotWithStats(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	refresher := NewRefresher(aggregator, c, nil, nil, time.Hour)

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	snapshot := c.Get()
	if snapshot == nil {
		t.Fatal("Expected snapshot after refresh")
	}
	if len(snapshot.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(snapshot.Items))
	}
	if snapshot.Stats.Critical != 1 || snapshot.Stats.Urgent != 1 || snapshot.Stats.Total != 2 {
		t.Errorf("Unexpected stats: %+v", snapshot.Stats)
	}
	if snapshot.FetchedAt.IsZero() {
		t.Error("Expected capture timestamp to be set")
	}
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	refresher := NewRefresher(aggregator, c, nil, nil, time.Hour)

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	previous := c.Get()

	aggregator.setError(fmt.Errorf("total network outage"))
	if err := refresher.Refresh(context.Background()); err == nil {
		t.Fatal("Expected error from failing aggregator")
	}

	if got := c.Get(); got != previous {
		t.Error("Failed refresh must leave the previous snapshot in place")
	}
}

func TestRefresh_DropsSentItemsWhenHistoryWired(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	history := &MockHistory{sent: map[string]bool{"http://example.com/1": true}}
	refresher := NewRefresher(aggregator, c, history, nil, time.Hour)

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	snapshot := c.Get()
	if len(snapshot.Items) != 1 {
		t.Fatalf("Expected 1 item after dedup, got %d", len(snapshot.Items))
	}
	if snapshot.Items[0].URL != "http://example.com/2" {
		t.Errorf("Wrong item survived dedup: %q", snapshot.Items[0].URL)
	}
}

func TestRefresh_HistoryErrorKeepsItem(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	history := &MockHistory{err: fmt.Errorf("database locked")}
	refresher := NewRefresher(aggregator, c, history, nil, time.Hour)

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("History failure must not fail the refresh: %v", err)
	}
	if snapshot := c.Get(); len(snapshot.Items) != 2 {
		t.Errorf("Expected all items kept on history error, got %d", len(snapshot.Items))
	}
}

func TestRefresh_NotifiesDispatcher(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	dispatcher := &MockDispatcher{}
	refresher := NewRefresher(aggregator, c, nil, dispatcher, time.Hour)

	if err := refresher.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if dispatcher.count() != 1 {
		t.Errorf("Expected 1 dispatched snapshot, got %d", dispatcher.count())
	}
}

func TestStartStop_RunsPeriodicCycles(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{items: testItems()}
	refresher := NewRefresher(aggregator, c, nil, nil, 20*time.Millisecond)

	refresher.Start()

	// Initial synchronous refresh plus at least one ticker cycle.
	time.Sleep(70 * time.Millisecond)
	refresher.Stop()

	calls := aggregator.callCount()
	if calls < 2 {
		t.Errorf("Expected at least 2 aggregation cycles, got %d", calls)
	}

	// No further cycles after Stop.
	time.Sleep(50 * time.Millisecond)
	if got := aggregator.callCount(); got != calls {
		t.Errorf("Refresh loop kept running after Stop: %d -> %d", calls, got)
	}
}

func TestStart_InitialFailureStillServesEmpty(t *testing.T) {
	c := New()
	aggregator := &MockAggregator{}
	aggregator.setError(fmt.Errorf("startup outage"))
	refresher := NewRefresher(aggregator, c, nil, nil, time.Hour)

	refresher.Start()
	defer refresher.Stop()

	if snapshot := c.Get(); snapshot != nil {
		t.Errorf("Expected empty cache after failed initial fetch, got %+v", snapshot)
	}
}
