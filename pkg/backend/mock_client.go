package backend

import (
	"context"
	"net/url"
	"sync"

	console "github.com/goliatone/go-supplychain/components/console"
)

// MockData seeds deterministic backend responses for tests or local demos.
type MockData struct {
	Stats      console.StatPatch
	Activities []console.ActivityEntry
	Alerts     []console.FraudAlert
	Snapshot   console.ProductStatusSnapshot
	Track      console.TrackResult
	Results    []console.SearchResult
	Verified   bool
	Fragments  map[string]string
	Charts     map[string]console.ChartData
}

// MockClient implements console.Backend using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

var _ console.Backend = (*MockClient)(nil)

// NewMockClient builds a mock backend from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// QuickStats returns the configured counters.
func (c *MockClient) QuickStats(context.Context) (console.StatPatch, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneStats(c.data.Stats), nil
}

// RecentActivities returns the configured feed.
func (c *MockClient) RecentActivities(context.Context) ([]console.ActivityEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.ActivityEntry(nil), c.data.Activities...), nil
}

// FraudAlerts returns the configured alerts.
func (c *MockClient) FraudAlerts(context.Context) ([]console.FraudAlert, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.FraudAlert(nil), c.data.Alerts...), nil
}

// ProductStatus returns the configured snapshot ignoring the product id.
func (c *MockClient) ProductStatus(context.Context, string) (console.ProductStatusSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Snapshot, nil
}

// TrackNow returns the configured track result.
func (c *MockClient) TrackNow(context.Context, string) (console.TrackResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTrack(c.data.Track), nil
}

// Search returns the configured results ignoring the query.
func (c *MockClient) Search(context.Context, string, string) ([]console.SearchResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.SearchResult(nil), c.data.Results...), nil
}

// AdvancedSearch returns the configured results ignoring the fields.
func (c *MockClient) AdvancedSearch(context.Context, url.Values) ([]console.SearchResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]console.SearchResult(nil), c.data.Results...), nil
}

// VerifyRecord returns the configured verdict.
func (c *MockClient) VerifyRecord(context.Context, string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Verified, nil
}

// Fragment returns the fixture registered for the URL.
func (c *MockClient) Fragment(_ context.Context, fragmentURL string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Fragments[fragmentURL], nil
}

// ChartData returns the fixture registered for the URL.
func (c *MockClient) ChartData(_ context.Context, dataURL string) (console.ChartData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Charts[dataURL], nil
}

// SetStats replaces the counter fixtures, useful for poll-driven demos.
func (c *MockClient) SetStats(stats console.StatPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Stats = cloneStats(stats)
}

func cloneStats(stats console.StatPatch) console.StatPatch {
	out := make(console.StatPatch, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out
}

func cloneTrack(result console.TrackResult) console.TrackResult {
	out := console.TrackResult{Success: result.Success}
	if result.Product != nil {
		out.Product = make(map[string]any, len(result.Product))
		for k, v := range result.Product {
			out.Product[k] = v
		}
	}
	return out
}
