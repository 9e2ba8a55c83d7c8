package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	console "github.com/goliatone/go-supplychain/components/console"
)

// HTTPConfig configures the HTTP backend client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Validator  console.PayloadValidator
}

// HTTPClient consumes the supply-chain web application's JSON endpoints and
// satisfies console.Backend.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	validator console.PayloadValidator
}

var _ console.Backend = (*HTTPClient)(nil)

// NewHTTPClient builds a client for a live supply-chain application.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		client:    httpClient,
		validator: cfg.Validator,
	}, nil
}

// QuickStats fetches the dashboard counters.
func (c *HTTPClient) QuickStats(ctx context.Context) (console.StatPatch, error) {
	var resp console.StatPatch
	if err := c.get(ctx, "/dashboard/api/quick_stats", &resp); err != nil {
		return nil, err
	}
	if err := c.validate("quick_stats", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// RecentActivities fetches the activity feed.
func (c *HTTPClient) RecentActivities(ctx context.Context) ([]console.ActivityEntry, error) {
	var resp []activityDTO
	if err := c.get(ctx, "/dashboard/api/recent_activities", &resp); err != nil {
		return nil, err
	}
	entries := make([]console.ActivityEntry, 0, len(resp))
	for _, dto := range resp {
		entry, err := dto.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FraudAlerts fetches anomaly detections.
func (c *HTTPClient) FraudAlerts(ctx context.Context) ([]console.FraudAlert, error) {
	var resp []console.FraudAlert
	if err := c.get(ctx, "/analytics/api/fraud_alerts", &resp); err != nil {
		return nil, err
	}
	if err := c.validate("fraud_alerts", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ProductStatus fetches the live tracking snapshot for a product.
func (c *HTTPClient) ProductStatus(ctx context.Context, productID string) (console.ProductStatusSnapshot, error) {
	resp, err := c.track(ctx, productID)
	if err != nil {
		return console.ProductStatusSnapshot{}, err
	}
	return resp.toSnapshot(), nil
}

// TrackNow forces a tracking refresh and returns the raw result.
func (c *HTTPClient) TrackNow(ctx context.Context, productID string) (console.TrackResult, error) {
	resp, err := c.track(ctx, productID)
	if err != nil {
		return console.TrackResult{}, err
	}
	return console.TrackResult{Success: resp.Success, Product: resp.Product}, nil
}

func (c *HTTPClient) track(ctx context.Context, productID string) (trackResponse, error) {
	if productID == "" {
		return trackResponse{}, fmt.Errorf("backend: product id is required")
	}
	var resp trackResponse
	path := "/products/api/" + url.PathEscape(productID) + "/track"
	if err := c.get(ctx, path, &resp); err != nil {
		return trackResponse{}, err
	}
	return resp, nil
}

// Search runs the live search endpoint.
func (c *HTTPClient) Search(ctx context.Context, query, resultType string) ([]console.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if resultType != "" {
		params.Set("type", resultType)
	}
	var resp []console.SearchResult
	if err := c.get(ctx, "/api/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AdvancedSearch runs the multi-field search endpoint.
func (c *HTTPClient) AdvancedSearch(ctx context.Context, fields url.Values) ([]console.SearchResult, error) {
	var resp []console.SearchResult
	if err := c.get(ctx, "/api/advanced-search?"+fields.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// VerifyRecord checks a record's integrity.
func (c *HTTPClient) VerifyRecord(ctx context.Context, recordID string) (bool, error) {
	if recordID == "" {
		return false, fmt.Errorf("backend: record id is required")
	}
	var resp struct {
		Verified bool `json:"verified"`
	}
	path := "/api/blockchain/verify/" + url.PathEscape(recordID)
	if err := c.get(ctx, path, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// Fragment fetches a server-rendered HTML fragment as raw text.
func (c *HTTPClient) Fragment(ctx context.Context, fragmentURL string) (string, error) {
	req, err := c.newRequest(ctx, fragmentURL)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("backend: read fragment: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("backend: remote error %d: %s", resp.StatusCode, buf.String())
	}
	return buf.String(), nil
}

// ChartData fetches a chart payload.
func (c *HTTPClient) ChartData(ctx context.Context, dataURL string) (console.ChartData, error) {
	var resp console.ChartData
	if err := c.get(ctx, dataURL, &resp); err != nil {
		return console.ChartData{}, err
	}
	return resp, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, target any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("backend: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *HTTPClient) validate(endpoint string, payload any) error {
	if c.validator == nil {
		return nil
	}
	return c.validator.Validate(endpoint, payload)
}

type activityDTO struct {
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
}

func (dto activityDTO) toEntry() (console.ActivityEntry, error) {
	entry := console.ActivityEntry{
		Description: dto.Description,
		Icon:        dto.Icon,
		Type:        dto.Type,
	}
	if dto.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, dto.Timestamp)
		if err != nil {
			return console.ActivityEntry{}, fmt.Errorf("backend: parse activity timestamp %q: %w", dto.Timestamp, err)
		}
		entry.Timestamp = ts
	}
	return entry, nil
}

type trackResponse struct {
	Success bool           `json:"success"`
	Product map[string]any `json:"product"`
}

func (r trackResponse) toSnapshot() console.ProductStatusSnapshot {
	var snapshot console.ProductStatusSnapshot
	if status, ok := r.Product["status"].(string); ok {
		snapshot.Status = status
	}
	if env, ok := r.Product["environmental_conditions"].(map[string]any); ok {
		snapshot.EnvironmentalConditions = console.EnvironmentalConditions{
			Temperature: floatField(env, "temperature"),
			Humidity:    floatField(env, "humidity"),
			Pressure:    floatField(env, "pressure"),
		}
	}
	return snapshot
}

func floatField(m map[string]any, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}
