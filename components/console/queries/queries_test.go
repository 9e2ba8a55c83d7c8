package queries

import (
	"context"
	"net/url"
	"testing"

	console "github.com/goliatone/go-supplychain/components/console"
)

type stubSearchService struct {
	calls int
}

func (s *stubSearchService) Search(context.Context, string, string) ([]console.SearchResult, error) {
	s.calls++
	return []console.SearchResult{{Title: "Organic Apples"}}, nil
}

func (s *stubSearchService) AdvancedSearch(context.Context, url.Values) ([]console.SearchResult, error) {
	s.calls++
	return nil, nil
}

type stubStatusService struct {
	calls int
}

func (s *stubStatusService) ProductStatus(context.Context, string) (console.ProductStatusSnapshot, error) {
	s.calls++
	return console.ProductStatusSnapshot{Status: "in_transit"}, nil
}

func TestSearchQuery(t *testing.T) {
	service := &stubSearchService{}
	query := NewSearchQuery(service)
	results, err := query.Query(context.Background(), SearchInput{Query: "apples", Type: "product"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestAdvancedSearchQuery(t *testing.T) {
	service := &stubSearchService{}
	query := NewAdvancedSearchQuery(service)
	fields := url.Values{"category": {"produce"}}
	if _, err := query.Query(context.Background(), fields); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
}

func TestProductStatusQuery(t *testing.T) {
	service := &stubStatusService{}
	query := NewProductStatusQuery(service)
	snapshot, err := query.Query(context.Background(), ProductStatusInput{ProductID: "prod-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if snapshot.Status != "in_transit" {
		t.Fatalf("unexpected status %q", snapshot.Status)
	}
}
