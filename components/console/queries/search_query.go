package queries

import (
	"context"
	"net/url"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-supplychain/components/console"
)

// SearchInput is one live-search request.
type SearchInput struct {
	Query string
	Type  string
}

type searchService interface {
	Search(ctx context.Context, query, resultType string) ([]console.SearchResult, error)
}

// SearchQuery fetches results for the live search box.
type SearchQuery struct {
	service searchService
}

// NewSearchQuery builds the query.
func NewSearchQuery(service searchService) *SearchQuery {
	return &SearchQuery{service: service}
}

var _ gocommand.Querier[SearchInput, []console.SearchResult] = (*SearchQuery)(nil)

// Query performs the search.
func (q *SearchQuery) Query(ctx context.Context, input SearchInput) ([]console.SearchResult, error) {
	return q.service.Search(ctx, input.Query, input.Type)
}

type advancedSearchService interface {
	AdvancedSearch(ctx context.Context, fields url.Values) ([]console.SearchResult, error)
}

// AdvancedSearchQuery runs the multi-field search form.
type AdvancedSearchQuery struct {
	service advancedSearchService
}

// NewAdvancedSearchQuery builds the query.
func NewAdvancedSearchQuery(service advancedSearchService) *AdvancedSearchQuery {
	return &AdvancedSearchQuery{service: service}
}

var _ gocommand.Querier[url.Values, []console.SearchResult] = (*AdvancedSearchQuery)(nil)

// Query performs the advanced search.
func (q *AdvancedSearchQuery) Query(ctx context.Context, fields url.Values) ([]console.SearchResult, error) {
	return q.service.AdvancedSearch(ctx, fields)
}
