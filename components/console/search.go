package console

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const minSearchLength = 2

// SearchInput handles one keystroke of the live search box. Input shorter
// than two characters clears the results and cancels any pending fetch;
// otherwise the fetch fires after a trailing debounce, so only the last
// keystroke in a burst reaches the backend. Length is counted in runes, not
// bytes, so multibyte input is held to the same threshold.
func (c *Controller) SearchInput(ctx context.Context, query, resultType string) {
	query = strings.TrimSpace(query)

	c.searchMu.Lock()
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	if utf8.RuneCountInString(query) < minSearchLength {
		c.searchMu.Unlock()
		c.clearResults(query)
		return
	}
	c.searchTimer = time.AfterFunc(c.intervals.Debounce, func() {
		c.runSearch(ctx, query, resultType)
	})
	c.searchMu.Unlock()
}

// runSearch performs the backend fetch and replaces the result list
// wholesale. Responses are applied in arrival order; a slow earlier fetch
// landing after a newer one overwrites it, matching the page behavior this
// console replaces.
func (c *Controller) runSearch(ctx context.Context, query, resultType string) {
	results, err := c.opts.Backend.Search(ctx, query, resultType)
	if err != nil {
		c.telemetry.Record(ctx, "console.search.error", map[string]any{"error": err.Error()})
		return
	}

	c.mu.Lock()
	c.doc.Results = SearchResultsView{
		Query:   query,
		Results: results,
		Empty:   len(results) == 0,
	}
	c.mu.Unlock()
	c.emitUpdate(ctx, UpdateEvent{Payload: map[string]any{"query": query, "results": len(results)}})
}

func (c *Controller) clearResults(query string) {
	c.mu.Lock()
	c.doc.Results = SearchResultsView{Query: query}
	c.mu.Unlock()
}

func (c *Controller) cancelSearch() {
	c.searchMu.Lock()
	defer c.searchMu.Unlock()
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
}

// AdvancedSearch submits the multi-field search form immediately, with no
// debounce, and reports the hit count through a notification.
func (c *Controller) AdvancedSearch(ctx context.Context, fields url.Values) ([]SearchResult, error) {
	results, err := c.opts.Backend.AdvancedSearch(ctx, fields)
	if err != nil {
		c.notify.Notify("Search failed. Please try again.", KindDanger, 0)
		return nil, err
	}

	c.mu.Lock()
	c.doc.Results = SearchResultsView{
		Query:   fields.Get("q"),
		Results: results,
		Empty:   len(results) == 0,
	}
	c.mu.Unlock()

	c.notify.Notify("Found "+strconv.Itoa(len(results))+" results", KindInfo, 0)
	c.telemetry.Record(ctx, "console.search.advanced", map[string]any{"results": len(results)})
	return results, nil
}
