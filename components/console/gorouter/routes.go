package gorouter

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"

	console "github.com/goliatone/go-supplychain/components/console"
)

// DataSource serves the JSON payloads the console polls and fetches. The
// in-memory store in examples and the HTTP client in pkg/backend both
// satisfy it.
type DataSource = console.Backend

// Config wires go-router with the console data endpoints, the rendered page,
// and the update broadcast.
type Config[T any] struct {
	Router     router.Router[T]
	Source     DataSource
	Controller *console.Controller
	Broadcast  *console.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Page           string
	QuickStats     string
	Activities     string
	FraudAlerts    string
	Track          string
	Search         string
	AdvancedSearch string
	Verify         string
	Fragment       string
	ChartData      string
	WebSocket      string
}

// advancedSearchFields are the form inputs forwarded to the backend; empty
// values are dropped before the query runs.
var advancedSearchFields = []string{"q", "category", "status", "date_from", "date_to"}

// Register mounts the console routes (HTML page, JSON data, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Source == nil {
		return errors.New("gorouter: data source is required")
	}
	routes := cfg.routes()
	group := cfg.Router.Group(cfg.BasePath)

	if cfg.Controller != nil {
		group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
			html, err := cfg.Controller.RenderPage()
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send([]byte(html))
		}))
	}

	group.Get(routes.QuickStats, router.WrapHandler(func(ctx router.Context) error {
		stats, err := cfg.Source.QuickStats(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, stats)
	}))

	group.Get(routes.Activities, router.WrapHandler(func(ctx router.Context) error {
		entries, err := cfg.Source.RecentActivities(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, entries)
	}))

	group.Get(routes.FraudAlerts, router.WrapHandler(func(ctx router.Context) error {
		alerts, err := cfg.Source.FraudAlerts(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, alerts)
	}))

	group.Get(routes.Track, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("product id is required"))
		}
		result, err := cfg.Source.TrackNow(ctx.Context(), id)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	group.Get(routes.Search, router.WrapHandler(func(ctx router.Context) error {
		results, err := cfg.Source.Search(ctx.Context(), ctx.Query("q"), ctx.Query("type"))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, results)
	}))

	group.Get(routes.AdvancedSearch, router.WrapHandler(func(ctx router.Context) error {
		fields := url.Values{}
		for _, name := range advancedSearchFields {
			if v := strings.TrimSpace(ctx.Query(name)); v != "" {
				fields.Set(name, v)
			}
		}
		results, err := cfg.Source.AdvancedSearch(ctx.Context(), fields)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, results)
	}))

	group.Get(routes.Verify, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("record id is required"))
		}
		verified, err := cfg.Source.VerifyRecord(ctx.Context(), id)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"verified": verified})
	}))

	group.Get(routes.Fragment, router.WrapHandler(func(ctx router.Context) error {
		name := ctx.Param("name")
		if name == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("fragment name is required"))
		}
		html, err := cfg.Source.Fragment(ctx.Context(), name)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}))

	group.Get(routes.ChartData, router.WrapHandler(func(ctx router.Context) error {
		name := ctx.Param("name")
		if name == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("chart name is required"))
		}
		data, err := cfg.Source.ChartData(ctx.Context(), name)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, data)
	}))

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Page == "" {
		routes.Page = "/"
	}
	if routes.QuickStats == "" {
		routes.QuickStats = "/dashboard/api/quick_stats"
	}
	if routes.Activities == "" {
		routes.Activities = "/dashboard/api/recent_activities"
	}
	if routes.FraudAlerts == "" {
		routes.FraudAlerts = "/analytics/api/fraud_alerts"
	}
	if routes.Track == "" {
		routes.Track = "/products/api/:id/track"
	}
	if routes.Search == "" {
		routes.Search = "/api/search"
	}
	if routes.AdvancedSearch == "" {
		routes.AdvancedSearch = "/api/advanced-search"
	}
	if routes.Verify == "" {
		routes.Verify = "/api/blockchain/verify/:id"
	}
	if routes.Fragment == "" {
		routes.Fragment = "/fragments/:name"
	}
	if routes.ChartData == "" {
		routes.ChartData = "/api/charts/:name"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/console/ws"
	}
	return routes
}
