package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartPoint is one labeled value on a chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named run of points.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartData is the JSON payload a chart endpoint returns.
type ChartData struct {
	Title  string        `json:"title"`
	Type   string        `json:"type"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// ChartRenderer turns chart payloads into server-rendered markup.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme.
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so the chart JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache and default theme.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render produces chart HTML for the payload, consulting the cache first.
func (r *ChartRenderer) Render(data ChartData) (string, error) {
	if len(data.Series) == 0 {
		return "", fmt.Errorf("chart series is required")
	}
	renderFn := func() (string, error) {
		return r.render(data)
	}
	if r.cache != nil {
		key := strings.ToLower(data.Type) + ":" + chartHash(data)
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *ChartRenderer) render(data ChartData) (string, error) {
	labels := data.Labels
	if len(labels) == 0 {
		labels = inferredAxisLabels(data.Series)
	}
	switch strings.ToLower(data.Type) {
	case "bar", "":
		return r.renderBarChart(data, labels)
	case "line":
		return r.renderLineChart(data, labels)
	case "pie":
		return r.renderPieChart(data)
	default:
		return "", fmt.Errorf("unsupported chart type: %s", data.Type)
	}
}

func (r *ChartRenderer) renderBarChart(data ChartData, labels []string) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(data.Title)...)
	bar.SetXAxis(labels)
	for _, s := range data.Series {
		bar.AddSeries(s.Name, toBarData(s.Points))
	}
	return renderChart(bar)
}

func (r *ChartRenderer) renderLineChart(data ChartData, labels []string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(data.Title)...)
	line.SetXAxis(labels)
	for _, s := range data.Series {
		line.AddSeries(s.Name, toLineData(s.Points))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) renderPieChart(data ChartData) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(data.Title)...)
	for _, s := range data.Series {
		pie.AddSeries(s.Name, toPieData(s.Points))
	}
	return renderChart(pie)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func inferredAxisLabels(series []ChartSeries) []string {
	longest := 0
	for _, s := range series {
		if len(s.Points) > longest {
			longest = len(s.Points)
		}
	}
	labels := make([]string, longest)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	for _, s := range series {
		for i, p := range s.Points {
			if p.Label != "" {
				labels[i] = p.Label
			}
		}
	}
	return labels
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}

// LoadChart fetches a chart payload from the backend and renders it with the
// configured renderer. Pages declare their charts in the manifest; this is
// the bootstrap step for each declaration.
func (c *Controller) LoadChart(ctx context.Context, dataURL string) (string, error) {
	data, err := c.opts.Backend.ChartData(ctx, dataURL)
	if err != nil {
		c.telemetry.Record(ctx, "console.chart.error", map[string]any{
			"source": dataURL,
			"error":  err.Error(),
		})
		return "", err
	}
	html, err := c.chartRenderer().Render(data)
	if err != nil {
		return "", err
	}
	c.telemetry.Record(ctx, "console.chart.render", map[string]any{
		"source": dataURL,
		"type":   data.Type,
	})
	return html, nil
}

func (c *Controller) chartRenderer() *ChartRenderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.charts == nil {
		theme := types.ThemeWesteros
		if c.doc.Theme.Active == ThemeDark {
			theme = types.ThemeChalk
		}
		c.charts = NewChartRenderer(WithChartTheme(theme))
	}
	return c.charts
}
