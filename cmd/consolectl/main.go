package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"

	console "github.com/goliatone/go-supplychain/components/console"
	"github.com/goliatone/go-supplychain/pkg/backend"
)

type cli struct {
	BaseURL string `default:"http://localhost:5000" help:"Base URL of the supply-chain application."`
	APIKey  string `help:"Bearer token sent with every request."`

	Stats    statsCmd    `cmd:"" help:"Fetch the dashboard quick stats."`
	Track    trackCmd    `cmd:"" help:"Force a tracking update for a product."`
	Verify   verifyCmd   `cmd:"" help:"Verify a record's integrity."`
	Search   searchCmd   `cmd:"" help:"Run a search against the application."`
	Export   exportCmd   `cmd:"" help:"Export search results to a CSV or JSON file."`
	Manifest manifestCmd `cmd:"" help:"Validate a console page manifest."`
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("Operator utility for supply-chain console backends."),
		kong.UsageOnError(),
		kong.Bind(root),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (c *cli) client() (*backend.HTTPClient, error) {
	return backend.NewHTTPClient(backend.HTTPConfig{BaseURL: c.BaseURL, APIKey: c.APIKey})
}

type statsCmd struct{}

func (cmd *statsCmd) Run(ctx context.Context, root *cli) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	stats, err := client.QuickStats(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(os.Stdout, "%-24s %g\n", strcase.ToSnake(key), stats[key])
	}
	return nil
}

type trackCmd struct {
	Product string `arg:"" help:"Product identifier."`
}

func (cmd *trackCmd) Run(ctx context.Context, root *cli) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	result, err := client.TrackNow(ctx, cmd.Product)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("consolectl: tracking update for %s failed", cmd.Product)
	}
	if status, ok := result.Product["status"].(string); ok {
		fmt.Fprintf(os.Stdout, "✓ %s is %s\n", cmd.Product, status)
	} else {
		fmt.Fprintf(os.Stdout, "✓ %s tracked\n", cmd.Product)
	}
	return nil
}

type verifyCmd struct {
	Record string `arg:"" help:"Record identifier."`
}

func (cmd *verifyCmd) Run(ctx context.Context, root *cli) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	verified, err := client.VerifyRecord(ctx, cmd.Record)
	if err != nil {
		return err
	}
	if !verified {
		return fmt.Errorf("consolectl: record %s failed verification", cmd.Record)
	}
	fmt.Fprintf(os.Stdout, "✓ record %s verified\n", cmd.Record)
	return nil
}

type searchCmd struct {
	Query    string `arg:"" help:"Search terms."`
	Type     string `help:"Restrict results to a type (product, record)."`
	Category string `help:"Advanced search category filter."`
	Status   string `help:"Advanced search status filter."`
}

func (cmd *searchCmd) Run(ctx context.Context, root *cli) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	results, err := cmd.fetch(ctx, client)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "no results")
		return nil
	}
	for _, result := range results {
		fmt.Fprintf(os.Stdout, "%-10s %-32s %s\n", result.Type, result.Title, result.URL)
	}
	return nil
}

func (cmd *searchCmd) fetch(ctx context.Context, client *backend.HTTPClient) ([]console.SearchResult, error) {
	if cmd.Category == "" && cmd.Status == "" {
		return client.Search(ctx, cmd.Query, cmd.Type)
	}
	fields := url.Values{}
	fields.Set("q", cmd.Query)
	if cmd.Category != "" {
		fields.Set("category", cmd.Category)
	}
	if cmd.Status != "" {
		fields.Set("status", cmd.Status)
	}
	return client.AdvancedSearch(ctx, fields)
}

type exportCmd struct {
	Query  string `arg:"" help:"Search terms feeding the export."`
	Format string `default:"csv" enum:"csv,json" help:"Output format."`
	Out    string `default:"." type:"path" help:"Directory the export file is written to."`
}

func (cmd *exportCmd) Run(ctx context.Context, root *cli) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	results, err := client.Search(ctx, cmd.Query, "")
	if err != nil {
		return err
	}
	rows := make([]map[string]any, 0, len(results))
	for _, result := range results {
		rows = append(rows, map[string]any{
			"title":       result.Title,
			"type":        result.Type,
			"url":         result.URL,
			"description": result.Description,
		})
	}

	sink := fileSink{dir: cmd.Out}
	ctrl, err := console.NewController(console.Options{
		Backend:   client,
		Downloads: sink,
	})
	if err != nil {
		return err
	}
	basename := strcase.ToSnake("search " + cmd.Query)
	if cmd.Format == "json" {
		return ctrl.ExportJSON(ctx, basename, rows)
	}
	return ctrl.ExportCSV(ctx, basename, []string{"title", "type", "url", "description"}, rows)
}

type fileSink struct {
	dir string
}

func (s fileSink) Save(filename, _ string, data []byte) error {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("consolectl: write export: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ wrote %s\n", path)
	return nil
}

type manifestCmd struct {
	Path string `arg:"" type:"path" help:"Manifest file to validate."`
}

func (cmd *manifestCmd) Run(_ context.Context, _ *cli) error {
	doc, err := console.ReadManifest(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s: view=%s charts=%d\n", cmd.Path, doc.View, len(doc.Charts))
	return nil
}
