package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PageManifest is a YAML/JSON document describing one page's console wiring:
// which view it is, which product it tracks, which charts to bootstrap, and
// any interval overrides.
type PageManifest struct {
	Version   string             `json:"version" yaml:"version"`
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	View      View               `json:"view" yaml:"view"`
	ProductID string             `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Template  string             `json:"template,omitempty" yaml:"template,omitempty"`
	Intervals ManifestIntervals  `json:"intervals,omitempty" yaml:"intervals,omitempty"`
	Charts    []ChartDeclaration `json:"charts,omitempty" yaml:"charts,omitempty"`
	Source    string             `json:"-" yaml:"-"`
}

// ManifestIntervals overrides timer defaults, in Go duration syntax.
type ManifestIntervals struct {
	Stats    string `json:"stats,omitempty" yaml:"stats,omitempty"`
	Alerts   string `json:"alerts,omitempty" yaml:"alerts,omitempty"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
}

// ChartDeclaration binds a chart container to the endpoint feeding it.
type ChartDeclaration struct {
	ID      string `json:"id" yaml:"id"`
	DataURL string `json:"data_url" yaml:"data_url"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*PageManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown fields are
// rejected so typos fail loudly.
func DecodeManifest(r io.Reader) (*PageManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PageManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *PageManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("console: unsupported manifest version %q", doc.Version)
	}
	switch doc.View {
	case ViewNone, ViewDashboard, ViewAnalytics, ViewProduct:
	default:
		return fmt.Errorf("console: unknown view %q", doc.View)
	}
	if doc.View == ViewProduct && doc.ProductID == "" {
		return fmt.Errorf("console: product view requires product_id")
	}
	seen := make(map[string]struct{}, len(doc.Charts))
	for idx, chart := range doc.Charts {
		if chart.ID == "" {
			return fmt.Errorf("console: manifest chart at index %d is missing id", idx)
		}
		if chart.DataURL == "" {
			return fmt.Errorf("console: manifest chart %s missing data_url", chart.ID)
		}
		if _, exists := seen[chart.ID]; exists {
			return fmt.Errorf("console: manifest duplicates chart id %s", chart.ID)
		}
		seen[chart.ID] = struct{}{}
	}
	if _, err := doc.Intervals.durations(); err != nil {
		return err
	}
	return nil
}

func (doc *PageManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if doc.View == "" {
		doc.View = ViewDashboard
	}
}

// ControllerIntervals converts the manifest overrides into controller
// intervals; empty fields keep the defaults.
func (doc *PageManifest) ControllerIntervals() Intervals {
	iv, _ := doc.Intervals.durations()
	return iv
}

func (mi ManifestIntervals) durations() (Intervals, error) {
	var iv Intervals
	parse := func(field, value string, dst *time.Duration) error {
		if value == "" {
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("console: manifest interval %s: %w", field, err)
		}
		*dst = d
		return nil
	}
	if err := parse("stats", mi.Stats, &iv.Stats); err != nil {
		return iv, err
	}
	if err := parse("alerts", mi.Alerts, &iv.Alerts); err != nil {
		return iv, err
	}
	if err := parse("status", mi.Status, &iv.Status); err != nil {
		return iv, err
	}
	if err := parse("debounce", mi.Debounce, &iv.Debounce); err != nil {
		return iv, err
	}
	return iv, nil
}
