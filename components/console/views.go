package console

import "time"

// Document is the typed render state for one page. It replaces scattered
// ad-hoc mutations with a single structure that render functions read from.
type Document struct {
	Theme    ThemeView
	Stats    StatBoard
	Timeline ActivityTimeline
	Product  ProductStatusView
	Results  SearchResultsView
	Modal    ModalView
	Forms    map[string]*Form
	Charts   map[string]ChartView
}

func newDocument() *Document {
	return &Document{
		Theme: ThemeView{
			Active:      ThemeLight,
			Attribute:   string(ThemeLight),
			ToggleIcon:  "moon",
			ToggleLabel: "Dark Mode",
		},
		Stats:  StatBoard{Counters: map[string]*StatCounter{}},
		Forms:  map[string]*Form{},
		Charts: map[string]ChartView{},
	}
}

// ThemeView carries what the theme toggle and root element need.
type ThemeView struct {
	Active      Theme
	Attribute   string
	ToggleIcon  string
	ToggleLabel string
}

func (v ThemeView) ViewModel() map[string]any {
	return map[string]any{
		"active":       string(v.Active),
		"attribute":    v.Attribute,
		"toggle_icon":  v.ToggleIcon,
		"toggle_label": v.ToggleLabel,
	}
}

// StatCounter is one animated dashboard number. Displayed trails Target while
// a tween is in flight and equals it once the tween completes.
type StatCounter struct {
	Key       string
	Displayed float64
	Target    float64
}

// StatBoard holds the quick-stat counters in a stable display order.
type StatBoard struct {
	Counters  map[string]*StatCounter
	Order     []string
	UpdatedAt time.Time
}

func (b StatBoard) ViewModel() map[string]any {
	counters := make([]map[string]any, 0, len(b.Order))
	for _, key := range b.Order {
		counter, ok := b.Counters[key]
		if !ok {
			continue
		}
		counters = append(counters, map[string]any{
			"key":       counter.Key,
			"displayed": counter.Displayed,
			"target":    counter.Target,
		})
	}
	return map[string]any{
		"counters":   counters,
		"updated_at": b.UpdatedAt,
	}
}

// ActivityTimeline is the recent-activity feed. Refreshes replace it
// wholesale rather than merging.
type ActivityTimeline struct {
	Entries   []ActivityEntry
	UpdatedAt time.Time
}

func (t ActivityTimeline) ViewModel() map[string]any {
	entries := make([]map[string]any, 0, len(t.Entries))
	for _, entry := range t.Entries {
		entries = append(entries, map[string]any{
			"description": entry.Description,
			"timestamp":   entry.Timestamp,
			"icon":        entry.Icon,
			"type":        entry.Type,
		})
	}
	return map[string]any{
		"entries":    entries,
		"updated_at": t.UpdatedAt,
	}
}

// ProductStatusView is the tracked product's live status badge plus the
// environmental readouts that accompany it.
type ProductStatusView struct {
	ProductID   string
	Status      string
	BadgeClass  string
	Temperature *float64
	Humidity    *float64
	Pressure    *float64
	UpdatedAt   time.Time
}

func (v ProductStatusView) ViewModel() map[string]any {
	return map[string]any{
		"product_id":  v.ProductID,
		"status":      v.Status,
		"badge_class": v.BadgeClass,
		"temperature": v.Temperature,
		"humidity":    v.Humidity,
		"pressure":    v.Pressure,
		"updated_at":  v.UpdatedAt,
	}
}

// SearchResultsView is the rendered result list for the live search box.
type SearchResultsView struct {
	Query   string
	Results []SearchResult
	Empty   bool
}

func (v SearchResultsView) ViewModel() map[string]any {
	results := make([]map[string]any, 0, len(v.Results))
	for _, r := range v.Results {
		results = append(results, map[string]any{
			"url":         r.URL,
			"title":       r.Title,
			"type":        r.Type,
			"description": r.Description,
		})
	}
	return map[string]any{
		"query":   v.Query,
		"results": results,
		"empty":   v.Empty,
	}
}

// ModalState tracks the lifecycle of the shared modal container.
type ModalState string

const (
	ModalHidden  ModalState = "hidden"
	ModalLoading ModalState = "loading"
	ModalReady   ModalState = "ready"
	ModalFailed  ModalState = "failed"
)

// ModalView holds the shared modal container. Content arrives as a server
// rendered fragment and is injected as-is.
type ModalView struct {
	State   ModalState
	Source  string
	Content string
}

func (v ModalView) ViewModel() map[string]any {
	state := v.State
	if state == "" {
		state = ModalHidden
	}
	return map[string]any{
		"state":   string(state),
		"source":  v.Source,
		"content": v.Content,
	}
}

// ChartView is one bootstrapped chart: rendered markup, or the error that
// kept it from rendering.
type ChartView struct {
	ID      string
	Type    string
	HTML    string
	Failed  bool
	Updated time.Time
}

func (v ChartView) ViewModel() map[string]any {
	return map[string]any{
		"id":         v.ID,
		"type":       v.Type,
		"html":       v.HTML,
		"failed":     v.Failed,
		"updated_at": v.Updated,
	}
}

// clone deep-copies the mutable parts of the document. Counters are written
// in place by tweens and forms by submits, so the snapshot gets its own
// copies; slices that are only ever replaced wholesale are shared as-is.
func (d *Document) clone() Document {
	out := *d
	out.Stats.Counters = make(map[string]*StatCounter, len(d.Stats.Counters))
	for key, counter := range d.Stats.Counters {
		copied := *counter
		out.Stats.Counters[key] = &copied
	}
	out.Stats.Order = append([]string(nil), d.Stats.Order...)
	out.Forms = make(map[string]*Form, len(d.Forms))
	for name, form := range d.Forms {
		copied := *form
		copied.Fields = make([]*Field, len(form.Fields))
		for i, field := range form.Fields {
			f := *field
			copied.Fields[i] = &f
		}
		out.Forms[name] = &copied
	}
	out.Charts = make(map[string]ChartView, len(d.Charts))
	for id, chart := range d.Charts {
		out.Charts[id] = chart
	}
	return out
}

// ViewModel flattens the document for template rendering.
func (d *Document) ViewModel() map[string]any {
	forms := make(map[string]any, len(d.Forms))
	for name, form := range d.Forms {
		forms[name] = form.ViewModel()
	}
	charts := make(map[string]any, len(d.Charts))
	for id, chart := range d.Charts {
		charts[id] = chart.ViewModel()
	}
	return map[string]any{
		"theme":    d.Theme.ViewModel(),
		"stats":    d.Stats.ViewModel(),
		"timeline": d.Timeline.ViewModel(),
		"product":  d.Product.ViewModel(),
		"results":  d.Results.ViewModel(),
		"modal":    d.Modal.ViewModel(),
		"forms":    forms,
		"charts":   charts,
	}
}
