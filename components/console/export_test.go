package console

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type memorySink struct {
	filename string
	mime     string
	data     []byte
	err      error
}

func (m *memorySink) Save(filename, mime string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.filename = filename
	m.mime = mime
	m.data = data
	return nil
}

func TestMarshalCSVSortsInferredColumns(t *testing.T) {
	rows := []map[string]any{
		{"b": 2, "a": 1},
		{"b": 4, "a": 3},
	}
	got := string(MarshalCSV(nil, rows))
	want := "a,b\n1,2\n3,4\n"
	if got != want {
		t.Fatalf("unexpected CSV:\n%q\nwant:\n%q", got, want)
	}
}

func TestMarshalCSVHonorsExplicitColumns(t *testing.T) {
	rows := []map[string]any{{"name": "Organic Apples", "status": "in_transit", "owner": "farm-7"}}
	got := string(MarshalCSV([]string{"status", "name"}, rows))
	want := "status,name\nin_transit,Organic Apples\n"
	if got != want {
		t.Fatalf("unexpected CSV:\n%q\nwant:\n%q", got, want)
	}
}

func TestMarshalCSVLeavesCommasUnquoted(t *testing.T) {
	rows := []map[string]any{{"name": "Apples, Organic"}}
	got := string(MarshalCSV([]string{"name"}, rows))
	if got != "name\nApples, Organic\n" {
		t.Fatalf("unexpected CSV %q", got)
	}
}

func TestExportCSVSavesAndNotifies(t *testing.T) {
	sink := &memorySink{}
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}, Downloads: sink})

	rows := []map[string]any{{"id": "prod-1", "status": "created"}}
	if err := ctrl.ExportCSV(context.Background(), "records", nil, rows); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	wantName := "records_" + time.Now().Format("2006-01-02") + ".csv"
	if sink.filename != wantName {
		t.Fatalf("expected filename %q, got %q", wantName, sink.filename)
	}
	if sink.mime != "text/csv" {
		t.Fatalf("unexpected mime %q", sink.mime)
	}
	banner := ctrl.Banner()
	if banner == nil || banner.Kind != KindSuccess || !strings.HasPrefix(banner.Message, "Exported ") {
		t.Fatalf("unexpected banner %+v", banner)
	}
}

func TestExportJSONWritesIndentedRows(t *testing.T) {
	sink := &memorySink{}
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}, Downloads: sink})

	rows := []map[string]any{{"id": "prod-1"}}
	if err := ctrl.ExportJSON(context.Background(), "records", rows); err != nil {
		t.Fatalf("ExportJSON returned error: %v", err)
	}
	if sink.mime != "application/json" {
		t.Fatalf("unexpected mime %q", sink.mime)
	}
	if !strings.Contains(string(sink.data), "\n  {") {
		t.Fatalf("expected indented output, got %q", sink.data)
	}
}

func TestExportFailureNotifies(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}, Downloads: sink})

	if err := ctrl.ExportCSV(context.Background(), "records", nil, nil); err == nil {
		t.Fatalf("expected error")
	}
	banner := ctrl.Banner()
	if banner == nil || banner.Message != "Export failed. Please try again." || banner.Kind != KindDanger {
		t.Fatalf("unexpected banner %+v", banner)
	}
}

func TestExportWithoutSinkFails(t *testing.T) {
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}})
	if err := ctrl.ExportCSV(context.Background(), "records", nil, nil); err == nil {
		t.Fatalf("expected error without a sink")
	}
}
