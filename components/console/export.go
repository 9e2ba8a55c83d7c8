package console

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MarshalCSV renders rows with plain comma joins, matching the export format
// already consumed downstream. Values containing commas are not quoted; that
// quirk is part of the format.
func MarshalCSV(columns []string, rows []map[string]any) []byte {
	if len(columns) == 0 && len(rows) > 0 {
		for key := range rows[0] {
			columns = append(columns, key)
		}
		sort.Strings(columns)
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(columns, ","))
	sb.WriteByte('\n')
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok && v != nil {
				cells[i] = fmt.Sprintf("%v", v)
			}
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// MarshalJSONExport renders rows as indented JSON.
func MarshalJSONExport(rows []map[string]any) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

// ExportCSV writes a CSV file through the download sink and confirms with a
// notification. Filenames get a date suffix so repeated exports don't
// collide.
func (c *Controller) ExportCSV(ctx context.Context, basename string, columns []string, rows []map[string]any) error {
	if c.opts.Downloads == nil {
		return fmt.Errorf("console: download sink not configured")
	}
	data := MarshalCSV(columns, rows)
	filename := exportFilename(basename, "csv")
	if err := c.opts.Downloads.Save(filename, "text/csv", data); err != nil {
		c.notify.Notify("Export failed. Please try again.", KindDanger, 0)
		return err
	}
	c.notify.Notify("Exported "+filename, KindSuccess, 0)
	c.telemetry.Record(ctx, "console.export", map[string]any{"format": "csv", "rows": len(rows)})
	return nil
}

// ExportJSON writes an indented JSON file through the download sink.
func (c *Controller) ExportJSON(ctx context.Context, basename string, rows []map[string]any) error {
	if c.opts.Downloads == nil {
		return fmt.Errorf("console: download sink not configured")
	}
	data, err := MarshalJSONExport(rows)
	if err != nil {
		return err
	}
	filename := exportFilename(basename, "json")
	if err := c.opts.Downloads.Save(filename, "application/json", data); err != nil {
		c.notify.Notify("Export failed. Please try again.", KindDanger, 0)
		return err
	}
	c.notify.Notify("Exported "+filename, KindSuccess, 0)
	c.telemetry.Record(ctx, "console.export", map[string]any{"format": "json", "rows": len(rows)})
	return nil
}

func exportFilename(basename, ext string) string {
	return basename + "_" + time.Now().Format("2006-01-02") + "." + ext
}
