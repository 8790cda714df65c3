package events

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// csvHeader is the column layout for CSV export. The data column
// carries the raw JSON payload so a row loses nothing relative to
// the stored event.
var csvHeader = []string{"version", "event_id", "stream_id", "event_type", "timestamp", "data"}

// WriteCSV writes events as CSV rows with a header line.
func WriteCSV(w io.Writer, evs []*Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range evs {
		row := []string{
			strconv.Itoa(e.Version),
			e.ID,
			e.StreamID,
			e.Type,
			e.Timestamp.Format(time.RFC3339Nano),
			string(e.Data),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses events from CSV produced by WriteCSV.
func ReadCSV(r io.Reader) ([]*Event, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip the header row if present.
	start := 0
	if records[0][0] == csvHeader[0] {
		start = 1
	}

	evs := make([]*Event, 0, len(records)-start)
	for i, rec := range records[start:] {
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("csv row %d: expected %d columns, got %d", i+start+1, len(csvHeader), len(rec))
		}
		version, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: invalid version %q: %w", i+start+1, rec[0], err)
		}
		ts, err := time.Parse(time.RFC3339Nano, rec[4])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: invalid timestamp %q: %w", i+start+1, rec[4], err)
		}
		evs = append(evs, &Event{
			ID:        rec[1],
			StreamID:  rec[2],
			Type:      rec[3],
			Version:   version,
			Timestamp: ts,
			Data:      []byte(rec[5]),
		})
	}
	return evs, nil
}

// ExportStreamCSV writes a full stream to w as CSV.
func ExportStreamCSV(ctx context.Context, store Store, streamID string, w io.Writer) error {
	evs, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return err
	}
	return WriteCSV(w, evs)
}
