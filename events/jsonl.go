package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSONL writes events to w as JSON Lines, one event per line.
func WriteJSONL(w io.Writer, evs []*Event) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range evs {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL parses events from a JSON Lines reader.
func ReadJSONL(r io.Reader) ([]*Event, error) {
	var out []*Event
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(text, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, &e)
	}
	return out, scanner.Err()
}

// ExportStream writes a full stream from the store to w as JSON Lines.
func ExportStream(ctx context.Context, store Store, streamID string, w io.Writer) error {
	evs, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return err
	}
	return WriteJSONL(w, evs)
}
