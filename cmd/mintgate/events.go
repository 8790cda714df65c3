package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/events"
)

func showEvents(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	jsonl := fs.Bool("jsonl", false, "Emit events as JSON lines")
	csvOut := fs.Bool("csv", false, "Emit events as CSV")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate events [options]

Show the event stream in order. With --jsonl the stream is written as
one JSON object per line; with --csv as CSV rows. Both are suitable
for export.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := events.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if *jsonl {
		return events.ExportStream(ctx, store, cfg.Stream, os.Stdout)
	}
	if *csvOut {
		return events.ExportStreamCSV(ctx, store, cfg.Stream, os.Stdout)
	}

	evs, err := store.Read(ctx, cfg.Stream, 0)
	if err != nil {
		return err
	}
	if len(evs) == 0 {
		fmt.Println("No events.")
		return nil
	}
	for _, e := range evs {
		fmt.Printf("%4d  %-22s  %s  %s\n", e.Version, e.Type, e.Timestamp.Format("2006-01-02 15:04:05"), string(e.Data))
	}
	return nil
}
